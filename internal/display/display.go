// Package display renders devices and playback state for the terminal.
package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ewilliams-labs/spotifywebapi/pkg/spotify"
)

// Devices writes devices as a table with the active one highlighted.
func Devices(w io.Writer, devices []spotify.Device) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Name", "Type", "Status", "Volume", "Device ID"})

	for i, device := range devices {
		status := "Inactive"
		if device.IsActive {
			status = color.GreenString("● Active")
		}
		if device.IsRestricted {
			status += color.YellowString(" (restricted)")
		}

		volume := "-"
		if device.VolumePercent != nil {
			volume = fmt.Sprintf("%d%%", *device.VolumePercent)
		}

		t.AppendRow(table.Row{
			i + 1,
			color.New(color.Bold).Sprint(device.Name),
			device.Type,
			status,
			volume,
			color.HiBlackString(device.ID),
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()

	fmt.Fprintf(w, "Total devices: %d\n", len(devices))
}

// Playback writes a short summary of the playback state.
func Playback(w io.Writer, playback *spotify.CurrentlyPlayingContext) {
	if playback == nil {
		fmt.Fprintln(w, color.HiBlackString("Nothing is playing."))
		return
	}

	state := color.YellowString("⏸ Paused")
	if playback.IsPlaying {
		state = color.GreenString("▶ Playing")
	}

	title := "(unknown item)"
	if playback.Item != nil {
		title = playback.Item.Name()
		if by := artists(playback.Item); by != "" {
			title += " by " + by
		}
	}
	fmt.Fprintf(w, "%s  %s\n", state, color.New(color.Bold).Sprint(title))

	if playback.Item != nil && playback.ProgressMS != nil {
		fmt.Fprintf(w, "  %s / %s\n",
			formatMS(*playback.ProgressMS), formatMS(playback.Item.DurationMS()))
	}

	fmt.Fprintf(w, "  Device: %s (%s)\n", playback.Device.Name, playback.Device.Type)
	fmt.Fprintf(w, "  Shuffle: %s  Repeat: %s\n", onOff(playback.ShuffleIsOn), playback.RepeatState)
	if playback.Context != nil {
		fmt.Fprintf(w, "  Context: %s\n", color.HiBlackString(playback.Context.URI))
	}
}

func artists(item *spotify.PlaylistItem) string {
	switch {
	case item.Track != nil:
		names := make([]string, 0, len(item.Track.Artists))
		for _, a := range item.Track.Artists {
			names = append(names, a.Name)
		}
		return strings.Join(names, ", ")
	case item.Episode != nil && item.Episode.Show != nil:
		return item.Episode.Show.Name
	}
	return ""
}

func formatMS(ms int) string {
	d := time.Duration(ms) * time.Millisecond
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

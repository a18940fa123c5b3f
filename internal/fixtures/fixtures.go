// Package fixtures names real Spotify content used by tests and the CLI
// examples.
package fixtures

import "github.com/ewilliams-labs/spotifywebapi/pkg/spotify"

// Device IDs of the Spotify Connect devices used during development.
const (
	DevicePetersIPhone   = "476da515c6109d1351359b4c2ad313161f79b173"
	DevicePetersComputer = "ced8d42d0a3830065dfbf4800352d23a96b76fd4"
)

type User string

const (
	UserPeter User = "spotify:user:petervschorn"
	UserApril User = "spotify:user:p8gjjfbirm8ucyt82ycfi9zuu"
)

func (u User) URI() string { return string(u) }

func AllUsers() []User { return []User{UserPeter, UserApril} }

type Playlist string

const (
	PlaylistTest             Playlist = "spotify:playlist:0ijeB2eFmJL1euREk6Wu6C"
	PlaylistNew              Playlist = "spotify:playlist:5MlKAGFZNoN2d0Up8sQc0N"
	PlaylistCrumb            Playlist = "spotify:playlist:33yLOStnp2emkEA76ew1Dz"
	PlaylistAll              Playlist = "spotify:playlist:01KRdno32jt1vmG7s5pVFg"
	PlaylistIndex            Playlist = "spotify:playlist:17gneMykp6L6O5R70wm0gE"
	PlaylistThisIsMacDeMarco Playlist = "spotify:playlist:37i9dQZF1DXe8E8oqpmTDI"
	PlaylistThisIsSpoon      Playlist = "spotify:playlist:37i9dQZF1DX3zc219hYxy3"
	PlaylistBluesClassics    Playlist = "spotify:playlist:37i9dQZF1DXd9rSDyQguIk"
	PlaylistThisIsPinkFloyd  Playlist = "spotify:playlist:37i9dQZF1DXaQ34lqGBfrU"
)

func (p Playlist) URI() string { return string(p) }

func AllPlaylists() []Playlist {
	return []Playlist{
		PlaylistTest, PlaylistNew, PlaylistCrumb, PlaylistAll, PlaylistIndex,
		PlaylistThisIsMacDeMarco, PlaylistThisIsSpoon, PlaylistBluesClassics, PlaylistThisIsPinkFloyd,
	}
}

type Artist string

const (
	ArtistCrumb          Artist = "spotify:artist:4kSGbjWGxTchKpIxXPJv0B"
	ArtistLevitationRoom Artist = "spotify:artist:0SVxQVCnJn1BNUMY9ZcRO4"
	ArtistRadiohead      Artist = "spotify:artist:4Z8W4fKeB5YxbusRsdQVPb"
	ArtistSkinshape      Artist = "spotify:artist:1itM5tXaK5THggpXA7ovAe"
	ArtistMildHighClub   Artist = "spotify:artist:5J81VungUjSVHxlPpTI9KG"
	ArtistPinkFloyd      Artist = "spotify:artist:0k17h0D3J5VfsdmQ1iZtE9"
)

func (a Artist) URI() string { return string(a) }

func AllArtists() []Artist {
	return []Artist{ArtistCrumb, ArtistLevitationRoom, ArtistRadiohead, ArtistSkinshape, ArtistMildHighClub, ArtistPinkFloyd}
}

type Album string

const (
	AlbumJinx        Album = "spotify:album:3vukTUpiENDHDoYTVrwqtz"
	AlbumLocket      Album = "spotify:album:2Q61Zm3rOli876QegmVY50"
	AlbumSkiptracing Album = "spotify:album:1qMDN9zRQreK81cJ9G1hed"
	AlbumTiger       Album = "spotify:album:4OPBRShV2OxYoT4hAenDPl"
	AlbumSaladDays   Album = "spotify:album:7xPhDaYZ2ejV04aNtdBdvj"
	AlbumMeddle      Album = "spotify:album:468ZwCchVtzEbt9BHmXopb"
	// AlbumLongest has more tracks than a single page of results.
	AlbumLongest Album = "spotify:album:1Hnvk7i2oLf4ZQnOB8kYqt"
)

func (a Album) URI() string { return string(a) }

func AllAlbums() []Album {
	return []Album{AlbumJinx, AlbumLocket, AlbumSkiptracing, AlbumTiger, AlbumSaladDays, AlbumMeddle, AlbumLongest}
}

type Track string

const (
	TrackLocket           Track = "spotify:track:0bxcUgWlOURkU6lZt4zog0"
	TrackJinx             Track = "spotify:track:7qAy6TR1MrSeUV8OpMlNS1"
	TrackPlants           Track = "spotify:track:2cOzI3LOIkRIKEidcGZ1Bc"
	TrackFaces            Track = "spotify:track:1u7LOyLuApChbPeqMfXFKC"
	TrackFriends          Track = "spotify:track:43NI5sAcvDLG7QQAmUc7UU"
	TrackIllWind          Track = "spotify:track:7vuVUQV0dDnjXUyLPzJLPi"
	TrackTheBay           Track = "spotify:track:4x0QYD0DhErAC1sPvvPmq9"
	TrackWadingOut        Track = "spotify:track:3e7WFkI9OBb9ANwqJroJwZ"
	TrackPartIII          Track = "spotify:track:4HDLmWf73mge8isanCASnU"
	TrackNuclearFusion    Track = "spotify:track:1pmImsdC9t35L3TkD26ax8"
	TrackHoney            Track = "spotify:track:01IuTsgAlgKlgrvPhZ2c95"
	TrackAnyColourYouLike Track = "spotify:track:6FBPOJLxUZEair6x4kLDhf"
	TrackFearless         Track = "spotify:track:7AalBKBoLDR4UmRYRJpdbj"
)

func (t Track) URI() string { return string(t) }

func AllTracks() []Track {
	return []Track{
		TrackLocket, TrackJinx, TrackPlants, TrackFaces, TrackFriends, TrackIllWind, TrackTheBay,
		TrackWadingOut, TrackPartIII, TrackNuclearFusion, TrackHoney, TrackAnyColourYouLike, TrackFearless,
	}
}

type Episode string

const (
	EpisodeSamHarris215   Episode = "spotify:episode:1Vrpa83y0vBdWZqeEbkKk3"
	EpisodeSamHarris214   Episode = "spotify:episode:3d1cFPfj3kZB27D4b8ZJm2"
	EpisodeSamHarris213   Episode = "spotify:episode:7jrEoNMrNicZSxIuKhATHN"
	EpisodeSamHarris212   Episode = "spotify:episode:3OEdPEYB69pfXoBrhvQYeC"
	EpisodeSeanCarroll112 Episode = "spotify:episode:5LEFdZ9pYh99wSz7Go2D0g"
	EpisodeSeanCarroll111 Episode = "spotify:episode:0Bbtb2VFGYAl54Enix23Qd"
	EpisodeJoeRogan1531   Episode = "spotify:episode:0ZEDvQuPtAEBnXE37slSoX"
)

func (e Episode) URI() string { return string(e) }

func AllEpisodes() []Episode {
	return []Episode{
		EpisodeSamHarris215, EpisodeSamHarris214, EpisodeSamHarris213, EpisodeSamHarris212,
		EpisodeSeanCarroll112, EpisodeSeanCarroll111, EpisodeJoeRogan1531,
	}
}

type Show string

const (
	ShowSamHarris   Show = "spotify:show:5rgumWEx4FsqIY8e1wJNAk"
	ShowJoeRogan    Show = "spotify:show:4rOoJ6Egrf8K2IrywzwOMk"
	ShowSeanCarroll Show = "spotify:show:622lvLwp8CVu6dvCsYAJhN"
)

func (s Show) URI() string { return string(s) }

func AllShows() []Show { return []Show{ShowSamHarris, ShowJoeRogan, ShowSeanCarroll} }

// URIs converts any of the fixture kinds for calls taking URIConvertible.
func URIs[T spotify.URIConvertible](items ...T) []spotify.URIConvertible {
	out := make([]spotify.URIConvertible, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

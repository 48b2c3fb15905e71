package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"spotlogin/internal/provider"
	pkgstrings "spotlogin/pkg/strings"
)

// Column widths for free-form provider text.
const (
	maxGenreWidth = 60
	maxNameWidth  = 80
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

func keyValueTable(w io.Writer, rows [][2]string) {
	t := newTable(w)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("FIELD"),
		text.FgHiCyan.Sprint("VALUE"),
	})
	for _, row := range rows {
		t.AppendRow(table.Row{text.FgHiCyan.Sprint(row[0]), row[1]})
	}
	t.Render()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// PrintUser renders the authenticated user's profile.
func PrintUser(w io.Writer, user *provider.User) {
	keyValueTable(w, [][2]string{
		{"ID", user.ID},
		{"Name", orDash(user.DisplayName)},
		{"Email", orDash(user.Email)},
		{"Country", orDash(user.Country)},
		{"Product", orDash(user.Product)},
		{"Followers", fmt.Sprint(user.Followers.Total)},
	})
}

// PrintArtists renders search results as a numbered table.
func PrintArtists(w io.Writer, artists []provider.Artist) {
	if len(artists) == 0 {
		fmt.Fprintf(w, "%s\n", text.FgYellow.Sprint("No artists found"))
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("#"),
		text.FgHiCyan.Sprint("NAME"),
		text.FgHiCyan.Sprint("POPULARITY"),
		text.FgHiCyan.Sprint("FOLLOWERS"),
		text.FgHiCyan.Sprint("GENRES"),
	})
	for i, a := range artists {
		t.AppendRow(table.Row{
			i + 1,
			pkgstrings.Truncate(a.Name, maxNameWidth),
			a.Popularity,
			a.Followers.Total,
			pkgstrings.JoinTruncated(a.Genres, maxGenreWidth),
		})
	}
	t.Render()
}

// PrintArtistDetails renders an artist and its top tracks.
func PrintArtistDetails(w io.Writer, details *provider.ArtistDetails) {
	a := details.Artist
	image := "-"
	if len(a.Images) > 0 {
		image = a.Images[0].URL
	}

	keyValueTable(w, [][2]string{
		{"Name", pkgstrings.Truncate(a.Name, maxNameWidth)},
		{"ID", a.ID},
		{"Popularity", fmt.Sprint(a.Popularity)},
		{"Followers", fmt.Sprint(a.Followers.Total)},
		{"Genres", orDash(strings.Join(a.Genres, ", "))},
		{"Image", image},
	})

	if len(details.TopTracks) == 0 {
		fmt.Fprintf(w, "%s\n", text.FgYellow.Sprint("No top tracks available"))
		return
	}

	t := newTable(w)
	t.SetTitle("Top tracks")
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("#"),
		text.FgHiCyan.Sprint("TRACK"),
		text.FgHiCyan.Sprint("ALBUM"),
		text.FgHiCyan.Sprint("LENGTH"),
		text.FgHiCyan.Sprint("POPULARITY"),
	})
	for i, tr := range details.TopTracks {
		t.AppendRow(table.Row{
			i + 1,
			pkgstrings.Truncate(tr.Name, maxNameWidth),
			pkgstrings.Truncate(tr.Album.Name, maxNameWidth),
			formatDuration(tr.DurationMs),
			tr.Popularity,
		})
	}
	t.Render()
}

func formatDuration(ms int) string {
	d := time.Duration(ms) * time.Millisecond
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Package console renders lookups as text for the terminal.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"country-explorer/internal/models"
)

// Renderer writes lookup results to w. The loading indicator is ignored.
type Renderer struct {
	mu     sync.Mutex
	w      io.Writer
	failed bool
}

// NewRenderer returns a Renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

func (r *Renderer) Render(c models.Country) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := models.DisplayOf(c)
	fmt.Fprintf(r.w, "%s\n%s\n\n", c.CommonName, c.OfficialName)

	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Capital:\t%s\n", d.Capital)
	fmt.Fprintf(tw, "Region:\t%s\n", regionLine(c))
	fmt.Fprintf(tw, "Population:\t%s\n", d.Population)
	fmt.Fprintf(tw, "Area:\t%s (%.1f%% of the largest country)\n", d.Area, d.AreaShare)
	fmt.Fprintf(tw, "Currencies:\t%s\n", d.Currencies)
	fmt.Fprintf(tw, "Languages:\t%s\n", d.Languages)
	fmt.Fprintf(tw, "Calling code:\t%s\n", d.CallingCode)
	fmt.Fprintf(tw, "Top-level domain:\t%s\n", d.TopLevelDomain)
	fmt.Fprintf(tw, "Drives on:\t%s\n", d.DrivingSide)
	if c.UNMember {
		fmt.Fprintf(tw, "UN member:\tyes\n")
	}
	fmt.Fprintf(tw, "Map:\t%s\n", c.MapsURL)
	fmt.Fprintf(tw, "Wikipedia:\t%s\n", d.WikipediaURL)
	tw.Flush()
}

func (r *Renderer) RenderNeighbors(neighbors []models.Country) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(neighbors) == 0 {
		fmt.Fprintln(r.w, "\nNeighbors: none found")
		return
	}
	names := make([]string, 0, len(neighbors))
	for _, n := range neighbors {
		names = append(names, n.CommonName)
	}
	fmt.Fprintf(r.w, "\nNeighbors: %s\n", strings.Join(names, ", "))
}

func (r *Renderer) HideNeighbors() {}

func (r *Renderer) RenderError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = true
	fmt.Fprintf(r.w, "Error: %s\n", message)
}

func (r *Renderer) SetLoading(bool) {}

func (r *Renderer) ClearResults() {}

// Failed reports whether an error was rendered.
func (r *Renderer) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}

func regionLine(c models.Country) string {
	if c.Subregion == "" {
		return c.Region
	}
	return c.Region + " / " + c.Subregion
}

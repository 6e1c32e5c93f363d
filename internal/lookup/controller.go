// Package lookup drives country lookups and guarantees that only the most
// recent one reaches the renderer.
package lookup

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"sync"

	"country-explorer/internal/countries"
)

// Kind selects the lookup flow started by StartLookup.
type Kind int

const (
	ByName Kind = iota
	ByRegion
	Random
)

func (k Kind) String() string {
	switch k {
	case ByName:
		return "name"
	case ByRegion:
		return "region"
	case Random:
		return "random"
	default:
		return "unknown"
	}
}

// Ticket identifies one user initiated lookup. Only the ticket holding the
// controller's current generation may touch the renderer.
type Ticket struct {
	generation uint64
}

// Generation returns the generation the ticket was issued for.
func (t Ticket) Generation() uint64 {
	return t.generation
}

// Controller runs lookups against a CountrySource and reports them to a
// Renderer. Superseded lookups are not cancelled; they finish and their results
// are discarded.
type Controller struct {
	source   CountrySource
	renderer Renderer
	pick     func(n int) int

	mu         sync.Mutex
	generation uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithPicker replaces the uniform random picker used by region and random lookups.
// pick must return a value in [0, n).
func WithPicker(pick func(n int) int) Option {
	return func(c *Controller) {
		c.pick = pick
	}
}

// NewController returns a Controller at generation 0.
func NewController(source CountrySource, renderer Renderer, opts ...Option) *Controller {
	c := &Controller{
		source:   source,
		renderer: renderer,
		pick:     rand.Intn,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generation returns the current generation.
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// StartLookup runs the lookup selected by kind until it is rendered, errored or
// superseded. Errors are rendered, never returned. payload is the query for
// ByName, the region for ByRegion and ignored for Random.
func (c *Controller) StartLookup(ctx context.Context, kind Kind, payload string) {
	switch kind {
	case ByName:
		c.SearchByName(ctx, payload)
	case ByRegion:
		c.SearchByRegion(ctx, payload)
	case Random:
		c.SearchRandom(ctx)
	default:
		log.Printf("lookup: unknown kind %d", kind)
	}
}

// SearchByName resolves query and renders the country and its neighbors.
// Blank queries are ignored.
func (c *Controller) SearchByName(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	t := c.begin()
	c.resolve(ctx, t, query)
}

// SearchByRegion picks a random country of region and looks it up by name.
func (c *Controller) SearchByRegion(ctx context.Context, region string) {
	t := c.begin()
	names, err := c.source.ListRegionNames(ctx, region)
	if err == nil && len(names) == 0 {
		err = countries.ErrNotFound
	}
	if err != nil {
		c.fail(t, &RegionSearchError{Region: region, Err: err})
		return
	}
	c.resolvePicked(ctx, t, names)
}

// SearchRandom picks a random country and looks it up by name.
func (c *Controller) SearchRandom(ctx context.Context) {
	t := c.begin()
	names, err := c.source.ListAllNames(ctx)
	if err == nil && len(names) == 0 {
		err = countries.ErrNotFound
	}
	if err != nil {
		c.fail(t, &RandomSearchError{Err: err})
		return
	}
	c.resolvePicked(ctx, t, names)
}

// begin issues a new ticket and resets the display under it.
func (c *Controller) begin() Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.renderer.SetLoading(true)
	c.renderer.ClearResults()
	return Ticket{generation: c.generation}
}

// guard runs fn with the lock held if t is still current.
func (c *Controller) guard(t Ticket, fn func(r Renderer)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.generation != c.generation {
		return false
	}
	fn(c.renderer)
	return true
}

// current reports whether t has not been superseded yet.
func (c *Controller) current(t Ticket) bool {
	return c.guard(t, func(Renderer) {})
}

func (c *Controller) resolvePicked(ctx context.Context, t Ticket, names []string) {
	if !c.current(t) {
		return
	}
	name := names[c.pick(len(names))]
	c.resolve(ctx, t, name)
}

func (c *Controller) resolve(ctx context.Context, t Ticket, name string) {
	country, err := c.source.ResolveByName(ctx, name)
	if err != nil {
		c.fail(t, err)
		return
	}
	if !c.guard(t, func(r Renderer) { r.Render(*country) }) {
		return
	}

	if !country.HasBorders() {
		c.guard(t, func(r Renderer) {
			r.HideNeighbors()
			r.SetLoading(false)
		})
		return
	}

	neighbors, err := c.source.ResolveByCodes(ctx, country.Borders)
	if err != nil {
		c.fail(t, err)
		return
	}
	c.guard(t, func(r Renderer) {
		r.RenderNeighbors(neighbors)
		r.SetLoading(false)
	})
}

// fail renders err and ends loading if t is still current. Superseded failures
// are only logged.
func (c *Controller) fail(t Ticket, err error) {
	rendered := c.guard(t, func(r Renderer) {
		r.RenderError(UserMessage(err))
		r.SetLoading(false)
	})
	if !rendered {
		log.Printf("lookup: discarding error of superseded lookup %d: %v", t.generation, err)
	}
}

package lookup

import (
	"sync"

	"country-explorer/internal/models"
)

// Collector is a Renderer that keeps the last rendered state. It backs one-shot
// lookups that answer once the lookup has finished.
type Collector struct {
	mu        sync.Mutex
	country   *models.Country
	neighbors []models.Country
	errMsg    string
	loading   bool
}

// Result is a snapshot of a Collector.
type Result struct {
	Country   *models.Country  `json:"country,omitempty"`
	Display   *models.Display  `json:"display,omitempty"`
	Neighbors []models.Country `json:"neighbors"`
	Error     string           `json:"error,omitempty"`
}

func (c *Collector) Render(country models.Country) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.country = &country
}

func (c *Collector) RenderNeighbors(neighbors []models.Country) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.neighbors = neighbors
}

func (c *Collector) HideNeighbors() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.neighbors = nil
}

func (c *Collector) RenderError(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = message
}

func (c *Collector) SetLoading(loading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = loading
}

func (c *Collector) ClearResults() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.country = nil
	c.neighbors = nil
	c.errMsg = ""
}

// Loading reports whether the last lookup is still marked as loading.
func (c *Collector) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Result returns the collected state.
func (c *Collector) Result() Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := Result{
		Country:   c.country,
		Neighbors: c.neighbors,
		Error:     c.errMsg,
	}
	if res.Neighbors == nil {
		res.Neighbors = []models.Country{}
	}
	if c.country != nil {
		display := models.DisplayOf(*c.country)
		res.Display = &display
	}
	return res
}

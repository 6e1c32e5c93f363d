package realtime

import (
	"encoding/json"
	"log"

	"country-explorer/internal/models"
)

// Event types pushed to the page.
const (
	EventLoading       = "loading"
	EventClear         = "clear"
	EventCountry       = "country"
	EventNeighbors     = "neighbors"
	EventHideNeighbors = "hide_neighbors"
	EventError         = "error"
)

// Event is the JSON frame sent for every render call. A neighbors event without
// a neighbors field carries an empty list.
type Event struct {
	Type      string           `json:"type"`
	Loading   *bool            `json:"loading,omitempty"`
	Country   *models.Country  `json:"country,omitempty"`
	Display   *models.Display  `json:"display,omitempty"`
	Neighbors []models.Country `json:"neighbors,omitempty"`
	Message   string           `json:"message,omitempty"`
}

// ClientRenderer renders the lookups started on one connection. Events go to
// that connection only, never to other connections of the same session.
type ClientRenderer struct {
	client Client
}

// NewClientRenderer returns a renderer sending to client.
func NewClientRenderer(client Client) *ClientRenderer {
	return &ClientRenderer{client: client}
}

func (r *ClientRenderer) Render(country models.Country) {
	display := models.DisplayOf(country)
	r.publish(Event{Type: EventCountry, Country: &country, Display: &display})
}

func (r *ClientRenderer) RenderNeighbors(neighbors []models.Country) {
	r.publish(Event{Type: EventNeighbors, Neighbors: neighbors})
}

func (r *ClientRenderer) HideNeighbors() {
	r.publish(Event{Type: EventHideNeighbors})
}

func (r *ClientRenderer) RenderError(message string) {
	r.publish(Event{Type: EventError, Message: message})
}

func (r *ClientRenderer) SetLoading(loading bool) {
	r.publish(Event{Type: EventLoading, Loading: &loading})
}

func (r *ClientRenderer) ClearResults() {
	r.publish(Event{Type: EventClear})
}

func (r *ClientRenderer) publish(ev Event) {
	SendEvent(r.client, ev)
}

// SendEvent encodes ev and hands it to client. Clients must not block in Send,
// renderers call it with the lookup controller locked.
func SendEvent(client Client, ev Event) bool {
	msg, err := json.Marshal(ev)
	if err != nil {
		log.Printf("realtime: encode %s event: %v", ev.Type, err)
		return false
	}
	if !client.Send(msg) {
		log.Printf("realtime: client dropped %s event", ev.Type)
		return false
	}
	return true
}

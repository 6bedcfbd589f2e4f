package events

// PublisherAdapter lets packages that cannot import events publish through a bus.
type PublisherAdapter struct {
	bus Publisher
}

func NewPublisherAdapter(bus Publisher) *PublisherAdapter {
	return &PublisherAdapter{bus: bus}
}

// Publish forwards event to the bus. Values that are not an Event are ignored.
func (a *PublisherAdapter) Publish(event any) {
	if e, ok := event.(Event); ok {
		a.bus.Publish(e)
	}
}

package ports

// TickEvent is the per-tick digest pushed to live observers.
type TickEvent struct {
	BatchID    string
	Layout     string
	Tick       int
	Reward     int
	Deliveries int
	DoneEnvs   int
}

type TickPublisher interface {
	PublishTick(event TickEvent)
}

package sim

// VTime is a point in simulated time, in seconds.
type VTime float64

// A TimeTeller can report the current simulated time.
type TimeTeller interface {
	CurrentTime() VTime
}

// An EventScheduler can schedule events to happen in the future.
type EventScheduler interface {
	Schedule(e Event)
}

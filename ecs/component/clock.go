package component

// Clock is the tween clock. DeltaMS is the time the current tick advances
// every timed animation by; it is zero while paused.
type Clock struct {
	DeltaMS   float64
	ElapsedMS float64
	Frame     uint64
	Paused    bool
}

var ClockComponent = NewComponent[Clock]()

package component

// BlinkReader is the read-only view of the shared blink scalar each eye holds.
type BlinkReader interface {
	Value() float64
}

// BlinkCell is the one blink scalar shared by both eyes. Only the blink
// scheduler writes it.
type BlinkCell struct {
	value float64
}

func (c *BlinkCell) Value() float64 {
	if c == nil {
		return 0
	}
	return c.value
}

func (c *BlinkCell) Set(v float64) {
	if c == nil {
		return
	}
	c.value = v
}

type BlinkPhase int

const (
	BlinkIdle BlinkPhase = iota
	BlinkClosing
)

func (p BlinkPhase) String() string {
	switch p {
	case BlinkIdle:
		return "idle"
	case BlinkClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// Blink drives Cell through idle -> closing -> idle.
type Blink struct {
	Cell    *BlinkCell
	Phase   BlinkPhase
	DelayMS float64
	// ElapsedMS is the time spent in the current phase.
	ElapsedMS float64
	Cycles    int
	armed     bool
}

func (b *Blink) Armed() bool { return b != nil && b.armed }

func (b *Blink) Arm() {
	if b != nil {
		b.armed = true
	}
}

var BlinkComponent = NewComponent[Blink]()

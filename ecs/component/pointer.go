package component

// Pointer holds the last pointer position in normalized device coordinates:
// x right, y up, both in [-1,1].
type Pointer struct {
	X, Y float64
	// Moved is true on ticks where a new position arrived.
	Moved bool
}

var PointerComponent = NewComponent[Pointer]()

package a

// Valid family with record variants.

//sealedgen:family
type Shape interface {
	isShape()
}

type Circle struct {
	Radius float64
}

func (Circle) isShape() {}

type Rect struct {
	W float64
	H float64
}

func (Rect) isShape() {}

// Valid family with a singleton variant plus a conflicting second instance.

//sealedgen:family tag=kind ops=decode
type Event interface {
	isEvent()
}

type halt struct{}

func (halt) isEvent() {}

var Halt = halt{}

var Stop = halt{} // want "ambiguous singleton halt"

//sealedgen:family
type Open interface { // want "family interface Open is not sealed"
	Area() float64
}

//sealedgen:family
type Count int // want "directive on non-interface type Count"

//sealedgen:family tag= ops=everything
type Signal interface { // want "malformed directive argument" "unknown ops value"
	isSignal()
}

type ping struct{}

func (ping) isSignal() {}

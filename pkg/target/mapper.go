package target

// Mapper relates a parent target P to a child target C hosted below it.
//
// Down answers whether the parent currently routes through the child
// hierarchy and, if so, with which child value. Up builds the parent value to
// navigate to for a child value. Both functions must be pure: they are called
// on every render and every navigation. For every parent p with
// Down(p) = (c, true), Down(Up(c)) must again yield a child equivalent to c.
type Mapper[P, C any] struct {
	down func(P) (C, bool)
	up   func(C) P
}

// NewMapper returns a Mapper from its two directions.
func NewMapper[P, C any](down func(P) (C, bool), up func(C) P) Mapper[P, C] {
	return Mapper[P, C]{down: down, up: up}
}

// Down maps a parent value onto the child hierarchy.
func (m Mapper[P, C]) Down(p P) (C, bool) {
	return m.down(p)
}

// Up maps a child value back onto the parent hierarchy.
func (m Mapper[P, C]) Up(c C) P {
	return m.up(c)
}

// Compose chains two mappers: outer relates P to C, inner relates C to G.
func Compose[P, C, G any](outer Mapper[P, C], inner Mapper[C, G]) Mapper[P, G] {
	return Mapper[P, G]{
		down: func(p P) (G, bool) {
			c, ok := outer.Down(p)
			if !ok {
				var zero G
				return zero, false
			}
			return inner.Down(c)
		},
		up: func(g G) P {
			return outer.Up(inner.Up(g))
		},
	}
}

// Identity returns the mapper that hosts T below itself.
func Identity[T any]() Mapper[T, T] {
	return Mapper[T, T]{
		down: func(t T) (T, bool) { return t, true },
		up:   func(t T) T { return t },
	}
}

package effect

import "fmt"

// Then sequences s with next, asserting the intermediate value to A.
// A mismatch is a programming error in the calling program and panics
// with the offending types.
func Then[A any](seq Sequencer, s Step, next func(A) Step) Step {
	return seq.Chain(s, func(v any) Step {
		return next(as[A](v))
	})
}

// Next sequences s with next, discarding the intermediate value. Useful
// after PutLine and other unit-valued steps.
func Next(seq Sequencer, s Step, next func() Step) Step {
	return seq.Chain(s, func(any) Step { return next() })
}

// To maps the result of s through f, asserting the input to A.
func To[A, B any](seq Sequencer, s Step, f func(A) B) Step {
	return seq.Map(s, func(v any) any {
		return f(as[A](v))
	})
}

func as[A any](v any) A {
	a, ok := v.(A)
	if !ok {
		panic(fmt.Sprintf("effect: step resolved to %T, want %T", v, a))
	}
	return a
}

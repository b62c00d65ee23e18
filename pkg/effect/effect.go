// Package effect defines the capability contracts that effect-polymorphic
// programs are written against. A program built from these capabilities is
// a description of a computation; it performs nothing until an interpreter
// runs it. Two interpreters ship with this module: pkg/live executes real
// console I/O and real random draws, pkg/replay threads a script record
// through the computation for fully reproducible runs.
package effect

import "errors"

// Step is an opaque, not-yet-executed computation. Each interpreter owns
// its own concrete representation; a Step can only be run by the
// interpreter that built it.
type Step interface {
	// Origin names the interpreter family that built this step.
	Origin() string
}

// Sequencer composes computations.
type Sequencer interface {
	// Finish lifts a pure value into a completed computation.
	Finish(v any) Step

	// Chain sequences s with the computation produced by next. The next
	// function is invoked only as part of executing the resulting step,
	// never eagerly.
	Chain(s Step, next func(v any) Step) Step

	// Map transforms the result of s without introducing new effects.
	Map(s Step, f func(v any) any) Step

	// Loop repeatedly evaluates body, feeding each iteration the value
	// carried by the previous one, starting from seed. The body's step
	// must resolve to a LoopOutcome: Continue re-enters the loop with the
	// carried value, Break resolves the whole loop to its value.
	// Interpreters implement Loop iteratively, so the call stack does not
	// grow with the iteration count.
	Loop(seed any, body func(v any) Step) Step
}

// Console is line-oriented console interaction.
type Console interface {
	// PutLine emits one line. The step resolves to nil.
	PutLine(line string) Step

	// ReadLine consumes one line. The step resolves to a string.
	ReadLine() Step
}

// Randomizer draws random integers.
type Randomizer interface {
	// NextInt resolves to an int in [0, upper). Interpreters reject a
	// non-positive upper bound.
	NextInt(upper int) Step
}

// Capabilities is the full capability set an interpreter provides.
type Capabilities interface {
	Sequencer
	Console
	Randomizer
}

// ErrForeignStep reports a step handed to an interpreter that did not
// build it.
var ErrForeignStep = errors.New("step built by another interpreter")

// ErrLoopOutcome reports a Loop body whose step resolved to something
// other than a LoopOutcome.
var ErrLoopOutcome = errors.New("loop body must resolve to a LoopOutcome")

// LoopOutcome is the value a Loop body resolves to.
type LoopOutcome struct {
	done bool
	v    any
}

// Continue re-enters the loop carrying v into the next iteration.
func Continue(v any) LoopOutcome { return LoopOutcome{v: v} }

// Break resolves the loop to v.
func Break(v any) LoopOutcome { return LoopOutcome{done: true, v: v} }

// Done reports whether the outcome terminates the loop.
func (o LoopOutcome) Done() bool { return o.done }

// Value returns the carried (Continue) or final (Break) value.
func (o LoopOutcome) Value() any { return o.v }

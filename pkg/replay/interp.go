package replay

import (
	"fmt"

	"github.com/rewindlabs/rewind/pkg/effect"
)

const origin = "replay"

// Interp is the deterministic interpreter. It is stateless; all run
// state lives in the Script threaded through each step.
type Interp struct{}

// New creates a deterministic interpreter.
func New() *Interp { return &Interp{} }

// step is a pure transformation of a script record.
type step struct {
	run func(Script) (Script, any, error)
}

func (step) Origin() string { return origin }

// Run applies the outermost transformation to initial and returns the
// final record plus the program's result. For a fixed initial record and
// a fixed program, the outcome is always identical.
func (in *Interp) Run(s effect.Step, initial Script) (Script, any, error) {
	t, err := in.coerce(s)
	if err != nil {
		return initial, nil, err
	}
	return t.run(initial)
}

// Finish pairs the incoming record, unchanged, with v.
func (in *Interp) Finish(v any) effect.Step {
	return step{run: func(sc Script) (Script, any, error) {
		return sc, v, nil
	}}
}

// Chain applies s's transformation, then the continuation's
// transformation on the resulting record. Threading is strict: nothing
// is deferred past this point once the outer step runs.
func (in *Interp) Chain(s effect.Step, next func(any) effect.Step) effect.Step {
	return step{run: func(sc Script) (Script, any, error) {
		pred, err := in.coerce(s)
		if err != nil {
			return sc, nil, err
		}
		sc1, v, err := pred.run(sc)
		if err != nil {
			return sc1, nil, err
		}
		cont, err := in.coerce(next(v))
		if err != nil {
			return sc1, nil, err
		}
		return cont.run(sc1)
	}}
}

// Map transforms only the value component; the record is whatever s
// produced.
func (in *Interp) Map(s effect.Step, f func(any) any) effect.Step {
	return step{run: func(sc Script) (Script, any, error) {
		pred, err := in.coerce(s)
		if err != nil {
			return sc, nil, err
		}
		sc1, v, err := pred.run(sc)
		if err != nil {
			return sc1, nil, err
		}
		return sc1, f(v), nil
	}}
}

// Loop threads the record through body iterations in a flat for-loop.
func (in *Interp) Loop(seed any, body func(any) effect.Step) effect.Step {
	return step{run: func(sc Script) (Script, any, error) {
		carried := seed
		for {
			bs, err := in.coerce(body(carried))
			if err != nil {
				return sc, nil, err
			}
			sc1, v, err := bs.run(sc)
			if err != nil {
				return sc1, nil, err
			}
			sc = sc1
			outcome, ok := v.(effect.LoopOutcome)
			if !ok {
				return sc, nil, fmt.Errorf("replay: body resolved to %T: %w", v, effect.ErrLoopOutcome)
			}
			if outcome.Done() {
				return sc, outcome.Value(), nil
			}
			carried = outcome.Value()
		}
	}}
}

// PutLine appends one line to the output log.
func (in *Interp) PutLine(line string) effect.Step {
	return step{run: func(sc Script) (Script, any, error) {
		return sc.putLine(line), nil, nil
	}}
}

// ReadLine pops the head of the scripted inputs.
func (in *Interp) ReadLine() effect.Step {
	return step{run: func(sc Script) (Script, any, error) {
		sc1, line, err := sc.readLine()
		if err != nil {
			return sc1, nil, err
		}
		return sc1, line, nil
	}}
}

// NextInt pops the head of the scripted draws and enforces the same
// [0, upper) contract the live interpreter honors.
func (in *Interp) NextInt(upper int) effect.Step {
	return step{run: func(sc Script) (Script, any, error) {
		sc1, n, err := sc.nextInt(upper)
		if err != nil {
			return sc1, nil, err
		}
		return sc1, n, nil
	}}
}

func (in *Interp) coerce(s effect.Step) (step, error) {
	t, ok := s.(step)
	if !ok {
		return step{}, fmt.Errorf("replay: cannot run %q step: %w", s.Origin(), effect.ErrForeignStep)
	}
	return t, nil
}

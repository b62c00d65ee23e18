// Package live interprets effect steps by actually performing them:
// console lines go to a real writer, reads block on a real reader, and
// random draws come from a seeded PRNG. A step is a deferred nullary
// action; nothing executes until Run forces the outermost one.
package live

import (
	"bufio"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/rewindlabs/rewind/pkg/effect"
	"github.com/rewindlabs/rewind/pkg/tape"
)

const origin = "live"

// Interp is the live interpreter. It owns no state between steps beyond
// its console endpoints and PRNG.
type Interp struct {
	in  *bufio.Reader
	out io.Writer
	rng *rand.Rand
	rec *tape.Recorder
	log *slog.Logger
}

// Option configures an Interp.
type Option func(*Interp)

// WithInput sets the reader console lines are consumed from.
func WithInput(r io.Reader) Option {
	return func(in *Interp) { in.in = bufio.NewReader(r) }
}

// WithOutput sets the writer console lines are emitted to.
func WithOutput(w io.Writer) Option {
	return func(in *Interp) { in.out = w }
}

// WithSeed fixes the PRNG seed. Without it the PRNG is seeded from
// crypto/rand.
func WithSeed(seed int64) Option {
	return func(in *Interp) { in.rng = rand.New(rand.NewSource(seed)) }
}

// WithRecorder attaches a tape recorder capturing consumed lines, draws,
// and emitted lines.
func WithRecorder(rec *tape.Recorder) Option {
	return func(in *Interp) { in.rec = rec }
}

// WithLogger sets the interpreter's logger.
func WithLogger(l *slog.Logger) Option {
	return func(in *Interp) { in.log = l }
}

// New creates a live interpreter reading os.Stdin and writing os.Stdout
// unless configured otherwise.
func New(opts ...Option) *Interp {
	in := &Interp{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.rng == nil {
		in.rng = rand.New(rand.NewSource(cryptoSeed()))
	}
	return in
}

// step defers a computation as a nullary action.
type step struct {
	run func() (any, error)
}

func (step) Origin() string { return origin }

// Run forces the outermost action exactly once. Effects occur
// left-to-right in chain order. I/O failures propagate undecorated with
// recovery; callers decide what a fatal run means.
func (in *Interp) Run(s effect.Step) (any, error) {
	t, err := in.coerce(s)
	if err != nil {
		return nil, err
	}
	v, err := t.run()
	if err != nil {
		in.log.Debug("live run failed", "error", err)
		return nil, err
	}
	return v, nil
}

// Finish wraps a constant-returning action.
func (in *Interp) Finish(v any) effect.Step {
	return step{run: func() (any, error) { return v, nil }}
}

// Chain builds an action that runs s, feeds its value to next, and runs
// the continuation. Nothing executes until the result is forced.
func (in *Interp) Chain(s effect.Step, next func(any) effect.Step) effect.Step {
	return step{run: func() (any, error) {
		pred, err := in.coerce(s)
		if err != nil {
			return nil, err
		}
		v, err := pred.run()
		if err != nil {
			return nil, err
		}
		cont, err := in.coerce(next(v))
		if err != nil {
			return nil, err
		}
		return cont.run()
	}}
}

// Map composes a pure transform after s.
func (in *Interp) Map(s effect.Step, f func(any) any) effect.Step {
	return step{run: func() (any, error) {
		pred, err := in.coerce(s)
		if err != nil {
			return nil, err
		}
		v, err := pred.run()
		if err != nil {
			return nil, err
		}
		return f(v), nil
	}}
}

// Loop drives body actions in a flat for-loop, so long sessions do not
// grow the call stack.
func (in *Interp) Loop(seed any, body func(any) effect.Step) effect.Step {
	return step{run: func() (any, error) {
		carried := seed
		for {
			bs, err := in.coerce(body(carried))
			if err != nil {
				return nil, err
			}
			v, err := bs.run()
			if err != nil {
				return nil, err
			}
			outcome, ok := v.(effect.LoopOutcome)
			if !ok {
				return nil, fmt.Errorf("live: body resolved to %T: %w", v, effect.ErrLoopOutcome)
			}
			if outcome.Done() {
				return outcome.Value(), nil
			}
			carried = outcome.Value()
		}
	}}
}

// PutLine writes one line to the console.
func (in *Interp) PutLine(line string) effect.Step {
	return step{run: func() (any, error) {
		if _, err := fmt.Fprintln(in.out, line); err != nil {
			return nil, fmt.Errorf("put line: %w", err)
		}
		if in.rec != nil {
			in.rec.RecordOutput(line)
		}
		return nil, nil
	}}
}

// ReadLine blocks for one line from the console. The trailing newline is
// stripped; a final unterminated line before EOF is still delivered.
func (in *Interp) ReadLine() effect.Step {
	return step{run: func() (any, error) {
		raw, err := in.in.ReadString('\n')
		if err != nil && !(err == io.EOF && raw != "") {
			return nil, fmt.Errorf("read line: %w", err)
		}
		line := strings.TrimRight(raw, "\r\n")
		if in.rec != nil {
			in.rec.RecordInput(line)
		}
		return line, nil
	}}
}

// NextInt draws from the PRNG in [0, upper).
func (in *Interp) NextInt(upper int) effect.Step {
	return step{run: func() (any, error) {
		if upper <= 0 {
			return nil, fmt.Errorf("next int: upper bound must be positive, got %d", upper)
		}
		n := in.rng.Intn(upper)
		if in.rec != nil {
			in.rec.RecordRandom(n)
		}
		return n, nil
	}}
}

func (in *Interp) coerce(s effect.Step) (step, error) {
	t, ok := s.(step)
	if !ok {
		return step{}, fmt.Errorf("live: cannot run %q step: %w", s.Origin(), effect.ErrForeignStep)
	}
	return t, nil
}

func cryptoSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		// crypto entropy unavailable; fall back to a process-local seed
		return int64(os.Getpid())
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

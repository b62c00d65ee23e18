// Package replay interprets effect steps deterministically: a step is a
// pure transformation of a Script record into an updated record plus a
// value. Reads and draws are served from the script's queues and fail
// closed when a queue runs dry, so a replayed run can never silently
// diverge from its script.
package replay

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrScriptExhausted reports a read or draw against an empty queue.
var ErrScriptExhausted = errors.New("script exhausted")

// ErrRandomOutOfRange reports a scripted draw outside the bound the
// program asked for.
var ErrRandomOutOfRange = errors.New("scripted draw out of range")

// Script is the record threaded through a deterministic run: the lines
// the program will read, the draws it will be served, and the lines it
// has emitted so far. Outputs are in emission order; Outputs[0] is the
// first line the program emitted.
//
// A Script is passed by value; every step owns the record it receives
// and produces a new one. After a run, Inputs and Randoms hold whatever
// remained unconsumed.
type Script struct {
	Inputs  []string `yaml:"inputs" json:"inputs"`
	Randoms []int    `yaml:"randoms" json:"randoms"`
	Outputs []string `yaml:"outputs,omitempty" json:"outputs,omitempty"`
}

// LoadScript reads a YAML script.
func LoadScript(r io.Reader) (Script, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Script{}, fmt.Errorf("read script: %w", err)
	}
	var sc Script
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return Script{}, fmt.Errorf("parse script: %w", err)
	}
	return sc, nil
}

func (sc Script) readLine() (Script, string, error) {
	if len(sc.Inputs) == 0 {
		return sc, "", fmt.Errorf("read line: inputs %w", ErrScriptExhausted)
	}
	head := sc.Inputs[0]
	sc.Inputs = sc.Inputs[1:]
	return sc, head, nil
}

func (sc Script) nextInt(upper int) (Script, int, error) {
	if upper <= 0 {
		return sc, 0, fmt.Errorf("next int: upper bound must be positive, got %d", upper)
	}
	if len(sc.Randoms) == 0 {
		return sc, 0, fmt.Errorf("next int: randoms %w", ErrScriptExhausted)
	}
	head := sc.Randoms[0]
	if head < 0 || head >= upper {
		return sc, 0, fmt.Errorf("next int: scripted draw %d outside [0, %d): %w", head, upper, ErrRandomOutOfRange)
	}
	sc.Randoms = sc.Randoms[1:]
	return sc, head, nil
}

func (sc Script) putLine(line string) Script {
	// clip capacity so the append can never write into a record owned by
	// an earlier step
	sc.Outputs = append(sc.Outputs[:len(sc.Outputs):len(sc.Outputs)], line)
	return sc
}

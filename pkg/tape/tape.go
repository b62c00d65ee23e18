// Package tape records the observable surface of a live run: every line
// the program consumed, every random draw it made, and every line it
// emitted, in order. A transcript is enough to re-execute the run under
// the deterministic interpreter and check that the output matches.
package tape

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/gowebpki/jcs"
)

// Kind classifies a transcript entry.
type Kind string

const (
	KindInput  Kind = "INPUT"
	KindRandom Kind = "RANDOM"
	KindOutput Kind = "OUTPUT"
)

// Entry is one recorded event of a live run.
type Entry struct {
	Seq       uint64 `json:"seq"`
	Kind      Kind   `json:"kind"`
	Value     string `json:"value"`
	ValueHash string `json:"value_hash"`
}

// Transcript is the ordered record of a single live run.
type Transcript struct {
	RunID   string  `json:"run_id"`
	Entries []Entry `json:"entries"`
}

// Load reads a JSON transcript.
func Load(r io.Reader) (*Transcript, error) {
	var t Transcript
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	return &t, nil
}

// Write serializes the transcript as indented JSON.
func (t *Transcript) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	return nil
}

// Inputs returns the consumed lines in consumption order.
func (t *Transcript) Inputs() []string {
	return t.values(KindInput)
}

// OutputLog returns the emitted lines in emission order.
func (t *Transcript) OutputLog() []string {
	return t.values(KindOutput)
}

// Randoms returns the recorded draws in draw order.
func (t *Transcript) Randoms() ([]int, error) {
	var draws []int
	for _, e := range t.Entries {
		if e.Kind != KindRandom {
			continue
		}
		n, err := strconv.Atoi(e.Value)
		if err != nil {
			return nil, fmt.Errorf("transcript entry seq=%d: bad random value %q: %w", e.Seq, e.Value, err)
		}
		draws = append(draws, n)
	}
	return draws, nil
}

// Digest returns the canonical digest of the output log.
func (t *Transcript) Digest() (string, error) {
	return DigestLines(t.OutputLog())
}

func (t *Transcript) values(kind Kind) []string {
	var vals []string
	for _, e := range t.Entries {
		if e.Kind == kind {
			vals = append(vals, e.Value)
		}
	}
	return vals
}

// DigestLines hashes a line sequence through canonical JSON, so two logs
// compare equal exactly when they are the same lines in the same order.
func DigestLines(lines []string) (string, error) {
	if lines == nil {
		lines = []string{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("marshal output log: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("canonicalize output log: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func hashValue(v string) string {
	sum := sha256.Sum256([]byte(v))
	return hex.EncodeToString(sum[:])
}

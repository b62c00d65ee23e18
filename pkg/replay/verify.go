package replay

import (
	"fmt"

	"github.com/rewindlabs/rewind/pkg/effect"
	"github.com/rewindlabs/rewind/pkg/tape"
)

// Program builds the effect computation to run against a capability set.
type Program func(caps effect.Capabilities) effect.Step

// Report is the outcome of replaying a transcript against a program.
type Report struct {
	RunID           string `json:"run_id"`
	Verified        bool   `json:"verified"`
	WantDigest      string `json:"want_digest"`
	GotDigest       string `json:"got_digest"`
	DivergencePoint int    `json:"divergence_point"` // first differing output line, -1 if none
	Reason          string `json:"reason,omitempty"`
}

// Verify re-executes a recorded live run deterministically and compares
// output logs. The transcript's inputs and draws become the script; the
// transcript's output log is the expected emission sequence.
func Verify(tr *tape.Transcript, program Program) (*Report, error) {
	report := &Report{RunID: tr.RunID, DivergencePoint: -1}

	wantDigest, err := tr.Digest()
	if err != nil {
		return nil, fmt.Errorf("digest transcript: %w", err)
	}
	report.WantDigest = wantDigest

	randoms, err := tr.Randoms()
	if err != nil {
		return nil, err
	}
	initial := Script{Inputs: tr.Inputs(), Randoms: randoms}

	in := New()
	final, _, err := in.Run(program(in), initial)
	if err != nil {
		report.Reason = fmt.Sprintf("replay failed: %v", err)
		return report, nil
	}

	gotDigest, err := tape.DigestLines(final.Outputs)
	if err != nil {
		return nil, fmt.Errorf("digest replayed log: %w", err)
	}
	report.GotDigest = gotDigest

	if gotDigest == wantDigest {
		report.Verified = true
		return report, nil
	}

	report.DivergencePoint = divergencePoint(tr.OutputLog(), final.Outputs)
	report.Reason = fmt.Sprintf("output logs diverge at line %d", report.DivergencePoint)
	return report, nil
}

func divergencePoint(want, got []string) int {
	for i := range want {
		if i >= len(got) || want[i] != got[i] {
			return i
		}
	}
	return len(want)
}

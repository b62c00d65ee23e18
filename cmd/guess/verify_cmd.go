package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rewindlabs/rewind/pkg/config"
	"github.com/rewindlabs/rewind/pkg/effect"
	"github.com/rewindlabs/rewind/pkg/game"
	"github.com/rewindlabs/rewind/pkg/replay"
	"github.com/rewindlabs/rewind/pkg/tape"
)

// runVerifyCmd implements `guess verify`: replays a recorded transcript
// deterministically and reports whether the output log matches.
//
// Exit codes:
//
//	0 = verified
//	1 = diverged
//	2 = runtime error
func runVerifyCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("verify", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		transcriptPath string
		jsonOutput     bool
	)
	cmd.StringVar(&transcriptPath, "transcript", "", "Path to transcript JSON (REQUIRED)")
	cmd.BoolVar(&jsonOutput, "json", false, "Print the report as JSON")

	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if transcriptPath == "" {
		_, _ = fmt.Fprintln(stderr, "Error: -transcript is required")
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	f, err := os.Open(transcriptPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	defer f.Close()

	tr, err := tape.Load(f)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	report, err := replay.Verify(tr, func(caps effect.Capabilities) effect.Step {
		return game.PlayWith(caps, game.Options{MaxContinueRetries: cfg.MaxRetries})
	})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if jsonOutput {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
		_, _ = fmt.Fprintln(stdout, string(data))
	} else if report.Verified {
		_, _ = fmt.Fprintf(stdout, "VERIFIED run %s (%d output lines)\n", report.RunID, len(tr.OutputLog()))
	} else {
		_, _ = fmt.Fprintf(stdout, "DIVERGED run %s: %s\n", report.RunID, report.Reason)
	}

	if !report.Verified {
		return 1
	}
	return 0
}

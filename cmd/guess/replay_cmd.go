package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rewindlabs/rewind/pkg/config"
	"github.com/rewindlabs/rewind/pkg/game"
	"github.com/rewindlabs/rewind/pkg/replay"
)

// runReplayCmd implements `guess replay`: a deterministic run of the
// game from a YAML script. The final output log is printed to stdout,
// one line per emitted line.
//
// Exit codes:
//
//	0 = replay completed
//	1 = replay failed (script exhausted, draw out of range)
//	2 = usage or configuration error
func runReplayCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("replay", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var scriptPath string
	cmd.StringVar(&scriptPath, "script", "", "Path to YAML script, or - for stdin (REQUIRED)")

	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if scriptPath == "" {
		_, _ = fmt.Fprintln(stderr, "Error: -script is required")
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	src := stdin
	if scriptPath != "-" {
		f, err := os.Open(scriptPath)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
		defer f.Close()
		src = f
	}

	sc, err := replay.LoadScript(src)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	in := replay.New()
	final, _, runErr := in.Run(game.PlayWith(in, game.Options{MaxContinueRetries: cfg.MaxRetries}), sc)

	for _, line := range final.Outputs {
		_, _ = fmt.Fprintln(stdout, line)
	}
	if runErr != nil {
		_, _ = fmt.Fprintf(stderr, "Error: replay failed: %v\n", runErr)
		return 1
	}
	return 0
}

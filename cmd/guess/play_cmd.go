package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rewindlabs/rewind/pkg/config"
	"github.com/rewindlabs/rewind/pkg/game"
	"github.com/rewindlabs/rewind/pkg/live"
	"github.com/rewindlabs/rewind/pkg/tape"
)

// runPlayCmd implements `guess play`: a live run against the real
// console. With -record, the run's transcript is written out so it can
// later be verified deterministically.
//
// Exit codes:
//
//	0 = game completed (player declined to continue, or input ended)
//	1 = fatal interpreter error
//	2 = usage or configuration error
func runPlayCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("play", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var recordPath string
	cmd.StringVar(&recordPath, "record", "", "Write a transcript of the run to this path")

	if err := cmd.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	opts := []live.Option{
		live.WithInput(stdin),
		live.WithOutput(stdout),
		live.WithLogger(logger),
	}
	if cfg.Seed != 0 {
		opts = append(opts, live.WithSeed(cfg.Seed))
	}

	var rec *tape.Recorder
	if recordPath != "" {
		rec = tape.NewRecorder()
		opts = append(opts, live.WithRecorder(rec))
	}

	in := live.New(opts...)
	_, runErr := in.Run(game.PlayWith(in, game.Options{MaxContinueRetries: cfg.MaxRetries}))
	if runErr != nil && !errors.Is(runErr, io.EOF) {
		logger.Error("game aborted", "error", runErr)
		return 1
	}

	if rec != nil {
		if err := writeTranscript(rec.Transcript(), recordPath); err != nil {
			logger.Error("write transcript", "error", err)
			return 1
		}
		logger.Info("transcript written", "path", recordPath, "entries", rec.Count())
	}
	return 0
}

func writeTranscript(tr *tape.Transcript, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := tr.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

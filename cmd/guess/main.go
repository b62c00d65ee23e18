// Command guess plays the number-guessing game live, replays a scripted
// run deterministically, or verifies a recorded transcript.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(Run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// Run dispatches subcommands. It exists so tests can drive the binary
// with in-memory streams.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		return runPlayCmd(nil, stdin, stdout, stderr)
	}

	switch args[1] {
	case "play":
		return runPlayCmd(args[2:], stdin, stdout, stderr)
	case "replay":
		return runReplayCmd(args[2:], stdin, stdout, stderr)
	case "verify":
		return runVerifyCmd(args[2:], stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "unknown command: %s\n", args[1])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, `usage: guess [command]

Commands:
  play      Play the game on the console (default)
              -record <path>  write a transcript of the run
  replay    Re-run the game from a script
              -script <path>  YAML script, or - for stdin
  verify    Replay a recorded transcript and check for divergence
              -transcript <path>  transcript JSON
              -json               print the report as JSON`)
}

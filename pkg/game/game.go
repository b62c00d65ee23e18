// Package game implements the number-guessing program once, against the
// capability interfaces. It names no interpreter: the same computation
// runs live from cmd/guess and deterministically from the replay harness.
package game

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/rewindlabs/rewind/pkg/effect"
)

// targetUpper is the exclusive bound of the raw draw; targets land in
// [1, targetUpper] after the +1 mapping.
const targetUpper = 5

// Options tunes the game flow.
type Options struct {
	// MaxContinueRetries bounds how many unrecognized continue-answers
	// are tolerated before the game treats the player as declining.
	// Zero retries forever.
	MaxContinueRetries int
}

var foldCase = cases.Fold()

// Play builds the whole game with default options: name prompt,
// greeting, then rounds until the player declines to continue.
func Play(caps effect.Capabilities) effect.Step {
	return PlayWith(caps, Options{})
}

// PlayWith builds the whole game. The step resolves to nil.
func PlayWith(caps effect.Capabilities, opts Options) effect.Step {
	return effect.Next(caps, caps.PutLine("What is your name?"), func() effect.Step {
		return effect.Then(caps, caps.ReadLine(), func(name string) effect.Step {
			greeting := fmt.Sprintf("Hello, %s, welcome to the game!", name)
			return effect.Next(caps, caps.PutLine(greeting), func() effect.Step {
				return gameLoop(caps, opts, name)
			})
		})
	})
}

// gameLoop plays rounds until checkContinue resolves false.
func gameLoop(caps effect.Capabilities, opts Options, name string) effect.Step {
	return caps.Loop(nil, func(any) effect.Step {
		return effect.Next(caps, round(caps, name), func() effect.Step {
			return effect.To(caps, checkContinue(caps, opts, name), func(again bool) any {
				if again {
					return effect.Continue(nil)
				}
				return effect.Break(nil)
			})
		})
	})
}

// round draws a target, prompts for a guess, and emits the verdict.
func round(caps effect.Capabilities, name string) effect.Step {
	return effect.Then(caps, caps.NextInt(targetUpper), func(draw int) effect.Step {
		target := draw + 1
		prompt := fmt.Sprintf("Dear %s, please guess a number from 1 to 5:", name)
		return effect.Next(caps, caps.PutLine(prompt), func() effect.Step {
			return effect.Then(caps, caps.ReadLine(), func(raw string) effect.Step {
				guess, err := strconv.Atoi(strings.TrimSpace(raw))
				switch {
				case err != nil:
					return caps.PutLine("You did not enter a number")
				case guess == target:
					return caps.PutLine(fmt.Sprintf("You guessed right, %s! The number was: %d", name, target))
				default:
					return caps.PutLine(fmt.Sprintf("You guessed wrong, %s! You guessed %d but the number was: %d", name, guess, target))
				}
			})
		})
	})
}

// checkContinue prompts until the player answers y or n. The step
// resolves to a bool. Retries are iterative; an unbounded game never
// grows the call stack.
func checkContinue(caps effect.Capabilities, opts Options, name string) effect.Step {
	prompt := fmt.Sprintf("Do you want to continue, %s?", name)
	return caps.Loop(0, func(v any) effect.Step {
		attempt := v.(int)
		return effect.Next(caps, caps.PutLine(prompt), func() effect.Step {
			return effect.Then(caps, caps.ReadLine(), func(answer string) effect.Step {
				switch foldCase.String(strings.TrimSpace(answer)) {
				case "y":
					return caps.Finish(effect.Break(true))
				case "n":
					return caps.Finish(effect.Break(false))
				}
				if opts.MaxContinueRetries > 0 && attempt+1 >= opts.MaxContinueRetries {
					goodbye := fmt.Sprintf("I give up, %s. Goodbye!", name)
					return effect.Next(caps, caps.PutLine(goodbye), func() effect.Step {
						return caps.Finish(effect.Break(false))
					})
				}
				return caps.Finish(effect.Continue(attempt + 1))
			})
		})
	})
}

package replay_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rewindlabs/rewind/pkg/effect"
	"github.com/rewindlabs/rewind/pkg/game"
	"github.com/rewindlabs/rewind/pkg/live"
	"github.com/rewindlabs/rewind/pkg/replay"
	"github.com/rewindlabs/rewind/pkg/tape"
)

// recordedGame plays a live game against in-memory streams with a
// recorder attached and returns its transcript.
func recordedGame(t *testing.T, input string, seed int64) *tape.Transcript {
	t.Helper()
	rec := tape.NewRecorder()
	in := live.New(
		live.WithInput(strings.NewReader(input)),
		live.WithOutput(&bytes.Buffer{}),
		live.WithSeed(seed),
		live.WithRecorder(rec),
	)
	_, err := in.Run(game.Play(in))
	require.NoError(t, err)
	return rec.Transcript()
}

func TestVerify_RecordedRunReplaysIdentically(t *testing.T) {
	tr := recordedGame(t, "Alice\n3\nn\n", 7)

	report, err := replay.Verify(tr, func(caps effect.Capabilities) effect.Step {
		return game.Play(caps)
	})
	require.NoError(t, err)
	require.True(t, report.Verified, "reason: %s", report.Reason)
	require.Equal(t, report.WantDigest, report.GotDigest)
	require.Equal(t, -1, report.DivergencePoint)
	require.Equal(t, tr.RunID, report.RunID)
}

func TestVerify_TamperedOutputDiverges(t *testing.T) {
	tr := recordedGame(t, "Alice\n3\nn\n", 7)

	// flip the greeting line
	for i, e := range tr.Entries {
		if e.Kind == tape.KindOutput && strings.HasPrefix(e.Value, "Hello, ") {
			tr.Entries[i].Value = "Hello, Mallory, welcome to the game!"
			break
		}
	}

	report, err := replay.Verify(tr, func(caps effect.Capabilities) effect.Step {
		return game.Play(caps)
	})
	require.NoError(t, err)
	require.False(t, report.Verified)
	require.Equal(t, 1, report.DivergencePoint)
	require.NotEqual(t, report.WantDigest, report.GotDigest)
}

func TestVerify_DifferentProgramFailsClosed(t *testing.T) {
	tr := recordedGame(t, "Alice\n3\nn\n", 7)

	// a program that reads more than the transcript holds
	greedy := func(caps effect.Capabilities) effect.Step {
		return caps.Chain(game.Play(caps), func(any) effect.Step {
			return caps.ReadLine()
		})
	}
	report, err := replay.Verify(tr, greedy)
	require.NoError(t, err)
	require.False(t, report.Verified)
	require.Contains(t, report.Reason, "replay failed")
}

package replay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rewindlabs/rewind/pkg/effect"
)

func TestFinish_LeavesRecordUntouched(t *testing.T) {
	in := New()
	initial := Script{Inputs: []string{"a"}, Randoms: []int{1}}
	final, v, err := in.Run(in.Finish(42), initial)
	require.NoError(t, err)
	require.Equal(t, 42, v)
	require.Equal(t, initial, final)
}

func TestChain_ThreadsRecordSequentially(t *testing.T) {
	in := New()
	s := in.Chain(in.ReadLine(), func(v any) effect.Step {
		return in.PutLine("got " + v.(string))
	})
	final, _, err := in.Run(s, Script{Inputs: []string{"hello", "later"}})
	require.NoError(t, err)
	require.Equal(t, []string{"later"}, final.Inputs)
	require.Equal(t, []string{"got hello"}, final.Outputs)
}

func TestMap_TransformsOnlyTheValue(t *testing.T) {
	in := New()
	s := in.Map(in.ReadLine(), func(v any) any {
		return strings.ToUpper(v.(string))
	})
	final, v, err := in.Run(s, Script{Inputs: []string{"shout"}})
	require.NoError(t, err)
	require.Equal(t, "SHOUT", v)
	require.Empty(t, final.Inputs)
	require.Empty(t, final.Outputs)
}

func TestPutLine_AppendsInEmissionOrder(t *testing.T) {
	in := New()
	s := in.Chain(in.PutLine("first"), func(any) effect.Step {
		return in.PutLine("second")
	})
	final, _, err := in.Run(s, Script{})
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second"}, final.Outputs)
}

func TestPutLine_DoesNotAliasSiblingRecords(t *testing.T) {
	in := New()
	shared, _, err := in.Run(in.PutLine("base"), Script{})
	require.NoError(t, err)

	left, _, err := in.Run(in.PutLine("left"), shared)
	require.NoError(t, err)
	right, _, err := in.Run(in.PutLine("right"), shared)
	require.NoError(t, err)

	require.Equal(t, []string{"base", "left"}, left.Outputs)
	require.Equal(t, []string{"base", "right"}, right.Outputs)
}

func TestReadLine_Exhausted(t *testing.T) {
	in := New()
	_, _, err := in.Run(in.ReadLine(), Script{})
	require.ErrorIs(t, err, ErrScriptExhausted)
	require.Contains(t, err.Error(), "inputs")
}

func TestNextInt_Exhausted(t *testing.T) {
	in := New()
	_, _, err := in.Run(in.NextInt(5), Script{})
	require.ErrorIs(t, err, ErrScriptExhausted)
	require.Contains(t, err.Error(), "randoms")
}

func TestNextInt_EnforcesBound(t *testing.T) {
	in := New()
	_, _, err := in.Run(in.NextInt(5), Script{Randoms: []int{5}})
	require.ErrorIs(t, err, ErrRandomOutOfRange)

	_, _, err = in.Run(in.NextInt(5), Script{Randoms: []int{-1}})
	require.ErrorIs(t, err, ErrRandomOutOfRange)

	final, v, err := in.Run(in.NextInt(5), Script{Randoms: []int{4}})
	require.NoError(t, err)
	require.Equal(t, 4, v)
	require.Empty(t, final.Randoms)
}

func TestNextInt_RejectsBadBound(t *testing.T) {
	in := New()
	_, _, err := in.Run(in.NextInt(0), Script{Randoms: []int{0}})
	require.Error(t, err)
}

func TestLoop_ThreadsRecordAcrossIterations(t *testing.T) {
	in := New()
	s := in.Loop(0, func(v any) effect.Step {
		i := v.(int)
		if i == 3 {
			return in.Finish(effect.Break(i))
		}
		return in.Map(in.PutLine("tick"), func(any) any {
			return effect.Continue(i + 1)
		})
	})
	final, v, err := in.Run(s, Script{})
	require.NoError(t, err)
	require.Equal(t, 3, v)
	require.Equal(t, []string{"tick", "tick", "tick"}, final.Outputs)
}

func TestLoop_RejectsBadOutcome(t *testing.T) {
	in := New()
	s := in.Loop(nil, func(any) effect.Step {
		return in.Finish("not an outcome")
	})
	_, _, err := in.Run(s, Script{})
	require.ErrorIs(t, err, effect.ErrLoopOutcome)
}

func TestRun_RejectsForeignStep(t *testing.T) {
	in := New()
	_, _, err := in.Run(fakeStep{}, Script{})
	require.ErrorIs(t, err, effect.ErrForeignStep)
	require.Contains(t, err.Error(), "live")
}

type fakeStep struct{}

func (fakeStep) Origin() string { return "live" }

func TestLoadScript(t *testing.T) {
	src := strings.NewReader(`
inputs:
  - Alice
  - "3"
  - "n"
randoms:
  - 2
`)
	sc, err := LoadScript(src)
	require.NoError(t, err)
	require.Equal(t, Script{Inputs: []string{"Alice", "3", "n"}, Randoms: []int{2}}, sc)
}

func TestLoadScript_BadYAML(t *testing.T) {
	_, err := LoadScript(strings.NewReader("inputs: {nope"))
	require.Error(t, err)
}

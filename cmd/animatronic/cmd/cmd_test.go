package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/animatronic/pkg/animation"
	animerrors "github.com/go-drift/animatronic/pkg/errors"
	"github.com/go-drift/animatronic/pkg/sequence"
	"github.com/go-drift/animatronic/pkg/style"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() { animerrors.SetHandler(nil) })

	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "animatronic "+Version)
}

func TestSubcommandsRegistered(t *testing.T) {
	root := NewRootCommand()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"validate", "play", "reverse", "tui"})
}

func TestValidate(t *testing.T) {
	out, _, err := execute(t, "validate", "testdata/intro.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "ok   default: 2 phases, 4 declarations, ~")
	assert.Contains(t, out, "ok   pulse: 1 phases, 1 declarations, 120ms")
}

func TestValidate_UnknownComponent(t *testing.T) {
	out, _, err := execute(t, "validate", "testdata/undeclared.yaml")
	require.Error(t, err)
	assert.Contains(t, out, "FAIL default")
	assert.Contains(t, out, "ghost")
	assert.Contains(t, err.Error(), "1 of 1 animations failed")
}

func TestValidate_Lenient(t *testing.T) {
	out, _, err := execute(t, "--config", "testdata/lenient.yaml", "validate", "testdata/undeclared.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "ok   default: 1 phases, 2 declarations, 100ms")
}

func TestValidate_MissingFile(t *testing.T) {
	_, _, err := execute(t, "validate", "testdata/missing.yaml")
	require.Error(t, err)
}

func TestPlay_Instant(t *testing.T) {
	out, _, err := execute(t, "play", "--instant", "testdata/intro.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "box: background-color=#00ff00 left=40px width=8px")
	assert.Contains(t, out, "bar: background-color=#0000ff left=20px width=6px")
}

func TestPlay_NamedAnimation(t *testing.T) {
	out, _, err := execute(t, "play", "--instant", "testdata/intro.yaml", "pulse")
	require.NoError(t, err)
	assert.Contains(t, out, "box: background-color=#ff0000 left=0px width=16px")
}

func TestReverse_Instant(t *testing.T) {
	out, _, err := execute(t, "reverse", "--instant", "testdata/intro.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "box: background-color=#ff0000 left=0px width=8px")
	assert.Contains(t, out, "bar: background-color=#0000ff left=0px width=4px")

	flagOut, _, err := execute(t, "play", "--instant", "--reverse", "testdata/intro.yaml")
	require.NoError(t, err)
	assert.Equal(t, out, flagOut)
}

func TestPlay_Trace(t *testing.T) {
	out, _, err := execute(t, "play", "--instant", "--trace", "--fps", "100", "testdata/intro.yaml", "pulse")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 2)
	assert.Contains(t, lines[0], "box  width=")
	assert.Contains(t, out, "120ms  box  width=16px")
}

func TestPlay_Timeout(t *testing.T) {
	_, _, err := execute(t, "play", "--timeout", "20ms", "testdata/intro.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stopped after 20ms")
}

func TestStopAfter(t *testing.T) {
	loop := animation.NewFrameLoop(animation.SystemClock{})
	stopped := make(chan struct{})
	go stopAfter(context.Background(), loop, time.Millisecond, func() { close(stopped) })

	require.Eventually(t, loop.Pending, time.Second, time.Millisecond)
	loop.Pump()
	select {
	case <-stopped:
	default:
		t.Fatal("stop was not run by Pump")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stopAfter(ctx, loop, time.Hour, func() { t.Error("stop ran after cancel") })
	assert.False(t, loop.Pending())
}

func TestPlay_Errors(t *testing.T) {
	_, _, err := execute(t, "play", "--instant", "testdata/intro.yaml", "missing")
	require.Error(t, err)
	assert.Equal(t, animerrors.KindUnknownAnimation, animerrors.KindOf(err))

	_, _, err = execute(t, "play", "--instant", "testdata/undeclared.yaml")
	require.Error(t, err)
	assert.Equal(t, animerrors.KindUnknownComponent, animerrors.KindOf(err))
}

func TestPlay_LenientAddsComponents(t *testing.T) {
	out, _, err := execute(t, "--config", "testdata/lenient.yaml", "play", "--instant", "testdata/undeclared.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "box: left=10px")
	assert.Contains(t, out, "ghost: opacity=1")
}

func TestPlay_RealTime(t *testing.T) {
	start := time.Now()
	out, _, err := execute(t, "play", "--fps", "120", "testdata/intro.yaml", "pulse")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 120*time.Millisecond)
	assert.Contains(t, out, "width=16px")
}

func TestEstimate(t *testing.T) {
	seq := sequence.Sequence{
		{
			"a": {sequence.Timed(nil, nil, 100*time.Millisecond).WithDelay(50 * time.Millisecond)},
			"b": {
				sequence.Timed(nil, nil, 100*time.Millisecond),
				sequence.Timed(nil, nil, 100*time.Millisecond),
			},
		},
		{"a": {sequence.Timed(nil, nil, 30*time.Millisecond)}},
	}
	d, approx, ok := estimate(seq)
	require.True(t, ok)
	assert.False(t, approx)
	assert.Equal(t, 230*time.Millisecond, d)

	seq = append(seq, sequence.Phase{"a": {sequence.Spring(
		style.Map{"left": "0px"}, style.Map{"left": "100px"}, 200, 20,
	)}})
	d, approx, ok = estimate(seq)
	require.True(t, ok)
	assert.True(t, approx)
	assert.Greater(t, d, 230*time.Millisecond)

	seq[len(seq)-1] = sequence.Phase{"a": {sequence.Spring(
		style.Map{"left": "0px"}, style.Map{"left": "100px"}, 0, 20,
	)}}
	_, _, ok = estimate(seq)
	assert.False(t, ok)
}

func TestFormatStyles(t *testing.T) {
	assert.Equal(t, "a=1 b=2px", formatStyles(style.Map{"b": "2px", "a": 1}))
	assert.Empty(t, formatStyles(nil))
}

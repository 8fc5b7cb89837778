package runner

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/mlrun/internal/executor"
	"github.com/hupe1980/mlrun/internal/render"
	"github.com/hupe1980/mlrun/internal/source"
)

type stubExecutor struct {
	res     executor.Result
	targets []source.Target
}

func (s *stubExecutor) Execute(_ context.Context, target source.Target) executor.Result {
	s.targets = append(s.targets, target)
	res := s.res
	res.Name = target.Name

	return res
}

// cancellingExecutor cancels the pass context mid-run, the way Ctrl-C kills
// the interpreter in live mode.
type cancellingExecutor struct {
	cancel context.CancelFunc
}

func (c cancellingExecutor) Execute(_ context.Context, target source.Target) executor.Result {
	c.cancel()

	return executor.Result{Status: executor.StatusFailed, Name: target.Name, Err: errors.New("signal: killed")}
}

type failingRenderer struct{}

func (failingRenderer) ShowError(string) error { return errors.New("broken pipe") }
func (failingRenderer) ShowSuccess(string, []byte) error { return errors.New("broken pipe") }

var target = source.Target{Path: "/src/foo.ml", Name: "foo.ml"}

func TestRun_Success(t *testing.T) {
	exec := &stubExecutor{res: executor.Result{Status: executor.StatusSucceeded, Output: []byte("42")}}

	var buf bytes.Buffer
	r := New(target, exec, render.NewTerminal(&buf, true))

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, []source.Target{target}, exec.targets)
	assert.Contains(t, buf.String(), "success: Successfully executed the file `foo.ml`:")
	assert.Contains(t, buf.String(), "42")
}

func TestRun_FailureIsRenderedNotReturned(t *testing.T) {
	exec := &stubExecutor{res: executor.Result{
		Status: executor.StatusFailed,
		Stderr: []byte("Error: Syntax error"),
		Err:    errors.New("exit status 2"),
	}}

	var buf bytes.Buffer
	r := New(target, exec, render.NewTerminal(&buf, true))

	require.NoError(t, r.Run(context.Background()))
	assert.Contains(t, buf.String(), "error: An error occurred while executing `foo.ml`")
	assert.NotContains(t, buf.String(), "Syntax error")
}

func TestRun_EachCallIsOnePass(t *testing.T) {
	exec := &stubExecutor{res: executor.Result{Status: executor.StatusSucceeded}}
	r := New(target, exec, render.NewTerminal(&bytes.Buffer{}, true))

	for iter := 0; iter < 3; iter++ {
		require.NoError(t, r.Run(context.Background()))
	}

	assert.Len(t, exec.targets, 3)
}

func TestRun_RendererError(t *testing.T) {
	exec := &stubExecutor{res: executor.Result{Status: executor.StatusSucceeded}}
	r := New(target, exec, failingRenderer{})

	err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rendering result for foo.ml")
}

func TestRun_InterruptedPassIsNotRendered(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var buf bytes.Buffer
	r := New(target, cancellingExecutor{cancel: cancel}, render.NewTerminal(&buf, true))

	require.NoError(t, r.Run(ctx))
	assert.Empty(t, buf.String())
}

func TestRun_InterruptedPassSkipsRenderer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := New(target, cancellingExecutor{cancel: cancel}, failingRenderer{})
	assert.NoError(t, r.Run(ctx))
}

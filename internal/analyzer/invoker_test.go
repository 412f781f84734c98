package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCall struct {
	name string
	args []string
}

type fakeResponse struct {
	out RunOutput
	err error
	// block waits for ctx to be done before returning.
	block bool
}

type fakeRunner struct {
	responses map[string]fakeResponse
	calls     []fakeCall
}

func (f *fakeRunner) Run(ctx context.Context, name string, args []string) (RunOutput, error) {
	f.calls = append(f.calls, fakeCall{name: name, args: append([]string(nil), args...)})
	resp, ok := f.responses[name]
	if !ok {
		return RunOutput{ExitCode: -1}, errors.New("exec: \"" + name + "\": executable file not found in $PATH")
	}
	if resp.block {
		<-ctx.Done()
		return RunOutput{ExitCode: -1}, ctx.Err()
	}
	return resp.out, resp.err
}

func (f *fakeRunner) names() []string {
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.name)
	}
	return out
}

func TestInvokeStopsAtFirstSuccess(t *testing.T) {
	runner := &fakeRunner{responses: map[string]fakeResponse{
		"a": {out: RunOutput{Stdout: "transcript"}},
		"b": {out: RunOutput{Stdout: "never"}},
	}}
	candidates := []Candidate{{Command: "a"}, {Command: "b"}}

	res, err := Invoke(context.Background(), runner, candidates, "bcf.py", nil, Options{})
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, "transcript", res.Stdout)
	assert.Equal(t, "a", res.Candidate.Command)
	assert.Equal(t, []string{"a"}, runner.names())
}

func TestInvokeAppendsPrefixScriptAndArgs(t *testing.T) {
	runner := &fakeRunner{responses: map[string]fakeResponse{
		"py": {out: RunOutput{Stdout: "{}"}},
	}}
	candidates := []Candidate{{Command: "py", Prefix: []string{"-3"}}}

	_, err := Invoke(context.Background(), runner, candidates, "bcf_detecter.py", []string{"--json"}, Options{})
	require.NoError(t, err)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"-3", "bcf_detecter.py", "--json"}, runner.calls[0].args)
}

func TestInvokeSkipsWhitespaceOnlyOutput(t *testing.T) {
	runner := &fakeRunner{responses: map[string]fakeResponse{
		"empty": {out: RunOutput{Stdout: "  \n\t "}},
		"good":  {out: RunOutput{Stdout: "ok"}},
	}}
	var seen []Attempt
	res, err := Invoke(context.Background(), runner,
		[]Candidate{{Command: "empty"}, {Command: "good"}},
		"s", nil, Options{OnAttempt: func(a Attempt) { seen = append(seen, a) }})

	require.NoError(t, err)
	assert.Equal(t, "good", res.Candidate.Command)
	require.Len(t, seen, 2)
	assert.Equal(t, OutcomeEmptyOutput, seen[0].Outcome)
	assert.Equal(t, OutcomeOK, seen[1].Outcome)
}

func TestInvokeAdvancesPastSpawnAndExitErrors(t *testing.T) {
	runner := &fakeRunner{responses: map[string]fakeResponse{
		"broken": {out: RunOutput{Stdout: "partial", Stderr: "Traceback", ExitCode: 1}, err: &ExitError{Code: 1}},
		"good":   {out: RunOutput{Stdout: "done"}},
	}}
	var outcomes []Outcome
	res, err := Invoke(context.Background(), runner,
		[]Candidate{{Command: "missing"}, {Command: "broken"}, {Command: "good"}},
		"s", nil, Options{OnAttempt: func(a Attempt) { outcomes = append(outcomes, a.Outcome) }})

	require.NoError(t, err)
	assert.Equal(t, "done", res.Stdout)
	assert.Equal(t, []Outcome{OutcomeSpawnError, OutcomeExitError, OutcomeOK}, outcomes)
}

func TestInvokeAllFail(t *testing.T) {
	runner := &fakeRunner{responses: map[string]fakeResponse{
		"broken": {out: RunOutput{ExitCode: 2}, err: &ExitError{Code: 2}},
	}}
	res, err := Invoke(context.Background(), runner,
		[]Candidate{{Command: "missing"}, {Command: "broken"}},
		"s", nil, Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoAnalyzer)
	assert.False(t, res.OK)
	assert.Empty(t, res.Stdout)
	assert.Equal(t, "no analyzer found or script failed", res.Stderr)

	var invErr *InvocationError
	require.ErrorAs(t, err, &invErr)
	require.Len(t, invErr.Attempts, 2)
	assert.Equal(t, OutcomeSpawnError, invErr.Attempts[0].Outcome)
	assert.Equal(t, OutcomeExitError, invErr.Attempts[1].Outcome)
	assert.Equal(t, 2, invErr.Attempts[1].ExitCode)
}

func TestInvokeNoCandidates(t *testing.T) {
	res, err := Invoke(context.Background(), &fakeRunner{}, nil, "s", nil, Options{})
	assert.ErrorIs(t, err, ErrNoAnalyzer)
	assert.False(t, res.OK)
}

func TestInvokeTimeoutMovesOn(t *testing.T) {
	runner := &fakeRunner{responses: map[string]fakeResponse{
		"hang": {block: true},
		"good": {out: RunOutput{Stdout: "late but fine"}},
	}}
	var outcomes []Outcome
	res, err := Invoke(context.Background(), runner,
		[]Candidate{{Command: "hang"}, {Command: "good"}},
		"s", nil, Options{
			Timeout:   20 * time.Millisecond,
			OnAttempt: func(a Attempt) { outcomes = append(outcomes, a.Outcome) },
		})

	require.NoError(t, err)
	assert.Equal(t, "late but fine", res.Stdout)
	assert.Equal(t, []Outcome{OutcomeTimeout, OutcomeOK}, outcomes)
}

func TestInvokeStopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runner := &fakeRunner{responses: map[string]fakeResponse{
		"good": {out: RunOutput{Stdout: "x"}},
	}}

	_, err := Invoke(ctx, runner, []Candidate{{Command: "good"}}, "s", nil, Options{})
	assert.ErrorIs(t, err, ErrNoAnalyzer)
	assert.Empty(t, runner.calls)
}

func TestInvokerRunBindsScript(t *testing.T) {
	runner := &fakeRunner{responses: map[string]fakeResponse{
		"python3": {out: RunOutput{Stdout: "{\"healthy\":{}}"}},
	}}
	inv := &Invoker{
		Runner:     runner,
		Candidates: []Candidate{{Command: "python3"}},
		Script:     "/srv/bcf_detecter.py",
	}

	res, err := inv.Run(context.Background(), "--json")
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, []string{"/srv/bcf_detecter.py", "--json"}, runner.calls[0].args)
}

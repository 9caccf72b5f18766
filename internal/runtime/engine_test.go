package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/kestrel/internal/runtime"
	"github.com/aretw0/kestrel/pkg/domain"
	"github.com/aretw0/kestrel/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a service that records whether and with what it was invoked.
type recorder struct {
	input  domain.InputSpec
	output domain.OutputSpec
	result *domain.Result

	invoked bool
	seen    map[string]any
}

func (r *recorder) DescribeInput() domain.InputSpec   { return r.input }
func (r *recorder) DescribeOutput() domain.OutputSpec { return r.output }

func (r *recorder) Run(ctx context.Context, msg *domain.Message) *domain.Result {
	r.invoked = true
	r.seen = make(map[string]any, len(msg.Params))
	for k, v := range msg.Params {
		r.seen[k] = v
	}
	if r.result != nil {
		return r.result
	}
	return &domain.Result{Valid: true}
}

func newEngine(t *testing.T) (*runtime.Engine, *registry.Registry) {
	t.Helper()
	reg := registry.New()
	return runtime.NewEngine(reg), reg
}

func TestRunRequiredMissingSkipsService(t *testing.T) {
	engine, _ := newEngine(t)
	svc := &recorder{input: domain.InputSpec{Required: []string{"id"}}}

	mem, err := engine.Run(context.Background(), &domain.Message{Service: svc}, domain.Memory{})

	require.NoError(t, err)
	assert.False(t, mem.Valid())
	assert.False(t, svc.invoked, "service must not run when a required input is unresolvable")
}

func TestRunRequiredBoundFromMemory(t *testing.T) {
	engine, _ := newEngine(t)
	svc := &recorder{input: domain.InputSpec{Required: []string{"id"}}}

	mem, err := engine.Run(context.Background(), &domain.Message{Service: svc}, domain.Memory{"id": "42"})

	require.NoError(t, err)
	assert.True(t, mem.Valid())
	require.True(t, svc.invoked)
	assert.Equal(t, "42", svc.seen["id"])
}

func TestRunRequiredInputAlias(t *testing.T) {
	engine, _ := newEngine(t)
	svc := &recorder{input: domain.InputSpec{Required: []string{"id"}}}
	msg := &domain.Message{
		Service: svc,
		Input:   map[string]string{"id": "userID"},
	}

	mem, err := engine.Run(context.Background(), msg, domain.Memory{"userID": "ada"})

	require.NoError(t, err)
	assert.True(t, mem.Valid())
	assert.Equal(t, "ada", svc.seen["id"])
}

func TestRunOptionalDefault(t *testing.T) {
	engine, _ := newEngine(t)
	svc := &recorder{input: domain.InputSpec{Optional: map[string]any{"limit": 10}}}

	_, err := engine.Run(context.Background(), &domain.Message{Service: svc}, domain.Memory{})

	require.NoError(t, err)
	require.True(t, svc.invoked)
	assert.Equal(t, 10, svc.seen["limit"])
}

func TestRunOptionalMemoryBeatsDefault(t *testing.T) {
	engine, _ := newEngine(t)
	svc := &recorder{input: domain.InputSpec{Optional: map[string]any{"limit": 10}}}

	_, err := engine.Run(context.Background(), &domain.Message{Service: svc}, domain.Memory{"limit": 25})

	require.NoError(t, err)
	assert.Equal(t, 25, svc.seen["limit"])
}

func TestRunArgsImport(t *testing.T) {
	engine, _ := newEngine(t)
	svc := &recorder{}
	msg := &domain.Message{
		Service: svc,
		Args:    []string{"session", "missing"},
	}

	_, err := engine.Run(context.Background(), msg, domain.Memory{"session": "s-1"})

	require.NoError(t, err)
	assert.Equal(t, "s-1", svc.seen["session"])
	assert.Equal(t, false, svc.seen["missing"])
}

func TestRunOutputCopy(t *testing.T) {
	engine, _ := newEngine(t)
	svc := &recorder{
		output: domain.Outputs("token", "empty"),
		result: &domain.Result{Valid: true, Fields: map[string]any{"token": "abc"}},
	}

	mem, err := engine.Run(context.Background(), &domain.Message{Service: svc}, domain.Memory{})

	require.NoError(t, err)
	assert.Equal(t, "abc", mem["token"])
	// Declared but unproduced fields land as the absence sentinel.
	assert.Equal(t, false, mem["empty"])
}

func TestRunOutputAliasOverride(t *testing.T) {
	engine, _ := newEngine(t)
	svc := &recorder{
		output: domain.Outputs("token"),
		result: &domain.Result{Valid: true, Fields: map[string]any{"token": "abc"}},
	}
	msg := &domain.Message{
		Service: svc,
		Output:  map[string]string{"token": "authToken"},
	}

	mem, err := engine.Run(context.Background(), msg, domain.Memory{})

	require.NoError(t, err)
	assert.Equal(t, "abc", mem["authToken"])
	assert.NotContains(t, mem, "token")
}

func TestRunInvalidResultSkipsOutputs(t *testing.T) {
	engine, _ := newEngine(t)
	svc := &recorder{
		output: domain.Outputs("token"),
		result: &domain.Result{Valid: false, Fields: map[string]any{"token": "abc"}},
	}

	mem, err := engine.Run(context.Background(), &domain.Message{Service: svc}, domain.Memory{})

	require.NoError(t, err)
	assert.False(t, mem.Valid())
	assert.NotContains(t, mem, "token")
}

func TestRunFalseIsAbsent(t *testing.T) {
	// A stored boolean false is indistinguishable from "not provided": the
	// binding cascade treats it as absent, so a required key holding false
	// in memory still fails the step. Known ambiguity, kept for
	// compatibility with workflows that rely on the collision.
	engine, _ := newEngine(t)
	svc := &recorder{input: domain.InputSpec{Required: []string{"flag"}}}

	mem, err := engine.Run(context.Background(), &domain.Message{Service: svc}, domain.Memory{"flag": false})

	require.NoError(t, err)
	assert.False(t, mem.Valid())
	assert.False(t, svc.invoked)
}

func TestRunServiceNotFound(t *testing.T) {
	engine, _ := newEngine(t)

	mem, err := engine.Run(context.Background(), &domain.Message{Service: "ghost"}, domain.Memory{})

	var notFound *domain.ServiceNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ghost", notFound.Key)
	assert.False(t, mem.Valid(), "resolution failure gates following strict steps like a binding failure")
}

func TestRunMissingService(t *testing.T) {
	engine, _ := newEngine(t)

	mem, err := engine.Run(context.Background(), &domain.Message{}, domain.Memory{})

	require.ErrorIs(t, err, domain.ErrMissingService)
	assert.False(t, mem.Valid())
}

func TestRunResolvesServiceByKey(t *testing.T) {
	engine, reg := newEngine(t)
	svc := &recorder{}
	reg.Save("svc.echo", svc)

	mem, err := engine.Run(context.Background(), &domain.Message{Service: "svc.echo"}, domain.Memory{})

	require.NoError(t, err)
	assert.True(t, mem.Valid())
	assert.True(t, svc.invoked)
}

func TestRunTemplateNotMutated(t *testing.T) {
	engine, _ := newEngine(t)
	svc := &recorder{input: domain.InputSpec{Required: []string{"id"}}}
	msg := &domain.Message{Service: svc}

	_, err := engine.Run(context.Background(), msg, domain.Memory{"id": "42"})

	require.NoError(t, err)
	assert.Nil(t, msg.Params, "binding happens on a clone, templates stay reusable")
}

func TestExecuteValidityGate(t *testing.T) {
	engine, _ := newEngine(t)
	failing := &recorder{result: domain.Invalid()}
	strict := &recorder{}
	cleanup := &recorder{result: domain.Invalid()}

	wf := domain.Workflow{
		{Service: failing},
		{Service: strict},
		{Service: cleanup, Nonstrict: true},
	}

	mem, err := engine.Execute(context.Background(), wf, nil)

	require.NoError(t, err)
	assert.False(t, mem.Valid())
	assert.True(t, failing.invoked)
	assert.False(t, strict.invoked, "strict step after a failure must be skipped")
	assert.True(t, cleanup.invoked, "nonstrict step runs during failure")
}

func TestExecuteInitiallyInvalidMemory(t *testing.T) {
	engine, _ := newEngine(t)
	strict := &recorder{}
	cleanup := &recorder{result: &domain.Result{Valid: true}}

	wf := domain.Workflow{
		{Service: strict},
		{Service: cleanup, Nonstrict: true},
	}

	mem, err := engine.Execute(context.Background(), wf, domain.Memory{domain.ValidKey: false})

	require.NoError(t, err)
	assert.False(t, strict.invoked)
	assert.True(t, cleanup.invoked)
	// A nonstrict step that succeeds revalidates the memory.
	assert.True(t, mem.Valid())
}

func TestExecuteDefaultsMemory(t *testing.T) {
	engine, _ := newEngine(t)
	svc := &recorder{}

	mem, err := engine.Execute(context.Background(), domain.Workflow{{Service: svc}}, nil)

	require.NoError(t, err)
	assert.True(t, mem.Valid())
	assert.True(t, svc.invoked)
}

func TestExecuteRetainsFirstError(t *testing.T) {
	engine, reg := newEngine(t)
	last := &recorder{}
	reg.Save("svc.last", last)

	wf := domain.Workflow{
		{Service: "svc.ghost"},
		{Service: "svc.phantom"},
		{Service: "svc.last", Nonstrict: true},
	}

	_, err := engine.Execute(context.Background(), wf, nil)

	var notFound *domain.ServiceNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "svc.ghost", notFound.Key, "first configuration error wins")
	assert.True(t, last.invoked, "the loop keeps going past configuration errors")
}

func TestRunSubWorkflowByKey(t *testing.T) {
	engine, reg := newEngine(t)
	inner := &recorder{input: domain.InputSpec{Required: []string{"n"}}}
	reg.Save("flows.inner", domain.Workflow{{Service: inner}})

	msg := &domain.Message{Service: "flows.inner", Params: map[string]any{"n": "7"}}
	mem, err := engine.Run(context.Background(), msg, domain.Memory{})

	require.NoError(t, err)
	assert.True(t, mem.Valid())
	assert.Equal(t, "7", inner.seen["n"])
}

func TestLaunchUnregisteredRoot(t *testing.T) {
	engine, _ := newEngine(t)

	valid, err := engine.Launch(context.Background(), "#/missingroot", false, nil)

	require.NoError(t, err)
	assert.False(t, valid)
}

func TestLaunchRunsRegisteredWorkflow(t *testing.T) {
	engine, reg := newEngine(t)
	svc := &recorder{input: domain.InputSpec{Required: []string{"x"}}}
	reg.Add("#flow", domain.Workflow{{Service: svc}})

	valid, err := engine.Launch(context.Background(), "#flow:x=5", false, nil)

	require.NoError(t, err)
	assert.True(t, valid)
	assert.Equal(t, "5", svc.seen["x"])
}

func TestLaunchParamsOverrideSeed(t *testing.T) {
	engine, reg := newEngine(t)
	svc := &recorder{input: domain.InputSpec{Required: []string{"x", "y"}}}
	reg.Add("#flow", domain.Workflow{{Service: svc}})

	seed := domain.Memory{"x": "seeded", "y": "kept"}
	valid, err := engine.Launch(context.Background(), "#flow:x=5", false, seed)

	require.NoError(t, err)
	assert.True(t, valid)
	assert.Equal(t, "5", svc.seen["x"], "navigator parameters overwrite the seed")
	assert.Equal(t, "kept", svc.seen["y"])
}

func TestLaunchEscaped(t *testing.T) {
	engine, reg := newEngine(t)
	svc := &recorder{input: domain.InputSpec{Required: []string{"k"}}}
	reg.Add("#flow", domain.Workflow{{Service: svc}})

	valid, err := engine.Launch(context.Background(), "_flow:k.v", true, nil)

	require.NoError(t, err)
	assert.True(t, valid)
	assert.Equal(t, "v", svc.seen["k"])
}

func TestParseNavigator(t *testing.T) {
	engine, _ := newEngine(t)

	root, params := engine.ParseNavigator("root:x=5", false)

	assert.Equal(t, "root", root)
	assert.Equal(t, map[string]string{"x": "5"}, params)
}

func TestExecuteHonorsContext(t *testing.T) {
	engine, _ := newEngine(t)
	var gotCtx context.Context
	svc := &domain.FuncService{
		Handler: func(ctx context.Context, msg *domain.Message) *domain.Result {
			gotCtx = ctx
			return &domain.Result{Valid: true}
		},
	}

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "v")
	_, err := engine.Execute(ctx, domain.Workflow{{Service: svc}}, nil)

	require.NoError(t, err)
	require.NotNil(t, gotCtx)
	assert.Equal(t, "v", gotCtx.Value(ctxKey{}))
}

func TestExecuteErrorIsRetained(t *testing.T) {
	engine, _ := newEngine(t)

	_, err := engine.Execute(context.Background(), domain.Workflow{{Service: nil}}, nil)

	assert.True(t, errors.Is(err, domain.ErrMissingService))
}

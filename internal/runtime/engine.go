// Package runtime implements the execution engine of the kernel: single-step
// contract binding (Run), the sequential workflow interpreter (Execute), and
// navigator resolution (Launch).
//
// The engine is strictly synchronous. It never suspends, queues, or locks;
// asynchronous collaborators return an invalid result to halt their own step
// and later re-enter through a fresh Execute call on a continuation workflow.
package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/kestrel/internal/compiler"
	"github.com/aretw0/kestrel/internal/logging"
	"github.com/aretw0/kestrel/pkg/domain"
	"github.com/aretw0/kestrel/pkg/registry"
)

// Engine interprets workflows against a shared memory, consulting the
// registry whenever a service is referenced indirectly by key.
type Engine struct {
	registry *registry.Registry
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
}

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithLogger sets a structured logger. Nil is ignored.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// NewEngine creates an engine bound to the given registry.
func NewEngine(reg *registry.Registry, opts ...EngineOption) *Engine {
	e := &Engine{
		registry: reg,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes a single step: resolve the service, bind the contract, invoke,
// and copy declared outputs back into memory.
//
// Binding failures are not errors: the step short-circuits with memory made
// invalid and a nil error, and the failure propagates through the validity
// flag. A non-nil error is reserved for configuration faults (an unresolvable
// service reference), which additionally invalidate the memory so workflow
// gating stays symmetric with binding failures.
func (e *Engine) Run(ctx context.Context, msg *domain.Message, mem domain.Memory) (domain.Memory, error) {
	if mem == nil {
		mem = domain.Memory{}
	}

	svc, sub, name, err := e.resolveService(msg)
	if err != nil {
		e.logger.Error("service resolution failed", "err", err)
		mem.SetValid(false)
		return mem, err
	}
	if sub != nil {
		// A workflow used as a service: message parameters seed the
		// shared memory, then the workflow runs in sequence.
		for k, v := range msg.Params {
			mem[k] = v
		}
		return e.Execute(ctx, sub, mem)
	}

	bound := msg.Clone()
	e.importArgs(bound, mem)

	input := svc.DescribeInput()
	if missing, ok := e.bindRequired(bound, mem, input.Required); !ok {
		e.logger.Debug("required input missing", "service", name, "key", missing)
		e.emitBindingFailure(ctx, name, missing)
		mem.SetValid(false)
		return mem, nil
	}
	e.bindOptional(bound, mem, input.Optional)

	e.emitStepStart(ctx, name, bound.Nonstrict)
	started := time.Now()
	result := svc.Run(ctx, bound)

	valid := result != nil && result.Valid
	mem.SetValid(valid)
	e.emitServiceReturn(ctx, name, valid, time.Since(started))

	if !valid {
		e.logger.Debug("service returned invalid", "service", name)
		return mem, nil
	}

	for key, alias := range svc.DescribeOutput() {
		if override, ok := bound.Output[key]; ok {
			alias = override
		}
		value := result.Fields[key]
		if value == nil {
			value = false
		}
		mem[alias] = value
	}
	return mem, nil
}

// Execute interprets a workflow in array order. Once the memory turns
// invalid, only steps marked Nonstrict still run; everything else is
// skipped, never retried or reordered. The first configuration error is
// retained and returned after the loop completes.
func (e *Engine) Execute(ctx context.Context, wf domain.Workflow, mem domain.Memory) (domain.Memory, error) {
	if mem == nil {
		mem = domain.Memory{}
	}
	if _, ok := mem[domain.ValidKey].(bool); !ok {
		mem.SetValid(true)
	}

	var firstErr error
	for _, msg := range wf {
		if !mem.Valid() && !msg.Nonstrict {
			e.emitStepSkipped(ctx, serviceName(msg.Service), msg.Nonstrict)
			continue
		}

		var err error
		mem, err = e.Run(ctx, msg, mem)
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return mem, firstErr
}

// Launch resolves a navigator string against the registered roots and runs
// the matching workflow. An unregistered root returns false silently; the
// boolean result is the final validity flag of the memory.
func (e *Engine) Launch(ctx context.Context, navigator string, escaped bool, seed domain.Memory) (bool, error) {
	nav := compiler.Parse(navigator, escaped)

	wf, found := e.registry.Navigator(nav.Root)
	e.emitLaunch(ctx, nav.Root, found)
	if !found {
		e.logger.Debug("navigator not registered", "root", nav.Root)
		return false, nil
	}

	mem := domain.Memory{}
	if seed != nil {
		mem.Merge(seed)
	}

	msg := &domain.Message{Service: wf}
	for key, value := range nav.Params {
		msg.SetParam(key, value)
	}

	mem, err := e.Run(ctx, msg, mem)
	return mem.Valid(), err
}

// ParseNavigator exposes the grammar without executing anything.
func (e *Engine) ParseNavigator(navigator string, escaped bool) (string, map[string]string) {
	nav := compiler.Parse(navigator, escaped)
	return nav.Root, nav.Params
}

// resolveService turns the message's service field into something runnable:
// a Service, a sub-workflow, or an error. String keys go through the
// registry and may resolve to either form.
func (e *Engine) resolveService(msg *domain.Message) (domain.Service, domain.Workflow, string, error) {
	switch ref := msg.Service.(type) {
	case domain.Service:
		return ref, nil, "inline", nil
	case domain.Workflow:
		return nil, ref, "", nil
	case string:
		switch resolved := e.registry.Get(ref).(type) {
		case domain.Service:
			return resolved, nil, ref, nil
		case domain.Workflow:
			return nil, resolved, "", nil
		default:
			return nil, nil, ref, &domain.ServiceNotFoundError{Key: ref}
		}
	case nil:
		return nil, nil, "", domain.ErrMissingService
	default:
		return nil, nil, "", domain.ErrMissingService
	}
}

// importArgs copies ambient memory values into the message namespace before
// contract binding: message[name] ?? memory[name] ?? false.
func (e *Engine) importArgs(msg *domain.Message, mem domain.Memory) {
	for _, name := range msg.Args {
		if !domain.Absent(msg.Param(name)) {
			continue
		}
		if v, ok := mem[name]; ok && !domain.Absent(v) {
			msg.SetParam(name, v)
			continue
		}
		msg.SetParam(name, false)
	}
}

// bindRequired binds each required key from the message or aliased memory.
// It reports the first unresolvable key; binding then fails the whole step
// without invoking the service.
func (e *Engine) bindRequired(msg *domain.Message, mem domain.Memory, required []string) (string, bool) {
	for _, key := range required {
		value := msg.Param(key)
		if domain.Absent(value) {
			value = mem[e.inputAlias(msg, key)]
		}
		if domain.Absent(value) {
			msg.SetParam(key, false)
			return key, false
		}
		msg.SetParam(key, value)
	}
	return "", true
}

// bindOptional binds optional keys, falling back to the declared default.
// The absence sentinel cascades: a false in the message falls through to
// memory and then to the default.
func (e *Engine) bindOptional(msg *domain.Message, mem domain.Memory, optional map[string]any) {
	for key, def := range optional {
		value := msg.Param(key)
		if domain.Absent(value) {
			value = mem[e.inputAlias(msg, key)]
		}
		if domain.Absent(value) {
			value = def
		}
		msg.SetParam(key, value)
	}
}

// inputAlias resolves the memory key to read for a service parameter.
func (e *Engine) inputAlias(msg *domain.Message, key string) string {
	if alias, ok := msg.Input[key]; ok {
		return alias
	}
	return key
}

// serviceName labels a service reference for logs and events.
func serviceName(ref any) string {
	if key, ok := ref.(string); ok {
		return key
	}
	return "inline"
}

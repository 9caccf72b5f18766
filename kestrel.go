package kestrel

import (
	"context"
	"log/slog"

	"github.com/aretw0/kestrel/internal/logging"
	"github.com/aretw0/kestrel/internal/runtime"
	"github.com/aretw0/kestrel/pkg/domain"
	"github.com/aretw0/kestrel/pkg/registry"
)

// Version is the library version reported by adapters and the CLI.
const Version = "0.1.0"

// Kernel is the high-level entry point for the kestrel library.
// It wraps the internal runtime and the registry and provides a simplified
// API for consumers.
type Kernel struct {
	registry *registry.Registry
	runtime  *runtime.Engine
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
}

// Option defines a functional option for configuring the Kernel.
type Option func(*Kernel)

// WithLogger sets a custom structured logger for the kernel.
func WithLogger(logger *slog.Logger) Option {
	return func(k *Kernel) {
		k.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(k *Kernel) {
		k.hooks = hooks
	}
}

// WithRegistry injects a shared registry, for hosts that populate services
// and navigators before constructing the kernel.
func WithRegistry(reg *registry.Registry) Option {
	return func(k *Kernel) {
		k.registry = reg
	}
}

// New initializes a new Kernel. By default it creates an empty registry and
// a no-op logger.
func New(opts ...Option) *Kernel {
	k := &Kernel{}
	for _, opt := range opts {
		opt(k)
	}

	if k.registry == nil {
		k.registry = registry.New()
	}
	if k.logger == nil {
		k.logger = logging.NewNop()
	}

	k.runtime = runtime.NewEngine(
		k.registry,
		runtime.WithLogger(k.logger),
		runtime.WithLifecycleHooks(k.hooks),
	)
	return k
}

// Registry returns the underlying registry.
func (k *Kernel) Registry() *registry.Registry { return k.registry }

// Save stores a reference (service, workflow, or any object) under key.
func (k *Kernel) Save(key string, value any) { k.registry.Save(key, value) }

// Get retrieves a stored reference, or nil when absent.
func (k *Kernel) Get(key string) any { return k.registry.Get(key) }

// Remove soft-deletes a stored reference.
func (k *Kernel) Remove(key string) { k.registry.Remove(key) }

// AddNavigator registers a workflow under a navigator root.
func (k *Kernel) AddNavigator(root string, wf domain.Workflow) { k.registry.Add(root, wf) }

// RemoveNavigator unregisters a navigator root.
func (k *Kernel) RemoveNavigator(root string) { k.registry.RemoveNavigator(root) }

// Navigators lists the registered navigator roots.
func (k *Kernel) Navigators() []string { return k.registry.Navigators() }

// Workflow looks up a workflow stored in the registry by reference key.
func (k *Kernel) Workflow(name string) (domain.Workflow, bool) {
	wf, ok := k.registry.Get(name).(domain.Workflow)
	return wf, ok
}

// Run executes a single service step against the given memory.
func (k *Kernel) Run(ctx context.Context, msg *domain.Message, mem domain.Memory) (domain.Memory, error) {
	return k.runtime.Run(ctx, msg, mem)
}

// Execute interprets a workflow sequentially against the given memory.
func (k *Kernel) Execute(ctx context.Context, wf domain.Workflow, mem domain.Memory) (domain.Memory, error) {
	return k.runtime.Execute(ctx, wf, mem)
}

// Launch resolves a navigator string and runs the matching workflow. The
// boolean result is the final validity of the memory; an unregistered root
// yields false without error.
func (k *Kernel) Launch(ctx context.Context, navigator string, escaped bool, seed domain.Memory) (bool, error) {
	return k.runtime.Launch(ctx, navigator, escaped, seed)
}

// ParseNavigator decodes a navigator string without executing anything,
// returning the root identifier and the parameter set.
func (k *Kernel) ParseNavigator(navigator string, escaped bool) (string, map[string]string) {
	return k.runtime.ParseNavigator(navigator, escaped)
}

package domain

import "context"

// InputSpec declares the parameters a service expects.
type InputSpec struct {
	// Required lists parameter names that must be bound before Run is
	// invoked. A missing required parameter fails the step without
	// invoking the service.
	Required []string

	// Optional maps parameter names to the default value used when the
	// parameter is absent from both the message and the memory.
	Optional map[string]any
}

// OutputSpec maps produced field names to the memory key they are copied
// into after a valid run. Use Outputs for the common identity mapping.
type OutputSpec map[string]string

// Outputs builds an OutputSpec where each field is copied under its own name.
func Outputs(keys ...string) OutputSpec {
	spec := make(OutputSpec, len(keys))
	for _, k := range keys {
		spec[k] = k
	}
	return spec
}

// Result is the value returned by a service invocation.
type Result struct {
	// Valid reports whether the step succeeded. An invalid result halts
	// output copying and gates all following strict steps.
	Valid bool

	// Fields holds the values produced by the service. Only keys declared
	// in the service's OutputSpec are copied into memory.
	Fields map[string]any
}

// Invalid returns a failed result with no fields.
func Invalid() *Result {
	return &Result{Valid: false}
}

// Service is the structural contract every executable unit must satisfy.
// It is the sole extension point of the kernel: rendering, transport,
// templating and storage collaborators all plug in here. The kernel never
// inspects a service's identity, only this interface.
type Service interface {
	// DescribeInput declares required and optional parameters. The engine
	// binds them from the message and the shared memory before Run.
	DescribeInput() InputSpec

	// Run executes the step against a fully-bound message.
	Run(ctx context.Context, msg *Message) *Result

	// DescribeOutput declares which produced fields the engine copies
	// from the result into the shared memory.
	DescribeOutput() OutputSpec
}

// FuncService adapts a plain function into a Service. It is the idiomatic
// way to register small inline services and is used heavily in tests.
type FuncService struct {
	Input   InputSpec
	Output  OutputSpec
	Handler func(ctx context.Context, msg *Message) *Result
}

// DescribeInput implements Service.
func (s *FuncService) DescribeInput() InputSpec { return s.Input }

// DescribeOutput implements Service.
func (s *FuncService) DescribeOutput() OutputSpec { return s.Output }

// Run implements Service. A nil handler yields an invalid result.
func (s *FuncService) Run(ctx context.Context, msg *Message) *Result {
	if s.Handler == nil {
		return Invalid()
	}
	return s.Handler(ctx, msg)
}

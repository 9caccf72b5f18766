package dsl

import "github.com/aretw0/kestrel/pkg/domain"

// Builder accumulates workflow steps in order.
type Builder struct {
	steps []*domain.Message
}

// New creates a new workflow builder.
func New() *Builder {
	return &Builder{}
}

// Step appends a step. The service may be a registry key, a domain.Service,
// or a domain.Workflow (executed as a sub-workflow). Configuration methods
// called on the returned builder apply to this step.
func (b *Builder) Step(service any) *StepBuilder {
	msg := &domain.Message{Service: service}
	b.steps = append(b.steps, msg)
	return &StepBuilder{Builder: b, msg: msg}
}

// Build returns the accumulated workflow.
func (b *Builder) Build() domain.Workflow {
	return domain.Workflow(b.steps)
}

// StepBuilder configures the most recently added step. It embeds Builder so
// a chain can move straight to the next Step or to Build.
type StepBuilder struct {
	*Builder
	msg *domain.Message
}

// Args lists memory keys copied verbatim into the message before binding.
func (s *StepBuilder) Args(names ...string) *StepBuilder {
	s.msg.Args = append(s.msg.Args, names...)
	return s
}

// MapInput binds the service parameter to a differently-named memory key.
func (s *StepBuilder) MapInput(param, memoryKey string) *StepBuilder {
	if s.msg.Input == nil {
		s.msg.Input = make(map[string]string)
	}
	s.msg.Input[param] = memoryKey
	return s
}

// MapOutput copies the produced field to a differently-named memory key.
func (s *StepBuilder) MapOutput(field, memoryKey string) *StepBuilder {
	if s.msg.Output == nil {
		s.msg.Output = make(map[string]string)
	}
	s.msg.Output[field] = memoryKey
	return s
}

// Param presets a message field.
func (s *StepBuilder) Param(key string, value any) *StepBuilder {
	s.msg.SetParam(key, value)
	return s
}

// Nonstrict marks the step to run even while memory is invalid.
func (s *StepBuilder) Nonstrict() *StepBuilder {
	s.msg.Nonstrict = true
	return s
}

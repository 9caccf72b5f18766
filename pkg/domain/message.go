package domain

// Message is the per-step invocation descriptor. Workflows hold messages as
// templates; the engine binds parameters into a copy, so a template can be
// executed any number of times without leaking state between runs.
type Message struct {
	// Service identifies the unit to execute. Exactly one form at a time:
	// a Service value, a Workflow value (executed as a sub-workflow), or a
	// string key resolved against the registry at invocation time.
	Service any

	// Args lists memory keys copied verbatim into Params before contract
	// binding.
	Args []string

	// Input remaps service parameter names to memory keys: when binding
	// parameter k from memory, the engine reads memory[Input[k]] instead
	// of memory[k].
	Input map[string]string

	// Output remaps produced field names to memory keys, overriding the
	// service's own OutputSpec alias.
	Output map[string]string

	// Nonstrict marks a step that runs even while memory is invalid.
	// Typically cleanup or error-reporting steps.
	Nonstrict bool

	// Params holds the free-form message fields. Navigator parameters and
	// bound inputs land here; services read their inputs from it.
	Params map[string]any
}

// Param returns the message field k, or nil when unset.
func (m *Message) Param(k string) any {
	if m.Params == nil {
		return nil
	}
	return m.Params[k]
}

// SetParam sets the message field k, allocating Params on first use.
func (m *Message) SetParam(k string, v any) {
	if m.Params == nil {
		m.Params = make(map[string]any)
	}
	m.Params[k] = v
}

// Clone returns a copy of the message with its own Params map. Service,
// Args and the alias tables are shared; the engine only mutates Params.
func (m *Message) Clone() *Message {
	cp := *m
	cp.Params = make(map[string]any, len(m.Params))
	for k, v := range m.Params {
		cp.Params[k] = v
	}
	return &cp
}

// Workflow is an ordered sequence of message templates sharing one memory
// context. It has no identity beyond the slice; registries hold workflows
// by reference.
type Workflow []*Message

// Concat composes workflows by concatenation into a new slice.
func Concat(workflows ...Workflow) Workflow {
	var out Workflow
	for _, wf := range workflows {
		out = append(out, wf...)
	}
	return out
}

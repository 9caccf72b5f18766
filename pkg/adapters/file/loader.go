// Package file loads workflow definitions from YAML flow files and registers
// them into a kestrel registry.
//
// A flow file declares named workflows whose steps reference services by
// registry key; the services themselves are registered in Go by the host.
//
//	workflows:
//	  checkout:
//	    root: "#checkout"
//	    steps:
//	      - service: cart.total
//	        args: [user]
//	        input: {id: user_id}
//	        output: {total: cart_total}
//	      - service: notify.failure
//	        nonstrict: true
package file

import (
	"fmt"
	"os"

	"github.com/aretw0/kestrel/pkg/domain"
	"github.com/aretw0/kestrel/pkg/registry"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Definition is a parsed flow file.
type Definition struct {
	Workflows map[string]WorkflowSpec `mapstructure:"workflows"`
}

// WorkflowSpec declares one named workflow.
type WorkflowSpec struct {
	// Root optionally registers the workflow under a navigator root.
	Root  string     `mapstructure:"root"`
	Steps []StepSpec `mapstructure:"steps"`
}

// StepSpec declares one message template.
type StepSpec struct {
	Service   string            `mapstructure:"service"`
	Args      []string          `mapstructure:"args"`
	Input     map[string]string `mapstructure:"input"`
	Output    map[string]string `mapstructure:"output"`
	Nonstrict bool              `mapstructure:"nonstrict"`
	Params    map[string]any    `mapstructure:"params"`
}

// Load reads and parses a flow file from disk.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read flow file: %w", err)
	}
	return Parse(data)
}

// Parse decodes flow file contents. YAML is unmarshalled into generic maps
// first and then decoded with mapstructure, so unknown keys are tolerated
// the same way across sources.
func Parse(data []byte) (*Definition, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid flow file: %w", err)
	}

	var def Definition
	if err := mapstructure.Decode(raw, &def); err != nil {
		return nil, fmt.Errorf("invalid flow definition: %w", err)
	}

	for name, wf := range def.Workflows {
		if len(wf.Steps) == 0 {
			return nil, fmt.Errorf("workflow %q has no steps", name)
		}
		for i, step := range wf.Steps {
			if step.Service == "" {
				return nil, fmt.Errorf("workflow %q step %d has no service", name, i)
			}
		}
	}
	return &def, nil
}

// Register saves every workflow into the registry by name and registers the
// declared navigator roots.
func (d *Definition) Register(reg *registry.Registry) {
	for name, spec := range d.Workflows {
		wf := spec.workflow()
		reg.Save(name, wf)
		if spec.Root != "" {
			reg.Add(spec.Root, wf)
		}
	}
}

func (s WorkflowSpec) workflow() domain.Workflow {
	wf := make(domain.Workflow, 0, len(s.Steps))
	for _, step := range s.Steps {
		msg := &domain.Message{
			Service:   step.Service,
			Args:      step.Args,
			Input:     step.Input,
			Output:    step.Output,
			Nonstrict: step.Nonstrict,
		}
		for k, v := range step.Params {
			msg.SetParam(k, v)
		}
		wf = append(wf, msg)
	}
	return wf
}

// Package services ships a small set of generic built-in services: enough
// for flow files and demos to have runnable steps without a host wiring its
// own collaborators. Real side-effecting services (rendering, transport,
// storage) are expected to come from the embedding application.
package services

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/kestrel/pkg/domain"
	"github.com/aretw0/kestrel/pkg/registry"
)

// Set writes its "value" parameter into memory. The declared output key is
// "value"; steps remap it to the target memory key via the message's output
// table:
//
//	- service: core.set
//	  params: {value: "pending"}
//	  output: {value: order_status}
type Set struct{}

func (Set) DescribeInput() domain.InputSpec {
	return domain.InputSpec{Required: []string{"value"}}
}

func (Set) DescribeOutput() domain.OutputSpec {
	return domain.Outputs("value")
}

func (Set) Run(ctx context.Context, msg *domain.Message) *domain.Result {
	return &domain.Result{Valid: true, Fields: map[string]any{"value": msg.Param("value")}}
}

// Echo writes its bound "text" input to a writer and passes memory through.
type Echo struct {
	W io.Writer
}

func (e *Echo) DescribeInput() domain.InputSpec {
	return domain.InputSpec{Required: []string{"text"}}
}

func (e *Echo) DescribeOutput() domain.OutputSpec {
	return nil
}

func (e *Echo) Run(ctx context.Context, msg *domain.Message) *domain.Result {
	if e.W != nil {
		fmt.Fprintln(e.W, msg.Param("text"))
	}
	return &domain.Result{Valid: true}
}

// Fail always returns an invalid result; useful to exercise nonstrict
// cleanup paths in flow files.
type Fail struct{}

func (Fail) DescribeInput() domain.InputSpec   { return domain.InputSpec{} }
func (Fail) DescribeOutput() domain.OutputSpec { return nil }
func (Fail) Run(ctx context.Context, msg *domain.Message) *domain.Result {
	return domain.Invalid()
}

// RegisterBuiltins saves the built-in services under their conventional keys.
func RegisterBuiltins(reg *registry.Registry, out io.Writer) {
	reg.Save("core.set", Set{})
	reg.Save("core.echo", &Echo{W: out})
	reg.Save("core.fail", Fail{})
}

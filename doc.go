/*
Package kestrel is a small embedded workflow kernel: an interpreter that
executes ordered chains of polymorphic services against a shared mutable
memory, enforces declarative input/output contracts between steps, and
resolves compact string-encoded navigators into registered workflows at
runtime.

Services are the sole extension point. Anything exposing DescribeInput,
Run, and DescribeOutput can be registered and chained; rendering,
transport, templating and storage collaborators all plug in through that
contract, and the kernel never looks inside them.

# Control flow

A workflow is an ordered list of message templates sharing one memory.
The memory always carries a boolean "valid" flag: a step whose required
inputs cannot be bound, or whose service returns an invalid result, flips
the flag and every following step is skipped unless it is explicitly
marked nonstrict (cleanup and error-reporting steps). Failure is a value
propagated through memory, never an exception.

The kernel is strictly synchronous. Asynchronous collaborators return an
invalid result to halt their own step and later re-enter through a fresh
Execute call on a continuation workflow; there is no promise threading
the two invocations together.

# Usage

	k := kestrel.New()
	k.Save("greet", &domain.FuncService{
		Input:  domain.InputSpec{Required: []string{"name"}},
		Output: domain.Outputs("greeting"),
		Handler: func(ctx context.Context, msg *domain.Message) *domain.Result {
			return &domain.Result{
				Valid:  true,
				Fields: map[string]any{"greeting": "hello " + msg.Param("name").(string)},
			}
		},
	})
	k.AddNavigator("#greet", domain.Workflow{{Service: "greet"}})

	valid, err := k.Launch(ctx, "#greet:name=ada", false, nil)

Navigator strings come in two dialects: colon ("root:key=value:..."), with
literal '=' in values escaped as '~', and path ("#/root/seg~key/value"),
plus an identifier-safe encoding ('#' as '_', '=' as '.') for embedding
navigators in element ids.
*/
package kestrel

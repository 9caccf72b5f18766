/*
Package domain contains the core domain models for the kestrel kernel.

It defines the fundamental entities of the workflow interpreter, such as
Services, Messages, Workflows, and the shared Memory context. This package
is kept pure and free of external dependencies like I/O or persistence,
following Hexagonal Architecture principles.

# Key Entities

  - Service: A structurally-typed unit exposing input/run/output operations.
  - Message: The per-step, transient parameter record passed to a service.
  - Memory: The mutable key-value context threaded through a workflow run.
  - Workflow: An ordered list of Messages sharing one Memory context.
  - LifecycleHooks: Observability callbacks emitted by the engine.
*/
package domain

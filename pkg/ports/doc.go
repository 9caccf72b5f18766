/*
Package ports defines the driven ports (interfaces) for the kestrel kernel.

These interfaces decouple the core logic from external implementations,
allowing hosts to pick storage backends and locking strategies.

# Key Interfaces

  - MemoryStore: Persists Memory snapshots between independent invocations,
    supporting asynchronous re-entry (a service parks its memory, the
    callback later resumes a continuation workflow from it).
  - DistributedLocker: Provides distributed locking for hosts that re-enter
    the same session from multiple replicas.
*/
package ports

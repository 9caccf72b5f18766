/*
Package session implements memory persistence orchestration for workflows
that span multiple independent kernel invocations.

The kernel never awaits: an asynchronous service parks the session memory
and returns invalid, and its callback later resumes a continuation workflow
from the parked memory through Manager.Resume. The Manager serializes
per-session access locally and, optionally, across replicas via a
distributed locker.
*/
package session

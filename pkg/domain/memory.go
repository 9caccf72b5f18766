package domain

// ValidKey is the memory slot holding the validity flag. After Execute
// initializes a memory it is always present.
const ValidKey = "valid"

// Memory is the mutable key-value context threaded through a workflow
// execution. It outlives individual messages and is the sole channel of
// state between sequential steps.
//
// A memory must never be shared across concurrent Execute calls; the
// kernel performs no locking of its own.
type Memory map[string]any

// Valid reports the current validity flag. A missing or non-boolean slot
// counts as invalid.
func (m Memory) Valid() bool {
	v, ok := m[ValidKey].(bool)
	return ok && v
}

// SetValid sets the validity flag.
func (m Memory) SetValid(valid bool) {
	m[ValidKey] = valid
}

// Clone returns a shallow copy of the memory. Stores use it to isolate
// persisted snapshots from later caller mutation.
func (m Memory) Clone() Memory {
	cp := make(Memory, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

// Merge copies every entry of other into m, overwriting existing keys.
func (m Memory) Merge(other Memory) {
	for k, v := range other {
		m[k] = v
	}
}

// Absent reports whether v is the binding absence sentinel. The kernel
// inherited `false` as the universal "not provided" marker from the
// original implementation: a real boolean false is indistinguishable from
// a missing value. Preserved for compatibility; see the binding tests for
// the known ambiguity.
func Absent(v any) bool {
	if v == nil {
		return true
	}
	b, ok := v.(bool)
	return ok && !b
}

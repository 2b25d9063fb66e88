// Package effects tracks which named operations a session has granted
// to user handlers, grounded on the teacher's internal/effects
// capability model (internal/effects/context.go, capability.go):
// there, a Capability gates a whole effect family (IO, FS, Net) before
// any op in it can run; here it gates one declared operation name
// before any handler can register an on_op clause for it (eval's
// evalWith checks the grant when a handler is installed) —
// the same "deny by default, grant explicitly" shape, narrowed from
// Go-native side effects to the algebraic operations of spec.md §4.3.
package effects

// Capability is a granted permission to handle one named operation.
type Capability struct {
	Name string
	Meta map[string]any
}

// NewCapability creates a capability with empty metadata.
func NewCapability(name string) Capability {
	return Capability{Name: name, Meta: make(map[string]any)}
}

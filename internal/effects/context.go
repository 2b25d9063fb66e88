package effects

import "fmt"

// Context holds the capability grants for one evaluation session,
// mirroring the teacher's EffContext but scoped to operation names
// instead of IO/FS/Net effect families.
type Context struct {
	Caps map[string]Capability
}

// NewContext creates a context with no grants; predefined's five
// built-in operations (equal_term, equal_type, coerce, as_prod,
// as_eq) are granted by predefined.Register, which eval.NewState calls
// when it builds a session, matching
// spec.md §4.5's "registers ... giving user handlers something to
// override" — registration and capability grant happen together.
func NewContext() *Context {
	return &Context{Caps: make(map[string]Capability)}
}

// Grant records that op may be handled.
func (c *Context) Grant(op string) {
	c.Caps[op] = NewCapability(op)
}

// RequireCap reports an error if op has not been granted.
func (c *Context) RequireCap(op string) error {
	if _, ok := c.Caps[op]; !ok {
		return fmt.Errorf("effects: operation %q not granted in this session", op)
	}
	return nil
}

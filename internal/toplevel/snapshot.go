package toplevel

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/zzmjohn/andromeda/internal/signature"
)

type snapshotEntry struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Detail string `yaml:"detail,omitempty"`
}

// DumpSignature serializes sgn's declaration list to YAML, read-only
// introspection for `cmd/andromeda dump-signature` (SPEC_FULL.md §9) —
// it does not round-trip back into a Signature, it only reports what a
// sequence of top-level items declared.
func DumpSignature(sgn *signature.Signature) ([]byte, error) {
	names := sgn.Names()
	entries := make([]snapshotEntry, 0, len(names))
	for _, name := range names {
		d, _ := sgn.Lookup(name)
		e := snapshotEntry{Name: name}
		switch v := d.(type) {
		case signature.Constant:
			e.Kind = "constant"
			e.Detail = v.Ty.String()
		case signature.Rule:
			e.Kind = "rule"
			e.Detail = fmt.Sprintf("%d premise(s)", len(v.Premises))
		case signature.MLOperation:
			e.Kind = "operation"
			e.Detail = fmt.Sprintf("arity %d: %s", v.Arity, v.Doc)
		case signature.MLValue:
			e.Kind = "value"
		case signature.Dynamic:
			e.Kind = "dynamic"
			e.Detail = fmt.Sprintf("cell #%d", v.CellID)
		default:
			e.Kind = "unknown"
		}
		entries = append(entries, e)
	}
	return yaml.Marshal(entries)
}

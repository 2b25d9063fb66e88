package tt

import (
	"fmt"
	"strings"
)

// String renders a term for diagnostics. It is not a parser round-trip
// format (there is no parser in this module) and has no semantic role.

func (t *TType) String() string { return "Type" }

func (t *TAtom) String() string { return t.A.Hint() }

func (t *TBound) String() string { return fmt.Sprintf("#%d", t.K) }

func (t *TConstant) String() string { return t.C }

func (t *TLambda) String() string {
	return fmt.Sprintf("λ(%s:%s). %s", t.X, t.ParamTy, t.E)
}

func (t *TApply) String() string {
	return fmt.Sprintf("(%s %s)", t.Fn, t.Arg)
}

func (t *TProd) String() string {
	return fmt.Sprintf("Π(%s:%s). %s", t.X, t.ParamTy, t.Body)
}

func (t *TEq) String() string {
	return fmt.Sprintf("%s ≡ %s @ %s", t.Lhs, t.Rhs, t.T)
}

func (t *TRefl) String() string {
	return fmt.Sprintf("refl(%s)", t.E)
}

func (t *TSignature) String() string {
	labels := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		labels[i] = fmt.Sprintf("%s:%s", f.Label, f.Ty)
	}
	return "{" + strings.Join(labels, "; ") + "}"
}

func (t *TStructure) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		label := ""
		if i < len(t.Sig) {
			label = t.Sig[i].Label + " = "
		}
		parts[i] = label + e.String()
	}
	return "{" + strings.Join(parts, "; ") + "}"
}

func (t *TProjection) String() string {
	return fmt.Sprintf("%s.%s", t.E, t.L)
}

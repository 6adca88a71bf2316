package extension

type policyKind int

const (
	policyAll policyKind = iota
	policyNone
	policyGiven
)

// Policy selects which extension signatures the index writer may emit. It is
// a closed three-variant type so future signatures only need a new map key,
// not new call sites.
type Policy struct {
	kind  policyKind
	given map[Signature]bool
}

// All writes every extension present in the state, to avoid losing
// information and to allow accelerated reading of the index file.
func All() Policy {
	return Policy{kind: policyAll}
}

// None writes no extensions at all, for the smallest possible index.
func None() Policy {
	return Policy{kind: policyNone}
}

// Given writes only the signatures explicitly mapped to true. Signatures
// absent from the map are not written.
func Given(sigs map[Signature]bool) Policy {
	return Policy{kind: policyGiven, given: sigs}
}

// WantSignature reports whether an extension with the given signature should
// be written.
func (p Policy) WantSignature(sig Signature) bool {
	switch p.kind {
	case policyNone:
		return false
	case policyGiven:
		return p.given[sig]
	default:
		return true
	}
}

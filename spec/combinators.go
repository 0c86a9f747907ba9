package spec

// All returns the conjunction of the given Specs: a value satisfies the result
// only when it satisfies every sub-spec. Sub-specs are checked in order and
// checking stops at the first unsatisfied one. With no sub-specs the result is
// satisfied by anything.
//
// All is a pure factory: it performs no evaluation itself, and the result is a
// first-class Spec usable anywhere a Spec is accepted, including nested inside
// another combinator.
func All(subs ...Spec) Spec {
	return composite(KindAll, subs)
}

// Any returns the disjunction of the given Specs: a value satisfies the result
// when it satisfies at least one sub-spec. Sub-specs are checked in order and
// checking stops at the first satisfied one; a sub-spec whose check errors or
// panics simply counts as unsatisfied. With no sub-specs the result is
// satisfied by nothing.
//
// Like All, Any is a pure factory and the result nests freely.
func Any(subs ...Spec) Spec {
	return composite(KindAny, subs)
}

// composite builds a combinator spec over a private copy of the sub-spec list,
// so later mutation of the caller's slice cannot reach into the Spec.
func composite(kind Kind, subs []Spec) Spec {
	owned := make([]Spec, len(subs))
	copy(owned, subs)

	return Spec{
		kind: kind,
		subs: owned,
	}
}

package wave

// Hierarchy is the contract for the external hierarchy builder collaborator
// (spec.md §6): the data model for scopes, variables, and interned
// strings. The VCD header scanner never constructs a concrete hierarchy
// itself; it drives a Hierarchy through this interface in declaration
// order. ReadGHW takes no Hierarchy.
//
// Methods are invoked in the same order a VCD file declares the
// corresponding entities. AddScope/PopScope and AddArrayScopes/PopScopes
// nest like parentheses: a PopScope always matches the most recent
// unmatched AddScope.
type Hierarchy interface {
	// AddString interns s and returns a handle for later reference.
	AddString(s string) StringRef

	// AddScope opens a new scope. component is the VHDL component/instance
	// name, unset for VCD. declSource and instSource are optional
	// source-location attributes consumed from the queue (§4.4). flatten
	// requests that a scope with an empty name be omitted from the
	// resulting tree, per the top-level "flatten scopes with empty names"
	// option (§4.4).
	AddScope(name StringRef, component *StringRef, tpe ScopeType, declSource, instSource SourceLoc, flatten bool)

	// PopScope closes the most recently opened scope.
	PopScope()

	// AddVar registers a variable/signal declaration. index is nil unless
	// the name carried a bit-index or bit-range suffix (§4.3). enumType and
	// typeName carry VHDL type info decoded from attrbegin opcode "02"
	// (§4.4), both nil when absent.
	AddVar(name StringRef, varType VarType, direction VarDirection, length uint32, index *VarIndex, ref SignalRef, enumType *StringRef, typeName *StringRef)

	// AddArrayScopes pushes one synthetic scope per extra array dimension
	// produced by the name parser (C3, §4.3), innermost last.
	AddArrayScopes(names []string)

	// PopScopes closes n scopes, mirroring a prior AddArrayScopes(names)
	// with len(names) == n.
	PopScopes(n int)

	SetDate(date string)
	SetVersion(version string)
	SetTimescale(ts Timescale)
	AddComment(comment string)

	// Finish is called once, after the terminating $enddefinitions /
	// end-of-hierarchy marker. No further builder calls may follow.
	Finish()
}

package binder

// Ty is a placeholder for an argument's resolved type. Real type
// inference is out of scope (spec.md §1: "cross-file type inference
// beyond name resolution of exports" is explicitly excluded) — the
// binder only needs *somewhere* to hang a type so that a downstream pass
// can later fill it in and check it against a parameter's declared type.
type Ty struct {
	Display string
}

// Unknown is the zero Ty, used whenever no type information is supplied.
var Unknown = Ty{}

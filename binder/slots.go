// Package binder implements the call-argument binding algorithm: given a
// callee's formal parameter list (in any of three "formal dialects" — a
// user-defined def/lambda, an engine intrinsic, or a host builtin) and
// the arguments at a call site, it computes a slot-by-slot binding and a
// list of diagnostics for arguments that bind to nothing.
package binder

import (
	"github.com/starlark-ls/core/hir"
	"github.com/starlark-ls/core/name"
	"github.com/starlark-ls/core/source"
)

// ProviderKind discriminates what, if anything, supplied a slot's value.
type ProviderKind int

const (
	// Missing means the slot received no argument at all: the parameter's
	// own default applies, or it is simply unfilled.
	Missing ProviderKind = iota
	// Single means exactly one argument expression was assigned directly.
	Single
	// ArgsList means the slot's value came from (or may come from) a
	// *args-unpacked expression — the binder cannot tell which element.
	ArgsList
	// KwargsDict means the slot's value came from (or may come from) a
	// **kwargs-unpacked expression.
	KwargsDict
)

// Provider is the value assigned to one slot.
type Provider struct {
	Kind ProviderKind
	Expr hir.ExprId // meaningful unless Kind == Missing
	Ty   Ty          // meaningful unless Kind == Missing
}

var missingProvider = Provider{Kind: Missing}

// SlotKind discriminates the four shapes a Slot can take. Positional only
// ever appears for intrinsic formals, which can express positional-only
// parameters (something Starlark's own def syntax cannot).
type SlotKind int

const (
	SlotPositional SlotKind = iota
	SlotKeyword
	SlotArgsList
	SlotKwargsDict
)

// Slot is one formal-parameter position in a call binding.
type Slot struct {
	Kind SlotKind
	Name name.Name // meaningful for SlotKeyword

	// SlotPositional / SlotKeyword.
	Provider Provider
	// SlotKeyword only: whether this slot still accepts a positional
	// argument (for user and intrinsic formals, true until a bare
	// "*"/"*args"/"**kwargs" has been seen among the formals processed so
	// far; for host-builtin formals, the parameter's own Positional flag).
	Positional bool

	// SlotArgsList only.
	Bare bool // true for a formal *args marker with no bound name (PEP 3102 "*")

	// SlotPositional / SlotKeyword: whether the formal carries its own
	// default, i.e. whether leaving it Missing after binding is legal.
	HasDefault bool

	// SlotArgsList / SlotKwargsDict: every unpacked expression that may
	// have contributed an element, in the order encountered.
	Providers []Provider
}

// Slots is the ordered slot vector built from one callee's formal list.
type Slots struct {
	slots []Slot
}

// All returns the full ordered slot vector.
func (s *Slots) All() []Slot { return s.slots }

// Slot returns slot i.
func (s *Slots) Slot(i int) Slot { return s.slots[i] }

// Len returns the number of slots.
func (s *Slots) Len() int { return len(s.slots) }

// NewSlotsFromUserParams builds slots from a user def/lambda's formal
// list (hir.Param). A Simple param becomes a Keyword slot, positional
// until the first *args/**kwargs marker is seen; *args becomes an
// ArgsList slot (bare if its own name is missing — the "*" keyword-only
// marker); **kwargs becomes a KwargsDict slot and must be last (anything
// declared after it in a syntactically valid program is a parser error,
// so the binder need not defend against it). Duplicate trailing markers
// are silently ignored — first occurrence wins.
func NewSlotsFromUserParams(params []hir.Param) *Slots {
	s := &Slots{}
	positional := true
	seenArgsList := false
	seenKwargsDict := false
	for _, p := range params {
		switch p.Kind {
		case hir.ParamSimple:
			s.slots = append(s.slots, Slot{
				Kind:       SlotKeyword,
				Name:       p.Name,
				Provider:   missingProvider,
				Positional: positional,
				HasDefault: p.HasDefault,
			})
		case hir.ParamArgsList:
			if seenArgsList || seenKwargsDict {
				continue
			}
			seenArgsList = true
			positional = false
			s.slots = append(s.slots, Slot{Kind: SlotArgsList, Bare: p.Name.IsMissing()})
		case hir.ParamKwargsDict:
			if seenKwargsDict {
				continue
			}
			seenKwargsDict = true
			positional = false
			s.slots = append(s.slots, Slot{Kind: SlotKwargsDict, Name: p.Name})
		}
	}
	return s
}

// NewSlotsFromIntrinsicParams builds slots from an engine-intrinsic
// function's formal list, which can express true positional-only
// parameters.
func NewSlotsFromIntrinsicParams(params []source.IntrinsicFunctionParam) *Slots {
	s := &Slots{}
	seenArgsList, seenKwargsDict := false, false
	for _, p := range params {
		switch p.Kind {
		case source.IntrinsicPositional:
			s.slots = append(s.slots, Slot{Kind: SlotPositional, Provider: missingProvider, HasDefault: p.HasDefault})
		case source.IntrinsicKeyword:
			s.slots = append(s.slots, Slot{Kind: SlotKeyword, Name: p.Name, Provider: missingProvider, Positional: !seenArgsList && !seenKwargsDict, HasDefault: p.HasDefault})
		case source.IntrinsicArgsList:
			if seenArgsList || seenKwargsDict {
				continue
			}
			seenArgsList = true
			s.slots = append(s.slots, Slot{Kind: SlotArgsList, Bare: p.Name.IsMissing()})
		case source.IntrinsicKwargsDict:
			if seenKwargsDict {
				continue
			}
			seenKwargsDict = true
			s.slots = append(s.slots, Slot{Kind: SlotKwargsDict, Name: p.Name})
		}
	}
	return s
}

// NewSlotsFromBuiltinParams builds slots from a host builtin's formal
// list, where every simple parameter carries an explicit positional flag
// (host builtins can be keyword-only from their very first parameter, a
// shape user def statements cannot express).
func NewSlotsFromBuiltinParams(params []source.BuiltinFunctionParam) *Slots {
	s := &Slots{}
	seenArgsList, seenKwargsDict := false, false
	for _, p := range params {
		switch p.Kind {
		case source.BuiltinSimple:
			s.slots = append(s.slots, Slot{
				Kind:       SlotKeyword,
				Name:       p.Name,
				Provider:   missingProvider,
				Positional: p.Positional,
				HasDefault: p.HasDefault,
			})
		case source.BuiltinArgsList:
			if seenArgsList || seenKwargsDict {
				continue
			}
			seenArgsList = true
			s.slots = append(s.slots, Slot{Kind: SlotArgsList, Bare: p.Name.IsMissing()})
		case source.BuiltinKwargsDict:
			if seenKwargsDict {
				continue
			}
			seenKwargsDict = true
			s.slots = append(s.slots, Slot{Kind: SlotKwargsDict, Name: p.Name})
		}
	}
	return s
}

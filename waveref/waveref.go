// Package waveref is a small, non-optimizing reference implementation of
// the wave.Hierarchy and wave.Encoder contracts. It exists so the
// internal decoders can be exercised end-to-end by tests and by
// cmd/wavedump, without pretending to be the compressed value-change
// store a real waveform viewer would use.
package waveref

import (
	"fmt"

	"github.com/deepteams/tracecore"
)

// Scope is one node of the hierarchy tree: either a real scope (Name set,
// Kind meaningful) or, at the root, the synthetic top-level scope every
// file's variables hang off of.
type Scope struct {
	Name       string
	Component  string
	Kind       wave.ScopeType
	DeclSource wave.SourceLoc
	InstSource wave.SourceLoc
	Vars       []Var
	Children   []*Scope
}

// Var is one declared variable/signal, as recorded by AddVar.
type Var struct {
	Name      string
	Type      wave.VarType
	Direction wave.VarDirection
	Length    uint32
	Index     *wave.VarIndex
	Ref       wave.SignalRef
	EnumType  string
	TypeName  string
}

// Hierarchy builds a Scope tree and an interned string table in memory.
// It satisfies wave.Hierarchy.
type Hierarchy struct {
	Date      string
	Version   string
	Timescale wave.Timescale
	Comments  []string

	Root *Scope

	strings []string
	cur     *Scope
	stack   []*Scope
}

// NewHierarchy returns an empty Hierarchy ready to be driven by ReadVCD.
func NewHierarchy() *Hierarchy {
	root := &Scope{Name: "$root"}
	return &Hierarchy{Root: root, cur: root}
}

func (h *Hierarchy) AddString(s string) wave.StringRef {
	h.strings = append(h.strings, s)
	return wave.StringRef(len(h.strings) - 1)
}

func (h *Hierarchy) string(ref wave.StringRef) string {
	if int(ref) >= len(h.strings) {
		return ""
	}
	return h.strings[ref]
}

func (h *Hierarchy) AddScope(name wave.StringRef, component *wave.StringRef, tpe wave.ScopeType, declSource, instSource wave.SourceLoc, flatten bool) {
	if flatten {
		h.stack = append(h.stack, nil)
		return
	}
	s := &Scope{
		Name:       h.string(name),
		Kind:       tpe,
		DeclSource: declSource,
		InstSource: instSource,
	}
	if component != nil {
		s.Component = h.string(*component)
	}
	h.cur.Children = append(h.cur.Children, s)
	h.stack = append(h.stack, h.cur)
	h.cur = s
}

func (h *Hierarchy) PopScope() {
	n := len(h.stack)
	popped := h.stack[n-1]
	h.stack = h.stack[:n-1]
	if popped != nil {
		h.cur = popped
	}
}

func (h *Hierarchy) AddArrayScopes(names []string) {
	for _, name := range names {
		s := &Scope{Name: name}
		h.cur.Children = append(h.cur.Children, s)
		h.stack = append(h.stack, h.cur)
		h.cur = s
	}
}

func (h *Hierarchy) PopScopes(n int) {
	for i := 0; i < n; i++ {
		h.PopScope()
	}
}

func (h *Hierarchy) AddVar(name wave.StringRef, varType wave.VarType, direction wave.VarDirection, length uint32, index *wave.VarIndex, ref wave.SignalRef, enumType, typeName *wave.StringRef) {
	v := Var{
		Name:      h.string(name),
		Type:      varType,
		Direction: direction,
		Length:    length,
		Index:     index,
		Ref:       ref,
	}
	if enumType != nil {
		v.EnumType = h.string(*enumType)
	}
	if typeName != nil {
		v.TypeName = h.string(*typeName)
	}
	h.cur.Vars = append(h.cur.Vars, v)
}

func (h *Hierarchy) SetDate(date string)           { h.Date = date }
func (h *Hierarchy) SetVersion(version string)     { h.Version = version }
func (h *Hierarchy) SetTimescale(ts wave.Timescale) { h.Timescale = ts }
func (h *Hierarchy) AddComment(comment string)      { h.Comments = append(h.Comments, comment) }
func (h *Hierarchy) Finish()                        {}

// Change is one recorded value-change event, in the order the decoder
// reported it.
type Change struct {
	Time   uint64
	Ref    wave.SignalRef // zero for a VCDValueChange; see RawID
	RawID  uint64         // the raw body-tokenizer identifier for a VCDValueChange
	Data   []byte
	States wave.StateCount
	Real   *float64
	IsVCD  bool
}

// Store is a flat, uncompressed record of every change handed to an
// Encoder, kept in arrival order. This is deliberately the simplest
// possible "signal source": no per-signal indexing, no compression.
type Store struct {
	Changes []Change
}

// Encoder accumulates Changes in memory. It satisfies wave.Encoder.
type Encoder struct {
	currentTime uint64
	store       Store
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder { return &Encoder{} }

func (e *Encoder) TimeChange(t uint64) { e.currentTime = t }

func (e *Encoder) RawValueChange(ref wave.SignalRef, data []byte, states wave.StateCount) {
	cp := append([]byte(nil), data...)
	e.store.Changes = append(e.store.Changes, Change{Time: e.currentTime, Ref: ref, Data: cp, States: states})
}

func (e *Encoder) RealChange(ref wave.SignalRef, value float64) {
	v := value
	e.store.Changes = append(e.store.Changes, Change{Time: e.currentTime, Ref: ref, Real: &v})
}

func (e *Encoder) VCDValueChange(id uint64, value []byte) {
	cp := append([]byte(nil), value...)
	e.store.Changes = append(e.store.Changes, Change{Time: e.currentTime, RawID: id, Data: cp, IsVCD: true})
}

// Append concatenates other's recorded changes onto e, in order. other
// must itself be an *Encoder; any other concrete type is a programming
// error on the caller's part (ParseParallel only ever builds Encoders
// through the same newEncoder func passed to ReadVCD).
func (e *Encoder) Append(other wave.Encoder) error {
	o, ok := other.(*Encoder)
	if !ok {
		return fmt.Errorf("waveref: Append: other is %T, not *waveref.Encoder", other)
	}
	e.store.Changes = append(e.store.Changes, o.store.Changes...)
	return nil
}

// Finish returns the accumulated Store as a wave.SignalSource.
func (e *Encoder) Finish() (wave.SignalSource, error) {
	return &e.store, nil
}

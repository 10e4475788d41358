package wave

// SignalSource is the opaque, queryable result produced by Encoder.Finish.
// Its structure belongs entirely to the downstream compressed value-change
// store (spec.md §1's "external collaborator... referenced only through
// its contract"); this package never inspects it.
type SignalSource any

// Encoder is the contract for the external value-change encoder
// collaborator. Implementations accept raw change bytes plus state-count
// metadata and are themselves responsible for whatever compression or
// indexing the downstream viewer needs; this package only ever calls the
// methods below, in time order within a single chunk.
type Encoder interface {
	// TimeChange records a new timestamp; all following value changes
	// until the next TimeChange belong to this timestep.
	TimeChange(t uint64)

	// RawValueChange records a change to a fixed-width binary-encoded
	// signal (scalar logic value, bit-vector, or narrowed integer). data
	// is the signal's full current value, states is its logic alphabet
	// size (two or nine).
	RawValueChange(ref SignalRef, data []byte, states StateCount)

	// RealChange records a change to a floating-point signal.
	RealChange(ref SignalRef, value float64)

	// VCDValueChange records a change parsed straight from a VCD value
	// token (scalar char, "b..." vector literal, or "r.../s..." literal),
	// addressed by the raw (possibly direct-mode) signal index rather than
	// a resolved SignalRef, matching the VCD body tokenizer's view of the
	// world (§4.5/§4.6).
	VCDValueChange(id uint64, value []byte)

	// Append concatenates another chunk's encoder onto this one, in
	// source order. Used to merge per-worker partial streams (§5).
	Append(other Encoder) error

	// Finish closes the encoder and returns a queryable signal source.
	Finish() (SignalSource, error)
}

package wave

import (
	"fmt"

	"github.com/deepteams/tracecore/internal/ghw"
	"github.com/deepteams/tracecore/internal/ident"
	"github.com/deepteams/tracecore/internal/tok"
	"github.com/deepteams/tracecore/internal/vcdbody"
	"github.com/deepteams/tracecore/internal/vcdscan"
)

// VCDOptions controls ReadVCD's header-scanning behavior.
type VCDOptions struct {
	// FlattenEmptyScopes omits a $scope with an empty name from the
	// resulting hierarchy tree, matching GTKWave's own default.
	FlattenEmptyScopes bool
}

// ReadVCD decodes a complete in-memory VCD file: it scans the header into
// h (§4.4), then splits the remaining body into chunks (at most one per
// CPU, a single chunk for a small body) and tokenizes them in parallel
// (§4.5/§4.6), merging the resulting
// per-chunk encoders back into one value-change store in source order.
//
// newEncoder is called once per chunk (at least once, for single-chunk
// files) to build that chunk's private Encoder; the caller is
// responsible for making each call return an independent value — sharing
// state across calls would race across chunk workers.
func ReadVCD(buf []byte, h Hierarchy, newEncoder func() Encoder, progress Progress, opts VCDOptions) (SignalSource, error) {
	if progress == nil {
		progress = NoProgress
	}

	res, err := vcdscan.Scan(buf, h, vcdscan.Options{FlattenEmptyScopes: opts.FlattenEmptyScopes})
	if err != nil {
		return nil, fmt.Errorf("wave: scanning vcd header: %w", err)
	}
	h.Finish()

	resolve := vcdResolver(res)
	body := buf[res.HeaderLen:]

	chunks, err := vcdbody.ParseParallel(body, func() vcdbody.Encoder { return newEncoder() }, resolve, progress)
	if err != nil {
		return nil, fmt.Errorf("wave: parsing vcd body: %w", err)
	}
	return mergeChunkEncoders(chunks)
}

// vcdResolver builds the raw-identifier-to-dense-signal-index function the
// body parser's workers use, reproducing exactly the numbering the header
// scanner assigned each variable: either ident.ToInt directly (direct
// mode) or the index of the SignalRef found in the hash map the scanner
// built when the file's identifier range was too sparse for direct
// indexing (§4.2/§4.6).
func vcdResolver(res vcdscan.Result) vcdbody.Resolver {
	if res.Lookup != nil {
		return func(id []byte) (uint64, bool) {
			ref, ok := res.Lookup.Lookup(id)
			if !ok {
				return 0, false
			}
			return uint64(ref.Index()), true
		}
	}
	return func(id []byte) (uint64, bool) {
		idx, err := ident.ToInt(id)
		if err != nil {
			return 0, false
		}
		return idx, true
	}
}

// mergeChunkEncoders concatenates a set of per-chunk encoders, produced
// in source order by ParseParallel, into the first one. Each element's
// static type is vcdbody's local Encoder interface; since every value was
// built by the caller's newEncoder (which returns a wave.Encoder), the
// assertion back to the full interface always succeeds.
func mergeChunkEncoders(chunks []vcdbody.Encoder) (SignalSource, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("wave: vcd body produced no chunks")
	}
	first, ok := chunks[0].(Encoder)
	if !ok {
		return nil, fmt.Errorf("wave: chunk encoder does not implement Encoder")
	}
	for _, c := range chunks[1:] {
		other, ok := c.(Encoder)
		if !ok {
			return nil, fmt.Errorf("wave: chunk encoder does not implement Encoder")
		}
		if err := first.Append(other); err != nil {
			return nil, fmt.Errorf("wave: merging chunk encoders: %w", err)
		}
	}
	return first.Finish()
}

// GHW value-type re-exports. The GHW binary format's own hierarchy/
// directory section (the part of the file that would normally drive a
// Hierarchy the way $scope/$var drives one for VCD) was not present in
// the reference material this module was built from, so this package
// decodes only the signal-value sections (SNAPSHOT/CYCLE/DIRECTORY-skip/
// TAILER, §4.7-§4.9): ReadGHW takes an already-resolved signal list
// instead of building one from a directory section itself. See
// DESIGN.md for the full reasoning.
type (
	GHWSignalKind = ghw.SignalKind
	GHWSignalType = ghw.SignalType
	GHWSignal     = ghw.Signal
)

const (
	GHWKindNineState    = ghw.KindNineState
	GHWKindTwoState     = ghw.KindTwoState
	GHWKindNineStateBit = ghw.KindNineStateBit
	GHWKindTwoStateBit  = ghw.KindTwoStateBit
	GHWKindU8           = ghw.KindU8
	GHWKindLeb128Signed = ghw.KindLeb128Signed
	GHWKindF64          = ghw.KindF64
)

// GHWStdLogicChar maps a raw std_ulogic ordinal (0..8), as carried by a
// GHWKindNineState/GHWKindNineStateBit RawValueChange, to its display
// character ('U','X','0','1','Z','W','L','H','-').
func GHWStdLogicChar(raw byte) byte { return ghw.StdLogicChar(raw) }

// ReadGHW decodes the SNAPSHOT/CYCLE/DIRECTORY/TAILER section stream of
// a GHW file's signal-value region into enc. signals and signalRefCount
// describe the design's signal table exactly as GHW's own directory
// section would (§4.7); a caller obtains them from whatever parses that
// section (see the package doc comment and DESIGN.md).
func ReadGHW(buf []byte, bigEndian bool, signals []GHWSignal, signalRefCount int, enc Encoder) (SignalSource, error) {
	r := tok.NewReader(buf)
	if err := ghw.ReadSignals(ghw.Header{BigEndian: bigEndian}, signals, signalRefCount, enc, r); err != nil {
		return nil, fmt.Errorf("wave: reading ghw signal sections: %w", err)
	}
	return enc.Finish()
}

package ghw

import (
	"fmt"

	"github.com/deepteams/tracecore/internal/tok"
	"github.com/deepteams/tracecore/internal/wavetypes"
)

// SignalKind is the closed set of ways a single GHW signal's per-step
// value is physically encoded on disk.
type SignalKind int

const (
	// KindNineState is a standalone std_(u)logic scalar: one byte per
	// change, passed on as its raw 0..8 ordinal; stdLogicLUT is not
	// applied.
	KindNineState SignalKind = iota
	// KindTwoState is a standalone std_bit/boolean scalar: one byte per
	// change, 0 or 1.
	KindTwoState
	// KindNineStateBit is one bit of a std_(u)logic_vector; Bit is this
	// signal's position within the vector, Bits the vector's total width.
	// Every bit position of the same vector shares one VecBuffer slot.
	KindNineStateBit
	// KindTwoStateBit is the two-state analog of KindNineStateBit.
	KindTwoStateBit
	// KindU8 is a narrow (<=8 bit) unsigned integer, one byte per change.
	KindU8
	// KindLeb128Signed is a signed integer of up to 64 bits, one LEB128
	// value per change, truncated to Bits bits of big-endian output.
	KindLeb128Signed
	// KindF64 is a VHDL real, one little-endian double per change.
	KindF64
)

// SignalType is one signal's decode recipe, resolved once from the GHW
// directory section before any value change is read.
type SignalType struct {
	Kind SignalKind
	// Bit is this signal's position within its containing vector, valid
	// only for KindNineStateBit/KindTwoStateBit.
	Bit uint32
	// Bits is the containing vector's (or scalar integer's) total width,
	// valid for KindNineStateBit/KindTwoStateBit/KindU8/KindLeb128Signed.
	Bits uint32
}

// Signal is one decoded-info entry: a GHW signal's physical type plus
// the dense SignalRef (possibly aliased with other signals) its changes
// are reported against.
type Signal struct {
	Type      SignalType
	SignalRef wavetypes.SignalRef
}

// stdLogicLUT maps GHDL's 9-valued std_ulogic enumeration, stored as a
// raw byte 0..8, onto the 'U','X','0','1','Z','W','L','H','-' character
// an FST/VCD consumer expects for a nine-state signal. The nine-value
// enumeration order below follows IEEE 1164's std_ulogic declaration
// order, which is what GHDL's own runtime uses internally; this table's
// construction is an implementation decision rather than something taken
// verbatim from an upstream source (see the design notes for this
// component).
//
// The decoder itself never applies this table: RawValueChange carries
// the raw 0..8 ordinal (packed four bits per slot for vector bits, via
// VecBuffer), not a display character, so a vector's bits pack densely.
// StdLogicChar exposes the same mapping for whatever downstream consumer
// renders a nine-state change as text.
var stdLogicLUT = [256]byte{
	0: 'U', 1: 'X', 2: '0', 3: '1', 4: 'Z', 5: 'W', 6: 'L', 7: 'H', 8: '-',
}

// StdLogicChar returns the display character for a raw std_ulogic
// ordinal (0..8) as decoded off the wire. Out-of-range ordinals map to
// NUL; callers that care should validate raw < 9 themselves.
func StdLogicChar(raw byte) byte { return stdLogicLUT[raw] }

// Encoder is the minimal sink the signal decoder and the VecBuffer
// flush paths drive. Defined locally so this package never imports the
// root package; any wave.Encoder value satisfies it structurally.
type Encoder interface {
	TimeChange(t uint64)
	RawValueChange(ref wavetypes.SignalRef, data []byte, states wavetypes.StateCount)
	RealChange(ref wavetypes.SignalRef, value float64)
}

// ReadSignalValue decodes one signal's value change from r and reports
// it to enc, buffering multi-bit vector writes through vecs until the
// bit vector is known complete (or about to be clobbered by a second
// write this step).
func ReadSignalValue(sig Signal, vecs *VecBuffer, enc Encoder, r *tok.Reader) error {
	switch sig.Type.Kind {
	case KindNineState:
		raw, err := r.ReadU8()
		if err != nil {
			return fmt.Errorf("ghw: reading nine-state value: %w", err)
		}
		value := [1]byte{raw}
		enc.RawValueChange(sig.SignalRef, value[:], wavetypes.NineState)

	case KindTwoState:
		raw, err := r.ReadU8()
		if err != nil {
			return fmt.Errorf("ghw: reading two-state value: %w", err)
		}
		value := [1]byte{raw}
		enc.RawValueChange(sig.SignalRef, value[:], wavetypes.TwoState)

	case KindNineStateBit:
		value, err := r.ReadU8()
		if err != nil {
			return fmt.Errorf("ghw: reading nine-state bit: %w", err)
		}
		if vecs.IsSecondChange(sig.SignalRef, sig.Type.Bit, value) {
			data := vecs.GetFullValueAndClearChanges(sig.SignalRef)
			enc.RawValueChange(sig.SignalRef, data, wavetypes.NineState)
		}
		vecs.UpdateValue(sig.SignalRef, sig.Type.Bit, value)
		if vecs.FullSignalHasChanged(sig.SignalRef) {
			data := vecs.GetFullValueAndClearChanges(sig.SignalRef)
			enc.RawValueChange(sig.SignalRef, data, wavetypes.NineState)
		}

	case KindTwoStateBit:
		value, err := r.ReadU8()
		if err != nil {
			return fmt.Errorf("ghw: reading two-state bit: %w", err)
		}
		if vecs.IsSecondChange(sig.SignalRef, sig.Type.Bit, value) {
			data := vecs.GetFullValueAndClearChanges(sig.SignalRef)
			enc.RawValueChange(sig.SignalRef, data, wavetypes.TwoState)
		}
		vecs.UpdateValue(sig.SignalRef, sig.Type.Bit, value)
		if vecs.FullSignalHasChanged(sig.SignalRef) {
			data := vecs.GetFullValueAndClearChanges(sig.SignalRef)
			enc.RawValueChange(sig.SignalRef, data, wavetypes.TwoState)
		}

	case KindU8:
		raw, err := r.ReadU8()
		if err != nil {
			return fmt.Errorf("ghw: reading u8 value: %w", err)
		}
		value := [1]byte{raw}
		enc.RawValueChange(sig.SignalRef, value[:], wavetypes.TwoState)

	case KindLeb128Signed:
		signed, err := r.ReadSignedLEB128()
		if err != nil {
			return fmt.Errorf("ghw: reading leb128 signed value: %w", err)
		}
		bytes, err := leb128SignedToBytes(signed, sig.Type.Bits)
		if err != nil {
			return err
		}
		enc.RawValueChange(sig.SignalRef, bytes, wavetypes.TwoState)

	case KindF64:
		value, err := r.ReadF64LE()
		if err != nil {
			return fmt.Errorf("ghw: reading f64 value: %w", err)
		}
		enc.RealChange(sig.SignalRef, value)

	default:
		return fmt.Errorf("ghw: unknown signal kind %d", sig.Type.Kind)
	}
	return nil
}

// leb128SignedToBytes truncates a decoded signed LEB128 value to the
// big-endian byte width its declared bit count needs, verifying the
// value actually fits (catching a directory/body mismatch rather than
// silently corrupting the trace).
func leb128SignedToBytes(value int64, bits uint32) ([]byte, error) {
	u := uint64(value)
	if bits < 64 {
		if value >= 0 {
			if u >= uint64(1)<<bits {
				return nil, fmt.Errorf("ghw: value %d does not fit into %d bits", value, bits)
			}
		} else {
			nonSignMask := uint64(1)<<(bits-1) - 1
			if signBits := u &^ nonSignMask; signBits != ^nonSignMask {
				return nil, fmt.Errorf("ghw: value %d does not sign-extend correctly for %d bits", value, bits)
			}
		}
	}
	numBytes := int((bits + 7) / 8)
	var full [8]byte
	full[0] = byte(u >> 56)
	full[1] = byte(u >> 48)
	full[2] = byte(u >> 40)
	full[3] = byte(u >> 32)
	full[4] = byte(u >> 24)
	full[5] = byte(u >> 16)
	full[6] = byte(u >> 8)
	full[7] = byte(u)
	return full[8-numBytes:], nil
}

package ghw

import (
	"errors"
	"math"
	"testing"

	"github.com/deepteams/tracecore/internal/tok"
	"github.com/deepteams/tracecore/internal/wavetypes"
)

type recordingEncoder struct {
	times []uint64
	raw   []rawChange
	reals []realChange
}

type rawChange struct {
	ref    wavetypes.SignalRef
	data   []byte
	states wavetypes.StateCount
}

type realChange struct {
	ref   wavetypes.SignalRef
	value float64
}

func (e *recordingEncoder) TimeChange(t uint64) { e.times = append(e.times, t) }
func (e *recordingEncoder) RawValueChange(ref wavetypes.SignalRef, data []byte, states wavetypes.StateCount) {
	cp := append([]byte(nil), data...)
	e.raw = append(e.raw, rawChange{ref, cp, states})
}
func (e *recordingEncoder) RealChange(ref wavetypes.SignalRef, value float64) {
	e.reals = append(e.reals, realChange{ref, value})
}

func TestReadSignalValue_TwoStateScalar(t *testing.T) {
	ref, _ := wavetypes.SignalRefFromIndex(0)
	sig := Signal{Type: SignalType{Kind: KindTwoState}, SignalRef: ref}
	r := tok.NewReader([]byte{1})
	enc := &recordingEncoder{}
	vecs := NewVecBuffer(nil, 1)

	if err := ReadSignalValue(sig, vecs, enc, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(enc.raw) != 1 || enc.raw[0].data[0] != 1 || enc.raw[0].states != wavetypes.TwoState {
		t.Fatalf("unexpected raw changes: %+v", enc.raw)
	}
}

func TestReadSignalValue_NineStateScalar_CarriesRawOrdinal(t *testing.T) {
	ref, _ := wavetypes.SignalRefFromIndex(0)
	sig := Signal{Type: SignalType{Kind: KindNineState}, SignalRef: ref}
	r := tok.NewReader([]byte{3}) // ordinal for '1'
	enc := &recordingEncoder{}
	vecs := NewVecBuffer(nil, 1)

	if err := ReadSignalValue(sig, vecs, enc, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(enc.raw) != 1 || enc.raw[0].data[0] != 3 {
		t.Fatalf("expected raw ordinal 3 preserved, got %+v", enc.raw)
	}
	if StdLogicChar(enc.raw[0].data[0]) != '1' {
		t.Fatalf("StdLogicChar translation mismatch")
	}
}

func TestReadSignalValue_F64(t *testing.T) {
	ref, _ := wavetypes.SignalRefFromIndex(0)
	sig := Signal{Type: SignalType{Kind: KindF64}, SignalRef: ref}
	buf := make([]byte, 8)
	bits := math.Float64bits(3.5)
	for i := 0; i < 8; i++ {
		buf[i] = byte(bits >> (8 * i))
	}
	r := tok.NewReader(buf)
	enc := &recordingEncoder{}
	vecs := NewVecBuffer(nil, 1)

	if err := ReadSignalValue(sig, vecs, enc, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(enc.reals) != 1 || enc.reals[0].value != 3.5 {
		t.Fatalf("unexpected real changes: %+v", enc.reals)
	}
}

func TestReadSignalValue_Leb128Signed(t *testing.T) {
	ref, _ := wavetypes.SignalRefFromIndex(0)
	sig := Signal{Type: SignalType{Kind: KindLeb128Signed, Bits: 8}, SignalRef: ref}
	// -1 as signed LEB128: 0x7f
	r := tok.NewReader([]byte{0x7f})
	enc := &recordingEncoder{}
	vecs := NewVecBuffer(nil, 1)

	if err := ReadSignalValue(sig, vecs, enc, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(enc.raw) != 1 || len(enc.raw[0].data) != 1 || enc.raw[0].data[0] != 0xff {
		t.Fatalf("expected single byte 0xff for -1 truncated to 8 bits, got %+v", enc.raw)
	}
}

func TestReadSignalValue_Leb128Signed_DoesNotFit(t *testing.T) {
	ref, _ := wavetypes.SignalRefFromIndex(0)
	sig := Signal{Type: SignalType{Kind: KindLeb128Signed, Bits: 4}, SignalRef: ref}
	// 0x64 decodes as signed LEB128 -28, which does not fit into 4 bits.
	r := tok.NewReader([]byte{100})
	enc := &recordingEncoder{}
	vecs := NewVecBuffer(nil, 1)

	err := ReadSignalValue(sig, vecs, enc, r)
	if err == nil {
		t.Fatalf("expected an error for an out-of-range narrow integer")
	}
}

func TestReadSignalValue_VectorBit_FlushesOnSecondChange(t *testing.T) {
	ref, _ := wavetypes.SignalRefFromIndex(0)
	signals := []Signal{
		{Type: SignalType{Kind: KindTwoStateBit, Bit: 0, Bits: 2}, SignalRef: ref},
		{Type: SignalType{Kind: KindTwoStateBit, Bit: 1, Bits: 2}, SignalRef: ref},
	}
	vecs := NewVecBuffer(signals, 1)
	enc := &recordingEncoder{}
	r := tok.NewReader([]byte{1})

	if err := ReadSignalValue(signals[0], vecs, enc, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(enc.raw) != 0 {
		t.Fatalf("a single bit write of 2 should not flush yet: %+v", enc.raw)
	}

	// same bit, same position, different value: second change, must flush.
	r2 := tok.NewReader([]byte{0})
	if err := ReadSignalValue(signals[0], vecs, enc, r2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(enc.raw) != 1 {
		t.Fatalf("expected a flush on second distinct write to the same bit, got %+v", enc.raw)
	}
}

func TestReadSignalValue_UnknownKind(t *testing.T) {
	ref, _ := wavetypes.SignalRefFromIndex(0)
	sig := Signal{Type: SignalType{Kind: SignalKind(999)}, SignalRef: ref}
	r := tok.NewReader([]byte{0})
	enc := &recordingEncoder{}
	vecs := NewVecBuffer(nil, 1)

	err := ReadSignalValue(sig, vecs, enc, r)
	if err == nil {
		t.Fatalf("expected an error for an unknown signal kind")
	}
	var target interface{ Error() string }
	if !errors.As(err, &target) {
		t.Fatalf("expected a wrapped error")
	}
}

package ghw

import (
	"testing"

	"github.com/deepteams/tracecore/internal/wavetypes"
)

func twoStateVec(ref wavetypes.SignalRef, bits uint32) []Signal {
	signals := make([]Signal, bits)
	for i := uint32(0); i < bits; i++ {
		signals[i] = Signal{
			Type:      SignalType{Kind: KindTwoStateBit, Bit: i, Bits: bits},
			SignalRef: ref,
		}
	}
	return signals
}

func TestVecBuffer_FullSignalHasChanged_AllBitsWritten(t *testing.T) {
	ref, _ := wavetypes.SignalRefFromIndex(0)
	signals := twoStateVec(ref, 4)
	vecs := NewVecBuffer(signals, 1)

	for bit := uint32(0); bit < 4; bit++ {
		if vecs.FullSignalHasChanged(ref) {
			t.Fatalf("bit %d: expected incomplete before all bits written", bit)
		}
		vecs.UpdateValue(ref, bit, 1)
	}
	if !vecs.FullSignalHasChanged(ref) {
		t.Fatalf("expected full signal change once all 4 bits written")
	}

	data := vecs.GetFullValueAndClearChanges(ref)
	if len(data) != 1 {
		t.Fatalf("expected 1 data byte for a 4-bit two-state vector, got %d", len(data))
	}
	if data[0] != 0x0f {
		t.Fatalf("expected packed value 0x0f, got %#x", data[0])
	}
}

func TestVecBuffer_IsSecondChange(t *testing.T) {
	ref, _ := wavetypes.SignalRefFromIndex(0)
	signals := twoStateVec(ref, 2)
	vecs := NewVecBuffer(signals, 1)

	vecs.UpdateValue(ref, 0, 1)
	if vecs.IsSecondChange(ref, 0, 1) {
		t.Fatalf("writing the same value again should not count as a second change")
	}
	if !vecs.IsSecondChange(ref, 0, 0) {
		t.Fatalf("writing a different value to an already-changed bit should be a second change")
	}
}

func TestVecBuffer_ProcessChangedSignals_DeliversIncompleteVector(t *testing.T) {
	ref, _ := wavetypes.SignalRefFromIndex(0)
	signals := twoStateVec(ref, 4)
	vecs := NewVecBuffer(signals, 1)

	vecs.UpdateValue(ref, 2, 1)

	var delivered []wavetypes.SignalRef
	vecs.ProcessChangedSignals(func(r wavetypes.SignalRef, data []byte, states wavetypes.StateCount) {
		delivered = append(delivered, r)
	})
	if len(delivered) != 1 || delivered[0] != ref {
		t.Fatalf("expected end-of-step sweep to deliver the partially-written signal, got %v", delivered)
	}

	delivered = nil
	vecs.ProcessChangedSignals(func(r wavetypes.SignalRef, data []byte, states wavetypes.StateCount) {
		delivered = append(delivered, r)
	})
	if len(delivered) != 0 {
		t.Fatalf("expected nothing left on the change list after a sweep, got %v", delivered)
	}
}

func TestVecBuffer_NineStateVector_MasksToFourBits(t *testing.T) {
	ref, _ := wavetypes.SignalRefFromIndex(0)
	signals := make([]Signal, 2)
	for i := range signals {
		signals[i] = Signal{
			Type:      SignalType{Kind: KindNineStateBit, Bit: uint32(i), Bits: 2},
			SignalRef: ref,
		}
	}
	vecs := NewVecBuffer(signals, 1)

	// ordinals, not display characters: 3 is std_ulogic '1', 2 is '0'.
	vecs.UpdateValue(ref, 0, 3)
	vecs.UpdateValue(ref, 1, 2)
	if !vecs.FullSignalHasChanged(ref) {
		t.Fatalf("expected full change once both nine-state bits are written")
	}
	data := vecs.GetFullValueAndClearChanges(ref)
	if len(data) != 1 {
		t.Fatalf("expected 1 data byte for a 2-bit nine-state vector, got %d", len(data))
	}
}

func TestGetDataIndex_MirroredIndexUnmirroredShift(t *testing.T) {
	// An 8-bit two-state vector packs 8 slots per byte; bit 0 (LSB,
	// logically the rightmost vector position) mirrors to vector index 7
	// but must still land in the first (and only) data byte at shift 0,
	// since the shift uses the unmirrored bit position.
	index, shift := getDataIndex(8, 0, wavetypes.TwoState)
	if index != 0 || shift != 0 {
		t.Fatalf("bit 0 of an 8-bit vector: got index=%d shift=%d, want index=0 shift=0", index, shift)
	}
	index, shift = getDataIndex(8, 7, wavetypes.TwoState)
	if index != 0 || shift != 7 {
		t.Fatalf("bit 7 of an 8-bit vector: got index=%d shift=%d, want index=0 shift=7", index, shift)
	}
}

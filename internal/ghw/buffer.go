package ghw

import "github.com/deepteams/tracecore/internal/wavetypes"

// bufferInfo locates one multi-bit signal's packed slice within the
// shared data/bitChange byte arrays, and records its logic alphabet so
// callers know how to unpack it.
type bufferInfo struct {
	dataStart      uint32
	bitChangeStart uint32
	bits           uint32
	states         wavetypes.StateCount
}

func divCeilU(a, b uint32) uint32 {
	return (a + b - 1) / b
}

// changeRange is this signal's byte range within the shared bit-change
// array: one bit per vector bit, 8 bits per byte.
func (i bufferInfo) changeRange() (start, end uint32) {
	start = i.bitChangeStart
	return start, start + divCeilU(i.bits, 8)
}

// dataRange is this signal's byte range within the shared data array:
// states.BitsInAByte() vector bits pack into each byte.
func (i bufferInfo) dataRange() (start, end uint32) {
	start = i.dataStart
	return start, start + divCeilU(i.bits, uint32(i.states.BitsInAByte()))
}

// VecBuffer accumulates bit-at-a-time writes to multi-bit GHW signals
// across a single delta cycle and reports each signal's full current
// value, exactly once, as soon as it is known to be complete or about to
// be overwritten a second time within the same timestep.
//
// Three parallel byte arrays back every tracked signal: data holds the
// packed current value (states.BitsInAByte() slots per byte, MSB bit
// first within a vector), bitChange tracks which individual bits have
// been written this step (one bit per vector bit), and signalChange is a
// one-bit-per-signal flag set the moment any of its bits first changes.
// changeList records a signal ref each time its signalChange flag goes
// from clear to set, in that order; the end-of-step sweep delivers the
// signals whose flag is still set and skips the rest, so a ref that was
// flushed early and dirtied again may appear twice but is delivered once.
type VecBuffer struct {
	info         []*bufferInfo
	data         []byte
	bitChange    []byte
	signalChange []byte
	changeList   []wavetypes.SignalRef
}

// NewVecBuffer lays out packed storage for every multi-bit signal in
// signals (scalar signals need no buffer and get a nil info entry).
// signalRefCount is the total number of distinct signal refs in the
// design, used to size the one-bit-per-signal changed-flag array.
func NewVecBuffer(signals []Signal, signalRefCount int) *VecBuffer {
	info := make([]*bufferInfo, signalRefCount)
	var dataStart, bitChangeStart uint32

	for _, sig := range signals {
		idx := sig.SignalRef.Index()
		if idx < 0 || idx >= signalRefCount || info[idx] != nil {
			continue
		}
		var states wavetypes.StateCount
		var bits uint32
		switch sig.Type.Kind {
		case KindNineStateBit:
			if sig.Type.Bit != 0 {
				continue
			}
			states, bits = wavetypes.NineState, sig.Type.Bits
		case KindTwoStateBit:
			if sig.Type.Bit != 0 {
				continue
			}
			states, bits = wavetypes.TwoState, sig.Type.Bits
		default:
			continue
		}
		info[idx] = &bufferInfo{dataStart: dataStart, bitChangeStart: bitChangeStart, bits: bits, states: states}
		dataStart += divCeilU(bits, uint32(states.BitsInAByte()))
		bitChangeStart += divCeilU(bits, 8)
	}

	return &VecBuffer{
		info:         info,
		data:         make([]byte, dataStart),
		bitChange:    make([]byte, bitChangeStart),
		signalChange: make([]byte, (signalRefCount+7)/8),
	}
}

// ProcessChangedSignals sweeps every signal on the change list and
// delivers its current value through callback for any that still have
// their changed flag set (a second-change flush in the middle of the
// step already cleared and delivered some of them). Called once at the
// end of every time step, this is what finally reports multi-bit
// signals whose last write in the step didn't happen to complete or
// re-trigger the full vector.
func (b *VecBuffer) ProcessChangedSignals(callback func(ref wavetypes.SignalRef, data []byte, states wavetypes.StateCount)) {
	changed := b.changeList
	b.changeList = nil
	for _, ref := range changed {
		if b.hasSignalChanged(ref) {
			info := b.info[ref.Index()]
			data := b.getFullValueAndClearChanges(ref)
			callback(ref, data, info.states)
		}
	}
}

// IsSecondChange reports whether bit of ref has already been written
// this step to a different value than value: a second distinct write to
// the same bit within one delta cycle, which must be flushed
// immediately so each intermediate value is preserved in the output
// instead of being silently overwritten.
func (b *VecBuffer) IsSecondChange(ref wavetypes.SignalRef, bit uint32, value byte) bool {
	info := b.info[ref.Index()]
	return b.hasBitChanged(info, bit) && b.getValue(info, bit) != value
}

// UpdateValue writes value into bit of ref, marking the bit and the
// signal as changed if the value actually differs from what was there.
func (b *VecBuffer) UpdateValue(ref wavetypes.SignalRef, bit uint32, value byte) {
	info := b.info[ref.Index()]
	if b.getValue(info, bit) == value {
		return
	}
	b.markBitChanged(info, bit)
	b.setValue(info, bit, value)
	if !b.hasSignalChanged(ref) {
		b.markSignalChanged(ref)
	}
}

// FullSignalHasChanged reports whether every bit of ref's vector has a
// pending change this step, meaning the whole value is now known fresh
// and can be dispatched without waiting for end-of-step.
func (b *VecBuffer) FullSignalHasChanged(ref wavetypes.SignalRef) bool {
	info := b.info[ref.Index()]
	start, end := info.changeRange()
	changes := b.bitChange[start:end]

	// bit i is tracked in byte i/8, so a partial byte (bits%8 != 0) is
	// the last one and holds the highest bits.
	skip := 0
	if info.bits%8 != 0 {
		skip = 1
	}
	for _, e := range changes[:len(changes)-skip] {
		if e != 0xff {
			return false
		}
	}
	if skip > 0 {
		msbMask := byte(1<<(info.bits%8)) - 1
		if changes[len(changes)-1]&msbMask != msbMask {
			return false
		}
	}
	return true
}

// GetFullValueAndClearChanges returns ref's packed current value and
// clears its bit-level and signal-level changed flags, leaving it on
// the change list (ProcessChangedSignals handles removal).
func (b *VecBuffer) GetFullValueAndClearChanges(ref wavetypes.SignalRef) []byte {
	return b.getFullValueAndClearChanges(ref)
}

func (b *VecBuffer) getFullValueAndClearChanges(ref wavetypes.SignalRef) []byte {
	info := b.info[ref.Index()]
	start, end := info.changeRange()
	changes := b.bitChange[start:end]
	for i := range changes {
		changes[i] = 0
	}

	byteIdx, bit := ref.Index()/8, ref.Index()%8
	b.signalChange[byteIdx] &^= 1 << bit

	dStart, dEnd := info.dataRange()
	return b.data[dStart:dEnd]
}

func (b *VecBuffer) hasBitChanged(info *bufferInfo, bit uint32) bool {
	start, _ := info.changeRange()
	return (b.bitChange[start+bit/8]>>(bit%8))&1 == 1
}

func (b *VecBuffer) markBitChanged(info *bufferInfo, bit uint32) {
	start, _ := info.changeRange()
	b.bitChange[start+bit/8] |= 1 << (bit % 8)
}

func (b *VecBuffer) hasSignalChanged(ref wavetypes.SignalRef) bool {
	byteIdx, bit := ref.Index()/8, ref.Index()%8
	return (b.signalChange[byteIdx]>>bit)&1 == 1
}

func (b *VecBuffer) markSignalChanged(ref wavetypes.SignalRef) {
	byteIdx, bit := ref.Index()/8, ref.Index()%8
	b.signalChange[byteIdx] |= 1 << bit
	b.changeList = append(b.changeList, ref)
}

func (b *VecBuffer) getValue(info *bufferInfo, bit uint32) byte {
	dStart, _ := info.dataRange()
	index, shift := getDataIndex(info.bits, bit, info.states)
	return (b.data[dStart+uint32(index)] >> shift) & info.states.Mask()
}

func (b *VecBuffer) setValue(info *bufferInfo, bit uint32, value byte) {
	dStart, _ := info.dataRange()
	index, shift := getDataIndex(info.bits, bit, info.states)
	pos := dStart + uint32(index)
	old := b.data[pos] &^ (info.states.Mask() << shift)
	b.data[pos] = old | (value << shift)
}

// getDataIndex maps a bit position within a states-wide vector to the
// byte it packs into and the shift needed to reach its slot. Bits are
// stored MSB-first within the vector (mirrored against bits-1-bit)
// while slots within a byte fill low-to-high, matching how the vector's
// textual/VCD rendering reads left (MSB) to right (LSB) while the
// packed byte layout still favors bit 0 as the first slot written.
func getDataIndex(bits, bit uint32, states wavetypes.StateCount) (index int, shift uint) {
	mirrored := bits - 1 - bit
	bitsInAByte := uint32(states.BitsInAByte())
	index = int(mirrored / bitsInAByte)
	shift = uint(bit%bitsInAByte) * states.Bits()
	return index, shift
}

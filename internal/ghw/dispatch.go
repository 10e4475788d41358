// Package ghw implements the GHW (GHDL waveform) binary format: the
// section dispatcher that walks SNAPSHOT/CYCLE/DIRECTORY/TAILER sections,
// the per-signal value decoder, and the bit-vector change buffer that
// coalesces individual bit writes into whole-vector change events.
package ghw

import (
	"errors"
	"fmt"

	"github.com/deepteams/tracecore/internal/tok"
	"github.com/deepteams/tracecore/internal/wavetypes"
)

// ErrUnexpectedSection is returned when a 4-byte section tag doesn't
// match any of the known section kinds.
var ErrUnexpectedSection = errors.New("ghw: unexpected section tag")

// ErrStructural is returned when a section's fixed framing (reserved
// zero bytes, end-of-section marker) doesn't hold.
var ErrStructural = errors.New("ghw: structural violation")

// section tags and their matching end-of-section markers. The GHW
// format's defining module (ghw/common.rs upstream) wasn't part of the
// retrieved reference material, so the literal byte values here are a
// self-consistent placeholder scheme (four-letter mnemonics) rather than
// values recovered from GHDL's actual writer; see DESIGN.md.
var (
	sectionSnapshot  = [4]byte{'S', 'N', 'A', 'P'}
	sectionCycle     = [4]byte{'C', 'Y', 'C', 'L'}
	sectionDirectory = [4]byte{'D', 'I', 'R', 'C'}
	sectionTailer    = [4]byte{'T', 'A', 'I', 'L'}

	endSnapshot = [4]byte{'E', 'O', 'S', 'N'}
	endCycle    = [4]byte{'E', 'O', 'C', 'Y'}
)

// Header carries the file-level decode parameters the signal-value and
// section-framing code needs: only the integer endianness flag, since
// that's the only header field this package's own logic depends on.
type Header struct {
	BigEndian bool
}

// ReadSignals consumes section after section from r, starting right
// after the end of the hierarchy, driving enc with time and value
// change events until a TAILER section ends the file.
func ReadSignals(header Header, signals []Signal, signalRefCount int, enc Encoder, r *tok.Reader) error {
	vecs := NewVecBuffer(signals, signalRefCount)
	for {
		mark, err := r.ReadExact(4)
		if err != nil {
			return fmt.Errorf("ghw: reading section tag: %w", err)
		}
		var tag [4]byte
		copy(tag[:], mark)

		switch tag {
		case sectionSnapshot:
			if err := readSnapshotSection(header, signals, vecs, enc, r); err != nil {
				return err
			}
		case sectionCycle:
			if err := readCycleSection(header, signals, vecs, enc, r); err != nil {
				return err
			}
		case sectionDirectory:
			if err := skipDirectorySection(header, r); err != nil {
				return err
			}
		case sectionTailer:
			return nil
		default:
			return fmt.Errorf("%w: %q", ErrUnexpectedSection, tag)
		}
	}
}

func readSnapshotSection(header Header, signals []Signal, vecs *VecBuffer, enc Encoder, r *tok.Reader) error {
	reserved, err := r.ReadExact(4)
	if err != nil {
		return fmt.Errorf("ghw: reading snapshot header: %w", err)
	}
	if err := checkHeaderZeros("snapshot", reserved); err != nil {
		return err
	}
	startTime, err := r.ReadI64(header.BigEndian)
	if err != nil {
		return fmt.Errorf("ghw: reading snapshot start time: %w", err)
	}
	enc.TimeChange(uint64(startTime))

	for _, sig := range signals {
		if err := ReadSignalValue(sig, vecs, enc, r); err != nil {
			return err
		}
	}
	finishTimeStep(vecs, enc)
	return checkMagicEnd(r, "snapshot", endSnapshot)
}

func readCycleSection(header Header, signals []Signal, vecs *VecBuffer, enc Encoder, r *tok.Reader) error {
	// cycle sections carry no reserved zero bytes, unlike snapshots.
	startTime, err := r.ReadI64(header.BigEndian)
	if err != nil {
		return fmt.Errorf("ghw: reading cycle start time: %w", err)
	}

	for {
		enc.TimeChange(uint64(startTime))
		if err := readCycleSignals(signals, vecs, enc, r); err != nil {
			return err
		}
		finishTimeStep(vecs, enc)

		delta, err := r.ReadSignedLEB128()
		if err != nil {
			return fmt.Errorf("ghw: reading cycle time delta: %w", err)
		}
		if delta < 0 {
			break
		}
		startTime += delta
	}
	return checkMagicEnd(r, "cycle", endCycle)
}

func readCycleSignals(signals []Signal, vecs *VecBuffer, enc Encoder, r *tok.Reader) error {
	posSignalIndex := 0
	for {
		delta, err := r.ReadUnsignedLEB128()
		if err != nil {
			return fmt.Errorf("ghw: reading cycle signal delta: %w", err)
		}
		if delta == 0 {
			if posSignalIndex == 0 {
				return fmt.Errorf("%w: cycle section expected a first delta > 0", ErrStructural)
			}
			return nil
		}
		posSignalIndex += int(delta)
		if posSignalIndex-1 >= len(signals) {
			return fmt.Errorf("%w: cycle signal index %d out of range", ErrStructural, posSignalIndex-1)
		}
		if err := ReadSignalValue(signals[posSignalIndex-1], vecs, enc, r); err != nil {
			return err
		}
	}
}

// finishTimeStep dispatches any vector changes that neither completed a
// full value nor were caught by a second-change flush mid-step.
func finishTimeStep(vecs *VecBuffer, enc Encoder) {
	vecs.ProcessChangedSignals(func(ref wavetypes.SignalRef, data []byte, states wavetypes.StateCount) {
		enc.RawValueChange(ref, data, states)
	})
}

// skipDirectorySection reads and discards a directory section without
// interpreting its contents: a length-prefixed blob, per the
// placeholder framing noted above dispatch.go's section tag constants.
func skipDirectorySection(header Header, r *tok.Reader) error {
	lenBytes, err := r.ReadExact(4)
	if err != nil {
		return fmt.Errorf("ghw: reading directory length: %w", err)
	}
	length, err := readU32At(header, lenBytes)
	if err != nil {
		return err
	}
	if _, err := r.ReadExact(int(length)); err != nil {
		return fmt.Errorf("ghw: reading directory body: %w", err)
	}
	return nil
}

func checkHeaderZeros(section string, b []byte) error {
	for _, v := range b {
		if v != 0 {
			return fmt.Errorf("%w: %s header reserved bytes are not all zero", ErrStructural, section)
		}
	}
	return nil
}

func checkMagicEnd(r *tok.Reader, section string, want [4]byte) error {
	got, err := r.ReadExact(4)
	if err != nil {
		return fmt.Errorf("ghw: reading %s end marker: %w", section, err)
	}
	var gotArr [4]byte
	copy(gotArr[:], got)
	if gotArr != want {
		return fmt.Errorf("%w: %s end marker mismatch: got %q, want %q", ErrStructural, section, got, want[:])
	}
	return nil
}

func readU32At(header Header, b []byte) (uint32, error) {
	if len(b) != 4 {
		return 0, fmt.Errorf("ghw: readU32At wants 4 bytes, got %d", len(b))
	}
	var v uint32
	if header.BigEndian {
		for _, c := range b {
			v = v<<8 | uint32(c)
		}
	} else {
		for i := 3; i >= 0; i-- {
			v = v<<8 | uint32(b[i])
		}
	}
	return v, nil
}

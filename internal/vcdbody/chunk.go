package vcdbody

import (
	"fmt"
	"runtime"
	"sync"
)

// minChunkSize is the minimum number of bytes assigned to a single
// worker; chunking never produces more workers than would leave each one
// with less than this much input.
const minChunkSize = 8 * 1024

// Encoder is the minimal sink the body parser drives per chunk. Defined
// locally so this package never imports the root package; any
// wave.Encoder value satisfies this structurally.
type Encoder interface {
	TimeChange(t uint64)
	VCDValueChange(id uint64, value []byte)
}

// Progress receives byte-count increments as parsing advances, so a
// caller can report load progress without this package depending on the
// root package's Progress type.
type Progress interface {
	Add(delta uint64)
}

// Resolver maps a raw VCD identifier to its dense signal index. It
// returns false only for malformed identifiers.
type Resolver func(id []byte) (uint64, bool)

// ChunkBounds is one worker's assigned byte range within a body.
type ChunkBounds struct {
	Start, Len int
}

// divCeil computes ceil(a/b) for non-negative a and positive b.
func divCeil(a, b int) int {
	return (a + b - 1) / b
}

// PlanChunks decides how many workers to use and what byte range each
// gets, given the body's total length. The worker count is the smaller
// of the host's CPU count and the number of minChunkSize-sized pieces
// the body divides into, so a small file never starts more goroutines
// than it has work to give them.
func PlanChunks(bodyLen int) []ChunkBounds {
	if bodyLen <= 0 {
		return nil
	}
	maxWorkers := runtime.NumCPU()
	byMinSize := divCeil(bodyLen, minChunkSize)
	numWorkers := maxWorkers
	if byMinSize < numWorkers {
		numWorkers = byMinSize
	}
	if numWorkers < 1 {
		numWorkers = 1
	}
	chunkSize := divCeil(bodyLen, numWorkers)
	bounds := make([]ChunkBounds, 0, numWorkers)
	for i := 0; i < numWorkers; i++ {
		bounds = append(bounds, ChunkBounds{Start: i * chunkSize, Len: chunkSize})
	}
	return bounds
}

// advanceToFirstNewline returns the suffix of input starting at (and
// including) its first newline, plus that newline's offset. A chunk that
// doesn't start exactly on a source line boundary resyncs this way before
// tokenizing, so a worker never misinterprets the tail of the previous
// worker's last value change as its own first token.
func advanceToFirstNewline(input []byte) ([]byte, int) {
	for i, b := range input {
		if b == '\n' {
			return input[i:], i
		}
	}
	return nil, 0
}

// ParseChunk tokenizes one worker's byte range of a VCD body into enc,
// resolving identifiers through resolve. stopPos is the last valid byte
// offset, relative to the start of chunk, this worker owns; a time
// command observed beyond it ends the chunk before
// the command is applied, since ownership of the timestep it introduces
// belongs to the next worker. isFirst marks the chunk containing byte 0
// of the body, which may start applying values before any #<time> is
// seen (a bodyless "$dumpvars" block dumping initial values implies time
// zero). startsOnNewLine marks a chunk whose Start byte is either 0 or
// immediately follows a '\n' in the full body; any other chunk must
// resync to its first newline before tokenizing.
func ParseChunk(chunk []byte, stopPos int, isFirst, startsOnNewLine bool, resolve Resolver, enc Encoder, progress Progress) error {
	input := chunk
	offset := 0
	if !startsOnNewLine {
		input, offset = advanceToFirstNewline(chunk)
	}
	r := NewReader(input)
	foundFirstTimeStep := false
	var lastReported int
	reportIncrement := len(input) / 1000
	if reportIncrement < 512 {
		reportIncrement = 512
	}

	for {
		cmd, ok, err := r.Next()
		if err != nil {
			return fmt.Errorf("vcdbody: %w", err)
		}
		if !ok {
			if progress != nil {
				progress.Add(uint64(r.Pos() - lastReported))
			}
			return nil
		}
		pos := r.LastPos()
		if pos+offset > stopPos {
			if cmd.Kind == CmdTime {
				if progress != nil {
					progress.Add(uint64(pos - lastReported))
				}
				return nil
			}
		}
		if progress != nil {
			increment := pos - lastReported
			if increment >= reportIncrement {
				lastReported = pos
				progress.Add(uint64(increment))
			}
		}

		switch cmd.Kind {
		case CmdTime:
			t, err := parseDecimalU64(cmd.Value)
			if err != nil {
				return fmt.Errorf("vcdbody: bad time value %q: %w", cmd.Value, err)
			}
			foundFirstTimeStep = true
			enc.TimeChange(t)
		case CmdValue:
			if isFirst && !foundFirstTimeStep {
				enc.TimeChange(0)
				foundFirstTimeStep = true
			}
			if foundFirstTimeStep {
				id, ok := resolve(cmd.ID)
				if !ok {
					return fmt.Errorf("vcdbody: unresolvable identifier %q", cmd.ID)
				}
				enc.VCDValueChange(id, cmd.Value)
			}
		}
	}
}

func parseDecimalU64(b []byte) (uint64, error) {
	if len(b) == 0 {
		return 0, fmt.Errorf("empty integer")
	}
	var v uint64
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("non-digit byte %q", c)
		}
		v = v*10 + uint64(c-'0')
	}
	return v, nil
}

// ParseParallel splits body into chunks per PlanChunks and parses each on
// its own goroutine, each writing into its own Encoder built by
// newEncoder. Results are returned in source order so the caller can
// Append them in sequence; ParseParallel itself never merges encoders,
// since Encoder.Append belongs entirely to the external collaborator.
func ParseParallel(body []byte, newEncoder func() Encoder, resolve Resolver, progress Progress) ([]Encoder, error) {
	bounds := PlanChunks(len(body))
	if len(bounds) == 0 {
		return nil, nil
	}
	if len(bounds) == 1 {
		enc := newEncoder()
		if err := ParseChunk(body, len(body)-1, true, true, resolve, enc, progress); err != nil {
			return nil, err
		}
		return []Encoder{enc}, nil
	}

	results := make([]Encoder, len(bounds))
	errs := make([]error, len(bounds))
	var wg sync.WaitGroup
	for i, b := range bounds {
		wg.Add(1)
		go func(i int, b ChunkBounds) {
			defer wg.Done()
			isFirst := b.Start == 0
			startsOnNewLine := isFirst
			if !isFirst {
				startsOnNewLine = body[b.Start-1] == '\n'
			}
			enc := newEncoder()
			results[i] = enc
			errs[i] = ParseChunk(body[b.Start:], b.Len-1, isFirst, startsOnNewLine, resolve, enc, progress)
		}(i, b)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

package wave

import "errors"

// Sentinel error kinds following spec.md §7's error-kind taxonomy. The
// errors ReadVCD and ReadGHW return come from the internal decoders and do
// not wrap these values, so errors.Is against them does not match a
// decoder failure.
var (
	// ErrParse covers length/format parse failures: an ill-formed integer
	// where a decimal value was expected.
	ErrParse = errors.New("wave: parse failure")

	// ErrUnknownKeyword covers VCD scope/var type enum misses and GHW
	// section-tag misses.
	ErrUnknownKeyword = errors.New("wave: unknown keyword")

	// ErrUnsupportedAttribute covers a recognized attrbegin source with an
	// unrecognized opcode.
	ErrUnsupportedAttribute = errors.New("wave: unsupported attribute")

	// ErrTokenCount covers a command body with fewer tokens than required.
	ErrTokenCount = errors.New("wave: wrong number of tokens")

	// ErrStructural covers GHW structural violations: non-zero header
	// padding, end-marker mismatches, a zero first cycle-update delta.
	ErrStructural = errors.New("wave: structural violation")

	// ErrEncoding covers non-UTF-8 bytes where a UTF-8 string is required.
	ErrEncoding = errors.New("wave: invalid encoding")
)

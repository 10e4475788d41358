// Package varname splits a raw VCD $var name into the variable's own name,
// an optional bit index or bit range, and any extra hierarchy scopes
// implied by a multidimensional array declaration.
package varname

import (
	"fmt"
	"strconv"

	"github.com/deepteams/tracecore/internal/wavetypes"
)

// Parse splits name into:
//  1. the variable's own name
//  2. its bit index or bit range, if any
//  3. any extra scopes a multidimensional array declaration generates,
//     outermost first
//
// A name ending in "]" is assumed to carry a bit index or range in that
// final bracket pair; anything beyond a single bracket pair at the end
// (e.g. "mem[3][2][0]") is treated as nested array indexing, and each
// earlier bracket group becomes its own intermediate scope so the
// hierarchy reads mem -> [3] -> [2] -> 0, matching how GTKWave displays
// unpacked array dimensions.
func Parse(name []byte) (varName string, index *wavetypes.VarIndex, scopes []string, err error) {
	if len(name) == 0 {
		return "", nil, nil, nil
	}

	rest := name
	var idx *wavetypes.VarIndex
	if rest[len(rest)-1] == ']' {
		start := findLastByte(rest, '[')
		if start < 0 {
			return "", nil, nil, fmt.Errorf("varname: unbalanced brackets in %q", name)
		}
		inner := rest[start+1 : len(rest)-1]
		idx, err = parseInnerIndex(inner)
		if err != nil {
			return "", nil, nil, err
		}
		rest = trimRightSpace(rest[:start])
	}

	var indices []string
	for len(rest) > 0 && rest[len(rest)-1] == ']' {
		start := findLastByte(rest, '[')
		if start < 0 {
			return "", nil, nil, fmt.Errorf("varname: unbalanced brackets in %q", name)
		}
		indices = append(indices, string(rest[start:]))
		rest = trimRightSpace(rest[:start])
	}

	if len(indices) == 0 {
		return string(rest), idx, nil, nil
	}

	scopes = make([]string, 0, len(indices))
	scopes = append(scopes, string(rest))
	for len(indices) > 1 {
		scopes = append(scopes, indices[len(indices)-1])
		indices = indices[:len(indices)-1]
	}
	finalName := indices[len(indices)-1]
	return finalName, idx, scopes, nil
}

func trimRightSpace(b []byte) []byte {
	for len(b) > 0 && b[len(b)-1] == ' ' {
		b = b[:len(b)-1]
	}
	return b
}

func findLastByte(haystack []byte, needle byte) int {
	for i := len(haystack) - 1; i >= 0; i-- {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}

func parseInnerIndex(inner []byte) (*wavetypes.VarIndex, error) {
	sep := -1
	for i, b := range inner {
		if b == ':' {
			sep = i
			break
		}
	}
	if sep < 0 {
		bit, err := strconv.ParseInt(string(inner), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("varname: bad bit index %q: %w", inner, err)
		}
		return &wavetypes.VarIndex{Msb: int32(bit), Lsb: int32(bit)}, nil
	}
	msb, err := strconv.ParseInt(string(inner[:sep]), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("varname: bad msb in %q: %w", inner, err)
	}
	lsb, err := strconv.ParseInt(string(inner[sep+1:]), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("varname: bad lsb in %q: %w", inner, err)
	}
	return &wavetypes.VarIndex{Msb: int32(msb), Lsb: int32(lsb)}, nil
}

package vcdscan

import (
	"fmt"
	"strconv"

	"github.com/deepteams/tracecore/internal/wavetypes"
)

// fstSupVarDataTypeBits/Mask match the packed layout GTKWave's fstapi uses
// for a VHDL var/data type pair: the var type occupies the high bits, the
// data type the low 10 bits, of a single decimal-encoded u64.
const (
	fstSupVarDataTypeBits = 10
	fstSupVarDataTypeMask = (1 << fstSupVarDataTypeBits) - 1
)

// attribute is one parsed "$attrbegin ... $end" command, queued until the
// $scope or $var it describes is seen.
type attribute struct {
	kind       attrKind
	typeName   string
	varType    wavetypes.VhdlVarType
	dataType   wavetypes.VhdlDataType
	pathID     uint64
	pathRef    wavetypes.StringRef
	line       uint64
	isInstance bool
}

type attrKind int

const (
	attrVhdlTypeInfo attrKind = iota
	attrPathName
	attrSourceLoc
)

// parseAttribute decodes one "misc" attrbegin command's token list
// (tokens[0] == "misc") into an attribute, per opcodes 02 (VHDL type info),
// 03 (path name table entry), and 04 (source location). Opcode 03 entries
// are resolved immediately against pathNames and never queued; the other
// two are returned for the header scanner to queue until the next $scope
// or $var.
func parseAttribute(tokens [][]byte, pathNames map[uint64]wavetypes.StringRef, addString func(string) wavetypes.StringRef) (*attribute, error) {
	if len(tokens) < 2 {
		return nil, fmt.Errorf("vcdscan: attribute command has too few tokens")
	}
	switch string(tokens[1]) {
	case "02":
		if len(tokens) != 4 {
			return nil, fmt.Errorf("vcdscan: vhdl type info attribute wants 4 tokens, got %d", len(tokens))
		}
		typeName := string(tokens[2])
		arg, err := strconv.ParseUint(string(tokens[3]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("vcdscan: bad vhdl type info arg: %w", err)
		}
		varType := wavetypes.VhdlVarType(arg >> fstSupVarDataTypeBits)
		dataType := wavetypes.VhdlDataType(arg & fstSupVarDataTypeMask)
		if arg>>fstSupVarDataTypeBits > uint64(wavetypes.VhdlVarMax) {
			return nil, fmt.Errorf("vcdscan: unknown vhdl var type %d", arg>>fstSupVarDataTypeBits)
		}
		if dataType > wavetypes.VhdlDataMax {
			return nil, fmt.Errorf("vcdscan: unknown vhdl data type %d", dataType)
		}
		return &attribute{kind: attrVhdlTypeInfo, typeName: typeName, varType: varType, dataType: dataType}, nil
	case "03":
		if len(tokens) != 4 {
			return nil, fmt.Errorf("vcdscan: path name attribute wants 4 tokens, got %d", len(tokens))
		}
		path := string(tokens[2])
		id, err := strconv.ParseUint(string(tokens[3]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("vcdscan: bad path name id: %w", err)
		}
		pathNames[id] = addString(path)
		return nil, nil
	case "04":
		// The spec's source implementation left open whether GTKWave emits a
		// 5th "is instance" token here; we only ever see 4 in practice and
		// hard-code isInstance to false.
		if len(tokens) != 4 {
			return nil, fmt.Errorf("vcdscan: source loc attribute wants 4 tokens, got %d", len(tokens))
		}
		pathID, err := strconv.ParseUint(string(tokens[2]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("vcdscan: bad source loc path id: %w", err)
		}
		line, err := strconv.ParseUint(string(tokens[3]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("vcdscan: bad source loc line: %w", err)
		}
		ref, ok := pathNames[pathID]
		if !ok {
			return nil, fmt.Errorf("vcdscan: source loc references unknown path id %d", pathID)
		}
		return &attribute{kind: attrSourceLoc, pathID: pathID, pathRef: ref, line: line, isInstance: false}, nil
	default:
		return nil, fmt.Errorf("vcdscan: unsupported attribute opcode %q", tokens[1])
	}
}

// takeSourceLocs pulls up to two queued SourceLoc attributes off the front
// of attrs (a declaration source followed optionally by an instance
// source) and returns the remaining, non-SourceLoc attributes unchanged.
// Matches the declaration_source/instance_source pair a $scope consumes.
func takeSourceLocs(attrs []attribute) (decl, inst wavetypes.SourceLoc, rest []attribute) {
	rest = attrs[:0]
	taken := 0
	for _, a := range attrs {
		if a.kind == attrSourceLoc && taken < 2 {
			loc := wavetypes.SourceLoc{Path: a.pathRef, Line: a.line, Valid: true}
			if taken == 0 {
				decl = loc
			} else {
				inst = loc
			}
			taken++
			continue
		}
		rest = append(rest, a)
	}
	return decl, inst, rest
}

// takeVhdlTypeInfo pulls the first queued VhdlTypeInfo attribute, if any,
// returning it and the remaining attributes.
func takeVhdlTypeInfo(attrs []attribute) (info *attribute, rest []attribute) {
	rest = attrs[:0]
	for i := range attrs {
		if info == nil && attrs[i].kind == attrVhdlTypeInfo {
			a := attrs[i]
			info = &a
			continue
		}
		rest = append(rest, attrs[i])
	}
	return info, rest
}

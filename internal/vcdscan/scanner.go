// Package vcdscan implements the VCD header scanner: it walks the
// dollar-prefixed command stream up to $enddefinitions, drives a Hierarchy
// builder in declaration order, and decides whether the rest of the file
// addresses signals by direct array index or through a hash map.
package vcdscan

import (
	"fmt"
	"strconv"

	"github.com/deepteams/tracecore/internal/ident"
	"github.com/deepteams/tracecore/internal/pool"
	"github.com/deepteams/tracecore/internal/tok"
	"github.com/deepteams/tracecore/internal/varname"
	"github.com/deepteams/tracecore/internal/wavetypes"
)

// Hierarchy is the subset of the root package's Hierarchy contract the
// scanner drives. Defined locally (rather than imported) so this package
// never depends on the root package; any wave.Hierarchy implementation
// satisfies this interface structurally.
type Hierarchy interface {
	AddString(s string) wavetypes.StringRef
	AddScope(name wavetypes.StringRef, component *wavetypes.StringRef, tpe wavetypes.ScopeType, declSource, instSource wavetypes.SourceLoc, flatten bool)
	PopScope()
	AddVar(name wavetypes.StringRef, varType wavetypes.VarType, direction wavetypes.VarDirection, length uint32, index *wavetypes.VarIndex, ref wavetypes.SignalRef, enumType *wavetypes.StringRef, typeName *wavetypes.StringRef)
	AddArrayScopes(names []string)
	PopScopes(n int)
	SetDate(date string)
	SetVersion(version string)
	SetTimescale(ts wavetypes.Timescale)
	AddComment(comment string)
	Finish()
}

// Options controls scanner behavior that callers configure per load.
type Options struct {
	// FlattenEmptyScopes causes a $scope with an empty name to be omitted
	// from the resulting hierarchy tree.
	FlattenEmptyScopes bool
}

// IDLookup is the fallback hash-map identifier table built when the first
// variable's identifier decodes to an index at or beyond
// ident.DirectModeThreshold. It is nil when the file stayed in direct mode.
type IDLookup struct {
	m map[string]wavetypes.SignalRef
}

// Lookup resolves a raw VCD identifier to its assigned SignalRef.
func (l *IDLookup) Lookup(id []byte) (wavetypes.SignalRef, bool) {
	ref, ok := l.m[string(id)]
	return ref, ok
}

// Result is everything the scanner produces.
type Result struct {
	// HeaderLen is the number of bytes the header occupied, i.e. the byte
	// offset just past $enddefinitions' $end and the single whitespace
	// byte that terminates it; the body begins here.
	HeaderLen int
	// Lookup is non-nil only when the file's identifiers required hash-map
	// mode; direct-mode files resolve identifiers with ident.ToInt alone.
	Lookup *IDLookup
}

// Scan reads the VCD header out of buf, driving h in declaration order,
// and returns where the header ended. buf must contain the full file (or
// at least the full header); scanning never looks past the
// $enddefinitions command.
func Scan(buf []byte, h Hierarchy, opts Options) (Result, error) {
	s := &scanState{r: tok.NewReader(buf), h: h, opts: opts, pathNames: map[uint64]wavetypes.StringRef{}, scratch: pool.Get(256)[:0]}
	defer func() { pool.Put(s.scratch) }()
	for {
		done, err := s.step()
		if err != nil {
			return Result{}, err
		}
		if done {
			break
		}
	}
	res := Result{HeaderLen: s.r.Pos()}
	if s.useIDMap {
		res.Lookup = &IDLookup{m: s.idMap}
	}
	return res, nil
}

type scanState struct {
	r    *tok.Reader
	h    Hierarchy
	opts Options

	// scratch is a pooled append buffer reused across every ReadToken/
	// ReadUntilEndToken call this scan makes, so reading a command's name
	// and body needs no fresh buffer; step still copies each command body
	// into its own slice before dispatching it.
	scratch []byte

	attrs     []attribute
	pathNames map[uint64]wavetypes.StringRef

	varCount uint64
	useIDMap bool
	idMap    map[string]wavetypes.SignalRef
}

// step reads and dispatches exactly one "$cmd ... $end" command, returning
// done=true once $enddefinitions has been consumed.
func (s *scanState) step() (done bool, err error) {
	start, err := s.r.SkipWhitespace()
	if err != nil {
		return false, fmt.Errorf("vcdscan: %w", err)
	}
	if start != '$' {
		return false, fmt.Errorf("vcdscan: expected command to start with '$', got %q", start)
	}
	name, err := s.r.ReadToken(s.scratch[:0])
	if err != nil {
		return false, fmt.Errorf("vcdscan: reading command name: %w", err)
	}
	s.scratch = name
	cmdName := string(name)

	if cmdName == "enddefinitions" {
		body, err := s.r.ReadUntilEndToken(s.scratch[:0])
		if err != nil {
			return false, fmt.Errorf("vcdscan: reading enddefinitions body: %w", err)
		}
		s.scratch = body
		return true, nil
	}

	body, err := s.r.ReadUntilEndToken(s.scratch[:0])
	if err != nil {
		return false, fmt.Errorf("vcdscan: reading %q body: %w", cmdName, err)
	}
	s.scratch = body
	// body aliases the reader's scratch; make an owned copy since we may
	// tokenize and retain sub-slices of it past the next read.
	owned := make([]byte, len(body))
	copy(owned, body)

	switch cmdName {
	case "date":
		s.h.SetDate(string(owned))
	case "version":
		s.h.SetVersion(string(owned))
	case "comment":
		s.h.AddComment(string(owned))
	case "timescale":
		ts, err := parseTimescale(owned)
		if err != nil {
			return false, err
		}
		s.h.SetTimescale(ts)
	case "scope":
		if err := s.handleScope(owned); err != nil {
			return false, err
		}
	case "upscope":
		s.h.PopScope()
	case "var":
		if err := s.handleVar(owned); err != nil {
			return false, err
		}
	case "attrbegin":
		if err := s.handleAttrBegin(owned); err != nil {
			return false, err
		}
	default:
		return false, fmt.Errorf("vcdscan: unknown header command %q", cmdName)
	}
	return false, nil
}

func joinTokens(tokens [][]byte) []byte {
	if len(tokens) == 0 {
		return nil
	}
	n := len(tokens) - 1
	for _, t := range tokens {
		n += len(t)
	}
	out := make([]byte, 0, n)
	for i, t := range tokens {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, t...)
	}
	return out
}

func findTokens(line []byte) [][]byte {
	var tokens [][]byte
	start := -1
	for i, b := range line {
		if b == ' ' {
			if start >= 0 {
				tokens = append(tokens, line[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, line[start:])
	}
	return tokens
}

func (s *scanState) handleAttrBegin(body []byte) error {
	tokens := findTokens(body)
	if len(tokens) < 3 {
		return fmt.Errorf("vcdscan: attrbegin wants at least 3 tokens, got %d", len(tokens))
	}
	if string(tokens[0]) != "misc" {
		return fmt.Errorf("vcdscan: unsupported attrbegin kind %q", tokens[0])
	}
	attr, err := parseAttribute(tokens, s.pathNames, s.h.AddString)
	if err != nil {
		return err
	}
	if attr != nil {
		s.attrs = append(s.attrs, *attr)
	}
	return nil
}

func (s *scanState) handleScope(body []byte) error {
	tokens := findTokens(body)
	tpeTok := tokens[0]
	var nameTok []byte
	if len(tokens) > 1 {
		nameTok = tokens[1]
	}
	tpe, err := convertScopeType(tpeTok)
	if err != nil {
		return err
	}
	decl, inst, rest := takeSourceLocs(s.attrs)
	s.attrs = rest
	flatten := s.opts.FlattenEmptyScopes && len(nameTok) == 0
	name := s.h.AddString(string(nameTok))
	s.h.AddScope(name, nil, tpe, decl, inst, flatten)
	return nil
}

func (s *scanState) handleVar(body []byte) error {
	tokens := findTokens(body)
	if len(tokens) < 4 {
		return fmt.Errorf("vcdscan: var wants at least 4 tokens, got %d", len(tokens))
	}
	tpeTok, sizeTok, idTok := tokens[0], tokens[1], tokens[2]
	// the variable name may itself be split across multiple
	// whitespace-separated tokens (e.g. "counter [3:0]"); rejoin them with
	// a single space, matching the original single-space-delimited layout.
	name := joinTokens(tokens[3:])

	length, err := strconv.ParseUint(string(sizeTok), 10, 32)
	if err != nil {
		return fmt.Errorf("vcdscan: bad var length %q for %q: %w", sizeTok, name, err)
	}
	varType, err := convertVarType(tpeTok)
	if err != nil {
		return err
	}
	varName, index, scopes, err := varname.Parse(name)
	if err != nil {
		return err
	}

	info, rest := takeVhdlTypeInfo(s.attrs)
	s.attrs = rest
	var typeNameRef *wavetypes.StringRef
	var enumTypeRef *wavetypes.StringRef
	if info != nil {
		tn := s.h.AddString(info.typeName)
		typeNameRef = &tn
		if info.dataType == wavetypes.VhdlDataStdULogic || info.dataType == wavetypes.VhdlDataStdULogicVector ||
			info.dataType == wavetypes.VhdlDataStdLogic || info.dataType == wavetypes.VhdlDataStdLogicVector {
			enumTypeRef = &tn
		}
	}

	nameRef := s.h.AddString(varName)
	numScopes := len(scopes)
	s.h.AddArrayScopes(scopes)

	ref := s.resolveSignalRef(idTok)
	s.h.AddVar(nameRef, varType, wavetypes.VarDirectionImplicit, uint32(length), index, ref, enumTypeRef, typeNameRef)
	s.h.PopScopes(numScopes)
	s.varCount++
	return nil
}

// resolveSignalRef implements the direct-vs-hash-map decision: it is made
// exactly once, when the first variable is seen, and applies to every
// identifier for the rest of the file.
func (s *scanState) resolveSignalRef(id []byte) wavetypes.SignalRef {
	if s.varCount == 0 {
		if idx, err := ident.ToInt(id); err == nil && ident.UseDirectMode(idx) {
			ref, _ := wavetypes.SignalRefFromIndex(int(idx))
			return ref
		}
		s.useIDMap = true
		s.idMap = map[string]wavetypes.SignalRef{}
	}

	if s.useIDMap {
		key := string(id)
		if ref, ok := s.idMap[key]; ok {
			return ref
		}
		ref, _ := wavetypes.SignalRefFromIndex(len(s.idMap) + 1)
		s.idMap[key] = ref
		return ref
	}

	idx, _ := ident.ToInt(id)
	ref, _ := wavetypes.SignalRefFromIndex(int(idx))
	return ref
}

func parseTimescale(body []byte) (wavetypes.Timescale, error) {
	tokens := findTokens(body)
	var factorTok, unitTok []byte
	switch len(tokens) {
	case 1:
		tok := tokens[0]
		pos := -1
		for i, b := range tok {
			if b < '0' || b > '9' {
				pos = i
				break
			}
		}
		if pos < 0 {
			factorTok, unitTok = tok, nil
		} else {
			factorTok, unitTok = tok[:pos], tok[pos:]
		}
	case 2:
		factorTok, unitTok = tokens[0], tokens[1]
	default:
		return wavetypes.Timescale{}, fmt.Errorf("vcdscan: timescale wants 1 or 2 tokens, got %d", len(tokens))
	}
	factor, err := strconv.ParseUint(string(factorTok), 10, 32)
	if err != nil {
		return wavetypes.Timescale{}, fmt.Errorf("vcdscan: bad timescale factor %q: %w", factorTok, err)
	}
	return wavetypes.Timescale{Factor: uint32(factor), Unit: convertTimescaleUnit(unitTok)}, nil
}

func convertTimescaleUnit(name []byte) wavetypes.TimescaleUnit {
	switch string(name) {
	case "fs":
		return wavetypes.FemtoSeconds
	case "ps":
		return wavetypes.PicoSeconds
	case "ns":
		return wavetypes.NanoSeconds
	case "us":
		return wavetypes.MicroSeconds
	case "ms":
		return wavetypes.MilliSeconds
	case "s":
		return wavetypes.Seconds
	default:
		return wavetypes.TimescaleUnknown
	}
}

func convertScopeType(tpe []byte) (wavetypes.ScopeType, error) {
	switch string(tpe) {
	case "module":
		return wavetypes.ScopeModule, nil
	case "task":
		return wavetypes.ScopeTask, nil
	case "function":
		return wavetypes.ScopeFunction, nil
	case "begin":
		return wavetypes.ScopeBegin, nil
	case "fork":
		return wavetypes.ScopeFork, nil
	case "generate":
		return wavetypes.ScopeGenerate, nil
	case "struct":
		return wavetypes.ScopeStruct, nil
	case "union":
		return wavetypes.ScopeUnion, nil
	case "class":
		return wavetypes.ScopeClass, nil
	case "interface":
		return wavetypes.ScopeInterface, nil
	case "package":
		return wavetypes.ScopePackage, nil
	case "program":
		return wavetypes.ScopeProgram, nil
	case "vhdl_architecture":
		return wavetypes.ScopeVhdlArchitecture, nil
	case "vhdl_procedure":
		return wavetypes.ScopeVhdlProcedure, nil
	case "vhdl_function":
		return wavetypes.ScopeVhdlFunction, nil
	case "vhdl_record":
		return wavetypes.ScopeVhdlRecord, nil
	case "vhdl_process":
		return wavetypes.ScopeVhdlProcess, nil
	case "vhdl_block":
		return wavetypes.ScopeVhdlBlock, nil
	case "vhdl_for_generate":
		return wavetypes.ScopeVhdlForGenerate, nil
	case "vhdl_if_generate":
		return wavetypes.ScopeVhdlIfGenerate, nil
	case "vhdl_generate":
		return wavetypes.ScopeVhdlGenerate, nil
	case "vhdl_package":
		return wavetypes.ScopeVhdlPackage, nil
	default:
		return 0, fmt.Errorf("vcdscan: unknown scope type %q", tpe)
	}
}

func convertVarType(tpe []byte) (wavetypes.VarType, error) {
	switch string(tpe) {
	case "wire":
		return wavetypes.VarWire, nil
	case "reg":
		return wavetypes.VarReg, nil
	case "parameter", "real_parameter":
		return wavetypes.VarParameter, nil
	case "integer":
		return wavetypes.VarInteger, nil
	case "string":
		return wavetypes.VarString, nil
	case "event":
		return wavetypes.VarEvent, nil
	case "real":
		return wavetypes.VarReal, nil
	case "supply0":
		return wavetypes.VarSupply0, nil
	case "supply1":
		return wavetypes.VarSupply1, nil
	case "time":
		return wavetypes.VarTime, nil
	case "tri":
		return wavetypes.VarTri, nil
	case "triand":
		return wavetypes.VarTriAnd, nil
	case "trior":
		return wavetypes.VarTriOr, nil
	case "trireg":
		return wavetypes.VarTriReg, nil
	case "tri0":
		return wavetypes.VarTri0, nil
	case "tri1":
		return wavetypes.VarTri1, nil
	case "wand":
		return wavetypes.VarWAnd, nil
	case "wor":
		return wavetypes.VarWOr, nil
	case "logic":
		return wavetypes.VarLogic, nil
	case "port":
		return wavetypes.VarPort, nil
	case "sparray":
		return wavetypes.VarSparseArray, nil
	case "realtime":
		return wavetypes.VarRealTime, nil
	case "bit":
		return wavetypes.VarBit, nil
	case "int":
		return wavetypes.VarInt, nil
	case "shortint":
		return wavetypes.VarShortInt, nil
	case "longint":
		return wavetypes.VarLongInt, nil
	case "byte":
		return wavetypes.VarByte, nil
	case "enum":
		return wavetypes.VarEnum, nil
	case "shortreal":
		return wavetypes.VarShortReal, nil
	default:
		return 0, fmt.Errorf("vcdscan: unknown var type %q", tpe)
	}
}

// Package wavetypes holds the value types shared between the root package
// and the internal decoders. It exists only to break the import cycle that
// would otherwise result from internal/vcdscan, internal/varname, and
// internal/ghw needing the same enums and structs the root package exposes
// to callers; the root package re-exports everything here under its own
// names so API consumers never see this package.
package wavetypes

import "fmt"

// SignalRef is a dense, non-zero handle identifying one signal slot in the
// hierarchy. Two variables may share a SignalRef (aliasing); scratch space
// for value-change decoding is assigned only once per distinct SignalRef.
type SignalRef uint32

// Index returns the zero-based slot index of the reference.
func (r SignalRef) Index() int { return int(r) - 1 }

// SignalRefFromIndex builds a SignalRef from a zero-based slot index.
func SignalRefFromIndex(index int) (SignalRef, error) {
	if index < 0 {
		return 0, fmt.Errorf("wave: negative signal index %d", index)
	}
	return SignalRef(index + 1), nil
}

// StringRef is an interned-string handle returned by Hierarchy.AddString.
type StringRef uint32

// StateCount is the number of distinct logic states a raw value change can
// take, per the GHW signal type table.
type StateCount int

const (
	TwoState  StateCount = 2
	NineState StateCount = 9
)

// Bits is the number of bits a single slot needs: 1 for a two-state
// logic value, 4 for a nine-state one (nine distinct values need a
// nibble, not a single bit).
func (s StateCount) Bits() uint {
	if s == NineState {
		return 4
	}
	return 1
}

// BitsInAByte is how many slots of this width pack into one byte:
// 8/Bits(), i.e. 8 two-state slots or 2 nine-state slots per byte.
func (s StateCount) BitsInAByte() uint {
	return 8 / s.Bits()
}

// Mask isolates one slot's value once it has been shifted down to bit 0.
func (s StateCount) Mask() byte {
	return byte(1<<s.Bits()) - 1
}

// VarIndex is a parsed VCD bit-index or bit-range, e.g. the "[3:0]" in
// "counter[3:0]".
type VarIndex struct {
	Msb, Lsb int32
}

// ScopeType is the closed set of VCD $scope types, including GTKWave's
// VHDL extensions.
type ScopeType int

const (
	ScopeModule ScopeType = iota
	ScopeTask
	ScopeFunction
	ScopeBegin
	ScopeFork
	ScopeGenerate
	ScopeStruct
	ScopeUnion
	ScopeClass
	ScopeInterface
	ScopePackage
	ScopeProgram
	ScopeVhdlArchitecture
	ScopeVhdlProcedure
	ScopeVhdlFunction
	ScopeVhdlRecord
	ScopeVhdlProcess
	ScopeVhdlBlock
	ScopeVhdlForGenerate
	ScopeVhdlIfGenerate
	ScopeVhdlGenerate
	ScopeVhdlPackage
)

// VarType is the closed set of VCD $var types.
type VarType int

const (
	VarWire VarType = iota
	VarReg
	VarParameter
	VarInteger
	VarString
	VarEvent
	VarReal
	VarSupply0
	VarSupply1
	VarTime
	VarTri
	VarTriAnd
	VarTriOr
	VarTriReg
	VarTri0
	VarTri1
	VarWAnd
	VarWOr
	VarLogic
	VarPort
	VarSparseArray
	VarRealTime
	VarBit
	VarInt
	VarShortInt
	VarLongInt
	VarByte
	VarEnum
	VarShortReal
)

// VarDirection is the port direction of a variable. VCD never declares
// direction explicitly, so every VCD variable gets VarDirectionImplicit.
type VarDirection int

const (
	VarDirectionImplicit VarDirection = iota
	VarDirectionInput
	VarDirectionOutput
	VarDirectionInOut
	VarDirectionBuffer
	VarDirectionLinkage
)

// TimescaleUnit is the unit half of a VCD $timescale command.
type TimescaleUnit int

const (
	TimescaleUnknown TimescaleUnit = iota
	FemtoSeconds
	PicoSeconds
	NanoSeconds
	MicroSeconds
	MilliSeconds
	Seconds
)

// Timescale is a parsed VCD $timescale command.
type Timescale struct {
	Factor uint32
	Unit   TimescaleUnit
}

// VhdlVarType is the closed enumeration validated against attrbegin opcode
// "02" (the high bits of the packed u64).
type VhdlVarType int

const (
	VhdlVarUnknown VhdlVarType = iota
	VhdlVarSignal
	VhdlVarVariable
	VhdlVarConstant
	VhdlVarFile
	VhdlVarMax
)

// VhdlDataType is the closed enumeration validated against attrbegin opcode
// "02" (the low 10 bits of the packed u64).
type VhdlDataType int

const (
	VhdlDataUnknown VhdlDataType = iota
	VhdlDataBoolean
	VhdlDataBit
	VhdlDataBitVector
	VhdlDataStdLogic
	VhdlDataStdLogicVector
	VhdlDataStdULogic
	VhdlDataStdULogicVector
	VhdlDataInteger
	VhdlDataReal
	VhdlDataNatural
	VhdlDataPositive
	VhdlDataTime
	VhdlDataCharacter
	VhdlDataString
	VhdlDataArray
	VhdlDataRecord
	VhdlDataMax
)

// SourceLoc is a resolved attrbegin opcode "04" source-location attribute:
// the interned path string and a line number. Valid reports whether such
// an attribute was present. Whether the location names an instance or a
// declaration is not recorded here; the scanner passes it as the
// instSource or declSource argument of AddScope instead.
type SourceLoc struct {
	Path  StringRef
	Line  uint64
	Valid bool
}

package wave

import "github.com/deepteams/tracecore/internal/wavetypes"

// These types are defined in internal/wavetypes so the internal decoder
// packages (which must reference them) don't import this package back; the
// aliases below are the only copies API consumers should ever name.

type (
	SignalRef     = wavetypes.SignalRef
	StringRef     = wavetypes.StringRef
	StateCount    = wavetypes.StateCount
	VarIndex      = wavetypes.VarIndex
	ScopeType     = wavetypes.ScopeType
	VarType       = wavetypes.VarType
	VarDirection  = wavetypes.VarDirection
	TimescaleUnit = wavetypes.TimescaleUnit
	Timescale     = wavetypes.Timescale
	VhdlVarType   = wavetypes.VhdlVarType
	VhdlDataType  = wavetypes.VhdlDataType
	SourceLoc     = wavetypes.SourceLoc
)

const (
	TwoState  = wavetypes.TwoState
	NineState = wavetypes.NineState
)

const (
	ScopeModule           = wavetypes.ScopeModule
	ScopeTask             = wavetypes.ScopeTask
	ScopeFunction         = wavetypes.ScopeFunction
	ScopeBegin            = wavetypes.ScopeBegin
	ScopeFork             = wavetypes.ScopeFork
	ScopeGenerate         = wavetypes.ScopeGenerate
	ScopeStruct           = wavetypes.ScopeStruct
	ScopeUnion            = wavetypes.ScopeUnion
	ScopeClass            = wavetypes.ScopeClass
	ScopeInterface        = wavetypes.ScopeInterface
	ScopePackage          = wavetypes.ScopePackage
	ScopeProgram          = wavetypes.ScopeProgram
	ScopeVhdlArchitecture = wavetypes.ScopeVhdlArchitecture
	ScopeVhdlProcedure    = wavetypes.ScopeVhdlProcedure
	ScopeVhdlFunction     = wavetypes.ScopeVhdlFunction
	ScopeVhdlRecord       = wavetypes.ScopeVhdlRecord
	ScopeVhdlProcess      = wavetypes.ScopeVhdlProcess
	ScopeVhdlBlock        = wavetypes.ScopeVhdlBlock
	ScopeVhdlForGenerate  = wavetypes.ScopeVhdlForGenerate
	ScopeVhdlIfGenerate   = wavetypes.ScopeVhdlIfGenerate
	ScopeVhdlGenerate     = wavetypes.ScopeVhdlGenerate
	ScopeVhdlPackage      = wavetypes.ScopeVhdlPackage
)

const (
	VarWire        = wavetypes.VarWire
	VarReg         = wavetypes.VarReg
	VarParameter   = wavetypes.VarParameter
	VarInteger     = wavetypes.VarInteger
	VarString      = wavetypes.VarString
	VarEvent       = wavetypes.VarEvent
	VarReal        = wavetypes.VarReal
	VarSupply0     = wavetypes.VarSupply0
	VarSupply1     = wavetypes.VarSupply1
	VarTime        = wavetypes.VarTime
	VarTri         = wavetypes.VarTri
	VarTriAnd      = wavetypes.VarTriAnd
	VarTriOr       = wavetypes.VarTriOr
	VarTriReg      = wavetypes.VarTriReg
	VarTri0        = wavetypes.VarTri0
	VarTri1        = wavetypes.VarTri1
	VarWAnd        = wavetypes.VarWAnd
	VarWOr         = wavetypes.VarWOr
	VarLogic       = wavetypes.VarLogic
	VarPort        = wavetypes.VarPort
	VarSparseArray = wavetypes.VarSparseArray
	VarRealTime    = wavetypes.VarRealTime
	VarBit         = wavetypes.VarBit
	VarInt         = wavetypes.VarInt
	VarShortInt    = wavetypes.VarShortInt
	VarLongInt     = wavetypes.VarLongInt
	VarByte        = wavetypes.VarByte
	VarEnum        = wavetypes.VarEnum
	VarShortReal   = wavetypes.VarShortReal
)

const (
	VarDirectionImplicit = wavetypes.VarDirectionImplicit
	VarDirectionInput    = wavetypes.VarDirectionInput
	VarDirectionOutput   = wavetypes.VarDirectionOutput
	VarDirectionInOut    = wavetypes.VarDirectionInOut
	VarDirectionBuffer   = wavetypes.VarDirectionBuffer
	VarDirectionLinkage  = wavetypes.VarDirectionLinkage
)

const (
	TimescaleUnknown = wavetypes.TimescaleUnknown
	FemtoSeconds     = wavetypes.FemtoSeconds
	PicoSeconds      = wavetypes.PicoSeconds
	NanoSeconds      = wavetypes.NanoSeconds
	MicroSeconds     = wavetypes.MicroSeconds
	MilliSeconds     = wavetypes.MilliSeconds
	Seconds          = wavetypes.Seconds
)

const (
	VhdlVarUnknown  = wavetypes.VhdlVarUnknown
	VhdlVarSignal   = wavetypes.VhdlVarSignal
	VhdlVarVariable = wavetypes.VhdlVarVariable
	VhdlVarConstant = wavetypes.VhdlVarConstant
	VhdlVarFile     = wavetypes.VhdlVarFile
	VhdlVarMax      = wavetypes.VhdlVarMax
)

const (
	VhdlDataUnknown        = wavetypes.VhdlDataUnknown
	VhdlDataBoolean        = wavetypes.VhdlDataBoolean
	VhdlDataBit            = wavetypes.VhdlDataBit
	VhdlDataBitVector      = wavetypes.VhdlDataBitVector
	VhdlDataStdLogic       = wavetypes.VhdlDataStdLogic
	VhdlDataStdLogicVector = wavetypes.VhdlDataStdLogicVector
	VhdlDataStdULogic      = wavetypes.VhdlDataStdULogic
	VhdlDataStdULogicVector = wavetypes.VhdlDataStdULogicVector
	VhdlDataInteger        = wavetypes.VhdlDataInteger
	VhdlDataReal           = wavetypes.VhdlDataReal
	VhdlDataNatural        = wavetypes.VhdlDataNatural
	VhdlDataPositive       = wavetypes.VhdlDataPositive
	VhdlDataTime           = wavetypes.VhdlDataTime
	VhdlDataCharacter      = wavetypes.VhdlDataCharacter
	VhdlDataString         = wavetypes.VhdlDataString
	VhdlDataArray          = wavetypes.VhdlDataArray
	VhdlDataRecord         = wavetypes.VhdlDataRecord
	VhdlDataMax            = wavetypes.VhdlDataMax
)

// SignalRefFromIndex builds a SignalRef from a zero-based slot index.
func SignalRefFromIndex(index int) (SignalRef, error) {
	return wavetypes.SignalRefFromIndex(index)
}

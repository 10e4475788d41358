// Package wave decodes VCD (Value Change Dump) and GHW (GHDL Waveform)
// simulation traces into a uniform stream of signal value changes.
//
// The package reads the wire formats only: the hierarchy (scopes and
// variables) and the compressed value-change store that downstream
// waveform viewers query are external collaborators, represented here by
// the Hierarchy and Encoder interfaces. Callers supply concrete
// implementations of both (see the waveref subpackage for a minimal,
// non-optimizing one used by this module's own tests and its CLI).
package wave

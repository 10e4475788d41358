package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/deepteams/tracecore"
	"github.com/deepteams/tracecore/waveref"
)

// signalDescriptor is the on-disk shape of the --signals JSON file: a
// stand-in for the GHW directory section, which this module's decoder
// does not parse (see the package doc comment on wave.ReadGHW and
// DESIGN.md). Each entry names one declared signal in file order.
type signalDescriptor struct {
	Kind      string `json:"kind"` // nine_state, two_state, nine_state_bit, two_state_bit, u8, leb128_signed, f64
	Bit       uint32 `json:"bit,omitempty"`
	Bits      uint32 `json:"bits,omitempty"`
	SignalRef uint32 `json:"signal_ref"`
}

func newGHWCmd() *cobra.Command {
	var signalsPath string
	var bigEndian bool
	var dump bool

	cmd := &cobra.Command{
		Use:   "ghw [file]",
		Short: "Decode a GHW trace's signal-value sections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if signalsPath == "" {
				return fmt.Errorf("wavedump ghw: --signals is required (this module decodes only the signal-value sections, not the directory section that would normally supply this list)")
			}
			return runGHW(args[0], signalsPath, bigEndian, dump)
		},
	}
	cmd.Flags().StringVar(&signalsPath, "signals", "", "JSON file describing the declared signal table (see DESIGN.md)")
	cmd.Flags().BoolVar(&bigEndian, "big-endian", false, "the file's integers are big-endian (per its own header)")
	cmd.Flags().BoolVar(&dump, "dump", false, "print every decoded value change, not just a summary")
	return cmd
}

func runGHW(path, signalsPath string, bigEndian, dump bool) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("wavedump: reading %s: %w", path, err)
	}
	descriptors, err := readSignalDescriptors(signalsPath)
	if err != nil {
		return err
	}

	signals, refCount, err := resolveSignals(descriptors)
	if err != nil {
		return err
	}

	enc := waveref.NewEncoder()
	src, err := wave.ReadGHW(buf, bigEndian, signals, refCount, enc)
	if err != nil {
		return fmt.Errorf("wavedump: decoding %s: %w", path, err)
	}
	store := src.(*waveref.Store)

	bold := color.New(color.Bold)
	bold.Printf("%s\n", path)
	fmt.Printf("  signals:        %d\n", len(signals))
	fmt.Printf("  value changes:  %d\n", len(store.Changes))

	if dump {
		dumpChanges(store)
	}
	return nil
}

func readSignalDescriptors(path string) ([]signalDescriptor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wavedump: reading %s: %w", path, err)
	}
	var descriptors []signalDescriptor
	if err := json.Unmarshal(raw, &descriptors); err != nil {
		return nil, fmt.Errorf("wavedump: parsing %s: %w", path, err)
	}
	return descriptors, nil
}

func resolveSignals(descriptors []signalDescriptor) ([]wave.GHWSignal, int, error) {
	signals := make([]wave.GHWSignal, 0, len(descriptors))
	maxRef := 0
	for i, d := range descriptors {
		kind, err := ghwKindFor(d.Kind)
		if err != nil {
			return nil, 0, fmt.Errorf("wavedump: signal %d: %w", i, err)
		}
		ref, err := wave.SignalRefFromIndex(int(d.SignalRef))
		if err != nil {
			return nil, 0, fmt.Errorf("wavedump: signal %d: %w", i, err)
		}
		signals = append(signals, wave.GHWSignal{
			Type:      wave.GHWSignalType{Kind: kind, Bit: d.Bit, Bits: d.Bits},
			SignalRef: ref,
		})
		if idx := ref.Index(); idx+1 > maxRef {
			maxRef = idx + 1
		}
	}
	return signals, maxRef, nil
}

func ghwKindFor(s string) (wave.GHWSignalKind, error) {
	switch s {
	case "nine_state":
		return wave.GHWKindNineState, nil
	case "two_state":
		return wave.GHWKindTwoState, nil
	case "nine_state_bit":
		return wave.GHWKindNineStateBit, nil
	case "two_state_bit":
		return wave.GHWKindTwoStateBit, nil
	case "u8":
		return wave.GHWKindU8, nil
	case "leb128_signed":
		return wave.GHWKindLeb128Signed, nil
	case "f64":
		return wave.GHWKindF64, nil
	default:
		return 0, fmt.Errorf("unknown signal kind %q", s)
	}
}

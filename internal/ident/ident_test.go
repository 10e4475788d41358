package ident

import (
	"errors"
	"testing"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		id   string
		want uint64
	}{
		{"!", 0},
		{"#", 2},
		{"*", 9},
		{"c", 66},
		{"#%", 472},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := ToInt([]byte(tt.id))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ToInt(%q) = %d, want %d", tt.id, got, tt.want)
			}
		})
	}
}

func TestToInt_InvalidByte(t *testing.T) {
	_, err := ToInt([]byte{0x00})
	if !errors.Is(err, ErrInvalidIdent) {
		t.Fatalf("expected ErrInvalidIdent, got %v", err)
	}
}

func TestToInt_Empty(t *testing.T) {
	_, err := ToInt(nil)
	if !errors.Is(err, ErrInvalidIdent) {
		t.Fatalf("expected ErrInvalidIdent, got %v", err)
	}
}

func TestUseDirectMode(t *testing.T) {
	if !UseDirectMode(0) {
		t.Fatal("index 0 should use direct mode")
	}
	if !UseDirectMode(DirectModeThreshold - 1) {
		t.Fatal("index just under threshold should use direct mode")
	}
	if UseDirectMode(DirectModeThreshold) {
		t.Fatal("index at threshold should not use direct mode")
	}
}

package tok

import (
	"errors"
	"testing"
)

func TestSkipWhitespace(t *testing.T) {
	r := NewReader([]byte("   \t\n\rx"))
	b, err := r.SkipWhitespace()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b != 'x' {
		t.Fatalf("got %q, want 'x'", b)
	}
}

func TestSkipWhitespace_EOF(t *testing.T) {
	r := NewReader([]byte("   "))
	_, err := r.SkipWhitespace()
	if !errors.Is(err, ErrEOF) {
		t.Fatalf("expected ErrEOF, got %v", err)
	}
}

func TestReadToken(t *testing.T) {
	r := NewReader([]byte("hello world"))
	tok, err := r.ReadToken(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(tok) != "hello" {
		t.Fatalf("got %q, want %q", tok, "hello")
	}
	tok2, err := r.ReadToken(nil)
	if err != nil && !errors.Is(err, ErrEOF) {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(tok2) != "world" {
		t.Fatalf("got %q, want %q", tok2, "world")
	}
}

func TestReadUntilEndToken(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "hello $end", "hello"},
		{"leading whitespace", "  \t hello $end", "hello"},
		{"multi word", "a b c $end", "a b c"},
		{"no trailing space before end", "hello$end", "hello"},
		{"empty body", " $end", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader([]byte(tt.input))
			got, err := r.ReadUntilEndToken(nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadUnsignedLEB128(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  uint64
	}{
		{"single byte", []byte{0x00}, 0},
		{"single byte max", []byte{0x7f}, 0x7f},
		{"three bytes", []byte{0xe5, 0x8e, 0x26}, 624485},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.input)
			got, err := r.ReadUnsignedLEB128()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReadSignedLEB128(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  int64
	}{
		{"zero", []byte{0x00}, 0},
		{"positive", []byte{0x02}, 2},
		{"negative one", []byte{0x7f}, -1},
		{"negative three bytes", []byte{0x9b, 0xf1, 0x59}, -624485},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.input)
			got, err := r.ReadSignedLEB128()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReadF64LE(t *testing.T) {
	// 1.5 in IEEE-754 little-endian bytes.
	r := NewReader([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf8, 0x3f})
	got, err := r.ReadF64LE()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1.5 {
		t.Fatalf("got %v, want 1.5", got)
	}
}

func TestReadI64_Endianness(t *testing.T) {
	le := NewReader([]byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})
	v, err := le.ReadI64(false)
	if err != nil || v != 1 {
		t.Fatalf("little-endian: got %d, %v", v, err)
	}
	be := NewReader([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01})
	v2, err := be.ReadI64(true)
	if err != nil || v2 != 1 {
		t.Fatalf("big-endian: got %d, %v", v2, err)
	}
}

func TestReadExact_EOF(t *testing.T) {
	r := NewReader([]byte{1, 2})
	_, err := r.ReadExact(3)
	if !errors.Is(err, ErrEOF) {
		t.Fatalf("expected ErrEOF, got %v", err)
	}
}

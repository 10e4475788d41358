package vcdbody

import (
	"fmt"
	"testing"
)

func readAll(t *testing.T, input string) []string {
	t.Helper()
	r := NewReader([]byte(input))
	var out []string
	for {
		cmd, ok, err := r.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			break
		}
		switch cmd.Kind {
		case CmdTime:
			out = append(out, fmt.Sprintf("Time(%s)", cmd.Value))
		case CmdValue:
			out = append(out, fmt.Sprintf("%s = %s", cmd.ID, cmd.Value))
		}
	}
	return out
}

func TestReader_Body(t *testing.T) {
	input := "\n" +
		"1I,!\n" +
		"1J,!\n" +
		"1#2!\n" +
		"#2678437829\n" +
		"b00 D2!\n" +
		"b0000 d2!\n" +
		"b11 e2!\n" +
		"b00000 f2!\n" +
		"b10100 g2!\n" +
		"b00000 h2!\n" +
		"b00000 i2!\n" +
		"x(i\"\n" +
		"x'i\"\n" +
		"x&i\"\n" +
		"x%i\"\n" +
		"0j2!"

	want := []string{
		"I,! = 1",
		"J,! = 1",
		"#2! = 1",
		"Time(2678437829)",
		"D2! = b00",
		"d2! = b0000",
		"e2! = b11",
		"f2! = b00000",
		"g2! = b10100",
		"h2! = b00000",
		"i2! = b00000",
		`(i" = x`,
		`'i" = x`,
		`&i" = x`,
		`%i" = x`,
		"j2! = 0",
	}

	got := readAll(t, input)
	if len(got) != len(want) {
		t.Fatalf("got %d commands, want %d\ngot:  %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cmd %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReader_DumpCommandsIgnored(t *testing.T) {
	got := readAll(t, "$dumpvars\n0!\n$end\n#5\n")
	want := []string{"! = 0", "Time(5)"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cmd %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReader_DumpAllAsTimeZero(t *testing.T) {
	got := readAll(t, "$dumpall\n0!\n")
	if len(got) != 2 || got[0] != "Time(0)" {
		t.Fatalf("got %v", got)
	}
}

func TestReader_CommentSkipped(t *testing.T) {
	got := readAll(t, "$comment this is ignored $end\n#1\n")
	if len(got) != 1 || got[0] != "Time(1)" {
		t.Fatalf("got %v", got)
	}
}

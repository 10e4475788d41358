package vcdbody

import (
	"reflect"
	"testing"
)

type fakeEncoder struct {
	events []string
}

func (f *fakeEncoder) TimeChange(t uint64) {
	f.events = append(f.events, timeEvent(t))
}
func (f *fakeEncoder) VCDValueChange(id uint64, value []byte) {
	f.events = append(f.events, valueEvent(id, value))
}

func timeEvent(t uint64) string  { return "T:" + itoa(t) }
func valueEvent(id uint64, value []byte) string {
	return "V:" + itoa(id) + ":" + string(value)
}
func itoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

func resolveByIdent(id []byte) (uint64, bool) {
	// test identifiers are single ASCII digits standing in for their own
	// resolved index, to keep the fake simple.
	if len(id) != 1 {
		return 0, false
	}
	return uint64(id[0] - '0'), true
}

func TestParseChunk_Basic(t *testing.T) {
	body := "#10\n0!\n1\"\n#20\nb101 #\n"
	enc := &fakeEncoder{}
	resolve := func(id []byte) (uint64, bool) {
		switch string(id) {
		case "!":
			return 1, true
		case "\"":
			return 2, true
		case "#":
			return 3, true
		}
		return 0, false
	}
	if err := ParseChunk([]byte(body), len(body)-1, true, true, resolve, enc, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"T:10", "V:1:0", "V:2:1", "T:20", "V:3:b101"}
	if !reflect.DeepEqual(enc.events, want) {
		t.Fatalf("got %v, want %v", enc.events, want)
	}
}

func TestParseChunk_StopsBeforeTimeBeyondBoundary(t *testing.T) {
	body := "#10\n0!\n#20\n1!\n"
	enc := &fakeEncoder{}
	resolve := func(id []byte) (uint64, bool) { return 1, true }
	// stopPos set to just after the first value change, before the second
	// time command: the chunk must stop without applying "#20".
	stop := 6 // one byte before the second time command's '#', so the
	// boundary check (pos > stopPos) trips on it.
	if err := ParseChunk([]byte(body), stop, true, true, resolve, enc, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, e := range enc.events {
		if e == "T:20" {
			t.Fatalf("chunk should not have applied the time command beyond its boundary: %v", enc.events)
		}
	}
}

func TestPlanChunks_SmallBodyIsSingleChunk(t *testing.T) {
	bounds := PlanChunks(100)
	if len(bounds) != 1 {
		t.Fatalf("expected a single chunk for a small body, got %d", len(bounds))
	}
}

func TestPlanChunks_EmptyBody(t *testing.T) {
	if bounds := PlanChunks(0); bounds != nil {
		t.Fatalf("expected nil bounds for empty body, got %v", bounds)
	}
}

func TestParseParallel_ConcatenatesInOrder(t *testing.T) {
	body := make([]byte, 0, 200000)
	for i := 0; i < 5000; i++ {
		body = append(body, []byte("#1\n0!\n")...)
	}
	results, err := ParseParallel(body, func() Encoder { return &fakeEncoder{} }, resolveByIdent, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least one chunk result")
	}
	var got []string
	for _, r := range results {
		got = append(got, r.(*fakeEncoder).events...)
	}
	single := &fakeEncoder{}
	if err := ParseChunk(body, len(body)-1, true, true, resolveByIdent, single, nil); err != nil {
		t.Fatalf("unexpected error in single-pass parse: %v", err)
	}
	want := single.events
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("concatenated chunk events differ from the single-pass sequence: got %d events, want %d", len(got), len(want))
	}
}

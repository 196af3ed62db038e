package memory

import (
	"context"
	"testing"

	"github.com/hostsnap/hostsnap/internal/probe"
	"github.com/hostsnap/hostsnap/internal/toolrun"
)

const freeOut = `              total        used        free      shared  buff/cache   available
Mem:    16384000000  4096000000  2048000000   512000000 10240000000  4096000000
Swap:    2048000000           0  2048000000
`

func TestParse(t *testing.T) {
	usage, err := Parse([]byte(freeOut))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// used == available, so exactly half, truncated.
	if usage.UsedPercent != 50 {
		t.Errorf("used_percent = %d, want 50", usage.UsedPercent)
	}
	if usage.UsedBytes != 4096000000 {
		t.Errorf("used_bytes = %d, want 4096000000", usage.UsedBytes)
	}
	if usage.TotalBytes != 16384000000 {
		t.Errorf("total_bytes = %d, want 16384000000", usage.TotalBytes)
	}
	if usage.UsedHuman == "" || usage.TotalHuman == "" {
		t.Error("expected human-readable sizes")
	}
}

func TestParseTruncates(t *testing.T) {
	// 1/(1+2) = 33.33..%, must truncate to 33.
	out := "Mem: 3 1 1 0 1 2\n"
	usage, err := Parse([]byte(out))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usage.UsedPercent != 33 {
		t.Errorf("used_percent = %d, want 33", usage.UsedPercent)
	}
}

func TestParseNoMemLine(t *testing.T) {
	if _, err := Parse([]byte("Swap: 1 2 3\n")); err == nil {
		t.Error("expected error when Mem: line is missing")
	}
}

func TestCollectToolFailure(t *testing.T) {
	f := toolrun.NewFake() // free not scripted
	out := Collect(context.Background(), f)
	if !out.Failed() {
		t.Fatal("expected failure outcome")
	}
	if out.Err.Category != probe.CategoryToolError {
		t.Errorf("category = %q, want %q", out.Err.Category, probe.CategoryToolError)
	}
}

func TestCollectParseFailure(t *testing.T) {
	f := toolrun.NewFake()
	f.Script("free -b", toolrun.FakeResponse{Out: []byte("garbage")})

	out := Collect(context.Background(), f)
	if !out.Failed() {
		t.Fatal("expected failure outcome")
	}
	if out.Err.Category != probe.CategoryParseError {
		t.Errorf("category = %q, want %q", out.Err.Category, probe.CategoryParseError)
	}
}

func TestCollect(t *testing.T) {
	f := toolrun.NewFake()
	f.Script("free -b", toolrun.FakeResponse{Out: []byte(freeOut)})

	out := Collect(context.Background(), f)
	if out.Failed() {
		t.Fatalf("unexpected failure: %v", out.Err)
	}
	usage, ok := out.Value.(Usage)
	if !ok {
		t.Fatalf("unexpected payload type %T", out.Value)
	}
	if usage.UsedPercent != 50 {
		t.Errorf("used_percent = %d, want 50", usage.UsedPercent)
	}
}

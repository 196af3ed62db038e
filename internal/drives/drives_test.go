package drives

import (
	"context"
	"testing"

	"github.com/hostsnap/hostsnap/internal/toolrun"
)

const lsblkOut = `{
  "blockdevices": [
    {"name": "sda", "type": "disk"},
    {"name": "sda1", "type": "part"},
    {"name": "sdb", "type": "disk"},
    {"name": "sr0", "type": "rom"},
    {"name": "nvme0n1", "type": "disk"}
  ]
}`

func TestParseLsblk(t *testing.T) {
	refs, err := parseLsblk([]byte(lsblkOut))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"/dev/sda", "/dev/sdb", "/dev/nvme0n1"}
	if len(refs) != len(expected) {
		t.Fatalf("got %d refs, want %d: %v", len(refs), len(expected), refs)
	}
	for i, ref := range expected {
		if refs[i] != ref {
			t.Errorf("refs[%d] = %q, want %q", i, refs[i], ref)
		}
	}
}

func TestParseLsblkNoDisks(t *testing.T) {
	refs, err := parseLsblk([]byte(`{"blockdevices": [{"name": "sr0", "type": "rom"}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refs) != 0 {
		t.Errorf("expected no refs, got %v", refs)
	}
}

func TestParseLsblkMalformed(t *testing.T) {
	if _, err := parseLsblk([]byte("not json")); err == nil {
		t.Error("expected error for malformed output")
	}
}

func TestListToolFailure(t *testing.T) {
	f := toolrun.NewFake() // nothing scripted, lsblk fails
	if _, err := List(context.Background(), f); err == nil {
		t.Error("expected error when lsblk fails")
	}
}

func TestList(t *testing.T) {
	f := toolrun.NewFake()
	f.Script("lsblk --json -o NAME,TYPE", toolrun.FakeResponse{Out: []byte(lsblkOut)})

	refs, err := List(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refs) != 3 {
		t.Errorf("got %d refs, want 3: %v", len(refs), refs)
	}
}

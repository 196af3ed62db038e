package docker

import (
	"context"
	"reflect"
	"testing"

	"github.com/hostsnap/hostsnap/internal/probe"
	"github.com/hostsnap/hostsnap/internal/toolrun"
)

const (
	stoppedCmd   = "docker ps -a --filter status=exited --filter status=dead --format {{.Names}}"
	unhealthyCmd = "docker ps --filter health=unhealthy --format {{.Names}}"
)

func TestMergeNames(t *testing.T) {
	got := MergeNames([]byte("a\nb\n"), []byte("b\nc\n"))
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeNames = %v, want %v", got, want)
	}
}

func TestMergeNamesSorts(t *testing.T) {
	got := MergeNames([]byte("zeta\nalpha\n"))
	want := []string{"alpha", "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeNames = %v, want %v", got, want)
	}
}

func TestMergeNamesEmpty(t *testing.T) {
	got := MergeNames([]byte("\n"), []byte(""))
	if got == nil {
		t.Fatal("expected non-nil slice so the value serializes as []")
	}
	if len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
}

func TestCollect(t *testing.T) {
	f := toolrun.NewFake()
	f.Script(stoppedCmd, toolrun.FakeResponse{Out: []byte("a\nb\n")})
	f.Script(unhealthyCmd, toolrun.FakeResponse{Out: []byte("b\nc\n")})

	out := Collect(context.Background(), f)
	if out.Failed() {
		t.Fatalf("unexpected failure: %v", out.Err)
	}
	names := out.Value.([]string)
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
}

func TestCollectToolFailure(t *testing.T) {
	f := toolrun.NewFake() // docker not scripted
	out := Collect(context.Background(), f)
	if !out.Failed() || out.Err.Category != probe.CategoryToolError {
		t.Errorf("expected external-tool-error failure, got %+v", out)
	}
}

func TestCollectNoFailures(t *testing.T) {
	f := toolrun.NewFake()
	f.Script(stoppedCmd, toolrun.FakeResponse{Out: []byte("")})
	f.Script(unhealthyCmd, toolrun.FakeResponse{Out: []byte("")})

	out := Collect(context.Background(), f)
	if out.Failed() {
		t.Fatalf("unexpected failure: %v", out.Err)
	}
	if names := out.Value.([]string); len(names) != 0 {
		t.Errorf("expected empty list, got %v", names)
	}
}

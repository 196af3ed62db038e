package toolrun

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestExecRunnerOutput(t *testing.T) {
	r := NewExecRunner(2)
	out, err := r.Output(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(string(out)) != "hello" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	r := NewExecRunner(2)
	_, err := r.Output(context.Background(), "sh", "-c", "echo oops >&2; exit 3")
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}

	var re *RunError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RunError, got %T", err)
	}
	if re.Timeout {
		t.Error("non-zero exit flagged as timeout")
	}
	if !strings.Contains(re.Stderr, "oops") {
		t.Errorf("stderr not captured: %q", re.Stderr)
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	r := NewExecRunner(2)
	_, err := r.Output(context.Background(), "hostsnap-no-such-tool-xyz")
	if err == nil {
		t.Fatal("expected error for missing binary")
	}

	var re *RunError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RunError, got %T", err)
	}
	if re.Timeout {
		t.Error("missing binary flagged as timeout")
	}
}

func TestExecRunnerTimeout(t *testing.T) {
	r := NewExecRunner(2)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := r.Output(ctx, "sleep", "30")
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected timeout error")
	}
	var re *RunError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RunError, got %T", err)
	}
	if !re.Timeout {
		t.Error("timeout not flagged on RunError")
	}
	if elapsed > 10*time.Second {
		t.Errorf("timed-out tool held the runner for %s", elapsed)
	}
}

func TestFakeScriptedResponse(t *testing.T) {
	f := NewFake()
	f.Script("free -b", FakeResponse{Out: []byte("mem")})

	out, err := f.Output(context.Background(), "free", "-b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "mem" {
		t.Errorf("unexpected output: %q", out)
	}

	calls := f.Calls()
	if len(calls) != 1 || calls[0] != "free -b" {
		t.Errorf("unexpected calls: %v", calls)
	}
}

func TestFakeMissingScript(t *testing.T) {
	f := NewFake()
	_, err := f.Output(context.Background(), "zpool", "status", "-x")
	var re *RunError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RunError, got %T", err)
	}
	if re.Timeout {
		t.Error("missing script flagged as timeout")
	}
}

func TestFakeDelayHonorsContext(t *testing.T) {
	f := NewFake()
	f.Script("sleepy", FakeResponse{Out: []byte("x"), Delay: 10 * time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := f.Output(ctx, "sleepy")
	var re *RunError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RunError, got %T", err)
	}
	if !re.Timeout {
		t.Error("delayed fake did not report timeout")
	}
}

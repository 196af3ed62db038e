package loadavg

import "testing"

func TestParse(t *testing.T) {
	avgs, err := Parse([]byte("0.527 1.999 12.345 2/1234 56789\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Each value is truncated toward zero, never rounded up.
	if avgs.Load1 != 0.52 {
		t.Errorf("load1 = %v, want 0.52", avgs.Load1)
	}
	if avgs.Load5 != 1.99 {
		t.Errorf("load5 = %v, want 1.99", avgs.Load5)
	}
	if avgs.Load15 != 12.34 {
		t.Errorf("load15 = %v, want 12.34", avgs.Load15)
	}
}

func TestParseTooFewFields(t *testing.T) {
	if _, err := Parse([]byte("0.5 1.0\n")); err == nil {
		t.Error("expected error for short input")
	}
}

func TestParseGarbage(t *testing.T) {
	if _, err := Parse([]byte("a b c d e\n")); err == nil {
		t.Error("expected error for non-numeric fields")
	}
}

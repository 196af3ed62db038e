// Package loadavg provides the load-average probe implementation.
package loadavg

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hostsnap/hostsnap/internal/probe"
)

// Name is the probe name in the snapshot.
const Name = "load"

const procLoadavg = "/proc/loadavg"

// Averages holds the 1/5/15 minute load averages, each truncated to two
// decimal digits.
type Averages struct {
	Load1  float64 `json:"load1"`
	Load5  float64 `json:"load5"`
	Load15 float64 `json:"load15"`
}

// Descriptor returns the probe descriptor.
func Descriptor() probe.Descriptor {
	return probe.Descriptor{Name: Name, Kind: probe.KindStructured}
}

// Collect reads the load averages.
func Collect(ctx context.Context) probe.Outcome {
	raw, err := os.ReadFile(procLoadavg)
	if err != nil {
		return probe.Failf(probe.CategoryToolError, "read %s: %v", procLoadavg, err)
	}

	avgs, err := Parse(raw)
	if err != nil {
		return probe.Failf(probe.CategoryParseError, "%v", err)
	}
	return probe.OK(avgs)
}

// Parse extracts the three load averages from /proc/loadavg contents. Each
// value is truncated independently, toward zero.
func Parse(raw []byte) (Averages, error) {
	fields := strings.Fields(string(raw))
	if len(fields) < 3 {
		return Averages{}, fmt.Errorf("parse %s: expected at least 3 fields, got %d", procLoadavg, len(fields))
	}

	values := make([]float64, 3)
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return Averages{}, fmt.Errorf("parse %s: %w", procLoadavg, err)
		}
		values[i] = probe.Truncate2(v)
	}

	return Averages{Load1: values[0], Load5: values[1], Load15: values[2]}, nil
}

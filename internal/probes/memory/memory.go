// Package memory provides the memory-usage probe implementation.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	units "github.com/docker/go-units"
	"github.com/hostsnap/hostsnap/internal/probe"
	"github.com/hostsnap/hostsnap/internal/toolrun"
)

// Name is the probe name in the snapshot.
const Name = "memory"

// Usage is the memory probe payload.
type Usage struct {
	UsedPercent int    `json:"used_percent"`
	UsedBytes   uint64 `json:"used_bytes"`
	TotalBytes  uint64 `json:"total_bytes"`
	UsedHuman   string `json:"used_human"`
	TotalHuman  string `json:"total_human"`
}

// Descriptor returns the probe descriptor.
func Descriptor() probe.Descriptor {
	return probe.Descriptor{Name: Name, Kind: probe.KindScalar}
}

// Collect invokes free and derives the used-memory percentage.
func Collect(ctx context.Context, r toolrun.Runner) probe.Outcome {
	out, err := r.Output(ctx, "free", "-b")
	if err != nil {
		return probe.FromToolError(err)
	}

	usage, err := Parse(out)
	if err != nil {
		return probe.Failf(probe.CategoryParseError, "%v", err)
	}
	return probe.OK(usage)
}

// Parse extracts memory figures from `free -b` output. The percentage is
// used/(used+available), truncated toward zero; "available" rather than
// "free" so cache and buffers do not count as pressure.
func Parse(out []byte) (Usage, error) {
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 7 || fields[0] != "Mem:" {
			continue
		}

		total, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return Usage{}, fmt.Errorf("parse free output: total: %w", err)
		}
		used, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			return Usage{}, fmt.Errorf("parse free output: used: %w", err)
		}
		avail, err := strconv.ParseUint(fields[6], 10, 64)
		if err != nil {
			return Usage{}, fmt.Errorf("parse free output: available: %w", err)
		}

		return Usage{
			UsedPercent: probe.TruncatePercent(used, avail),
			UsedBytes:   used,
			TotalBytes:  total,
			UsedHuman:   units.HumanSize(float64(used)),
			TotalHuman:  units.HumanSize(float64(total)),
		}, nil
	}

	return Usage{}, fmt.Errorf("parse free output: no Mem: line")
}

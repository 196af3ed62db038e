// Package zpool provides the storage-pool health and capacity probes.
package zpool

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hostsnap/hostsnap/internal/probe"
	"github.com/hostsnap/hostsnap/internal/toolrun"
)

// Probe names in the snapshot.
const (
	HealthName = "pool-health"
	SpaceName  = "pool-space"
)

const healthyPhrase = "all pools are healthy"

// Usage is the pool-space payload.
type Usage struct {
	UsedPercent int    `json:"used_percent"`
	UsedBytes   uint64 `json:"used_bytes"`
	AvailBytes  uint64 `json:"avail_bytes"`
}

// HealthDescriptor returns the pool-health probe descriptor.
func HealthDescriptor() probe.Descriptor {
	return probe.Descriptor{Name: HealthName, Kind: probe.KindBoolean}
}

// SpaceDescriptor returns the pool-space probe descriptor.
func SpaceDescriptor() probe.Descriptor {
	return probe.Descriptor{Name: SpaceName, Kind: probe.KindScalar}
}

// CollectHealth invokes `zpool status -x` and reports whether every pool is
// healthy.
func CollectHealth(ctx context.Context, r toolrun.Runner) probe.Outcome {
	out, err := r.Output(ctx, "zpool", "status", "-x")
	if err != nil {
		return probe.FromToolError(err)
	}
	return probe.OK(ParseStatus(out))
}

// ParseStatus reports whether `zpool status -x` output is the fixed healthy
// phrase. Any other output means at least one pool has problems.
func ParseStatus(out []byte) bool {
	return strings.Contains(strings.TrimSpace(string(out)), healthyPhrase)
}

// CollectSpace invokes `zfs list` for the configured pool (or all top-level
// pools when none is configured) and derives the used percentage.
func CollectSpace(ctx context.Context, r toolrun.Runner, pool string) probe.Outcome {
	args := []string{"list", "-Hp", "-o", "used,avail"}
	if pool != "" {
		args = append(args, pool)
	} else {
		args = append(args, "-d", "0")
	}

	out, err := r.Output(ctx, "zfs", args...)
	if err != nil {
		return probe.FromToolError(err)
	}

	usage, err := ParseSpace(out)
	if err != nil {
		return probe.Failf(probe.CategoryParseError, "%v", err)
	}
	return probe.OK(usage)
}

// ParseSpace sums used/avail across the tab-delimited `zfs list -Hp` lines
// and truncates the resulting percentage toward zero.
func ParseSpace(out []byte) (Usage, error) {
	var used, avail uint64
	var lines int

	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return Usage{}, fmt.Errorf("parse zfs list output: expected 2 tab-delimited fields, got %q", line)
		}

		u, err := strconv.ParseUint(strings.TrimSpace(fields[0]), 10, 64)
		if err != nil {
			return Usage{}, fmt.Errorf("parse zfs list output: used: %w", err)
		}
		a, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 64)
		if err != nil {
			return Usage{}, fmt.Errorf("parse zfs list output: avail: %w", err)
		}

		used += u
		avail += a
		lines++
	}

	if lines == 0 {
		return Usage{}, fmt.Errorf("parse zfs list output: no pools listed")
	}

	return Usage{
		UsedPercent: probe.TruncatePercent(used, avail),
		UsedBytes:   used,
		AvailBytes:  avail,
	}, nil
}

// Package uptime provides the uptime probe implementation.
package uptime

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	units "github.com/docker/go-units"
	"github.com/hostsnap/hostsnap/internal/probe"
)

// Name is the probe name in the snapshot.
const Name = "uptime"

const procUptime = "/proc/uptime"

// Info is the uptime probe payload.
type Info struct {
	Seconds int64  `json:"seconds"`
	Human   string `json:"human"`
}

// Descriptor returns the probe descriptor.
func Descriptor() probe.Descriptor {
	return probe.Descriptor{Name: Name, Kind: probe.KindScalar}
}

// Collect reads the system uptime.
func Collect(ctx context.Context) probe.Outcome {
	raw, err := os.ReadFile(procUptime)
	if err != nil {
		return probe.Failf(probe.CategoryToolError, "read %s: %v", procUptime, err)
	}

	info, err := Parse(raw)
	if err != nil {
		return probe.Failf(probe.CategoryParseError, "%v", err)
	}
	return probe.OK(info)
}

// Parse extracts the uptime from /proc/uptime contents. The first field is
// seconds since boot as a decimal.
func Parse(raw []byte) (Info, error) {
	fields := strings.Fields(string(raw))
	if len(fields) == 0 {
		return Info{}, fmt.Errorf("parse %s: empty output", procUptime)
	}

	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Info{}, fmt.Errorf("parse %s: %w", procUptime, err)
	}

	return Info{
		Seconds: int64(secs),
		Human:   units.HumanDuration(time.Duration(secs) * time.Second),
	}, nil
}

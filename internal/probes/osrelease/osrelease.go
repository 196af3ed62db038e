// Package osrelease provides the OS identity probe implementation.
package osrelease

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hostsnap/hostsnap/internal/probe"
)

// Name is the probe name in the snapshot.
const Name = "os"

const (
	osReleasePath = "/etc/os-release"
	kernelPath    = "/proc/sys/kernel/osrelease"
)

// Info is the OS identity payload.
type Info struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Kernel  string `json:"kernel,omitempty"`
}

// Descriptor returns the probe descriptor.
func Descriptor() probe.Descriptor {
	return probe.Descriptor{Name: Name, Kind: probe.KindStructured}
}

// Collect reads the OS identity from os-release and the kernel version.
func Collect(ctx context.Context) probe.Outcome {
	raw, err := os.ReadFile(osReleasePath)
	if err != nil {
		return probe.Failf(probe.CategoryToolError, "read %s: %v", osReleasePath, err)
	}

	info, err := Parse(raw)
	if err != nil {
		return probe.Failf(probe.CategoryParseError, "%v", err)
	}

	// Kernel version is best-effort; the probe is still useful without it.
	if kernel, err := os.ReadFile(kernelPath); err == nil {
		info.Kernel = strings.TrimSpace(string(kernel))
	}

	return probe.OK(info)
}

// Parse extracts the distribution name and version from os-release contents
// (KEY=VALUE lines, values optionally quoted).
func Parse(raw []byte) (Info, error) {
	values := make(map[string]string)
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		values[key] = strings.Trim(value, `"'`)
	}

	name := values["PRETTY_NAME"]
	if name == "" {
		name = values["NAME"]
	}
	if name == "" {
		return Info{}, fmt.Errorf("parse %s: no NAME or PRETTY_NAME field", osReleasePath)
	}

	return Info{Name: name, Version: values["VERSION_ID"]}, nil
}

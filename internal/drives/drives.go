// Package drives enumerates physical block devices for one aggregation cycle.
package drives

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hostsnap/hostsnap/internal/toolrun"
)

type lsblkReport struct {
	BlockDevices []lsblkDevice `json:"blockdevices"`
}

type lsblkDevice struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// List invokes lsblk once and returns device paths for all physical disks,
// in tool order. Enumeration is not retried: drive topology is not expected
// to change within one process lifetime, so a failure here fails every
// drive-dependent probe for the cycle.
func List(ctx context.Context, r toolrun.Runner) ([]string, error) {
	out, err := r.Output(ctx, "lsblk", "--json", "-o", "NAME,TYPE")
	if err != nil {
		return nil, fmt.Errorf("list block devices: %w", err)
	}
	return parseLsblk(out)
}

func parseLsblk(out []byte) ([]string, error) {
	var report lsblkReport
	if err := json.Unmarshal(out, &report); err != nil {
		return nil, fmt.Errorf("parse lsblk output: %w", err)
	}

	var refs []string
	for _, dev := range report.BlockDevices {
		if dev.Type != "disk" || dev.Name == "" {
			continue
		}
		refs = append(refs, "/dev/"+dev.Name)
	}
	return refs, nil
}

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/instantos/ins/pkg/answers"
	inserr "github.com/instantos/ins/pkg/errors"
)

// DiskEntry describes one installable block device.
type DiskEntry struct {
	Path      string
	Model     string
	SizeBytes uint64
	Removable bool
}

// Display renders the entry the way the disk question presents it.
// The path stays a prefix so the installer can split it back out.
func (d DiskEntry) Display() string {
	label := fmt.Sprintf("%s (%s)", d.Path, FormatBinarySize(d.SizeBytes))
	if d.Model != "" {
		label += " " + d.Model
	}
	return label
}

// DevicePath extracts the device path from a display string produced by
// Display ("/dev/sda (500 GiB) Samsung SSD" → "/dev/sda").
func DevicePath(display string) string {
	if path, _, found := strings.Cut(display, " "); found {
		return path
	}
	return display
}

// KeyDisks is the side-channel key for the enumerated disk list.
var KeyDisks = answers.Key[[]DiskEntry]{ID: "disks"}

// lsblkReport matches the JSON document emitted by lsblk --json.
type lsblkReport struct {
	BlockDevices []lsblkDevice `json:"blockdevices"`
}

type lsblkDevice struct {
	Name  string `json:"name"`
	Size  uint64 `json:"size"`
	Type  string `json:"type"`
	Model string `json:"model"`
	RM    bool   `json:"rm"`
}

// DiskProvider enumerates block devices via lsblk.
type DiskProvider struct {
	// ListJSON returns raw lsblk JSON; replaceable for tests
	ListJSON func(ctx context.Context) ([]byte, error)
}

func init() {
	MustRegister(&DiskProvider{})
}

// Key implements Provider
func (p *DiskProvider) Key() string { return KeyDisks.ID }

// Provide implements Provider
func (p *DiskProvider) Provide(ctx context.Context, store *answers.Store) error {
	list := p.ListJSON
	if list == nil {
		list = runLsblk
	}

	data, err := list(ctx)
	if err != nil {
		return inserr.Wrap(err, inserr.ErrExecFailed, "lsblk failed")
	}

	disks, err := ParseLsblk(data)
	if err != nil {
		return err
	}
	if len(disks) == 0 {
		return inserr.New(inserr.ErrNotFound, "no installable disks found")
	}

	KeyDisks.Set(store, disks)
	return nil
}

func runLsblk(ctx context.Context) ([]byte, error) {
	return exec.CommandContext(ctx, "lsblk", "--json", "--bytes", "--nodeps",
		"--output", "NAME,SIZE,TYPE,MODEL,RM").Output()
}

// ParseLsblk extracts whole disks from lsblk JSON output
func ParseLsblk(data []byte) ([]DiskEntry, error) {
	var report lsblkReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, inserr.Wrap(err, inserr.ErrConfigParse, "failed to parse lsblk output")
	}

	var disks []DiskEntry
	for _, dev := range report.BlockDevices {
		if dev.Type != "disk" {
			continue
		}
		disks = append(disks, DiskEntry{
			Path:      "/dev/" + dev.Name,
			Model:     strings.TrimSpace(dev.Model),
			SizeBytes: dev.Size,
			Removable: dev.RM,
		})
	}
	return disks, nil
}

// FormatBinarySize renders a byte count with binary units, trimming a
// trailing ".0" so exact values read naturally (50 GiB, 1.5 TiB).
func FormatBinarySize(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	value := float64(bytes) / float64(div)
	suffix := []string{"KiB", "MiB", "GiB", "TiB", "PiB"}[exp]
	s := fmt.Sprintf("%.1f", value)
	s = strings.TrimSuffix(s, ".0")
	return s + " " + suffix
}

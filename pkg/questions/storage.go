package questions

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/instantos/ins/pkg/answers"
	"github.com/instantos/ins/pkg/chooser"
	inserr "github.com/instantos/ins/pkg/errors"
	"github.com/instantos/ins/pkg/providers"
)

// methodContains matches the partitioning method answer by case-sensitive
// substring, mirroring how the summary derives the partitioning kind.
func methodContains(ctx *answers.Context, substring string) bool {
	method, ok := ctx.GetAnswer(answers.PartitioningMethod)
	return ok && strings.Contains(method, substring)
}

// DiskQuestion selects the installation disk from the enumerated list.
type DiskQuestion struct{ Base }

// NewDiskQuestion creates the disk selection question
func NewDiskQuestion() *DiskQuestion {
	return &DiskQuestion{Base{QID: answers.Disk}}
}

// RequiredData implements Question
func (q *DiskQuestion) RequiredData() []string { return []string{providers.KeyDisks.ID} }

// Providers implements Question
func (q *DiskQuestion) Providers() []providers.Provider { return []providers.Provider{&providers.DiskProvider{}} }

// Validate implements Question
func (q *DiskQuestion) Validate(_ *answers.Context, answer string) error {
	return validateDevicePath(answer)
}

// Ask implements Question
func (q *DiskQuestion) Ask(_ context.Context, ctx *answers.Context, ch chooser.Chooser) (string, error) {
	disks, ok := providers.KeyDisks.Get(ctx.Data)
	if !ok {
		return "", inserr.New(inserr.ErrInternal, "disk list not available")
	}
	options := make([]string, len(disks))
	for i, d := range disks {
		options[i] = d.Display()
	}
	return ch.Select(promptDisk, options)
}

// PartitioningMethodQuestion selects the overall storage plan.
type PartitioningMethodQuestion struct{ Base }

// NewPartitioningMethodQuestion creates the partitioning method question
func NewPartitioningMethodQuestion() *PartitioningMethodQuestion {
	return &PartitioningMethodQuestion{Base{QID: answers.PartitioningMethod}}
}

// Ask implements Question
func (q *PartitioningMethodQuestion) Ask(_ context.Context, _ *answers.Context, ch chooser.Chooser) (string, error) {
	return ch.Select(promptMethod, []string{MethodAutomatic, MethodManual, MethodDualBoot})
}

// cfdiskRunner launches cfdisk attached to the terminal. Replaceable for
// tests; the wizard phase runs it directly, not through the executor,
// because it is interactive preparation rather than part of the plan.
var cfdiskRunner = func(goctx context.Context, disk string) error {
	cmd := exec.CommandContext(goctx, "cfdisk", disk)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// RunCfdiskQuestion offers to open cfdisk before manual partition
// assignment.
type RunCfdiskQuestion struct{ Base }

// NewRunCfdiskQuestion creates the cfdisk question
func NewRunCfdiskQuestion() *RunCfdiskQuestion {
	return &RunCfdiskQuestion{Base{QID: answers.RunCfdisk}}
}

// ShouldAsk implements Question
func (q *RunCfdiskQuestion) ShouldAsk(ctx *answers.Context) bool {
	return methodContains(ctx, "Manual")
}

// Ask implements Question
func (q *RunCfdiskQuestion) Ask(goctx context.Context, ctx *answers.Context, ch chooser.Chooser) (string, error) {
	yes, err := ch.Confirm(promptRunCfdisk)
	if err != nil {
		return "", err
	}
	if yes {
		disk, _ := ctx.GetAnswer(answers.Disk)
		if err := cfdiskRunner(goctx, providers.DevicePath(disk)); err != nil {
			log.Warn().Err(err).Msg("cfdisk exited with an error")
		}
	}
	return strconv.FormatBool(yes), nil
}

// partitionEntry is one selectable partition.
type partitionEntry struct {
	Path      string
	SizeBytes uint64
	FSType    string
}

func (p partitionEntry) display() string {
	label := fmt.Sprintf("%s (%s)", p.Path, providers.FormatBinarySize(p.SizeBytes))
	if p.FSType != "" {
		label += " " + p.FSType
	}
	return label
}

// partitionLister enumerates partitions of a disk at ask time. Partition
// questions query live instead of using a provider because cfdisk may
// have just changed the table.
var partitionLister = func(goctx context.Context, disk string) ([]partitionEntry, error) {
	out, err := exec.CommandContext(goctx, "lsblk", "--json", "--bytes",
		"--output", "NAME,SIZE,TYPE,FSTYPE", disk).Output()
	if err != nil {
		return nil, inserr.Wrap(err, inserr.ErrExecFailed, "lsblk failed")
	}
	return parsePartitions(out)
}

func parsePartitions(data []byte) ([]partitionEntry, error) {
	var report struct {
		BlockDevices []struct {
			Name     string `json:"name"`
			Size     uint64 `json:"size"`
			Type     string `json:"type"`
			FSType   string `json:"fstype"`
			Children []struct {
				Name   string `json:"name"`
				Size   uint64 `json:"size"`
				Type   string `json:"type"`
				FSType string `json:"fstype"`
			} `json:"children"`
		} `json:"blockdevices"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, inserr.Wrap(err, inserr.ErrConfigParse, "failed to parse lsblk output")
	}

	var parts []partitionEntry
	for _, dev := range report.BlockDevices {
		for _, child := range dev.Children {
			if child.Type != "part" {
				continue
			}
			parts = append(parts, partitionEntry{
				Path:      "/dev/" + child.Name,
				SizeBytes: child.Size,
				FSType:    child.FSType,
			})
		}
	}
	return parts, nil
}

// partitionQuestion is the shared shape of the manual partition
// assignment questions.
type partitionQuestion struct {
	Base
	prompt    string
	allowNone bool
	uefiOnly  bool
}

// ShouldAsk implements Question
func (q *partitionQuestion) ShouldAsk(ctx *answers.Context) bool {
	if !methodContains(ctx, "Manual") {
		return false
	}
	if q.uefiOnly && !ctx.System.BootMode.IsUEFI() {
		return false
	}
	return true
}

// Validate implements Question
func (q *partitionQuestion) Validate(_ *answers.Context, answer string) error {
	if q.allowNone && answer == AnswerNone {
		return nil
	}
	return validateDevicePath(answer)
}

// Ask implements Question
func (q *partitionQuestion) Ask(goctx context.Context, ctx *answers.Context, ch chooser.Chooser) (string, error) {
	disk, _ := ctx.GetAnswer(answers.Disk)
	parts, err := partitionLister(goctx, providers.DevicePath(disk))
	if err != nil {
		return "", err
	}

	var options []string
	for _, p := range parts {
		options = append(options, p.display())
	}
	if q.allowNone {
		options = append(options, AnswerNone)
	}
	if len(options) == 0 {
		return "", inserr.New(inserr.ErrNotFound, "no partitions found on the selected disk")
	}

	choice, err := ch.Select(q.prompt, options)
	if err != nil {
		return "", err
	}
	if choice == AnswerNone {
		return AnswerNone, nil
	}
	return providers.DevicePath(choice), nil
}

// NewRootPartitionQuestion creates the root partition question
func NewRootPartitionQuestion() Question {
	return &partitionQuestion{Base: Base{QID: answers.RootPartition}, prompt: promptRootPartition}
}

// NewBootPartitionQuestion creates the EFI boot partition question
func NewBootPartitionQuestion() Question {
	return &partitionQuestion{Base: Base{QID: answers.BootPartition}, prompt: promptBootPartition, uefiOnly: true}
}

// NewSwapPartitionQuestion creates the swap partition question
func NewSwapPartitionQuestion() Question {
	return &partitionQuestion{Base: Base{QID: answers.SwapPartition}, prompt: promptSwapPartition, allowNone: true}
}

// NewHomePartitionQuestion creates the home partition question
func NewHomePartitionQuestion() Question {
	return &partitionQuestion{Base: Base{QID: answers.HomePartition}, prompt: promptHomePartition, allowNone: true}
}

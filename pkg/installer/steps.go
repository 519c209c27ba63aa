package installer

import (
	"fmt"

	"github.com/instantos/ins/pkg/answers"
	"github.com/instantos/ins/pkg/executor"
	"github.com/instantos/ins/pkg/providers"
	"github.com/instantos/ins/pkg/summary"
)

// diskPlan is the storage decision shared by several steps, derived once
// from the answer context.
type diskPlan struct {
	Kind      summary.PartitioningKind
	Disk      string
	UEFI      bool
	Encrypted bool
}

// LVM names used by the encrypted automatic layout
const (
	luksMapperName = "cryptroot"
	luksMapperPath = "/dev/mapper/cryptroot"
	vgName         = "instantos"
	lvSwapPath     = "/dev/instantos/swap"
	lvRootPath     = "/dev/instantos/root"
)

func (r *Runner) plan() diskPlan {
	method, _ := r.Context.GetAnswer(answers.PartitioningMethod)
	kind := summary.DeriveKind(method)
	display, _ := r.Context.GetAnswer(answers.Disk)
	return diskPlan{
		Kind:      kind,
		Disk:      providers.DevicePath(display),
		UEFI:      r.Context.System.BootMode.IsUEFI(),
		Encrypted: kind == summary.PartitioningAutomatic && r.Context.GetAnswerBool(answers.UseEncryption),
	}
}

func (r *Runner) answer(id answers.QuestionID) string {
	v, _ := r.Context.GetAnswer(id)
	return v
}

func (r *Runner) run(prog string, args ...string) error {
	return r.Exec.Run(executor.Cmd(prog, args...))
}

// bash runs a single shell command line, used where a step needs
// redirection or command substitution resolved at install time.
func (r *Runner) bash(script string) error {
	return r.Exec.Run(executor.Cmd("bash", "-c", script))
}

// partitionName forms a partition device path. Disks whose name ends in
// a digit (nvme0n1, mmcblk0) take a "p" separator.
func partitionName(disk string, number int) string {
	if disk == "" {
		return fmt.Sprintf("p%d", number)
	}
	last := disk[len(disk)-1]
	if last >= '0' && last <= '9' {
		return fmt.Sprintf("%sp%d", disk, number)
	}
	return fmt.Sprintf("%s%d", disk, number)
}

// swapSizeGiB sizes the automatic swap partition from installed RAM:
// match RAM up to a 16 GiB ceiling, never below 2 GiB.
func swapSizeGiB(totalRAMGB float64) int {
	size := int(totalRAMGB + 0.5)
	if size < 2 {
		return 2
	}
	if size > 16 {
		return 16
	}
	return size
}

// isNoneAnswer reports whether a partition answer means "skip this mount"
func isNoneAnswer(v string) bool {
	return v == "" || v == "None"
}

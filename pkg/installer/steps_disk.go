package installer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/instantos/ins/pkg/answers"
	inserr "github.com/instantos/ins/pkg/errors"
	"github.com/instantos/ins/pkg/executor"
	"github.com/instantos/ins/pkg/summary"
)

// runDisk prepares the target disk and mounts the new filesystems under
// the target root. Everything below goes through the executor, so a dry
// run prints the full partitioning plan without touching the disk.
func (r *Runner) runDisk() error {
	plan := r.plan()
	switch plan.Kind {
	case summary.PartitioningAutomatic:
		return r.diskAutomatic(plan)
	case summary.PartitioningManual:
		return r.diskManual(plan)
	case summary.PartitioningDualBoot:
		return r.diskDualBoot(plan)
	default:
		return inserr.New(inserr.ErrValidation, "no partitioning method selected")
	}
}

// diskAutomatic erases the disk and builds the layout the summary
// advertises for the detected boot mode and encryption choice.
func (r *Runner) diskAutomatic(plan diskPlan) error {
	if plan.Disk == "" {
		return inserr.New(inserr.ErrValidation, "no installation disk selected")
	}
	if err := r.run("wipefs", "--all", plan.Disk); err != nil {
		return err
	}

	swapGiB := swapSizeGiB(r.Context.System.TotalRAMGB)
	switch {
	case plan.UEFI && plan.Encrypted:
		return r.layoutUEFIEncrypted(plan.Disk, swapGiB)
	case plan.UEFI:
		return r.layoutUEFI(plan.Disk, swapGiB)
	case plan.Encrypted:
		return r.layoutBIOSEncrypted(plan.Disk, swapGiB)
	default:
		return r.layoutBIOS(plan.Disk, swapGiB)
	}
}

// layoutUEFI: EFI (1 GiB) + Swap (auto) + Root
func (r *Runner) layoutUEFI(disk string, swapGiB int) error {
	efi := partitionName(disk, 1)
	swap := partitionName(disk, 2)
	root := partitionName(disk, 3)

	cmds := [][]string{
		{"sgdisk", "--zap-all", disk},
		{"sgdisk", "--new=1:0:+1G", "--typecode=1:ef00", disk},
		{"sgdisk", fmt.Sprintf("--new=2:0:+%dG", swapGiB), "--typecode=2:8200", disk},
		{"sgdisk", "--new=3:0:0", "--typecode=3:8300", disk},
		{"partprobe", disk},
		{"mkfs.fat", "-F32", efi},
		{"mkswap", swap},
		{"mkfs.ext4", "-F", root},
		{"mount", root, r.Paths.TargetRoot},
		{"mount", "--mkdir", efi, r.Paths.TargetRoot + "/boot"},
		{"swapon", swap},
	}
	return r.runSequence(cmds)
}

// layoutBIOS: Swap (auto) + Root on an MBR label
func (r *Runner) layoutBIOS(disk string, swapGiB int) error {
	swap := partitionName(disk, 1)
	root := partitionName(disk, 2)

	cmds := [][]string{
		{"parted", "--script", disk, "mklabel", "msdos"},
		{"parted", "--script", disk, "mkpart", "primary", "linux-swap", "1MiB", fmt.Sprintf("%dGiB", swapGiB)},
		{"parted", "--script", disk, "mkpart", "primary", "ext4", fmt.Sprintf("%dGiB", swapGiB), "100%"},
		{"parted", "--script", disk, "set", "2", "boot", "on"},
		{"partprobe", disk},
		{"mkswap", swap},
		{"mkfs.ext4", "-F", root},
		{"mount", root, r.Paths.TargetRoot},
		{"swapon", swap},
	}
	return r.runSequence(cmds)
}

// layoutUEFIEncrypted: EFI (1 GiB) + LUKS (LVM swap + root)
func (r *Runner) layoutUEFIEncrypted(disk string, swapGiB int) error {
	efi := partitionName(disk, 1)
	luks := partitionName(disk, 2)

	cmds := [][]string{
		{"sgdisk", "--zap-all", disk},
		{"sgdisk", "--new=1:0:+1G", "--typecode=1:ef00", disk},
		{"sgdisk", "--new=2:0:0", "--typecode=2:8309", disk},
		{"partprobe", disk},
	}
	if err := r.runSequence(cmds); err != nil {
		return err
	}
	if err := r.openLUKS(luks); err != nil {
		return err
	}

	cmds = [][]string{
		{"pvcreate", luksMapperPath},
		{"vgcreate", vgName, luksMapperPath},
		{"lvcreate", "--size", fmt.Sprintf("%dG", swapGiB), "--name", "swap", vgName},
		{"lvcreate", "--extents", "100%FREE", "--name", "root", vgName},
		{"mkfs.fat", "-F32", efi},
		{"mkswap", lvSwapPath},
		{"mkfs.ext4", "-F", lvRootPath},
		{"mount", lvRootPath, r.Paths.TargetRoot},
		{"mount", "--mkdir", efi, r.Paths.TargetRoot + "/boot"},
		{"swapon", lvSwapPath},
	}
	return r.runSequence(cmds)
}

// layoutBIOSEncrypted: Boot (1 GiB) + LUKS (LVM swap + root). The boot
// partition stays unencrypted so grub can read its own modules.
func (r *Runner) layoutBIOSEncrypted(disk string, swapGiB int) error {
	boot := partitionName(disk, 1)
	luks := partitionName(disk, 2)

	cmds := [][]string{
		{"parted", "--script", disk, "mklabel", "msdos"},
		{"parted", "--script", disk, "mkpart", "primary", "ext4", "1MiB", "1GiB"},
		{"parted", "--script", disk, "mkpart", "primary", "1GiB", "100%"},
		{"parted", "--script", disk, "set", "1", "boot", "on"},
		{"partprobe", disk},
	}
	if err := r.runSequence(cmds); err != nil {
		return err
	}
	if err := r.openLUKS(luks); err != nil {
		return err
	}

	cmds = [][]string{
		{"pvcreate", luksMapperPath},
		{"vgcreate", vgName, luksMapperPath},
		{"lvcreate", "--size", fmt.Sprintf("%dG", swapGiB), "--name", "swap", vgName},
		{"lvcreate", "--extents", "100%FREE", "--name", "root", vgName},
		{"mkfs.ext4", "-F", boot},
		{"mkswap", lvSwapPath},
		{"mkfs.ext4", "-F", lvRootPath},
		{"mount", lvRootPath, r.Paths.TargetRoot},
		{"mount", "--mkdir", boot, r.Paths.TargetRoot + "/boot"},
		{"swapon", lvSwapPath},
	}
	return r.runSequence(cmds)
}

// openLUKS formats and opens the container; the passphrase travels on
// stdin, never on the command line.
func (r *Runner) openLUKS(device string) error {
	pass := r.answer(answers.EncryptionPassword)
	if pass == "" {
		return inserr.New(inserr.ErrValidation, "encryption selected but no passphrase set")
	}
	if err := r.Exec.RunWithInput(
		executor.Cmd("cryptsetup", "luksFormat", "--batch-mode", "--key-file=-", device), pass); err != nil {
		return err
	}
	return r.Exec.RunWithInput(
		executor.Cmd("cryptsetup", "open", "--key-file=-", device, luksMapperName), pass)
}

// diskManual formats the chosen root partition and mounts the rest of
// the user's assignment as-is. Only root is reformatted; boot, swap and
// home keep whatever is on them (swap is re-initialized, not erased).
func (r *Runner) diskManual(plan diskPlan) error {
	root := r.answer(answers.RootPartition)
	if isNoneAnswer(root) {
		return inserr.New(inserr.ErrValidation, "manual partitioning requires a root partition")
	}

	cmds := [][]string{
		{"mkfs.ext4", "-F", root},
		{"mount", root, r.Paths.TargetRoot},
	}
	if plan.UEFI {
		boot := r.answer(answers.BootPartition)
		if isNoneAnswer(boot) {
			return inserr.New(inserr.ErrValidation, "UEFI install requires an EFI boot partition")
		}
		cmds = append(cmds, []string{"mount", "--mkdir", boot, r.Paths.TargetRoot + "/boot"})
	}
	if swap := r.answer(answers.SwapPartition); !isNoneAnswer(swap) {
		cmds = append(cmds,
			[]string{"mkswap", swap},
			[]string{"swapon", swap})
	}
	if home := r.answer(answers.HomePartition); !isNoneAnswer(home) {
		cmds = append(cmds, []string{"mount", "--mkdir", home, r.Paths.TargetRoot + "/home"})
	}
	return r.runSequence(cmds)
}

// diskDualBoot carves a root partition out of the space next to the
// existing OS. When a partition was selected it is shrunk from its end
// by the requested size first; the new partition's device name is only
// known at install time, so it is resolved inside a shell command.
func (r *Runner) diskDualBoot(plan diskPlan) error {
	if plan.Disk == "" {
		return inserr.New(inserr.ErrValidation, "no installation disk selected")
	}
	sizeRaw := r.answer(answers.DualBootSize)
	sizeBytes, err := strconv.ParseUint(sizeRaw, 10, 64)
	if err != nil {
		return inserr.Newf(inserr.ErrValidation, "invalid dual boot size %q", sizeRaw)
	}

	target := r.answer(answers.DualBootPartition)
	if target != "" && target != "__free_space__" {
		num, err := partitionNumber(target, plan.Disk)
		if err != nil {
			return err
		}
		// The new end is the partition's current end minus the requested
		// size. Its geometry is only known at install time, so the
		// arithmetic runs in the shell and dry-run shows it verbatim.
		script := fmt.Sprintf(
			"end=$(( $(lsblk --noheadings --output START %[1]s) * 512 + $(lsblk --bytes --noheadings --output SIZE %[1]s) - %[2]d )); "+
				"parted --script %[3]s resizepart %[4]d ${end}B",
			target, sizeBytes, plan.Disk, num)
		if err := r.bash(script); err != nil {
			return err
		}
	}

	cmds := [][]string{
		{"sgdisk", "--new=0:0:0", "--typecode=0:8300", plan.Disk},
		{"partprobe", plan.Disk},
	}
	if err := r.runSequence(cmds); err != nil {
		return err
	}

	lastPart := fmt.Sprintf("$(lsblk --noheadings --raw --output PATH %s | tail -1)", plan.Disk)
	scripts := []string{
		fmt.Sprintf("mkfs.ext4 -F %s", lastPart),
		fmt.Sprintf("mount %s %s", lastPart, r.Paths.TargetRoot),
	}
	for _, s := range scripts {
		if err := r.bash(s); err != nil {
			return err
		}
	}
	return nil
}

// partitionNumber extracts the trailing partition number from a device
// path like /dev/sda3 or /dev/nvme0n1p3.
func partitionNumber(partition, disk string) (int, error) {
	if !strings.HasPrefix(partition, disk) {
		return 0, inserr.Newf(inserr.ErrValidation,
			"partition %q is not on disk %q", partition, disk)
	}
	suffix := partition[len(disk):]
	if len(suffix) > 0 && suffix[0] == 'p' {
		suffix = suffix[1:]
	}
	num, err := strconv.Atoi(suffix)
	if err != nil || num < 1 {
		return 0, inserr.Newf(inserr.ErrValidation,
			"cannot determine partition number of %q on %q", partition, disk)
	}
	return num, nil
}

func (r *Runner) runSequence(cmds [][]string) error {
	for _, c := range cmds {
		if err := r.run(c[0], c[1:]...); err != nil {
			return err
		}
	}
	return nil
}

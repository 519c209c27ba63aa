package installer

import (
	"github.com/instantos/ins/pkg/answers"
	"github.com/instantos/ins/pkg/providers"
)

// runBase selects pacman mirrors and bootstraps the base system into the
// target root with pacstrap.
func (r *Runner) runBase() error {
	plan := r.plan()

	if region := r.answer(answers.MirrorRegion); region != "" && region != providers.MirrorFallback {
		if err := r.run("reflector",
			"--country", region,
			"--protocol", "https",
			"--latest", "20",
			"--sort", "rate",
			"--save", "/etc/pacman.d/mirrorlist"); err != nil {
			return err
		}
	}

	return r.run("pacstrap", append([]string{"-K", r.Paths.TargetRoot}, r.basePackages(plan)...)...)
}

// basePackages assembles the pacstrap set from the kernel choice, boot
// mode, encryption and detected hardware.
func (r *Runner) basePackages(plan diskPlan) []string {
	kernel := r.answer(answers.Kernel)
	if kernel == "" {
		kernel = "linux"
	}

	pkgs := []string{
		"base",
		kernel,
		"linux-firmware",
		"networkmanager",
		"grub",
		"sudo",
	}
	if plan.UEFI {
		pkgs = append(pkgs, "efibootmgr")
	}
	if plan.Encrypted {
		pkgs = append(pkgs, "cryptsetup", "lvm2")
	}
	if r.Context.System.HasAMDCPU {
		pkgs = append(pkgs, "amd-ucode")
	}
	if r.Context.System.HasIntelCPU {
		pkgs = append(pkgs, "intel-ucode")
	}
	return pkgs
}

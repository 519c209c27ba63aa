package installer

import (
	"fmt"

	inserr "github.com/instantos/ins/pkg/errors"
)

// runBootloader installs grub for the detected boot mode and generates
// its configuration. Runs inside the target root.
func (r *Runner) runBootloader() error {
	plan := r.plan()

	if plan.Encrypted {
		if err := r.configureEncryptedBoot(plan); err != nil {
			return err
		}
	}

	if plan.UEFI {
		if err := r.run("grub-install",
			"--target=x86_64-efi",
			"--efi-directory=/boot",
			"--bootloader-id=instantOS"); err != nil {
			return err
		}
	} else {
		if plan.Disk == "" {
			return inserr.New(inserr.ErrValidation, "no installation disk selected")
		}
		if err := r.run("grub-install", "--target=i386-pc", plan.Disk); err != nil {
			return err
		}
	}

	return r.run("grub-mkconfig", "-o", "/boot/grub/grub.cfg")
}

// configureEncryptedBoot teaches the initramfs and grub about the LUKS
// container so the system can prompt for the passphrase at boot.
func (r *Runner) configureEncryptedBoot(plan diskPlan) error {
	luks := partitionName(plan.Disk, 2)

	cmds := []string{
		"sed -i 's/^HOOKS=.*/HOOKS=(base udev autodetect modconf kms keyboard keymap consolefont block encrypt lvm2 filesystems fsck)/' /etc/mkinitcpio.conf",
		fmt.Sprintf(
			"sed -i 's|^GRUB_CMDLINE_LINUX=.*|GRUB_CMDLINE_LINUX=\"cryptdevice=%s:%s root=%s\"|' /etc/default/grub",
			luks, luksMapperName, lvRootPath),
	}
	for _, c := range cmds {
		if err := r.bash(c); err != nil {
			return err
		}
	}
	return r.run("mkinitcpio", "-P")
}

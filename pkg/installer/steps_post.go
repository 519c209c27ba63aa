package installer

import (
	"fmt"

	"github.com/instantos/ins/pkg/answers"
	"github.com/instantos/ins/pkg/executor"
)

// runPost enables services and applies the optional system features:
// desktop profile, Plymouth splash, autologin, log upload marker. Runs
// inside the target root.
func (r *Runner) runPost() error {
	if err := r.run("systemctl", "enable", "NetworkManager"); err != nil {
		return err
	}

	minimal := r.Context.GetAnswerBool(answers.MinimalMode)
	if !minimal {
		if err := r.installDesktop(); err != nil {
			return err
		}
		if r.Context.GetAnswerBool(answers.UsePlymouth) {
			if err := r.enablePlymouth(); err != nil {
				return err
			}
		}
		if r.Context.GetAnswerBool(answers.Autologin) {
			if err := r.enableAutologin(); err != nil {
				return err
			}
		}
	}

	if r.Context.GetAnswerBool(answers.LogUpload) {
		if err := r.bash("mkdir -p /etc/instant && touch /etc/instant/logupload"); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) installDesktop() error {
	if err := r.run("pacman", "--sync", "--noconfirm", "--needed", "instantos"); err != nil {
		return err
	}
	return r.run("systemctl", "enable", "lightdm")
}

func (r *Runner) enablePlymouth() error {
	if err := r.run("pacman", "--sync", "--noconfirm", "--needed", "plymouth"); err != nil {
		return err
	}
	cmds := []string{
		"sed -i 's/^HOOKS=(base udev/HOOKS=(base udev plymouth/' /etc/mkinitcpio.conf",
		"sed -i 's/^GRUB_CMDLINE_LINUX_DEFAULT=\"/GRUB_CMDLINE_LINUX_DEFAULT=\"quiet splash /' /etc/default/grub",
	}
	for _, c := range cmds {
		if err := r.bash(c); err != nil {
			return err
		}
	}
	if err := r.run("mkinitcpio", "-P"); err != nil {
		return err
	}
	return r.run("grub-mkconfig", "-o", "/boot/grub/grub.cfg")
}

// enableAutologin writes a getty override for tty1. The desktop session
// picks the user up from there.
func (r *Runner) enableAutologin() error {
	username := r.answer(answers.Username)
	override := fmt.Sprintf(
		"[Service]\nExecStart=\nExecStart=-/usr/bin/agetty --autologin %s --noclear %%I $TERM\n",
		username)
	if err := r.run("mkdir", "-p", "/etc/systemd/system/getty@tty1.service.d"); err != nil {
		return err
	}
	return r.Exec.RunWithInput(
		executor.Cmd("tee", "/etc/systemd/system/getty@tty1.service.d/autologin.conf"),
		override)
}

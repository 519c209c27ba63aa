package installer

import (
	"fmt"

	"github.com/instantos/ins/pkg/answers"
	inserr "github.com/instantos/ins/pkg/errors"
	"github.com/instantos/ins/pkg/executor"
)

// runConfig applies timezone, locale, keymap, hostname and accounts.
// Runs inside the target root.
func (r *Runner) runConfig() error {
	if err := r.configClock(); err != nil {
		return err
	}
	if err := r.configLocale(); err != nil {
		return err
	}
	if err := r.configHostname(); err != nil {
		return err
	}
	return r.configAccounts()
}

func (r *Runner) configClock() error {
	tz := r.answer(answers.Timezone)
	if tz == "" {
		return inserr.New(inserr.ErrValidation, "no timezone selected")
	}
	if err := r.run("ln", "-sf", "/usr/share/zoneinfo/"+tz, "/etc/localtime"); err != nil {
		return err
	}
	return r.run("hwclock", "--systohc")
}

func (r *Runner) configLocale() error {
	locale := r.answer(answers.Locale)
	if locale == "" {
		locale = "en_US.UTF-8"
	}
	cmds := []string{
		fmt.Sprintf("sed -i 's/^#%s/%s/' /etc/locale.gen", locale, locale),
		fmt.Sprintf("echo 'LANG=%s' > /etc/locale.conf", locale),
	}
	for _, c := range cmds {
		if err := r.bash(c); err != nil {
			return err
		}
	}
	if err := r.run("locale-gen"); err != nil {
		return err
	}

	if keymap := r.answer(answers.Keymap); keymap != "" {
		return r.bash(fmt.Sprintf("echo 'KEYMAP=%s' > /etc/vconsole.conf", keymap))
	}
	return nil
}

func (r *Runner) configHostname() error {
	hostname := r.answer(answers.Hostname)
	if hostname == "" {
		return inserr.New(inserr.ErrValidation, "no hostname set")
	}
	if err := r.bash(fmt.Sprintf("echo '%s' > /etc/hostname", hostname)); err != nil {
		return err
	}
	hosts := fmt.Sprintf(
		"127.0.0.1 localhost\n::1 localhost\n127.0.1.1 %s.localdomain %s\n",
		hostname, hostname)
	return r.Exec.RunWithInput(executor.Cmd("tee", "/etc/hosts"), hosts)
}

// configAccounts creates the primary user and sets both passwords. The
// passwords go to chpasswd on stdin, never into argv.
func (r *Runner) configAccounts() error {
	username := r.answer(answers.Username)
	password := r.answer(answers.Password)
	if username == "" || password == "" {
		return inserr.New(inserr.ErrValidation, "user account answers are incomplete")
	}

	if err := r.run("useradd", "--create-home", "--groups", "wheel", username); err != nil {
		return err
	}
	credentials := fmt.Sprintf("root:%s\n%s:%s\n", password, username, password)
	if err := r.Exec.RunWithInput(executor.Cmd("chpasswd"), credentials); err != nil {
		return err
	}
	return r.bash("echo '%wheel ALL=(ALL:ALL) ALL' > /etc/sudoers.d/10-wheel")
}

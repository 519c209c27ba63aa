package arch

// Message constants
const (
	MsgShort = "Execute the install plan"
	MsgLong  = `The 'arch' commands replay a plan written by 'ins ask'. Steps run in a
fixed order (disk, base, fstab, config, bootloader, post), record their
completion on disk, and are skipped on re-run. Steps that need the new
root re-execute themselves inside arch-chroot automatically.`

	MsgExecShort = "Run a single install step"
	MsgExecLong  = `Run exactly one install step against the plan. Completed steps are
skipped; missing dependencies fail unless --dry-run is given.`
	MsgExecExample = `  # Partition and mount the target disk
  ins arch exec disk --config /etc/instant/installconfig.toml

  # Preview the bootloader step
  ins arch exec bootloader --dry-run`

	MsgInstallShort = "Run all install steps in order"
	MsgInstallLong  = `Run every install step in order, resuming after the last completed one.
With --dry-run the full command plan is printed instead of executed.`
	MsgInstallExample = `  ins arch install --config /etc/instant/installconfig.toml
  ins arch install --dry-run`

	MsgFlagConfig = "Path to the install plan (default from settings)"
	MsgFlagDryRun = "Print commands instead of executing them"

	MsgErrNeedRoot  = "this command must be run as root"
	MsgForcedDryRun = "Dry-run forced by %s"
)

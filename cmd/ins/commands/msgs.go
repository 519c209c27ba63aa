package commands

// Message constants
const (
	MsgRootShort = "The instantOS Arch installer"
	MsgRootLong  = `ins walks you through an Arch Linux installation: it asks every
question up front, saves the answers as a reproducible TOML plan, and then
replays that plan as a sequence of resumable install steps.

Run 'ins ask' on the live system to build the plan, then 'ins arch install'
to execute it. Both commands support --dry-run.`

	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"

	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
)

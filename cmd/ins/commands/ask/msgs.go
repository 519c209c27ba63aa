package ask

// Message constants
const (
	MsgShort = "Answer the installation questions"
	MsgLong  = `The 'ask' command runs the interactive wizard. It detects the machine,
asks every applicable question, and writes the finished plan as a TOML
file that 'ins arch install' can replay.

An existing plan at the output path offers a resume: answered questions
are kept and the wizard continues at the first unanswered one.`

	MsgExample = `  # Run the full wizard
  ins ask

  # Write the plan somewhere else
  ins ask --output-config /root/plan.toml

  # Ask a single question and print the answer
  ins ask --id Timezone`

	MsgFlagOutputConfig = "Path for the written install plan (default from settings)"
	MsgFlagID           = "Ask exactly one question by id and print the answer"

	MsgErrNeedRoot = "this command must be run as root"
	MsgAborted     = "Installation aborted."
	MsgPlanWritten = "Install plan written to %s\n"

	MsgSavedPrompt     = "A saved install plan was found"
	MsgSavedUnreadable = "Saved install plan at %s could not be read, starting fresh"
	MsgSavedUse    = "Use saved answers"
	MsgSavedFresh  = "Start fresh"
	MsgSavedCancel = "Cancel"
)

package questions

import (
	"context"

	"github.com/instantos/ins/pkg/answers"
	"github.com/instantos/ins/pkg/chooser"
)

// HostnameQuestion asks for the machine name.
type HostnameQuestion struct{ Base }

// NewHostnameQuestion creates the hostname question
func NewHostnameQuestion() *HostnameQuestion {
	return &HostnameQuestion{Base{QID: answers.Hostname}}
}

// Validate implements Question
func (q *HostnameQuestion) Validate(_ *answers.Context, answer string) error {
	return ValidateHostname(answer)
}

// Ask implements Question
func (q *HostnameQuestion) Ask(_ context.Context, ctx *answers.Context, ch chooser.Chooser) (string, error) {
	current, _ := ctx.GetAnswer(q.ID())
	return ch.Input(promptHostname, current)
}

// UsernameQuestion asks for the primary user's name.
type UsernameQuestion struct{ Base }

// NewUsernameQuestion creates the username question
func NewUsernameQuestion() *UsernameQuestion {
	return &UsernameQuestion{Base{QID: answers.Username}}
}

// Validate implements Question
func (q *UsernameQuestion) Validate(_ *answers.Context, answer string) error {
	return ValidateUsername(answer)
}

// Ask implements Question
func (q *UsernameQuestion) Ask(_ context.Context, ctx *answers.Context, ch chooser.Chooser) (string, error) {
	current, _ := ctx.GetAnswer(q.ID())
	return ch.Input(promptUsername, current)
}

// passwordAsk runs the masked prompt-and-repeat loop shared by the user
// password and the encryption passphrase.
func passwordAsk(ch chooser.Chooser, prompt, repeatPrompt string) (string, error) {
	for {
		first, err := ch.Password(prompt)
		if err != nil {
			return "", err
		}
		if err := ValidatePassword(first); err != nil {
			ch.Message(err.Error())
			continue
		}
		second, err := ch.Password(repeatPrompt)
		if err != nil {
			return "", err
		}
		if first == second {
			return first, nil
		}
		ch.Message("Passwords do not match, try again")
	}
}

// PasswordQuestion asks for the primary user's password.
type PasswordQuestion struct{ Base }

// NewPasswordQuestion creates the user password question
func NewPasswordQuestion() *PasswordQuestion {
	return &PasswordQuestion{Base{QID: answers.Password}}
}

// Sensitive implements Question
func (q *PasswordQuestion) Sensitive() bool { return true }

// Validate implements Question
func (q *PasswordQuestion) Validate(_ *answers.Context, answer string) error {
	return ValidatePassword(answer)
}

// Ask implements Question
func (q *PasswordQuestion) Ask(_ context.Context, _ *answers.Context, ch chooser.Chooser) (string, error) {
	return passwordAsk(ch, promptPassword, promptPasswordRepeat)
}

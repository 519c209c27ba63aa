package chooser

import (
	"fmt"
	"sync"
)

// Reply is one scripted response for the ScriptChooser.
type Reply struct {
	// Value is the answer for Select/Input/Password prompts
	Value string
	// Yes is the answer for Confirm prompts
	Yes bool
	// Cancel makes the prompt return ErrCancelled instead
	Cancel bool
}

// ScriptChooser replays a fixed sequence of replies. It records every
// prompt it is shown, which lets tests assert on wizard flow without a
// terminal. Running out of script is a test failure surfaced as an error.
type ScriptChooser struct {
	mu       sync.Mutex
	replies  []Reply
	Prompts  []string
	Messages []string
}

// NewScriptChooser creates a chooser that will play back replies in order
func NewScriptChooser(replies ...Reply) *ScriptChooser {
	return &ScriptChooser{replies: replies}
}

// Append adds more replies to the end of the script
func (s *ScriptChooser) Append(replies ...Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, replies...)
}

func (s *ScriptChooser) next(prompt string) (Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Prompts = append(s.Prompts, prompt)
	if len(s.replies) == 0 {
		return Reply{}, fmt.Errorf("script exhausted at prompt %q", prompt)
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	return r, nil
}

// Select implements Chooser
func (s *ScriptChooser) Select(prompt string, options []string) (string, error) {
	r, err := s.next(prompt)
	if err != nil {
		return "", err
	}
	if r.Cancel {
		return "", ErrCancelled
	}
	return r.Value, nil
}

// Input implements Chooser
func (s *ScriptChooser) Input(prompt, defaultValue string) (string, error) {
	r, err := s.next(prompt)
	if err != nil {
		return "", err
	}
	if r.Cancel {
		return "", ErrCancelled
	}
	if r.Value == "" {
		return defaultValue, nil
	}
	return r.Value, nil
}

// Password implements Chooser
func (s *ScriptChooser) Password(prompt string) (string, error) {
	r, err := s.next(prompt)
	if err != nil {
		return "", err
	}
	if r.Cancel {
		return "", ErrCancelled
	}
	return r.Value, nil
}

// Confirm implements Chooser
func (s *ScriptChooser) Confirm(prompt string) (bool, error) {
	r, err := s.next(prompt)
	if err != nil {
		return false, err
	}
	if r.Cancel {
		return false, ErrCancelled
	}
	return r.Yes, nil
}

// Message implements Chooser
func (s *ScriptChooser) Message(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = append(s.Messages, text)
}

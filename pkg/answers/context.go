// Package answers holds the install context: the answer map keyed by
// QuestionID, the detected system snapshot and the typed side-channel that
// data providers publish reference data into. The context is the single
// source of truth for both the wizard and the install step runner.
package answers

import (
	"strconv"

	"github.com/instantos/ins/pkg/sysinfo"
)

// Context accumulates everything the wizard learns. Answers are always
// strings; booleans are "true"/"false" and sizes are decimal byte counts.
// The side-channel store is process-local and never serialized.
type Context struct {
	answers map[QuestionID]string
	System  sysinfo.SystemInfo
	Data    *Store
}

// NewContext creates an empty context with a fresh side-channel store
func NewContext() *Context {
	return &Context{
		answers: make(map[QuestionID]string),
		Data:    NewStore(),
	}
}

// GetAnswer returns the stored answer for id, if present
func (c *Context) GetAnswer(id QuestionID) (string, bool) {
	v, ok := c.answers[id]
	return v, ok
}

// IsAnswered reports whether id has an answer
func (c *Context) IsAnswered(id QuestionID) bool {
	_, ok := c.answers[id]
	return ok
}

// GetAnswerBool parses a boolean answer. Missing or malformed answers
// read as false.
func (c *Context) GetAnswerBool(id QuestionID) bool {
	v, ok := c.answers[id]
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}

// GetAnswerUint64 parses a numeric answer (e.g. a byte count)
func (c *Context) GetAnswerUint64(id QuestionID) (uint64, bool) {
	v, ok := c.answers[id]
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Insert stores an answer for id
func (c *Context) Insert(id QuestionID, value string) {
	c.answers[id] = value
}

// Remove deletes the answer for id
func (c *Context) Remove(id QuestionID) {
	delete(c.answers, id)
}

// AnswerCount returns the number of stored answers
func (c *Context) AnswerCount() int {
	return len(c.answers)
}

// Answers returns a copy of the answer map
func (c *Context) Answers() map[QuestionID]string {
	out := make(map[QuestionID]string, len(c.answers))
	for k, v := range c.answers {
		out[k] = v
	}
	return out
}

package answers

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	inserr "github.com/instantos/ins/pkg/errors"
	"github.com/instantos/ins/pkg/sysinfo"
)

// configFile is the on-disk shape of a persisted context. Unknown keys in
// the file are ignored on load for forward compatibility. The side-channel
// store is deliberately absent.
type configFile struct {
	Answers    map[string]string  `toml:"answers"`
	SystemInfo sysinfo.SystemInfo `toml:"system_info"`
}

// ToTOML serializes the context. Sensitive answers are written as-is;
// redaction is a review-UI concern, not a persistence one.
func (c *Context) ToTOML() ([]byte, error) {
	cf := configFile{
		Answers:    make(map[string]string, len(c.answers)),
		SystemInfo: c.System,
	}
	for id, v := range c.answers {
		cf.Answers[string(id)] = v
	}
	data, err := toml.Marshal(cf)
	if err != nil {
		return nil, inserr.Wrap(err, inserr.ErrConfigWrite, "failed to serialize install config")
	}
	return data, nil
}

// FromTOML parses a persisted context. Answer keys that do not match a
// known QuestionID are dropped; the file may come from a newer ins.
func FromTOML(data []byte) (*Context, error) {
	var cf configFile
	if err := toml.Unmarshal(data, &cf); err != nil {
		return nil, inserr.Wrap(err, inserr.ErrConfigParse, "failed to parse install config")
	}

	ctx := NewContext()
	ctx.System = cf.SystemInfo
	for key, v := range cf.Answers {
		id, err := ParseQuestionID(key)
		if err != nil {
			continue
		}
		ctx.Insert(id, v)
	}
	return ctx, nil
}

// SaveFile writes the context to path, creating parent directories
func (c *Context) SaveFile(path string) error {
	data, err := c.ToTOML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return inserr.Wrapf(err, inserr.ErrConfigWrite, "failed to create directory for %s", path)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return inserr.Wrapf(err, inserr.ErrConfigWrite, "failed to write %s", path)
	}
	return nil
}

// LoadFile reads a persisted context from path
func LoadFile(path string) (*Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, inserr.Wrapf(err, inserr.ErrConfigLoad, "failed to read %s", path)
	}
	return FromTOML(data)
}

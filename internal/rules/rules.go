package rules

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"renamer/internal/action"
)

// File is a parsed rule file. Pointer fields are nil when the file leaves the
// setting to flags and config.
type File struct {
	Actions   []string `yaml:"actions"`
	Filter    string   `yaml:"filter,omitempty"`
	Result    string   `yaml:"result,omitempty"`
	Partial   *bool    `yaml:"partial,omitempty"`
	Basename  *bool    `yaml:"basename,omitempty"`
	Recursive *bool    `yaml:"recursive,omitempty"`
}

// Load reads and validates the rule file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}
	file, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rule file %s: %w", path, err)
	}
	return file, nil
}

// Parse decodes rule file contents. Unknown keys and invalid actions are
// errors.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("rule file is empty")
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(file.Actions) == 0 {
		return nil, errors.New("rule file lists no actions")
	}
	if _, err := action.ParseAll(file.Actions); err != nil {
		return nil, err
	}
	return &file, nil
}

// Save writes file to path, creating parent directories.
func Save(path string, file *File) error {
	data, err := Marshal(file)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create rule file directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write rule file: %w", err)
	}
	return nil
}

// Marshal renders a rule file.
func Marshal(file *File) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk override format for request defaults.
type FileConfig struct {
	BaseURL         string            `yaml:"baseUrl,omitempty"`
	Timeout         int               `yaml:"timeout,omitempty"` // milliseconds
	FollowRedirects *bool             `yaml:"followRedirects,omitempty"`
	Headers         map[string]string `yaml:"headers,omitempty"`
}

// ConfigFilenames contains the possible config file names, checked in
// order.
var ConfigFilenames = []string{
	".reqspec.yaml",
	".reqspec.yml",
	"reqspec.yaml",
}

// LoadFile loads a config file from the specified path, or searches the
// current directory when path is empty.
func LoadFile(path string) (*FileConfig, error) {
	if path != "" {
		return loadFromFile(path)
	}
	return FindAndLoad(".")
}

// FindAndLoad searches for a config file in the given directory. When no
// file exists it returns an empty FileConfig, not an error.
func FindAndLoad(dir string) (*FileConfig, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadFromFile(configPath)
		}
	}
	return &FileConfig{}, nil
}

func loadFromFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fc := &FileConfig{}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return nil, err
	}
	return fc, nil
}

// Apply writes the file's values into a store. Unset fields leave the
// store untouched.
func (fc *FileConfig) Apply(s *Store) {
	if fc.BaseURL != "" {
		s.SetBaseURL(fc.BaseURL)
	}
	if fc.Timeout > 0 {
		s.SetTimeout(time.Duration(fc.Timeout) * time.Millisecond)
	}
	if fc.FollowRedirects != nil {
		s.SetFollowRedirects(*fc.FollowRedirects)
	}
	if len(fc.Headers) > 0 {
		s.SetHeaders(fc.Headers)
	}
}

// BoolPtr returns a pointer to a bool value.
func BoolPtr(b bool) *bool {
	return &b
}

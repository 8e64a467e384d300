// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file read when --config is not given.
// It is optional.
const DefaultConfigFile = ".fetch.yaml"

// FileConfig is the content of a fetch config file. Every field is
// optional.
type FileConfig struct {
	BaseURL         string            `yaml:"baseURL"`
	Timeout         string            `yaml:"timeout"`
	Headers         map[string]string `yaml:"headers"`
	RequestIDHeader string            `yaml:"requestIDHeader"`
	Rate            float64           `yaml:"rate"`
	HTTP2           *bool             `yaml:"http2"`
	NoColor         *bool             `yaml:"noColor"`
	Verbose         *bool             `yaml:"verbose"`
}

func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// TimeoutDuration parses the Timeout field. An empty Timeout gives zero,
// meaning the fetcher default applies.
func (c *FileConfig) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q in config: %w", c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q in config: must be positive", c.Timeout)
	}
	return d, nil
}

// Header returns the configured headers as an http.Header.
func (c *FileConfig) Header() http.Header {
	h := make(http.Header, len(c.Headers))
	for k, v := range c.Headers {
		h.Set(k, v)
	}
	return h
}

// LoadConfig reads the config file at path. If path is empty,
// DefaultConfigFile is read if it exists, and an empty config is
// returned if it does not.
func LoadConfig(path string) (*FileConfig, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return &FileConfig{}, nil
	} else if err != nil {
		return nil, err
	}

	var c FileConfig
	if err = yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	if _, err = c.TimeoutDuration(); err != nil {
		return nil, err
	}
	if c.Rate < 0 {
		return nil, fmt.Errorf("invalid rate %v in config: must not be negative", c.Rate)
	}

	return &c, nil
}

// ParseHeaders parses "Name: value" strings, as given to the --header
// flag, into h. Repeated names add values.
func ParseHeaders(h http.Header, lines []string) error {
	for _, line := range lines {
		i := strings.IndexByte(line, ':')
		if i < 0 {
			return fmt.Errorf("invalid header %q: expected Name: value", line)
		}
		name := strings.TrimSpace(line[:i])
		if name == "" {
			return fmt.Errorf("invalid header %q: empty name", line)
		}
		h.Add(name, strings.TrimSpace(line[i+1:]))
	}
	return nil
}

// ReadData resolves the value of the --data flag. A value starting with
// @ names a file whose content is the body; "@-" reads standard input.
func ReadData(data string, stdin io.Reader) ([]byte, error) {
	if !strings.HasPrefix(data, "@") {
		return []byte(data), nil
	}
	name := data[1:]
	if name == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name)
}

package main

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// matrix is the YAML test-case matrix ddmin-bench loads: one entry
// per bug, naming the file, the checked command, and which
// algorithms/caches to run it against.
type matrix struct {
	Results string      `yaml:"results"`
	Cases   []caseEntry `yaml:"cases"`
}

type caseEntry struct {
	File       string   `yaml:"file"`
	Command    string   `yaml:"command"`
	Args       []string `yaml:"args"`
	Match      string   `yaml:"match"`
	Timeout    duration `yaml:"timeout"`
	Algorithms []string `yaml:"algorithms"`
	Caches     []string `yaml:"caches"`
	Skip       bool     `yaml:"skip"`
}

type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return errors.Wrapf(err, "parse timeout %q", s)
	}
	*d = duration(parsed)
	return nil
}

func loadMatrix(path string) (matrix, error) {
	var m matrix
	data, err := os.ReadFile(path)
	if err != nil {
		return m, errors.Wrapf(err, "read matrix %s", path)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, errors.Wrapf(err, "decode matrix %s", path)
	}
	return m, nil
}

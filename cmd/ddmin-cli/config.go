package main

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// config is the optional YAML file ddmin-cli accepts for the fields
// that would otherwise need a long flag list. Fields set in the file
// override the flags; the checked command is taken from the file only
// when no positional arguments were given.
type config struct {
	Algorithm string   `yaml:"algorithm"`
	Cache     string   `yaml:"cache"`
	Parser    string   `yaml:"parser"`
	Timeout   duration `yaml:"timeout"`
	Command   string   `yaml:"command"`
	Args      []string `yaml:"args"`
}

// duration lets the YAML file spell timeouts as "5s" instead of
// nanosecond integers.
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

func loadConfig(path string) (config, error) {
	var cfg config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "decode config %s", path)
	}
	return cfg, nil
}

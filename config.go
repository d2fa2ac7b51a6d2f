package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const configName = "gonf.toml"

// Config represents a gonf.toml file.
type Config struct {
	Machine     MachineConfig `toml:"machine"`
	REPL        REPLConfig    `toml:"repl"`
	Prelude     *bool         `toml:"prelude"`
	Init        []string      `toml:"init"`
	HaltOnError bool          `toml:"halt-on-error"`
	Trace       bool          `toml:"trace"`

	// Dir is the directory containing the config file; relative Init paths
	// are resolved against it.
	Dir string `toml:"-"`
}

// MachineConfig sizes the machine's fixed storage; zero values keep defaults.
type MachineConfig struct {
	DataStack      int  `toml:"data-stack"`
	StatementStack int  `toml:"statement-stack"`
	CompileBuffer  int  `toml:"compile-buffer"`
	MemLimit       uint `toml:"mem-limit"`
}

// REPLConfig configures interactive prompts.
type REPLConfig struct {
	Prompt         string `toml:"prompt"`
	ContinuePrompt string `toml:"continue-prompt"`
}

// LoadConfig parses the config file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	cfg.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig loads gonf.toml from dir if there is one, otherwise returns a
// default config.
func FindConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configName)
	if _, err := os.Stat(path); err == nil {
		return LoadConfig(path)
	}
	var cfg Config
	cfg.Dir = dir
	cfg.setDefaults()
	return &cfg, nil
}

func (cfg *Config) setDefaults() {
	if cfg.Machine.DataStack == 0 {
		cfg.Machine.DataStack = defaultDataStackSize
	}
	if cfg.Machine.StatementStack == 0 {
		cfg.Machine.StatementStack = defaultStmtStackSize
	}
	if cfg.Machine.CompileBuffer == 0 {
		cfg.Machine.CompileBuffer = defaultCompBufSize
	}
	if cfg.REPL.Prompt == "" {
		cfg.REPL.Prompt = ">>> "
	}
	if cfg.REPL.ContinuePrompt == "" {
		cfg.REPL.ContinuePrompt = "... "
	}
	if cfg.Prelude == nil {
		prelude := true
		cfg.Prelude = &prelude
	}
}

// InitPaths returns the init file paths, resolved against Dir.
func (cfg *Config) InitPaths() []string {
	paths := make([]string, len(cfg.Init))
	for i, path := range cfg.Init {
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.Dir, path)
		}
		paths[i] = path
	}
	return paths
}

// Options returns VM options for the machine and prompt settings.
func (cfg *Config) Options() []VMOption {
	return []VMOption{
		WithDataStackSize(cfg.Machine.DataStack),
		WithStatementStackSize(cfg.Machine.StatementStack),
		WithCompileBufferSize(cfg.Machine.CompileBuffer),
		WithMemLimit(cfg.Machine.MemLimit),
		WithPrompts(cfg.REPL.Prompt, cfg.REPL.ContinuePrompt),
		WithPrelude(*cfg.Prelude),
		WithHaltOnError(cfg.HaltOnError),
	}
}

// Package config holds the compiler-wide options the Resolver and
// Verifier consult: whether implicit typing is permitted, whether a
// semantic error drops the offending entity and continues or aborts the
// pass, whether the Verifier checks ExternalSymbol coherence, and where
// `use`d modules are searched for on disk.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CompilerOptions is the top-level configuration document, loaded from a
// YAML file named on the command line (or defaulted when none is given).
type CompilerOptions struct {
	ImplicitTyping    bool     `yaml:"implicit_typing"`
	ContinueOnError   bool     `yaml:"continue_on_error"`
	CheckExternal     bool     `yaml:"check_external"`
	ModuleSearchPaths []string `yaml:"module_search_paths"`
}

// Default returns the conservative option set: implicit typing off (an
// undeclared name is an error, matching modern Fortran style guides),
// continue-on-error off (the first semantic error aborts the pass), and
// external-symbol checking on.
func Default() *CompilerOptions {
	return &CompilerOptions{
		ImplicitTyping:    false,
		ContinueOnError:   false,
		CheckExternal:     true,
		ModuleSearchPaths: []string{"."},
	}
}

// Load reads and parses a YAML configuration file at path. Fields absent
// from the document keep Default's values.
func Load(path string) (*CompilerOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	opts := Default()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return opts, nil
}

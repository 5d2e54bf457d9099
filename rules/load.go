package rules

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// Format is the syntax of a rule file.
type Format string

const (
	FormatYAML Format = "yaml"
	// FormatJSON accepts JSON with comments and trailing commas.
	FormatJSON Format = "json"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".hujson", ".jsonc":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported rule file extension %q", filepath.Ext(path))
	}
}

type ruleFile struct {
	Rules []Definition `yaml:"rules" json:"rules"`
}

// Parse decodes rule definitions without compiling them.
func Parse(data []byte, format Format) ([]Definition, error) {
	var f ruleFile
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode yaml rules: %w", err)
		}
	case FormatJSON:
		std, err := hujson.Standardize(data)
		if err != nil {
			return nil, fmt.Errorf("decode json rules: %w", err)
		}
		if err := json.Unmarshal(std, &f); err != nil {
			return nil, fmt.Errorf("decode json rules: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown rule format %q", format)
	}
	return f.Rules, nil
}

// Load reads and compiles a rule file. The format follows the extension.
func Load(path string) ([]Rule, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	defs, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	rs, err := Compile(defs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

//go:embed default.yaml
var defaultRules []byte

var loadDefault = sync.OnceValues(func() ([]Rule, error) {
	defs, err := Parse(defaultRules, FormatYAML)
	if err != nil {
		return nil, err
	}
	return Compile(defs)
})

// Default returns the built-in English rule table.
func Default() []Rule {
	rs, err := loadDefault()
	if err != nil {
		panic("rules: built-in rule table: " + err.Error())
	}
	return slices.Clone(rs)
}

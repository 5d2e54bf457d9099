// Package rules holds the interval-pair rule table used by the pair matcher.
//
// A rule's extraction pattern is matched against a sentence in which every
// interval has been replaced by a marker "<TX3_n>", n being the interval's
// position in the sentence. The normalization expression "group(i)-group(j)"
// names the capture groups holding the start and end marker numbers.
package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var ErrInvalidRule = errors.New("invalid interval rule")

// Marker returns the placeholder for the index-th interval of a sentence.
func Marker(index int) string {
	return "<TX3_" + strconv.Itoa(index) + ">"
}

// Definition is a rule as written in a rule file.
type Definition struct {
	Name          string `yaml:"name" json:"name"`
	Extraction    string `yaml:"extraction" json:"extraction"`
	Normalization string `yaml:"normalization" json:"normalization"`
}

// Rule is a compiled interval-pair rule.
type Rule struct {
	Name       string
	Pattern    *regexp.Regexp
	StartGroup int
	EndGroup   int
}

// Validate checks that both groups exist in the pattern.
func (r Rule) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidRule)
	}
	if r.Pattern == nil {
		return fmt.Errorf("%w %q: missing pattern", ErrInvalidRule, r.Name)
	}
	n := r.Pattern.NumSubexp()
	for _, g := range []int{r.StartGroup, r.EndGroup} {
		if g < 1 || g > n {
			return fmt.Errorf("%w %q: group %d not in pattern with %d groups", ErrInvalidRule, r.Name, g, n)
		}
	}
	return nil
}

// Compile compiles a single definition.
func (d Definition) Compile() (Rule, error) {
	if d.Name == "" {
		return Rule{}, fmt.Errorf("%w: missing name", ErrInvalidRule)
	}

	pattern, err := regexp.Compile(d.Extraction)
	if err != nil {
		return Rule{}, fmt.Errorf("%w %q: extraction: %w", ErrInvalidRule, d.Name, err)
	}
	start, end, err := ParseNormalization(d.Normalization)
	if err != nil {
		return Rule{}, fmt.Errorf("%w %q: normalization: %w", ErrInvalidRule, d.Name, err)
	}

	r := Rule{Name: d.Name, Pattern: pattern, StartGroup: start, EndGroup: end}
	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// Compile compiles definitions in order. Rule names must be unique.
func Compile(defs []Definition) ([]Rule, error) {
	seen := make(map[string]bool, len(defs))
	out := make([]Rule, 0, len(defs))
	for _, d := range defs {
		if seen[d.Name] {
			return nil, fmt.Errorf("%w %q: duplicate name", ErrInvalidRule, d.Name)
		}
		seen[d.Name] = true

		r, err := d.Compile()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Package rules loads and runs rewrite rule files.
//
// A rule file is a YAML document listing substitutions that are applied to
// a text in order, each one seeing the output of the one before:
//
//	advance: rune
//	rules:
//	  - name: dates
//	    pattern: '(\d+)-(\d+)-(\d+)'
//	    template: '\3/\2/\1'
//	    global: true
//	  - pattern: 'colou?r'
//	    template: 'hue'
//	    ignore_case: true
//	    max: 1
//
// Unknown keys are rejected so that a misspelled option does not silently
// change a rewrite.
package rules

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/coregx/resub"
	"github.com/coregx/resub/pattern"
)

// File is the decoded form of a rule file.
type File struct {
	// Advance is "rune" (default) or "byte"; see resub.Advance.
	Advance string `yaml:"advance"`
	Rules   []Rule `yaml:"rules"`
}

// Rule is one substitution.
type Rule struct {
	Name     string `yaml:"name"`
	Pattern  string `yaml:"pattern"`
	Template string `yaml:"template"`

	// Global replaces every match instead of the first.
	Global bool `yaml:"global"`

	// Max caps the replacements of a global rule; zero means no limit.
	Max int `yaml:"max"`

	// Engine forces a matcher: auto, literal, stdlib, backtrack or re2.
	Engine string `yaml:"engine"`

	IgnoreCase bool `yaml:"ignore_case"`
	Multiline  bool `yaml:"multiline"`
	DotNL      bool `yaml:"dotnl"`
}

// describe names r in messages.
func (r Rule) describe(i int) string {
	if r.Name != "" {
		return fmt.Sprintf("rule %d (%s)", i+1, r.Name)
	}
	return fmt.Sprintf("rule %d", i+1)
}

// Parse decodes a rule file.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	f := new(File)
	if err := dec.Decode(f); err != nil {
		if err == io.EOF {
			return nil, errors.New("rule file is empty")
		}
		return nil, errors.Wrap(err, "could not parse rule file")
	}
	return f, nil
}

// Load reads and decodes the rule file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read rule file %s", path)
	}
	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return f, nil
}

// PatternConfig returns the compile options of r.
func (r Rule) PatternConfig() (pattern.Config, error) {
	config := pattern.DefaultConfig()
	config.CaseInsensitive = r.IgnoreCase
	config.Multiline = r.Multiline
	config.DotNL = r.DotNL
	if r.Engine != "" {
		s, ok := pattern.ParseStrategy(r.Engine)
		if !ok {
			return config, errors.Errorf("unknown engine %q", r.Engine)
		}
		config.Strategy = s
	}
	return config, nil
}

// compiled is a rule ready to run.
type compiled struct {
	Rule
	label  string
	re     *pattern.Regexp
	engine *resub.Engine
}

// Set is a compiled rule file. It is safe for concurrent use.
type Set struct {
	rules []compiled
}

// Compile compiles every rule and checks every template, so a broken rule
// is reported before any text is rewritten.
func (f *File) Compile() (*Set, error) {
	advance := resub.AdvanceRune
	if f.Advance != "" {
		a, ok := resub.ParseAdvance(f.Advance)
		if !ok {
			return nil, errors.Errorf("unknown advance mode %q", f.Advance)
		}
		advance = a
	}
	if len(f.Rules) == 0 {
		return nil, errors.New("rule file has no rules")
	}

	set := &Set{rules: make([]compiled, 0, len(f.Rules))}
	for i, r := range f.Rules {
		label := r.describe(i)
		if r.Max < 0 {
			return nil, errors.Errorf("%s: max must not be negative", label)
		}
		if r.Max > 0 && !r.Global {
			return nil, errors.Errorf("%s: max requires global", label)
		}

		config, err := r.PatternConfig()
		if err != nil {
			return nil, errors.Wrap(err, label)
		}
		re, err := pattern.CompileWithConfig(r.Pattern, config)
		if err != nil {
			return nil, errors.Wrap(err, label)
		}
		if err := resub.CheckTemplate(r.Template, re); err != nil {
			return nil, errors.Wrap(err, label)
		}

		engineConfig := resub.DefaultConfig()
		engineConfig.Advance = advance
		engineConfig.MaxReplacements = r.Max
		engine, err := resub.New(engineConfig)
		if err != nil {
			return nil, errors.Wrap(err, label)
		}

		logrus.WithFields(logrus.Fields{
			"rule":     label,
			"pattern":  r.Pattern,
			"strategy": re.Strategy(),
			"groups":   re.NumGroups(),
		}).Debug("compiled rule")
		set.rules = append(set.rules, compiled{Rule: r, label: label, re: re, engine: engine})
	}
	return set, nil
}

// Len returns the number of rules.
func (s *Set) Len() int {
	return len(s.rules)
}

// Apply runs every rule over subject in order. It returns the final text
// and the number of replacements each rule made.
func (s *Set) Apply(subject []byte) ([]byte, []int, error) {
	counts := make([]int, len(s.rules))
	text := subject
	for i, r := range s.rules {
		var (
			n   int
			err error
		)
		if r.Global {
			text, n, err = r.engine.GlobalReplace(text, r.re, r.Template)
		} else {
			var ok bool
			text, ok, err = r.engine.Replace(text, r.re, r.Template)
			if ok {
				n = 1
			}
		}
		if err != nil {
			// Templates were checked in Compile; this is a bug.
			return nil, nil, errors.Wrap(err, r.label)
		}
		counts[i] = n
		logrus.WithFields(logrus.Fields{
			"rule":         r.label,
			"replacements": n,
		}).Debug("applied rule")
	}
	return text, counts, nil
}

// Stats returns the engine statistics of each rule.
func (s *Set) Stats() []resub.Stats {
	stats := make([]resub.Stats, len(s.rules))
	for i, r := range s.rules {
		stats[i] = r.engine.Stats()
	}
	return stats
}

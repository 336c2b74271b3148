package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/coregx/resub"
	"github.com/coregx/resub/internal/input"
	"github.com/coregx/resub/internal/rules"
	"github.com/coregx/resub/pattern"
)

// compile builds the pattern described by the match flags and checks the
// template against it.
func compile(c *cli.Context) (*pattern.Regexp, string, error) {
	expr := c.String("pattern")
	if expr == "" {
		return nil, "", cli.NewExitError("missing --pattern", exitError)
	}
	template := c.String("template")

	config := pattern.DefaultConfig()
	config.CaseInsensitive = c.Bool("ignore-case")
	config.Multiline = c.Bool("multiline")
	config.DotNL = c.Bool("dotnl")
	config.MatchTimeout = c.Duration("timeout")
	strategy, ok := pattern.ParseStrategy(c.String("engine"))
	if !ok {
		return nil, "", cli.NewExitError(fmt.Sprintf("unknown engine %q", c.String("engine")), exitError)
	}
	config.Strategy = strategy

	re, err := pattern.CompileWithConfig(expr, config)
	if err != nil {
		return nil, "", cli.NewExitError(err.Error(), exitError)
	}
	if err := resub.CheckTemplate(template, re); err != nil {
		return nil, "", cli.NewExitError(err.Error(), exitError)
	}
	logrus.WithFields(logrus.Fields{
		"pattern":  expr,
		"strategy": re.Strategy(),
		"groups":   re.NumGroups(),
	}).Debug("compiled pattern")
	return re, template, nil
}

// withInput loads the input named by the first argument and passes it to fn.
// The input stays valid until fn returns.
func withInput(c *cli.Context, fn func(subject []byte) error) error {
	src, err := input.Open(c.Args().First())
	if err == input.ErrInteractive {
		return cli.NewExitError(err.Error(), exitError)
	}
	if err != nil {
		return err
	}
	defer src.Close()
	logrus.WithFields(logrus.Fields{
		"input": src.Name,
		"bytes": len(src.Data),
	}).Debug("loaded input")
	return fn(src.Data)
}

func write(c *cli.Context, out []byte) error {
	if _, err := c.App.Writer.Write(out); err != nil {
		return errors.Wrap(err, "could not write output")
	}
	return nil
}

// finish reports an unmatched input when --fail-on-no-match is set.
func finish(c *cli.Context, matched bool) error {
	if !matched && c.Bool("fail-on-no-match") {
		return cli.NewExitError("", exitNoMatch)
	}
	return nil
}

func logStats(engine *resub.Engine) {
	s := engine.Stats()
	logrus.WithFields(logrus.Fields{
		"attempts":     s.MatchAttempts,
		"matches":      s.Matches,
		"empty":        s.EmptyMatches,
		"replacements": s.Replacements,
	}).Debug("engine stats")
}

func runReplace(c *cli.Context) error {
	re, template, err := compile(c)
	if err != nil {
		return err
	}
	engine := resub.MustNew(resub.DefaultConfig())
	return withInput(c, func(subject []byte) error {
		out, ok, err := engine.Replace(subject, re, template)
		if err != nil {
			return err
		}
		logStats(engine)
		if err := write(c, out); err != nil {
			return err
		}
		return finish(c, ok)
	})
}

func runGlobalReplace(c *cli.Context) error {
	re, template, err := compile(c)
	if err != nil {
		return err
	}
	config := resub.DefaultConfig()
	if c.Bool("bytewise") {
		config.Advance = resub.AdvanceByte
	}
	config.MaxReplacements = c.Int("max")
	engine, err := resub.New(config)
	if err != nil {
		return cli.NewExitError(err.Error(), exitError)
	}
	return withInput(c, func(subject []byte) error {
		out, n, err := engine.GlobalReplace(subject, re, template)
		if err != nil {
			return err
		}
		logrus.WithField("replacements", n).Info("rewrote input")
		logStats(engine)
		if err := write(c, out); err != nil {
			return err
		}
		return finish(c, n > 0)
	})
}

func runExtract(c *cli.Context) error {
	re, template, err := compile(c)
	if err != nil {
		return err
	}
	engine := resub.MustNew(resub.DefaultConfig())
	return withInput(c, func(subject []byte) error {
		out, ok, err := engine.Extract(subject, re, template)
		if err != nil {
			return err
		}
		logStats(engine)
		if ok {
			if err := write(c, append(out, '\n')); err != nil {
				return err
			}
		}
		return finish(c, ok)
	})
}

func runCheck(c *cli.Context) error {
	re, template, err := compile(c)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "strategy: %v\ngroups: %d\nmax reference: %d\n",
		re.Strategy(), re.NumGroups(), resub.MaxSubmatch(template))
	if lits := re.Literals(); lits != nil {
		fmt.Fprintf(c.App.Writer, "literals: %d\n", len(lits))
	}
	return nil
}

func runApply(c *cli.Context) error {
	path := c.String("rules")
	if path == "" {
		return cli.NewExitError("missing --rules", exitError)
	}
	f, err := rules.Load(path)
	if err != nil {
		return cli.NewExitError(err.Error(), exitError)
	}
	set, err := f.Compile()
	if err != nil {
		return cli.NewExitError(err.Error(), exitError)
	}
	logrus.WithField("rules", set.Len()).Debug("loaded rule file")

	return withInput(c, func(subject []byte) error {
		out, counts, err := set.Apply(subject)
		if err != nil {
			return err
		}
		total := 0
		for _, n := range counts {
			total += n
		}
		logrus.WithFields(logrus.Fields{
			"rules":        set.Len(),
			"replacements": total,
		}).Info("applied rule file")
		return write(c, out)
	})
}

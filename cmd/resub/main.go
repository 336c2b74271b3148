// Command resub rewrites text with RE2-style substitution templates.
//
// Usage:
//
//	resub gsub -p '(\w+)@(\w+)' -t '\2 at \1' mail.txt
//	resub replace -p 'colou?r' -t hue -i < in.txt
//	resub extract -p '(\d+)-(\d+)-(\d+)' -t '\3/\2/\1' dates.txt
//	resub check -p '(a)(b)' -t '\2\1'
//	resub apply -r rules.yaml in.txt
//
// Text is read from the named file or from standard input and the result is
// written to standard output.
package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

// Exit codes.
const (
	exitError   = 1
	exitNoMatch = 2
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logrus.Error(err)
		os.Exit(exitError)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "resub"
	app.Usage = "rewrite text with regular expression substitution templates"
	app.Version = "0.1.0"
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "log-level",
			Value:  "warning",
			Usage:  "log level: debug, info, warning, error",
			EnvVar: "RESUB_LOG_LEVEL",
		},
	}
	app.Before = func(c *cli.Context) error {
		return setupLogging(c.GlobalString("log-level"), c.App.ErrWriter)
	}

	matchFlags := []cli.Flag{
		cli.StringFlag{Name: "pattern,p", Usage: "regular expression"},
		cli.StringFlag{Name: "template,t", Usage: `replacement template (\0-\9, \\)`},
		cli.BoolFlag{Name: "ignore-case,i", Usage: "match without regard to case"},
		cli.BoolFlag{Name: "multiline,m", Usage: "^ and $ match at line boundaries"},
		cli.BoolFlag{Name: "dotnl,s", Usage: "let . match newline"},
		cli.StringFlag{Name: "engine", Value: "auto", Usage: "matcher: auto, literal, stdlib, backtrack, re2"},
		cli.DurationFlag{Name: "timeout", Usage: "time limit per match attempt on the backtrack engine"},
	}
	noMatchFlag := cli.BoolFlag{
		Name:  "fail-on-no-match",
		Usage: "exit with status 2 when nothing matched",
	}

	app.Commands = []cli.Command{
		{
			Name:      "replace",
			Usage:     "replace the first match",
			ArgsUsage: "[file]",
			Flags:     append(matchFlags, noMatchFlag),
			Action:    runReplace,
		},
		{
			Name:      "gsub",
			Aliases:   []string{"global"},
			Usage:     "replace every match",
			ArgsUsage: "[file]",
			Flags: append(matchFlags, noMatchFlag,
				cli.BoolFlag{Name: "bytewise", Usage: "step over single bytes after empty matches"},
				cli.IntFlag{Name: "max", Usage: "stop after this many replacements (0 = all)"},
			),
			Action: runGlobalReplace,
		},
		{
			Name:      "extract",
			Usage:     "print only the expansion of the first match",
			ArgsUsage: "[file]",
			Flags:     append(matchFlags, noMatchFlag),
			Action:    runExtract,
		},
		{
			Name:   "check",
			Usage:  "compile a pattern and validate a template without reading input",
			Flags:  matchFlags,
			Action: runCheck,
		},
		{
			Name:      "apply",
			Usage:     "run the rules of a YAML rule file in order",
			ArgsUsage: "[file]",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "rules,r", Usage: "rule file"},
			},
			Action: runApply,
		},
	}
	return app
}

func setupLogging(level string, w io.Writer) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return cli.NewExitError(err.Error(), exitError)
	}
	logrus.SetOutput(w)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return nil
}

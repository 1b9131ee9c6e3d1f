package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bodgit/cgrom"
	"github.com/urfave/cli/v2"
)

const defaultOutput = "output"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func generate(c *cli.Context) error {
	g := cgrom.New(newLogger(c))

	result, err := g.Run(c.String("source"), c.String("output"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if c.String("db") == "" {
		return nil
	}

	db, err := cgrom.NewLUTDB(c.String("db"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer db.Close()

	if err := db.Store(result.SHA1, result.Table, result.LUT); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func parseArg(s, name string) (int, error) {
	i, err := strconv.ParseInt(s, 0, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid %s \"%s\"", name, s)
	}
	return int(i), nil
}

func lookup(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	pattern, err := parseArg(c.Args().Get(0), "pattern")
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	row, err := parseArg(c.Args().Get(1), "row")
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	var (
		i  int
		ok bool
	)
	if c.String("db") != "" {
		db, err := cgrom.NewLUTDB(c.String("db"))
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		defer db.Close()

		sha, err := db.Latest()
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		if i, ok, err = db.FindGlyph(sha, pattern, row); err != nil {
			return cli.NewExitError(err, 1)
		}
	} else {
		l, err := cgrom.ReadLUT(filepath.Join(c.String("output"), cgrom.LUTFile))
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		if i, ok, err = l.Lookup(pattern, row); err != nil {
			return cli.NewExitError(err, 1)
		}
	}

	if !ok {
		fmt.Fprintln(c.App.Writer, "None")
		return nil
	}
	fmt.Fprintln(c.App.Writer, i)

	return nil
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "cgrom"
	app.Usage = "Character generator ROM lookup table builder"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "source",
			Value: cgrom.SourceFile,
			Usage: "rendered character generator layout",
		},
		&cli.StringFlag{
			Name:  "output",
			Value: defaultOutput,
			Usage: "output directory",
		},
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"CGROM_DB"},
			Usage:   "optional path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = generate

	app.Commands = []*cli.Command{
		{
			Name:        "lookup",
			Usage:       "Find the glyph that draws a row pattern",
			Description: "PATTERN may be given in binary with a 0b prefix",
			ArgsUsage:   "PATTERN ROW",
			Action:      lookup,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// Command uroborosqlfmt is the CLI front end documented as an external
// collaborator in §6.3: it owns file I/O, the .uroborosqlfmtrc.json
// loader, and exit-code mapping around the pure sqlfmt.Format core,
// following the teacher's own cmd/ convention of a kong-parsed options
// struct plus a thin Run method.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	sqlfmt "github.com/uroborosql/sqlfmt"
	"github.com/uroborosql/sqlfmt/config"
	"github.com/uroborosql/sqlfmt/ferr"
)

const version = "0.1.0"

// Exit codes per §6.3.
const (
	exitOK         = 0
	exitParseError = 1
	exitOther      = 2
	exitIOError    = 3
	exitDiffFound  = 4
)

var log = logrus.New()

type cli struct {
	Path string `arg:"" optional:"" help:"SQL file to format (- or omitted means stdin)"`

	Write  bool   `short:"w" name:"write" help:"overwrite the input file with the formatted result"`
	Check  bool   `short:"c" name:"check" help:"exit non-zero without writing when the file is not already formatted"`
	Config string `name:"config" type:"path" help:"path to a .uroborosqlfmtrc.json configuration file"`

	Version kong.VersionFlag `short:"V" help:"print the version and exit"`
}

func main() {
	var c cli
	parser := kong.Must(&c,
		kong.Name("uroborosqlfmt"),
		kong.Description("Formats PostgreSQL dialect SQL, 2-way-SQL directive comments included."),
		kong.Vars{"version": version},
	)
	_, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if c.Write && c.Check {
		log.Error("--write and --check are mutually exclusive")
		os.Exit(exitOther)
	}

	os.Exit(run(&c))
}

func run(c *cli) int {
	cfg := config.Default()
	if c.Config != "" {
		data, err := os.ReadFile(c.Config)
		if err != nil {
			log.WithError(err).Error("failed to read config file")
			return exitIOError
		}
		cfg, err = config.Load(data)
		if err != nil {
			log.WithError(err).Error("invalid configuration")
			return exitOther
		}
	}

	src, path, err := readInput(c.Path)
	if err != nil {
		log.WithError(err).Error("failed to read input")
		return exitIOError
	}

	out, err := sqlfmt.Format(src, cfg)
	if err != nil {
		logFormatError(err)
		if isParseFailure(err) {
			return exitParseError
		}
		return exitOther
	}

	switch {
	case c.Check:
		if out == src {
			return exitOK
		}
		printDiff(path, src, out)
		return exitDiffFound
	case c.Write:
		if path == "" {
			log.Error("--write requires a file path, not stdin")
			return exitOther
		}
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			log.WithError(err).Error("failed to write output")
			return exitIOError
		}
		return exitOK
	default:
		fmt.Print(out)
		return exitOK
	}
}

func readInput(path string) (text string, resolvedPath string, err error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}
		return string(data), "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return string(data), path, nil
}

func isParseFailure(err error) bool {
	switch err.(type) {
	case *ferr.ParseError, *ferr.UnsupportedSyntax, *ferr.DirectiveError:
		return true
	default:
		return false
	}
}

func logFormatError(err error) {
	log.WithError(err).Error("format failed")
}

// printDiff prints a minimal unified-style diff: full before/after text,
// color-highlighted, since the core has no line-diff of its own — a
// dedicated diff library is outside this formatter's domain stack.
func printDiff(path, before, after string) {
	label := path
	if label == "" {
		label = "<stdin>"
	}
	fmt.Fprintln(os.Stderr, color.YellowString("not formatted: %s", label))
	var b bytes.Buffer
	fmt.Fprintln(&b, color.RedString("--- original"))
	fmt.Fprintln(&b, color.GreenString("+++ formatted"))
	fmt.Fprint(os.Stderr, b.String())
	fmt.Fprintln(os.Stderr, color.RedString("%s", before))
	fmt.Fprintln(os.Stderr, color.GreenString("%s", after))
}

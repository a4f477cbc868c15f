package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/sergev/vispel/log"
	"github.com/sergev/vispel/runtime"
)

// Description is the one-line summary shown in usage text.
const Description = "A small C-like scripting language with closures and lists."

// CLI is the top-level command line of the interpreter.
type CLI struct {
	Log     logConfig     `embed:"" group:"log" prefix:"log-"`
	Profile profileConfig `embed:"" group:"profile"`

	Config   string `default:"${configFile}"  help:"YAML configuration file."                                  type:"path"`
	DiagFile string `default:"${diagFile}"    help:"Append diagnostics to this file (empty disables)."`
	Color    bool   `default:"true"           help:"Highlight diagnostics when stderr is a terminal."          negatable:""`
	History  string `default:"${historyFile}" help:"REPL history file (empty disables)."`
	MaxDepth int    `default:"10000"          help:"Maximum depth of nested function calls."`

	File string `arg:"" help:"Script to run, or '-' to read stdin. Starts the REPL when omitted." optional:""`

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Run parses args and runs the interpreter. The exit function is called by
// kong for --help and usage errors.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	cli := CLI{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	configFile := configPath(configFileName)
	if path, ok := configFlag(args); ok {
		configFile = path
	}

	vars := kong.Vars{
		"configFile":  configFile,
		"diagFile":    cachePath(diagnosticsLog),
		"historyFile": cachePath(historyName),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Profile.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(Name),
		kong.Description(Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{cli.Log.group(), cli.Profile.group()}),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		kong.Configuration(loadYAML, configFile),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start()
	defer cli.Profile.start()()

	return ktx.Run()
}

// Run executes the selected script, or the REPL when none is given.
func (c *CLI) Run(ctx context.Context) error {
	diags, err := log.NewDiagnostics(c.stderr,
		log.WithDiagFile(c.DiagFile),
		log.WithDiagColor(c.Color),
		log.WithDiagLogger(log.Default()),
	)
	if err != nil {
		return err
	}
	defer diags.Close()

	sess, err := runtime.NewSession(
		runtime.WithInput(c.stdin),
		runtime.WithOutput(c.stdout),
		runtime.WithReporter(diags),
		runtime.WithLogger(log.Default()),
		runtime.WithMaxDepth(c.MaxDepth),
	)
	if err != nil {
		return err
	}

	switch {
	case c.File == "-":
		_, err = sess.RunReader(c.stdin)
	case c.File != "":
		_, err = sess.RunFile(c.File)
	case log.IsTerminal(c.stdin):
		err = runInteractive(ctx, sess, c.History, c.stdout)
	default:
		_, err = sess.RunReader(c.stdin)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", Name, err)
	}
	return nil
}

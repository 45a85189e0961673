package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/op/go-logging"
	"github.com/spf13/cobra"

	"smin/internal/logger"
	"smin/internal/minifier"
	"smin/internal/ui"
)

// Version is set by ldflags during build
var Version = "dev"

var log = logging.MustGetLogger("cmd")

var verbose bool

var rootCmd = newRootCmd()

// options holds the root command's flags and positional arguments.
type options struct {
	input   string
	output  string
	append  bool
	newline bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "smin [input] [output]",
		Short: "Minify SQL-like source text",
		Long: ui.Divider() + "\n" + ui.Banner() + "\n" + ui.VersionLine(Version) + "\n\n" + ui.Divider() + "\n\n" +
			"  Strips comments and collapses whitespace while keeping quoted strings\n" +
			"  and dot-command lines intact.\n\n" +
			"  If -a is used instead of -o then output is appended to the output file.\n" +
			"  If the input or output file is omitted, stdin and/or stdout are used.",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Setup(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.positional(args); err != nil {
				return &usageError{err}
			}
			return runMinify(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.VarP(&fileFlag{path: &opts.input, what: "input"}, "input", "i", "input file (default stdin)")
	flags.VarP(&fileFlag{path: &opts.output, what: "output"}, "output", "o", "output file, truncated (default stdout)")
	flags.VarP(&fileFlag{path: &opts.output, appendMode: &opts.append, what: "output"}, "append", "a", "output file, appended to")
	flags.BoolVarP(&opts.newline, "newline", "n", false, "add a new line at the end")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &usageError{err}
	})

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// positional fills the input, then the output, from bare arguments.
func (o *options) positional(args []string) error {
	for _, arg := range args {
		switch {
		case o.input == "":
			o.input = arg
		case o.output == "":
			o.output = arg
		default:
			return errors.New("too many arguments")
		}
	}
	return nil
}

func runMinify(cmd *cobra.Command, opts *options) (err error) {
	in, out, closeAll, err := openStreams(cmd, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeAll(); err == nil {
			err = cerr
		}
	}()

	res, err := minifier.Run(in, out, opts.newline)
	if err != nil {
		return err
	}
	log.Debugf("read %d bytes, wrote %d bytes", res.Read, res.Written)
	return nil
}

// Execute runs the command line and exits with its status
func Execute() {
	os.Exit(run(rootCmd, os.Args[1:]))
}

// run executes root with args and returns the process exit status.
// Errors and an explicit request for help are failures.
func run(root *cobra.Command, args []string) int {
	root.SetArgs(normalizeArgs(args))

	cmd, err := root.ExecuteC()
	if err != nil {
		ui.PrintError("%v", err)
		var ue *usageError
		if errors.As(err, &ue) {
			fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
		}
		return 1
	}

	if cmd == root {
		if help, _ := cmd.Flags().GetBool("help"); help {
			return 1
		}
	}
	return 0
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "smin %s\n", Version)
		},
	}
}

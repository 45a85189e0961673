package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"smin/internal/minifier"
	"smin/internal/ui"
)

var (
	watchInterval time.Duration
	watchNewline  bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <input> <output>",
	Short: "Re-minify a file every time it changes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, output := args[0], args[1]
		if watchInterval <= 0 {
			return &usageError{errors.New("--interval must be positive")}
		}
		if _, err := os.Stat(input); err != nil {
			return fmt.Errorf("cannot watch %s: %w", input, err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ui.PrintInfo("Watching %s for changes...", input)
		ui.PrintInfo("Press Ctrl+C to stop")

		w := &watcher{
			input:    input,
			output:   output,
			newline:  watchNewline,
			interval: watchInterval,
			onBuild: func(res minifier.Result, err error) {
				if err != nil {
					ui.PrintError("Minify failed: %v", err)
					return
				}
				ui.PrintSuccess("%s → %s (%s saved)", input, output, ui.Size(res.Saved()))
			},
		}
		err := w.run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

// watcher polls a file and minifies it to output whenever its size or
// modification time changes. The first poll always builds.
type watcher struct {
	input    string
	output   string
	newline  bool
	interval time.Duration
	onBuild  func(minifier.Result, error)

	lastMod  time.Time
	lastSize int64
}

func (w *watcher) run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.poll(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// poll rebuilds if the input changed. A vanished input is waited for, not
// treated as fatal, since editors often replace files on save.
func (w *watcher) poll() error {
	info, err := os.Stat(w.input)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.ModTime().Equal(w.lastMod) && info.Size() == w.lastSize {
		return nil
	}
	w.lastMod = info.ModTime()
	w.lastSize = info.Size()

	log.Debugf("change detected in %s", w.input)
	res, err := minifyFile(w.input, w.output, w.newline)
	if w.onBuild != nil {
		w.onBuild(res, err)
	}
	return nil
}

// minifyFile minifies input into output, truncating output first.
func minifyFile(input, output string, newline bool) (res minifier.Result, err error) {
	in, err := os.Open(input)
	if err != nil {
		return res, err
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		return res, err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	return minifier.Run(in, out, newline)
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 500*time.Millisecond, "how often to check for changes")
	watchCmd.Flags().BoolVarP(&watchNewline, "newline", "n", false, "add a new line at the end")
	rootCmd.AddCommand(watchCmd)
}

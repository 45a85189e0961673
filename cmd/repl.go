package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"smin/internal/minifier"
	"smin/internal/ui"
)

const (
	historyFile = ".smin_history"
	promptMain  = "smin> "
)

// prompter is the part of liner.State the REPL loop needs.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Minify lines as you type them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ui.PrintInfo("smin %s, one line at a time. Ctrl+D or :quit exits.", Version)

		ln := liner.NewLiner()
		defer ln.Close()
		ln.SetCtrlCAborts(true)

		histPath := ""
		if home, err := os.UserHomeDir(); err == nil {
			histPath = filepath.Join(home, historyFile)
			if f, err := os.Open(histPath); err == nil {
				_, _ = ln.ReadHistory(f)
				_ = f.Close()
			}
		}
		defer func() {
			if histPath == "" {
				return
			}
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()

		return replLoop(ln, cmd.OutOrStdout())
	},
}

// replLoop prints the minified form of each line until end of input, an
// aborted prompt or :quit. Each line is minified on its own.
func replLoop(p prompter, out io.Writer) error {
	for {
		line, err := p.Prompt(promptMain)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case trimmed == ":quit":
			return nil
		case strings.HasPrefix(trimmed, ":"):
			fmt.Fprintln(out, "unknown command. Type :quit to exit.")
			continue
		}

		fmt.Fprintln(out, minifier.String(line))
		p.AppendHistory(line)
	}
}

func init() {
	rootCmd.AddCommand(replCmd)
}

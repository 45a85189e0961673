package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"smin/internal/ui"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for smin.

To load completions:

Bash:
  $ source <(smin completion bash)

Zsh:
  $ smin completion zsh > "${fpath[1]}/_smin"

Fish:
  $ smin completion fish | source

PowerShell:
  PS> smin completion powershell | Out-String | Invoke-Expression

Or let smin pick your shell and install it:
  $ smin completion install
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		default:
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
	},
}

// completionTarget says where a shell's completion script lives and what,
// if anything, must be added to its rc file to load it.
type completionTarget struct {
	dir        string
	file       string
	rcFile     string
	sourceLine string
}

func completionTargetFor(shell, home string) (completionTarget, error) {
	switch shell {
	case "zsh":
		dir := filepath.Join(home, ".zsh", "completions")
		return completionTarget{
			dir:        dir,
			file:       filepath.Join(dir, "_smin"),
			rcFile:     filepath.Join(home, ".zshrc"),
			sourceLine: fmt.Sprintf("\nfpath=(%s $fpath)\nautoload -Uz compinit && compinit\n", dir),
		}, nil
	case "bash":
		dir := filepath.Join(home, ".bash_completion.d")
		file := filepath.Join(dir, "smin")
		return completionTarget{
			dir:        dir,
			file:       file,
			rcFile:     filepath.Join(home, ".bashrc"),
			sourceLine: fmt.Sprintf("\n[ -f %s ] && source %s\n", file, file),
		}, nil
	case "fish":
		// Fish auto-loads from its completions dir
		dir := filepath.Join(home, ".config", "fish", "completions")
		return completionTarget{dir: dir, file: filepath.Join(dir, "smin.fish")}, nil
	}
	return completionTarget{}, fmt.Errorf("auto-install not supported for %q, use 'smin completion <shell>' instead", shell)
}

var completionInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install shell completion for your current shell",
	RunE: func(cmd *cobra.Command, args []string) error {
		shell := detectShell(os.Getenv("SHELL"))
		if shell == "" {
			return errors.New("could not detect shell, use 'smin completion [bash|zsh|fish|powershell]' instead")
		}

		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not find home directory: %w", err)
		}

		target, err := completionTargetFor(shell, home)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(target.dir, 0755); err != nil {
			return fmt.Errorf("failed to create completion directory: %w", err)
		}

		f, err := os.Create(target.file)
		if err != nil {
			return fmt.Errorf("failed to create completion file: %w", err)
		}
		switch shell {
		case "zsh":
			err = rootCmd.GenZshCompletion(f)
		case "bash":
			err = rootCmd.GenBashCompletion(f)
		case "fish":
			err = rootCmd.GenFishCompletion(f, true)
		}
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("failed to write completion file: %w", err)
		}
		ui.PrintSuccess("Installed completion script to %s", target.file)

		if target.rcFile == "" {
			return nil
		}
		rcContent, _ := os.ReadFile(target.rcFile)
		if strings.Contains(string(rcContent), target.file) || strings.Contains(string(rcContent), target.dir) {
			return nil
		}
		rc, err := os.OpenFile(target.rcFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
		if err != nil {
			ui.PrintWarning("Could not update %s: %v", target.rcFile, err)
			ui.PrintInfo("Please add manually: %s", target.sourceLine)
			return nil
		}
		defer rc.Close()
		if _, err := rc.WriteString(target.sourceLine); err != nil {
			return fmt.Errorf("failed to update %s: %w", target.rcFile, err)
		}
		ui.PrintSuccess("Updated %s", target.rcFile)
		ui.PrintInfo("Restart your shell or run: source %s", target.rcFile)
		return nil
	},
}

func detectShell(shell string) string {
	for _, name := range []string{"zsh", "bash", "fish"} {
		if strings.Contains(shell, name) {
			return name
		}
	}
	return ""
}

func init() {
	completionCmd.AddCommand(completionInstallCmd)
	rootCmd.AddCommand(completionCmd)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"smin/internal/builder"
	"smin/internal/config"
	"smin/internal/ui"
)

var (
	buildConfig string
	buildQuiet  bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Minify every file selected by smin.properties or smin.yaml",
	Long: "Minify every file selected by the project file in the current directory.\n\n" +
		"Project keys: include, exclude, output, suffix, newline.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !buildQuiet {
			fmt.Fprintln(ui.Out)
			fmt.Fprintln(ui.Out, ui.Divider())
			fmt.Fprintln(ui.Out, ui.Banner())
			fmt.Fprintln(ui.Out, ui.VersionLine(Version))
			fmt.Fprintln(ui.Out)
			fmt.Fprintln(ui.Out, ui.Divider())
			fmt.Fprintln(ui.Out)
		}

		project, err := loadProject(buildConfig)
		if err != nil {
			return err
		}

		b := builder.New(project)
		b.Quiet = buildQuiet

		summary, err := b.Build()
		if err != nil {
			return fmt.Errorf("build failed: %w", err)
		}

		if len(summary.Files) == 0 {
			ui.PrintWarning("No files matched %v", project.Include)
			return nil
		}

		if !buildQuiet {
			fmt.Fprintln(ui.Out)
			fmt.Fprintln(ui.Out, ui.Divider())
			fmt.Fprintln(ui.Out)
			ui.PrintKeyValue("Files", fmt.Sprintf("%d", len(summary.Files)))
			ui.PrintKeyValue("Before", ui.Size(summary.Read))
			ui.PrintKeyValue("After", ui.Size(summary.Written))
			fmt.Fprintln(ui.Out)
		}
		ui.PrintSuccess("Build complete, saved %s (%s)", ui.Size(summary.Saved()), ui.Percent(summary.Saved(), summary.Read))
		return nil
	},
}

// loadProject reads the project file at path, or the one in the current
// directory when path is empty.
func loadProject(path string) (*config.Project, error) {
	if path != "" {
		return config.LoadProjectFile(path)
	}

	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	if !config.Exists(dir) {
		return nil, fmt.Errorf("no %s or %s found in %s", config.PropertiesFile, config.YAMLFile, dir)
	}
	return config.LoadProject(dir)
}

func init() {
	buildCmd.Flags().StringVarP(&buildConfig, "config", "c", "", "project file to use instead of the one in the current directory")
	buildCmd.Flags().BoolVarP(&buildQuiet, "quiet", "q", false, "only print the summary line")
	rootCmd.AddCommand(buildCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dtabridge/internal/cli/styles"
)

var aboutShort bool

var aboutCmd = &cobra.Command{
	Use:     "about",
	Aliases: []string{"version"},
	Short:   "Show version and build information",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		if aboutShort {
			fmt.Fprintln(cmd.OutOrStdout(), app.BuildInfo.Version)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), styles.NewAboutRenderer(app.Theme).Render(app.BuildInfo))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(aboutCmd)
	aboutCmd.Flags().BoolVar(&aboutShort, "short", false, "print only the version")
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dtabridge/internal/cli/styles"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the host setup and diagnose issues",
	Long: `Doctor checks what the native messaging host depends on:

- the configuration file
- a folder chooser backend (zenity, kdialog, osascript, PowerShell)
- a writable temp directory for transfers started without a path
- the transfer journal database and its schema version

Examples:
  dtabridge doctor`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	report := app.NewDiagnostics().Run(app.Ctx())

	renderer := styles.NewDoctorRenderer(app.Theme)
	fmt.Println(renderer.Render(report))

	if !report.OK() {
		return fmt.Errorf("host requirements not met")
	}
	return nil
}

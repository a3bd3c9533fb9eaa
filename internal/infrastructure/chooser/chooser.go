// Package chooser provides folder pickers backed by the desktop's dialog tools:
// zenity or kdialog on Linux and the BSDs, osascript on macOS, PowerShell on Windows.
package chooser

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bnema/dtabridge/internal/application/port"
	"github.com/bnema/dtabridge/internal/logging"
)

// ErrUnavailable is returned by the chooser used when no dialog tool was found.
var ErrUnavailable = errors.New("no folder chooser available (install zenity or kdialog)")

// UnavailableName is what Unavailable reports as its backend name.
const UnavailableName = "none"

// Runner executes a dialog tool and returns its stdout.
type Runner func(ctx context.Context, bin string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, bin string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, bin, args...).Output()
}

// Adapter implements port.FolderChooser by running one dialog tool.
type Adapter struct {
	name string
	bin  string
	args func(defaultDir string) []string
	run  Runner
}

// Name returns the backend name.
func (a *Adapter) Name() string { return a.name }

// Choose runs the dialog. A non-zero exit or empty output means the user
// dismissed it.
func (a *Adapter) Choose(ctx context.Context, defaultDir string) (string, error) {
	log := logging.FromContext(ctx)

	out, err := a.run(ctx, a.bin, a.args(defaultDir)...)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Debug().Str("tool", a.name).Int("exit", exitErr.ExitCode()).Msg("folder dialog dismissed")
			return "", port.ErrNoSelection
		}
		return "", fmt.Errorf("%s: %w", a.name, err)
	}

	path := strings.TrimSpace(string(out))
	if path == "" {
		return "", port.ErrNoSelection
	}
	return filepath.Clean(path), nil
}

// Unavailable always fails; it keeps choose_folder answering with a
// fallback when nothing else can be used.
type Unavailable struct{}

func (Unavailable) Name() string { return UnavailableName }

func (Unavailable) Choose(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

// Detect picks the first dialog tool found for goos.
func Detect(goos string, lookPath func(string) (string, error)) port.FolderChooser {
	return detect(goos, lookPath, execRunner)
}

func detect(goos string, lookPath func(string) (string, error), run Runner) port.FolderChooser {
	for _, backend := range backendsFor(goos) {
		bin, err := lookPath(backend.bin)
		if err != nil {
			continue
		}
		return &Adapter{name: backend.name, bin: bin, args: backend.args, run: run}
	}
	return Unavailable{}
}

type backend struct {
	name string
	bin  string
	args func(defaultDir string) []string
}

func backendsFor(goos string) []backend {
	switch goos {
	case "darwin":
		return []backend{{name: "osascript", bin: "osascript", args: osascriptArgs}}
	case "windows":
		return []backend{
			{name: "powershell", bin: "powershell.exe", args: powershellArgs},
			{name: "pwsh", bin: "pwsh.exe", args: powershellArgs},
		}
	default:
		return []backend{
			{name: "zenity", bin: "zenity", args: zenityArgs},
			{name: "kdialog", bin: "kdialog", args: kdialogArgs},
		}
	}
}

func zenityArgs(defaultDir string) []string {
	args := []string{"--file-selection", "--directory", "--title=Select download folder"}
	if defaultDir != "" {
		// A trailing separator opens the dialog inside the directory.
		args = append(args, "--filename="+strings.TrimSuffix(defaultDir, "/")+"/")
	}
	return args
}

func kdialogArgs(defaultDir string) []string {
	args := []string{"--getexistingdirectory"}
	if defaultDir != "" {
		args = append(args, defaultDir)
	}
	return append(args, "--title", "Select download folder")
}

func osascriptArgs(defaultDir string) []string {
	script := `POSIX path of (choose folder with prompt "Select download folder"`
	if defaultDir != "" {
		script += ` default location POSIX file "` + appleScriptEscape(defaultDir) + `"`
	}
	return []string{"-e", script + ")"}
}

func appleScriptEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

func powershellArgs(defaultDir string) []string {
	script := "Add-Type -AssemblyName System.Windows.Forms;" +
		"$f = New-Object System.Windows.Forms.FolderBrowserDialog;"
	if defaultDir != "" {
		script += "$f.SelectedPath = '" + strings.ReplaceAll(defaultDir, "'", "''") + "';"
	}
	script += "if($f.ShowDialog() -eq [System.Windows.Forms.DialogResult]::OK){Write-Output $f.SelectedPath}"
	return []string{"-NoProfile", "-STA", "-Command", script}
}

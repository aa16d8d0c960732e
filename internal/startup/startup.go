package startup

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	label       = "com.pixpmusic.gopher-surface"
	displayName = "GopherSurface"
)

// Command is what the login session runs.
type Command struct {
	Exec string
	Args []string
}

// Self returns a Command running the current executable with args.
func Self(args ...string) (Command, error) {
	execPath, err := os.Executable()
	if err != nil {
		return Command{}, err
	}
	return Command{Exec: execPath, Args: args}, nil
}

// Enable registers cmd to launch at login
func Enable(cmd Command) error {
	switch runtime.GOOS {
	case "darwin":
		return writeFile(macOSPlistPath(), launchAgentPlist(cmd))
	case "linux":
		return writeFile(linuxDesktopPath(), desktopEntry(cmd))
	case "windows":
		return enableWindows(cmd)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// Disable removes the login entry. Removing a missing entry is not an error.
func Disable() error {
	switch runtime.GOOS {
	case "darwin":
		return removeFile(macOSPlistPath())
	case "linux":
		return removeFile(linuxDesktopPath())
	case "windows":
		return disableWindows()
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// IsEnabled checks if a login entry exists
func IsEnabled() bool {
	switch runtime.GOOS {
	case "darwin":
		return exists(macOSPlistPath())
	case "linux":
		return exists(linuxDesktopPath())
	case "windows":
		return exec.Command("reg", "query", windowsRegistryKey, "/v", displayName).Run() == nil
	default:
		return false
	}
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// --- macOS ---

func macOSPlistPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Library", "LaunchAgents", label+".plist")
}

func launchAgentPlist(cmd Command) string {
	var args strings.Builder
	for _, a := range append([]string{cmd.Exec}, cmd.Args...) {
		fmt.Fprintf(&args, "        <string>%s</string>\n", xmlEscape(a))
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>%s</string>
    <key>ProgramArguments</key>
    <array>
%s    </array>
    <key>RunAtLoad</key>
    <true/>
</dict>
</plist>
`, label, args.String())
}

var xmlReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&apos;")

func xmlEscape(s string) string { return xmlReplacer.Replace(s) }

// --- Linux ---

func linuxDesktopPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "autostart", "gopher-surface.desktop")
}

func desktopEntry(cmd Command) string {
	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Exec=%s
Terminal=false
Hidden=false
NoDisplay=true
X-GNOME-Autostart-enabled=true
`, displayName, desktopExec(cmd))
}

// desktopExec quotes every argument per the desktop entry Exec rules.
func desktopExec(cmd Command) string {
	parts := make([]string, 0, len(cmd.Args)+1)
	for _, a := range append([]string{cmd.Exec}, cmd.Args...) {
		if a != "" && !strings.ContainsAny(a, " \t\n\"'\\><~|&;$*?#()`%") {
			parts = append(parts, a)
			continue
		}
		a = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`).Replace(a)
		parts = append(parts, `"`+strings.ReplaceAll(a, "%", "%%")+`"`)
	}
	return strings.Join(parts, " ")
}

// --- Windows ---

const windowsRegistryKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func enableWindows(cmd Command) error {
	return exec.Command("reg", "add", windowsRegistryKey,
		"/v", displayName,
		"/t", "REG_SZ",
		"/d", windowsCommandLine(cmd),
		"/f").Run()
}

func disableWindows() error {
	output, err := exec.Command("reg", "delete", windowsRegistryKey, "/v", displayName, "/f").CombinedOutput()
	// Ignore error if the key doesn't exist
	if err != nil && !strings.Contains(string(output), "unable to find") {
		return err
	}
	return nil
}

func windowsCommandLine(cmd Command) string {
	parts := make([]string, 0, len(cmd.Args)+1)
	for _, a := range append([]string{cmd.Exec}, cmd.Args...) {
		if a == "" || strings.ContainsAny(a, " \t\"") {
			a = `"` + strings.ReplaceAll(a, `"`, `\"`) + `"`
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

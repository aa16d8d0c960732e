package startup

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesktopExecQuoting(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"plain", Command{Exec: "/usr/bin/gopher-surface"}, "/usr/bin/gopher-surface"},
		{"args", Command{Exec: "/bin/gs", Args: []string{"-config", "/etc/gs.toml"}}, "/bin/gs -config /etc/gs.toml"},
		{"spaces", Command{Exec: "/opt/My Apps/gs", Args: []string{"-config", "/home/a b/c.yaml"}},
			`"/opt/My Apps/gs" -config "/home/a b/c.yaml"`},
		{"percent", Command{Exec: "/bin/gs", Args: []string{"100%"}}, `/bin/gs "100%%"`},
		{"dollar", Command{Exec: "/bin/gs", Args: []string{"$HOME"}}, `/bin/gs "\$HOME"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, desktopExec(tt.cmd))
		})
	}
}

func TestLaunchAgentPlistListsArguments(t *testing.T) {
	plist := launchAgentPlist(Command{Exec: "/Applications/gs", Args: []string{"-config", "a&b.toml"}})
	assert.Contains(t, plist, "<string>"+label+"</string>")
	assert.Contains(t, plist, "        <string>/Applications/gs</string>\n        <string>-config</string>\n        <string>a&amp;b.toml</string>\n    </array>")
}

func TestWindowsCommandLine(t *testing.T) {
	cmd := Command{Exec: `C:\Program Files\gs.exe`, Args: []string{"-config", `C:\gs.toml`}}
	assert.Equal(t, `"C:\Program Files\gs.exe" -config C:\gs.toml`, windowsCommandLine(cmd))
}

func TestLinuxEnableDisable(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("desktop entries are linux only")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "autostart", "gopher-surface.desktop")

	assert.False(t, IsEnabled())
	require.NoError(t, Enable(Command{Exec: "/bin/gs", Args: []string{"-config", "/tmp/gs.toml"}}))
	assert.True(t, IsEnabled())
	assert.FileExists(t, path)

	require.NoError(t, Disable())
	assert.False(t, IsEnabled())
	require.NoError(t, Disable(), "disabling twice is fine")
}

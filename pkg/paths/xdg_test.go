package paths

import (
	"path/filepath"
	"testing"
)

func TestPortableRoot(t *testing.T) {
	root := t.TempDir()
	t.Setenv("TABLAUNCH_HOME", root)

	if got, want := ConfigDir(), filepath.Join(root, "config", AppName); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
	if got, want := DataDir(), filepath.Join(root, "data", AppName); got != want {
		t.Errorf("DataDir() = %q, want %q", got, want)
	}
	if got, want := DefaultLogPath(), filepath.Join(root, "data", AppName, "logs", LogFileName); got != want {
		t.Errorf("DefaultLogPath() = %q, want %q", got, want)
	}
}

func TestXDGOverrides(t *testing.T) {
	t.Setenv("TABLAUNCH_HOME", "")
	cfg := t.TempDir()
	data := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfg)
	t.Setenv("XDG_DATA_HOME", data)

	if got, want := ConfigDir(), filepath.Join(cfg, AppName); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
	if got, want := LogDir(), filepath.Join(data, AppName, "logs"); got != want {
		t.Errorf("LogDir() = %q, want %q", got, want)
	}
}

func TestHomeDirPrefersUserProfile(t *testing.T) {
	profile := t.TempDir()
	t.Setenv("USERPROFILE", profile)
	t.Setenv("HOME", t.TempDir())

	if got := HomeDir(); got != profile {
		t.Errorf("HomeDir() = %q, want %q", got, profile)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("USERPROFILE", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/src/api", filepath.Join(home, "src", "api")},
		{"~other/src", "~other/src"},
		{"/abs/path", "/abs/path"},
		{"rel/~/x", "rel/~/x"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExpandHome(tt.in); got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

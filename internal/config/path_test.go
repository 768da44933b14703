package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty", path: "", want: ""},
		{name: "plain path untouched", path: "/var/lib/copyshop.db", want: "/var/lib/copyshop.db"},
		{name: "tilde prefix", path: "~/data/copyshop.db", want: filepath.Join(home, "data/copyshop.db")},
		{name: "bare tilde", path: "~", want: home},
		{name: "env var", path: "$HOME/copyshop.db", want: home + "/copyshop.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.path); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestSessionPathNextToDatabase(t *testing.T) {
	got := SessionPath("/var/lib/copyshop/copyshop.db")
	if got != "/var/lib/copyshop/session.jwt" {
		t.Errorf("SessionPath = %q", got)
	}
}

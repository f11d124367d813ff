package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	icon := filepath.Join(dir, "icon.svg")
	doc := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><circle cx="12" cy="12" r="10"/></svg>`
	if err := os.WriteFile(icon, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	empty := filepath.Join(dir, "empty.svg")
	if err := os.WriteFile(empty, []byte(`<svg viewBox="0 0 1 1"></svg>`), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		code int
		want []string
	}{
		{"defaults", nil, 0, []string{"glyphs: ", "outline memo: "}},
		{"svg", []string{"-chars", "ab", "-svg", icon}, 0, []string{"shape icon: "}},
		{"skips empty svg", []string{"-chars", "a", "-svg", empty}, 0, []string{"shapes: 0"}},
		{"missing svg", []string{"-svg", filepath.Join(dir, "missing.svg")}, 1, nil},
		{"missing font", []string{"-font", filepath.Join(dir, "missing.ttf")}, 1, nil},
		{"unknown backend", []string{"-backend", "bitmap"}, 1, nil},
		{"bad flag", []string{"-nope"}, 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if code := run(tt.args, &out); code != tt.code {
				t.Fatalf("run(%q) = %d, want %d", tt.args, code, tt.code)
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output %q does not contain %q", out.String(), w)
				}
			}
		})
	}
}

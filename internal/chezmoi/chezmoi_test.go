package chezmoi

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSourceName(t *testing.T) {
	tests := []struct {
		name string
		rel  string
		want string
	}{
		{
			name: "leading-dot directory",
			rel:  ".zshrc.d/40-eza.zsh",
			want: "dot_zshrc.d/40-eza.zsh",
		},
		{
			name: "leading-dot directory with bare file",
			rel:  ".zfunctions/mkcd",
			want: "dot_zfunctions/mkcd",
		},
		{
			name: "interior dots stay",
			rel:  "conf.d/40-eza.fish",
			want: "conf.d/40-eza.fish",
		},
		{
			name: "plain directories stay",
			rel:  "functions/mkcd.bash",
			want: "functions/mkcd.bash",
		},
		{
			name: "every dotted segment is encoded",
			rel:  ".config/.hidden/file",
			want: "dot_config/dot_hidden/file",
		},
		{
			name: "single segment",
			rel:  ".gitignore",
			want: "dot_gitignore",
		},
		{
			name: "root file without dot",
			rel:  "Brewfile_darwin",
			want: "Brewfile_darwin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SourceName(tt.rel); got != tt.want {
				t.Errorf("SourceName(%q) = %q, want %q", tt.rel, got, tt.want)
			}
		})
	}
}

// writeStub creates an executable shell script standing in for the
// chezmoi binary.
func writeStub(t *testing.T, dir, script string) string {
	t.Helper()
	stub := filepath.Join(dir, "chezmoi")
	if err := os.WriteFile(stub, []byte(script), 0755); err != nil {
		t.Fatalf("cannot create stub binary: %v", err)
	}
	return stub
}

func TestClient_Apply_PassesSourceFlag(t *testing.T) {
	tmpDir := t.TempDir()
	argsFile := filepath.Join(tmpDir, "args")
	stub := writeStub(t, tmpDir, "#!/bin/bash\necho \"$@\" > "+argsFile+"\nexit 0\n")

	source := filepath.Join(tmpDir, "source")
	client := NewClient(stub, source)

	if err := client.Apply(context.Background()); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	got, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("stub recorded no arguments: %v", err)
	}
	want := "--source " + source + " apply"
	if strings.TrimSpace(string(got)) != want {
		t.Errorf("chezmoi args = %q, want %q", strings.TrimSpace(string(got)), want)
	}
}

func TestClient_Apply_ReportsCommandOutput(t *testing.T) {
	tmpDir := t.TempDir()
	stub := writeStub(t, tmpDir, "#!/bin/bash\necho 'source state is dirty' >&2\nexit 1\n")

	client := NewClient(stub, filepath.Join(tmpDir, "source"))

	err := client.Apply(context.Background())
	if err == nil {
		t.Fatal("Apply() error = nil, want failure")
	}
	if !strings.Contains(err.Error(), "source state is dirty") {
		t.Errorf("Apply() error %q does not carry the command output", err)
	}
	if !strings.Contains(err.Error(), "chezmoi apply") {
		t.Errorf("Apply() error %q does not name the operation", err)
	}
}

func TestClient_Apply_ContextCancellation(t *testing.T) {
	tmpDir := t.TempDir()
	stub := writeStub(t, tmpDir, "#!/bin/bash\nsleep 10\n")

	client := NewClient(stub, filepath.Join(tmpDir, "source"))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := client.Apply(ctx); err == nil {
		t.Error("Apply() with expired context should return an error")
	}
}

func TestNewClient_DefaultBinary(t *testing.T) {
	client := NewClient("", "/tmp/source")
	if client.bin != "chezmoi" {
		t.Errorf("NewClient bin = %q, want %q", client.bin, "chezmoi")
	}
}

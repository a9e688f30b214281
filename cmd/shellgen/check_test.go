package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/testutil"
)

func TestParseCheckFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    checkFlags
		wantErr bool
	}{
		{
			name: "no args",
			args: []string{},
			want: checkFlags{},
		},
		{
			name: "sources and target",
			args: []string{"shell.yaml", "--target", "/out", "--chezmoi"},
			want: checkFlags{sources: []string{"shell.yaml"}, target: "/out", chezmoi: true},
		},
		{
			name: "verbose short",
			args: []string{"-v"},
			want: checkFlags{verbose: true},
		},
		{
			name:    "unknown option",
			args:    []string{"--dry-run"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCheckFlags(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseCheckFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseCheckFlags() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRunCheck_InSync(t *testing.T) {
	root := testutil.SetupTestEnv(t)
	src := testutil.WriteFile(t, filepath.Join(root, "sources"), "shell.yaml", testManifest)
	target := filepath.Join(root, "out")

	if got := runGenerate([]string{src, "--target", target}); got != 0 {
		t.Fatalf("runGenerate() = %d, want 0", got)
	}
	if got := runCheck([]string{src, "--target", target}); got != 0 {
		t.Errorf("runCheck() = %d, want 0", got)
	}
}

func TestRunCheck_Drift(t *testing.T) {
	root := testutil.SetupTestEnv(t)
	src := testutil.WriteFile(t, filepath.Join(root, "sources"), "shell.yaml", testManifest)
	target := filepath.Join(root, "out")

	if got := runGenerate([]string{src, "--target", target}); got != 0 {
		t.Fatalf("runGenerate() = %d, want 0", got)
	}

	edited := filepath.Join(target, "bash", "bashrc.d", "40-eza.bash")
	if err := os.WriteFile(edited, []byte("# edited\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := runCheck([]string{src, "--target", target}); got != 1 {
		t.Errorf("runCheck() = %d, want 1", got)
	}
}

func TestRunCheck_EmptyTarget(t *testing.T) {
	root := testutil.SetupTestEnv(t)
	src := testutil.WriteFile(t, filepath.Join(root, "sources"), "shell.yaml", testManifest)

	if got := runCheck([]string{src, "--target", filepath.Join(root, "never-written")}); got != 1 {
		t.Errorf("runCheck() = %d, want 1", got)
	}
}

func TestRunCheck_InvalidManifest(t *testing.T) {
	root := testutil.SetupTestEnv(t)
	src := testutil.WriteFile(t, filepath.Join(root, "sources"), "shell.yaml", `modules:
  - name: broken
    description: no prefix or body
`)

	if got := runCheck([]string{src, "--target", filepath.Join(root, "out")}); got != 1 {
		t.Errorf("runCheck() = %d, want 1", got)
	}
}

func TestRunCheck_UsageError(t *testing.T) {
	if got := runCheck([]string{"--target"}); got != 2 {
		t.Errorf("runCheck() = %d, want 2", got)
	}
}

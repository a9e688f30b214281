package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/testutil"
)

const testPackages = `cli_tools:
  - name: jq
    pkg: jq
macos_apps:
  - name: Rectangle
    cask: rectangle
`

func TestParsePackagesFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    packagesFlags
		wantErr bool
	}{
		{
			name: "no args",
			args: []string{},
			want: packagesFlags{},
		},
		{
			name: "source and flags",
			args: []string{"pkg.yaml", "--target", "/out", "--chezmoi", "-n"},
			want: packagesFlags{source: "pkg.yaml", target: "/out", chezmoi: true, dryRun: true},
		},
		{
			name:    "two sources",
			args:    []string{"a.yaml", "b.yaml"},
			wantErr: true,
		},
		{
			name:    "unknown option",
			args:    []string{"--stdin"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePackagesFlags(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePackagesFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parsePackagesFlags() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRunPackages(t *testing.T) {
	root := testutil.SetupTestEnv(t)
	src := testutil.WriteFile(t, filepath.Join(root, "sources"), "packages.yaml", testPackages)
	target := filepath.Join(root, "out")

	if got := runPackages([]string{src, "--target", target}); got != 0 {
		t.Fatalf("runPackages() = %d, want 0", got)
	}

	data, err := os.ReadFile(filepath.Join(target, "Brewfile_darwin"))
	if err != nil {
		t.Fatalf("Brewfile missing: %v", err)
	}
	if !strings.Contains(string(data), `cask "rectangle"`) {
		t.Errorf("Brewfile missing cask line:\n%s", data)
	}
	if _, err := os.Stat(filepath.Join(target, "packages-apt.txt.tmpl")); err != nil {
		t.Errorf("apt list missing: %v", err)
	}
}

func TestRunPackages_Chezmoi(t *testing.T) {
	root := testutil.SetupTestEnv(t)
	src := testutil.WriteFile(t, filepath.Join(root, "sources"), "packages.yaml", testPackages)
	target := filepath.Join(root, "dotfiles")

	if got := runPackages([]string{src, "--chezmoi", "--target", target}); got != 0 {
		t.Fatalf("runPackages() = %d, want 0", got)
	}
	if _, err := os.Stat(filepath.Join(target, "dot_config", "Brewfile_darwin")); err != nil {
		t.Errorf("chezmoi Brewfile missing: %v", err)
	}
}

func TestRunPackages_DryRun(t *testing.T) {
	root := testutil.SetupTestEnv(t)
	src := testutil.WriteFile(t, filepath.Join(root, "sources"), "packages.yaml", testPackages)
	target := filepath.Join(root, "out")

	if got := runPackages([]string{src, "--target", target, "--dry-run"}); got != 0 {
		t.Fatalf("runPackages() = %d, want 0", got)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("dry run created the target directory")
	}
}

func TestRunPackages_MissingSource(t *testing.T) {
	root := testutil.SetupTestEnv(t)

	got := runPackages([]string{filepath.Join(root, "absent.yaml"), "--target", filepath.Join(root, "out")})
	if got != 1 {
		t.Errorf("runPackages() = %d, want 1", got)
	}
}

func TestRunPackages_UsageError(t *testing.T) {
	if got := runPackages([]string{"a.yaml", "b.yaml"}); got != 2 {
		t.Errorf("runPackages() = %d, want 2", got)
	}
}

package generator

import (
	"reflect"
	"sort"
	"testing"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
)

func TestPredicateCondition(t *testing.T) {
	tests := []struct {
		predicate string
		want      map[manifest.ShellTarget]string
	}{
		{
			predicate: manifest.PredicateOSIsDarwin,
			want: map[manifest.ShellTarget]string{
				manifest.Fish: `test (uname) = "Darwin"`,
				manifest.Zsh:  "[[ $OSTYPE == *darwin* ]]",
				manifest.Bash: "[[ $OSTYPE == *darwin* ]]",
				manifest.Pwsh: "$IsMacOS",
			},
		},
		{
			predicate: manifest.PredicateOSIsLinux,
			want: map[manifest.ShellTarget]string{
				manifest.Fish: `test (uname) = "Linux"`,
				manifest.Zsh:  "[[ $OSTYPE == *linux* ]]",
				manifest.Bash: "[[ $OSTYPE == *linux* ]]",
				manifest.Pwsh: "$IsLinux",
			},
		},
		{
			predicate: manifest.PredicateOSIsWindows,
			want: map[manifest.ShellTarget]string{
				manifest.Fish: `test (uname -o) = "Msys"`,
				manifest.Zsh:  "[[ $OSTYPE == *msys* || $OSTYPE == *cygwin* ]]",
				manifest.Bash: "[[ $OSTYPE == *msys* || $OSTYPE == *cygwin* ]]",
				manifest.Pwsh: "$IsWindows",
			},
		},
		{
			predicate: manifest.PredicateArchIsARM64,
			want: map[manifest.ShellTarget]string{
				manifest.Fish: "string match -qr 'arm64|aarch64' (uname -m)",
				manifest.Zsh:  "[[ $(uname -m) =~ ^(arm64|aarch64)$ ]]",
				manifest.Bash: "[[ $(uname -m) =~ ^(arm64|aarch64)$ ]]",
				manifest.Pwsh: `[System.Runtime.InteropServices.RuntimeInformation]::OSArchitecture -eq "Arm64"`,
			},
		},
		{
			predicate: manifest.PredicateArchIsAMD64,
			want: map[manifest.ShellTarget]string{
				manifest.Fish: `test (uname -m) = "x86_64"`,
				manifest.Zsh:  "[[ $(uname -m) == x86_64 ]]",
				manifest.Bash: "[[ $(uname -m) == x86_64 ]]",
				manifest.Pwsh: `[System.Runtime.InteropServices.RuntimeInformation]::OSArchitecture -eq "X64"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.predicate, func(t *testing.T) {
			for _, sh := range manifest.Targets() {
				got, err := predicateCondition(tt.predicate, sh)
				if err != nil {
					t.Fatalf("predicateCondition(%s) error = %v", sh, err)
				}
				if got != tt.want[sh] {
					t.Errorf("predicateCondition(%s) = %q, want %q", sh, got, tt.want[sh])
				}
			}
		})
	}
}

func TestPredicateCondition_Unknown(t *testing.T) {
	if _, err := predicateCondition("os_is_bsd", manifest.Fish); err == nil {
		t.Error("predicateCondition() error = nil, want unknown predicate error")
	}
}

func TestPredicateConditions_CoverKnownPredicates(t *testing.T) {
	var tableNames []string
	for name, perShell := range predicateConditions {
		tableNames = append(tableNames, name)
		for _, sh := range manifest.Targets() {
			if perShell[sh] == "" {
				t.Errorf("predicateConditions[%s][%s] is empty", name, sh)
			}
		}
	}
	sort.Strings(tableNames)
	if known := manifest.KnownPredicates(); !reflect.DeepEqual(tableNames, known) {
		t.Errorf("predicate table names = %v, validator names = %v", tableNames, known)
	}
}

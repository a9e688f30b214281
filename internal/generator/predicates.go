package generator

import (
	"fmt"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
)

// predicateConditions maps each predicate name to its per-shell
// one-line boolean expression. The zsh and bash columns are spelled
// out separately even where they coincide, so each cell stays an
// independent contract.
var predicateConditions = map[string]map[manifest.ShellTarget]string{
	manifest.PredicateOSIsDarwin: {
		manifest.Fish: `test (uname) = "Darwin"`,
		manifest.Zsh:  "[[ $OSTYPE == *darwin* ]]",
		manifest.Bash: "[[ $OSTYPE == *darwin* ]]",
		manifest.Pwsh: "$IsMacOS",
	},
	manifest.PredicateOSIsLinux: {
		manifest.Fish: `test (uname) = "Linux"`,
		manifest.Zsh:  "[[ $OSTYPE == *linux* ]]",
		manifest.Bash: "[[ $OSTYPE == *linux* ]]",
		manifest.Pwsh: "$IsLinux",
	},
	manifest.PredicateOSIsWindows: {
		manifest.Fish: `test (uname -o) = "Msys"`,
		manifest.Zsh:  "[[ $OSTYPE == *msys* || $OSTYPE == *cygwin* ]]",
		manifest.Bash: "[[ $OSTYPE == *msys* || $OSTYPE == *cygwin* ]]",
		manifest.Pwsh: "$IsWindows",
	},
	manifest.PredicateArchIsARM64: {
		manifest.Fish: "string match -qr 'arm64|aarch64' (uname -m)",
		manifest.Zsh:  "[[ $(uname -m) =~ ^(arm64|aarch64)$ ]]",
		manifest.Bash: "[[ $(uname -m) =~ ^(arm64|aarch64)$ ]]",
		manifest.Pwsh: `[System.Runtime.InteropServices.RuntimeInformation]::OSArchitecture -eq "Arm64"`,
	},
	manifest.PredicateArchIsAMD64: {
		manifest.Fish: `test (uname -m) = "x86_64"`,
		manifest.Zsh:  "[[ $(uname -m) == x86_64 ]]",
		manifest.Bash: "[[ $(uname -m) == x86_64 ]]",
		manifest.Pwsh: `[System.Runtime.InteropServices.RuntimeInformation]::OSArchitecture -eq "X64"`,
	},
}

func predicateCondition(name string, sh manifest.ShellTarget) (string, error) {
	perShell, ok := predicateConditions[name]
	if !ok {
		return "", fmt.Errorf("unknown predicate %q", name)
	}
	return perShell[sh], nil
}

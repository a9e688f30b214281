// Package shell identifies which of the four render targets are
// usable on this host. The doctor command reports its findings.
package shell

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
)

// Installation describes one render target's binary on this host.
type Installation struct {
	Target manifest.ShellTarget
	Path   string // resolved binary path, empty when not on PATH
	Login  bool   // true when $SHELL names this target
}

// Probe inspects PATH and $SHELL for every render target, in
// canonical order. Each target's binary shares its name: fish, zsh,
// bash, pwsh.
func Probe() []Installation {
	login, _ := LoginTarget()

	installs := make([]Installation, 0, 4)
	for _, target := range manifest.Targets() {
		inst := Installation{Target: target, Login: target == login}
		if path, err := exec.LookPath(string(target)); err == nil {
			inst.Path = path
		}
		installs = append(installs, inst)
	}
	return installs
}

// LoginTarget maps $SHELL onto a render target. ok is false when the
// variable is unset or names a shell outside the four targets.
func LoginTarget() (target manifest.ShellTarget, ok bool) {
	sh := os.Getenv("SHELL")
	if sh == "" {
		return "", false
	}
	switch strings.ToLower(filepath.Base(sh)) {
	case "fish":
		return manifest.Fish, true
	case "zsh":
		return manifest.Zsh, true
	case "bash":
		return manifest.Bash, true
	case "pwsh", "powershell":
		return manifest.Pwsh, true
	}
	return "", false
}

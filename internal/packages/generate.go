package packages

import (
	"fmt"
	"strings"
)

// BrewfileName is the output filename for the macOS Homebrew bundle.
const BrewfileName = "Brewfile_darwin"

// ListName returns the output filename for one platform's package
// list. The .tmpl suffix marks the file as a chezmoi template.
func ListName(platform string) string {
	return "packages-" + platform + ".txt.tmpl"
}

// Brewfile renders the macOS Homebrew bundle: taps, one brew line per
// non-skipped cli_tool, then macos_apps grouped as brews, casks and
// Mac App Store entries.
func Brewfile(m *Manifest) string {
	lines := []string{
		`tap "homebrew/bundle"`,
		`tap "homebrew/services"`,
	}
	for i := range m.CLITools {
		t := &m.CLITools[i]
		if t.skipped(PlatformMacOS) {
			continue
		}
		if name := t.nameFor(PlatformMacOS); name != "" {
			lines = append(lines, fmt.Sprintf("brew %q", name))
		}
	}

	var brews, casks, store []string
	for _, a := range m.MacOSApps {
		switch {
		case a.Brew != "":
			line := fmt.Sprintf("brew %q", a.Brew)
			if a.BrewOptions != "" {
				line += ", " + a.BrewOptions
			}
			brews = append(brews, line)
		case a.Cask != "":
			casks = append(casks, fmt.Sprintf("cask %q", a.Cask))
		case a.MASID != 0:
			store = append(store, fmt.Sprintf("mas %q, id: %d", a.Name, a.MASID))
		}
	}
	lines = append(lines, brews...)
	lines = append(lines, casks...)
	lines = append(lines, store...)

	return strings.Join(lines, "\n") + "\n"
}

// List renders the package list for one non-macOS platform: a comment
// header ending in an install hint, a blank line, then one package
// name per line in manifest order. Raspberry Pi reuses apt names and
// skip rules but keeps its own header and filename.
func List(m *Manifest, platform string) string {
	lookup := platform
	if platform == PlatformRaspi {
		lookup = PlatformApt
	}

	lines := []string{
		"# Generated package list for " + platform,
		"# Generated from packages.yaml",
		"#",
		"# Install with:",
		installHint(platform),
		"",
	}
	for i := range m.CLITools {
		t := &m.CLITools[i]
		if t.skipped(lookup) {
			continue
		}
		if name := t.nameFor(lookup); name != "" {
			lines = append(lines, name)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

func installHint(platform string) string {
	file := "packages-" + platform + ".txt"
	switch platform {
	case PlatformMSYS2:
		return "#   pacman -S --needed $(cat " + file + " | grep -v '^#')"
	case PlatformPacman:
		return "#   sudo pacman -S --needed $(cat " + file + " | grep -v '^#')"
	case PlatformDNF:
		return "#   sudo dnf install $(cat " + file + " | grep -v '^#')"
	default: // apt and raspi
		return "#   sudo apt-get install $(cat " + file + " | grep -v '^#')"
	}
}

// Files renders every output file keyed by filename: the Brewfile
// plus one list per platform in ListPlatforms.
func Files(m *Manifest) map[string]string {
	files := make(map[string]string, 1+len(ListPlatforms))
	files[BrewfileName] = Brewfile(m)
	for _, p := range ListPlatforms {
		files[ListName(p)] = List(m, p)
	}
	return files
}

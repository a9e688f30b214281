// Package packages converts a package manifest (packages.yaml) into
// platform install lists: a Homebrew bundle for macOS and plain text
// package lists for the other package managers.
package packages

// Platform keys used in packages.yaml and output filenames.
const (
	PlatformMacOS  = "macos"
	PlatformMSYS2  = "msys2"
	PlatformApt    = "apt"
	PlatformPacman = "pacman"
	PlatformDNF    = "dnf"
	PlatformRaspi  = "raspi"
)

// ListPlatforms are the platforms that get a plain package list, in
// output order. Raspberry Pi resolves package names through apt.
var ListPlatforms = []string{
	PlatformMSYS2,
	PlatformApt,
	PlatformPacman,
	PlatformDNF,
	PlatformRaspi,
}

// Manifest mirrors packages.yaml.
type Manifest struct {
	CLITools  []Tool `yaml:"cli_tools"`
	MacOSApps []App  `yaml:"macos_apps"`
}

// Tool is one cross-platform command-line package. Pkg names the
// package everywhere at once; the per-platform fields override it.
// Platforms in Skip drop the tool entirely.
type Tool struct {
	Name   string   `yaml:"name"`
	Pkg    string   `yaml:"pkg"`
	MacOS  string   `yaml:"macos"`
	MSYS2  string   `yaml:"msys2"`
	Apt    string   `yaml:"apt"`
	Pacman string   `yaml:"pacman"`
	DNF    string   `yaml:"dnf"`
	Skip   []string `yaml:"skip"`
}

// App is one macOS-only application; one of Brew, Cask or MASID is
// set. BrewOptions is raw Brewfile text appended after the name.
type App struct {
	Name        string `yaml:"name"`
	Brew        string `yaml:"brew"`
	BrewOptions string `yaml:"brew_options"`
	Cask        string `yaml:"cask"`
	MASID       int64  `yaml:"mas_id"`
}

// nameFor resolves the tool's package name on one platform: the
// platform override if set, else the Pkg shorthand. Empty means the
// tool has no package there.
func (t *Tool) nameFor(platform string) string {
	var name string
	switch platform {
	case PlatformMacOS:
		name = t.MacOS
	case PlatformMSYS2:
		name = t.MSYS2
	case PlatformApt:
		name = t.Apt
	case PlatformPacman:
		name = t.Pacman
	case PlatformDNF:
		name = t.DNF
	}
	if name == "" {
		name = t.Pkg
	}
	return name
}

// skipped reports whether the tool is excluded on one platform.
func (t *Tool) skipped(platform string) bool {
	for _, s := range t.Skip {
		if s == platform {
			return true
		}
	}
	return false
}

package generator

import (
	"errors"
	"testing"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
)

func TestRenderFunction_Predicate(t *testing.T) {
	fn := &manifest.FunctionSpec{
		Name:        "is-darwin",
		Description: "Check if running on macOS",
		Predicate:   manifest.PredicateOSIsDarwin,
	}

	want := map[manifest.ShellTarget]string{
		manifest.Fish: `# Generated by shellgen -- DO NOT EDIT
# Check if running on macOS
function is-darwin --description 'Check if running on macOS'
    test (uname) = "Darwin"
end
`,
		manifest.Zsh: `# Generated by shellgen -- DO NOT EDIT

[[ $OSTYPE == *darwin* ]]
`,
		manifest.Bash: `# Generated by shellgen -- DO NOT EDIT
# Check if running on macOS
is-darwin() {
    [[ $OSTYPE == *darwin* ]]
}
`,
		manifest.Pwsh: `# Generated by shellgen -- DO NOT EDIT
# Check if running on macOS
function is-darwin {
    $IsMacOS
}
`,
	}

	for _, sh := range manifest.Targets() {
		got, err := renderFunction(rendererFor(sh), fn)
		if err != nil {
			t.Fatalf("renderFunction(%s) error = %v", sh, err)
		}
		if got != want[sh] {
			t.Errorf("renderFunction(%s) = %q, want %q", sh, got, want[sh])
		}
	}
}

func TestRenderFunction_Complex(t *testing.T) {
	fn := &manifest.FunctionSpec{
		Name:        "mkcd",
		Description: "Make a directory and enter it",
		Usage:       "mkcd <dir>",
		Body: &manifest.BodyVariant{Variants: map[string]string{
			"fish":  "mkdir -p $argv[1]\ncd $argv[1]\n",
			"posix": "mkdir -p \"$1\"\ncd \"$1\"\n",
			"pwsh":  "New-Item -ItemType Directory -Force -Path $args[0] | Out-Null\nSet-Location $args[0]\n",
		}},
	}

	want := map[manifest.ShellTarget]string{
		manifest.Fish: `# Generated by shellgen -- DO NOT EDIT
# Make a directory and enter it
# Usage: mkcd <dir>

function mkcd
    mkdir -p $argv[1]
    cd $argv[1]
end
`,
		manifest.Zsh: `# Generated by shellgen -- DO NOT EDIT
# Make a directory and enter it
# Usage: mkcd <dir>

mkdir -p "$1"
cd "$1"
`,
		manifest.Bash: `# Generated by shellgen -- DO NOT EDIT
# Make a directory and enter it
# Usage: mkcd <dir>

mkcd() {
    mkdir -p "$1"
    cd "$1"
}
`,
		manifest.Pwsh: `# Generated by shellgen -- DO NOT EDIT
# Make a directory and enter it
# Usage: mkcd <dir>

function mkcd {
    New-Item -ItemType Directory -Force -Path $args[0] | Out-Null
    Set-Location $args[0]
}
`,
	}

	for _, sh := range manifest.Targets() {
		got, err := renderFunction(rendererFor(sh), fn)
		if err != nil {
			t.Fatalf("renderFunction(%s) error = %v", sh, err)
		}
		if got != want[sh] {
			t.Errorf("renderFunction(%s) = %q, want %q", sh, got, want[sh])
		}
	}
}

func TestRenderFunction_NoUsageLine(t *testing.T) {
	fn := &manifest.FunctionSpec{
		Name:        "greet",
		Description: "Say hello",
		Body:        &manifest.BodyVariant{Bare: "echo hello", IsBare: true},
	}

	want := `# Generated by shellgen -- DO NOT EDIT
# Say hello

function greet
    echo hello
end
`
	got, err := renderFunction(rendererFor(manifest.Fish), fn)
	if err != nil {
		t.Fatalf("renderFunction() error = %v", err)
	}
	if got != want {
		t.Errorf("renderFunction() = %q, want %q", got, want)
	}
}

func TestRenderFunction_BlankBodyLinesStayEmpty(t *testing.T) {
	fn := &manifest.FunctionSpec{
		Name:        "two-step",
		Description: "Body with a blank line",
		Body:        &manifest.BodyVariant{Bare: "first\n\nsecond", IsBare: true},
	}

	want := `# Generated by shellgen -- DO NOT EDIT
# Body with a blank line

two-step() {
    first

    second
}
`
	got, err := renderFunction(rendererFor(manifest.Bash), fn)
	if err != nil {
		t.Fatalf("renderFunction() error = %v", err)
	}
	if got != want {
		t.Errorf("renderFunction() = %q, want %q", got, want)
	}
}

func TestRenderFunction_MissingVariant(t *testing.T) {
	fn := &manifest.FunctionSpec{
		Name:        "fish-only",
		Description: "Has no posix fallback",
		Body: &manifest.BodyVariant{Variants: map[string]string{
			"fish": "echo fish",
		}},
	}

	_, err := renderFunction(rendererFor(manifest.Zsh), fn)
	var renderErr *RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("renderFunction() error = %v, want *RenderError", err)
	}
	if renderErr.Kind != "function" || renderErr.Name != "fish-only" || renderErr.Shell != manifest.Zsh {
		t.Errorf("RenderError = %+v, want function/fish-only/zsh", renderErr)
	}
}

func TestFunctionPath(t *testing.T) {
	tests := []struct {
		shell manifest.ShellTarget
		want  string
	}{
		{manifest.Fish, "functions/mkcd.fish"},
		{manifest.Zsh, ".zfunctions/mkcd"},
		{manifest.Bash, "functions/mkcd.bash"},
		{manifest.Pwsh, "functions/mkcd.ps1"},
	}
	for _, tt := range tests {
		if got := FunctionPath(tt.shell, "mkcd"); got != tt.want {
			t.Errorf("FunctionPath(%s) = %q, want %q", tt.shell, got, tt.want)
		}
	}
}

func TestModulePath(t *testing.T) {
	tests := []struct {
		shell manifest.ShellTarget
		want  string
	}{
		{manifest.Fish, "conf.d/40-eza.fish"},
		{manifest.Zsh, ".zshrc.d/40-eza.zsh"},
		{manifest.Bash, "bashrc.d/40-eza.bash"},
		{manifest.Pwsh, "conf.d/40-eza.ps1"},
	}
	for _, tt := range tests {
		if got := ModulePath(tt.shell, "40", "eza"); got != tt.want {
			t.Errorf("ModulePath(%s) = %q, want %q", tt.shell, got, tt.want)
		}
	}
}

package generator

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
)

func sampleManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Functions: []manifest.FunctionSpec{
			{
				Name:        "is-darwin",
				Description: "Check if running on macOS",
				Predicate:   manifest.PredicateOSIsDarwin,
			},
			{
				Name:        "mkcd",
				Description: "Make a directory and enter it",
				Usage:       "mkcd <dir>",
				Body: &manifest.BodyVariant{Variants: map[string]string{
					"fish":   "mkdir -p $argv[1]\ncd $argv[1]",
					"posix":  "mkdir -p \"$1\"\ncd \"$1\"",
					"shared": "mkdir -p $args[0]",
				}},
			},
		},
		Modules: []manifest.ModuleSpec{
			{
				Name:        "eza",
				Prefix:      "40",
				Description: "Modern ls replacement",
				Guard:       commandExists("eza"),
				Aliases: []manifest.Pair{
					{Name: "ls", Value: "eza"},
					{Name: "ll", Value: "eza -l"},
				},
			},
			{
				Name:        "zoxide",
				Prefix:      "50",
				Description: "Smarter cd command",
				Guard:       commandExists("zoxide"),
				Tool:        "zoxide",
			},
		},
	}
}

func TestGenerate_OutputShape(t *testing.T) {
	out, err := Generate(sampleManifest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(out) != 4 {
		t.Fatalf("Generate() produced %d shells, want 4", len(out))
	}
	wantPaths := map[manifest.ShellTarget][]string{
		manifest.Fish: {"functions/is-darwin.fish", "functions/mkcd.fish", "conf.d/40-eza.fish", "conf.d/50-zoxide.fish"},
		manifest.Zsh:  {".zfunctions/is-darwin", ".zfunctions/mkcd", ".zshrc.d/40-eza.zsh", ".zshrc.d/50-zoxide.zsh"},
		manifest.Bash: {"functions/is-darwin.bash", "functions/mkcd.bash", "bashrc.d/40-eza.bash", "bashrc.d/50-zoxide.bash"},
		manifest.Pwsh: {"functions/is-darwin.ps1", "functions/mkcd.ps1", "conf.d/40-eza.ps1", "conf.d/50-zoxide.ps1"},
	}
	for sh, paths := range wantPaths {
		files := out[sh]
		if len(files) != len(paths) {
			t.Errorf("%s: got %d files, want %d", sh, len(files), len(paths))
		}
		for _, p := range paths {
			if _, ok := files[p]; !ok {
				t.Errorf("%s: missing file %s", sh, p)
			}
		}
	}
}

func TestGenerate_EveryFileEndsWithOneNewline(t *testing.T) {
	out, err := Generate(sampleManifest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for sh, files := range out {
		for p, content := range files {
			if !strings.HasSuffix(content, "\n") {
				t.Errorf("%s/%s does not end with a newline", sh, p)
			}
			if strings.HasSuffix(content, "\n\n") {
				t.Errorf("%s/%s ends with more than one newline", sh, p)
			}
			if !strings.HasPrefix(content, Header+"\n") {
				t.Errorf("%s/%s does not start with the header", sh, p)
			}
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	first, err := Generate(sampleManifest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := Generate(sampleManifest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over the same manifest differ")
	}
}

// Reordering manifest entries only renames nothing and reshuffles
// nothing across files: each entry's file content is a function of
// that entry alone.
func TestGenerate_EntryOrderIndependentPerFile(t *testing.T) {
	m := sampleManifest()
	out, err := Generate(m)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	reversed := &manifest.Manifest{
		Functions: []manifest.FunctionSpec{m.Functions[1], m.Functions[0]},
		Modules:   []manifest.ModuleSpec{m.Modules[1], m.Modules[0]},
	}
	outReversed, err := Generate(reversed)
	if err != nil {
		t.Fatalf("Generate(reversed) error = %v", err)
	}

	if !reflect.DeepEqual(out, outReversed) {
		t.Error("entry order changed per-file output")
	}
}

func TestGenerate_ValidationAbortsWithNoOutput(t *testing.T) {
	m := sampleManifest()
	m.Modules[0].Prefix = "4" // not two digits

	out, err := Generate(m)
	if err == nil {
		t.Fatal("Generate() error = nil, want validation failure")
	}
	if out != nil {
		t.Errorf("Generate() output = %v, want nil on error", out)
	}

	var verrs manifest.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Errorf("Generate() error chain lacks ValidationErrors: %v", err)
	}
}

func TestGenerate_BodyCoverageAbortsWithNoOutput(t *testing.T) {
	m := sampleManifest()
	m.Functions[1].Body = &manifest.BodyVariant{Variants: map[string]string{
		"fish": "echo fish",
	}}

	out, err := Generate(m)
	if err == nil {
		t.Fatal("Generate() error = nil, want render failure")
	}
	if out != nil {
		t.Errorf("Generate() output = %v, want nil on error", out)
	}

	var renderErr *RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("Generate() error chain lacks *RenderError: %v", err)
	}
}

func TestCheck_CollectsAllFindings(t *testing.T) {
	m := sampleManifest()
	m.Modules[0].Prefix = "forty"
	m.Functions[1].Body = &manifest.BodyVariant{Variants: map[string]string{
		"fish": "echo fish",
	}}

	err := Check(m)
	if err == nil {
		t.Fatal("Check() error = nil, want findings")
	}

	// One validation finding plus one render finding per uncovered
	// shell (zsh, bash, pwsh), each on its own line.
	lines := strings.Split(err.Error(), "\n")
	if len(lines) != 4 {
		t.Errorf("Check() reported %d lines, want 4:\n%s", len(lines), err.Error())
	}
	for _, want := range []string{
		"prefix must be exactly two digits",
		"function 'mkcd': no body text for zsh",
		"function 'mkcd': no body text for bash",
		"function 'mkcd': no body text for pwsh",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Check() error lacks %q:\n%s", want, err.Error())
		}
	}
}

func TestCheck_CleanManifest(t *testing.T) {
	if err := Check(sampleManifest()); err != nil {
		t.Errorf("Check() error = %v, want nil", err)
	}
}

func TestCheck_BareAndAbsentBodiesReportNothing(t *testing.T) {
	m := &manifest.Manifest{
		Modules: []manifest.ModuleSpec{
			{
				Name: "simple", Prefix: "10", Description: "Bare body",
				Body: &manifest.BodyVariant{Bare: "echo hi", IsBare: true},
			},
			{
				Name: "aliases", Prefix: "20", Description: "No body at all",
				Aliases: []manifest.Pair{{Name: "g", Value: "git"}},
			},
		},
	}
	if err := Check(m); err != nil {
		t.Errorf("Check() error = %v, want nil", err)
	}
}

func TestGenerate_Concurrent(t *testing.T) {
	m := sampleManifest()
	want, err := Generate(m)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Generate(m)
			if err != nil {
				t.Errorf("Generate() error = %v", err)
				return
			}
			if !reflect.DeepEqual(got, want) {
				t.Error("concurrent Generate() diverged")
			}
		}()
	}
	wg.Wait()
}

package generator

import (
	"path"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
)

// shellLayout fixes where a shell's generated files live relative to
// that shell's output root. The zsh function extension is empty
// because autoload resolves function names from bare filenames.
type shellLayout struct {
	functionDir string
	functionExt string
	moduleDir   string
	moduleExt   string
}

var shellLayouts = map[manifest.ShellTarget]shellLayout{
	manifest.Fish: {functionDir: "functions", functionExt: ".fish", moduleDir: "conf.d", moduleExt: ".fish"},
	manifest.Zsh:  {functionDir: ".zfunctions", functionExt: "", moduleDir: ".zshrc.d", moduleExt: ".zsh"},
	manifest.Bash: {functionDir: "functions", functionExt: ".bash", moduleDir: "bashrc.d", moduleExt: ".bash"},
	manifest.Pwsh: {functionDir: "functions", functionExt: ".ps1", moduleDir: "conf.d", moduleExt: ".ps1"},
}

// FunctionPath returns a function's file path relative to the shell's
// output root, using forward slashes.
func FunctionPath(sh manifest.ShellTarget, name string) string {
	l := shellLayouts[sh]
	return path.Join(l.functionDir, name+l.functionExt)
}

// ModulePath returns a module's file path relative to the shell's
// output root. The two-digit prefix fixes directory load order.
func ModulePath(sh manifest.ShellTarget, prefix, name string) string {
	l := shellLayouts[sh]
	return path.Join(l.moduleDir, prefix+"-"+name+l.moduleExt)
}

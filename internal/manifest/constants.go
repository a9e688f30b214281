package manifest

// Guard kinds recognized by the generator's per-shell tables.
const (
	GuardCommandExists = "command_exists"
	GuardEnvNotSet     = "env_not_set"
	GuardEnvSet        = "env_set"
	GuardEnvEquals     = "env_equals"
	GuardNotEnvEquals  = "not_env_equals"
	GuardFileExists    = "file_exists"
	GuardDirExists     = "dir_exists"
	GuardIsTTY         = "is_tty"
	GuardIsInteractive = "is_interactive"
)

// Composite guard keys.
const (
	guardKeyNot = "not"
	guardKeyAll = "all"
	guardKeyAny = "any"
)

// Guard parameter keys for the env comparison kinds.
const (
	guardKeyVar   = "var"
	guardKeyValue = "value"
)

// Predicate names recognized by the function renderer.
const (
	PredicateOSIsDarwin  = "os_is_darwin"
	PredicateOSIsLinux   = "os_is_linux"
	PredicateOSIsWindows = "os_is_windows"
	PredicateArchIsARM64 = "arch_is_arm64"
	PredicateArchIsAMD64 = "arch_is_amd64"
)

// Branch directives.
const (
	DirectiveIf   = "if"
	DirectiveElif = "elif"
	DirectiveElse = "else"
)

// Body variant keys besides the four shell names.
const (
	VariantPosix  = "posix"
	VariantShared = "shared"
)

// Field names shared by the YAML and Lua decoders.
const (
	fieldFunctions   = "functions"
	fieldModules     = "modules"
	fieldName        = "name"
	fieldDescription = "description"
	fieldUsage       = "usage"
	fieldPredicate   = "predicate"
	fieldBody        = "body"
	fieldPrefix      = "prefix"
	fieldURL         = "url"
	fieldComment     = "comment"
	fieldGuard       = "guard"
	fieldGuards      = "guards"
	fieldPaths       = "paths"
	fieldEnv         = "env"
	fieldAliases     = "aliases"
	fieldTool        = "tool"
	fieldEvalCommand = "eval_command"
	fieldSourceFile  = "source_file"
	fieldConditional = "conditional"
)

// DefaultSourceName is the manifest filename looked up inside a
// directory source, in order of preference.
var defaultSourceNames = []string{"shell.yaml", "shell.lua"}

// bodyVariantKeys is the closed set of keys a body mapping may use.
var bodyVariantKeys = map[string]bool{
	string(Fish):  true,
	string(Zsh):   true,
	string(Bash):  true,
	string(Pwsh):  true,
	VariantPosix:  true,
	VariantShared: true,
}

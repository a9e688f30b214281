package main

import (
	"fmt"
	"io"
	"os"
)

// Version is set at build time via -ldflags.
var Version = "v0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

// run dispatches to the subcommands and returns the process exit
// code: 0 success, 1 runtime failure or drift, 2 usage error.
func run(args []string) int {
	if len(args) == 0 {
		printUsage(os.Stdout)
		return 0
	}

	switch args[0] {
	case "generate":
		return runGenerate(args[1:])
	case "check":
		return runCheck(args[1:])
	case "packages":
		return runPackages(args[1:])
	case "doctor":
		return runDoctor(args[1:])
	case "version", "--version":
		fmt.Printf("shellgen %s\n", Version)
		return 0
	case "help", "--help", "-h":
		printUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "shellgen: unknown command %q\n\n", args[0])
		printUsage(os.Stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "shellgen renders declarative shell-startup manifests into fish, zsh,")
	fmt.Fprintln(w, "bash and PowerShell startup files.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  shellgen generate [sources...] [options]  Render startup files")
	fmt.Fprintln(w, "  shellgen check    [sources...] [options]  Report drift against the target")
	fmt.Fprintln(w, "  shellgen packages [source] [options]      Render platform package lists")
	fmt.Fprintln(w, "  shellgen doctor                           Show environment diagnostics")
	fmt.Fprintln(w, "  shellgen version                          Show version information")
	fmt.Fprintln(w, "  shellgen help                             Show this message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'shellgen <command> --help' for command options.")
}

// resolveTarget picks the output directory: the --target flag wins,
// then SHELLGEN_TARGET, then the current directory.
func resolveTarget(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv("SHELLGEN_TARGET"); env != "" {
		return env
	}
	return "."
}

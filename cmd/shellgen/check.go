package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/drift"
	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
	"github.com/ZebulonRouseFrantzich/shellgen/internal/output"
	"github.com/ZebulonRouseFrantzich/shellgen/internal/platform"
	"github.com/ZebulonRouseFrantzich/shellgen/internal/service"
)

type checkFlags struct {
	sources []string
	target  string
	chezmoi bool
	verbose bool
	help    bool
}

func parseCheckFlags(args []string) (checkFlags, error) {
	var f checkFlags
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--help", "-h":
			f.help = true
		case "--chezmoi":
			f.chezmoi = true
		case "--verbose", "-v":
			f.verbose = true
		case "--target":
			if i+1 >= len(args) {
				return f, fmt.Errorf("--target requires a directory argument")
			}
			i++
			f.target = args[i]
		default:
			if rest, ok := strings.CutPrefix(arg, "--target="); ok {
				f.target = rest
				continue
			}
			if len(arg) > 0 && arg[0] == '-' {
				return f, fmt.Errorf("unknown option: %s", arg)
			}
			f.sources = append(f.sources, arg)
		}
	}
	return f, nil
}

// runCheck handles the `shellgen check` subcommand.
func runCheck(args []string) int {
	flags, err := parseCheckFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shellgen check: %v\n", err)
		return 2
	}
	if flags.help {
		printCheckHelp()
		return 0
	}

	layout := output.Plain(resolveTarget(flags.target))
	if flags.chezmoi {
		layout = output.Chezmoi(resolveTarget(flags.target))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	log := stderrLogger{verbose: flags.verbose}
	svc := service.NewCheckService(manifest.NewParser(platform.NewDetector()), log)
	result, err := svc.Execute(ctx, service.CheckRequest{
		Sources: flags.sources,
		Layout:  layout,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, manifest.FormatError(err, flags.verbose))
		return 1
	}

	fmt.Print(drift.Format(result.Report))
	if !result.Report.Clean() {
		return 1
	}
	return 0
}

func printCheckHelp() {
	fmt.Println("Usage: shellgen check [sources...] [options]")
	fmt.Println()
	fmt.Println("Validate the manifest sources, render the expected output in memory")
	fmt.Println("and compare it against the target directory. Nothing is written.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -h, --help      Show this help message")
	fmt.Println("  --target DIR    Output root to compare (default: $SHELLGEN_TARGET or .)")
	fmt.Println("  --chezmoi       Compare against the chezmoi source-state layout")
	fmt.Println("  -v, --verbose   Log loader activity and full error detail to stderr")
	fmt.Println()
	fmt.Println("Exit codes:")
	fmt.Println("  0  Everything in sync")
	fmt.Println("  1  Drift found, or the manifest does not validate")
}

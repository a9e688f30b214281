package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/output"
	"github.com/ZebulonRouseFrantzich/shellgen/internal/service"
)

type packagesFlags struct {
	source  string
	target  string
	chezmoi bool
	dryRun  bool
	help    bool
}

func parsePackagesFlags(args []string) (packagesFlags, error) {
	var f packagesFlags
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--help", "-h":
			f.help = true
		case "--chezmoi":
			f.chezmoi = true
		case "--dry-run", "-n":
			f.dryRun = true
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
			if f.source != "" {
				return f, fmt.Errorf("at most one source argument, got %q and %q", f.source, arg)
			}
			f.source = arg
		}
	}
	return f, nil
}

// runPackages handles the `shellgen packages` subcommand.
func runPackages(args []string) int {
	flags, err := parsePackagesFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shellgen packages: %v\n", err)
		return 2
	}
	if flags.help {
		printPackagesHelp()
		return 0
	}

	layout := output.Plain(resolveTarget(flags.target))
	if flags.chezmoi {
		layout = output.Chezmoi(resolveTarget(flags.target))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	svc := service.NewPackagesService(stderrLogger{})
	result, err := svc.Execute(ctx, service.PackagesRequest{
		Source: flags.source,
		Layout: layout,
		DryRun: flags.dryRun,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "shellgen packages: %v\n", err)
		return 1
	}

	if flags.dryRun {
		fmt.Println("Dry run - nothing written")
		for _, p := range result.Planned {
			fmt.Printf("  %s (%d bytes)\n", p.Path, p.Size)
		}
		return 0
	}

	fmt.Printf("Generated %d package files under %s\n", len(result.Written), layout.Root())
	return 0
}

func printPackagesHelp() {
	fmt.Println("Usage: shellgen packages [source] [options]")
	fmt.Println()
	fmt.Println("Convert a package manifest into a macOS Brewfile and per-platform")
	fmt.Println("package lists. The source defaults to .shellgen/packages.yaml.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -h, --help      Show this help message")
	fmt.Println("  --target DIR    Output root (default: $SHELLGEN_TARGET or .)")
	fmt.Println("  --chezmoi       Write under dot_config/ in chezmoi source state")
	fmt.Println("  -n, --dry-run   List what would be written without touching disk")
	fmt.Println()
	fmt.Println("Outputs:")
	fmt.Println("  Brewfile_darwin            Homebrew bundle (taps, brews, casks, mas)")
	fmt.Println("  packages-<platform>.txt.tmpl  msys2, apt, pacman, dnf, raspi lists")
}

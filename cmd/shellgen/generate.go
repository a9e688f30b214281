package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/chezmoi"
	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
	"github.com/ZebulonRouseFrantzich/shellgen/internal/output"
	"github.com/ZebulonRouseFrantzich/shellgen/internal/platform"
	"github.com/ZebulonRouseFrantzich/shellgen/internal/service"
)

type generateFlags struct {
	sources []string
	target  string
	chezmoi bool
	apply   bool
	dryRun  bool
	stdin   bool
	verbose bool
	help    bool
}

func parseGenerateFlags(args []string) (generateFlags, error) {
	var f generateFlags
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--help", "-h":
			f.help = true
		case "--chezmoi":
			f.chezmoi = true
		case "--apply":
			f.apply = true
		case "--dry-run", "-n":
			f.dryRun = true
		case "--stdin":
			f.stdin = true
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
	if f.apply && !f.chezmoi {
		return f, fmt.Errorf("--apply requires --chezmoi")
	}
	return f, nil
}

// runGenerate handles the `shellgen generate` subcommand.
func runGenerate(args []string) int {
	flags, err := parseGenerateFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shellgen generate: %v\n", err)
		return 2
	}
	if flags.help {
		printGenerateHelp()
		return 0
	}

	sources := flags.sources
	if flags.stdin {
		fromStdin, err := manifest.ReadSourceList(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "shellgen generate: %v\n", err)
			return 1
		}
		sources = append(fromStdin, sources...)
	}

	layout := output.Plain(resolveTarget(flags.target))
	if flags.chezmoi {
		layout = output.Chezmoi(resolveTarget(flags.target))
	}

	var applier service.Applier
	if flags.apply {
		applier = chezmoi.NewClient("", layout.Root())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	log := stderrLogger{verbose: flags.verbose}
	svc := service.NewGenerateService(manifest.NewParser(platform.NewDetector()), log)
	result, err := svc.Execute(ctx, service.GenerateRequest{
		Sources: sources,
		Layout:  layout,
		DryRun:  flags.dryRun,
		Applier: applier,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, manifest.FormatError(err, flags.verbose))
		return 1
	}

	if flags.dryRun {
		fmt.Println("Dry run - nothing written")
		for _, p := range result.Planned {
			fmt.Printf("  %s (%d bytes)\n", p.Path, p.Size)
		}
		return 0
	}

	fmt.Printf("Generated %d files under %s\n", len(result.Written), layout.Root())
	if result.Applied {
		fmt.Println("Applied with chezmoi")
	}
	return 0
}

func printGenerateHelp() {
	fmt.Println("Usage: shellgen generate [sources...] [options]")
	fmt.Println()
	fmt.Println("Render every manifest entry into fish, zsh, bash and PowerShell")
	fmt.Println("startup files. Sources are manifest files or directories holding")
	fmt.Println("shell.yaml or shell.lua; without sources the default")
	fmt.Println(".shellgen/shell.yaml is used. Later sources override earlier ones")
	fmt.Println("by entry name.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -h, --help      Show this help message")
	fmt.Println("  --target DIR    Output root (default: $SHELLGEN_TARGET or .)")
	fmt.Println("  --chezmoi       Write chezmoi source state (dot_config/<shell>/...)")
	fmt.Println("  --apply         Run 'chezmoi apply' after writing (needs --chezmoi)")
	fmt.Println("  -n, --dry-run   List what would be written without touching disk")
	fmt.Println("  --stdin         Also read newline-separated source paths from stdin")
	fmt.Println("  -v, --verbose   Log loader and writer activity to stderr")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  shellgen generate                          Default source into .")
	fmt.Println("  shellgen generate shell.yaml --target out  Explicit source and target")
	fmt.Println("  shellgen generate --chezmoi --apply        Regenerate dotfiles and apply")
	fmt.Println("  shellgen generate base.yaml work.lua       Later sources win by name")
}

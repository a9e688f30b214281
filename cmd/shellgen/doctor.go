package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
	"github.com/ZebulonRouseFrantzich/shellgen/internal/packages"
	"github.com/ZebulonRouseFrantzich/shellgen/internal/platform"
	"github.com/ZebulonRouseFrantzich/shellgen/internal/shell"
)

// runDoctor handles the `shellgen doctor` subcommand.
func runDoctor(args []string) int {
	for _, arg := range args {
		switch arg {
		case "--help", "-h":
			printDoctorHelp()
			return 0
		default:
			fmt.Fprintf(os.Stderr, "shellgen doctor: unknown option: %s\n", arg)
			return 2
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	info, err := platform.NewDetector().Detect(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shellgen doctor: detect platform: %v\n", err)
		return 1
	}

	fmt.Println("Platform")
	fmt.Printf("  os:       %s\n", info.OS)
	fmt.Printf("  arch:     %s\n", info.Arch)
	if info.Hostname != "" {
		fmt.Printf("  hostname: %s\n", info.Hostname)
	}
	if distro := info.GetDistro(); distro != nil {
		fmt.Printf("  distro:   %s %s (%s family)\n", distro.ID, distro.Version, distro.Family)
	}

	fmt.Println()
	fmt.Println("Shells")
	for _, inst := range shell.Probe() {
		switch {
		case inst.Path == "":
			fmt.Printf("  %-5s not installed\n", inst.Target)
		case inst.Login:
			fmt.Printf("  %-5s %s (login shell)\n", inst.Target, inst.Path)
		default:
			fmt.Printf("  %-5s %s\n", inst.Target, inst.Path)
		}
	}

	fmt.Println()
	fmt.Println("Sources")
	printSourceStatus(manifest.DefaultSource)
	printSourceStatus(packages.DefaultSource)

	fmt.Println()
	fmt.Println("Target")
	fmt.Printf("  %s\n", resolveTarget(""))

	return 0
}

// printSourceStatus shows a default source path and whether it exists.
func printSourceStatus(rel string) {
	abs, err := filepath.Abs(rel)
	if err != nil {
		abs = rel
	}
	if _, err := os.Stat(abs); err == nil {
		fmt.Printf("  %s\n", abs)
	} else {
		fmt.Printf("  %s (not found)\n", abs)
	}
}

func printDoctorHelp() {
	fmt.Println("Usage: shellgen doctor")
	fmt.Println()
	fmt.Println("Print an environment report: detected platform, which shells are")
	fmt.Println("installed, the default source paths and the resolved target.")
	fmt.Println("Informational only; always exits 0 unless detection fails.")
}

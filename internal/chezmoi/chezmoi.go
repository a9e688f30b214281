// Package chezmoi implements the chezmoi source-state naming
// convention and a thin client for applying a generated source tree.
package chezmoi

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// SourceName converts a slash-separated relative path to chezmoi
// source-state naming: every segment with a leading dot is rewritten
// with the dot_ prefix. Segments that merely contain dots keep their
// names.
//
//	.zshrc.d/40-eza.zsh -> dot_zshrc.d/40-eza.zsh
//	.zfunctions/mkcd    -> dot_zfunctions/mkcd
//	conf.d/40-eza.fish  -> conf.d/40-eza.fish
func SourceName(rel string) string {
	parts := strings.Split(rel, "/")
	for i, part := range parts {
		if strings.HasPrefix(part, ".") {
			parts[i] = "dot_" + part[1:]
		}
	}
	return strings.Join(parts, "/")
}

// Client runs the chezmoi binary against a generated source tree.
type Client struct {
	bin    string
	source string
}

// NewClient returns a client that applies the source-state tree at
// source. An empty bin falls back to "chezmoi" on PATH.
func NewClient(bin, source string) *Client {
	if bin == "" {
		bin = "chezmoi"
	}
	return &Client{bin: bin, source: source}
}

// Apply materializes the source tree into the user's home directory.
// The subprocess runs with a scrubbed environment so a caller's
// CHEZMOI_* variables cannot redirect it.
func (c *Client) Apply(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, c.bin, "--source", c.source, "apply")
	cmd.Env = []string{
		"HOME=" + os.Getenv("HOME"),
		"PATH=" + os.Getenv("PATH"),
		"USER=" + os.Getenv("USER"),
		"LANG=" + os.Getenv("LANG"),
	}

	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("chezmoi apply: %w: %s", err, msg)
		}
		return fmt.Errorf("chezmoi apply: %w", err)
	}
	return nil
}

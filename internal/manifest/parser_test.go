package manifest

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestParser_ParseFile_Dispatch(t *testing.T) {
	tmp := t.TempDir()

	yamlPath := filepath.Join(tmp, "shell.yaml")
	writeFile(t, yamlPath, `
functions:
  - name: from-yaml
    description: d
    predicate: os_is_linux
`)

	luaPath := filepath.Join(tmp, "shell.lua")
	writeFile(t, luaPath, `
shellgen = {
	functions = {
		{ name = "from-lua", description = "d", predicate = "os_is_linux" },
	},
}
`)

	p := NewParser(nil)

	m, err := p.ParseFile(context.Background(), yamlPath)
	if err != nil {
		t.Fatalf("ParseFile(yaml) error = %v", err)
	}
	if m.Functions[0].Name != "from-yaml" {
		t.Errorf("yaml Name = %q, want from-yaml", m.Functions[0].Name)
	}

	m, err = p.ParseFile(context.Background(), luaPath)
	if err != nil {
		t.Fatalf("ParseFile(lua) error = %v", err)
	}
	if m.Functions[0].Name != "from-lua" {
		t.Errorf("lua Name = %q, want from-lua", m.Functions[0].Name)
	}
}

func TestParser_ParseFile_Missing(t *testing.T) {
	p := NewParser(nil)
	_, err := p.ParseFile(context.Background(), "/nonexistent/shell.yaml")
	if err == nil {
		t.Fatal("ParseFile() error = nil, want read error")
	}
	parseErr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if parseErr.Message != "cannot read manifest" {
		t.Errorf("Message = %q, want cannot read manifest", parseErr.Message)
	}
	if !strings.Contains(parseErr.Path, "shell.yaml") {
		t.Errorf("Path = %q, want the source path", parseErr.Path)
	}
}

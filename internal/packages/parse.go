package packages

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ZebulonRouseFrantzich/shellgen/internal/manifest"
)

// DefaultSource is the package manifest path relative to the working
// directory when the packages command gets no source argument.
const DefaultSource = ".shellgen/packages.yaml"

// Parse decodes a packages.yaml document. Unknown keys are ignored so
// manifests can carry comments-by-convention or extra metadata.
func Parse(data []byte, path string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &manifest.ParseError{Path: path, Message: "invalid package manifest", Detail: err.Error()}
	}
	return &m, nil
}

// ParseFile reads and decodes a packages.yaml file.
func ParseFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &manifest.ParseError{Path: path, Message: "cannot read package manifest", Detail: err.Error()}
	}
	return Parse(data, path)
}

package platform

import (
	"testing"
)

func TestNormalizeArch(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"amd64", "amd64", "amd64", false},
		{"x86_64", "x86_64", "amd64", false},
		{"arm64", "arm64", "arm64", false},
		{"aarch64", "aarch64", "arm64", false},
		{"i386 unsupported", "i386", "", true},
		{"arm unsupported", "arm", "", true},
		{"unknown", "unknown", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeArch(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("normalizeArch() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("normalizeArch() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizePlatform(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Ubuntu", "ubuntu"},
		{"  Arch  ", "arch"},
		{"UBUNTU", "ubuntu"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizePlatform(tt.input); got != tt.want {
			t.Errorf("normalizePlatform(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeHostname(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"devbox", "devbox"},
		{"devbox.example.com", "devbox"},
		{"  devbox \n", "devbox"},
		{".hidden", ".hidden"}, // leading dot is not a domain separator
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizeHostname(tt.input); got != tt.want {
			t.Errorf("normalizeHostname(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMapFamily(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debian", FamilyDebian},
		{"ubuntu", FamilyDebian},
		{"Debian", FamilyDebian},
		{"rhel", FamilyRHEL},
		{"centos", FamilyRHEL},
		{"rocky", FamilyRHEL},
		{"fedora", FamilyFedora},
		{"suse", FamilySUSE},
		{"opensuse", FamilySUSE},
		{"arch", FamilyArch},
		{"manjaro", FamilyArch},
		{"alpine", FamilyAlpine},
		{"gentoo", FamilyGentoo},
		{"slackware", FamilyUnknown},
		{"", FamilyUnknown},
	}

	for _, tt := range tests {
		if got := mapFamily(tt.input); got != tt.want {
			t.Errorf("mapFamily(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

package platform

import (
	"context"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func BenchmarkDetect(b *testing.B) {
	detector := NewDetector()
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = detector.Detect(ctx)
	}
}

func BenchmarkNormalizeHostname(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = normalizeHostname("devbox.fritz.box")
	}
}

func BenchmarkMapFamily(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = mapFamily("ubuntu")
	}
}

// InjectPlatformTable runs once per Lua manifest parse, so its cost is
// paid per source file.
func BenchmarkInjectPlatformTable(b *testing.B) {
	info := &Info{
		OS:       "linux",
		Arch:     "amd64",
		Hostname: "devbox",
		Platform: "ubuntu",
		Family:   FamilyDebian,
		Version:  "22.04",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		L := lua.NewState()
		_ = InjectPlatformTable(L, info)
		L.Close()
	}
}

func BenchmarkInfo_GetDistro(b *testing.B) {
	info := &Info{
		OS:       "linux",
		Arch:     "amd64",
		Platform: "ubuntu",
		Family:   FamilyDebian,
		Version:  "22.04",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = info.GetDistro()
	}
}

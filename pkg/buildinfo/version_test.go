package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	old := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
	t.Cleanup(func() { readBuildInfo = old })
}

func TestString(t *testing.T) {
	stubBuildInfo(t, nil)
	old := Version
	Version = "v0.3.0"
	defer func() { Version = old }()

	if s := String(); !strings.Contains(s, "version: v0.3.0") {
		t.Errorf("String() = %q, want version line", s)
	}
	if tpl := Template(); !strings.HasPrefix(tpl, "{{.Name}} version v0.3.0") {
		t.Errorf("Template() = %q", tpl)
	}
}

func TestReadFallsBackToBuildInfo(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		GoVersion: "go1.24.2",
		Main:      debug.Module{Path: "github.com/matzehuels/chartkit", Version: "v0.4.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})

	got := Read()
	want := Info{
		Version:   "v0.4.1",
		Commit:    "0123456789ab",
		Date:      "2026-10-01T12:00:00Z",
		GoVersion: "go1.24.2",
		Modified:  true,
	}
	if got != want {
		t.Errorf("Read() = %+v, want %+v", got, want)
	}
	if s := String(); !strings.Contains(s, "commit: 0123456789ab-dirty") {
		t.Errorf("String() = %q, want dirty commit", s)
	}
}

func TestReadPrefersLdflags(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Main:     debug.Module{Version: "v0.4.1"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffff"}},
	})
	oldV, oldC := Version, Commit
	Version, Commit = "v1.0.0", "abc123"
	defer func() { Version, Commit = oldV, oldC }()

	got := Read()
	if got.Version != "v1.0.0" || got.Commit != "abc123" {
		t.Errorf("Read() = %+v, want stamped values", got)
	}
}

func TestReadIgnoresDevelVersion(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if got := Read().Version; got != unsetVersion {
		t.Errorf("Version = %q, want %q", got, unsetVersion)
	}
}

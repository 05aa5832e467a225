package memory

import (
	"runtime/debug"
	"testing"
)

func restoreMemLimit(t *testing.T) {
	t.Helper()
	orig := debug.SetMemoryLimit(-1)
	t.Cleanup(func() { debug.SetMemoryLimit(orig) })
}

func TestConfigureFromEnvUnset(t *testing.T) {
	restoreMemLimit(t)
	t.Setenv("GOMEMLIMIT", "")
	t.Setenv("MEMORY_LIMIT", "")

	result := ConfigureFromEnv()
	if result.Configured {
		t.Error("Configured = true with no limits set")
	}
	if result.Source != "none" {
		t.Errorf("Source = %q, want none", result.Source)
	}
}

func TestConfigureFromEnvMemoryLimit(t *testing.T) {
	restoreMemLimit(t)
	t.Setenv("GOMEMLIMIT", "")
	t.Setenv("MEMORY_LIMIT", "1073741824") // 1GiB

	result := ConfigureFromEnv()
	if !result.Configured {
		t.Fatal("Configured = false")
	}
	if result.Source != "MEMORY_LIMIT" {
		t.Errorf("Source = %q, want MEMORY_LIMIT", result.Source)
	}
	limit := int64(1073741824)
	want := int64(float64(limit) * DefaultMemoryRatio)
	if result.GoMemLimit != want {
		t.Errorf("GoMemLimit = %d, want %d", result.GoMemLimit, want)
	}
	if got := debug.SetMemoryLimit(-1); got != want {
		t.Errorf("effective GOMEMLIMIT = %d, want %d", got, want)
	}
}

func TestConfigureFromEnvCustomRatio(t *testing.T) {
	restoreMemLimit(t)
	t.Setenv("GOMEMLIMIT", "")
	t.Setenv("MEMORY_LIMIT", "1000000")
	t.Setenv("MEMORY_RATIO", "0.5")

	result := ConfigureFromEnv()
	if result.Ratio != 0.5 {
		t.Errorf("Ratio = %v, want 0.5", result.Ratio)
	}
	if result.GoMemLimit != 500000 {
		t.Errorf("GoMemLimit = %d, want 500000", result.GoMemLimit)
	}
}

func TestConfigureFromEnvBadValues(t *testing.T) {
	restoreMemLimit(t)
	t.Setenv("GOMEMLIMIT", "")
	t.Setenv("MEMORY_LIMIT", "not-a-number")

	result := ConfigureFromEnv()
	if result.Configured {
		t.Error("Configured = true with unparseable MEMORY_LIMIT")
	}

	t.Setenv("MEMORY_LIMIT", "1000000")
	t.Setenv("MEMORY_RATIO", "5.0") // out of range, default applies

	result = ConfigureFromEnv()
	if result.Ratio != DefaultMemoryRatio {
		t.Errorf("Ratio = %v, want default %v", result.Ratio, DefaultMemoryRatio)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1073741824, "1.0 GiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

package version

import "testing"

func TestString(t *testing.T) {
	origV, origSHA, origTime := Version, GitSHA, BuildTime
	t.Cleanup(func() { Version, GitSHA, BuildTime = origV, origSHA, origTime })

	if got := String(); got != "dev (unknown, built unknown)" {
		t.Errorf("String() = %q with defaults", got)
	}

	Version, GitSHA, BuildTime = "1.2.0", "abc1234", "2024-05-01T10:00:00Z"
	if got, want := String(), "1.2.0 (abc1234, built 2024-05-01T10:00:00Z)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

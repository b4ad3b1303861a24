package utils

import "testing"

func TestSessionNamesUnique(t *testing.T) {
	var sng SessionNameGenerator

	seen := make(map[string]struct{})
	for i := 0; i < 64; i++ {
		name := sng.SessionName()
		if name == "" {
			t.Fatal("empty session name")
		}
		if _, dup := seen[name]; dup {
			t.Fatalf("session name %q handed out twice", name)
		}
		seen[name] = struct{}{}
	}
}

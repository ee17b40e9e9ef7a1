package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	keyFile := filepath.Join(dir, "key")
	if err := os.WriteFile(keyFile, []byte("  from-file\n"), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}
	emptyFile := filepath.Join(dir, "empty")
	if err := os.WriteFile(emptyFile, []byte("\n"), 0o600); err != nil {
		t.Fatalf("write empty file: %v", err)
	}

	t.Setenv("HH_MATCHER_TEST_KEY", " from-env ")
	t.Setenv("HH_MATCHER_TEST_EMPTY", "")

	cases := []struct {
		name    string
		src     Source
		want    string
		wantErr string
	}{
		{name: "file wins", src: Source{File: keyFile, Value: "inline", Env: "HH_MATCHER_TEST_KEY"}, want: "from-file"},
		{name: "value before env", src: Source{Value: " inline ", Env: "HH_MATCHER_TEST_KEY"}, want: "inline"},
		{name: "env", src: Source{Env: "HH_MATCHER_TEST_KEY"}, want: "from-env"},
		{name: "missing file", src: Source{Name: "llm api key", File: filepath.Join(dir, "nope")}, wantErr: "reading llm api key from file"},
		{name: "empty file", src: Source{File: emptyFile, Value: "inline"}, wantErr: "is empty"},
		{name: "empty env", src: Source{Name: "llm api key", Env: "HH_MATCHER_TEST_EMPTY"}, wantErr: "set HH_MATCHER_TEST_EMPTY"},
		{name: "nothing", src: Source{}, wantErr: "secret is not configured"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Load(tc.src)
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

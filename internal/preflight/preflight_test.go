package preflight

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckFileReadable_OK(t *testing.T) {
	f := filepath.Join(t.TempDir(), "cookies.txt")
	if err := os.WriteFile(f, []byte("# Netscape HTTP Cookie File\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckFileReadable("test", f)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckFileReadable_Missing(t *testing.T) {
	result := CheckFileReadable("test", filepath.Join(t.TempDir(), "cookies.txt"))
	if result.Passed {
		t.Fatal("expected failure for missing file")
	}
}

func TestCheckFileReadable_Directory(t *testing.T) {
	result := CheckFileReadable("test", t.TempDir())
	if result.Passed {
		t.Fatal("expected failure for directory path")
	}
}

func TestCheckStravaCredentials(t *testing.T) {
	if r := CheckStravaCredentials("id", "secret"); !r.Passed {
		t.Fatalf("expected pass, got: %s", r.Detail)
	}
	if r := CheckStravaCredentials("", "secret"); r.Passed {
		t.Fatal("expected failure with missing client_id")
	}
	if r := CheckStravaCredentials("", ""); r.Passed {
		t.Fatal("expected failure with missing credentials")
	}
}

func TestCheckTokenFile(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "token.json")
	if r := CheckTokenFile(missing); r.Passed {
		t.Fatal("expected failure for missing token")
	}
	if err := os.WriteFile(missing, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	if r := CheckTokenFile(missing); !r.Passed {
		t.Fatalf("expected pass, got: %s", r.Detail)
	}
}

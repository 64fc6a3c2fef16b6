package ifit

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleCookies = "# Netscape HTTP Cookie File\n" +
	"# This is a generated file! Do not edit.\n" +
	"\n" +
	".ifit.com\tTRUE\t/\tTRUE\t1893456000\tsession\tabc123\n" +
	"#HttpOnly_.ifit.com\tTRUE\t/\tTRUE\t1893456000\tauth\tsecret\n" +
	"www.ifit.com\tFALSE\t/\tFALSE\t0\tprefs\tdark\n"

func writeCookies(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cookies.txt")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseCookiesFile(t *testing.T) {
	cookies, err := ParseCookiesFile(writeCookies(t, sampleCookies))
	if err != nil {
		t.Fatalf("ParseCookiesFile: %v", err)
	}
	if len(cookies) != 3 {
		t.Fatalf("expected 3 cookies, got %d", len(cookies))
	}

	session := cookies[0]
	if session.Name != "session" || session.Value != "abc123" {
		t.Fatalf("unexpected first cookie %+v", session)
	}
	if session.Domain != "ifit.com" || !session.Secure {
		t.Fatalf("unexpected first cookie attributes %+v", session)
	}
	if session.Expires.IsZero() {
		t.Fatal("expected expiry to be set")
	}

	auth := cookies[1]
	if !auth.HttpOnly {
		t.Fatal("expected HttpOnly cookie")
	}

	prefs := cookies[2]
	if !prefs.Expires.IsZero() {
		t.Fatal("expected session cookie without expiry")
	}
}

func TestParseCookiesFileRejectsMalformedLine(t *testing.T) {
	if _, err := ParseCookiesFile(writeCookies(t, "not a cookie line\n")); err == nil {
		t.Fatal("expected error for malformed line")
	}
}

func TestParseCookiesFileMissing(t *testing.T) {
	if _, err := ParseCookiesFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

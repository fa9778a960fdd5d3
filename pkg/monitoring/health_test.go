package monitoring

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestHealthChecker_Basic(t *testing.T) {
	hc := NewHealthChecker("svc", "v1")
	hc.AddCheck("ok", func() CheckResult { return CheckResult{Status: "healthy"} })
	status := hc.CheckHealth()
	if status.Status != "healthy" {
		t.Fatalf("expected healthy")
	}
}

func TestHealthChecker_DegradedWins(t *testing.T) {
	hc := NewHealthChecker("svc", "v1")
	hc.AddCheck("ok", func() CheckResult { return CheckResult{Status: StatusHealthy} })
	hc.AddCheck("meh", func() CheckResult { return CheckResult{Status: StatusDegraded} })
	if got := hc.CheckHealth().Status; got != StatusDegraded {
		t.Fatalf("expected degraded, got %q", got)
	}
}

func TestHTTPServiceHealthCheck(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) }))
	defer s.Close()
	res := HTTPServiceHealthCheck("svc", s.URL)()
	if res.Status != "healthy" {
		t.Fatalf("expected healthy")
	}
}

func TestDataDirectoryHealthCheck(t *testing.T) {
	dir := t.TempDir()

	res := DataDirectoryHealthCheck(filepath.Join(dir, "missing"), "Main.csv")()
	if res.Status != StatusUnhealthy {
		t.Fatalf("expected unhealthy for missing dir, got %q", res.Status)
	}

	res = DataDirectoryHealthCheck(dir, "Main.csv")()
	if res.Status != StatusDegraded {
		t.Fatalf("expected degraded for empty dir, got %q", res.Status)
	}

	if err := os.WriteFile(filepath.Join(dir, "AliceMain.csv"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	res = DataDirectoryHealthCheck(dir, "Main.csv")()
	if res.Status != StatusHealthy {
		t.Fatalf("expected healthy, got %q: %s", res.Status, res.Message)
	}
}

func TestFileHealthCheck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile_tags.csv")

	res := FileHealthCheck("tag table", path)()
	if res.Status != StatusDegraded {
		t.Fatalf("expected degraded for missing file, got %q", res.Status)
	}

	if err := os.WriteFile(path, []byte("Profil;Tag1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	res = FileHealthCheck("tag table", path)()
	if res.Status != StatusHealthy {
		t.Fatalf("expected healthy, got %q", res.Status)
	}
}

package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	parksite "github.com/kailas-cloud/parksite/pkg/sdk"
)

// writeConfig writes a config file for the given database block and returns its path.
func writeConfig(t *testing.T, database string) string {
	t.Helper()
	seed, err := filepath.Abs(filepath.Join("..", "..", "config", "seed.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	data := "http:\n  port: 8080\n" +
		"database:\n" + database + "  seed_file: " + seed + "\n" +
		"site:\n  base_url: https://example.test\n" +
		"logging:\n  level: error\n"
	path := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgFile, envName, verbose = "", "", false
	seedFile, serverURL, jsonOutput = "", "", false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--env", "test"}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "parksitectl dev") {
		t.Errorf("output = %q", out)
	}
}

func TestSearch_InProcessMemory(t *testing.T) {
	cfgPath := writeConfig(t, "  driver: memory\n")

	out, err := execute(t, "--config", cfgPath, "search", "cumple")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !strings.Contains(out, "/fiestas-y-eventos/fiestas-cumpleanos") {
		t.Errorf("missing birthday section:\n%s", out)
	}
	if !strings.Contains(out, "/blog/como-organizar-una-fiesta-de-cumpleanos") {
		t.Errorf("missing birthday post:\n%s", out)
	}
}

func TestSearch_ShortQuery(t *testing.T) {
	cfgPath := writeConfig(t, "  driver: memory\n")

	out, err := execute(t, "--config", cfgPath, "search", "a")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if strings.TrimSpace(out) != "no results" {
		t.Errorf("output = %q, want no results", out)
	}
}

func TestSearch_JSON(t *testing.T) {
	cfgPath := writeConfig(t, "  driver: memory\n")

	out, err := execute(t, "--config", cfgPath, "search", "--json", "malteada")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	var results []parksite.SearchResult
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(results) == 0 || results[0].Kind != parksite.KindMenu {
		t.Fatalf("results = %+v", results)
	}
	if results[0].Href != "/menu-alimentos" {
		t.Errorf("href = %q", results[0].Href)
	}
}

func TestSearch_Server(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" || r.URL.Query().Get("q") != "fiesta infantil" {
			t.Errorf("unexpected request %s", r.URL)
		}
		if !strings.HasPrefix(r.UserAgent(), "parksitectl/") {
			t.Errorf("User-Agent = %q", r.UserAgent())
		}
		_, _ = io.WriteString(w, `[{"kind":"page","title":"Fiestas y Eventos","href":"/fiestas-y-eventos"}]`)
	}))
	defer srv.Close()

	cfgPath := writeConfig(t, "  driver: memory\n")
	out, err := execute(t, "--config", cfgPath, "search", "--server", srv.URL, "fiesta", "infantil")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !strings.Contains(out, "Fiestas y Eventos") {
		t.Errorf("output = %q", out)
	}
}

func TestSearch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"code":"internal_error","message":"internal error"}`)
	}))
	defer srv.Close()

	cfgPath := writeConfig(t, "  driver: memory\n")
	if _, err := execute(t, "--config", cfgPath, "search", "--server", srv.URL, "salto"); err == nil {
		t.Fatal("expected error")
	}
}

func TestSeed_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "parksite.db")
	cfgPath := writeConfig(t, "  driver: sqlite\n  path: "+dbPath+"\n")

	out, err := execute(t, "--config", cfgPath, "seed")
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if !strings.HasPrefix(out, "seeded 4 faqs, 3 posts,") {
		t.Errorf("output = %q", out)
	}

	// Seeding twice keeps one copy per key.
	if _, err := execute(t, "--config", cfgPath, "seed"); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}

	out, err = execute(t, "--config", cfgPath, "sitemap")
	if err != nil {
		t.Fatalf("sitemap failed: %v", err)
	}
	if got := strings.Count(out, "https://example.test/blog/"); got != 3 {
		t.Errorf("blog urls = %d, want 3:\n%s", got, out)
	}
}

func TestSeed_MissingFile(t *testing.T) {
	cfgPath := writeConfig(t, "  driver: memory\n")
	if _, err := execute(t, "--config", cfgPath, "seed", "--file", filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}

func TestBadConfig(t *testing.T) {
	if _, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "search", "salto"); err == nil {
		t.Fatal("expected config error")
	}
}

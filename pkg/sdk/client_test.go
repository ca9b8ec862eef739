package parksite

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "   ", "ftp://example.com", "http://", "://bad"} {
		if _, err := New(raw); err == nil {
			t.Errorf("New(%q): expected error", raw)
		}
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	hc := &http.Client{}
	WithHTTPClient(hc).apply(cfg)
	if cfg.httpClient != hc {
		t.Error("expected http client to be set")
	}

	WithTimeout(time.Second).apply(cfg)
	if cfg.timeout != time.Second {
		t.Errorf("timeout = %v, want 1s", cfg.timeout)
	}

	WithUserAgent("parksitectl/1.0").apply(cfg)
	if cfg.userAgent != "parksitectl/1.0" {
		t.Errorf("userAgent = %q", cfg.userAgent)
	}

	logger := slog.Default()
	WithLogger(logger).apply(cfg)
	if cfg.logger != logger {
		t.Error("expected logger to be set")
	}

	reg := prometheus.NewRegistry()
	WithPrometheus(reg).apply(cfg)
	if cfg.metricsReg != reg {
		t.Error("expected registerer to be set")
	}
}

func TestSearch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "cumple años" {
			t.Errorf("q = %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"kind":"section","title":"Fiestas de Cumpleaños",`+
			`"href":"/fiestas-y-eventos/fiestas-cumpleanos"},`+
			`{"kind":"faq","title":"¿Puedo celebrar mi cumpleaños?","description":"Sí...","href":"/#faq","section_id":"faq"}]`)
	})

	results, err := c.Search(context.Background(), "cumple años")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Kind != KindSection || results[0].Href != "/fiestas-y-eventos/fiestas-cumpleanos" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].Kind != KindFAQ || results[1].SectionID != "faq" {
		t.Errorf("results[1] = %+v", results[1])
	}
}

func TestSearch_EmptyArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})

	results, err := c.Search(context.Background(), "a")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("results = %#v, want empty non-nil slice", results)
	}
}

func TestSearch_BadRequest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"code":"bad_request","message":"query parameter q is required"}`)
	})

	_, err := c.Search(context.Background(), "")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "query parameter q is required" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestListPosts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/blog" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("page") != "2" || r.URL.Query().Get("limit") != "3" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		_, _ = io.WriteString(w, `{"items":[{"slug":"a","title":"A","published_at":"2024-03-01T00:00:00Z"},`+
			`{"slug":"b","title":"B"}],"total":5,"page":2,"limit":3,"has_more":false}`)
	})

	page, err := c.ListPosts(context.Background(), 2, 3)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if page.Total != 5 || page.Page != 2 || page.Limit != 3 || page.HasMore {
		t.Errorf("page = %+v", page)
	}
	if len(page.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(page.Items))
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if page.Items[0].PublishedAt == nil || !page.Items[0].PublishedAt.Equal(want) {
		t.Errorf("published_at = %v, want %v", page.Items[0].PublishedAt, want)
	}
	if page.Items[1].PublishedAt != nil {
		t.Errorf("expected nil published_at, got %v", page.Items[1].PublishedAt)
	}
}

func TestListPosts_DefaultsOmitParams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("raw query = %q, want empty", r.URL.RawQuery)
		}
		_, _ = io.WriteString(w, `{"items":[],"total":0,"page":1,"limit":9,"has_more":false}`)
	})

	page, err := c.ListPosts(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if page.Limit != 9 {
		t.Errorf("limit = %d, want 9", page.Limit)
	}
}

func TestGetPost(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/api/blog/consejos-de-seguridad" {
			t.Errorf("path = %q", r.URL.EscapedPath())
		}
		_, _ = io.WriteString(w, `{"slug":"consejos-de-seguridad","title":"Consejos de seguridad"}`)
	})

	post, err := c.GetPost(context.Background(), "consejos-de-seguridad")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if post.Title != "Consejos de seguridad" {
		t.Errorf("title = %q", post.Title)
	}
}

func TestGetPost_EscapesSlugOnce(t *testing.T) {
	tests := []struct {
		slug    string
		escaped string
	}{
		{"día-del-niño", "/api/blog/d%C3%ADa-del-ni%C3%B1o"},
		{"día del niño", "/api/blog/d%C3%ADa%20del%20ni%C3%B1o"},
		{"fiestas/2024", "/api/blog/fiestas%2F2024"},
	}

	for _, tc := range tests {
		t.Run(tc.slug, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.EscapedPath(); got != tc.escaped {
					t.Errorf("escaped path = %q, want %q", got, tc.escaped)
				}
				if got := r.URL.Path; got != "/api/blog/"+tc.slug {
					t.Errorf("path = %q, want %q", got, "/api/blog/"+tc.slug)
				}
				_, _ = io.WriteString(w, `{"slug":"x","title":"Día del Niño"}`)
			})

			post, err := c.GetPost(context.Background(), tc.slug)
			if err != nil {
				t.Fatalf("GetPost: %v", err)
			}
			if post.Title != "Día del Niño" {
				t.Errorf("title = %q", post.Title)
			}
		})
	}
}

func TestGetPost_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"code":"not_found","message":"not found"}`)
	})

	_, err := c.GetPost(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetPost_EmptySlug(t *testing.T) {
	c := newTestClient(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("server must not be called")
	})

	_, err := c.GetPost(context.Background(), "  ")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestSitemap(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="UTF-8"?>` + "\n<urlset></urlset>"
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sitemap.xml" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/xml")
		_, _ = io.WriteString(w, doc)
	})

	body, err := c.Sitemap(context.Background())
	if err != nil {
		t.Fatalf("Sitemap: %v", err)
	}
	if string(body) != doc {
		t.Errorf("body = %q", body)
	}
}

func TestHealth_Degraded(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"status":"degraded","checks":{"database":"error"},"version":"dev"}`)
	})

	h, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if h.Healthy() {
		t.Error("expected unhealthy")
	}
	if h.Checks["database"] != "error" {
		t.Errorf("checks = %v", h.Checks)
	}
}

func TestServerError_PlainBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})

	_, err := c.Search(context.Background(), "salto")
	if !errors.Is(err, ErrServer) {
		t.Fatalf("err = %v, want ErrServer", err)
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error %q should mention the status", err)
	}
}

func TestUserAgentAndPathPrefix(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/site/api/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if ua := r.Header.Get("User-Agent"); ua != "parksitectl/test" {
			t.Errorf("User-Agent = %q", ua)
		}
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/site/", WithUserAgent("parksitectl/test"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Search(context.Background(), "salto"); err != nil {
		t.Fatalf("Search: %v", err)
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/blog/") {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"code":"not_found","message":"not found"}`)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	}, WithPrometheus(reg))

	_, _ = c.Search(context.Background(), "salto")
	_, _ = c.GetPost(context.Background(), "missing")

	m, err := newSDKMetrics(reg)
	if err != nil {
		t.Fatalf("reuse metrics: %v", err)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("search", "ok")); got != 1 {
		t.Errorf("search ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("get_post", "not_found")); got != 1 {
		t.Errorf("get_post not_found = %v, want 1", got)
	}
}

func TestObserver_Nil(t *testing.T) {
	var o *observer
	o.observe("search", time.Now(), errors.New("boom"))
}

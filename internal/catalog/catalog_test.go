package catalog_test

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/michaelbrown/adguard-mcp/internal/adguard"
	"github.com/michaelbrown/adguard-mcp/internal/catalog"
	"github.com/michaelbrown/adguard-mcp/internal/tools"
)

func testClient(t *testing.T, handler http.Handler) *adguard.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return adguard.NewClient(srv.URL, "admin", "hunter2", 5*time.Second, log.New(io.Discard, "", 0), false)
}

func TestCatalogIsWellFormed(t *testing.T) {
	all := catalog.All(testClient(t, http.NotFoundHandler()))

	if len(all) < 60 {
		t.Fatalf("catalog has %d tools, expected the full set", len(all))
	}

	seen := map[string]bool{}
	categories := map[tools.Category]bool{}
	for _, d := range all {
		if seen[d.Name] {
			t.Errorf("duplicate tool name %s", d.Name)
		}
		seen[d.Name] = true
		categories[d.Category] = true

		if d.Name == "" || d.Description == "" {
			t.Errorf("tool %q missing name or description", d.Name)
		}
		if !tools.ValidCategory(d.Category) {
			t.Errorf("tool %s has unknown category %q", d.Name, d.Category)
		}
		if d.Tier != tools.TierReadOnly && d.Tier != tools.TierFull {
			t.Errorf("tool %s has invalid tier %q", d.Name, d.Tier)
		}
		if d.Handler == nil {
			t.Errorf("tool %s has no handler", d.Name)
		}
		if d.Destructive && d.Tier != tools.TierFull {
			t.Errorf("destructive tool %s must require full access", d.Name)
		}

		for _, required := range d.Schema.Required {
			if _, ok := d.Schema.Properties[required]; !ok {
				t.Errorf("tool %s requires undeclared parameter %q", d.Name, required)
			}
		}
		for name, prop := range d.Schema.Properties {
			switch prop.Type {
			case "string", "number", "boolean", "array", "object":
			default:
				t.Errorf("tool %s parameter %q has unsupported type %q", d.Name, name, prop.Type)
			}
		}
	}

	for _, category := range tools.AllCategories {
		if !categories[category] {
			t.Errorf("no tools in category %s", category)
		}
	}
}

func TestGetStatusFormatsResponse(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/control/status" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"version": "v0.107.52",
			"protection_enabled": true,
			"running": true,
			"dns_port": 53,
			"http_port": 3000,
			"dns_addresses": ["192.168.1.2"]
		}`)
	}))

	text, err := findTool(t, c, "get_status").Handler(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	for _, want := range []string{"v0.107.52", "Protection: enabled", "DNS port: 53", "192.168.1.2"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestListRewritesFormatsResponse(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"domain": "nas.home.lan", "answer": "192.168.1.10"}]`)
	}))

	text, err := findTool(t, c, "list_rewrites").Handler(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !strings.Contains(text, "nas.home.lan -> 192.168.1.10") {
		t.Errorf("output = %q", text)
	}
}

func TestUpdateRewriteStopsAfterFailedDelete(t *testing.T) {
	var calls []string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
		http.Error(w, "no such rewrite", http.StatusInternalServerError)
	}))

	_, err := findTool(t, c, "update_rewrite").Handler(context.Background(), map[string]any{
		"domain":     "nas.home.lan",
		"answer":     "192.168.1.10",
		"new_answer": "192.168.1.11",
	})
	if err == nil {
		t.Fatal("expected error from failed delete")
	}
	if len(calls) != 1 || calls[0] != "/control/rewrite/delete" {
		t.Errorf("calls = %v, add must not run after failed delete", calls)
	}
}

func TestUpdateRewriteReportsPartialFailure(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/control/rewrite/add" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	_, err := findTool(t, c, "update_rewrite").Handler(context.Background(), map[string]any{
		"domain":     "nas.home.lan",
		"answer":     "192.168.1.10",
		"new_answer": "192.168.1.11",
	})
	if err == nil {
		t.Fatal("expected error from failed add")
	}
	if !strings.Contains(err.Error(), "old rewrite deleted") {
		t.Errorf("error = %q, should flag the partial state", err)
	}
}

func TestCheckHostBuildsQuery(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("name"); got != "ads.example.com" {
			t.Errorf("name = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"reason": "FilteredBlackList", "rules": [{"text": "||ads.example.com^", "filter_list_id": 1}]}`)
	}))

	text, err := findTool(t, c, "check_host").Handler(context.Background(), map[string]any{
		"name": "ads.example.com",
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !strings.Contains(text, "FilteredBlackList") || !strings.Contains(text, "||ads.example.com^") {
		t.Errorf("output = %q", text)
	}
}

func TestMobileConfigReturnsRawBody(t *testing.T) {
	const plist = `<?xml version="1.0"?><plist></plist>`
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("host"); got != "dns.example.com" {
			t.Errorf("host = %q", got)
		}
		w.Header().Set("Content-Type", "application/xml")
		io.WriteString(w, plist)
	}))

	text, err := findTool(t, c, "get_doh_mobileconfig").Handler(context.Background(), map[string]any{
		"host": "dns.example.com",
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if text != plist {
		t.Errorf("output = %q, want verbatim plist", text)
	}
}

func findTool(t *testing.T, c *adguard.Client, name string) tools.Descriptor {
	t.Helper()
	for _, d := range catalog.All(c) {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("tool %s not in catalog", name)
	return tools.Descriptor{}
}

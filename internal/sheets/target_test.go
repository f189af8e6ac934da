package sheets

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestRangeForTitle_Escaping verifies single quotes in sheet titles are
// doubled inside the quoted A1 range.
func TestRangeForTitle_Escaping(t *testing.T) {
	got := RangeForTitle("O'Brien's Data")
	want := "'O''Brien''s Data'!A:F"
	if got != want {
		t.Errorf("range: want %q, got %q", want, got)
	}
}

// TestResolve_ExplicitRangeWins verifies that an explicit range short-circuits
// everything, including the metadata lookup.
func TestResolve_ExplicitRangeWins(t *testing.T) {
	r := NewResolver(TargetConfig{
		SpreadsheetID: "abc123",
		GID:           "42",
		Range:         "Data!A:F",
	})
	r.apiBase = "http://127.0.0.1:1" // any metadata fetch would fail loudly

	tgt, err := r.Resolve("tok")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if tgt.SpreadsheetID != "abc123" || tgt.Range != "Data!A:F" {
		t.Errorf("unexpected target: %+v", tgt)
	}
}

// TestResolve_FromShareURL verifies that both the spreadsheet id and the gid
// are recovered from a shared-link URL, and the gid is resolved to its sheet
// title via metadata.
func TestResolve_FromShareURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/v4/spreadsheets/1aBcD-eF_g" {
			t.Errorf("unexpected metadata path %q", req.URL.Path)
		}
		if got := req.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("authorization header: %q", got)
		}
		w.Write([]byte(`{"sheets":[
			{"properties":{"sheetId":0,"title":"Лист1"}},
			{"properties":{"sheetId":777,"title":"O'Brien's Data"}}
		]}`))
	}))
	defer srv.Close()

	r := NewResolver(TargetConfig{
		SpreadsheetURL: "https://docs.google.com/spreadsheets/d/1aBcD-eF_g/edit#gid=777",
	})
	r.apiBase = srv.URL

	tgt, err := r.Resolve("tok")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if tgt.SpreadsheetID != "1aBcD-eF_g" {
		t.Errorf("spreadsheet id: %q", tgt.SpreadsheetID)
	}
	if tgt.Range != "'O''Brien''s Data'!A:F" {
		t.Errorf("range: %q", tgt.Range)
	}
}

// TestResolve_UnknownGID verifies that a gid matching no sheet fails with
// the not-found kind.
func TestResolve_UnknownGID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"sheets":[{"properties":{"sheetId":0,"title":"Лист1"}}]}`))
	}))
	defer srv.Close()

	r := NewResolver(TargetConfig{SpreadsheetID: "abc", GID: "555"})
	r.apiBase = srv.URL

	_, err := r.Resolve("tok")
	se, ok := err.(*Error)
	if !ok || se.Kind != KindNotFound {
		t.Fatalf("expected KindNotFound error, got %v", err)
	}
}

// TestResolve_DefaultsWithoutGID verifies the fixed default range is used
// when neither range nor gid is configured, without any metadata fetch.
func TestResolve_DefaultsWithoutGID(t *testing.T) {
	r := NewResolver(TargetConfig{SpreadsheetID: "abc"})
	r.apiBase = "http://127.0.0.1:1"

	tgt, err := r.Resolve("tok")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if tgt.Range != defaultRange {
		t.Errorf("range: want %q, got %q", defaultRange, tgt.Range)
	}
}

// TestResolve_Cached verifies the resolved target is reused: the metadata
// endpoint must be hit exactly once across repeated writes.
func TestResolve_Cached(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		hits++
		w.Write([]byte(`{"sheets":[{"properties":{"sheetId":9,"title":"Data"}}]}`))
	}))
	defer srv.Close()

	r := NewResolver(TargetConfig{SpreadsheetID: "abc", GID: "9"})
	r.apiBase = srv.URL

	for i := 0; i < 3; i++ {
		if _, err := r.Resolve("tok"); err != nil {
			t.Fatalf("Resolve #%d: %v", i, err)
		}
	}
	if hits != 1 {
		t.Errorf("metadata fetches: want 1, got %d", hits)
	}
}

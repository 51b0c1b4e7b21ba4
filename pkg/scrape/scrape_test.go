package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fiveTablePage mimics the reference page shape: four unrelated tables
// followed by the resort table at index 4.
const fiveTablePage = `<html><body>
<table><tr><th>nav</th></tr><tr><td>x</td></tr></table>
<table><tr><th>legend</th></tr><tr><td>x</td></tr></table>
<table><tr><th>notes</th></tr><tr><td>x</td></tr></table>
<table><tr><th>links</th></tr><tr><td>x</td></tr></table>
<table>
  <tr><th>Resort</th><th>City</th><th>Snowfall</th><th>Refs</th></tr>
  <tr><td>Alta</td><td>Sandy</td><td>545</td><td>[1]</td></tr>
  <tr><td>Brighton</td><td>Brighton</td><td>500</td><td>[2]</td></tr>
</table>
</body></html>`

func serve(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchRawTable_SelectsFifthTable(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fiveTablePage))
	})

	raw, err := FetchRawTable(context.Background(), srv.URL, "data@example.com")
	if err != nil {
		t.Fatalf("FetchRawTable() error = %v", err)
	}
	if raw.NumColumns() != 4 {
		t.Errorf("NumColumns() = %d, want 4", raw.NumColumns())
	}
	if raw.Columns[0] != "Resort" {
		t.Errorf("Columns[0] = %q, want Resort", raw.Columns[0])
	}
	if raw.NumRows() != 2 {
		t.Errorf("NumRows() = %d, want 2", raw.NumRows())
	}
}

func TestFetchRawTable_SendsContactUserAgent(t *testing.T) {
	var gotAgent string
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.UserAgent()
		_, _ = w.Write([]byte(fiveTablePage))
	})

	if _, err := FetchRawTable(context.Background(), srv.URL, "data@example.com"); err != nil {
		t.Fatalf("FetchRawTable() error = %v", err)
	}
	want := "snowline-scraper/1.0 (+data@example.com)"
	if gotAgent != want {
		t.Errorf("User-Agent = %q, want %q", gotAgent, want)
	}
}

func TestFetchRawTable_HTTPErrorIsFetchError(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := FetchRawTable(context.Background(), srv.URL, "data@example.com")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T, want *FetchError", err)
	}
	if fe.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", fe.StatusCode)
	}
}

func TestFetchRawTable_ConnectionFailureIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := FetchRawTable(context.Background(), url, "data@example.com")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T, want *FetchError", err)
	}
	if fe.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport failure", fe.StatusCode)
	}
}

func TestFetchRawTable_TooFewTables(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<table><tr><th>only</th></tr><tr><td>x</td></tr></table>`))
	})

	_, err := FetchRawTable(context.Background(), srv.URL, "data@example.com")
	if !errors.Is(err, ErrTableNotFound) {
		t.Fatalf("error = %v, want ErrTableNotFound", err)
	}
}

func TestFetchRawTable_InvalidURL(t *testing.T) {
	if _, err := FetchRawTable(context.Background(), "not a url", "x"); err == nil {
		t.Fatal("expected error for malformed URL")
	}
}

func TestRawTable_HeaderSignatureSelection(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fiveTablePage))
	})

	s := New(Config{
		Contact:         "data@example.com",
		HeaderSignature: []string{"resort", "snowfall"},
	})
	defer func() { _ = s.Close() }()

	raw, err := s.RawTable(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("RawTable() error = %v", err)
	}
	if raw.Columns[0] != "Resort" {
		t.Errorf("selected wrong table, Columns = %v", raw.Columns)
	}
}

func TestRawTable_HeaderSignatureNoMatch(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fiveTablePage))
	})

	s := New(Config{
		Contact:         "data@example.com",
		HeaderSignature: []string{"resort", "helipads"},
	})
	defer func() { _ = s.Close() }()

	_, err := s.RawTable(context.Background(), srv.URL)
	if !errors.Is(err, ErrTableNotFound) {
		t.Fatalf("error = %v, want ErrTableNotFound", err)
	}
}

func TestUserAgent(t *testing.T) {
	if got := UserAgent("team@example.com"); got != "snowline-scraper/1.0 (+team@example.com)" {
		t.Errorf("UserAgent() = %q", got)
	}
	if got := UserAgent(""); strings.Contains(got, "(+") {
		t.Errorf("empty contact should not leave a placeholder: %q", got)
	}
}

func TestHeaderMatches(t *testing.T) {
	tests := []struct {
		name      string
		columns   []string
		signature []string
		want      bool
	}{
		{
			name:      "case-insensitive substring",
			columns:   []string{"Resort name", "Average annual snowfall (in)"},
			signature: []string{"resort", "snowfall"},
			want:      true,
		},
		{
			name:      "missing entry",
			columns:   []string{"Resort name"},
			signature: []string{"resort", "snowfall"},
			want:      false,
		},
		{
			name:      "empty signature matches anything",
			columns:   []string{"whatever"},
			signature: nil,
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := headerMatches(tt.columns, tt.signature); got != tt.want {
				t.Errorf("headerMatches(%v, %v) = %v, want %v", tt.columns, tt.signature, got, tt.want)
			}
		})
	}
}

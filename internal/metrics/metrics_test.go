package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserver_CountsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	o, err := NewObserver(reg, "/var/log/app.log")
	if err != nil {
		t.Fatalf("NewObserver returned error: %v", err)
	}

	o.OnLine("hello")
	o.OnLine("world!")
	o.OnException(errors.New("boom"))
	o.OnFileRemoved()

	if got := testutil.ToFloat64(o.lines); got != 2 {
		t.Fatalf("lines = %v, want 2", got)
	}
	if got := testutil.ToFloat64(o.bytes); got != 11 {
		t.Fatalf("bytes = %v, want 11", got)
	}
	if got := testutil.ToFloat64(o.exceptions); got != 1 {
		t.Fatalf("exceptions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(o.removed); got != 1 {
		t.Fatalf("removed = %v, want 1", got)
	}
	if got := testutil.ToFloat64(o.notFound); got != 0 {
		t.Fatalf("notFound = %v, want 0", got)
	}
	if got := testutil.ToFloat64(o.lastLine); got <= 0 {
		t.Fatalf("lastLine = %v, want a timestamp", got)
	}
}

func TestNewObserver_DuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewObserver(reg, "a.log"); err != nil {
		t.Fatalf("first NewObserver returned error: %v", err)
	}
	if _, err := NewObserver(reg, "a.log"); err == nil {
		t.Fatalf("second NewObserver returned nil error, want duplicate registration error")
	}
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	o, err := NewObserver(reg, "app.log")
	if err != nil {
		t.Fatalf("NewObserver returned error: %v", err)
	}
	o.OnFileNotFound()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `logtailer_file_not_found_total{path="app.log"} 1`) {
		t.Fatalf("metrics body missing counter:\n%s", body)
	}
}

package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"framekit/internal/testutils"
)

const appShellHTML = `<!DOCTYPE html>
<html><head><title> framekit dev </title></head>
<body><div id="app"></div><script type="module" src="/src/main.js"></script></body></html>`

func newDevServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestDevServerProbe_AppShell(t *testing.T) {
	server := newDevServer(t, http.StatusOK, appShellHTML)
	probe := NewDevServerProbe(2*time.Second, &testutils.RecordingLogger{})

	result, err := probe.Probe(context.Background(), server.URL+"/")
	if err != nil {
		t.Fatalf("Probe() returned error: %v", err)
	}
	if !result.Reachable || result.StatusCode != http.StatusOK {
		t.Errorf("Expected reachable 200, got %+v", result)
	}
	if !result.HasMountPoint {
		t.Error("Expected the #app mount point to be found")
	}
	if result.Title != "framekit dev" {
		t.Errorf("Title = %q, want trimmed title", result.Title)
	}
}

func TestDevServerProbe_NoMountPoint(t *testing.T) {
	server := newDevServer(t, http.StatusOK, "<html><head><title>other</title></head><body></body></html>")
	logger := &testutils.RecordingLogger{}

	result := NewDevServerProbe(2*time.Second, logger).Report(context.Background(), server.URL+"/")
	if result.HasMountPoint {
		t.Error("Did not expect a mount point")
	}
	if _, ok := logger.Find("warn", "Dev server answered without the UI mount point"); !ok {
		t.Error("Expected a warning about the missing mount point")
	}
}

func TestDevServerProbe_ErrorStatus(t *testing.T) {
	server := newDevServer(t, http.StatusInternalServerError, "boom")

	result, err := NewDevServerProbe(2*time.Second, nil).Probe(context.Background(), server.URL+"/")
	if err == nil {
		t.Fatal("Expected an error for a 500 response")
	}
	if !result.Reachable || result.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected reachable 500, got %+v", result)
	}
}

func TestDevServerProbe_Unreachable(t *testing.T) {
	server := newDevServer(t, http.StatusOK, appShellHTML)
	url := server.URL + "/"
	server.Close()

	logger := &testutils.RecordingLogger{}
	result := NewDevServerProbe(time.Second, logger).Report(context.Background(), url)

	if result.Reachable {
		t.Error("Closed server should not be reachable")
	}
	if len(logger.Calls("warn")) != 1 {
		t.Errorf("Expected one warning, got %d", len(logger.Calls("warn")))
	}
}

func TestDevServerProbe_ReportSuccess(t *testing.T) {
	server := newDevServer(t, http.StatusOK, appShellHTML)
	logger := &testutils.RecordingLogger{}

	NewDevServerProbe(2*time.Second, logger).Report(context.Background(), server.URL+"/")

	call, ok := logger.Find("info", "Operation completed: probe_dev_server")
	if !ok {
		t.Fatal("Expected the successful probe to be logged")
	}
	if fields := testutils.FieldsToMap(t, call.Fields); fields["status"] != http.StatusOK {
		t.Errorf("status field = %v", fields["status"])
	}
}

package middleware

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestDecompressRequest(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte(`{"userId":"u1"}`))
	_ = gz.Close()

	router := gin.New()
	router.Use(DecompressRequest(MaxRequestBodyBytes))
	var body string
	router.POST("/", func(c *gin.Context) {
		data, _ := io.ReadAll(c.Request.Body)
		body = string(data)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(bytes.NewReader(buf.Bytes())))
	req.Header.Set("Content-Encoding", "gzip")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if body != `{"userId":"u1"}` {
		t.Fatalf("expected decompressed payload, got %q", body)
	}

	req = httptest.NewRequest(http.MethodPost, "/", io.NopCloser(bytes.NewReader([]byte("plain"))))
	resp = httptest.NewRecorder()
	body = ""
	router.ServeHTTP(resp, req)
	if body != "plain" {
		t.Fatalf("expected plain body, got %q", body)
	}
}

func TestDecompressRequestRejectsCorruptBody(t *testing.T) {
	router := gin.New()
	router.Use(DecompressRequest(MaxRequestBodyBytes))
	called := false
	router.POST("/", func(c *gin.Context) { called = true })

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if called {
		t.Fatal("handler must not run for corrupt body")
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected json content type, got %q", ct)
	}
	var payload map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode body %q: %v", resp.Body.String(), err)
	}
	if payload["message"] != "Invalid request body" {
		t.Fatalf("unexpected body %v", payload)
	}
}

func TestDecompressRequestLimitsBody(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write(bytes.Repeat([]byte("a"), 64))
	_ = gz.Close()

	router := gin.New()
	router.Use(DecompressRequest(16))
	var readErr error
	var read int
	router.POST("/", func(c *gin.Context) {
		data, err := io.ReadAll(c.Request.Body)
		read, readErr = len(data), err
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(buf.Bytes()))
	req.Header.Set("Content-Encoding", "gzip")
	router.ServeHTTP(httptest.NewRecorder(), req)

	var tooLarge *http.MaxBytesError
	if !errors.As(readErr, &tooLarge) {
		t.Fatalf("expected max bytes error, got %v", readErr)
	}
	if read > 16 {
		t.Fatalf("expected at most 16 bytes, read %d", read)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("pool exhausted"))
		c.Status(http.StatusInternalServerError)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log entry: %v", err)
	}
	if entry["level"] != "INFO" || entry["path"] != "/ok" || entry["status"] != float64(http.StatusOK) {
		t.Fatalf("unexpected log entry %v", entry)
	}
	if _, ok := entry["error"]; ok {
		t.Fatalf("unexpected error attribute %v", entry)
	}

	buf.Reset()
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))
	entry = nil
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log entry: %v", err)
	}
	if entry["level"] != "ERROR" {
		t.Fatalf("expected error level, got %v", entry["level"])
	}
	if msg, _ := entry["error"].(string); !strings.Contains(msg, "pool exhausted") {
		t.Fatalf("expected cause in log entry, got %v", entry)
	}
}

package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strichware/bardec/internal/pipeline"
	"github.com/strichware/bardec/internal/testutil"
)

func newTestServer(t *testing.T, mutate ...func(*Config)) *Server {
	t.Helper()
	cfg := Config{
		CORSOrigin:  "*",
		MaxUploadMB: 10,
		TimeoutSec:  10,
		Pipeline:    pipeline.DefaultConfig(),
	}
	for _, m := range mutate {
		m(&cfg)
	}
	s, err := NewServer(cfg)
	require.NoError(t, err)
	return s
}

func multipartImage(t *testing.T, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", "barcode.png")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.healthHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.NotEmpty(t, resp.Time)
}

func TestDecodeMultipart(t *testing.T) {
	s := newTestServer(t)
	png := testutil.PNGBytes(t, testutil.RenderEAN13(t, "5901234123457"))
	body, contentType := multipartImage(t, png)

	req := httptest.NewRequest(http.MethodPost, "/decode", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.decodeHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp DecodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success, "error: %s", resp.Error)
	require.NotNil(t, resp.Scan)
	assert.Equal(t, "5901234123457", resp.Scan.Payload)
	assert.Equal(t, "ean13", resp.Scan.Symbology)

	// The scan must be recorded in the store.
	assert.Equal(t, 1, s.store.Len())
}

func TestDecodeBase64(t *testing.T) {
	s := newTestServer(t)
	png := testutil.PNGBytes(t, testutil.RenderEAN8(t, "96385074"))
	body, err := json.Marshal(DecodeRequest{
		ImageBase64: base64.StdEncoding.EncodeToString(png),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/decode", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.decodeHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp DecodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success, "error: %s", resp.Error)
	assert.Equal(t, "96385074", resp.Scan.Payload)
}

func TestDecodeInvalidImage(t *testing.T) {
	s := newTestServer(t)
	body, contentType := multipartImage(t, []byte("not an image"))

	req := httptest.NewRequest(http.MethodPost, "/decode", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.decodeHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, s.store.Len())
}

func TestDecodeNoPattern(t *testing.T) {
	s := newTestServer(t)
	png := testutil.PNGBytes(t, testutil.UniformImage(120, 80, 128))
	body, contentType := multipartImage(t, png)

	req := httptest.NewRequest(http.MethodPost, "/decode", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.decodeHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp DecodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, pipeline.ErrNoPattern.Error(), resp.Error)
	assert.Zero(t, s.store.Len())
}

func TestDecodeMissingFile(t *testing.T) {
	s := newTestServer(t)
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/decode", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.decodeHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScansListAndClear(t *testing.T) {
	s := newTestServer(t)
	s.store.Add("5901234123457", "ean13")
	s.store.Add("96385074", "ean8")

	rec := httptest.NewRecorder()
	s.scansHandler(rec, httptest.NewRequest(http.MethodGet, "/scans", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ScansResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)

	rec = httptest.NewRecorder()
	s.scansHandler(rec, httptest.NewRequest(http.MethodDelete, "/scans", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, s.store.Len())
}

func TestProductsRegisterAndLookup(t *testing.T) {
	s := newTestServer(t)

	body, _ := json.Marshal(ProductRequest{Payload: "5901234123457", Name: "Sparkling Water 1L"})
	rec := httptest.NewRecorder()
	s.productsHandler(rec, httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	s.productsHandler(rec, httptest.NewRequest(http.MethodGet, "/products?payload=5901234123457", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sparkling Water 1L")

	rec = httptest.NewRecorder()
	s.productsHandler(rec, httptest.NewRequest(http.MethodGet, "/products?payload=0000000000000", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductsRejectsImplausiblePayload(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(ProductRequest{Payload: "123", Name: "Too short"})
	rec := httptest.NewRecorder()
	s.productsHandler(rec, httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	handler := s.corsMiddleware(s.healthHandler)

	req := httptest.NewRequest(http.MethodOptions, "/health", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitMiddleware(t *testing.T) {
	s := newTestServer(t, func(c *Config) { c.RateLimitPerMin = 2 })
	handler := s.rateLimitMiddleware(s.healthHandler)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/decode", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	req := httptest.NewRequest(http.MethodGet, "/decode", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// A different client is unaffected.
	req = httptest.NewRequest(http.MethodGet, "/decode", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.5:9999"
	assert.Equal(t, "192.168.1.5", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", getClientIP(req))

	req.Header.Del("X-Forwarded-For")
	req.Header.Set("X-Real-IP", " 203.0.113.8 ")
	assert.Equal(t, "203.0.113.8", strings.TrimSpace(getClientIP(req)))
}

package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/strichware/bardec/internal/pipeline"
	"github.com/strichware/bardec/internal/store"
)

// HealthResponse is the /health payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// DecodeRequest is the JSON body accepted by /decode as an alternative to a
// multipart upload.
type DecodeRequest struct {
	ImageBase64 string `json:"image_base64"`
}

// DecodeResponse is the /decode payload.
type DecodeResponse struct {
	Success bool             `json:"success"`
	Scan    *store.Scan      `json:"scan,omitempty"`
	Result  *pipeline.Result `json:"result,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// ScansResponse is the GET /scans payload.
type ScansResponse struct {
	Scans []store.Scan `json:"scans"`
	Count int          `json:"count"`
}

// ProductRequest registers a payload-to-name mapping via POST /products.
type ProductRequest struct {
	Payload string `json:"payload"`
	Name    string `json:"name"`
}

// ErrorResponse is the generic error payload.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status: "healthy",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// decodeHandler accepts an image as a multipart upload (field "image") or a
// JSON body with base64 content, runs the pipeline, and records successful
// scans in the store.
func (s *Server) decodeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadMB*1024*1024)

	data, ok := s.readImageData(w, r)
	if !ok {
		return
	}
	uploadSizeBytes.Observe(float64(len(data)))

	start := time.Now()
	result := s.pipeline.DecodeBytes(r.Context(), data)
	decodeDuration.Observe(time.Since(start).Seconds())

	if !result.Success {
		symbology := "none"
		status := "no_pattern"
		code := http.StatusOK
		switch {
		case errors.Is(result.Err, pipeline.ErrImageDecode):
			status = "bad_image"
			code = http.StatusBadRequest
		case errors.Is(result.Err, pipeline.ErrBudgetExceeded):
			status = "budget_exceeded"
		}
		decodeRequestsTotal.WithLabelValues(symbology, status).Inc()
		s.writeJSON(w, code, DecodeResponse{
			Success: false,
			Result:  &result,
			Error:   result.Error,
		})
		return
	}

	decodeRequestsTotal.WithLabelValues(result.Symbology, "success").Inc()
	scan := s.store.Add(result.Payload, result.Symbology)

	s.writeJSON(w, http.StatusOK, DecodeResponse{
		Success: true,
		Scan:    &scan,
		Result:  &result,
	})
}

// readImageData extracts image bytes from a multipart form or JSON body.
func (s *Server) readImageData(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(s.maxUploadMB * 1024 * 1024); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "too large") {
				s.writeErrorResponse(w, "File too large", http.StatusRequestEntityTooLarge)
			} else {
				s.writeErrorResponse(w, "Failed to parse form data", http.StatusBadRequest)
			}
			return nil, false
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			s.writeErrorResponse(w, "No image file provided", http.StatusBadRequest)
			return nil, false
		}
		defer func() { _ = file.Close() }()

		if header.Size > s.maxUploadMB*1024*1024 {
			s.writeErrorResponse(w, "File too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}

		data, err := io.ReadAll(file)
		if err != nil {
			s.writeErrorResponse(w, "Failed to read image data", http.StatusInternalServerError)
			return nil, false
		}
		return data, true
	}

	var req DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return nil, false
	}
	if req.ImageBase64 == "" {
		s.writeErrorResponse(w, "No image data provided", http.StatusBadRequest)
		return nil, false
	}
	data, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		s.writeErrorResponse(w, "Invalid base64 image data", http.StatusBadRequest)
		return nil, false
	}
	return data, true
}

// scansHandler lists (GET) or clears (DELETE) the scan log.
func (s *Server) scansHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		scans := s.store.List()
		s.writeJSON(w, http.StatusOK, ScansResponse{Scans: scans, Count: len(scans)})
	case http.MethodDelete:
		removed := s.store.Clear()
		s.writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// productsHandler looks up (GET) or registers (POST) product names.
func (s *Server) productsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		payload := r.URL.Query().Get("payload")
		if payload == "" {
			s.writeJSON(w, http.StatusOK, s.store.Products())
			return
		}
		name, ok := s.store.Product(payload)
		if !ok {
			s.writeErrorResponse(w, "Unknown product", http.StatusNotFound)
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]string{"payload": payload, "name": name})
	case http.MethodPost:
		var req ProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeErrorResponse(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Payload == "" || req.Name == "" {
			s.writeErrorResponse(w, "payload and name are required", http.StatusBadRequest)
			return
		}
		if !pipeline.ValidatePayload(req.Payload) {
			s.writeErrorResponse(w, "payload is not a plausible product code", http.StatusBadRequest)
			return
		}
		s.store.SetProduct(req.Payload, req.Name)
		w.WriteHeader(http.StatusCreated)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeErrorResponse writes a JSON error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	s.writeJSON(w, statusCode, ErrorResponse{Success: false, Error: message})
}

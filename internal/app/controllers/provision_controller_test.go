package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusgate/gatepass/internal/app/models/dto"
	"github.com/campusgate/gatepass/internal/app/services"
)

type stubIdentity struct {
	failing map[string]error
}

func (s *stubIdentity) CreateAccount(ctx context.Context, email, password string, meta services.AccountMetadata) error {
	if err, ok := s.failing[email]; ok {
		return err
	}
	return nil
}

func provisionRouter(identity services.IdentityProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewProvisionController(services.NewProvisionService(identity, zerolog.Nop()))
	router := gin.New()
	router.POST("/admin/provision", controller.ProvisionStudents)
	return router
}

func multipartUpload(t *testing.T, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "students.json")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("writing upload: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestProvisionEndpointReturnsLogs(t *testing.T) {
	router := provisionRouter(&stubIdentity{
		failing: map[string]error{"bad": fmt.Errorf("invalid email address")},
	})

	upload := []byte(`[
		{"email":"a@x.edu","password":"password-1","name":"A","roll":"R1","department":"Computer Science"},
		{"email":"bad","password":"password-2","name":"B","roll":"R2","department":"Computer Science"},
		{"email":"c@x.edu","password":"password-3","name":"C","roll":"R3","department":"Computer Science"}
	]`)
	body, contentType := multipartUpload(t, upload)

	req := httptest.NewRequest(http.MethodPost, "/admin/provision", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Per-account failures stay in-band; the envelope itself succeeded.
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var resp dto.ProvisionLogResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	want := []string{
		"Created: a@x.edu",
		"bad: invalid email address",
		"Created: c@x.edu",
	}
	if len(resp.Logs) != len(want) {
		t.Fatalf("logs = %v, want %v", resp.Logs, want)
	}
	for i := range want {
		if resp.Logs[i] != want[i] {
			t.Errorf("logs[%d] = %q, want %q", i, resp.Logs[i], want[i])
		}
	}
}

func TestProvisionEndpointRejectsUnparseableEnvelope(t *testing.T) {
	router := provisionRouter(&stubIdentity{})

	body, contentType := multipartUpload(t, []byte(`{"not":"an array"`))

	req := httptest.NewRequest(http.MethodPost, "/admin/provision", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp dto.ProvisionErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Error == "" {
		t.Error("error message empty, want a parse failure description")
	}
}

func TestProvisionEndpointRequiresFile(t *testing.T) {
	router := provisionRouter(&stubIdentity{})

	req := httptest.NewRequest(http.MethodPost, "/admin/provision", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 without upload", w.Code)
	}
}

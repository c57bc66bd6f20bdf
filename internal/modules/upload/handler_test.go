package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhlp18/homestay-booking-sub000/internal/domain"
)

type memRepo struct {
	saved []*domain.Upload
}

func (m *memRepo) Create(ctx context.Context, u *domain.Upload) error {
	m.saved = append(m.saved, u)
	return nil
}

func (m *memRepo) ListUnreferenced(context.Context, time.Time, int) ([]domain.Upload, error) {
	return nil, nil
}

func (m *memRepo) Delete(context.Context, string) error { return nil }

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

func setup(t *testing.T, maxBytes int64) (*gin.Engine, *memRepo, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	repo := &memRepo{}
	svc := NewService(repo, dir, "", maxBytes)
	svc.now = func() time.Time { return time.Date(2025, 6, 7, 10, 0, 0, 0, time.UTC) }

	log, _ := test.NewNullLogger()
	router := gin.New()
	NewHandler(svc, log).RegisterRoutes(router.Group("/api/v1"))
	return router, repo, dir
}

func multipartRequest(t *testing.T, side, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if side != "" {
		require.NoError(t, w.WriteField("side", side))
	}
	if content != nil {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/id-card", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadIDCard_StoresImage(t *testing.T) {
	router, repo, dir := setup(t, 0)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, "front", "../../etc/passwd.png", pngBytes))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var env struct {
		Data domain.Upload `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, domain.UploadIDFront, env.Data.Kind)
	assert.Equal(t, "image/png", env.Data.MimeType)
	assert.Equal(t, "/api/v1/admin/uploads/2025/06/07/"+env.Data.ID+".png", env.Data.URL)

	require.Len(t, repo.saved, 1)
	stored, err := os.ReadFile(filepath.Join(dir, "2025", "06", "07", env.Data.ID+".png"))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, stored)
}

func TestUploadIDCard_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		side     string
		content  []byte
		maxBytes int64
		status   int
		code     string
	}{
		{"bad side", "left", pngBytes, 0, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing file", "back", nil, 0, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not an image", "back", []byte("%PDF-1.4 not an id card"), 0, http.StatusBadRequest, "INVALID_FILE_TYPE"},
		{"too large", "back", pngBytes, 16, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, repo, _ := setup(t, tt.maxBytes)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, multipartRequest(t, tt.side, "id.png", tt.content))

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.code)
			assert.Empty(t, repo.saved)
		})
	}
}

func TestParseSide(t *testing.T) {
	kind, err := ParseSide(" Back ")
	require.NoError(t, err)
	assert.Equal(t, domain.UploadIDBack, kind)

	_, err = ParseSide("")
	assert.ErrorIs(t, err, ErrInvalidSide)
}

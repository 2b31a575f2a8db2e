package middleware

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyhub/internal/storage"
)

func multipartBody(t *testing.T, field string, names ...string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range names {
		fw, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("content of " + name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestStageUploads_CleansUpOnRejection(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stager, err := storage.NewStager(t.TempDir())
	require.NoError(t, err)

	var stagedPaths []string
	r := gin.New()
	r.POST("/upload", StageUploads(stager, "attachments", 5), func(c *gin.Context) {
		for _, f := range ScopeFrom(c).Files() {
			stagedPaths = append(stagedPaths, f.Path)
			_, err := os.Stat(f.Path)
			assert.NoError(t, err, "staged file must exist while the handler runs")
		}
		// Simulate a quota rejection.
		c.AbortWithStatus(http.StatusInsufficientStorage)
	})

	body, contentType := multipartBody(t, "attachments", "a.jpg", "b.jpg")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInsufficientStorage, w.Code)
	require.Len(t, stagedPaths, 2)
	for _, p := range stagedPaths {
		_, err := os.Stat(p)
		assert.True(t, os.IsNotExist(err), "staged file %s must be deleted after the request", p)
	}
}

func TestStageUploads_CommittedFilesSurvive(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stager, err := storage.NewStager(t.TempDir())
	require.NoError(t, err)
	entityDir := t.TempDir()

	var committedPath string
	r := gin.New()
	r.POST("/upload", StageUploads(stager, "attachments", 5), func(c *gin.Context) {
		files := ScopeFrom(c).Files()
		require.Len(t, files, 1)
		committed, err := storage.Commit(files[0], entityDir)
		require.NoError(t, err)
		committedPath = committed.Path
		c.Status(http.StatusCreated)
	})

	body, contentType := multipartBody(t, "attachments", "doc.pdf")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	_, err = os.Stat(committedPath)
	assert.NoError(t, err)
}

func TestStageUploads_NoMultipartBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stager, err := storage.NewStager(t.TempDir())
	require.NoError(t, err)

	r := gin.New()
	r.POST("/upload", StageUploads(stager, "attachments", 5), func(c *gin.Context) {
		assert.Empty(t, ScopeFrom(c).Files())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewBufferString(`{"a":1}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStageUploads_CapsFileCount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stager, err := storage.NewStager(t.TempDir())
	require.NoError(t, err)

	r := gin.New()
	r.POST("/upload", StageUploads(stager, "attachments", 2), func(c *gin.Context) {
		assert.Len(t, ScopeFrom(c).Files(), 2)
		c.Status(http.StatusOK)
	})

	body, contentType := multipartBody(t, "attachments", "a.jpg", "b.jpg", "c.jpg")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

package image_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imagedrop/service/internal/image"
)

func newTestRouter(store *fakeStore, objects *fakeObjects, maxBytes int64) chi.Router {
	svc := image.NewService(store, objects, maxBytes, time.Second)
	h := image.NewHandler(svc, maxBytes)

	r := chi.NewRouter()
	r.Post("/upload/{ownerID}", h.Upload)
	r.Get("/api/url/{ownerID}", h.Latest)
	r.Get("/api/images/{ownerID}", h.List)
	return r
}

func multipartBody(t *testing.T, fieldName, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestUploadEndpoint_Success(t *testing.T) {
	store := &fakeStore{}
	objects := newFakeObjects()
	router := newTestRouter(store, objects, 10<<20)

	body, contentType := multipartBody(t, "file", "photo.jpg", jpegBytes(64))
	req := httptest.NewRequest(http.MethodPost, "/upload/user123", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, true, got["success"])
	assert.Equal(t, "user123", got["image_id"])
	assert.Regexp(t, `uploads/user123/[0-9a-f-]{36}\.jpg$`, got["s3_url"])
	assert.NotEmpty(t, got["uploaded_at"])

	// Follow-up lookup returns the same URL and server-measured size.
	req = httptest.NewRequest(http.MethodGet, "/api/url/user123", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	latest := decodeBody(t, rec)
	assert.Equal(t, got["s3_url"], latest["s3_url"])
	assert.Equal(t, float64(len(jpegBytes(64))), latest["file_size"])
	assert.Equal(t, "image/jpeg", latest["content_type"])
	assert.Equal(t, "photo.jpg", latest["original_filename"])
}

func TestUploadEndpoint_MissingFile(t *testing.T) {
	router := newTestRouter(&fakeStore{}, newFakeObjects(), 10<<20)

	body, contentType := multipartBody(t, "attachment", "photo.jpg", jpegBytes(10))
	req := httptest.NewRequest(http.MethodPost, "/upload/user123", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, false, got["success"])
	assert.Equal(t, "MissingFile", got["error"])
}

func TestUploadEndpoint_InvalidOwnerID(t *testing.T) {
	router := newTestRouter(&fakeStore{}, newFakeObjects(), 10<<20)

	body, contentType := multipartBody(t, "file", "photo.jpg", jpegBytes(10))
	req := httptest.NewRequest(http.MethodPost, "/upload/bad%20id", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "InvalidIdentifier", decodeBody(t, rec)["error"])
}

func TestUploadEndpoint_UnsupportedType(t *testing.T) {
	store := &fakeStore{}
	objects := newFakeObjects()
	router := newTestRouter(store, objects, 10<<20)

	body, contentType := multipartBody(t, "file", "malware.exe", []byte("MZ..."))
	req := httptest.NewRequest(http.MethodPost, "/upload/user123", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "UnsupportedFileType", decodeBody(t, rec)["error"])
	assert.Zero(t, objects.puts)
	assert.Zero(t, store.insertSeen)
}

func TestUploadEndpoint_FileTooLarge(t *testing.T) {
	store := &fakeStore{}
	objects := newFakeObjects()
	router := newTestRouter(store, objects, 32)

	body, contentType := multipartBody(t, "file", "big.png", pngBytes(128))
	req := httptest.NewRequest(http.MethodPost, "/upload/user123", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "FileTooLarge", decodeBody(t, rec)["error"])
	assert.Zero(t, objects.puts, "no object-store write for oversize upload")
}

func TestUploadEndpoint_StorageFailure(t *testing.T) {
	store := &fakeStore{}
	objects := newFakeObjects()
	objects.putErr = errors.New("bucket unreachable")
	router := newTestRouter(store, objects, 10<<20)

	body, contentType := multipartBody(t, "file", "photo.png", pngBytes(16))
	req := httptest.NewRequest(http.MethodPost, "/upload/user123", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "StorageWriteFailed", decodeBody(t, rec)["error"])

	// No orphan row: the listing is unaffected by the failed attempt.
	req = httptest.NewRequest(http.MethodGet, "/api/images/user123", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, float64(0), got["count"])
}

func TestUploadEndpoint_MetadataPassthrough(t *testing.T) {
	store := &fakeStore{}
	router := newTestRouter(store, newFakeObjects(), 10<<20)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "photo.jpg")
	require.NoError(t, err)
	_, err = part.Write(jpegBytes(10))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("metadata", `{"source":"mobile"}`))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload/user123", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.rows, 1)
	assert.JSONEq(t, `{"source":"mobile"}`, string(store.rows[0].Metadata))
}

func TestLatestEndpoint_NotFound(t *testing.T) {
	router := newTestRouter(&fakeStore{}, newFakeObjects(), 10<<20)

	req := httptest.NewRequest(http.MethodGet, "/api/url/ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, false, got["success"])
	assert.Equal(t, "NotFound", got["error"])
}

func TestListEndpoint_EmptyIsNotAnError(t *testing.T) {
	router := newTestRouter(&fakeStore{}, newFakeObjects(), 10<<20)

	req := httptest.NewRequest(http.MethodGet, "/api/images/ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, true, got["success"])
	assert.Equal(t, float64(0), got["count"])
	assert.Equal(t, []any{}, got["images"])
}

func TestListEndpoint_ReturnsAllUploads(t *testing.T) {
	store := &fakeStore{}
	objects := newFakeObjects()
	router := newTestRouter(store, objects, 10<<20)
	svc := image.NewService(store, objects, 10<<20, time.Second)

	for i := 0; i < 3; i++ {
		_, err := svc.Upload(context.Background(), "user123", "photo.jpg", bytes.NewReader(jpegBytes(10+i)), nil)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/images/user123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, float64(3), got["count"])
	images, ok := got["images"].([]any)
	require.True(t, ok)
	require.Len(t, images, 3)
	first, ok := images[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user123", first["image_id"])
	assert.Contains(t, first["s3_url"], "uploads/user123/")
}

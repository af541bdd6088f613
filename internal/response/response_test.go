package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imagedrop/service/internal/response"
)

func TestError_Shape(t *testing.T) {
	rec := httptest.NewRecorder()
	response.BadRequest(rec, "MissingFile", "no file provided")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body response.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "MissingFile", body.Error)
	assert.Equal(t, "no file provided", body.Message)
}

func TestJSON_Status(t *testing.T) {
	rec := httptest.NewRecorder()
	response.JSON(rec, http.StatusTeapot, map[string]string{"k": "v"})

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.JSONEq(t, `{"k":"v"}`, rec.Body.String())
}

func TestHelpers_StatusCodes(t *testing.T) {
	tests := []struct {
		name string
		fn   func(http.ResponseWriter, string, string)
		want int
	}{
		{"not found", response.NotFound, http.StatusNotFound},
		{"payload too large", response.PayloadTooLarge, http.StatusRequestEntityTooLarge},
		{"bad gateway", response.BadGateway, http.StatusBadGateway},
		{"internal", response.InternalError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.fn(rec, "Code", "message")
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

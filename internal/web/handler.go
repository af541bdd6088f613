// Package web serves the browser upload page.
package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/imagedrop/service/internal/image"
	"github.com/imagedrop/service/internal/response"
)

//go:embed templates
var templatesFS embed.FS

var uploadTmpl = template.Must(template.ParseFS(templatesFS, "templates/upload.html"))

// Handler serves the upload page bound to an owner id.
type Handler struct{}

// NewHandler creates a web Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// UploadPage renders the upload form for GET /{ownerID}. The id is
// validated with the same allow-list as the API endpoints before it is
// interpolated into the page.
func (h *Handler) UploadPage(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	if !image.ValidOwnerID(ownerID) {
		response.BadRequest(w, "InvalidIdentifier", "owner id must be alphanumeric with hyphens or underscores")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := uploadTmpl.Execute(w, map[string]string{"OwnerID": ownerID}); err != nil {
		slog.Error("render upload page", "owner_id", ownerID, "err", err)
	}
}

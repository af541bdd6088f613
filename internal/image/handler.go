package image

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/imagedrop/service/internal/response"
)

// multipartOverhead is slack added on top of the upload ceiling for
// multipart boundaries and form fields when bounding the request body.
const multipartOverhead = 1 << 20

// Handler holds HTTP handlers for image endpoints.
type Handler struct {
	svc      *Service
	maxBytes int64
}

// NewHandler creates a new image Handler.
func NewHandler(svc *Service, maxBytes int64) *Handler {
	return &Handler{svc: svc, maxBytes: maxBytes}
}

type uploadResponse struct {
	Success    bool      `json:"success" example:"true"`
	Message    string    `json:"message" example:"image uploaded successfully"`
	ImageID    string    `json:"image_id" example:"user123"`
	S3URL      string    `json:"s3_url" example:"http://localhost:9000/images/uploads/user123/0b7faf91-4073-4744-9b4c-2b1b6ab3f1b2.jpg"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type latestResponse struct {
	Success          bool      `json:"success" example:"true"`
	ImageID          string    `json:"image_id" example:"user123"`
	S3URL            string    `json:"s3_url"`
	OriginalFilename string    `json:"original_filename" example:"photo.jpg"`
	FileSize         int64     `json:"file_size" example:"2097152"`
	ContentType      string    `json:"content_type" example:"image/jpeg"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

type listResponse struct {
	Success bool    `json:"success" example:"true"`
	Count   int     `json:"count" example:"2"`
	Images  []Image `json:"images"`
}

// Upload godoc
//
//	@Summary		Upload an image
//	@Description	Accepts a multipart image upload for the given owner id, stores the bytes in object storage, and records metadata. Repeated uploads for the same id are additive history.
//	@Tags			images
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			ownerID	path		string	true	"Owner id (alphanumeric, hyphen, underscore)"
//	@Param			file	formData	file	true	"Image file (png, jpg, jpeg, gif, webp, bmp, tiff)"
//	@Success		200		{object}	uploadResponse
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		413		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/upload/{ownerID} [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	// Bound the transport read before touching the body; the service
	// re-measures the file bytes exactly.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.PayloadTooLarge(w, "FileTooLarge", "uploaded file exceeds the size limit")
			return
		}
		response.BadRequest(w, "MissingFile", "no file provided in the 'file' form field")
		return
	}
	defer file.Close()

	var metadata json.RawMessage
	if raw := r.FormValue("metadata"); raw != "" && json.Valid([]byte(raw)) {
		metadata = json.RawMessage(raw)
	}

	img, err := h.svc.Upload(r.Context(), ownerID, header.Filename, file, metadata)
	if err != nil {
		writeUploadError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, uploadResponse{
		Success:    true,
		Message:    "image uploaded successfully",
		ImageID:    img.OwnerID,
		S3URL:      img.StorageURL,
		UploadedAt: img.UploadedAt,
	})
}

// Latest godoc
//
//	@Summary		Get the latest image URL
//	@Description	Returns the most recently uploaded image record for the owner id.
//	@Tags			images
//	@Produce		json
//	@Param			ownerID	path		string	true	"Owner id"
//	@Success		200		{object}	latestResponse
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		404		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/api/url/{ownerID} [get]
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	img, err := h.svc.Latest(r.Context(), ownerID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidOwnerID):
			response.BadRequest(w, "InvalidIdentifier", "owner id must be alphanumeric with hyphens or underscores")
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "NotFound", "no image found for this id")
		default:
			response.InternalError(w, "StoreUnavailable", "could not read image metadata")
		}
		return
	}

	response.JSON(w, http.StatusOK, latestResponse{
		Success:          true,
		ImageID:          img.OwnerID,
		S3URL:            img.StorageURL,
		OriginalFilename: img.OriginalFilename,
		FileSize:         img.FileSizeBytes,
		ContentType:      img.ContentType,
		UploadedAt:       img.UploadedAt,
	})
}

// List godoc
//
//	@Summary		List all images for an id
//	@Description	Returns every upload recorded for the owner id, oldest first. An unknown id yields an empty list.
//	@Tags			images
//	@Produce		json
//	@Param			ownerID	path		string	true	"Owner id"
//	@Success		200		{object}	listResponse
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/api/images/{ownerID} [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	images, err := h.svc.History(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, ErrInvalidOwnerID) {
			response.BadRequest(w, "InvalidIdentifier", "owner id must be alphanumeric with hyphens or underscores")
			return
		}
		response.InternalError(w, "StoreUnavailable", "could not read image metadata")
		return
	}

	response.JSON(w, http.StatusOK, listResponse{
		Success: true,
		Count:   len(images),
		Images:  images,
	})
}

// writeUploadError maps service upload errors onto HTTP statuses. Client
// input errors become 4xx; infrastructure errors become 5xx with the
// underlying cause kept out of the response body.
func writeUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidOwnerID):
		response.BadRequest(w, "InvalidIdentifier", "owner id must be alphanumeric with hyphens or underscores")
	case errors.Is(err, ErrMissingFile):
		response.BadRequest(w, "MissingFile", "no file provided or file is empty")
	case errors.Is(err, ErrUnsupportedType):
		response.BadRequest(w, "UnsupportedFileType", "allowed types: png, jpg, jpeg, gif, webp, bmp, tiff")
	case errors.Is(err, ErrFileTooLarge):
		response.PayloadTooLarge(w, "FileTooLarge", "uploaded file exceeds the size limit")
	case errors.Is(err, ErrStorageWrite):
		response.InternalError(w, "StorageWriteFailed", "could not write file to object storage")
	case errors.Is(err, ErrMetadataWrite):
		response.InternalError(w, "MetadataWriteFailed", "file stored but metadata could not be recorded")
	default:
		response.InternalError(w, "InternalError", "internal server error")
	}
}

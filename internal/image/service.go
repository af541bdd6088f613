package image

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/imagedrop/service/internal/storage"
)

// ownerIDRegex is the allow-list for owner ids: alphanumeric plus hyphen
// and underscore. Path separators and dot sequences can never match, so an
// owner id is always safe to embed in a storage key.
var ownerIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// allowedExtensions are the image types accepted for upload.
var allowedExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true,
	"webp": true, "bmp": true, "tiff": true,
}

// Store is the metadata persistence contract the service depends on.
// *Repository satisfies it; tests substitute in-memory fakes.
type Store interface {
	Insert(ctx context.Context, img *Image) error
	GetLatest(ctx context.Context, ownerID string) (*Image, error)
	GetAll(ctx context.Context, ownerID string) ([]Image, error)
	Ping(ctx context.Context) error
}

// Service coordinates the upload transaction: validate, write the bytes to
// the object store, then record metadata. The write-then-record order is
// the core invariant — a metadata row must never point at an object that
// was not actually written.
type Service struct {
	store    Store
	objects  storage.ObjectStore
	maxBytes int64
	timeout  time.Duration
}

// NewService creates an image Service. maxBytes is the upload size ceiling;
// timeout bounds each object-store write attempt.
func NewService(store Store, objects storage.ObjectStore, maxBytes int64, timeout time.Duration) *Service {
	return &Service{
		store:    store,
		objects:  objects,
		maxBytes: maxBytes,
		timeout:  timeout,
	}
}

// Upload validates the incoming file, writes it to the object store under a
// freshly derived key, and records a metadata row. Every upload is additive:
// repeated uploads for the same owner id never overwrite each other.
//
// No remote side effect happens before validation completes. If the object
// write fails, no row is inserted. If the insert fails after a successful
// write, the orphaned object is logged for out-of-band audit and
// ErrMetadataWrite is returned.
func (s *Service) Upload(ctx context.Context, ownerID, filename string, r io.Reader, metadata json.RawMessage) (*Image, error) {
	if !ownerIDRegex.MatchString(ownerID) {
		return nil, ErrInvalidOwnerID
	}
	if filename == "" || r == nil {
		return nil, ErrMissingFile
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("%w: .%s", ErrUnsupportedType, ext)
	}

	// Measure actual bytes received; the client's content-length header is
	// an untrusted hint. One extra byte past the ceiling is enough to reject.
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload stream: %w", err)
	}
	if n == 0 {
		return nil, ErrMissingFile
	}
	if n > s.maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, s.maxBytes)
	}

	contentType := detectContentType(buf.Bytes(), ext)

	img, err := s.writeAndRecord(ctx, ownerID, filename, buf.Bytes(), contentType, metadata)
	if err != nil {
		return nil, err
	}

	slog.Info("upload complete",
		"owner_id", ownerID,
		"storage_key", img.StorageKey,
		"size_bytes", img.FileSizeBytes,
		"content_type", img.ContentType,
	)
	return img, nil
}

// writeAndRecord performs the write-then-record sequence. A storage key
// collision on insert triggers exactly one key regeneration and retry.
func (s *Service) writeAndRecord(ctx context.Context, ownerID, filename string, data []byte, contentType string, metadata json.RawMessage) (*Image, error) {
	for attempt := 0; ; attempt++ {
		key := deriveKey(ownerID, filename)

		putCtx, cancel := context.WithTimeout(ctx, s.timeout)
		err := s.objects.Put(putCtx, key, bytes.NewReader(data), int64(len(data)), contentType)
		cancel()
		if err != nil {
			slog.Error("object store write failed",
				"owner_id", ownerID, "storage_key", key, "err", err)
			return nil, fmt.Errorf("%w: %v", ErrStorageWrite, err)
		}

		img := &Image{
			OwnerID:          ownerID,
			StorageKey:       key,
			StorageURL:       s.objects.PublicURL(key),
			OriginalFilename: filename,
			FileSizeBytes:    int64(len(data)),
			ContentType:      contentType,
			Metadata:         metadata,
		}

		err = s.store.Insert(ctx, img)
		if err == nil {
			return img, nil
		}
		if errors.Is(err, ErrDuplicateKey) && attempt == 0 {
			slog.Warn("storage key collision, regenerating",
				"owner_id", ownerID, "storage_key", key)
			continue
		}

		// Partial side effect: the object exists but has no row. Logged
		// distinctly so audit tooling can find and reclaim the orphan.
		slog.Error("orphaned object: metadata insert failed after successful write",
			"owner_id", ownerID, "storage_key", key, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrMetadataWrite, err)
	}
}

// Latest returns the most recent upload for an owner id.
func (s *Service) Latest(ctx context.Context, ownerID string) (*Image, error) {
	if !ownerIDRegex.MatchString(ownerID) {
		return nil, ErrInvalidOwnerID
	}
	return s.store.GetLatest(ctx, ownerID)
}

// History returns every upload for an owner id, oldest first.
func (s *Service) History(ctx context.Context, ownerID string) ([]Image, error) {
	if !ownerIDRegex.MatchString(ownerID) {
		return nil, ErrInvalidOwnerID
	}
	return s.store.GetAll(ctx, ownerID)
}

// Ping probes metadata store connectivity.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// ValidOwnerID reports whether id matches the owner id allow-list.
func ValidOwnerID(id string) bool {
	return ownerIDRegex.MatchString(id)
}

// deriveKey builds a globally unique storage key. The UUID token carries
// 122 bits of randomness, so accidental collision over the service's
// lifetime is practically impossible; the database uniqueness constraint
// backstops the remaining probability.
func deriveKey(ownerID, filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	return "uploads/" + ownerID + "/" + uuid.NewString() + "." + ext
}

// detectContentType sniffs the MIME type from the payload itself, never
// trusting a client-asserted header. Formats the sniffer cannot identify
// (e.g. TIFF) fall back to the extension registry.
func detectContentType(data []byte, ext string) string {
	ct := http.DetectContentType(data)
	if ct == "application/octet-stream" {
		if byExt := mime.TypeByExtension("." + ext); byExt != "" {
			return byExt
		}
	}
	return ct
}

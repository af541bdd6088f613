package image

import "errors"

// Client-input errors. Detected before any remote side effect and
// surfaced as 4xx; never retried.
var (
	// ErrInvalidOwnerID is returned when the owner id is empty or contains
	// characters outside the allow-list.
	ErrInvalidOwnerID = errors.New("invalid owner id")
	// ErrMissingFile is returned when no file (or an empty file) was provided.
	ErrMissingFile = errors.New("missing file")
	// ErrUnsupportedType is returned when the file extension is not an
	// allowed image type.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrFileTooLarge is returned when the measured byte count exceeds the
	// configured ceiling.
	ErrFileTooLarge = errors.New("file too large")
)

// Infrastructure errors, surfaced as 5xx.
var (
	// ErrStorageWrite is returned when the object store write fails.
	// No metadata row is inserted in this case.
	ErrStorageWrite = errors.New("object storage write failed")
	// ErrMetadataWrite is returned when the metadata insert fails after a
	// successful object write, leaving an orphaned object behind.
	ErrMetadataWrite = errors.New("metadata write failed")
	// ErrStoreUnavailable is returned when the metadata store cannot be reached.
	ErrStoreUnavailable = errors.New("metadata store unavailable")
)

// ErrNotFound is returned when no record exists for an owner id. It is a
// normal, expected outcome for lookups, not an infrastructure failure.
var ErrNotFound = errors.New("image not found")

// ErrDuplicateKey is returned by the repository when a storage key collides
// with an existing row. The service regenerates the key once before failing.
var ErrDuplicateKey = errors.New("storage key already exists")

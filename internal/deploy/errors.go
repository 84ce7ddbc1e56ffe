package deploy

import "fmt"

// PublishErrorKind classifies publication failures
type PublishErrorKind string

const (
	// KindNotFound means the local path handed to Publish does not exist
	KindNotFound PublishErrorKind = "not_found"
	// KindEnumerationFailed means the local root exists but walking it for
	// files to upload failed, an unreadable subdirectory for instance
	KindEnumerationFailed PublishErrorKind = "enumeration_failed"
	// KindUploadFailed means an object upload failed; Uploaded carries how
	// many files made it before the failing one
	KindUploadFailed PublishErrorKind = "upload_failed"
)

// PublishError is the structured failure reported by the publisher. Partial
// success is observable: on KindUploadFailed, Uploaded counts the files
// uploaded before the failure in enumeration order.
type PublishError struct {
	Kind     PublishErrorKind
	Path     string // local path or object key involved
	Uploaded int
	Err      error
}

func (e *PublishError) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("publish: local path not found: %s: %v", e.Path, e.Err)
	case KindEnumerationFailed:
		return fmt.Sprintf("publish: enumerating %s failed: %v", e.Path, e.Err)
	case KindUploadFailed:
		return fmt.Sprintf("publish: upload failed at %s after %d files: %v", e.Path, e.Uploaded, e.Err)
	default:
		return fmt.Sprintf("publish: %v", e.Err)
	}
}

func (e *PublishError) Unwrap() error { return e.Err }

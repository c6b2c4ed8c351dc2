package remote

import (
	"errors"
	"fmt"
)

// ErrUnreachable is returned when every configured mirror exhausted its
// retry budget without producing a catalog.
var ErrUnreachable = errors.New("all catalog mirrors unreachable")

// UploadError reports a failed catalog upload with a reason a user can act
// on. The local catalog is never modified by a failed (or successful)
// upload.
type UploadError struct {
	Reason string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed: %s", e.Reason)
}

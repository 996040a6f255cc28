/**
 * @description
 * Error taxonomy for the application layer. Handlers map these onto HTTP
 * status codes: validation failures are the caller's fault, missing
 * references are reported distinctly at creation time, conflicts come from
 * the restrict-on-delete policy, and everything else is internal.
 */
package app

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when a protected operation runs without an
// authenticated actor.
var ErrUnauthorized = errors.New("unauthorized")

// ErrReferenced is returned when a delete is rejected because client
// statuses still reference the record.
var ErrReferenced = errors.New("record is referenced by client statuses")

// NotFoundError reports a dangling entity reference.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Package core holds the error taxonomy shared by the lifecycle services and
// the storage layer. Handlers map these onto HTTP status codes.
package core

import (
	"errors"
)

var (
	ErrNotFound = errors.New("not found")

	// invalid state transitions
	ErrAlreadyCollected = errors.New("report already collected")
	ErrNotCollected     = errors.New("report is not in collected status")
	ErrAlreadyVerified  = errors.New("collection already verified")
	ErrAlreadyApproved  = errors.New("area already approved")
	ErrAlreadyMember    = errors.New("already a member")
	ErrOwnerCannotLeave = errors.New("group owner cannot leave, delete the group instead")

	ErrForbidden = errors.New("forbidden")
)

package services

import (
	"errors"
	"fmt"
)

// Authorization failures are distinct from validation and business-rule
// failures so handlers can map them to different statuses.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSelfSwap         = errors.New("cannot act on your own listing")
	ErrItemUnavailable  = errors.New("item is not available")
	ErrNotOwner         = errors.New("only the listing owner may do this")
	ErrNotPending       = errors.New("request already resolved")
	ErrDuplicateRequest = errors.New("you already have a pending request for this item")
	ErrEmailTaken       = errors.New("email already registered")
	ErrBadCreds         = errors.New("invalid email or password")
)

// InsufficientPointsError carries the exact shortfall so the caller can
// render "need N more points".
type InsufficientPointsError struct {
	Shortfall int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: need %d more", e.Shortfall)
}

// FieldError reports a listing/signup validation failure for one field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

package services

import "errors"

// Common errors surfaced to handlers
var (
	ErrContactNotFound  = errors.New("contact not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrSendFailed       = errors.New("email failed to send")
)

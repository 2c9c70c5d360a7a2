package services

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyReviewed   = errors.New("donation already reviewed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrDuplicateCaseNo   = errors.New("case number already in use")
	ErrInvalidCategory   = errors.New("unknown case category")
)

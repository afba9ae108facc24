package service

import "errors"

var (
	ErrValidation     = errors.New("validation")
	ErrNotFound       = errors.New("not found")
	ErrStore          = errors.New("store failure")
	ErrSearchDisabled = errors.New("search disabled")
)

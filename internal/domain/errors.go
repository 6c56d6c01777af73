package domain

import "errors"

var (
	ErrSecretNotFound   = errors.New("secret not found")
	ErrLicenseNotFound  = errors.New("license not found")
	ErrLicenseExists    = errors.New("license already exists")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrAwaitingReply    = errors.New("assistant is still replying")
)

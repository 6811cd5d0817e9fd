// Package common defines shared constants and sentinel errors used across
// the journaling pipeline. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound = errors.New("not found")

	// Blob-store errors.
	ErrorBlobTooLarge = errors.New("blob exceeds maximum read size")

	// Credential-store / share-tool errors.
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrorNoCredentials = errors.New("no shared credentials found")

	// Pipeline validation errors.
	ErrorEmptyEntry = errors.New("entry needs a caption or an image")
)

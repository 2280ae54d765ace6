// Package common defines shared constants and sentinel errors used across
// FaceKeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Capture errors.
	ErrCameraUnavailable = errors.New("camera unavailable")

	// Workflow errors. All of these are recoverable by retrying the capture
	// from the shell; none are fatal to the process.
	ErrNoFaceDetected    = errors.New("no face detected")
	ErrEncodingFailed    = errors.New("unable to process face")
	ErrMissingSignupData = errors.New("sign-up data not found")
	ErrNoRegisteredUsers = errors.New("no registered users")
	ErrNoMatch           = errors.New("face not recognized")
)

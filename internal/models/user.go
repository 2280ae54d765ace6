// Package models defines the persisted user record and the sign-up form data.
package models

import (
	"errors"
	"regexp"
	"time"
)

var (
	ErrFieldsRequired = errors.New("all fields must be filled")
	ErrInvalidEmail   = errors.New("invalid email address")
)

// emailPattern mirrors the sign-up form check: local part, '@', domain,
// dot, TLD. Intentionally loose.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+\-/=?^_` + "`" + `{|}~]+@[a-zA-Z0-9]+\.[a-zA-Z]+`)

// UserRecord is one registered identity. Records are append-only: created
// once at successful registration, never mutated, never deleted.
//
// Email is used as the lookup key and as the filename stem for the face
// artifacts. Uniqueness is not enforced by the registry.
type UserRecord struct {
	ID                 string    `json:"id"`
	FullName           string    `json:"fullname"`
	Email              string    `json:"email"`
	Telephone          string    `json:"telephone"`
	FaceImagePath      string    `json:"face_image"`
	FaceDescriptorPath string    `json:"face_encoding"`
	RegisteredAt       time.Time `json:"date_registered"`
}

// SignupDetails holds the identity fields collected by the sign-up form
// before the face is captured.
type SignupDetails struct {
	FullName  string
	Email     string
	Telephone string
}

// Validate checks that every field is present and that the email has the
// expected shape.
func (s SignupDetails) Validate() error {
	if s.FullName == "" || s.Email == "" || s.Telephone == "" {
		return ErrFieldsRequired
	}
	if !emailPattern.MatchString(s.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// Complete reports whether all identity fields are present. Used by the
// registration workflow to decide whether to send the user back to sign-up.
func (s SignupDetails) Complete() bool {
	return s.FullName != "" && s.Email != "" && s.Telephone != ""
}

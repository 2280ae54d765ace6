package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/facekeeper/internal/artifacts"
	"github.com/dmitrijs2005/facekeeper/internal/camera"
	"github.com/dmitrijs2005/facekeeper/internal/clientstore"
	"github.com/dmitrijs2005/facekeeper/internal/common"
	"github.com/dmitrijs2005/facekeeper/internal/imagex"
	"github.com/dmitrijs2005/facekeeper/internal/logging"
	"github.com/dmitrijs2005/facekeeper/internal/models"
	"github.com/dmitrijs2005/facekeeper/internal/registry"
	"github.com/dmitrijs2005/facekeeper/internal/session"
	"github.com/dmitrijs2005/facekeeper/internal/vision"
)

// RegistrationDeps collects the collaborators of the registration workflow.
type RegistrationDeps struct {
	Locator   vision.Locator
	Extractor vision.Extractor
	Users     registry.Repository
	Artifacts artifacts.Store
	Storage   clientstore.Store
	Sessions  *session.Store
	Logger    logging.Logger

	// SessionTTL defaults to session.DefaultTTL when zero.
	SessionTTL time.Duration
}

// RegistrationService runs the capture → locate → extract → persist workflow
// for a new user.
type RegistrationService struct {
	deps RegistrationDeps
}

func NewRegistrationService(deps RegistrationDeps) *RegistrationService {
	if deps.SessionTTL == 0 {
		deps.SessionTTL = session.DefaultTTL
	}
	return &RegistrationService{deps: deps}
}

// Register captures one frame from frames and registers the pending sign-up
// identity with the captured face. The workflow is linear and restartable:
// every abort returns a distinct sentinel error and leaves the registry and
// the session untouched. Nothing is persisted before all validations pass;
// the registry append is the commit point.
//
// The caller owns frames and is responsible for releasing it.
func (s *RegistrationService) Register(ctx context.Context, frames camera.Source) (*models.UserRecord, error) {
	d := s.deps

	frame, err := frames.Read(ctx)
	if err != nil {
		return nil, err
	}
	captured := imagex.CenterSquare(frame, imagex.CaptureSize)

	if _, ok, err := d.Locator.Locate(ctx, captured); err != nil {
		return nil, err
	} else if !ok {
		return nil, common.ErrNoFaceDetected
	}

	// The extractor runs its own detection pass; it may still miss even
	// though the locator succeeded.
	descriptor, err := d.Extractor.Extract(ctx, captured)
	if err != nil {
		return nil, err
	}
	if descriptor == nil {
		return nil, common.ErrEncodingFailed
	}

	details, err := NewSignupService(d.Storage).Pending(ctx)
	if err != nil {
		return nil, err
	}
	if !details.Complete() {
		return nil, common.ErrMissingSignupData
	}

	imageRef, err := d.Artifacts.SaveImage(ctx, details.Email, captured)
	if err != nil {
		return nil, err
	}
	descriptorRef, err := d.Artifacts.SaveDescriptor(ctx, details.Email, descriptor)
	if err != nil {
		return nil, err
	}

	rec := &models.UserRecord{
		ID:                 uuid.New().String(),
		FullName:           details.FullName,
		Email:              details.Email,
		Telephone:          details.Telephone,
		FaceImagePath:      imageRef,
		FaceDescriptorPath: descriptorRef,
		RegisteredAt:       time.Now(),
	}

	if err := d.Users.Append(ctx, rec); err != nil {
		return nil, err
	}

	if err := d.Sessions.Set(ctx, details.Email, d.SessionTTL); err != nil {
		return nil, err
	}

	d.Logger.Info(ctx, "face registered", "email", rec.Email, "image", imageRef)
	return rec, nil
}

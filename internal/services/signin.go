package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

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

// SignInDeps collects the collaborators of the sign-in workflow.
type SignInDeps struct {
	Locator   vision.Locator
	Extractor vision.Extractor
	Users     registry.Repository
	Artifacts artifacts.Store
	Storage   clientstore.Store
	Sessions  *session.Store
	Logger    logging.Logger

	// Threshold defaults to vision.DefaultThreshold when zero.
	Threshold float64
	// SessionTTL defaults to session.DefaultTTL when zero.
	SessionTTL time.Duration
}

// SignInService runs the capture → locate → extract → best-match-scan
// workflow against the registry.
type SignInService struct {
	deps SignInDeps
}

func NewSignInService(deps SignInDeps) *SignInService {
	if deps.Threshold == 0 {
		deps.Threshold = vision.DefaultThreshold
	}
	if deps.SessionTTL == 0 {
		deps.SessionTTL = session.DefaultTTL
	}
	return &SignInService{deps: deps}
}

// SignIn captures one frame from frames and matches it against every
// registered record. On acceptance a session is created for the matched
// email and a full copy of the record is stashed for display. Returns the
// matched record and the best similarity observed.
//
// The caller owns frames and is responsible for releasing it.
func (s *SignInService) SignIn(ctx context.Context, frames camera.Source) (*models.UserRecord, float64, error) {
	d := s.deps

	frame, err := frames.Read(ctx)
	if err != nil {
		return nil, 0, err
	}
	captured := imagex.CenterSquare(frame, imagex.CaptureSize)

	if _, ok, err := d.Locator.Locate(ctx, captured); err != nil {
		return nil, 0, err
	} else if !ok {
		return nil, 0, common.ErrNoFaceDetected
	}

	descriptor, err := d.Extractor.Extract(ctx, captured)
	if err != nil {
		return nil, 0, err
	}
	if descriptor == nil {
		return nil, 0, common.ErrEncodingFailed
	}

	records, err := d.Users.GetAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	if len(records) == 0 {
		return nil, 0, common.ErrNoRegisteredUsers
	}

	// The running best starts below any valid similarity so even a
	// 0-similarity candidate can become the tentative best. The accept
	// decision is made against the threshold only.
	best := -1.0
	var bestRec *models.UserRecord

	for i := range records {
		rec := &records[i]

		known, err := d.Artifacts.LoadDescriptor(ctx, rec.FaceDescriptorPath)
		if err != nil {
			// One corrupt record must not block recognition of the
			// others; it simply cannot win.
			d.Logger.Warn(ctx, "skipping unreadable descriptor",
				"email", rec.Email, "ref", rec.FaceDescriptorPath, "error", err)
			known = nil
		}

		if sim := vision.Similarity(known, descriptor); sim > best {
			best = sim
			bestRec = rec
		}
	}

	if best < d.Threshold {
		d.Logger.Info(ctx, "face not recognized", "best_similarity", best)
		return nil, best, common.ErrNoMatch
	}

	if err := d.Sessions.Set(ctx, bestRec.Email, d.SessionTTL); err != nil {
		return nil, best, err
	}
	if err := s.stashRecognized(ctx, bestRec); err != nil {
		return nil, best, err
	}

	d.Logger.Info(ctx, "face recognized", "email", bestRec.Email, "similarity", best)
	return bestRec, best, nil
}

// stashRecognized stores a full copy of the matched record for display on
// the post-recognition screen.
func (s *SignInService) stashRecognized(ctx context.Context, rec *models.UserRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal recognized user: %w", err)
	}
	return s.deps.Storage.Set(ctx, clientstore.KeyRecognizedUser, data)
}

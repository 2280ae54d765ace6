package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/facekeeper/internal/artifacts"
	"github.com/dmitrijs2005/facekeeper/internal/camera"
	"github.com/dmitrijs2005/facekeeper/internal/clientstore"
	"github.com/dmitrijs2005/facekeeper/internal/config"
	"github.com/dmitrijs2005/facekeeper/internal/logging"
	"github.com/dmitrijs2005/facekeeper/internal/registry"
	"github.com/dmitrijs2005/facekeeper/internal/services"
	"github.com/dmitrijs2005/facekeeper/internal/session"
	"github.com/dmitrijs2005/facekeeper/internal/vision"
	"github.com/dmitrijs2005/facekeeper/internal/vision/goface"
	"github.com/dmitrijs2005/facekeeper/internal/vision/remote"
)

// App wires configuration into the stores, the vision provider, and the
// workflow services the commands call.
type App struct {
	Config *config.Config
	Logger logging.Logger

	Storage  clientstore.Store
	Users    registry.Repository
	Sessions *session.Store

	Signup       *services.SignupService
	Registration *services.RegistrationService
	SignIn       *services.SignInService
	UserInfo     *services.UserService

	vision     vision.Provider
	storageDB  *sql.DB
	registryDB *sql.DB
}

// NewApp builds the application from cfg. The returned App must be closed.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	if err := os.MkdirAll(cfg.DataDir, 0o770); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	if err := a.initStorage(ctx); err != nil {
		return nil, err
	}
	if err := a.initRegistry(ctx); err != nil {
		a.Close()
		return nil, err
	}

	arts, err := a.newArtifactStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	provider, err := a.newVisionProvider()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.vision = provider

	a.Sessions = session.NewStore(a.Storage, []byte(cfg.SessionSecretKey))

	a.Signup = services.NewSignupService(a.Storage)
	a.Registration = services.NewRegistrationService(services.RegistrationDeps{
		Locator:    provider,
		Extractor:  provider,
		Users:      a.Users,
		Artifacts:  arts,
		Storage:    a.Storage,
		Sessions:   a.Sessions,
		Logger:     logger,
		SessionTTL: cfg.SessionTTL,
	})
	a.SignIn = services.NewSignInService(services.SignInDeps{
		Locator:    provider,
		Extractor:  provider,
		Users:      a.Users,
		Artifacts:  arts,
		Storage:    a.Storage,
		Sessions:   a.Sessions,
		Logger:     logger,
		Threshold:  cfg.MatchThreshold,
		SessionTTL: cfg.SessionTTL,
	})
	a.UserInfo = services.NewUserService(a.Users, a.Storage)

	return a, nil
}

func (a *App) initStorage(ctx context.Context) error {
	path := filepath.Join(a.Config.DataDir, "client.db")
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)"

	db, err := clientstore.Open(ctx, dsn)
	if err != nil {
		return fmt.Errorf("open client storage: %w", err)
	}
	a.storageDB = db
	a.Storage = clientstore.NewSQLiteStore(db)
	return nil
}

func (a *App) initRegistry(ctx context.Context) error {
	cfg := a.Config

	switch cfg.RegistryBackend {
	case "json", "":
		a.Users = registry.NewJSONFileRepository(cfg.ResolvePath(cfg.RegistryPath))
		return nil
	case "postgres":
		db, err := registry.OpenPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("open registry database: %w", err)
		}
		a.registryDB = db
		a.Users = registry.NewPostgresRepository(db)
		return nil
	default:
		return fmt.Errorf("unknown registry backend %q", cfg.RegistryBackend)
	}
}

func (a *App) newArtifactStore(ctx context.Context) (artifacts.Store, error) {
	cfg := a.Config

	switch cfg.ArtifactBackend {
	case "local", "":
		return artifacts.NewLocalStore(cfg.DataDir), nil
	case "s3":
		return artifacts.NewS3Store(ctx, artifacts.S3Config{
			RootUser:     cfg.S3User,
			RootPassword: cfg.S3Password,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
	default:
		return nil, fmt.Errorf("unknown artifact backend %q", cfg.ArtifactBackend)
	}
}

func (a *App) newVisionProvider() (vision.Provider, error) {
	cfg := a.Config

	switch cfg.VisionProvider {
	case "goface", "":
		dir := cfg.ModelsDir
		if dir == "" {
			dir = goface.DefaultModelsDir()
		}
		if err := goface.EnsureModels(dir); err != nil {
			return nil, fmt.Errorf("prepare face models: %w", err)
		}
		return goface.New(dir)
	case "remote":
		return remote.NewClient(cfg.RemoteVisionAddr), nil
	default:
		return nil, fmt.Errorf("unknown vision provider %q", cfg.VisionProvider)
	}
}

// OpenCamera acquires the configured webcam. The caller releases it.
func (a *App) OpenCamera() (camera.Source, error) {
	return camera.OpenWebcam(a.Config.CameraIndexes...)
}

// Close releases the vision provider and the database handles. Safe to call
// on a partially constructed App.
func (a *App) Close() {
	if a.vision != nil {
		_ = a.vision.Close()
	}
	if a.registryDB != nil {
		_ = a.registryDB.Close()
	}
	if a.storageDB != nil {
		_ = a.storageDB.Close()
	}
}

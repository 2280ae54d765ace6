package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/facekeeper/internal/session"
	"github.com/dmitrijs2005/facekeeper/internal/vision"
)

// Config holds runtime settings for the FaceKeeper CLI.
type Config struct {
	// DataDir is the root for local application data: the face registry
	// file, the artifact tree, and the client storage database.
	DataDir string

	// RegistryBackend selects the user registry: "json" or "postgres".
	RegistryBackend string
	// RegistryPath is the JSON registry file. Relative paths resolve
	// under DataDir.
	RegistryPath string
	// DatabaseDSN is the Postgres connection string for the "postgres"
	// registry backend.
	DatabaseDSN string

	// ArtifactBackend selects where face images and descriptors are
	// stored: "local" or "s3".
	ArtifactBackend string
	S3User          string
	S3Password      string
	S3Bucket        string
	S3Region        string
	S3BaseEndpoint  string

	// VisionProvider selects the detection/encoding engine: "goface"
	// (in-process dlib models) or "remote" (HTTP service).
	VisionProvider   string
	ModelsDir        string
	RemoteVisionAddr string

	// CameraIndexes are the device indexes tried in order when opening
	// the webcam.
	CameraIndexes []int

	MatchThreshold   float64
	SessionSecretKey string
	SessionTTL       time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = defaultDataDir()
	c.RegistryBackend = "json"
	c.RegistryPath = "registered_faces.json"
	c.ArtifactBackend = "local"
	c.S3Bucket = "facekeeper"
	c.S3Region = "us-east-1"
	c.VisionProvider = "goface"
	c.ModelsDir = filepath.Join(c.DataDir, "models")
	c.RemoteVisionAddr = "http://127.0.0.1:8500"
	c.CameraIndexes = []int{0, 1}
	c.MatchThreshold = vision.DefaultThreshold
	c.SessionSecretKey = "facekeeper-local-session"
	c.SessionTTL = session.DefaultTTL
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "application_data"
	}
	return filepath.Join(home, ".facekeeper")
}

// ResolvePath resolves p under DataDir unless p is already absolute.
func (c *Config) ResolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.DataDir, p)
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was named on the command line). Command
// flags handled by the CLI layer override individual values afterwards.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	return cfg
}

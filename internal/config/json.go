package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/facekeeper/internal/flagx"
	"github.com/dmitrijs2005/facekeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the session lifetime can be specified either as a string
// like "24h" or as integer nanoseconds. Pointer fields distinguish "absent"
// from "zero" so the file only overrides what it names.
type JsonConfig struct {
	DataDir          *string         `json:"data_dir"`
	RegistryBackend  *string         `json:"registry_backend"`
	RegistryPath     *string         `json:"registry_path"`
	DatabaseDSN      *string         `json:"database_dsn"`
	ArtifactBackend  *string         `json:"artifact_backend"`
	S3User           *string         `json:"s3_user"`
	S3Password       *string         `json:"s3_password"`
	S3Bucket         *string         `json:"s3_bucket"`
	S3Region         *string         `json:"s3_region"`
	S3BaseEndpoint   *string         `json:"s3_base_endpoint"`
	VisionProvider   *string         `json:"vision_provider"`
	ModelsDir        *string         `json:"models_dir"`
	RemoteVisionAddr *string         `json:"remote_vision_addr"`
	CameraIndexes    []int           `json:"camera_indexes"`
	MatchThreshold   *float64        `json:"match_threshold"`
	SessionSecretKey *string         `json:"session_secret_key"`
	SessionTTL       *timex.Duration `json:"session_ttl"`
}

// parseJson overlays cfg with values loaded from a JSON file. The file path
// comes from the -c/-config/--config command-line flags; when no flag is
// given, nothing is loaded. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.RegistryBackend, jc.RegistryBackend)
	setString(&cfg.RegistryPath, jc.RegistryPath)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.ArtifactBackend, jc.ArtifactBackend)
	setString(&cfg.S3User, jc.S3User)
	setString(&cfg.S3Password, jc.S3Password)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.VisionProvider, jc.VisionProvider)
	setString(&cfg.ModelsDir, jc.ModelsDir)
	setString(&cfg.RemoteVisionAddr, jc.RemoteVisionAddr)
	setString(&cfg.SessionSecretKey, jc.SessionSecretKey)

	if jc.CameraIndexes != nil {
		cfg.CameraIndexes = jc.CameraIndexes
	}
	if jc.MatchThreshold != nil {
		cfg.MatchThreshold = *jc.MatchThreshold
	}
	if jc.SessionTTL != nil {
		cfg.SessionTTL = time.Duration(jc.SessionTTL.Duration)
	}
}

// Package config loads runtime configuration for the FaceKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Per-command flags handled by the CLI layer, which override earlier
//     values.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the session lifetime, so values
// can be either strings like "24h" or integer nanoseconds:
//
//	{
//	  "data_dir": "/var/lib/facekeeper",
//	  "registry_backend": "json",
//	  "vision_provider": "goface",
//	  "match_threshold": 0.6,
//	  "session_ttl": "24h"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config

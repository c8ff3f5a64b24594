// Package config provides configuration management for the LGPD retention
// sweeper.
//
// Configuration is loaded from a YAML file with environment variable
// overrides, then validated. All validation errors are collected and
// reported together.
//
// # Configuration Loading
//
//	cfg, err := config.LoadConfig("config.yaml")             // file only
//	cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention LGPD_SWEEPER_SECTION_FIELD:
//
//   - LGPD_SWEEPER_STORE_BACKEND overrides store.backend
//   - LGPD_SWEEPER_STORE_FIRESTORE_PROJECT_ID overrides store.firestore.project_id
//   - LGPD_SWEEPER_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
//  1. Default values (DefaultConfig)
//  2. Values from the YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Fixed Policy
//
// The retention period (RetentionYears) and sweep interval (ScheduleInterval)
// are constants, not configuration. Changing them is a code change.
package config

// Package config loads server settings from defaults, an optional
// config.yaml, a .env file and TASKBOARD_ prefixed environment variables,
// then validates the result before anything else starts.
package config

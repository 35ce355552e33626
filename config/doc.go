// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// A .env file and the process environment override the TfL credentials,
// the metrics address and the line data directory.
package config

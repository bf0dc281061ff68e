// Package config provides functionality for loading and validating the provider's configuration.
//
// Settings are plain structs with mapstructure tags so they can be populated from YAML files and
// environment variables, and each exposes a Validate method backed by go-playground/validator.
package config

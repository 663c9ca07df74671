package config

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a config validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation failures.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var b strings.Builder
	b.WriteString("config validation failed:\n")
	for _, err := range e {
		b.WriteString("  - ")
		b.WriteString(err.Error())
		b.WriteString("\n")
	}
	return b.String()
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the configuration for errors.
// Returns ValidationErrors if validation fails.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		errs = append(errs, ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("must be one of: debug, info, warn, error; got %q", cfg.LogLevel),
		})
	}

	if cfg.Export.OutputRoot == "" {
		errs = append(errs, ValidationError{
			Field:   "export.output_root",
			Message: "must not be empty",
		})
	}

	ext := strings.TrimPrefix(cfg.Export.MeshExtension, ".")
	if ext == "" {
		errs = append(errs, ValidationError{
			Field:   "export.mesh_extension",
			Message: "must not be empty",
		})
	} else if strings.ContainsAny(ext, `/\.`) {
		errs = append(errs, ValidationError{
			Field:   "export.mesh_extension",
			Message: fmt.Sprintf("must be a single extension, got %q", cfg.Export.MeshExtension),
		})
	}

	if cfg.Export.DirectTextureSuffix == "" {
		errs = append(errs, ValidationError{
			Field:   "export.direct_texture_suffix",
			Message: "must not be empty",
		})
	} else if strings.ContainsAny(cfg.Export.DirectTextureSuffix, `/\`) {
		errs = append(errs, ValidationError{
			Field:   "export.direct_texture_suffix",
			Message: fmt.Sprintf("must not contain path separators, got %q", cfg.Export.DirectTextureSuffix),
		})
	}

	if cfg.Export.ShaderModel == "" {
		errs = append(errs, ValidationError{
			Field:   "export.shader_model",
			Message: "must not be empty",
		})
	}

	if cfg.Catalog.Path == "" {
		errs = append(errs, ValidationError{
			Field:   "catalog.path",
			Message: "must not be empty",
		})
	}

	if !strings.HasPrefix(cfg.Catalog.ContentRoot, "/") {
		errs = append(errs, ValidationError{
			Field:   "catalog.content_root",
			Message: fmt.Sprintf("must be an absolute folder path, got %q", cfg.Catalog.ContentRoot),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	var ve ValidationError
	var ves ValidationErrors
	return errors.As(err, &ve) || errors.As(err, &ves)
}

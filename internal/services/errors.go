package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrStore              = errors.New("store error")
	ErrFilesystem         = errors.New("filesystem error")
	ErrExternalAPI        = errors.New("external api error")
	ErrConfiguration      = errors.New("configuration error")
)

// Wrap builds an error message that includes procedure context while tagging
// it with the provided marker. The marker should be one of the exported
// sentinel errors above; nil falls back to ErrStore.
func Wrap(marker error, procedure, operation, message string, err error) error {
	detail := buildDetail(procedure, operation, message)
	if marker == nil {
		marker = ErrStore
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns a short label for the marker carried by err, or "error" when
// the error carries none of the known markers.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPreconditionFailed):
		return "precondition"
	case errors.Is(err, ErrFilesystem):
		return "filesystem"
	case errors.Is(err, ErrExternalAPI):
		return "external_api"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrStore):
		return "store"
	default:
		return "error"
	}
}

func buildDetail(procedure, operation, message string) string {
	parts := make([]string, 0, 3)
	if procedure = strings.TrimSpace(procedure); procedure != "" {
		parts = append(parts, procedure)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "procedure failure"
	}
	return strings.Join(parts, ": ")
}

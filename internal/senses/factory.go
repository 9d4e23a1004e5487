package senses

import (
	"fmt"
	"strings"

	"github.com/varlex/varlex/internal/model"
)

// NewResolver creates a sense resolver from configuration. The limiter
// only applies to remote providers and may be nil.
func NewResolver(cfg model.SensesConfig, limiter Waiter) (Resolver, error) {
	switch strings.ToLower(cfg.Provider) {
	case "file", "":
		if cfg.IndexPath == "" {
			return nil, fmt.Errorf("sense index path is required for the file provider")
		}
		return NewFileResolver(cfg.IndexPath, "")

	case "openai":
		return NewOpenAIResolver(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.Timeout, limiter)

	default:
		return nil, fmt.Errorf("unknown sense provider: %s (supported: file, openai)", cfg.Provider)
	}
}

package holidays

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

// CompositeSource consults a primary source and falls back to a secondary one
type CompositeSource struct {
	primary  Source
	fallback Source
	logger   *zap.Logger
}

// NewCompositeSource creates a new CompositeSource
func NewCompositeSource(primary, fallback Source, logger *zap.Logger) *CompositeSource {
	return &CompositeSource{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Lookup returns the primary entry for date, or the fallback entry when the primary has none
func (cs *CompositeSource) Lookup(date time.Time) (*Day, error) {
	day, err := cs.primary.Lookup(date)
	if err == nil {
		return day, nil
	}

	if !errors.Is(err, ErrNotFound) {
		cs.logger.Warn("Primary holiday source failed, falling back",
			zap.Time("date", date),
			zap.Error(err))
	}

	return cs.fallback.Lookup(date)
}

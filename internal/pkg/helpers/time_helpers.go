package helpers

import (
	"time"

	"github.com/yigit/isluportal/internal/pkg/logger"
)

// ParseDuration parses s, or returns fallback with a warning when s is not a
// valid duration
func ParseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		logger.Warn().Err(err).Str("value", s).Dur("fallback", fallback).Msg("Invalid duration, using fallback")
		return fallback
	}
	return d
}

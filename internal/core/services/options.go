package services

import "time"

// ServiceOption configures the behaviour shared by every service.
type ServiceOption func(*BaseService)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.now = now
	}
}

func applyOptions(base *BaseService, opts []ServiceOption) {
	for _, opt := range opts {
		opt(base)
	}
}

package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// Serving reports whether the instance should stay in rotation. The corpus
// is the only mandatory dependency; a degraded cache still serves.
func (r Report) Serving() bool {
	return r.Checks["corpus"] == CheckOK
}

// Service coordinates health checks.
type Service struct {
	corpus CorpusPinger
	cache  CachePinger
}

// New creates a Service. cache can be nil.
func New(corpus CorpusPinger, cache CachePinger) *Service {
	return &Service{corpus: corpus, cache: cache}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.corpus.Ping(ctx); err != nil {
		checks["corpus"] = CheckError
	} else {
		checks["corpus"] = CheckOK
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
		} else {
			checks["cache"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

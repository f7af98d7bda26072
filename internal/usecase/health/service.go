package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Unhealthy indicates the record store is unavailable.
	Unhealthy Status = "error"
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
	Status  Status
	Checks  map[string]CheckResult
	Records int
}

// Service coordinates health checks.
type Service struct {
	store StoreChecker
}

// New creates a Service.
func New(store StoreChecker) *Service {
	return &Service{store: store}
}

// Check pings the record store and reports its size.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{"store": CheckOK}

	if err := s.store.Ping(ctx); err != nil {
		checks["store"] = CheckError
		return Report{Status: Unhealthy, Checks: checks}
	}

	n, err := s.store.Count(ctx)
	if err != nil {
		checks["store"] = CheckError
		return Report{Status: Unhealthy, Checks: checks}
	}

	return Report{Status: Healthy, Checks: checks, Records: n}
}

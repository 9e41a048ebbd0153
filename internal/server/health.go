package server

import "context"

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// LivenessService reports the process as healthy as long as it is running.
// There is nothing to fail against: the pipeline holds no connection, no
// cache, and no state outside of a single Analyze call.
type LivenessService struct{}

// Probe implements the HealthService interface.
func (LivenessService) Probe(ctx context.Context) error {
	return nil
}

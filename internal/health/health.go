// Package health provides liveness checks for external dependencies.
package health

import "context"

// Checker reports whether one dependency is reachable.
type Checker interface {
	HealthCheck(ctx context.Context) error
}

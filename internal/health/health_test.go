package health

import (
	"context"
	"errors"
	"testing"
)

type stubChecker struct {
	err error
}

func (s stubChecker) HealthCheck(context.Context) error { return s.err }

func TestCheckerContract(t *testing.T) {
	var healthy Checker = stubChecker{}
	if err := healthy.HealthCheck(context.Background()); err != nil {
		t.Errorf("healthy checker returned %v", err)
	}

	down := errors.New("connection refused")
	var unhealthy Checker = stubChecker{err: down}
	if err := unhealthy.HealthCheck(context.Background()); !errors.Is(err, down) {
		t.Errorf("unhealthy checker returned %v", err)
	}
}

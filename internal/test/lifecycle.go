package test

import (
	"go.uber.org/fx"
)

// LifecycleRecorder captures hooks registered by the storefront lifecycle.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append stores the hook so a test can invoke it directly.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub records shutdown invocations.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown notifies tests about graceful termination.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}

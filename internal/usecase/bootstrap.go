// Package usecase contains application business logic: the bootstrap
// state machine and the launch gate.
package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/zlc1004/VNCClientServer/internal/domain"
)

// Bootstrapper runs the strictly sequential bootstrap: install, optional
// component build, capability probe, launch gate. Each stage completes
// fully before the next begins.
type Bootstrapper struct {
	installer domain.Installer
	builder   domain.ComponentBuilder
	prober    domain.CapabilityProber
	logger    *zap.Logger
}

// NewBootstrapper wires the bootstrap stages together.
func NewBootstrapper(
	installer domain.Installer,
	builder domain.ComponentBuilder,
	prober domain.CapabilityProber,
	logger *zap.Logger,
) *Bootstrapper {
	return &Bootstrapper{
		installer: installer,
		builder:   builder,
		prober:    prober,
		logger:    logger,
	}
}

// Run executes the bootstrap once. A fatal install failure returns the
// error alongside a result whose decision is DecisionAbort; the prober
// never runs in that case. All other outcomes return a nil error.
func (b *Bootstrapper) Run(ctx context.Context) (*domain.BootstrapResult, error) {
	start := time.Now()
	result := &domain.BootstrapResult{
		StartedAt: start,
		Decision:  domain.DecisionAbort,
	}

	if err := b.installer.EnsureEnvironment(ctx); err != nil {
		b.logger.Error("environment creation failed", zap.Error(err))
		result.DurationMs = time.Since(start).Milliseconds()
		return result, err
	}
	result.Environment.RuntimePresent = true

	if err := b.installer.InstallDependencies(ctx); err != nil {
		b.logger.Error("dependency install failed", zap.Error(err))
		result.DurationMs = time.Since(start).Milliseconds()
		return result, err
	}
	result.Environment.DependenciesInstalled = true

	installed, smokePass := b.builder.Build(ctx)
	result.Environment.OptionalComponentInstalled = installed
	result.Environment.OptionalComponentSmokePass = smokePass

	result.Report = b.prober.Probe()
	result.Decision = Decide(result.Environment, result.Report)
	result.DurationMs = time.Since(start).Milliseconds()

	b.logger.Info("bootstrap complete",
		zap.String("decision", result.Decision.String()),
		zap.Bool("vnc_available", result.Report.VNCAvailable),
		zap.Int64("duration_ms", result.DurationMs))
	return result, nil
}

// Decide is the launch gate: a pure function over the final installer and
// prober outputs. Absence of a viewer never blocks startup; it only
// selects degraded mode.
func Decide(env domain.EnvironmentState, report domain.CapabilityReport) domain.LaunchDecision {
	if !env.RuntimePresent || !env.DependenciesInstalled {
		return domain.DecisionAbort
	}
	if report.VNCAvailable {
		return domain.DecisionStartFull
	}
	return domain.DecisionStartDegraded
}

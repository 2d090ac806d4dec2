package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zlc1004/VNCClientServer/internal/domain"
)

// mockInstaller implements domain.Installer for testing
type mockInstaller struct {
	envErr     error
	installErr error
	envCalls   int
	depCalls   int
}

func (m *mockInstaller) EnsureEnvironment(ctx context.Context) error {
	m.envCalls++
	return m.envErr
}

func (m *mockInstaller) InstallDependencies(ctx context.Context) error {
	m.depCalls++
	return m.installErr
}

// mockBuilder implements domain.ComponentBuilder for testing
type mockBuilder struct {
	installed bool
	smokePass bool
	calls     int
}

func (m *mockBuilder) Build(ctx context.Context) (bool, bool) {
	m.calls++
	return m.installed, m.smokePass
}

// mockProber implements domain.CapabilityProber for testing
type mockProber struct {
	report domain.CapabilityReport
	calls  int
}

func (m *mockProber) Probe() domain.CapabilityReport {
	m.calls++
	return m.report
}

func availableReport() domain.CapabilityReport {
	return domain.CapabilityReport{
		Platform: domain.PlatformLinux,
		Candidates: []domain.ViewerCandidate{
			{ID: "remmina", Name: "Remmina", Kind: domain.KindPathLookup, Path: "/usr/bin/remmina"},
		},
		VNCAvailable: true,
	}
}

func TestRun_FullMode(t *testing.T) {
	inst := &mockInstaller{}
	builder := &mockBuilder{installed: true, smokePass: true}
	prober := &mockProber{report: availableReport()}
	b := NewBootstrapper(inst, builder, prober, zap.NewNop())

	result, err := b.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DecisionStartFull, result.Decision)
	assert.True(t, result.Environment.RuntimePresent)
	assert.True(t, result.Environment.DependenciesInstalled)
	assert.Equal(t, 1, prober.calls)
}

func TestRun_DegradedWhenNoViewer(t *testing.T) {
	inst := &mockInstaller{}
	builder := &mockBuilder{}
	prober := &mockProber{report: domain.CapabilityReport{Platform: domain.PlatformWindows}}
	b := NewBootstrapper(inst, builder, prober, zap.NewNop())

	result, err := b.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DecisionStartDegraded, result.Decision)
}

func TestRun_EnvironmentFailureAborts(t *testing.T) {
	inst := &mockInstaller{envErr: &domain.EnvironmentCreationError{Path: "/env", Err: errors.New("boom")}}
	builder := &mockBuilder{}
	prober := &mockProber{}
	b := NewBootstrapper(inst, builder, prober, zap.NewNop())

	result, err := b.Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, domain.DecisionAbort, result.Decision)
	assert.Zero(t, inst.depCalls, "dependency install must not run after env failure")
	assert.Zero(t, builder.calls)
	assert.Zero(t, prober.calls, "prober must not run after a fatal failure")
}

func TestRun_DependencyFailureAborts(t *testing.T) {
	inst := &mockInstaller{installErr: &domain.DependencyInstallError{Manifest: "r.txt", Err: errors.New("boom")}}
	builder := &mockBuilder{}
	prober := &mockProber{}
	b := NewBootstrapper(inst, builder, prober, zap.NewNop())

	result, err := b.Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, domain.DecisionAbort, result.Decision)
	assert.True(t, result.Environment.RuntimePresent)
	assert.False(t, result.Environment.DependenciesInstalled)
	assert.Zero(t, prober.calls)
}

func TestRun_FailedSmokeTestStillStarts(t *testing.T) {
	inst := &mockInstaller{}
	builder := &mockBuilder{installed: true, smokePass: false}
	prober := &mockProber{report: domain.CapabilityReport{Platform: domain.PlatformLinux}}
	b := NewBootstrapper(inst, builder, prober, zap.NewNop())

	result, err := b.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DecisionStartDegraded, result.Decision)
	assert.True(t, result.Environment.OptionalComponentInstalled)
	assert.False(t, result.Environment.OptionalComponentSmokePass)
}

func TestDecide(t *testing.T) {
	ready := domain.EnvironmentState{RuntimePresent: true, DependenciesInstalled: true}

	cases := []struct {
		name   string
		env    domain.EnvironmentState
		report domain.CapabilityReport
		want   domain.LaunchDecision
	}{
		{"no runtime", domain.EnvironmentState{}, availableReport(), domain.DecisionAbort},
		{"no deps", domain.EnvironmentState{RuntimePresent: true}, availableReport(), domain.DecisionAbort},
		{"viewer found", ready, availableReport(), domain.DecisionStartFull},
		{"no viewer", ready, domain.CapabilityReport{}, domain.DecisionStartDegraded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decide(tc.env, tc.report))
		})
	}
}

func TestWriteDiagnostics_NoViewerShowsHints(t *testing.T) {
	result := &domain.BootstrapResult{
		Report: domain.CapabilityReport{Platform: domain.PlatformWindows},
	}
	var buf bytes.Buffer

	WriteDiagnostics(&buf, result, "192.168.1.10", nil)

	out := buf.String()
	assert.Contains(t, out, "Windows")
	assert.Contains(t, out, "QR-only mode")
	assert.Contains(t, out, "TightVNC")
	assert.Contains(t, out, "RealVNC")
	assert.Contains(t, out, "UltraVNC")
	assert.Contains(t, out, "192.168.1.10")
}

func TestWriteDiagnostics_ListsCandidatesWithPaths(t *testing.T) {
	result := &domain.BootstrapResult{Report: availableReport()}
	var buf bytes.Buffer

	WriteDiagnostics(&buf, result, "", nil)

	out := buf.String()
	assert.Contains(t, out, "Remmina: /usr/bin/remmina")
	assert.Contains(t, out, "AVAILABLE")
}

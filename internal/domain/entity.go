// Package domain contains core business entities and interfaces.
// This is the innermost layer in Clean Architecture - no external dependencies.
package domain

import (
	"runtime"
	"strconv"
	"time"
)

// Platform identifies the host operating system for capability probing.
// Values match runtime.GOOS so dispatch stays trivial.
type Platform string

const (
	PlatformWindows Platform = "windows"
	PlatformMac     Platform = "darwin"
	PlatformLinux   Platform = "linux"
)

// CurrentPlatform returns the platform of the running process. Anything
// that is not Windows or macOS is treated as Linux, matching the original
// "Linux and others" behavior.
func CurrentPlatform() Platform {
	switch runtime.GOOS {
	case "windows":
		return PlatformWindows
	case "darwin":
		return PlatformMac
	default:
		return PlatformLinux
	}
}

// String returns a human-readable platform name for diagnostics.
func (p Platform) String() string {
	switch p {
	case PlatformWindows:
		return "Windows"
	case PlatformMac:
		return "macOS"
	case PlatformLinux:
		return "Linux"
	default:
		return string(p)
	}
}

// CandidateKind describes how a viewer candidate was discovered.
type CandidateKind string

const (
	// KindKnownPath means the candidate was found at a well-known
	// absolute install path.
	KindKnownPath CandidateKind = "known-path"
	// KindPathLookup means the candidate executable resolved via the
	// system search path.
	KindPathLookup CandidateKind = "path-lookup"
	// KindGlobPattern means the candidate matched a versioned filename
	// pattern in or below the working directory.
	KindGlobPattern CandidateKind = "glob-pattern"
	// KindBuiltin means the platform ships a viewer (macOS Screen Sharing).
	KindBuiltin CandidateKind = "builtin"
)

// ViewerCandidate is a single detected VNC viewer. Immutable once resolved.
type ViewerCandidate struct {
	// ID is the catalog identifier, e.g. "tightvnc" or "remmina".
	ID string
	// Name is the human-readable product name.
	Name string
	// Kind records the detection mechanism.
	Kind CandidateKind
	// Path is the resolved executable path. Empty only for builtin viewers.
	Path string
}

// CapabilityReport is the prober's verdict on host VNC capability.
// Produced once per run, consumed once by the launch gate, never mutated.
type CapabilityReport struct {
	Platform   Platform
	Candidates []ViewerCandidate
	// VNCAvailable is true iff at least one candidate was found.
	VNCAvailable bool
}

// EnvironmentState tracks what the installer and component builder
// accomplished during this run.
type EnvironmentState struct {
	RuntimePresent             bool
	DependenciesInstalled      bool
	OptionalComponentInstalled bool
	OptionalComponentSmokePass bool
}

// LaunchDecision is the launch gate's outcome.
type LaunchDecision int

const (
	// DecisionAbort means a fatal install failure; do not start.
	DecisionAbort LaunchDecision = iota
	// DecisionStartDegraded starts the application in QR-only mode.
	DecisionStartDegraded
	// DecisionStartFull starts with QR and VNC control.
	DecisionStartFull
)

// String returns the decision name for logs and diagnostics.
func (d LaunchDecision) String() string {
	switch d {
	case DecisionAbort:
		return "abort"
	case DecisionStartDegraded:
		return "start-degraded"
	case DecisionStartFull:
		return "start-full"
	default:
		return "unknown"
	}
}

// BootstrapResult bundles the final installer and prober outputs together
// with the launch gate's decision.
type BootstrapResult struct {
	Environment EnvironmentState
	Report      CapabilityReport
	Decision    LaunchDecision
	StartedAt   time.Time
	DurationMs  int64
}

// Marker is the lifecycle sentinel persisted under the environment
// directory once dependency installation fully succeeds. Its presence
// alone toggles skip-reinstall; the fields are informational.
type Marker struct {
	Version     int    `json:"version"`
	Manifest    string `json:"manifest"`
	InstalledAt int64  `json:"installed_at"`
}

// SavedServer is a remembered VNC server endpoint. Passwords are not part
// of this entity; they live in the encrypted credential store keyed by
// Key().
type SavedServer struct {
	Name string `json:"name,omitempty"`
	Host string `json:"ip"`
	Port int    `json:"port"`
}

// Key returns the credential-store key for this server.
func (s SavedServer) Key() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

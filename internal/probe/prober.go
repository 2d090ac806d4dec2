package probe

import (
	"go.uber.org/zap"

	"github.com/zlc1004/VNCClientServer/internal/domain"
	"github.com/zlc1004/VNCClientServer/internal/infra"
)

// Prober is the platform-dispatched capability prober. One implementation
// serves every platform; the per-platform difference is catalog data plus
// which probe phases run. All probes are read-only.
type Prober struct {
	platform domain.Platform
	fs       *infra.FileSystem
	resolver domain.PathResolver
	workDir  string
	logger   *zap.Logger
}

// NewProber creates a prober for the given platform. workDir is where the
// Windows glob search starts.
func NewProber(
	platform domain.Platform,
	fs *infra.FileSystem,
	resolver domain.PathResolver,
	workDir string,
	logger *zap.Logger,
) *Prober {
	return &Prober{
		platform: platform,
		fs:       fs,
		resolver: resolver,
		workDir:  workDir,
		logger:   logger,
	}
}

// Probe produces the capability report. Candidates accumulate in a
// deterministic order: catalog declaration order first, then the glob
// phase, then search-path lookups.
func (p *Prober) Probe() domain.CapabilityReport {
	report := domain.CapabilityReport{Platform: p.platform}

	switch p.platform {
	case domain.PlatformMac:
		// Short-circuit: built-in Screen Sharing always counts as a
		// viewer, no filesystem probing.
		for _, spec := range macCatalog() {
			report.Candidates = append(report.Candidates, domain.ViewerCandidate{
				ID:   spec.ID,
				Name: spec.Name,
				Kind: domain.KindBuiltin,
			})
		}

	case domain.PlatformWindows:
		report.Candidates = p.probeWindows()

	default:
		report.Candidates = p.probeLinux()
	}

	report.VNCAvailable = len(report.Candidates) > 0
	p.logger.Info("capability probe complete",
		zap.String("platform", string(p.platform)),
		zap.Int("candidates", len(report.Candidates)),
		zap.Bool("vnc_available", report.VNCAvailable))
	return report
}

// probeWindows runs the three Windows phases: known install paths, the
// versioned-filename glob search, and search-path lookups.
func (p *Prober) probeWindows() []domain.ViewerCandidate {
	var candidates []domain.ViewerCandidate

	// Phase 1: well-known absolute install paths, one candidate per
	// product at its first existing location.
	for _, spec := range windowsCatalog() {
		for _, path := range spec.KnownPaths {
			if p.fs.Exists(path) {
				candidates = append(candidates, domain.ViewerCandidate{
					ID:   spec.ID,
					Name: spec.Name,
					Kind: domain.KindKnownPath,
					Path: path,
				})
				break
			}
		}
	}

	// Phase 2: versioned executable patterns, current directory first,
	// then recursively below it. The first pattern with any match ends
	// the whole phase so we never walk the tree more than necessary.
	for _, pattern := range windowsGlobPatterns() {
		match := p.globOne(pattern)
		if match != "" {
			candidates = append(candidates, domain.ViewerCandidate{
				ID:   "portable",
				Name: "Portable VNC Viewer",
				Kind: domain.KindGlobPattern,
				Path: match,
			})
			break
		}
	}

	// Phase 3: system search path.
	for _, name := range windowsPathLookups() {
		if path, err := p.resolver.LookPath(name); err == nil {
			candidates = append(candidates, domain.ViewerCandidate{
				ID:   name,
				Name: name,
				Kind: domain.KindPathLookup,
				Path: path,
			})
		}
	}

	return candidates
}

// globOne returns the first match for pattern in the working directory,
// falling back to a recursive walk that stops at its first hit.
func (p *Prober) globOne(pattern string) string {
	matches, err := p.fs.GlobDir(p.workDir, pattern)
	if err == nil && len(matches) > 0 {
		return matches[0]
	}
	match, err := p.fs.FindFirstMatch(p.workDir, pattern)
	if err != nil {
		p.logger.Debug("glob walk failed", zap.String("pattern", pattern), zap.Error(err))
		return ""
	}
	return match
}

// probeLinux resolves the fixed client list on the system search path.
func (p *Prober) probeLinux() []domain.ViewerCandidate {
	var candidates []domain.ViewerCandidate
	for _, spec := range linuxCatalog() {
		if path, err := p.resolver.LookPath(spec.Executable); err == nil {
			candidates = append(candidates, domain.ViewerCandidate{
				ID:   spec.ID,
				Name: spec.Name,
				Kind: domain.KindPathLookup,
				Path: path,
			})
		}
	}
	return candidates
}

// Ensure Prober implements domain.CapabilityProber.
var _ domain.CapabilityProber = (*Prober)(nil)

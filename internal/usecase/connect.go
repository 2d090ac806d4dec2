package usecase

import (
	"fmt"

	"github.com/zlc1004/VNCClientServer/internal/domain"
	"github.com/zlc1004/VNCClientServer/internal/probe"
)

// BuildLaunch picks the first detected viewer and returns the argv that
// connects it to the server. Candidates are already in preference order,
// so first is best.
func BuildLaunch(report domain.CapabilityReport, host string, port int, password string) ([]string, error) {
	if len(report.Candidates) == 0 {
		return nil, fmt.Errorf("no VNC viewer detected on %s", report.Platform)
	}
	return probe.LaunchCommand(report.Candidates[0], host, port, password), nil
}

package infra

import (
	"strings"

	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"

	"github.com/zlc1004/VNCClientServer/internal/domain"
)

// GopsProcessManager implements domain.ProcessManager using gopsutil.
type GopsProcessManager struct{}

// NewProcessManager creates a new process manager.
func NewProcessManager() domain.ProcessManager {
	return &GopsProcessManager{}
}

// FindByName returns PIDs of processes matching the pattern (case-insensitive).
func (pm *GopsProcessManager) FindByName(pattern string) ([]int, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}

	var found []int
	patternLower := strings.ToLower(pattern)

	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue // Process may have exited
		}
		if strings.EqualFold(name, pattern) || strings.Contains(strings.ToLower(name), patternLower) {
			found = append(found, int(p.Pid))
		}
	}

	return found, nil
}

// Kill terminates a process by PID.
func (pm *GopsProcessManager) Kill(pid int) error {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return err
	}
	return p.Kill()
}

// IsRunning checks if a PID exists.
func (pm *GopsProcessManager) IsRunning(pid int) bool {
	ok, err := process.PidExists(int32(pid))
	return err == nil && ok
}

// KillViewerProcesses kills any leftover viewer client processes by
// executable name. Best effort: the bridge spawns external viewers and a
// crashed run can leave them behind.
func KillViewerProcesses(pm domain.ProcessManager, names []string, logger *zap.Logger) {
	for _, name := range names {
		pids, err := pm.FindByName(name)
		if err != nil {
			logger.Debug("process scan failed", zap.String("name", name), zap.Error(err))
			continue
		}
		for _, pid := range pids {
			if err := pm.Kill(pid); err != nil {
				logger.Debug("failed to kill viewer process",
					zap.String("name", name),
					zap.Int("pid", pid),
					zap.Error(err))
			} else {
				logger.Info("killed leftover viewer process",
					zap.String("name", name),
					zap.Int("pid", pid))
			}
		}
	}
}

// Ensure GopsProcessManager implements domain.ProcessManager.
var _ domain.ProcessManager = (*GopsProcessManager)(nil)

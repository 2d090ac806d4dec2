package probe

import "github.com/zlc1004/VNCClientServer/internal/domain"

// InstallHints returns actionable per-platform suggestions shown when no
// viewer was detected. Empty on macOS, where capability is unconditional.
func InstallHints(platform domain.Platform) []string {
	switch platform {
	case domain.PlatformWindows:
		return []string{
			"install TightVNC from https://www.tightvnc.com/download.php",
			"install RealVNC Viewer from https://www.realvnc.com/en/connect/download/viewer/",
			"install UltraVNC from https://uvnc.com/downloads/ultravnc.html",
		}
	case domain.PlatformLinux:
		return []string{
			"install Remmina: sudo apt install remmina (or your distro's equivalent)",
			"install TigerVNC viewer: sudo apt install tigervnc-viewer",
			"install KRDC: sudo apt install krdc",
		}
	default:
		return nil
	}
}

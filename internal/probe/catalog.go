// Package probe detects installed VNC viewer clients and produces the
// capability report consumed by the launch gate.
package probe

import "github.com/zlc1004/VNCClientServer/internal/domain"

// ViewerSpec describes one VNC viewer product and how to find and launch
// it. Specs are pure data; the prober interprets them, so all platforms
// share a single probing implementation.
type ViewerSpec struct {
	// ID is the stable identifier (e.g. "tightvnc").
	ID string
	// Name is the product name shown in diagnostics.
	Name string
	// KnownPaths are well-known absolute install locations, checked for
	// file existence in order.
	KnownPaths []string
	// Executable is the program name resolvable via the system search
	// path. Empty for products only found at known paths.
	Executable string
	// SupportsPassword reports whether the client accepts a password on
	// its command line.
	SupportsPassword bool
}

// windowsCatalog returns the Windows viewer products in detection order.
func windowsCatalog() []ViewerSpec {
	return []ViewerSpec{
		{
			ID:   "tightvnc",
			Name: "TightVNC Viewer",
			KnownPaths: []string{
				`C:\Program Files\TightVNC\tvnviewer.exe`,
				`C:\Program Files (x86)\TightVNC\tvnviewer.exe`,
			},
			Executable:       "tvnviewer.exe",
			SupportsPassword: true,
		},
		{
			ID:   "realvnc",
			Name: "RealVNC Viewer",
			KnownPaths: []string{
				`C:\Program Files\RealVNC\VNC Viewer\vncviewer.exe`,
				`C:\Program Files (x86)\RealVNC\VNC Viewer\vncviewer.exe`,
			},
			Executable: "vncviewer.exe",
			// RealVNC CLI doesn't support a password parameter
			SupportsPassword: false,
		},
		{
			ID:   "tigervnc",
			Name: "TigerVNC Viewer",
			KnownPaths: []string{
				`C:\Program Files\TigerVNC\vncviewer.exe`,
				`C:\Program Files (x86)\TigerVNC\vncviewer.exe`,
			},
			Executable:       "vncviewer.exe",
			SupportsPassword: true,
		},
		{
			ID:   "ultravnc",
			Name: "UltraVNC",
			KnownPaths: []string{
				`C:\Program Files\uvnc bvba\UltraVNC\vncviewer.exe`,
				`C:\Program Files (x86)\uvnc bvba\UltraVNC\vncviewer.exe`,
				`C:\Program Files\UltraVNC\vncviewer.exe`,        // Legacy path
				`C:\Program Files (x86)\UltraVNC\vncviewer.exe`, // Legacy path
			},
			Executable:       "vncviewer.exe",
			SupportsPassword: true,
		},
	}
}

// windowsGlobPatterns are the versioned portable-executable filename
// patterns searched in the working directory and below it. The first
// pattern with any match wins and stops the glob phase.
func windowsGlobPatterns() []string {
	return []string{
		"vncviewer64-*.*.*.exe",
		"vncviewer-*.*.*.exe",
	}
}

// windowsPathLookups are the executable names checked on the system
// search path after known paths and globs.
func windowsPathLookups() []string {
	return []string{"vncviewer.exe", "tvnviewer.exe"}
}

// linuxCatalog returns the Linux viewer clients in detection order. All
// are found via the system search path.
func linuxCatalog() []ViewerSpec {
	return []ViewerSpec{
		{ID: "remmina", Name: "Remmina", Executable: "remmina", SupportsPassword: true},
		{ID: "vncviewer", Name: "TigerVNC Viewer", Executable: "vncviewer", SupportsPassword: true},
		{ID: "vinagre", Name: "Vinagre", Executable: "vinagre", SupportsPassword: true},
		{ID: "krdc", Name: "KRDC", Executable: "krdc", SupportsPassword: true},
	}
}

// macCatalog returns the built-in macOS viewer. Capability on macOS is
// unconditional: Screen Sharing ships with the OS.
func macCatalog() []ViewerSpec {
	return []ViewerSpec{
		{
			ID:               "macos_screen_sharing",
			Name:             "macOS Screen Sharing (built-in)",
			SupportsPassword: true,
		},
	}
}

// ViewerProcessNames returns the executable names of viewer processes the
// bridge may have spawned, for leftover-process cleanup.
func ViewerProcessNames(platform domain.Platform) []string {
	switch platform {
	case domain.PlatformWindows:
		return []string{"tvnviewer.exe", "vncviewer.exe"}
	case domain.PlatformMac:
		// macOS Screen Sharing doesn't need process cleanup
		return nil
	default:
		return []string{"remmina", "vncviewer", "vinagre", "krdc"}
	}
}

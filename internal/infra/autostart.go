package infra

// Autostart registration identifiers. The launchd label matches the one
// the application has always used, so upgrades replace the old entry
// instead of stacking a second one.
const (
	autostartAppName = "VNCQRServer"
	launchdLabel     = "com.vncqrserver.app"
)

package probe

import (
	"fmt"
	"strconv"

	"github.com/zlc1004/VNCClientServer/internal/domain"
)

// ConnectionString renders host/port the way VNC clients expect: plain
// host on the default port, display-number form for ports above it, and
// host:port otherwise.
func ConnectionString(host string, port int) string {
	switch {
	case port == 5900:
		return host
	case port > 5900:
		return host + ":" + strconv.Itoa(port-5900)
	default:
		return host + ":" + strconv.Itoa(port)
	}
}

// LaunchCommand builds the argv that launches a detected viewer against a
// server. The command is advisory output for the main application; the
// bootstrap itself never spawns viewers.
func LaunchCommand(c domain.ViewerCandidate, host string, port int, password string) []string {
	conn := ConnectionString(host, port)

	switch c.ID {
	case "macos_screen_sharing":
		url := "vnc://" + conn
		if password != "" {
			url = fmt.Sprintf("vnc://:%s@%s", password, conn)
		}
		return []string{"open", url}

	case "tightvnc", "tvnviewer.exe":
		args := []string{c.Path, "-host", conn}
		if password != "" {
			args = append(args, "-password", password)
		}
		return args

	case "realvnc":
		// RealVNC CLI doesn't accept a password argument
		return []string{c.Path, conn}

	case "ultravnc":
		args := []string{c.Path, conn}
		if password != "" {
			args = append(args, "-password", password)
		}
		return args

	case "remmina":
		return []string{c.Path, "-c", "vnc://" + conn}

	case "vinagre", "krdc":
		return []string{c.Path, "vnc://" + conn}

	default:
		// TigerVNC and generic vncviewer binaries take the bare
		// connection string.
		return []string{c.Path, conn}
	}
}

package usecase

import (
	"fmt"
	"io"

	"github.com/zlc1004/VNCClientServer/internal/domain"
	"github.com/zlc1004/VNCClientServer/internal/infra"
	"github.com/zlc1004/VNCClientServer/internal/probe"
)

// WriteDiagnostics prints the human-readable capability summary: platform,
// each detected candidate as a name/path pair, the availability verdict,
// and per-platform install hints when nothing was found.
func WriteDiagnostics(w io.Writer, result *domain.BootstrapResult, localIP string, ifaces []infra.InterfaceAddr) {
	report := result.Report

	fmt.Fprintln(w, "\n=== VNC Capability Report ===")
	fmt.Fprintf(w, "Platform: %s\n", report.Platform)

	if len(report.Candidates) > 0 {
		fmt.Fprintln(w, "Detected viewers:")
		for _, c := range report.Candidates {
			if c.Path != "" {
				fmt.Fprintf(w, "  - %s: %s\n", c.Name, c.Path)
			} else {
				fmt.Fprintf(w, "  - %s\n", c.Name)
			}
		}
	} else {
		fmt.Fprintln(w, "Detected viewers: none")
	}

	if report.VNCAvailable {
		fmt.Fprintln(w, "VNC control: AVAILABLE (QR + VNC mode)")
	} else {
		fmt.Fprintln(w, "VNC control: NOT AVAILABLE (QR-only mode)")
		for _, hint := range probe.InstallHints(report.Platform) {
			fmt.Fprintf(w, "  hint: %s\n", hint)
		}
	}

	if result.Environment.OptionalComponentInstalled && !result.Environment.OptionalComponentSmokePass {
		fmt.Fprintln(w, "Bundled client: installed but failed its import check (disabled)")
	}

	if localIP != "" {
		fmt.Fprintf(w, "Local address for QR URL: %s\n", localIP)
	}
	for _, iface := range ifaces {
		fmt.Fprintf(w, "  interface %s: %s\n", iface.Name, iface.IP)
	}

	fmt.Fprintln(w, "=============================")
}

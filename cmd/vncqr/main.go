// Package main is the CLI entry point for vncqr.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zlc1004/VNCClientServer/internal/config"
	"github.com/zlc1004/VNCClientServer/internal/domain"
	"github.com/zlc1004/VNCClientServer/internal/infra"
	"github.com/zlc1004/VNCClientServer/internal/installer"
	"github.com/zlc1004/VNCClientServer/internal/probe"
	"github.com/zlc1004/VNCClientServer/internal/usecase"
)

var (
	// Version info (set via ldflags)
	Version   = "1.0.0"
	Commit    = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vncqr",
	Short: "Bootstrap for the VNC QR remote-control bridge",
	Long: `vncqr prepares the runtime environment for the QR-code-driven VNC
remote-control bridge: it creates the isolated Python environment,
installs dependencies, optionally builds the bundled VNC client, probes
the host for usable VNC viewers, and hands off to the main application.

When no viewer is found the application still starts, in QR-only mode.`,
	Version: Version,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Bootstrap the environment and start the application",
	Long: `Runs the full bootstrap sequence: environment creation, dependency
install (skipped when already satisfied), optional bundled-client build,
viewer capability probe, and handoff to the main application.`,
	RunE: runRun,
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Probe for installed VNC viewers and print the capability report",
	RunE:  runProbe,
}

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Launch the best detected VNC viewer against a server",
	Long: `Probes for installed viewers, builds the launch command for the best
one and runs it. The password comes from --password, or from the
encrypted store when the server was saved with one.`,
	RunE: runConnect,
}

var autostartCmd = &cobra.Command{
	Use:   "autostart",
	Short: "Manage starting vncqr at login",
}

var autostartEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Register vncqr to start at login",
	RunE:  runAutostartEnable,
}

var autostartDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Remove the login registration",
	RunE:  runAutostartDisable,
}

var autostartStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether vncqr starts at login",
	RunE:  runAutostartStatus,
}

var serversCmd = &cobra.Command{
	Use:   "servers",
	Short: "Manage saved VNC servers",
}

var serversListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved VNC servers",
	RunE:  runServersList,
}

var serversSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a VNC server (password goes to the encrypted store)",
	RunE:  runServersSave,
}

var serversDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a saved VNC server and its stored password",
	RunE:  runServersDelete,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run:   runVersion,
}

var (
	sourceDir      string
	envRoot        string
	jsonOutput     bool
	serverName     string
	serverHost     string
	serverPort     int
	serverPassword string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&sourceDir, "source", ".", "Application source directory (requirements.txt, pyVNC, main.py)")
	rootCmd.PersistentFlags().StringVar(&envRoot, "env", "", "Isolated environment directory (default: under the user data dir)")

	serversSaveCmd.Flags().StringVar(&serverName, "name", "", "Display name")
	serversSaveCmd.Flags().StringVar(&serverHost, "host", "", "Server host or IP")
	serversSaveCmd.Flags().IntVar(&serverPort, "port", 5900, "Server port")
	serversSaveCmd.Flags().StringVar(&serverPassword, "password", "", "VNC password (stored encrypted)")
	_ = serversSaveCmd.MarkFlagRequired("host")
	serversDeleteCmd.Flags().StringVar(&serverHost, "host", "", "Server host or IP")
	serversDeleteCmd.Flags().IntVar(&serverPort, "port", 5900, "Server port")
	_ = serversDeleteCmd.MarkFlagRequired("host")

	connectCmd.Flags().StringVar(&serverHost, "host", "", "Server host or IP")
	connectCmd.Flags().IntVar(&serverPort, "port", 5900, "Server port")
	connectCmd.Flags().StringVar(&serverPassword, "password", "", "VNC password (default: the stored one, if any)")
	_ = connectCmd.MarkFlagRequired("host")

	versionCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	autostartCmd.AddCommand(autostartEnableCmd)
	autostartCmd.AddCommand(autostartDisableCmd)
	autostartCmd.AddCommand(autostartStatusCmd)
	serversCmd.AddCommand(serversListCmd)
	serversCmd.AddCommand(serversSaveCmd)
	serversCmd.AddCommand(serversDeleteCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(autostartCmd)
	rootCmd.AddCommand(serversCmd)
	rootCmd.AddCommand(versionCmd)
}

func resolvePaths() infra.Paths {
	paths := infra.DefaultPaths(sourceDir)
	if envRoot != "" {
		paths.EnvRoot = envRoot
	}
	return paths
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := createLogger()
	defer func() { _ = logger.Sync() }()

	paths := resolvePaths()
	fs := infra.NewFileSystem()
	runner := infra.NewExecRunner()
	marker := infra.NewFileMarkerStore(fs, paths.MarkerPath())

	envInstaller := installer.NewEnvInstaller(paths, fs, runner, marker, logger)
	builder := installer.NewComponentBuilder(paths, fs, runner, logger)
	prober := probe.NewProber(domain.CurrentPlatform(), fs, infra.NewPathResolver(), paths.WorkDir, logger)
	bootstrapper := usecase.NewBootstrapper(envInstaller, builder, prober, logger)

	ctx := context.Background()
	result, err := bootstrapper.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bootstrap failed: %v\n", err)
		var hinter domain.Hinter
		if errors.As(err, &hinter) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hinter.Hint())
		}
		return err
	}

	usecase.WriteDiagnostics(os.Stdout, result, infra.LocalIP(), infra.NetworkInterfaces())

	// Clean up viewer processes left over from a previous crashed run.
	pm := infra.NewProcessManager()
	infra.KillViewerProcesses(pm, probe.ViewerProcessNames(result.Report.Platform), logger)

	switch result.Decision {
	case domain.DecisionStartFull:
		fmt.Println("Starting application (QR + VNC control mode)...")
	case domain.DecisionStartDegraded:
		fmt.Println("Starting application (QR-only mode)...")
	}

	if err := infra.Handoff(ctx, paths.PythonBin(), paths.MainEntry); err != nil {
		return fmt.Errorf("application exited with error: %w", err)
	}
	return nil
}

func runProbe(cmd *cobra.Command, args []string) error {
	logger := zap.NewNop()
	paths := resolvePaths()
	fs := infra.NewFileSystem()

	prober := probe.NewProber(domain.CurrentPlatform(), fs, infra.NewPathResolver(), paths.WorkDir, logger)
	result := &domain.BootstrapResult{Report: prober.Probe()}

	usecase.WriteDiagnostics(os.Stdout, result, infra.LocalIP(), infra.NetworkInterfaces())
	return nil
}

func runConnect(cmd *cobra.Command, args []string) error {
	logger := zap.NewNop()
	paths := resolvePaths()
	fs := infra.NewFileSystem()

	prober := probe.NewProber(domain.CurrentPlatform(), fs, infra.NewPathResolver(), paths.WorkDir, logger)
	report := prober.Probe()

	password := serverPassword
	if password == "" {
		if store, err := openCredentialStore(paths); err == nil {
			stored, err := store.GetPassword(domain.SavedServer{Host: serverHost, Port: serverPort}.Key())
			if err == nil {
				password = stored
			}
			store.Close()
		}
	}

	argv, err := usecase.BuildLaunch(report, serverHost, serverPort, password)
	if err != nil {
		for _, hint := range probe.InstallHints(report.Platform) {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
		}
		return err
	}

	fmt.Printf("Connecting with %s...\n", report.Candidates[0].Name)
	return infra.Handoff(context.Background(), argv[0], argv[1:]...)
}

func runAutostartEnable(cmd *cobra.Command, args []string) error {
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}
	manager := infra.NewAutostartManager(infra.NewExecRunner())
	if err := manager.Install(execPath); err != nil {
		return err
	}
	fmt.Println("Auto-startup enabled.")
	return nil
}

func runAutostartDisable(cmd *cobra.Command, args []string) error {
	manager := infra.NewAutostartManager(infra.NewExecRunner())
	if err := manager.Uninstall(); err != nil {
		return err
	}
	fmt.Println("Auto-startup disabled.")
	return nil
}

func runAutostartStatus(cmd *cobra.Command, args []string) error {
	manager := infra.NewAutostartManager(infra.NewExecRunner())
	if manager.IsInstalled() {
		fmt.Println("Auto-startup: ENABLED")
	} else {
		fmt.Println("Auto-startup: DISABLED")
	}
	return nil
}

func openCredentialStore(paths infra.Paths) (domain.CredentialStore, error) {
	return infra.OpenCredentialStore(paths.DataDir)
}

func runServersList(cmd *cobra.Command, args []string) error {
	paths := resolvePaths()
	cfg := config.NewManager(infra.NewFileSystem(), paths.ConfigFile)

	servers := cfg.SavedServers()
	if len(servers) == 0 {
		fmt.Println("No saved servers.")
		return nil
	}
	fmt.Println("Saved servers:")
	for _, s := range servers {
		if s.Name != "" {
			fmt.Printf("  - %s (%s:%d)\n", s.Name, s.Host, s.Port)
		} else {
			fmt.Printf("  - %s:%d\n", s.Host, s.Port)
		}
	}
	return nil
}

func runServersSave(cmd *cobra.Command, args []string) error {
	paths := resolvePaths()
	cfg := config.NewManager(infra.NewFileSystem(), paths.ConfigFile)

	server := domain.SavedServer{Name: serverName, Host: serverHost, Port: serverPort}
	if err := cfg.SaveServer(server); err != nil {
		return err
	}

	if serverPassword != "" {
		store, err := openCredentialStore(paths)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.SetPassword(server.Key(), serverPassword); err != nil {
			return fmt.Errorf("failed to store password: %w", err)
		}
	}

	fmt.Printf("Saved %s:%d\n", server.Host, server.Port)
	return nil
}

func runServersDelete(cmd *cobra.Command, args []string) error {
	paths := resolvePaths()
	cfg := config.NewManager(infra.NewFileSystem(), paths.ConfigFile)

	server := domain.SavedServer{Host: serverHost, Port: serverPort}
	if err := cfg.DeleteServer(server); err != nil {
		return err
	}

	store, err := openCredentialStore(paths)
	if err == nil {
		defer store.Close()
		_ = store.DeletePassword(server.Key())
	}

	fmt.Printf("Deleted %s:%d\n", server.Host, server.Port)
	return nil
}

func createLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"/tmp/vncqrserver.log"}
	config.ErrorOutputPaths = []string{"/tmp/vncqrserver.error.log"}
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		// Fallback to stderr if file logging fails
		logger, _ = zap.NewProduction()
	}
	return logger
}

func runVersion(cmd *cobra.Command, args []string) {
	if jsonOutput {
		fmt.Printf(`{"version":"%s","commit":"%s","build_time":"%s"}`+"\n",
			Version, Commit, BuildTime)
	} else {
		fmt.Printf("vncqr %s (commit: %s, built: %s)\n",
			Version, Commit, BuildTime)
	}
}

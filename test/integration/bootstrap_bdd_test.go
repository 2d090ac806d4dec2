//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/zlc1004/VNCClientServer/internal/domain"
	"github.com/zlc1004/VNCClientServer/internal/infra"
	"github.com/zlc1004/VNCClientServer/internal/installer"
	"github.com/zlc1004/VNCClientServer/internal/probe"
	"github.com/zlc1004/VNCClientServer/internal/usecase"
)

// recordingRunner simulates the Python toolchain against a real temp
// directory. Creating a venv makes the directory appear on disk, so a
// second bootstrap run sees it and reuses it.
type recordingRunner struct {
	calls   []string
	envRoot string
	failPip bool
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	argv := name + " " + strings.Join(args, " ")
	r.calls = append(r.calls, argv)
	if strings.Contains(argv, "-m venv") {
		return nil, os.MkdirAll(r.envRoot, 0o755)
	}
	if r.failPip && strings.Contains(argv, "pip install") {
		return []byte("ERROR: No matching distribution found"), errors.New("exit status 1")
	}
	return nil, nil
}

func (r *recordingRunner) callsContaining(token string) int {
	n := 0
	for _, c := range r.calls {
		if strings.Contains(c, token) {
			n++
		}
	}
	return n
}

// noViewers resolves nothing, so probes on Linux and Windows find no
// candidates and the gate chooses degraded mode.
type noViewers struct{}

func (noViewers) LookPath(name string) (string, error) {
	return "", errors.New("not found")
}

var _ = Describe("Bootstrap", func() {
	var (
		tmpDir  string
		paths   infra.Paths
		runner  *recordingRunner
		fs      *infra.FileSystem
		newBoot func() *usecase.Bootstrapper
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "vncqr-integration-*")
		Expect(err).NotTo(HaveOccurred())

		paths = infra.Paths{
			EnvRoot:      filepath.Join(tmpDir, "env"),
			Manifest:     filepath.Join(tmpDir, "requirements.txt"),
			ComponentDir: filepath.Join(tmpDir, "pyVNC"),
			MainEntry:    filepath.Join(tmpDir, "main.py"),
			DataDir:      tmpDir,
			ConfigFile:   filepath.Join(tmpDir, "config.json"),
			WorkDir:      tmpDir,
		}
		err = os.WriteFile(paths.Manifest, []byte("qrcode\npillow\nflask\n"), 0o644)
		Expect(err).NotTo(HaveOccurred())

		runner = &recordingRunner{envRoot: paths.EnvRoot}
		fs = infra.NewFileSystem()
		logger := zap.NewNop()

		newBoot = func() *usecase.Bootstrapper {
			marker := infra.NewFileMarkerStore(fs, paths.MarkerPath())
			inst := installer.NewEnvInstaller(paths, fs, runner, marker, logger)
			builder := installer.NewComponentBuilder(paths, fs, runner, logger)
			prober := probe.NewProber(domain.PlatformLinux, fs, noViewers{}, paths.WorkDir, logger)
			return usecase.NewBootstrapper(inst, builder, prober, logger)
		}
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	Describe("first run", func() {
		It("creates the environment, installs dependencies and writes the marker", func() {
			result, err := newBoot().Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			Expect(runner.callsContaining("-m venv")).To(Equal(1))
			Expect(runner.callsContaining("pip install -r")).To(Equal(1))

			_, err = os.Stat(paths.MarkerPath())
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Environment.RuntimePresent).To(BeTrue())
			Expect(result.Environment.DependenciesInstalled).To(BeTrue())
		})

		It("starts degraded when no viewer is installed", func() {
			result, err := newBoot().Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Report.VNCAvailable).To(BeFalse())
			Expect(result.Decision).To(Equal(domain.DecisionStartDegraded))
		})
	})

	Describe("second run", func() {
		It("reuses the environment and skips the dependency install", func() {
			_, err := newBoot().Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			runner.calls = nil
			result, err := newBoot().Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			Expect(runner.callsContaining("-m venv")).To(BeZero())
			Expect(runner.callsContaining("pip install -r")).To(BeZero())
			Expect(result.Decision).To(Equal(domain.DecisionStartDegraded))
		})

		It("reinstalls after the marker is cleared", func() {
			_, err := newBoot().Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			marker := infra.NewFileMarkerStore(fs, paths.MarkerPath())
			Expect(marker.Clear()).To(Succeed())

			runner.calls = nil
			_, err = newBoot().Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			Expect(runner.callsContaining("pip install -r")).To(Equal(1))
		})
	})

	Describe("failed install", func() {
		It("aborts and leaves no marker behind", func() {
			runner.failPip = true

			result, err := newBoot().Run(context.Background())
			Expect(err).To(HaveOccurred())

			var installErr *domain.DependencyInstallError
			Expect(errors.As(err, &installErr)).To(BeTrue())

			_, statErr := os.Stat(paths.MarkerPath())
			Expect(os.IsNotExist(statErr)).To(BeTrue())

			Expect(result.Decision).To(Equal(domain.DecisionAbort))
		})

		It("retries the install on the next run", func() {
			runner.failPip = true
			_, err := newBoot().Run(context.Background())
			Expect(err).To(HaveOccurred())

			runner.failPip = false
			runner.calls = nil
			result, err := newBoot().Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			Expect(runner.callsContaining("pip install -r")).To(Equal(1))
			Expect(result.Environment.DependenciesInstalled).To(BeTrue())
		})
	})

	Describe("optional component", func() {
		It("builds and smoke-tests when the source is bundled", func() {
			descriptor := filepath.Join(paths.ComponentDir, "setup.py")
			Expect(os.MkdirAll(paths.ComponentDir, 0o755)).To(Succeed())
			Expect(os.WriteFile(descriptor, []byte("from setuptools import setup\nsetup(name='pyVNC')\n"), 0o644)).To(Succeed())

			result, err := newBoot().Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			Expect(runner.callsContaining("pip install -e")).To(Equal(1))
			Expect(runner.callsContaining("import pyVNC")).To(Equal(1))
			Expect(result.Environment.OptionalComponentInstalled).To(BeTrue())
			Expect(result.Environment.OptionalComponentSmokePass).To(BeTrue())
		})
	})
})

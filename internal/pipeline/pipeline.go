package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"codecgen/internal/config"
	"codecgen/internal/manifest"
	"codecgen/internal/tools"
)

// Pipeline regenerates per-platform config headers, dispatch headers, and
// the source-list manifest for one codec checkout.
type Pipeline struct {
	cfg    config.Config
	runner tools.CommandRunner

	// headers written this run, formatted in one pass at the end
	generated []string
}

// Options select per-run behavior.
type Options struct {
	// OnlyConfigs skips manifest generation and refreshes headers only.
	OnlyConfigs bool
	// KeepWorkspace retains the temp build tree after a successful run.
	KeepWorkspace bool
}

func New(cfg config.Config, runner tools.CommandRunner) *Pipeline {
	if runner == nil {
		runner = tools.ExecRunner{}
	}
	return &Pipeline{cfg: cfg, runner: runner}
}

// Run executes the full sequence: guard, workspace copy, per-platform
// configure/probe/codegen, formatting, attribution. Fail-fast throughout;
// on failure the workspace is left behind for manual inspection.
func (p *Pipeline) Run(opts Options) (err error) {
	p.generated = nil
	if err := manifest.CheckDuplicateBasenames(p.cfg.SourceDir, p.cfg.WatchedDirs); err != nil {
		return err
	}

	ws, err := NewWorkspace(p.cfg.SourceDir)
	if err != nil {
		return err
	}
	log.Info().Str("workspace", ws.Root).Msg("pipeline workspace ready")
	defer func() {
		if err != nil || opts.KeepWorkspace {
			log.Warn().Str("workspace", ws.Root).Msg("workspace left for inspection")
			return
		}
		if rmErr := ws.Remove(); rmErr != nil {
			err = rmErr
		}
	}()

	var writer *manifest.GNIWriter
	if !opts.OnlyConfigs {
		writer, err = manifest.NewGNIWriter(p.cfg.ManifestPath, p.cfg.GNPrefix, p.cfg.ListPrefix)
		if err != nil {
			return err
		}
	}

	for i, platform := range p.cfg.Platforms {
		if i > 0 {
			if _, err = p.run(ws.Root, p.cfg.Tools.Make, "distclean"); err != nil {
				return err
			}
		}
		if err = p.runPlatform(ws, writer, platform); err != nil {
			return fmt.Errorf("platform %q: %w", platform.Name, err)
		}
	}

	if err = p.formatOutputs(opts.OnlyConfigs); err != nil {
		return err
	}
	if err = p.recordRevision(); err != nil {
		return err
	}
	return nil
}

func (p *Pipeline) runPlatform(ws *Workspace, writer *manifest.GNIWriter, platform config.PlatformConfig) error {
	log.Info().Str("platform", platform.Name).Msg("pipeline configure")
	if _, err := p.run(ws.Root, "./configure", platform.ConfigureFlags...); err != nil {
		return err
	}

	platformDir := filepath.Join(p.cfg.ConfigRoot, filepath.FromSlash(platform.Name))
	header := filepath.Join(platformDir, p.cfg.ConfigHeader)
	if err := liftConfigHeader(filepath.Join(ws.Root, p.cfg.ConfigHeader), header); err != nil {
		return err
	}
	p.generated = append(p.generated, header)

	if platform.Arch != config.ArchGeneric {
		data, err := os.ReadFile(header)
		if err != nil {
			return err
		}
		asmPath := strings.TrimSuffix(header, ".h") + ".asm"
		if err := writeGenerated(asmPath, deriveAsmConstants(data, platform.IsARM())); err != nil {
			return err
		}
	}

	if platform.RTCDArch != "" {
		if err := p.generateDispatch(ws, platformDir, platform); err != nil {
			return err
		}
	}

	if writer == nil {
		return nil
	}
	return p.emitSourceLists(ws, writer, platform)
}

// generateDispatch runs the RTCD generator once per dispatch symbol,
// capturing stdout into the per-platform dispatch header.
func (p *Pipeline) generateDispatch(ws *Workspace, platformDir string, platform config.PlatformConfig) error {
	for _, dispatch := range p.cfg.Dispatch {
		stdout, err := p.run(ws.Root, p.cfg.Tools.Perl,
			p.cfg.RTCDScript,
			"--arch="+platform.RTCDArch,
			"--sym="+dispatch.Sym,
			"--config="+p.cfg.ConfigHeader,
			dispatch.Defs,
		)
		if err != nil {
			return err
		}
		out := filepath.Join(platformDir, dispatch.Sym+".h")
		if err := writeGenerated(out, stdout); err != nil {
			return err
		}
		p.generated = append(p.generated, out)
	}
	return nil
}

// emitSourceLists runs the build probe, classifies the manifest it produces,
// and appends the platform's groups to the .gni manifest.
func (p *Pipeline) emitSourceLists(ws *Workspace, writer *manifest.GNIWriter, platform config.PlatformConfig) error {
	if _, err := p.run(ws.Root, p.cfg.Tools.Make, p.cfg.ProbeTarget); err != nil {
		return err
	}
	data, err := os.ReadFile(filepath.Join(ws.Root, p.cfg.ProbeTarget))
	if err != nil {
		return fmt.Errorf("probe manifest missing: %w", err)
	}
	m, err := manifest.Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}

	set := manifest.Classify(m, manifest.Target{
		X86:        platform.IsX86(),
		NEONDetect: platform.IsARM() && platform.RuntimeCPUDetect,
	})
	log.Info().
		Str("platform", platform.Name).
		Int("retained", set.Total()).
		Msg("pipeline sources classified")
	return writer.AppendLists(platform.Name, set)
}

func (p *Pipeline) formatOutputs(onlyConfigs bool) error {
	for _, path := range p.generated {
		if _, err := p.run("", p.cfg.Tools.ClangFormat, "-i", "--style=Chromium", path); err != nil {
			return err
		}
	}
	if onlyConfigs {
		return nil
	}
	if _, err := p.run("", p.cfg.Tools.GN, "format", p.cfg.ManifestPath); err != nil {
		return err
	}
	return nil
}

// recordRevision updates the attribution file with the upstream commit hash
// and date reported by git.
func (p *Pipeline) recordRevision() error {
	if p.cfg.AttributionPath == "" {
		return nil
	}
	stdout, err := p.run(p.cfg.SourceDir, p.cfg.Tools.Git, "log", "-1", "--format=%H%n%cd", "--date=short")
	if err != nil {
		return err
	}
	lines := strings.SplitN(strings.TrimSpace(string(stdout)), "\n", 2)
	if len(lines) != 2 {
		return fmt.Errorf("pipeline: unexpected git log output %q", string(stdout))
	}
	hash, date := strings.TrimSpace(lines[0]), strings.TrimSpace(lines[1])
	return updateAttribution(p.cfg.AttributionPath, hash, date)
}

func (p *Pipeline) run(dir string, name string, args ...string) ([]byte, error) {
	log.Debug().Str("cmd", name).Str("args", strings.Join(args, " ")).Str("dir", dir).Msg("pipeline exec")
	stdout, stderr, exitCode, err := p.runner.Run(dir, name, args...)
	if err == nil {
		return stdout, nil
	}
	return nil, fmt.Errorf(
		"pipeline command failed cmd=%s args=%q exit=%d stdout=%q stderr=%q: %w",
		name,
		strings.Join(args, " "),
		exitCode,
		strings.TrimSpace(string(stdout)),
		strings.TrimSpace(string(stderr)),
		err,
	)
}

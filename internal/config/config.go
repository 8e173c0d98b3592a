package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Arch families recognized by the classifier and the configure matrix.
const (
	ArchX86     = "x86"
	ArchX64     = "x64"
	ArchARM     = "arm"
	ArchARM64   = "arm64"
	ArchGeneric = "generic"
)

// Config is the full pipeline configuration for one codec checkout.
type Config struct {
	SourceDir       string   `toml:"source_dir"`
	ConfigRoot      string   `toml:"config_root"`
	ManifestPath    string   `toml:"manifest_path"`
	AttributionPath string   `toml:"attribution_path"`
	GNPrefix        string   `toml:"gn_prefix"`
	ListPrefix      string   `toml:"list_prefix"`
	WatchedDirs     []string `toml:"watched_dirs"`
	ConfigHeader    string   `toml:"config_header"`
	RTCDScript      string   `toml:"rtcd_script"`
	ProbeTarget     string   `toml:"probe_target"`

	Tools     ToolsConfig      `toml:"tools"`
	Dispatch  []DispatchConfig `toml:"dispatch"`
	Platforms []PlatformConfig `toml:"platforms"`
}

// ToolsConfig names the external binaries the pipeline drives.
type ToolsConfig struct {
	Make        string `toml:"make"`
	Perl        string `toml:"perl"`
	ClangFormat string `toml:"clang_format"`
	GN          string `toml:"gn"`
	Git         string `toml:"git"`
}

// DispatchConfig describes one RTCD dispatch header generator run.
type DispatchConfig struct {
	Sym  string `toml:"sym"`
	Defs string `toml:"defs"`
}

// PlatformConfig describes one configure target.
type PlatformConfig struct {
	Name             string   `toml:"name"`
	Arch             string   `toml:"arch"`
	ConfigureFlags   []string `toml:"configure_flags"`
	RTCDArch         string   `toml:"rtcd_arch"`
	RuntimeCPUDetect bool     `toml:"runtime_cpu_detect"`
}

func Load(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}
	applyDefaults(&cfg)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.ManifestPath == "" {
		cfg.ManifestPath = "libcodec_srcs.gni"
	}
	if cfg.ConfigRoot == "" && cfg.SourceDir != "" {
		cfg.ConfigRoot = filepath.Join(filepath.Dir(cfg.SourceDir), "config")
	}
	if cfg.ListPrefix == "" {
		cfg.ListPrefix = "libcodec_srcs"
	}
	if cfg.ConfigHeader == "" {
		cfg.ConfigHeader = "codec_config.h"
	}
	if cfg.RTCDScript == "" {
		cfg.RTCDScript = "build/make/rtcd.pl"
	}
	if cfg.ProbeTarget == "" {
		cfg.ProbeTarget = "codec_srcs.txt"
	}
	if cfg.Tools.Make == "" {
		cfg.Tools.Make = "make"
	}
	if cfg.Tools.Perl == "" {
		cfg.Tools.Perl = "perl"
	}
	if cfg.Tools.ClangFormat == "" {
		cfg.Tools.ClangFormat = "clang-format"
	}
	if cfg.Tools.GN == "" {
		cfg.Tools.GN = "gn"
	}
	if cfg.Tools.Git == "" {
		cfg.Tools.Git = "git"
	}
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.SourceDir) == "" {
		return fmt.Errorf("config missing source_dir")
	}
	if strings.TrimSpace(cfg.ConfigRoot) == "" {
		return fmt.Errorf("config missing config_root")
	}
	if strings.TrimSpace(cfg.ManifestPath) == "" {
		return fmt.Errorf("config missing manifest_path")
	}
	if len(cfg.Platforms) == 0 {
		return fmt.Errorf("config requires at least one [[platforms]] entry")
	}
	for i, platform := range cfg.Platforms {
		if err := ValidatePlatform(platform); err != nil {
			return fmt.Errorf("platform[%d] invalid: %w", i, err)
		}
	}
	seen := make(map[string]struct{}, len(cfg.Platforms))
	for _, platform := range cfg.Platforms {
		if _, ok := seen[platform.Name]; ok {
			return fmt.Errorf("duplicate platform name %q", platform.Name)
		}
		seen[platform.Name] = struct{}{}
	}
	for i, dispatch := range cfg.Dispatch {
		if strings.TrimSpace(dispatch.Sym) == "" {
			return fmt.Errorf("dispatch[%d] missing sym", i)
		}
		if strings.TrimSpace(dispatch.Defs) == "" {
			return fmt.Errorf("dispatch[%d] missing defs", i)
		}
	}
	return nil
}

func ValidatePlatform(cfg PlatformConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("name is required")
	}
	switch cfg.Arch {
	case ArchX86, ArchX64, ArchARM, ArchARM64, ArchGeneric:
	default:
		return fmt.Errorf("unknown arch %q", cfg.Arch)
	}
	if len(cfg.ConfigureFlags) == 0 {
		return fmt.Errorf("configure_flags are required")
	}
	if cfg.RuntimeCPUDetect && strings.TrimSpace(cfg.RTCDArch) == "" {
		return fmt.Errorf("rtcd_arch required when runtime_cpu_detect is set")
	}
	return nil
}

// IsX86 reports whether the platform partitions sources by x86 ISA suffix.
func (p PlatformConfig) IsX86() bool {
	return p.Arch == ArchX86 || p.Arch == ArchX64
}

// IsARM reports whether the platform uses the NEON intrinsics grouping.
func (p PlatformConfig) IsARM() bool {
	return p.Arch == ArchARM || p.Arch == ArchARM64
}

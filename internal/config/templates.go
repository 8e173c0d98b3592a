package config

import (
	"fmt"
	"os"
)

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(pipelineTemplate), 0o600)
}

const pipelineTemplate = `source_dir = "source/libcodec"
config_root = "source/config"
manifest_path = "libcodec_srcs.gni"
attribution_path = "README.chromium"
gn_prefix = "//third_party/libcodec/source/libcodec/"
list_prefix = "libcodec_srcs"
watched_dirs = ["codec", "codec_dsp"]
config_header = "codec_config.h"
rtcd_script = "build/make/rtcd.pl"
probe_target = "codec_srcs.txt"

[tools]
make = "make"
perl = "perl"
clang_format = "clang-format"
gn = "gn"
git = "git"

[[dispatch]]
sym = "codec_rtcd"
defs = "codec/common/rtcd_defs.pl"

[[dispatch]]
sym = "codec_dsp_rtcd"
defs = "codec_dsp/codec_dsp_rtcd_defs.pl"

[[platforms]]
name = "linux/x64"
arch = "x64"
configure_flags = ["--target=x86_64-linux-gcc", "--enable-external-build"]
rtcd_arch = "x86_64"
runtime_cpu_detect = true

[[platforms]]
name = "linux/ia32"
arch = "x86"
configure_flags = ["--target=x86-linux-gcc", "--enable-external-build"]
rtcd_arch = "x86"
runtime_cpu_detect = true

[[platforms]]
name = "linux/arm-neon-cpu-detect"
arch = "arm"
configure_flags = ["--target=armv7-linux-gcc", "--enable-external-build"]
rtcd_arch = "armv7"
runtime_cpu_detect = true

[[platforms]]
name = "linux/generic"
arch = "generic"
configure_flags = ["--target=generic-gnu", "--enable-external-build"]
`

package main

import (
	"flag"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"codecgen/internal/config"
	"codecgen/internal/logging"
	"codecgen/internal/pipeline"
	"codecgen/internal/tools"
)

func main() {
	cfgPath := flag.String("config", "codecgen.toml", "pipeline config path")
	onlyConfigs := flag.Bool("only-configs", false, "refresh configuration headers without regenerating the source manifest")
	keepWorkspace := flag.Bool("keep-workspace", false, "keep the temporary build tree after a successful run")
	writeTemplate := flag.Bool("write-template", false, "write a config template and exit")
	validate := flag.Bool("validate", false, "validate the config file and exit")
	force := flag.Bool("force", false, "overwrite an existing config template")
	flag.Parse()

	_ = godotenv.Load()
	logging.ConfigureRuntime()

	if *writeTemplate {
		if err := config.WriteTemplate(*cfgPath, *force); err != nil {
			log.Fatal().Err(err).Msg("write config template")
		}
		log.Info().Str("path", *cfgPath).Msg("wrote config template")
		return
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if *validate {
		log.Info().Str("path", *cfgPath).Msg("config valid")
		return
	}

	p := pipeline.New(cfg, tools.ExecRunner{})
	if err := p.Run(pipeline.Options{
		OnlyConfigs:   *onlyConfigs,
		KeepWorkspace: *keepWorkspace,
	}); err != nil {
		log.Fatal().Err(err).Msg("pipeline failed")
	}
	log.Info().Msg("pipeline complete")
}

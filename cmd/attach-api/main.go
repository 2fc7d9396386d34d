package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/kaiwachat/kaiwa/internal/config"
	"github.com/kaiwachat/kaiwa/internal/logger"
	"github.com/kaiwachat/kaiwa/internal/router"
	"github.com/kaiwachat/kaiwa/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if deps.Index != nil {
		defer deps.Index.Cleanup()
	}

	r := router.New(deps)

	logger.Log.Info("attachment api listening", "addr", cfg.Public.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.Public.ListenAddr, r))
}

package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/kaiwachat/kaiwa/internal/bridge"
	"github.com/kaiwachat/kaiwa/internal/config"
	"github.com/kaiwachat/kaiwa/internal/logger"
	"github.com/kaiwachat/kaiwa/internal/router"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	invoker := bridge.NewHTTPInvoker(cfg.Public.ConverterURL, nil)
	h := bridge.NewHandler(invoker)

	r := router.NewBridge(h.Convert)

	logger.Log.Info("convert bridge listening", "addr", cfg.Public.BridgeListenAddr)
	log.Fatal(http.ListenAndServe(cfg.Public.BridgeListenAddr, r))
}

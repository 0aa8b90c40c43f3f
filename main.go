package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/talkincode/medshop/config"
	"github.com/talkincode/medshop/internal/adminapi"
	"github.com/talkincode/medshop/internal/app"
	"github.com/talkincode/medshop/internal/shopapi"
	"github.com/talkincode/medshop/internal/webserver"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "/etc/medshop.yml", "config yaml file")
)

var (
	BuildVersion = "unknown"
	ReleaseDate  = "unknown"
)

func printVersion() {
	fmt.Printf("medshop version: %s, release: %s\n", BuildVersion, ReleaseDate)
}

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}
	if *showVer {
		printVersion()
		os.Exit(0)
	}

	appConfig := config.LoadConfig(*conffile)
	application := app.NewApplication(appConfig)
	application.Init(appConfig)
	defer application.Release()

	webserver.Init(application)
	shopapi.InitRouter()
	adminapi.InitRouter()
	application.StartBackgroundJobs()

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigs
		zap.S().Infof("received signal %s, shutting down", sig)
		application.Release()
		os.Exit(0)
	}()

	if err := webserver.Listen(); err != nil {
		zap.S().Errorf("web server stopped: %v", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/seqtools/ngsconf/internal/application"
	"github.com/seqtools/ngsconf/internal/config"
	"github.com/seqtools/ngsconf/internal/defaults"
	"github.com/seqtools/ngsconf/internal/logging"
	"github.com/seqtools/ngsconf/internal/registry"
)

// userConfigName is the per-user overlay looked up in the home directory.
const userConfigName = ".ngsconf.yaml"

var signalNotify = signal.Notify

func main() {
	app := kingpin.New("ngsconf", "Hierarchical configuration resolver for the NGS analysis toolkit")
	debug := app.Flag("debug", "Enable debug logging").Bool()
	overlays := app.Flag("config", "Additional configuration overlay, highest precedence last (repeatable)").PlaceHolder("PATH").Strings()
	noUserConfig := app.Flag("no-user-config", "Skip the per-user configuration layer (~/"+userConfigName+")").Bool()

	validateCmd := app.Command("validate", "Load and validate every configuration layer")

	getCmd := app.Command("get", "Print the value at a dotted configuration path as YAML")
	getPath := getCmd.Arg("path", "Dotted key path, e.g. resources.lola.region_databases.hg38").Required().String()

	renderCmd := app.Command("render", "Complete a deferred sample input file template")
	renderType := renderCmd.Arg("data-type", "Data type, e.g. ATAC-seq").Required().String()
	renderName := renderCmd.Arg("template", "Template name, e.g. aligned_filtered_bam").Required().String()
	renderVars := renderCmd.Flag("var", "Template variable as name=value (repeatable)").StringMap()

	executablesCmd := app.Command("executables", "List logical executable names and their commands")

	serveCmd := app.Command("serve", "Serve the resolved configuration over HTTP")
	servePort := serveCmd.Flag("port", "HTTP port exposed by the inspection server").Default("8080").String()
	serveRPS := serveCmd.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	serveBurst := serveCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()
	serveNoAccessLog := serveCmd.Flag("no-access-log", "Disable per-request access logging").Bool()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	sources := configSources(*overlays, !*noUserConfig)
	load := func() (*config.Resolved, error) {
		return config.Load(sources)
	}

	switch command {
	case validateCmd.FullCommand():
		if _, err := load(); err != nil {
			app.Fatalf("configuration invalid: %v", err)
		}
		fmt.Printf("configuration OK (%d layers considered)\n", len(sources))

	case getCmd.FullCommand():
		resolved, err := load()
		if err != nil {
			app.Fatalf("load configuration: %v", err)
		}
		value, err := resolved.Get(*getPath)
		if err != nil {
			app.Fatalf("%v", err)
		}
		out, err := yaml.Marshal(value)
		if err != nil {
			app.Fatalf("encode value: %v", err)
		}
		fmt.Print(string(out))

	case renderCmd.FullCommand():
		resolved, err := load()
		if err != nil {
			app.Fatalf("load configuration: %v", err)
		}
		rendered, err := registry.NewSampleFiles(resolved).Render(*renderType, *renderName, *renderVars)
		if err != nil {
			app.Fatalf("%v", err)
		}
		fmt.Println(rendered)

	case executablesCmd.FullCommand():
		resolved, err := load()
		if err != nil {
			app.Fatalf("load configuration: %v", err)
		}
		executables := registry.NewExecutables(resolved)
		names, err := executables.Names()
		if err != nil {
			app.Fatalf("%v", err)
		}
		for _, name := range names {
			cmd, err := executables.Command(name)
			if err != nil {
				app.Fatalf("%v", err)
			}
			fmt.Printf("%s\t%s\n", name, cmd)
		}

	case serveCmd.FullCommand():
		settings := application.DefaultSettings()
		settings.Port = *servePort
		settings.EnableRequestLogging = !*serveNoAccessLog
		if *serveRPS >= 0 {
			settings.RateLimitRPS = *serveRPS
		}
		if *serveBurst >= 0 {
			settings.RateLimitBurst = *serveBurst
		}

		logger, err := logging.New(*debug)
		if err != nil {
			app.Fatalf("initialize logger: %v", err)
		}
		defer func() {
			_ = logger.Sync()
		}()

		store, err := config.NewStore(load)
		if err != nil {
			logger.Fatal("failed to load configuration", zap.Error(err))
		}

		srv := application.New(settings, store, logger)
		if err := srv.Start(); err != nil {
			logger.Fatal("failed to start server", zap.Error(err))
		}

		shutdown(srv.Server(), settings.ShutdownGracePeriod, logger)
	}
}

// configSources assembles the layer stack: embedded defaults, then the
// optional per-user file, then any explicitly passed overlays.
func configSources(overlays []string, includeUser bool) []config.Source {
	sources := []config.Source{defaults.Source()}

	if includeUser {
		if home, err := os.UserHomeDir(); err == nil {
			sources = append(sources, config.Source{Path: filepath.Join(home, userConfigName)})
		}
	}

	for _, path := range overlays {
		sources = append(sources, config.Source{Path: path})
	}

	return sources
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}

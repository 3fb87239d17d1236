package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/haydenkz/nvim-wingman/internal/config"
	"github.com/haydenkz/nvim-wingman/internal/history"
	"github.com/haydenkz/nvim-wingman/internal/tui"
	"go.uber.org/zap"
)

var BUILD_VERSION = "dev"

var configPath = flag.String("config", "", "use a custom config file instead of the default location")
var helpFlag = flag.Bool("h", false, "display help information")
var versionFlag = flag.Bool("ver", false, "display build version")

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if *helpFlag {
		fmt.Println("Usage of wingman: wingman [flags] [file]")
		flag.PrintDefaults()
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wingman: %v\n", err)
		os.Exit(1)
	}

	logger, err := initializeLogger()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync() // Flush any buffered log entries
	}()

	logger.Info("-------- new wingman session --------", zap.Any("args", os.Args))

	// The suggestion log is optional; a broken database never blocks the
	// editor.
	store, err := initializeStore()
	if err != nil {
		logger.Warn("failed to initialize suggestion history", zap.Error(err))
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	path := flag.Arg(0)

	if err := tui.Run(cfg, store, logger, path); err != nil {
		logger.Error("unhandled error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "wingman: %v\n", err)
		os.Exit(1)
	}
}

func dataDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(cacheDir, "wingman")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func initializeLogger() (*zap.Logger, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}

	loggerConfig := zap.NewProductionConfig()
	if BUILD_VERSION == "dev" {
		loggerConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	loggerConfig.OutputPaths = []string{
		filepath.Join(dir, "wingman.log"),
	}
	return loggerConfig.Build()
}

func initializeStore() (*history.Store, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}
	return history.NewStore(filepath.Join(dir, "history.db"))
}

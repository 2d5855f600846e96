package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/MarkAC007/iphone-browser-emulator/config"
	"github.com/MarkAC007/iphone-browser-emulator/device"
	"github.com/MarkAC007/iphone-browser-emulator/network"
	"github.com/MarkAC007/iphone-browser-emulator/prefs"
	"github.com/MarkAC007/iphone-browser-emulator/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := newLogger(cfg.Debug)
	defer log.Sync()

	catalog := device.NewCatalog()
	if err := catalog.LoadCustom(cfg.DevicesPath); err != nil {
		log.Warn("could not load custom devices", zap.String("path", cfg.DevicesPath), zap.Error(err))
	}

	store, err := prefs.Open(cfg.PrefsPath, log)
	if err != nil {
		log.Fatal("could not open preferences", zap.String("path", cfg.PrefsPath), zap.Error(err))
	}

	client, err := network.NewClient(network.WithTimeout(cfg.LoadTimeout))
	if err != nil {
		log.Fatal("could not build HTTP client", zap.Error(err))
	}
	loader := network.NewLoader(client, log, network.WithCache(network.NewCache(0)))

	preview := ui.New(loader, store, catalog, log)

	watcher := prefs.NewWatcher(store, log, preview.ApplyPreferences)
	if err := watcher.Start(); err != nil {
		log.Warn("preference watcher disabled", zap.Error(err))
	}
	defer watcher.Stop()

	// Navigate after the window is up, either to a URL passed on the
	// command line or to the home page.
	startURL := cfg.HomeURL
	if len(os.Args) > 1 {
		startURL = os.Args[1]
	}
	go func() {
		time.Sleep(100 * time.Millisecond)
		preview.Navigate(startURL)
	}()

	preview.Run()
}

func newLogger(debug bool) *zap.Logger {
	if debug {
		log, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return log
	}
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return log
}

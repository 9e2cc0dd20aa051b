package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"app/cfg"
	"app/db"
	"app/internal/app/api"
	"app/internal/app/processor"
	"app/pkg/audiostore"
	"app/pkg/normalizer"
	"app/pkg/translator"
	"app/pkg/tts"
	"app/pkg/ws"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "cfg-path", "cfg/cfg.yaml", "path to config file")
	flag.Parse()

	var cfg *cfg.Config
	if cfgFile, err := os.ReadFile(cfgPath); err != nil {
		log.Fatalf("can't open %s file: %v", cfgPath, err)
	} else if err = yaml.Unmarshal(cfgFile, &cfg); err != nil {
		log.Fatal("can't unmarshal cfg.yaml file", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	baseDict, err := normalizer.LoadTamilDictionary()
	if err != nil {
		log.Fatal("failed to load tamil dictionary: ", err)
	}

	createDbCtx, createDbCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer createDbCancel()
	store, err := db.NewStore(createDbCtx, &cfg.DB)
	if err != nil {
		log.Fatal("failed to init dictionary store: ", err)
	}
	defer store.Close()

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	reg := prometheus.NewRegistry()
	tts.RegisterMetrics(reg)
	translator.RegisterMetrics(reg)
	ws.RegisterMetrics(reg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	speech := tts.NewService(logger.WithGroup("tts"), httpClient, &cfg.TTS)
	llmTranslator := translator.New(httpClient, &cfg.Translator)
	audioStore := audiostore.New(cfg.AudioTTL.Std())

	proc := processor.NewService(logger.WithGroup("processor"), baseDict, store, speech, llmTranslator, audioStore)

	api := api.NewAPI(&cfg.Api, logger.WithGroup("api"), proc, store, speech.Providers(), reg)

	router := api.NewRouter()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Api.Port),
		Handler: router,

		ReadTimeout:  cfg.Api.Timeout.Std(),
		WriteTimeout: cfg.Api.Timeout.Std(),
	}

	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()

		audioStore.Janitor(ctx, time.Minute)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()

		logger.Info("Starting server", "port", cfg.Api.Port)

		if err := srv.ListenAndServe(); err != nil {
			logger.Error("ListenAndServe finished", "err", err)
		}
	}()

	select {
	case <-ctx.Done():
	case <-stop:
		logger.Info("Interrupt triggerred")
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cognicore/propdoc/internal/fetch"
	"github.com/cognicore/propdoc/internal/httpapi"
	"github.com/cognicore/propdoc/pkg/propdoc"
	"github.com/cognicore/propdoc/pkg/propdoc/config"
	"github.com/cognicore/propdoc/pkg/propdoc/store/sqlite"
)

func main() {
	var (
		serverCfg   = flag.String("config", "", "Optional: server config YAML")
		addr        = flag.String("addr", ":8080", "Listen address")
		dbPath      = flag.String("db", "propdoc.db", "SQLite database path")
		stoplistCfg = flag.String("stoplist", "", "Optional: stoplist YAML")
		seedsCfg    = flag.String("seeds", "", "Optional: entity seed YAML")
		affectCfg   = flag.String("affect", "", "Optional: sentiment lexicon YAML")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	srvCfg := &config.Server{Addr: *addr, DBPath: *dbPath, FetchRPS: 1, MaxBody: 1 << 20}
	if *serverCfg != "" {
		loaded, err := config.LoadServer(*serverCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load server config: %v\n", err)
			os.Exit(1)
		}
		srvCfg = loaded
	}

	loader := &config.Loader{
		StoplistPath: *stoplistCfg,
		SeedsPath:    *seedsCfg,
		AffectPath:   *affectCfg,
	}
	comp, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load pipeline config: %v\n", err)
		os.Exit(1)
	}

	analyzer := propdoc.New(propdoc.Options{
		Classifier: comp.Classifier,
		Stoplist:   comp.Stoplist,
		Sentiment:  comp.Sentiment,
		Logger:     logger,
	})

	ctx := context.Background()
	st, err := sqlite.Open(ctx, srvCfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	api := httpapi.NewServer(httpapi.Options{
		Analyzer:   analyzer,
		Store:      st,
		Fetcher:    fetch.New(fetch.Options{RPS: srvCfg.FetchRPS}),
		AuthTokens: srvCfg.AuthTokens,
		Logger:     logger,
		MaxBody:    srvCfg.MaxBody,
	})

	mux := http.NewServeMux()
	api.RegisterRoutes(mux)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	srv := &http.Server{
		Addr:         srvCfg.Addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("starting propdoc server", "addr", srvCfg.Addr, "db", srvCfg.DBPath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("server stopped")
}

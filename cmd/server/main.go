package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	httpadapter "cookline/internal/adapter/http"
	staticlayouts "cookline/internal/adapter/layouts/static"
	metricsinmem "cookline/internal/adapter/metrics/inmemory"
	gormrepo "cookline/internal/adapter/repo/gorm"
	"cookline/internal/adapter/repo/memory"
	"cookline/internal/adapter/stream"
	"cookline/internal/app/batch"
	"cookline/internal/app/layouts"
	"cookline/internal/app/observe"
	"cookline/internal/app/ports"
	"cookline/internal/app/replay"
	"cookline/internal/app/status"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	episodeRepo, trajectoryRepo, txManager := mustBuildRepos()
	layoutProvider := staticlayouts.Provider{Root: resolveLayoutsRoot()}
	kpiRecorder := metricsinmem.NewRecorder()
	hub := stream.NewHub()

	batchUC := &batch.UseCase{
		Layouts:      layoutProvider,
		Episodes:     episodeRepo,
		Trajectories: trajectoryRepo,
		Tx:           txManager,
		Metrics:      kpiRecorder,
		Publisher:    hub,
		NewID:        uuid.NewString,
		Now:          time.Now,
		MaxEnvs:      intEnv("COOKLINE_MAX_ENVS", 0),
	}

	h := httpadapter.Handler{
		BatchUC:   batchUC,
		ObserveUC: observe.UseCase{Source: batchUC},
		StatusUC:  status.UseCase{Batches: batchUC},
		ReplayUC:  replay.UseCase{Episodes: episodeRepo, Trajectories: trajectoryRepo},
		LayoutsUC: layouts.UseCase{Provider: layoutProvider},
		KPI:       kpiRecorder,
	}

	streamAddr := envOr("COOKLINE_STREAM_ADDR", ":8081")
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/stream", hub.Handler())
		log.Printf("cookline observer stream listening on %s", streamAddr)
		if err := http.ListenAndServe(streamAddr, mux); err != nil {
			log.Fatalf("stream server: %v", err)
		}
	}()

	addr := envOr("COOKLINE_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("cookline server listening on %s", addr)
	s.Spin()
}

func mustBuildRepos() (ports.EpisodeRepository, ports.TrajectoryRepository, ports.TxManager) {
	dsn := strings.TrimSpace(os.Getenv("COOKLINE_DB_DSN"))
	if dsn == "" {
		log.Println("COOKLINE_DB_DSN not set, episodes held in memory only")
		store := memory.NewStore()
		return memory.NewEpisodeRepo(store), memory.NewTrajectoryRepo(store), memory.NewTxManager(store)
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if dir := resolveMigrationsDir(); dir != "" {
		if err := gormrepo.ApplyMigrations(context.Background(), db, dir); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
	}
	trajectoryRepo, err := gormrepo.NewTrajectoryRepo(db)
	if err != nil {
		log.Fatalf("init trajectory repo: %v", err)
	}
	return gormrepo.NewEpisodeRepo(db), trajectoryRepo, gormrepo.NewTxManager(db)
}

func resolveLayoutsRoot() string {
	if root := strings.TrimSpace(os.Getenv("COOKLINE_LAYOUTS_DIR")); root != "" {
		return root
	}
	return "./layouts"
}

func resolveMigrationsDir() string {
	if dir := strings.TrimSpace(os.Getenv("COOKLINE_MIGRATIONS_DIR")); dir != "" {
		return dir
	}
	if _, err := os.Stat("./migrations"); err == nil {
		return "./migrations"
	}
	return ""
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

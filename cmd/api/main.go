package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-marketplace.git/internal/auth"
	"github.com/ariefcatur/go-marketplace.git/internal/config"
	"github.com/ariefcatur/go-marketplace.git/internal/httpx"
	kafkax "github.com/ariefcatur/go-marketplace.git/internal/kafka"
	"github.com/ariefcatur/go-marketplace.git/internal/market"
	"github.com/ariefcatur/go-marketplace.git/internal/metrics"
	"github.com/ariefcatur/go-marketplace.git/internal/pgstore"
	"github.com/ariefcatur/go-marketplace.git/internal/postgres"
	"github.com/ariefcatur/go-marketplace.git/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers, satu per topic
	producers := map[string]*kafkax.Producer{
		market.TopicOrderPlaced:        kafkax.NewProducer(cfg.KafkaBrokers, market.TopicOrderPlaced, 1024, log),
		market.TopicOrderStatusChanged: kafkax.NewProducer(cfg.KafkaBrokers, market.TopicOrderStatusChanged, 1024, log),
		market.TopicWalletAdjusted:     kafkax.NewProducer(cfg.KafkaBrokers, market.TopicWalletAdjusted, 1024, log),
	}
	pubs := map[string]httpx.EventPublisher{}
	for topic, p := range producers {
		p.Start(ctx)
		pubs[topic] = p
	}

	// Core wiring
	store := pgstore.New(db)
	engine := market.NewEngine(store)
	ledger := market.NewLedger(store)
	authSvc := auth.New(auth.Config{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.ServiceName,
		TokenTTL: cfg.TokenTTL,
	}, store)

	mtr := metrics.New("api")
	router := httpx.NewRouter(mtr.Middleware)
	router.Handle("/metrics", metrics.Handler())

	h := &httpx.Handlers{
		Engine:    engine,
		Ledger:    ledger,
		Store:     store,
		Auth:      authSvc,
		Producers: pubs,
		Redis:     rdb,
		Metrics:   mtr,
		Log:       log,
		Service:   cfg.ServiceName,
	}
	h.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Info("HTTP listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	for _, p := range producers {
		p.Close() // tutup inbox -> flush & close writer
	}
	for _, p := range producers {
		p.WaitClosed() // drain
	}
	cancel()
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/tab-pos/config"
	"github.com/yeremiapane/tab-pos/database"
	"github.com/yeremiapane/tab-pos/kds"
	"github.com/yeremiapane/tab-pos/ledger"
	"github.com/yeremiapane/tab-pos/redisx"
	"github.com/yeremiapane/tab-pos/router"
	"github.com/yeremiapane/tab-pos/services"
	"github.com/yeremiapane/tab-pos/utils"
)

func main() {
	utils.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	utils.SetJWTSecret(cfg.JWTSecret)
	utils.CurrencySymbol = cfg.CurrencySymbol

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	ctx := context.Background()
	store := database.NewStore(db)
	if err := store.Migrate(); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate: %v", err)
	}
	if err := store.SeedPaymentMethods(ctx); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed payment methods: %v", err)
	}
	state, err := store.Load(ctx)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load state: %v", err)
	}
	products, err := store.Products(ctx)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load products: %v", err)
	}
	methods, err := store.PaymentMethods(ctx)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load payment methods: %v", err)
	}

	persister := services.NewPersister(store)
	persister.Start()

	var sinks []services.LedgerSink
	var producers []*ledger.Producer
	if len(cfg.KafkaBrokers) > 0 {
		financial := ledger.NewProducer(cfg.KafkaBrokers, ledger.TopicFinancial, 1024)
		stock := ledger.NewProducer(cfg.KafkaBrokers, ledger.TopicStock, 1024)
		financial.Start()
		stock.Start()
		producers = append(producers, financial, stock)
		sinks = append(sinks, ledger.NewKafkaSink(cfg.ServiceName, financial, stock))
	} else {
		sinks = append(sinks, ledger.LogSink{})
	}

	monitor := services.NewSettlementMonitor()
	notifiers := []services.Notifier{monitor, kds.Board{Monitor: monitor}}
	if cfg.RedisAddr != "" {
		rdb := redisx.New(cfg.RedisAddr)
		if err := redisx.Ping(ctx, rdb); err != nil {
			utils.ErrorLogger.WithError(err).Error("redis unreachable, board cache disabled")
		} else {
			notifiers = append(notifiers, redisx.NewBoardCache(rdb))
		}
		defer rdb.Close()
	}

	catalog := services.NewMemoryCatalog(products)
	engine, err := services.NewEngine(services.Options{
		Mode:           cfg.TabMode,
		Count:          cfg.TabCount,
		Catalog:        catalog,
		Methods:        services.NewMethodList(methods),
		Sinks:          sinks,
		Notifiers:      notifiers,
		Persist:        persister,
		ManagerPINHash: []byte(cfg.ManagerPINHash),
	}, state)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to build tab registry: %v", err)
	}

	janitor := services.NewCartJanitor(engine, cfg.CartSweep, cfg.CartTTL)
	janitor.Start()

	r := router.SetupRouter(router.Deps{
		Engine:        engine,
		Catalog:       catalog,
		Monitor:       monitor,
		DB:            db,
		AllowedOrigin: cfg.AllowedOrigin,
		RateLimit:     50,
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.WithError(err).Error("server shutdown")
	}
	janitor.Stop()
	persister.Stop()
	for _, p := range producers {
		p.Close()
		p.WaitClosed()
	}
	utils.InfoLogger.Println("Shutdown complete")
}

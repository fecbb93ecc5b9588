package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/sync/errgroup"

	"github.com/sbilibin2017/gw-exchange-bot/internal/bot"
	"github.com/sbilibin2017/gw-exchange-bot/internal/config"
	"github.com/sbilibin2017/gw-exchange-bot/internal/facades"
	"github.com/sbilibin2017/gw-exchange-bot/internal/handlers"
	"github.com/sbilibin2017/gw-exchange-bot/internal/jwt"
	"github.com/sbilibin2017/gw-exchange-bot/internal/logger"
	"github.com/sbilibin2017/gw-exchange-bot/internal/middlewares"
	"github.com/sbilibin2017/gw-exchange-bot/internal/migrations"
	"github.com/sbilibin2017/gw-exchange-bot/internal/pricing"
	"github.com/sbilibin2017/gw-exchange-bot/internal/repositories"
	"github.com/sbilibin2017/gw-exchange-bot/internal/services"
	"github.com/sbilibin2017/gw-exchange-bot/internal/workers"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

const shutdownTimeout = 10 * time.Second

// @title gw-exchange-bot API
// @version 1.0.0
// @description Telegram currency exchange assistant: vendor rates, handling fees, orders and broadcasts
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// run connects the stores, wires services and starts the HTTP server, the
// Telegram bot and the workers. It returns when ctx is cancelled or any of
// them fails.
func run(ctx context.Context, cfg *config.Config) error {
	if err := logger.Initialize(cfg.App.LogLevel, "gw-exchange-bot"); err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logger.Sync()

	if cfg.Postgres.Migrate {
		if err := migrations.Up(cfg.Postgres.DSN()); err != nil {
			return err
		}
		logger.Log.Infow("migrations applied")
	}

	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("postgres connection: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection: %w", err)
	}
	defer rdb.Close()

	tg, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return fmt.Errorf("telegram bot: %w", err)
	}
	tg.Debug = cfg.Telegram.Debug
	logger.Log.Infow("telegram bot authorized", "username", tg.Self.UserName)

	buyPref, err := services.ParsePreference(cfg.Pricing.BuyPreference)
	if err != nil {
		return err
	}
	sellPref, err := services.ParsePreference(cfg.Pricing.SellPreference)
	if err != nil {
		return err
	}

	// Repositories
	txManager := repositories.NewTxManager(db)
	currencyRepo := repositories.NewCurrencyRepository(db)
	rateReadRepo := repositories.NewExchangeRateReadRepository(db)
	rateWriteRepo := repositories.NewExchangeRateWriteRepository(db)
	feeReadRepo := repositories.NewHandlingFeeReadRepository(db)
	feeWriteRepo := repositories.NewHandlingFeeWriteRepository(db)
	groupRepo := repositories.NewChatGroupRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	cartCache := repositories.NewCartCacheRepository(rdb, cfg.Order.CartCacheTTL)
	broadcastRepo := repositories.NewBroadcastRepository(db)
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)

	// Facades
	telegram := facades.NewTelegramFacade(tg)
	vendorBot := facades.NewVendorBotFacade(cfg.VendorBot.URL, cfg.VendorBot.Token, cfg.VendorBot.Timeout)
	nlu := facades.NewNLUFacade(cfg.NLU.URL, cfg.NLU.Timeout)

	// Broadcast queue
	var publisher services.BroadcastPublisher
	var kafkaReader *kafka.Reader
	if cfg.Kafka.Enabled {
		kafkaWriter := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Kafka.Brokers...),
			Topic:                  cfg.Kafka.BroadcastTopic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		}
		defer kafkaWriter.Close()
		publisher = workers.NewBroadcastPublisher(kafkaWriter)

		kafkaReader = kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Kafka.Brokers,
			GroupID: cfg.Kafka.GroupID,
			Topic:   cfg.Kafka.BroadcastTopic,
		})
		defer kafkaReader.Close()
	}

	// Services
	engine := pricing.New(cfg.Pricing.RoundBase)
	jwtService := jwt.New(jwt.WithSecretKey(cfg.JWT.SecretKey), jwt.WithExpiration(cfg.JWT.Exp))
	resolverService := services.NewResolverService(currencyRepo, rateReadRepo, feeReadRepo, engine, buyPref, sellPref)
	orderService := services.NewOrderService(
		orderRepo, cartRepo, cartCache, txManager, groupRepo, telegram, resolverService, engine,
		cfg.Order.Prefix, cfg.Order.PaymentWindow,
	)
	workflowService := services.NewWorkflowService(
		nlu, resolverService, orderService, vendorBot, groupRepo, engine,
		cfg.Pricing.BaseCurrency, cfg.Workflow.DisabledActions,
	)
	broadcastService := services.NewBroadcastService(broadcastRepo, publisher, telegram, vendorBot, groupRepo, cfg.Broadcast.Concurrency)
	exchangeRateService := services.NewExchangeRateService(rateReadRepo, rateWriteRepo, groupRepo, txManager)
	handlingFeeService := services.NewHandlingFeeService(feeReadRepo, feeWriteRepo, txManager)
	authService := services.NewAuthService(userReadRepo, userWriteRepo, jwtService)

	if cfg.Admin.Username != "" && cfg.Admin.Password != "" {
		if err := authService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Email); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.App.Host, cfg.App.Port),
		Handler:           newRouter(cfg, db, jwtService, authService, exchangeRateService, handlingFeeService, broadcastService, orderService),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Log.Infow("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Errorw("HTTP server shutdown error", "error", err)
		}
		logger.Log.Infow("HTTP server stopped gracefully")
		return nil
	})

	g.Go(func() error {
		return bot.New(tg, workflowService, telegram, cfg.Telegram.Workers, cfg.Telegram.PollTimeout).Run(gctx)
	})

	g.Go(func() error {
		return workers.NewExpirySweeper(orderService, cfg.Order.SweepInterval, cfg.Order.SweepBatch).Run(gctx)
	})

	if kafkaReader != nil {
		g.Go(func() error {
			return workers.NewBroadcastConsumer(kafkaReader, broadcastService, cfg.Broadcast.RetryAttempts, cfg.Broadcast.RetryDelay).Run(gctx)
		})
	}

	return g.Wait()
}

// newRouter mounts the admin and vendor-bot facing routes.
func newRouter(
	cfg *config.Config,
	db *sqlx.DB,
	tokens *jwt.JWT,
	auth handlers.Loginer,
	rates *services.ExchangeRateService,
	fees handlers.HandlingFeeConfigService,
	broadcasts handlers.Broadcaster,
	orders handlers.OrderProgressor,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(middlewares.MetricsMiddleware)

	actor := handlers.ActorGetter(middlewares.ActorFromContext)

	// Public routes
	r.Post("/login", handlers.NewLoginHandler(auth))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.App.Host, cfg.App.Port)),
	))

	// Protected routes with JWT middleware
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(tokens))

		r.Get("/exchange_rate/{group_id}", handlers.NewGetExchangeRatesHandler(rates))
		r.Get("/handling_fee/config", handlers.NewListHandlingFeeConfigsHandler(fees))
		r.Get("/handling_fee/config/{id}", handlers.NewGetHandlingFeeConfigHandler(fees))

		r.Group(func(r chi.Router) {
			r.Use(middlewares.TxMiddleware(db))
			r.Post("/exchange_rate/currency_rate", handlers.NewUpsertCurrencyRatesHandler(rates, rates))
			r.Post("/handling_fee/config", handlers.NewCreateHandlingFeeConfigHandler(fees, actor))
			r.Put("/handling_fee/config/{id}", handlers.NewUpdateHandlingFeeConfigHandler(fees, actor))
			r.Put("/handling_fee/config/{id}/items", handlers.NewUpsertHandlingFeeItemsHandler(fees))
		})

		r.Route("/telegram/messages", func(r chi.Router) {
			r.Post("/broadcast", handlers.NewBroadcastHandler(broadcasts, actor))
			r.Get("/broadcast/{id}", handlers.NewBroadcastHistoryHandler(broadcasts))
			r.Post("/payment_account", handlers.NewPaymentAccountHandler(orders, actor))
			r.Post("/confirm_pay", handlers.NewConfirmPayHandler(orders, actor))
			r.Put("/payment_account_status/{group_id}", handlers.NewPaymentAccountStatusHandler(orders, actor))
			r.Put("/order_payment_account_status/{group_id}", handlers.NewOrderPaymentAccountStatusHandler(orders, actor))
		})
	})

	return r
}

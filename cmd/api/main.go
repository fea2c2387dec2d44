package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"taskmanager/pkg/translator"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authadapter "taskmanager/internal/adapter/auth"
	dbadapter "taskmanager/internal/adapter/db"
	httpadapter "taskmanager/internal/adapter/http"
	"taskmanager/internal/adapter/http/handlers"
	httpmiddleware "taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/adapter/mongodb"
	appservice "taskmanager/internal/app/service"
	"taskmanager/internal/config"
	"taskmanager/internal/core/ports"
)

type stores struct {
	tasks  ports.TaskRepository
	users  ports.UserRepository
	pinger handlers.Pinger
	close  func() error
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	cfg := config.LoadConfig()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	st, err := openStores(context.Background(), cfg)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.DbDriver), zap.Error(err))
	}

	tokens := authadapter.NewJWTManager(authadapter.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
		ExpiresIn: cfg.JWTExpiresIn,
	})
	authService, err := appservice.NewAuthService(st.users, authadapter.NewPasswordHasher(cfg.BcryptCost), tokens)
	if err != nil {
		logger.Fatal("failed to build auth service", zap.Error(err))
	}
	taskService := appservice.NewTaskService(st.tasks)

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Strings("proxies", cfg.TrustedProxies), zap.Error(err))
	}

	healthHandler := handlers.NewHealthHandler(handlers.HealthInfo{
		AppName:    cfg.AppName,
		AppVersion: cfg.AppVersion,
		Driver:     cfg.DbDriver,
	}, st.pinger)

	httpadapter.RegisterRoutes(r, httpadapter.RouterConfig{
		AuthService:    authService,
		HealthHandler:  healthHandler,
		TaskHandler:    handlers.NewTaskHandler(taskService),
		AuthHandler:    handlers.NewAuthHandler(authService),
		AuthLimiter:    httpmiddleware.NewIPRateLimiter(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		StaticDir:      cfg.StaticDir,
	})

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr), zap.String("driver", cfg.DbDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			// The store is closed only after in-flight requests have drained.
			"http-server": func(ctx context.Context) error {
				logger.Info("shutting down http server")
				shutdownErr := srv.Shutdown(ctx)
				if err := st.close(); err != nil {
					logger.Warn("failed to close store", zap.Error(err))
				}
				return shutdownErr
			},
		},
	)

	exitCode := <-wait
	logger.Info("server exited", zap.Int("code", exitCode))
	_ = logger.Sync()
	os.Exit(exitCode)
}

func openStores(ctx context.Context, cfg *config.Config) (stores, error) {
	if cfg.DbDriver == config.DriverMongo {
		store, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return stores{}, err
		}
		return stores{tasks: store.Tasks(), users: store.Users(), pinger: store, close: store.Close}, nil
	}

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		return stores{}, err
	}
	if err := dbadapter.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return stores{}, err
	}
	return stores{
		tasks:  dbadapter.NewTaskRepository(db),
		users:  dbadapter.NewUserRepository(db),
		pinger: db,
		close:  db.Close,
	}, nil
}

package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-taskboard/internal/config"
	"github.com/adanyl0v/go-taskboard/internal/delivery/http/v1"
	"github.com/adanyl0v/go-taskboard/internal/services"
)

func MustListenAndServeHTTP() {
	httpCfg := config.Global().HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// kill (no params) sends SIGTERM, kill -2 sends SIGINT.
	// SIGKILL can't be caught.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Dur("timeout", httpCfg.ShutdownTimeout).
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	cfg := config.Global()

	authService := services.NewAuthService(
		componentLogger("auth"),
		globalDirectory,
		cfg.Auth.SimulatedDelay,
		cfg.JWT.Issuer,
		[]byte(cfg.JWT.SigningKey),
		cfg.JWT.AccessTokenTTL,
	)

	v1Handler := v1.New(
		componentLogger("http"),
		authService,
		globalDirectory,
		globalTaskStore,
		services.NewBoardService(componentLogger("board"), globalTaskStore, globalDirectory),
		services.NewSessionService(componentLogger("drag"), globalTaskStore),
		services.NewEditorService(componentLogger("editor"), globalTaskStore),
	)
	v1.RegisterRoutes(router.Group("/api/v1"), v1Handler)
}

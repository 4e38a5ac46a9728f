package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"liyu1981.xyz/guardian-alert-service/pkg/auth"
	"liyu1981.xyz/guardian-alert-service/pkg/bus"
	"liyu1981.xyz/guardian-alert-service/pkg/common"
	"liyu1981.xyz/guardian-alert-service/pkg/db"
	"liyu1981.xyz/guardian-alert-service/pkg/gateway"
	"liyu1981.xyz/guardian-alert-service/pkg/guardian"
	guardianHttp "liyu1981.xyz/guardian-alert-service/pkg/http"
	"liyu1981.xyz/guardian-alert-service/pkg/push"
)

func main() {
	if err := godotenv.Load(); err != nil && common.IsDevelopment() {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	cfg, err := common.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	common.InitLogger(common.LogOptions{Dir: cfg.Log.Dir, Level: cfg.Log.Level})
	logger := common.GetLogger()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbInstance, err := db.Open(cfg.Db)
	if err != nil {
		logger.Fatal("Failed to open database", zap.String("type", cfg.Db.Type), zap.Error(err))
	}
	defer func() { _ = dbInstance.Close() }()

	verifier, err := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTAlgorithm)
	if err != nil {
		logger.Fatal("Failed to create token verifier", zap.Error(err))
	}

	provider, err := newPushProvider(ctx, cfg.Push)
	if err != nil {
		logger.Fatal("Failed to create push provider", zap.String("provider", cfg.Push.Provider), zap.Error(err))
	}

	location, err := time.LoadLocation(cfg.Pipeline.TimeZone)
	if err != nil {
		logger.Fatal("Invalid time zone", zap.String("timezone", cfg.Pipeline.TimeZone), zap.Error(err))
	}

	g := guardian.New(dbInstance, guardian.Options{
		Location:            location,
		FallbackPushToken:   cfg.Pipeline.FallbackPushToken,
		DispatchConcurrency: cfg.Pipeline.DispatchConcurrency,
	}, verifier, provider)

	if cfg.Status.Store == common.StatusStoreRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Status.RedisAddr,
			Password: cfg.Status.RedisPassword,
			DB:       cfg.Status.RedisDB,
		})
		defer func() { _ = client.Close() }()
		g.WithServices(guardian.ServiceOpts{Status: guardian.NewRedisStatusRecorder(client, cfg.Status.TTL)})
	}

	newLimiter := func() *guardian.RateLimiterStore {
		return guardian.NewRateLimiterStore(rate.Limit(cfg.Limiter.DefaultRate), cfg.Limiter.DefaultBurst)
	}
	logger.Info("Rate limiters created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", cfg.Limiter.DefaultRate, cfg.Limiter.DefaultBurst)))

	adapter := bus.NewAdapter(g.Pipeline, bus.AdapterOptions{
		Namespace: cfg.Bus.Namespace,
		Timeout:   cfg.Pipeline.IngestTimeout,
		Limiter:   newLimiter(),
	})

	source, err := newBusSource(ctx, adapter, cfg.Bus, cfg.Push.CredentialsFile)
	if err != nil {
		logger.Fatal("Failed to create bus source", zap.String("type", cfg.Bus.Type), zap.Error(err))
	}
	if source != nil {
		logger.Info("Starting bus source", zap.String("type", cfg.Bus.Type), zap.String("namespace", cfg.Bus.Namespace))
		go func() {
			if err := source.Start(ctx); err != nil {
				logger.Error("Bus source stopped", zap.Error(err))
			}
		}()
	}

	var grpcServer *grpc.Server
	if grpcHostPort := strings.TrimSpace(cfg.Server.GrpcHostPort); grpcHostPort != "" {
		gs := &gateway.GatewayServer{
			Pipeline:         g.Pipeline,
			Alerter:          gateway.LogAlerter{},
			RateLimiterStore: newLimiter(),
			Timeout:          cfg.Pipeline.IngestTimeout,
		}
		grpcServer = grpc.NewServer(grpc.UnaryInterceptor(gs.CreateRateLimitInterceptor([]string{gateway.ReportStatusMethod})))
		gateway.RegisterGatewayServer(grpcServer, gs)

		listener, err := net.Listen("tcp", grpcHostPort)
		if err != nil {
			logger.Fatal("Failed to listen", zap.String("addr", grpcHostPort), zap.Error(err))
		}
		logger.Info("Starting gRPC gateway on " + grpcHostPort)
		go func() {
			if err := grpcServer.Serve(listener); err != nil {
				logger.Error("gRPC server failed to serve", zap.Error(err))
			}
		}()
	}

	if common.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	rs := &guardianHttp.RestfulServer{
		Server:           gin.Default(),
		Guardian:         g,
		RateLimiterStore: newLimiter(),
		CorsOrigins:      strings.Split(cfg.Server.CorsOrigins, ","),
	}
	rs.Setup()

	httpServer := &http.Server{Addr: cfg.Server.HttpHostPort, Handler: rs.Server}
	go func() {
		logger.Info("Starting HTTP server on: " + cfg.Server.HttpHostPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed to serve", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Pipeline.IngestTimeout)
	defer cancel()

	if source != nil {
		source.Close()
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown", zap.Error(err))
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	adapter.Wait()
	g.Notifier.Drain()
	logger.Info("Stopped")
}

func newPushProvider(ctx context.Context, cfg common.PushConfig) (push.Provider, error) {
	switch cfg.Provider {
	case common.PushProviderFCM:
		return push.NewFCMProvider(ctx, cfg.CredentialsFile)
	case common.PushProviderLog:
		return push.NewLogProvider(), nil
	default:
		return nil, fmt.Errorf("unknown push provider %q", cfg.Provider)
	}
}

// newBusSource returns nil when the bus is disabled.
func newBusSource(ctx context.Context, adapter *bus.Adapter, cfg common.BusConfig, credentialsFile string) (bus.Source, error) {
	switch cfg.Type {
	case common.BusTypeMQTT:
		return bus.NewMQTTSource(adapter, bus.MQTTOptions{
			BrokerURL: cfg.MQTTBrokerURL,
			ClientID:  cfg.MQTTClientID,
			Username:  cfg.MQTTUsername,
			Password:  cfg.MQTTPassword,
		}), nil
	case common.BusTypePubSub:
		return bus.NewPubSubSource(ctx, adapter, cfg.PubSubProjectID, cfg.PubSubSubscription, credentialsFile)
	case common.BusTypeNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown bus type %q", cfg.Type)
	}
}

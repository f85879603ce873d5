package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sjmedialabs/vbrlandscap-sub001/handlers"
	"github.com/sjmedialabs/vbrlandscap-sub001/internal/config"
	"github.com/sjmedialabs/vbrlandscap-sub001/internal/database"
	"github.com/sjmedialabs/vbrlandscap-sub001/internal/identity"
	"github.com/sjmedialabs/vbrlandscap-sub001/internal/intake"
	"github.com/sjmedialabs/vbrlandscap-sub001/internal/sessions"
	"github.com/sjmedialabs/vbrlandscap-sub001/internal/storage"
	"github.com/sjmedialabs/vbrlandscap-sub001/internal/store"
	"github.com/sjmedialabs/vbrlandscap-sub001/pkg/logger"
	"github.com/sjmedialabs/vbrlandscap-sub001/pkg/metrics"
	"github.com/sjmedialabs/vbrlandscap-sub001/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging level controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v identity=%v redis=%v", cfg.MongoDB.URI != "" || cfg.MongoDB.PublicURI != "", cfg.Identity.BaseURL != "", cfg.Redis.Host != "")

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Lightweight CORS middleware: the admin dashboard is served from its own
	// origin. Production deployments should tighten the allowed origin.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	ctx := context.Background()

	// Connect to Redis early so the global rate limiter can use it
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("connected to Redis %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Optional global rate limiter (per-user when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Connect to the document store with retry/backoff to tolerate startup races
	var mongoStore *store.MongoStore
	var mongoClient *mongo.Client
	const maxAttempts = 5
	backoff := time.Second
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var errConn error
		mongoStore, mongoClient, errConn = database.OpenStore(ctx, &cfg.MongoDB)
		if errConn == nil {
			break
		}
		mongoStore = nil
		logger.Warnf("attempt %d/%d: failed to connect to the document store: %v", attempt, maxAttempts, errConn)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if mongoStore == nil {
		logger.Fatalf("could not connect to the document store after %d attempts", maxAttempts)
	}
	defer func() { _ = mongoClient.Disconnect(ctx) }()
	logger.Println("document store connected in", string(mongoStore.Mode()), "mode")
	var contentStore store.Store = mongoStore

	// Identity client and session manager; the admin area stays dark without them
	var identityClient *identity.Client
	if cfg.Identity.BaseURL != "" && cfg.Identity.APIKey != "" {
		identityClient, err = identity.New(ctx, cfg.Identity)
		if err != nil {
			logger.Warnf("identity client unavailable: %v", err)
		}
	} else {
		logger.Warnf("identity service not configured; admin login disabled")
	}

	var sessionMgr *sessions.Manager
	if cfg.Session.Secret != "" {
		var verifier sessions.TokenVerifier
		if identityClient != nil {
			verifier = identityClient
		}
		sessionMgr, err = sessions.NewManager(verifier, cfg.Session.Secret, cfg.Session.TTL, cfg.IsProduction())
		if err != nil {
			logger.Fatalf("session manager: %v", err)
		}
	} else {
		logger.Warnf("SESSION_SECRET not set; admin routes are unreachable")
	}

	// Blob storage for media uploads
	blobs, err := storage.NewBlobStorage(storage.LoadMinIOConfig())
	if err != nil {
		logger.Warnf("blob storage unavailable: %v", err)
	}

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{
			"store":   contentStore != nil,
			"auth":    sessionMgr != nil && identityClient != nil,
			"uploads": blobs != nil,
		}
		if !deps["store"] {
			ready = false
		}
		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis && redisClient == nil {
			deps["redis"] = false
			ready = false
		}
		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Route registration. guard protects the admin mutations; when the session
	// manager is missing the guard rejects everything.
	api := r.Group("/api")
	guard := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "authentication not configured"})
	}
	if sessionMgr != nil {
		guard = middleware.RequireSession(sessionMgr)
		var identitySvc handlers.IdentityService
		if identityClient != nil {
			identitySvc = identityClient
		}
		handlers.NewAuthHandler(identitySvc, sessionMgr).Register(api)
	}

	limiter := intake.NewLimiter(5, 15*time.Minute)
	intakeHandler := handlers.NewIntakeHandler(contentStore, limiter)
	intakeHandler.Register(api)

	var adminVerifier middleware.SessionVerifier
	if sessionMgr != nil {
		adminVerifier = sessionMgr
	}
	handlers.NewSectionsHandler(contentStore).Register(api, guard)
	handlers.NewProjectsHandler(contentStore, adminVerifier).Register(api, guard)
	handlers.NewCareersHandler(contentStore).Register(api, guard)
	handlers.NewSectorsHandler(contentStore, intakeHandler).Register(api, guard)
	handlers.NewEcoMatrixHandler(contentStore).Register(api, guard)
	if blobs != nil {
		handlers.NewUploadHandler(blobs).Register(api, guard)
	}
	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting content service on %s (env=%s)", addr, cfg.Server.Environment)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}

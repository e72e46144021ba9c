package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms/openai"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(database database.Database) (Server, error) {
	c := config.New()

	// Ensure correct port is set
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	// Capture startup time
	startupTime := time.Now()

	router, err := newRouter(database, withConfig(c), withStartupTime(startupTime))
	if err != nil {
		return Server{}, err
	}

	// Get timeout values from config with sensible defaults
	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(database database.Database, opts ...func(*router)) (*chi.Mux, error) {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	// Apply CORS middleware
	acceptedOrigins := strings.Split(config.GetString(router.config, "ACCEPTED_ORIGINS", "*"), ",")
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   acceptedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Client-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	secret := []byte(config.GetString(router.config, "JWT_SECRET", ""))
	if len(secret) == 0 {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	tokenTTL := time.Duration(config.GetInt(router.config, "TOKEN_TTL_HOURS", 24)) * time.Hour

	// Either identity strategy satisfies the same interface; handlers never
	// know which one is active.
	var resolver IdentityResolver
	if config.GetString(router.config, "AUTH_STRATEGY", "claims") == "roles" {
		resolver = NewRoleTableResolver(secret, database.UserRepo())
	} else {
		resolver = NewClaimsResolver(secret)
	}

	model, err := newChatModel(router.config)
	if err != nil {
		return nil, err
	}

	store, bucket, region := newObjectStore(router.config)

	handlers := initializeHandlers(database, handlerConfig{
		resolver:    resolver,
		secret:      secret,
		tokenTTL:    tokenTTL,
		model:       model,
		store:       store,
		bucket:      bucket,
		region:      region,
		clientKey:   config.GetString(router.config, "CHAT_CLIENT_KEY", ""),
		startupTime: router.startupTime,
	})

	authMiddleware := newAuthMiddleware(resolver)

	setupRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter, nil
}

// newChatModel builds the streaming LLM client, or returns nil when the chat
// gateway is not configured.
func newChatModel(c map[string]string) (ChatModel, error) {
	apiKey := config.GetString(c, "OPENAI_API_KEY", "")
	if apiKey == "" {
		log.Warn().Msg("OPENAI_API_KEY not set, chat endpoint disabled")
		return nil, nil
	}

	options := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(config.GetString(c, "CHAT_MODEL", "gpt-4o-mini")),
	}
	if baseURL := config.GetString(c, "CHAT_BASE_URL", ""); baseURL != "" {
		options = append(options, openai.WithBaseURL(baseURL))
	}

	model, err := openai.New(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chat model: %w", err)
	}
	return model, nil
}

// newObjectStore builds the S3 client for uploads, or returns nil when no
// bucket is configured.
func newObjectStore(c map[string]string) (ObjectStore, string, string) {
	bucket := config.GetString(c, "S3_BUCKET", "")
	if bucket == "" {
		log.Warn().Msg("S3_BUCKET not set, upload endpoint disabled")
		return nil, "", ""
	}

	region := config.GetString(c, "AWS_REGION", "us-east-1")
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		log.Error().Err(err).Msg("Failed to load AWS config, upload endpoint disabled")
		return nil, "", ""
	}

	return s3.NewFromConfig(awsCfg), bucket, region
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/avinashankur/user-accounts-backend/config"
	"github.com/avinashankur/user-accounts-backend/controllers"
	"github.com/avinashankur/user-accounts-backend/db"
	"github.com/avinashankur/user-accounts-backend/forms"
	"github.com/avinashankur/user-accounts-backend/kv"
	"github.com/avinashankur/user-accounts-backend/service"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/requestid"
	"github.com/joho/godotenv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Request and response bodies are JSON and small; anything past 16kb is cut
// off before the handlers see it.
const maxBodyBytes = 16 << 10

// CORS (Cross-Origin Resource Sharing)
func CORSMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, PATCH, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Origin, Authorization, Accept, Accept-Encoding")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
		} else {
			c.Next()
		}
	}
}

func SlogMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rlog := logger.With(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"client_ip", c.ClientIP(),
			"request_id", requestid.Get(c),
		)

		start := time.Now()
		rlog.Debug("request started")
		c.Next()
		duration := time.Since(start)
		rlog.Info("request completed", "status", c.Writer.Status(), "duration", duration)
	}
}

func BodyLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		c.Next()
	}
}

func main() {
	//Load the .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			slog.Error("failed to load the env file")
			os.Exit(1)
		}
	}

	var logger *slog.Logger
	if os.Getenv("ENV") == "PRODUCTION" {
		gin.SetMode(gin.ReleaseMode)
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	//Start the default gin server
	r := gin.Default()

	//Custom form validator
	binding.Validator = new(forms.DefaultValidator)

	r.Use(CORSMiddleware(cfg.CORSOrigin))
	r.Use(requestid.New(requestid.WithCustomHeaderStrKey("X-Request-Id")))
	r.Use(SlogMiddleware(logger))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(BodyLimitMiddleware())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongo, err := db.NewMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		slog.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	if err := mongo.EnsureIndexes(ctx); err != nil {
		slog.Error("failed to create unique indexes", "error", err)
		os.Exit(1)
	}

	redisKV, err := kv.NewRedisKV(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		slog.Error("failed to connect to key-value store", "error", err)
		os.Exit(1)
	}

	hasher := service.BcryptHasher{}
	tokenService := service.NewTokenService(cfg)
	authService := service.NewAuthService(mongo, tokenService, hasher)
	userService := service.NewUserService(mongo, hasher, redisKV)

	health := controllers.NewHealthController(mongo, redisKV)
	r.GET("/health", health.Health)

	auth := controllers.NewAuthController(authService, tokenService, mongo)
	user := controllers.NewUserController(authService, userService)

	users := r.Group("/api/v1/users")
	users.POST("/register", user.Register)
	users.POST("/login", user.Login)
	users.GET("/:username", user.GetByUsername)

	session := users.Group("", auth.RequireAuth)
	session.POST("/refresh-token", auth.Refresh)
	session.POST("/logout", auth.Logout)
	session.GET("/me", user.Me)
	session.GET("/all", user.All)
	session.PUT("/update-password", user.UpdatePassword)
	session.PATCH("/update", user.Update)
	session.GET("/search-user", user.Search)

	slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "ssl", cfg.SSL)

	if cfg.SSL {

		//Generated using sh generate-certificate.sh
		SSLKeys := &struct {
			CERT string
			KEY  string
		}{
			CERT: "./cert/myCA.cer",
			KEY:  "./cert/myCA.key",
		}

		r.RunTLS(":"+cfg.Port, SSLKeys.CERT, SSLKeys.KEY)
	} else {
		r.Run(":" + cfg.Port)
	}
}

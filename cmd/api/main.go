package main

import (
	"context"
	"expvar"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"bookit/internal/cache"
	"bookit/internal/db"
	"bookit/internal/domain/bookings"
	"bookit/internal/domain/storage"
	"bookit/internal/mailer"
	"bookit/internal/media"
	"bookit/internal/ratelimiter"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	defaultRequests := 200
	defaultEnabled := false

	requestsPerTimeFrame := defaultRequests
	if val, exists := os.LookupEnv("RATELIMITER_REQUESTS_COUNT"); exists {
		if parsedVal, err := strconv.Atoi(val); err == nil {
			requestsPerTimeFrame = parsedVal
		} else {
			fmt.Println("Invalid RATELIMITER_REQUESTS_COUNT, defaulting to", defaultRequests)
		}
	}

	enabled := defaultEnabled
	if val, exists := os.LookupEnv("RATE_LIMITER_ENABLED"); exists {
		if parsedVal, err := strconv.ParseBool(val); err == nil {
			enabled = parsedVal
		} else {
			fmt.Println("Invalid RATE_LIMITER_ENABLED, defaulting to", defaultEnabled)
		}
	}

	return ratelimiter.Config{
		RequestsPerTimeFrame: requestsPerTimeFrame,
		TimeFrame:            5 * time.Second,
		Enabled:              enabled,
	}
}

// LoadRedisConfig retrieves the catalog cache settings. The cache is off
// unless REDIS_ENABLED is true.
func LoadRedisConfig() cache.Config {
	cfg := cache.Config{
		Addr:     getString("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       getInt("REDIS_DB", 0),
		Enabled:  getBool("REDIS_ENABLED", false),
		TTL:      cache.DefaultTTL,
	}
	if val, exists := os.LookupEnv("REDIS_TTL"); exists {
		if ttl, err := time.ParseDuration(val); err == nil {
			cfg.TTL = ttl
		} else {
			fmt.Println("Invalid REDIS_TTL, defaulting to", cache.DefaultTTL)
		}
	}
	return cfg
}

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel)

	return zap.New(core).Sugar(), nil
}

var version = "1.0.0"

//	@title			BookIt API
//	@description	API for BookIt, booking for travel experiences.

//	@contact.name	API Support
//	@contact.email	support@bookit.test

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@BasePath	/api

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, reading configuration from the environment")
	}

	cfg := config{
		addr:        getString("ADDR", ":8080"),
		env:         getString("ENV", "development"),
		frontendURL: os.Getenv("FRONTEND_URL"),
		apiURL:      getString("EXTERNAL_URL", "localhost:8080"),
		db: dbConfig{
			addr:         os.Getenv("DB_ADDR"),
			maxOpenConns: getInt("DB_MAX_OPEN_CONNS", 30),
			maxIdleTime:  getString("DB_MAX_IDLE_TIME", "15m"),
			seed:         getBool("DB_SEED", false),
		},
		mail: mailConfig{
			fromEmail: os.Getenv("FROM_EMAIL"),
			mailtrap: mailTrapConfig{
				apiKey: os.Getenv("MAILTRAP_API_KEY"),
			},
		},
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
		},
		rateLimiter: LoadRateLimiterConfig(),
		redis:       LoadRedisConfig(),
		refSalt:     getString("BOOKING_REF_SALT", "bookit"),
	}

	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	// Database
	pool, err := db.New(cfg.db.addr, int32(cfg.db.maxOpenConns), cfg.db.maxIdleTime)
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()
	logger.Info("database connection pool established")

	ctx := context.Background()
	if err := db.Migrate(ctx, pool); err != nil {
		logger.Fatal(err)
	}

	refs, err := bookings.NewReferenceGenerator(cfg.refSalt)
	if err != nil {
		logger.Fatal(err)
	}
	store := storage.NewContainer(pool, refs)

	if cfg.db.seed {
		if err := db.Seed(ctx, pool, store.Promos); err != nil {
			logger.Fatal(err)
		}
		logger.Info("sample catalog seeded")
	}

	// Catalog cache
	if cfg.redis.Enabled {
		rdb, err := cache.New(ctx, cfg.redis)
		if err != nil {
			logger.Fatal(err)
		}
		defer rdb.Close()
		store.Experiences = cache.NewExperiences(store.Experiences, rdb, cfg.redis.TTL, logger)
		logger.Infow("catalog cache enabled", "addr", cfg.redis.Addr, "ttl", cfg.redis.TTL)
	}

	// Cloudinary
	var cld *cloudinary.Cloudinary
	if cloudinaryURL := os.Getenv("CLOUDINARY_URL"); cloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(cloudinaryURL)
		if err != nil {
			logger.Fatal(err)
		}
	}

	// Confirmation mail
	var mail mailer.Client
	if cfg.mail.mailtrap.apiKey != "" {
		mailtrap, err := mailer.NewMailTrapClient(cfg.mail.mailtrap.apiKey, cfg.mail.fromEmail)
		if err != nil {
			logger.Fatal(err)
		}
		mail = mailtrap
	} else {
		logger.Warn("MAILTRAP_API_KEY not set, confirmation emails are disabled")
	}

	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)

	app := &application{
		config:      cfg,
		logger:      logger,
		store:       store,
		images:      media.NewImages(cld),
		mailer:      mail,
		rateLimiter: rateLimiter,
		now:         time.Now,
	}

	//Metrics collected http://localhost:8080/api/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		stat := pool.Stat()
		return map[string]int32{
			"totalConns":    stat.TotalConns(),
			"idleConns":     stat.IdleConns(),
			"acquiredConns": stat.AcquiredConns(),
		}
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	jobs, stopJobs := context.WithCancel(ctx)
	defer stopJobs()
	app.markCompletedBookingsEvery30Mins(jobs)

	mux := app.mount()

	logger.Fatal(app.run(mux))
}

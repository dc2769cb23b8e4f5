package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/shandysiswandi/goverify/internal/pkg/clock"
	"github.com/shandysiswandi/goverify/internal/pkg/config"
	"github.com/shandysiswandi/goverify/internal/pkg/goroutine"
	"github.com/shandysiswandi/goverify/internal/pkg/hash"
	"github.com/shandysiswandi/goverify/internal/pkg/idempotency"
	"github.com/shandysiswandi/goverify/internal/pkg/instrument"
	"github.com/shandysiswandi/goverify/internal/pkg/jwt"
	"github.com/shandysiswandi/goverify/internal/pkg/messaging"
	"github.com/shandysiswandi/goverify/internal/pkg/otp"
	"github.com/shandysiswandi/goverify/internal/pkg/router"
	"github.com/shandysiswandi/goverify/internal/pkg/storage"
	"github.com/shandysiswandi/goverify/internal/pkg/uid"
	"github.com/shandysiswandi/goverify/internal/pkg/validator"
	"google.golang.org/api/option"
)

func (a *App) initConfig() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "/config/config.yaml"
		if os.Getenv("LOCAL") == "true" {
			path = "./config/config.yaml"
		}
	}

	cfg, err := config.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("app.tz"))

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(context.Background(), &instrument.Config{
		Enabled:          true,
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
	})
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.goroutine = goroutine.NewManager(a.config.GetInt("app.server.max_goroutine"))
	a.hmac = hash.NewHMACSHA256(a.config.GetString("hash.hmac.secret"))
	a.codeGen = otp.NewNumeric(
		a.config.GetInt64("modules.verification.otp_code_min"),
		a.config.GetInt64("modules.verification.otp_code_max"),
	)

	validator, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = validator

	snow, err := uid.NewSnowflake()
	if err != nil {
		slog.Error("failed to init uid number snowflake", "error", err)
		os.Exit(1)
	}
	a.uid = snow
}

func (a *App) initJWT() {
	defaultJWT, err := jwt.NewHS512(jwt.Config{
		Secret:    []byte(a.config.GetString("jwt.secret")),
		Issuer:    a.config.GetString("jwt.issuer"),
		Audiences: a.config.GetArray("jwt.audiences"),
		TTL:       a.config.GetMinute("jwt.ttl_minutes"),
		Clock:     a.clock,
		UUID:      a.uuid,
	})
	if err != nil {
		slog.Error("failed to init jwt token", "error", err)
		os.Exit(1)
	}
	a.jwt = defaultJWT
}

func (a *App) initDatabase() {
	config, err := pgxpool.ParseConfig(a.config.GetString("database.url"))
	if err != nil {
		slog.Error("failed to parse DB connection string.", "error", err)
		os.Exit(1)
	}

	config.MaxConns = a.config.GetInt32("database.pool.max_conns")
	config.MinConns = a.config.GetInt32("database.pool.min_conns")
	config.MaxConnLifetime = a.config.GetSecond("database.pool.max_conn_lifetime_seconds")
	config.MaxConnIdleTime = a.config.GetSecond("database.pool.max_conn_idle_seconds")
	config.HealthCheckPeriod = a.config.GetSecond("database.pool.health_check_period_seconds")

	pool, err := pgxpool.NewWithConfig(a.ctx, config)
	if err != nil {
		slog.Error("failed to create DB connection pool", "error", err)
		os.Exit(1)
	}

	pingCtx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		slog.Error("failed to ping DB", "error", err)
		os.Exit(1)
	}

	a.dbConn = pool
}

func (a *App) initCache() {
	opt, err := redis.ParseURL(a.config.GetString("redis.url"))
	if err != nil {
		slog.Error("failed to parse redis url", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Error("failed to init redis", "error", err)
		os.Exit(1)
	}

	a.cacheConn = rdb
	a.idemp = idempotency.New(a.cacheConn)
}

func (a *App) initStorage() {
	driver := strings.TrimSpace(a.config.GetString("storage.driver"))

	stg, err := storage.NewFromDriver(a.ctx, driver, storage.FactoryOptions{
		S3: storage.S3Options{
			Region:       strings.TrimSpace(a.config.GetString("storage.s3.region")),
			Endpoint:     strings.TrimSpace(a.config.GetString("storage.s3.endpoint")),
			AccessKey:    strings.TrimSpace(a.config.GetString("storage.s3.access_key")),
			SecretKey:    strings.TrimSpace(a.config.GetString("storage.s3.secret_key")),
			SessionToken: strings.TrimSpace(a.config.GetString("storage.s3.session_token")),
			UsePathStyle: a.config.GetBool("storage.s3.use_path_style"),
		},
		GCS: storage.GCSOptions{
			CredentialsJSON: a.config.GetBinary("storage.gcs.credentials_json"),
		},
		MinIO: storage.MinIOOptions{
			Region:       strings.TrimSpace(a.config.GetString("storage.minio.region")),
			Endpoint:     strings.TrimSpace(a.config.GetString("storage.minio.endpoint")),
			AccessKey:    strings.TrimSpace(a.config.GetString("storage.minio.access_key")),
			SecretKey:    strings.TrimSpace(a.config.GetString("storage.minio.secret_key")),
			SessionToken: strings.TrimSpace(a.config.GetString("storage.minio.session_token")),
			UseSSL:       a.config.GetBool("storage.minio.use_ssl"),
		},
	})
	if err != nil {
		slog.Error("failed to init storage", "error", err)
		os.Exit(1)
	}

	a.storage = stg
}

func (a *App) initMessaging() {
	driver := a.config.GetString("messaging.driver")

	var pubsubOptions []option.ClientOption
	if v := a.config.GetBinary("messaging.pubsub.credentials_json"); len(v) > 0 {
		pubsubOptions = append(pubsubOptions, option.WithCredentialsJSON(v))
	}
	if v := strings.TrimSpace(a.config.GetString("messaging.pubsub.endpoint")); v != "" {
		pubsubOptions = append(pubsubOptions, option.WithEndpoint(v))
	}

	client, err := messaging.NewFromDriver(a.ctx, driver, messaging.FactoryOptions{
		NSQ: messaging.NSQConfig{
			ProducerAddr:         a.config.GetString("messaging.nsq.producer_addr"),
			ConsumerNSQDAddrs:    a.config.GetArray("messaging.nsq.consumer_nsqd_addrs"),
			ConsumerLookupdAddrs: a.config.GetArray("messaging.nsq.consumer_lookupd_addrs"),
		},
		NATS: messaging.NATSConfig{
			URL: a.config.GetString("messaging.nats.url"),
			Options: []nats.Option{
				nats.Name(a.config.GetString("messaging.nats.name")),
				nats.MaxReconnects(a.config.GetInt("messaging.nats.max_reconnects")),
				nats.Timeout(a.config.GetSecond("messaging.nats.timeout_seconds")),
				nats.ReconnectWait(a.config.GetSecond("messaging.nats.reconnect_wait_seconds")),
				nats.PingInterval(a.config.GetSecond("messaging.nats.ping_interval_seconds")),
				nats.MaxPingsOutstanding(a.config.GetInt("messaging.nats.max_pings_outstanding")),
				nats.RetryOnFailedConnect(a.config.GetBool("messaging.nats.retry_on_failed_connect")),
			},
		},
		Kafka: messaging.KafkaConfig{
			Brokers: a.config.GetArray("messaging.kafka.brokers"),
		},
		PubSub: messaging.PubSubConfig{
			ProjectID:     a.config.GetString("messaging.pubsub.project_id"),
			ClientOptions: pubsubOptions,
		},
	})
	if err != nil {
		slog.Error("failed to init messaging", "error", err, "driver", driver)
		os.Exit(1)
	}

	a.messaging = client
}

func (a *App) initHTTPServer() {
	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
	})

	a.router.GET("/health", func(_ *router.Request) (any, error) {
		return healthResponse{Status: "ok"}, nil
	})

	routerWithCORS := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("app.server.cors"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(a.router)

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.http.address"),
		Handler:           routerWithCORS,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}
}

type healthResponse struct {
	Status string `json:"status" example:"ok"`
}

func (a *App) initClosers() {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				return a.ins.Shutdown(ctx)
			},
		},
		{
			name: "Messaging",
			fn: func(context.Context) error {
				return a.messaging.Close()
			},
		},
		{
			name: "Redis",
			fn: func(context.Context) error {
				return a.cacheConn.Close()
			},
		},
		{
			name: "Database",
			fn: func(context.Context) error {
				a.dbConn.Close()

				return nil
			},
		},
		{
			name: "Storage",
			fn: func(context.Context) error {
				return a.storage.Close()
			},
		},
		{
			name: "Config",
			fn: func(context.Context) error {
				return a.config.Close()
			},
		},
	}
}

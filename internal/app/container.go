// Package app wires the application's dependencies.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	availabilityDomain "github.com/tutorlane/tutorlane/internal/availability/domain"
	availabilityInfra "github.com/tutorlane/tutorlane/internal/availability/infrastructure"
	contractsDomain "github.com/tutorlane/tutorlane/internal/contracts/domain"
	contractsPersistence "github.com/tutorlane/tutorlane/internal/contracts/infrastructure/persistence"
	identityDomain "github.com/tutorlane/tutorlane/internal/identity/domain"
	identityPersistence "github.com/tutorlane/tutorlane/internal/identity/infrastructure/persistence"
	rescheduleCommands "github.com/tutorlane/tutorlane/internal/reschedule/application/commands"
	rescheduleQueries "github.com/tutorlane/tutorlane/internal/reschedule/application/queries"
	rescheduleDomain "github.com/tutorlane/tutorlane/internal/reschedule/domain"
	reschedulePersistence "github.com/tutorlane/tutorlane/internal/reschedule/infrastructure/persistence"
	sessionCommands "github.com/tutorlane/tutorlane/internal/sessions/application/commands"
	sessionQueries "github.com/tutorlane/tutorlane/internal/sessions/application/queries"
	sessionsDomain "github.com/tutorlane/tutorlane/internal/sessions/domain"
	sessionsPersistence "github.com/tutorlane/tutorlane/internal/sessions/infrastructure/persistence"
	sharedApplication "github.com/tutorlane/tutorlane/internal/shared/application"
	"github.com/tutorlane/tutorlane/internal/shared/infrastructure/eventbus"
	"github.com/tutorlane/tutorlane/internal/shared/infrastructure/locking"
	"github.com/tutorlane/tutorlane/internal/shared/infrastructure/outbox"
	sharedPersistence "github.com/tutorlane/tutorlane/internal/shared/infrastructure/persistence"
	"github.com/tutorlane/tutorlane/pkg/config"
	"github.com/tutorlane/tutorlane/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database
	DB *pgxpool.Pool

	// Redis
	RedisClient *redis.Client

	// Repositories
	UserRepo     identityDomain.UserRepository
	ContractRepo contractsDomain.ContractRepository
	SessionRepo  sessionsDomain.SessionRepository
	RequestRepo  rescheduleDomain.RequestRepository
	OutboxRepo   outbox.Repository

	// Infrastructure
	EventPublisher eventbus.Publisher
	ContractMutex  locking.Mutex
	Oracle         availabilityDomain.Oracle
	UnitOfWork     sharedApplication.UnitOfWork

	// Reschedule command handlers
	CreateRequestHandler  *rescheduleCommands.CreateRequestHandler
	ApproveRequestHandler *rescheduleCommands.ApproveRequestHandler
	RejectRequestHandler  *rescheduleCommands.RejectRequestHandler

	// Reschedule query handlers
	GetRequestHandler           *rescheduleQueries.GetRequestHandler
	ListContractRequestsHandler *rescheduleQueries.ListContractRequestsHandler

	// Session command handlers
	UpdateSessionStatusHandler *sessionCommands.UpdateSessionStatusHandler
	UpdateSessionTutorHandler  *sessionCommands.UpdateSessionTutorHandler

	// Session query handlers
	GetSessionHandler           *sessionQueries.GetSessionHandler
	ListContractSessionsHandler *sessionQueries.ListContractSessionsHandler

	// Outbox Processor
	OutboxProcessor *outbox.Processor

	// Health
	Health *observability.HealthRegistry
}

// NewContainer creates and wires all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
		Health: observability.NewHealthRegistry(),
	}

	// Connect to PostgreSQL
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	c.DB = pool
	logger.Info("connected to database")
	c.Health.Register("database", observability.DatabaseHealthChecker(pool.Ping))

	// Connect to Redis. In development the per-contract mutex degrades to a
	// noop; Postgres row locks alone still keep approvals correct.
	c.ContractMutex = locking.NewNoopMutex()
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			if !cfg.IsDevelopment() {
				pool.Close()
				return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
			}
			logger.Warn("invalid Redis URL, contract locking degrades to row locks only", "error", err)
		} else {
			redisClient := redis.NewClient(opt)
			if err := redisClient.Ping(ctx).Err(); err != nil {
				if !cfg.IsDevelopment() {
					pool.Close()
					return nil, fmt.Errorf("failed to connect to Redis: %w", err)
				}
				logger.Warn("Redis not available, contract locking degrades to row locks only", "error", err)
			} else {
				c.RedisClient = redisClient
				c.ContractMutex = locking.NewRedisMutex(redisClient, logger)
				c.Health.Register("redis", observability.RedisHealthChecker(func(ctx context.Context) error {
					return redisClient.Ping(ctx).Err()
				}))
				logger.Info("connected to Redis")
			}
		}
	}

	// Create repositories
	c.UserRepo = identityPersistence.NewPostgresUserRepository(pool)
	c.ContractRepo = contractsPersistence.NewPostgresContractRepository(pool)
	c.SessionRepo = sessionsPersistence.NewPostgresSessionRepository(pool)
	c.RequestRepo = reschedulePersistence.NewPostgresRequestRepository(pool)
	c.OutboxRepo = outbox.NewPostgresRepository(pool)
	c.UnitOfWork = sharedPersistence.NewPostgresUnitOfWork(pool)

	// Create event publisher
	publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
	if err != nil {
		// Fall back to noop publisher in development
		if cfg.IsDevelopment() {
			logger.Warn("RabbitMQ not available, using noop publisher")
			c.EventPublisher = eventbus.NewNoopPublisher(logger)
		} else {
			pool.Close()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
	} else {
		c.EventPublisher = publisher
	}

	// Create the availability oracle. The remote service wins when
	// configured; otherwise availability is derived from the local
	// sessions table.
	if cfg.AvailabilityServiceURL != "" {
		oracleConfig := availabilityInfra.DefaultRemoteOracleConfig(cfg.AvailabilityServiceURL)
		oracleConfig.RequestTimeout = cfg.AvailabilityRequestTimeout
		c.Oracle = availabilityInfra.NewRemoteOracle(oracleConfig, logger)
	} else {
		c.Oracle = availabilityInfra.NewBookingOracle(pool)
	}

	// Create reschedule command handlers
	c.CreateRequestHandler = rescheduleCommands.NewCreateRequestHandler(c.RequestRepo, c.SessionRepo, c.ContractRepo, c.OutboxRepo, c.UnitOfWork)
	c.ApproveRequestHandler = rescheduleCommands.NewApproveRequestHandler(c.RequestRepo, c.SessionRepo, c.ContractRepo, c.UserRepo, c.Oracle, c.ContractMutex, c.OutboxRepo, c.UnitOfWork)
	c.RejectRequestHandler = rescheduleCommands.NewRejectRequestHandler(c.RequestRepo, c.OutboxRepo, c.UnitOfWork)

	// Create reschedule query handlers
	c.GetRequestHandler = rescheduleQueries.NewGetRequestHandler(c.RequestRepo)
	c.ListContractRequestsHandler = rescheduleQueries.NewListContractRequestsHandler(c.RequestRepo)

	// Create session command handlers
	c.UpdateSessionStatusHandler = sessionCommands.NewUpdateSessionStatusHandler(c.SessionRepo, c.OutboxRepo, c.UnitOfWork)
	c.UpdateSessionTutorHandler = sessionCommands.NewUpdateSessionTutorHandler(c.SessionRepo, c.ContractRepo, c.Oracle, c.OutboxRepo, c.UnitOfWork)

	// Create session query handlers
	c.GetSessionHandler = sessionQueries.NewGetSessionHandler(c.SessionRepo)
	c.ListContractSessionsHandler = sessionQueries.NewListContractSessionsHandler(c.SessionRepo)

	// Create outbox processor
	processorConfig := outbox.ProcessorConfig{
		PollInterval: cfg.OutboxPollInterval,
		BatchSize:    cfg.OutboxBatchSize,
		MaxRetries:   cfg.OutboxMaxRetries,
	}
	c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.EventPublisher, processorConfig, logger)

	return c, nil
}

// Close releases all resources held by the container.
func (c *Container) Close() {
	if c.OutboxProcessor != nil && c.OutboxProcessor.IsRunning() {
		c.OutboxProcessor.Stop()
	}
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("failed to close event publisher", "error", err)
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("failed to close redis client", "error", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}

package container

import (
	"context"
	"fmt"
	"time"

	"library-backend/internal/config"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/pkg/cache"
	"library-backend/pkg/jwt"
	"library-backend/pkg/logger"

	catalogHandler "library-backend/internal/domains/catalog/handler"
	catalogRepo "library-backend/internal/domains/catalog/repository"
	catalogService "library-backend/internal/domains/catalog/service"
	circulationHandler "library-backend/internal/domains/circulation/handler"
	circulationService "library-backend/internal/domains/circulation/service"
	fineHandler "library-backend/internal/domains/fine/handler"
	fineRepo "library-backend/internal/domains/fine/repository"
	fineService "library-backend/internal/domains/fine/service"
	lendingHandler "library-backend/internal/domains/lending/handler"
	lendingRepo "library-backend/internal/domains/lending/repository"
	lendingService "library-backend/internal/domains/lending/service"
	memberHandler "library-backend/internal/domains/member/handler"
	memberRepo "library-backend/internal/domains/member/repository"
	memberService "library-backend/internal/domains/member/service"
	reservationHandler "library-backend/internal/domains/reservation/handler"
	reservationRepo "library-backend/internal/domains/reservation/repository"
	reservationService "library-backend/internal/domains/reservation/service"
)

// Container is the root of the dependency graph. Initialization order
// matters: config, then infrastructure, then repositories, services,
// handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	CatalogRepo     catalogRepo.RepositoryInterface
	MemberRepo      memberRepo.RepositoryInterface
	LendingRepo     lendingRepo.RepositoryInterface
	ReservationRepo reservationRepo.RepositoryInterface
	FineRepo        fineRepo.RepositoryInterface

	CatalogService     catalogService.ServiceInterface
	MemberService      memberService.ServiceInterface
	LendingService     lendingService.ServiceInterface
	ReservationService reservationService.ServiceInterface
	FineService        fineService.ServiceInterface
	CirculationService circulationService.ServiceInterface

	CatalogHandler     *catalogHandler.Handler
	MemberHandler      *memberHandler.Handler
	LendingHandler     *lendingHandler.Handler
	ReservationHandler *reservationHandler.Handler
	FineHandler        *fineHandler.Handler
	CirculationHandler *circulationHandler.Handler
}

// NewContainer builds and initializes the whole dependency graph
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("Container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})
	return c, nil
}

func (c *Container) initInfrastructure() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			// Cache misses are tolerable; the repositories fall back to
			// the database.
			logger.Warn("Redis connection failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(c.Config.JWT.Secret, c.Config.JWT.AccessTokenExpiry)
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.CatalogRepo = catalogRepo.NewRepository(pool, c.Cache)
	c.MemberRepo = memberRepo.NewRepository(pool)
	c.LendingRepo = lendingRepo.NewRepository(pool)
	c.ReservationRepo = reservationRepo.NewRepository(pool)
	c.FineRepo = fineRepo.NewRepository(pool)
}

func (c *Container) initServices() {
	circ := c.Config.Circulation

	c.CatalogService = catalogService.NewService(c.CatalogRepo)
	c.MemberService = memberService.NewService(c.MemberRepo, c.JWTManager, circ.BorrowLimit)
	c.FineService = fineService.NewService(c.FineRepo, circ.DailyFineRate)
	c.ReservationService = reservationService.NewService(c.ReservationRepo, c.CatalogRepo, c.MemberService)
	c.LendingService = lendingService.NewService(
		c.LendingRepo,
		c.CatalogRepo,
		c.MemberService,
		c.ReservationService,
		c.FineService,
		circ.LoanPeriodDays,
		circ.RenewalPeriodDays,
	)
	c.CirculationService = circulationService.NewService(
		c.CatalogService,
		c.LendingService,
		c.ReservationService,
		c.FineService,
	)
}

func (c *Container) initHandlers() {
	c.CatalogHandler = catalogHandler.NewHandler(c.CatalogService)
	c.MemberHandler = memberHandler.NewHandler(c.MemberService)
	c.LendingHandler = lendingHandler.NewHandler(c.LendingService)
	c.ReservationHandler = reservationHandler.NewHandler(c.ReservationService)
	c.FineHandler = fineHandler.NewHandler(c.FineService)
	c.CirculationHandler = circulationHandler.NewHandler(c.CirculationService)
}

// Close releases infrastructure resources
func (c *Container) Close() {
	if c.DB != nil {
		c.DB.Close()
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Error("Failed to close redis connection", err)
		}
	}
}

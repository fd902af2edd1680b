package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"personal-library/internal/config"
	"personal-library/internal/handlers"
	"personal-library/internal/middleware"
	"personal-library/internal/models"
	"personal-library/internal/repository"
	"personal-library/internal/seed"
	"personal-library/internal/service"
	"personal-library/pkg/cache"
	"personal-library/pkg/logger"
	"personal-library/pkg/navigation"
	"personal-library/pkg/utils"
	"personal-library/pkg/validator"
	"personal-library/web"
)

type Options struct {
	// SkipMigrations leaves the schema untouched on start.
	SkipMigrations bool
}

type Application struct {
	cfg     *config.Config
	options Options

	db          *gorm.DB
	memory      *repository.MemoryStore
	cache       *cache.Cache
	rateLimiter *middleware.RateLimitManager

	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	templateHandler *handlers.TemplateHandler
	router          *gin.Engine
	server          *http.Server
}

type repositoryContainer struct {
	User   repository.UserRepository
	Book   repository.BookRepository
	Review repository.ReviewRepository
}

type serviceContainer struct {
	User   *service.UserService
	Book   *service.BookService
	Review *service.ReviewService
}

type handlerContainer struct {
	User       *handlers.UserHandler
	Book       *handlers.BookHandler
	Review     *handlers.ReviewHandler
	Navigation *handlers.NavigationHandler
}

func New(cfg *config.Config, opts Options) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	validator.Init()

	app := &Application{
		cfg:     cfg,
		options: opts,
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if !opts.SkipMigrations {
		if err := app.runMigrations(); err != nil {
			return nil, err
		}
	}

	app.initCache()
	app.initRepositories()
	app.initServices()

	if cfg.SeedOnStart {
		if _, err := app.Seed(); err != nil {
			logger.Error(err, "Failed to seed sample library", nil)
		}
	}

	if err := app.initHandlers(); err != nil {
		return nil, err
	}

	app.initRouter()

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
		"db_driver":   a.cfg.DBDriver,
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	if a.rateLimiter != nil {
		a.rateLimiter.Shutdown()
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Error(err, "Failed to close database connection", nil)
			}
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

// Routes lists the registered routes as "METHOD path", sorted.
func (a *Application) Routes() []string {
	routes := a.router.Routes()
	result := make([]string, 0, len(routes))
	for _, route := range routes {
		result = append(result, route.Method+" "+route.Path)
	}
	sort.Strings(result)
	return result
}

// Seed loads the sample library into an empty database.
func (a *Application) Seed() (seed.Result, error) {
	return seed.EnsureSampleLibrary(a.services.User, a.services.Book, a.services.Review)
}

// OpenDatabase connects to the database selected by cfg.DBDriver. It returns
// nil for the in-memory driver.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverMemory:
		return nil, nil
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseURL)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	logger.Info("Connecting to database", map[string]interface{}{"driver": cfg.DBDriver})

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.NewGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.DBDriver == config.DriverSQLite {
		// SQLite serialises writers; one connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return db, nil
}

// Migrate creates or updates the library schema.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	logger.Info("Running database migrations", nil)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.Review{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database migration completed", nil)
	return nil
}

func (a *Application) initDatabase() error {
	db, err := OpenDatabase(a.cfg)
	if err != nil {
		return err
	}
	if db == nil {
		logger.Warn("Using in-memory storage, data is lost on exit", nil)
		a.memory = repository.NewMemoryStore()
		return nil
	}
	a.db = db
	return nil
}

func (a *Application) runMigrations() error {
	if a.db == nil {
		return nil
	}
	return Migrate(a.db)
}

func (a *Application) initCache() {
	if !a.cfg.EnableCache {
		a.cache, _ = cache.NewCache("", false)
		return
	}

	c, err := cache.NewCache(a.cfg.RedisURL, true)
	if err != nil {
		logger.Error(err, "Failed to connect to Redis, continuing without cache", nil)
		a.cache, _ = cache.NewCache("", false)
		return
	}

	logger.Info("Redis cache enabled", map[string]interface{}{"addr": a.cfg.RedisURL})
	a.cache = c
}

func (a *Application) initRepositories() {
	if a.memory != nil {
		a.repositories = repositoryContainer{
			User:   a.memory.Users(),
			Book:   a.memory.Books(),
			Review: a.memory.Reviews(),
		}
		return
	}

	a.repositories = repositoryContainer{
		User:   repository.NewUserRepository(a.db),
		Book:   repository.NewBookRepository(a.db),
		Review: repository.NewReviewRepository(a.db),
	}
}

func (a *Application) initServices() {
	var booksCache service.BooksCache
	if a.cache.Enabled() {
		booksCache = a.cache
	}

	a.services = serviceContainer{
		User:   service.NewUserService(a.repositories.User, booksCache),
		Book:   service.NewBookService(a.repositories.Book, booksCache),
		Review: service.NewReviewService(a.repositories.Review, a.repositories.Book, a.repositories.User, booksCache),
	}
}

func (a *Application) initHandlers() error {
	a.handlers = handlerContainer{
		User:       handlers.NewUserHandler(a.services.User),
		Book:       handlers.NewBookHandler(a.services.Book),
		Review:     handlers.NewReviewHandler(a.services.Review),
		Navigation: handlers.NewNavigationHandler(navigation.Default),
	}

	templates, err := utils.LoadTemplates(web.Templates(), utils.GetTemplateFuncs(web.AssetVersion))
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	logger.Info("Templates loaded successfully", nil)

	templateHandler, err := handlers.NewTemplateHandler(
		a.services.Book,
		a.services.User,
		a.services.Review,
		a.cfg,
		templates,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize template handler: %w", err)
	}

	a.templateHandler = templateHandler
	return nil
}

func (a *Application) initRouter() {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	a.rateLimiter = middleware.NewRateLimitManager(
		context.Background(),
		a.cfg.RateLimitRequests,
		a.cfg.RateLimitWindow,
		a.cfg.RateLimitBurst,
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinLogger())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.NavigationMiddleware())
	router.Use(middleware.CSRFMiddleware())
	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(middleware.RateLimitMiddleware(a.rateLimiter))

	if len(a.cfg.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     a.cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader, middleware.NavigationRequestHeader},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader, handlers.PageTitleHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	router.StaticFS("/static", http.FS(web.Static()))
	router.GET("/robots.txt", middleware.RobotsTxt("/api/"))

	router.GET("/", a.templateHandler.RenderBooks)
	router.GET("/books/new", a.templateHandler.RenderNewBook)
	router.POST("/books/new", a.templateHandler.CreateBook)
	router.GET("/books/:id", a.templateHandler.RenderBook)
	router.POST("/books/:id/delete", a.templateHandler.DeleteBook)
	router.POST("/books/:id/reviews", a.templateHandler.CreateReview)
	router.GET("/users", a.templateHandler.RenderUsers)
	router.POST("/users", a.templateHandler.CreateUser)
	router.POST("/users/:id/delete", a.templateHandler.DeleteUser)
	router.GET("/reviews", a.templateHandler.RenderReviews)
	router.POST("/reviews/:id/delete", a.templateHandler.DeleteReview)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.NoIndexMiddleware())
	{
		v1.GET("/", handlers.Welcome)
		v1.GET("/navigation", a.handlers.Navigation.Items)

		v1.GET("/users", a.handlers.User.GetAll)
		v1.POST("/users", a.handlers.User.Create)
		v1.DELETE("/users/:id", a.handlers.User.Delete)

		v1.GET("/books", a.handlers.Book.GetAll)
		v1.GET("/books/:id", a.handlers.Book.GetByID)
		v1.POST("/books", a.handlers.Book.Create)
		v1.PUT("/books/:id", a.handlers.Book.Update)
		v1.DELETE("/books/:id", a.handlers.Book.Delete)
		v1.GET("/books/:id/reviews", a.handlers.Review.GetByBook)

		v1.GET("/reviews", a.handlers.Review.GetAll)
		v1.POST("/reviews", a.handlers.Review.Create)
		v1.PUT("/reviews/:id", a.handlers.Review.Update)
		v1.DELETE("/reviews/:id", a.handlers.Review.Delete)
	}

	router.NoRoute(a.templateHandler.NotFound)

	a.router = router
	a.checkNavigationRoutes()
}

// checkNavigationRoutes warns about navigation targets no page serves.
func (a *Application) checkNavigationRoutes() {
	var registered []string
	for _, route := range a.router.Routes() {
		if route.Method == http.MethodGet {
			registered = append(registered, route.Path)
		}
	}

	if missing := navigation.MissingRoutes(navigation.Default.Items(), registered); len(missing) > 0 {
		logger.Warn("Navigation links point to unregistered routes", map[string]interface{}{
			"paths": strings.Join(missing, ", "),
		})
	}
}

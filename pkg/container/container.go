package container

import (
	"context"
	"fmt"
	"time"

	"finpress-backend/internal/config"
	infraCache "finpress-backend/internal/infrastructure/cache"
	"finpress-backend/internal/infrastructure/database"
	"finpress-backend/internal/infrastructure/storage"
	"finpress-backend/pkg/cache"
	"finpress-backend/pkg/jwt"
	"finpress-backend/pkg/logger"

	"finpress-backend/internal/domains/analysis"
	analysisHandler "finpress-backend/internal/domains/analysis/handler"
	analysisRepo "finpress-backend/internal/domains/analysis/repository"
	analysisService "finpress-backend/internal/domains/analysis/service"
	"finpress-backend/internal/domains/category"
	categoryHandler "finpress-backend/internal/domains/category/handler"
	categoryRepo "finpress-backend/internal/domains/category/repository"
	categoryService "finpress-backend/internal/domains/category/service"
	"finpress-backend/internal/domains/news"
	newsHandler "finpress-backend/internal/domains/news/handler"
	newsRepo "finpress-backend/internal/domains/news/repository"
	newsService "finpress-backend/internal/domains/news/service"
	"finpress-backend/internal/domains/tag"
	tagHandler "finpress-backend/internal/domains/tag/handler"
	tagRepo "finpress-backend/internal/domains/tag/repository"
	tagService "finpress-backend/internal/domains/tag/service"
	"finpress-backend/internal/domains/upload"
	uploadHandler "finpress-backend/internal/domains/upload/handler"
	"finpress-backend/internal/domains/user"
	userHandler "finpress-backend/internal/domains/user/handler"
	userRepo "finpress-backend/internal/domains/user/repository"
	userService "finpress-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config, then
// infrastructure, then repositories, services and handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    *storage.MinIOStorage
	JWTManager *jwt.Manager

	NewsRepo     news.Repository
	AnalysisRepo analysis.Repository
	CategoryRepo category.Repository
	TagRepo      tag.Repository
	UserRepo     user.Repository

	NewsService     news.Service
	AnalysisService analysis.Service
	CategoryService category.Service
	TagService      tag.Service
	UserService     user.Service
	UploadService   upload.Service

	NewsHandler     *newsHandler.NewsHandler
	AnalysisHandler *analysisHandler.AnalysisHandler
	CategoryHandler *categoryHandler.CategoryHandler
	TagHandler      *tagHandler.TagHandler
	AuthHandler     *userHandler.AuthHandler
	UploadHandler   *uploadHandler.UploadHandler
}

// NewContainer builds the full dependency graph or fails fast.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(cfg.Redis)
	if err := redisCache.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisCache

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to minio: %w", err)
	}
	c.Storage = minioStorage

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	c.NewsRepo = newsRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.AnalysisRepo = analysisRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(db.Pool)
	c.TagRepo = tagRepo.NewPostgresRepository(db.Pool)
	c.UserRepo = userRepo.NewPostgresRepository(db.Pool)

	c.NewsService = newsService.NewNewsService(c.NewsRepo, c.CategoryRepo, c.TagRepo)
	c.AnalysisService = analysisService.NewAnalysisService(c.AnalysisRepo, c.CategoryRepo, c.TagRepo)
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo)
	c.TagService = tagService.NewTagService(c.TagRepo)
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.UploadService = upload.NewUploadService(c.Storage, storage.NewImageProcessor())

	c.NewsHandler = newsHandler.NewNewsHandler(c.NewsService)
	c.AnalysisHandler = analysisHandler.NewAnalysisHandler(c.AnalysisService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.TagHandler = tagHandler.NewTagHandler(c.TagService)
	c.AuthHandler = userHandler.NewAuthHandler(c.UserService)
	c.UploadHandler = uploadHandler.NewUploadHandler(c.UploadService)

	logger.Info("container initialized", map[string]interface{}{"environment": cfg.App.Environment})
	return c, nil
}

// Cleanup releases infrastructure connections. Safe to call once on
// shutdown.
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if closer, ok := c.Cache.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	logger.Info("container cleaned up", nil)
}

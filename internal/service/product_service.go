package service

import (
	"context"
	"fmt"

	"catalog/internal/cache"
	"catalog/internal/model"
	"catalog/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	cache       cache.ProductCache
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewProductService creates a new product service. A nil cache disables caching.
func NewProductService(productRepo repository.ProductRepository, productCache cache.ProductCache, logger zerolog.Logger) ProductService {
	if productCache == nil {
		productCache = cache.NewNoop()
	}
	return &productService{
		productRepo: productRepo,
		cache:       productCache,
		validate:    newValidator(),
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves products, serving from the cache when possible. Cache
// failures are logged and never fail the call.
func (s *productService) List(ctx context.Context, category string) ([]model.Product, error) {
	cached, ok, err := s.cache.GetList(ctx, category)
	if err != nil {
		s.logger.Warn().Err(err).Str("category", category).Msg("product cache read failed, using database")
	} else if ok {
		return cached, nil
	}

	products, err := s.productRepo.List(ctx, category)
	if err != nil {
		s.logger.Error().Err(err).Str("category", category).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if err := s.cache.SetList(ctx, category, products); err != nil {
		s.logger.Warn().Err(err).Str("category", category).Msg("failed to populate product cache")
	}

	s.logger.Debug().
		Int("count", len(products)).
		Str("category", category).
		Msg("retrieved products")

	return products, nil
}

// Create validates and stores a new product.
func (s *productService) Create(ctx context.Context, req *model.CreateProductRequest) (int64, error) {
	if err := validateRequest(s.validate, req); err != nil {
		s.logger.Warn().Err(err).Msg("rejected product payload")
		return 0, err
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
	}

	id, err := s.productRepo.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("failed to create product")
		return 0, fmt.Errorf("failed to create product: %w", err)
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Int64("product_id", id).Msg("failed to invalidate product cache")
	}

	s.logger.Info().
		Int64("product_id", id).
		Str("category", product.Category).
		Msg("product created")

	return id, nil
}

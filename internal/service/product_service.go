package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/insurance-product-service/internal/auth"
	"github.com/spec-kit/insurance-product-service/internal/domain"
	"github.com/spec-kit/insurance-product-service/internal/events"
	"github.com/spec-kit/insurance-product-service/internal/repository"
	apperrors "github.com/spec-kit/insurance-product-service/pkg/util"
)

const uniqueViolationCode = "23505"

// ProductCache is the read-cache surface the service depends on.
type ProductCache interface {
	Get(ctx context.Context, code, location string) (*domain.Product, bool)
	Set(ctx context.Context, product *domain.Product)
	InvalidateCode(ctx context.Context, code string)
}

// ProductCreateInput captures fields for a new product.
type ProductCreateInput struct {
	ProductCode string
	Location    string
	Price       float64
}

// ProductUpdateInput captures updatable fields.
type ProductUpdateInput struct {
	Location string
	Price    float64
}

// ProductService implements product lookup and admin mutations.
type ProductService struct {
	products   repository.ProductRepository
	cache      ProductCache
	dispatcher events.Dispatcher
}

// NewProductService creates the service. Cache and dispatcher may be nil.
func NewProductService(products repository.ProductRepository, cache ProductCache, dispatcher events.Dispatcher) *ProductService {
	return &ProductService{products: products, cache: cache, dispatcher: dispatcher}
}

// FindProduct returns the product priced for code+location, consulting the
// read cache first.
func (s *ProductService) FindProduct(ctx context.Context, code, location string) (*domain.Product, error) {
	if s.cache != nil {
		if product, ok := s.cache.Get(ctx, code, location); ok {
			return product, nil
		}
	}

	product, err := s.products.FindByCodeAndLocation(ctx, code, location)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", nil)
		}
		return nil, apperrors.MapError(err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, product)
	}
	return product, nil
}

// CreateProduct inserts a new product and publishes an audit event.
func (s *ProductService) CreateProduct(ctx context.Context, actor *auth.Identity, input ProductCreateInput) (*domain.Product, error) {
	product := &domain.Product{
		ProductCode: input.ProductCode,
		Location:    input.Location,
		Price:       input.Price,
	}
	if err := s.products.Create(ctx, product); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, apperrors.NewConflict("product code already exists", map[string]any{"productCode": input.ProductCode})
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventProductCreated, product.ProductCode, actor, events.ProductCreatedPayload{
		Location: product.Location,
		Price:    product.Price,
	})
	return product, nil
}

// UpdateProduct changes location and price of an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, actor *auth.Identity, code string, input ProductUpdateInput) (*domain.Product, error) {
	existing, err := s.products.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", nil)
		}
		return nil, apperrors.MapError(err)
	}

	updated := &domain.Product{
		ID:          existing.ID,
		ProductCode: existing.ProductCode,
		Location:    input.Location,
		Price:       input.Price,
	}
	if err := s.products.Update(ctx, updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", nil)
		}
		return nil, apperrors.MapError(err)
	}

	if s.cache != nil {
		s.cache.InvalidateCode(ctx, code)
	}
	s.publish(ctx, events.EventProductUpdated, code, actor, events.ProductUpdatedPayload{
		OldLocation: existing.Location,
		NewLocation: updated.Location,
		OldPrice:    existing.Price,
		NewPrice:    updated.Price,
	})
	return updated, nil
}

// DeleteProduct removes a product by code. Zero affected rows maps to NotFound.
func (s *ProductService) DeleteProduct(ctx context.Context, actor *auth.Identity, code string) error {
	affected, err := s.products.Delete(ctx, code)
	if err != nil {
		return apperrors.MapError(err)
	}
	if affected == 0 {
		return apperrors.NewNotFound("product", nil)
	}

	if s.cache != nil {
		s.cache.InvalidateCode(ctx, code)
	}
	s.publish(ctx, events.EventProductDeleted, code, actor, events.ProductDeletedPayload{Affected: affected})
	return nil
}

func (s *ProductService) publish(ctx context.Context, eventType events.EventType, code string, actor *auth.Identity, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		ProductCode: code,
		Timestamp:   time.Now().UTC(),
		Payload:     payload,
	}
	if actor != nil {
		event.Actor = events.Actor{Subject: actor.Subject, Role: actor.Role}
	}
	_ = s.dispatcher.Publish(ctx, event)
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arkumar/ecommerce-backend/internal/events"
	"github.com/arkumar/ecommerce-backend/internal/models"
	"github.com/arkumar/ecommerce-backend/internal/repo"
	"github.com/arkumar/ecommerce-backend/internal/search"
	"github.com/arkumar/ecommerce-backend/pkg/logging"
)

type CatalogService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	Indexer  *search.Indexer
}

type ProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	Count       uint
}

func (in ProductInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.PriceCents < 0 {
		return fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	return nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, limit, offset int) ([]models.Product, int64, error) {
	return s.Repo.ListProducts(ctx, limit, offset)
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create_product")

	if err := in.validate(); err != nil {
		return nil, err
	}

	product := models.Product{
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Count:       in.Count,
	}
	if err := s.Repo.CreateProduct(ctx, &product); err != nil {
		l.Error("create_product_error", "status", 500, "error", err)
		return nil, err
	}

	s.index(ctx, &product)
	s.publish(ctx, "product_created", &product)

	l.Info("product_created", "product_id", product.ID)
	return &product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, in ProductInput) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.update_product")

	if err := in.validate(); err != nil {
		return nil, err
	}

	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return nil, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.PriceCents = in.PriceCents
	product.Count = in.Count

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		l.Error("update_product_error", "status", 500, "error", err)
		return nil, err
	}

	s.index(ctx, product)
	s.publish(ctx, "product_updated", product)

	l.Info("product_updated", "product_id", product.ID)
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "catalog.delete_product")

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		l.Error("delete_product_error", "status", 500, "error", err)
		return err
	}

	if s.Indexer != nil {
		if err := s.Indexer.Delete(ctx, id.String()); err != nil {
			l.Error("es_delete_error", "error", err)
		}
	}
	s.publish(ctx, "product_deleted", &models.Product{ID: id})

	l.Info("product_deleted", "product_id", id)
	return nil
}

// Search falls back to nothing when search is not configured; the route is
// only registered when an indexer exists.
func (s *CatalogService) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	if s.Indexer == nil {
		return 0, nil, fmt.Errorf("%w: search is not configured", ErrValidation)
	}
	return s.Indexer.Search(ctx, query, from, size)
}

func (s *CatalogService) index(ctx context.Context, p *models.Product) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.Index(ctx, p); err != nil {
		logging.FromContext(ctx).Error("es_index_error", "product_id", p.ID, "error", err)
	}
}

func (s *CatalogService) publish(ctx context.Context, eventType string, p *models.Product) {
	if err := s.Producer.PublishEvent(ctx, events.TopicProductEvents, p.ID.String(), map[string]any{
		"type":       eventType,
		"product_id": p.ID,
		"name":       p.Name,
	}); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "error", err)
	}
}

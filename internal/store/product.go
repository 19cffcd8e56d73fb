package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bssmarket/shop_backend/internal/models"
)

type ProductStore struct {
	DB *gorm.DB
	// NewID generates primary keys. Defaults to uuid strings.
	NewID func() string
}

func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{DB: db, NewID: uuid.NewString}
}

func (s *ProductStore) FindAll(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := s.DB.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	return products, nil
}

func (s *ProductStore) FindOne(ctx context.Context, id string) (*models.Product, error) {
	product := models.Product{}
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &product, nil
}

func (s *ProductStore) Create(ctx context.Context, name string, price float64, quantity int, image string) (*models.Product, error) {
	product := models.Product{
		ID:       s.NewID(),
		Name:     name,
		Price:    price,
		Quantity: quantity,
		Image:    image,
	}
	if err := s.DB.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &product, nil
}

// Update replaces every mutable field of the row matching id. The id
// itself is immutable.
func (s *ProductStore) Update(ctx context.Context, id, name string, price float64, quantity int, image string) (*models.Product, error) {
	product := models.Product{
		ID:       id,
		Name:     name,
		Price:    price,
		Quantity: quantity,
		Image:    image,
	}
	res := s.DB.WithContext(ctx).Model(&models.Product{ID: id}).Updates(map[string]any{
		"name":     name,
		"price":    price,
		"quantity": quantity,
		"image":    image,
	})
	if res.Error != nil {
		return nil, fmt.Errorf("update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &product, nil
}

func (s *ProductStore) Delete(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

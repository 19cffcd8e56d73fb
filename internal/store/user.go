package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bssmarket/shop_backend/internal/models"
)

type UserStore struct {
	DB     *gorm.DB
	Hasher PasswordHasher
	NewID  func() string
}

func NewUserStore(db *gorm.DB, hasher PasswordHasher) *UserStore {
	return &UserStore{DB: db, Hasher: hasher, NewID: uuid.NewString}
}

// UserPatch holds the optional fields of a partial update. Nil or empty
// means "leave unchanged", matching the route layer's presence checks.
type UserPatch struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (s *UserStore) FindAll(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.DB.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	return users, nil
}

func (s *UserStore) FindOne(ctx context.Context, id string) (*models.User, error) {
	user := models.User{}
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &user, nil
}

// Search matches username and email by substring, both patterns ANDed.
// Empty patterns match everything.
func (s *UserStore) Search(ctx context.Context, name, email string) ([]models.User, error) {
	users := []models.User{}
	err := s.DB.WithContext(ctx).
		Where("username LIKE ? AND email LIKE ?", "%"+name+"%", "%"+email+"%").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user := models.User{}
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	return &user, nil
}

func (s *UserStore) Create(ctx context.Context, username, email, password string) (*models.User, error) {
	hashed, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := models.User{
		ID:           s.NewID(),
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// VerifyCredentials returns ErrNotFound when no user has the email and
// ErrInvalidCredentials when the password does not match.
func (s *UserStore) VerifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !s.Hasher.Verify(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Update pre-fetches the record, then writes only the supplied fields
// in a single statement built from a fixed set of updatable columns.
// A password value is re-hashed before it is written. With no supplied
// fields the write is skipped and the record is returned as-is. The
// read and the write are not wrapped in a transaction.
func (s *UserStore) Update(ctx context.Context, id string, patch UserPatch) (*models.User, error) {
	user, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	assignments := map[string]any{}
	if patch.Username != nil && *patch.Username != "" {
		assignments["username"] = *patch.Username
		user.Username = *patch.Username
	}
	if patch.Email != nil && *patch.Email != "" {
		assignments["email"] = *patch.Email
		user.Email = *patch.Email
	}
	if patch.Password != nil && *patch.Password != "" {
		hashed, err := s.Hasher.Hash(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		assignments["password"] = hashed
		user.PasswordHash = hashed
	}
	if len(assignments) == 0 {
		return user, nil
	}

	res := s.DB.WithContext(ctx).Model(&models.User{ID: id}).Updates(assignments)
	if res.Error != nil {
		return nil, fmt.Errorf("update user: %w", res.Error)
	}
	return user, nil
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

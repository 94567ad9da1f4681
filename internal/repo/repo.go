package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrUserAlreadyExist = errors.New("user already exist")

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

// Transaction runs fn against a repo bound to a single store transaction.
// Any returned error rolls the whole unit of work back.
func (r *GormRepo) Transaction(ctx context.Context, fn func(txRepo *GormRepo) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepo{DB: tx})
	})
}

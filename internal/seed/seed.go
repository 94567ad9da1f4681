package seed

import (
	"context"
	"errors"

	"github.com/arkumar/ecommerce-backend/internal/models"
	"github.com/arkumar/ecommerce-backend/internal/repo"
	pkg_hash "github.com/arkumar/ecommerce-backend/pkg/hash"
	"github.com/arkumar/ecommerce-backend/pkg/logging"
)

type account struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

var defaultAccounts = []account{
	{Username: "admin", Email: "admin@ecommerce.com", Password: "admin123", FirstName: "Admin", LastName: "User", Role: "admin"},
	{Username: "arun23", Email: "arun23@ecommerce.com", Password: "password123", FirstName: "Arun", LastName: "Kumar", Role: "user"},
}

var demoProducts = []models.Product{
	{Name: "Wireless Mouse", Description: "2.4GHz optical mouse", PriceCents: 1999, Count: 120},
	{Name: "Mechanical Keyboard", Description: "Tenkeyless, brown switches", PriceCents: 7499, Count: 45},
	{Name: "USB-C Hub", Description: "7-in-1 hub with HDMI and PD", PriceCents: 3299, Count: 80},
}

// Run makes sure the well-known accounts (and optionally a few demo
// products) exist. Every insert is guarded by an existence check, so running
// the process twice never duplicates a row.
func Run(ctx context.Context, r *repo.GormRepo, withDemoProducts bool) error {
	l := logging.FromContext(ctx).With("svc", "seed")

	for _, a := range defaultAccounts {
		exists, err := r.ExistsByUsername(ctx, a.Username)
		if err != nil {
			return err
		}
		if exists {
			l.Info("account_already_present", "username", a.Username)
			continue
		}

		pwHash, err := pkg_hash.HashPassword(a.Password)
		if err != nil {
			return err
		}
		user := models.User{
			Username:     a.Username,
			Email:        a.Email,
			PasswordHash: pwHash,
			FirstName:    a.FirstName,
			LastName:     a.LastName,
			Role:         a.Role,
		}
		if err := r.CreateUserIfNotExists(ctx, &user); err != nil {
			if errors.Is(err, repo.ErrUserAlreadyExist) {
				continue
			}
			return err
		}
		l.Info("account_seeded", "username", a.Username)
	}

	if !withDemoProducts {
		return nil
	}

	for _, p := range demoProducts {
		exists, err := r.ProductExistsByName(ctx, p.Name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		product := p
		if err := r.CreateProduct(ctx, &product); err != nil {
			return err
		}
		l.Info("product_seeded", "name", product.Name)
	}
	return nil
}

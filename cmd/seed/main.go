// Command seed provisions the out-of-band accounts: an admin user and a test
// customer. Running it is the only supported way to obtain an admin role;
// self-registration always yields a customer.
package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shopstack/ecommerce-api/internal/auth"
	"github.com/shopstack/ecommerce-api/internal/core/domain"
	"github.com/shopstack/ecommerce-api/internal/infrastructure/config"
	mongodb "github.com/shopstack/ecommerce-api/internal/infrastructure/db/mongo"
	"github.com/shopstack/ecommerce-api/pkg/logger"
)

type seedUser struct {
	email     string
	password  string
	firstName string
	lastName  string
	role      string
}

var seedUsers = []seedUser{
	{email: "admin@example.com", password: "admin123", firstName: "Admin", lastName: "User", role: domain.RoleAdmin},
	{email: "customer@example.com", password: "customer123", firstName: "Test", lastName: "Customer", role: domain.RoleCustomer},
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("mongo connect")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		logg.Fatal().Err(err).Msg("ensure indexes")
	}

	repo := mongodb.NewUserRepository(db)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	for _, su := range seedUsers {
		hash, err := hasher.Hash(su.password)
		if err != nil {
			logg.Fatal().Err(err).Str("email", su.email).Msg("hash password")
		}

		now := time.Now().UTC()
		_, err = repo.Create(ctx, &domain.User{
			Email:        su.email,
			PasswordHash: hash,
			FirstName:    su.firstName,
			LastName:     su.lastName,
			Role:         su.role,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		switch {
		case errors.Is(err, domain.ErrUserExists):
			logg.Info().Str("email", su.email).Msg("user already seeded, skipping")
		case err != nil:
			logg.Fatal().Err(err).Str("email", su.email).Msg("seed user")
		default:
			logg.Info().Str("email", su.email).Str("role", su.role).Msg("user seeded")
		}
	}
}

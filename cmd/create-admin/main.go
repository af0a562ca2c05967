package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/CtIaMbaCK/betterus-server/internal/auth"
	"github.com/CtIaMbaCK/betterus-server/internal/constants"
	"github.com/CtIaMbaCK/betterus-server/internal/db"
	"github.com/CtIaMbaCK/betterus-server/internal/db/repositories"
	"github.com/CtIaMbaCK/betterus-server/internal/models/entities"
)

// Seeds the first platform admin. Credentials come from ADMIN_EMAIL and
// ADMIN_PASSWORD, with development defaults.
func main() {
	if _, err := db.InitPostgresORM(db.DSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Migrate(db.PgDB); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@betterus.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "ChangeMe2026!"
	}

	users := repositories.NewUserRepository(db.PgDB)
	ctx := context.Background()

	if existing, err := users.GetByEmail(ctx, email); err == nil {
		fmt.Printf("Admin already exists: %s (id %s)\n", email, existing.ID)
		return
	} else if !errors.Is(err, repositories.ErrNotFound) {
		log.Fatalf("Failed to check existing admin: %v", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &entities.User{
		Email:        email,
		PasswordHash: hash,
		Role:         constants.RoleAdmin,
		Status:       constants.UserActive,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Println("Admin account created")
	fmt.Printf("  Email:    %s\n", email)
	fmt.Printf("  Password: %s\n", password)
	fmt.Printf("  ID:       %s\n", admin.ID)
	fmt.Println("Change the password after first sign-in.")
}

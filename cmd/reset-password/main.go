package main

import (
	"log"
	"os"

	"go-factory-console/internal/config"
	"go-factory-console/internal/model"
	"go-factory-console/internal/repository"
	"go-factory-console/pkg/database"
)

// Resets the password of a demo account stored in Postgres.
//
//	reset-password [email] [new-password]
//
// Defaults to admin@fabrica.com / admin123.
func main() {
	// 1. Load Env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ config: %v", err)
	}

	email, newPassword := "admin@fabrica.com", "admin123"
	if len(os.Args) > 1 {
		email = os.Args[1]
	}
	if len(os.Args) > 2 {
		newPassword = os.Args[2]
	}

	// 2. Setup Database
	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = database.DSN()
	}
	db, err := database.ConnectDB(dsn)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	users := repository.NewGormSet(db).Users

	// 3. Find user
	if _, err := users.FindByEmail(email); err != nil {
		log.Fatalf("❌ User %s not found in database: %v", email, err)
	}

	// 4. Hash new password
	var u model.User
	if err := u.SetPassword(newPassword); err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	// 5. Update
	if err := users.UpdatePassword(email, u.PasswordHash); err != nil {
		log.Fatalf("❌ Failed to update password in DB: %v", err)
	}

	log.Printf("✅ Success! Password for %s has been reset", email)
}

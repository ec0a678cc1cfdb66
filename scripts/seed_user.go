package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/khoahotran/viewtube/pkg/auth"
)

func main() {
	fmt.Println("adding seed user into database...")

	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	dsn := os.Getenv("DB_DSN")
	email := os.Getenv("SEED_USER_EMAIL")
	username := os.Getenv("SEED_USER_USERNAME")
	password := os.Getenv("SEED_USER_PASSWORD")

	if dsn == "" || email == "" || username == "" || password == "" {
		log.Fatal("DB_DSN, SEED_USER_EMAIL, SEED_USER_USERNAME and SEED_USER_PASSWORD are required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	query := `
		INSERT INTO users (id, fullname, email, username, password_hash, avatar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, '', $6, $6)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
	`
	_, err = pool.Exec(context.Background(), query, uuid.New(), username, email, username, hash, time.Now().UTC())
	if err != nil {
		log.Fatalf("cannot add user: %v", err)
	}

	fmt.Printf("added or updated user '%s' successfully!\n", email)
}

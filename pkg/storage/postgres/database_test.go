package postgres_test

import (
	"os"
	"testing"

	"klinechart/config"
	"klinechart/pkg/storage/postgres"
)

// go test -v --run TestCreateDatabase
func TestCreateDatabase(t *testing.T) {
	if os.Getenv("KLINECHART_TEST_POSTGRES_DSN") == "" {
		t.Skip("KLINECHART_TEST_POSTGRES_DSN not set")
	}

	cfg := config.PostgresConfig{
		Host:     os.Getenv("PGHOST"),
		Port:     5432,
		User:     os.Getenv("PGUSER"),
		Password: os.Getenv("PGPASSWORD"),
		DBName:   "klinechart_test",
		SSLMode:  "disable",
	}

	// Twice: the second call must see the database and do nothing.
	for i := 0; i < 2; i++ {
		if err := postgres.CreateDatabase(cfg, "dev"); err != nil {
			t.Fatalf("failed to create database (call %d): %v", i+1, err)
		}
	}
}

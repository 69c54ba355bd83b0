package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"klinechart/pkg/storage"
	"klinechart/pkg/storage/postgres"
)

// testDSN returns the DSN of a disposable database, or skips the test.
func testDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("KLINECHART_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("KLINECHART_TEST_POSTGRES_DSN not set")
	}
	return dsn
}

// go test -v --run ^TestPostgresInvalidDSN$
func TestPostgresInvalidDSN(t *testing.T) {
	invalidDSN := "host=invalid.invalid port=5432 user=fail password=fail dbname=fail sslmode=disable connect_timeout=2"

	_, err := postgres.NewClient(invalidDSN)
	if err == nil {
		t.Fatal("expected error for invalid DSN, got nil")
	}
}

// go test -v --run ^TestPostgresSlotStore$
func TestPostgresSlotStore(t *testing.T) {
	client, err := postgres.NewClient(testDSN(t))
	if err != nil {
		t.Fatalf("failed to create Postgres client: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if !client.IsHealthy(ctx) {
		t.Fatal("expected healthy DB connection")
	}
	if err := client.AutoMigrateSlotRecord(); err != nil {
		t.Fatalf("auto migration failed: %v", err)
	}

	key := "test-" + time.Now().Format("150405.000000")
	if _, err := client.Get(ctx, key); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := client.Put(ctx, key, []byte(`{"ethusdt":[]}`)); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := client.Put(ctx, key, []byte(`{}`)); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	got, err := client.Get(ctx, key)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != `{}` {
		t.Errorf("unexpected value: %s", got)
	}

	client.DB.Where("key = ?", key).Delete(&postgres.SlotRecord{})
}

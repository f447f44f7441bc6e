package directory

import (
	"os"
	"testing"
)

// Set JWP_POSTGRES_DSN, e.g. "user=jwp dbname=jwp host=127.0.0.1 sslmode=disable".
func TestPostgres(t *testing.T) {
	dsn := os.Getenv("JWP_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("JWP_POSTGRES_DSN not set")
	}
	pg, err := NewPostgres(dsn, 25)
	if err != nil {
		t.Fatal(err)
	}
	defer pg.Close()
	testDirectory(t, pg)
}

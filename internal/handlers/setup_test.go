package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/crypto/bcrypt"

	"itacaos/internal/db"
	mw "itacaos/internal/middleware"
	"itacaos/internal/models"
)

var (
	testDB    *sqlx.DB
	setupOnce sync.Once
	setupErr  error
)

// testDatabase opens one Postgres for the whole package: DATABASE_URL when
// provided, otherwise a throwaway container. Tests skip when neither is
// available.
func testDatabase(t *testing.T) *sqlx.DB {
	t.Helper()
	setupOnce.Do(func() {
		ctx := context.Background()

		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			container, err := postgres.Run(ctx, "postgres:16-alpine",
				postgres.WithDatabase("itaca_test"),
				postgres.WithUsername("itaca"),
				postgres.WithPassword("itaca_test"),
				postgres.BasicWaitStrategies(),
			)
			if err != nil {
				setupErr = err
				return
			}
			dsn, setupErr = container.ConnectionString(ctx, "sslmode=disable")
			if setupErr != nil {
				return
			}
		}

		conn, err := sqlx.Open("pgx", dsn)
		if err != nil {
			setupErr = err
			return
		}
		for i := 0; i < 30; i++ {
			if err = conn.Ping(); err == nil {
				break
			}
			time.Sleep(time.Second)
		}
		if err != nil {
			setupErr = err
			return
		}
		if err := db.RunMigrations(conn); err != nil {
			setupErr = err
			return
		}
		testDB = conn
	})
	if setupErr != nil {
		t.Skipf("postgres unavailable: %v", setupErr)
	}
	return testDB
}

func resetDB(t *testing.T, conn *sqlx.DB) {
	t.Helper()
	tables := []string{
		"activity_log", "planes_accion", "metas", "ejercicios_log",
		"brujula_eval", "journal", "hexagono", "logros", "notificaciones",
		"faros", "checkins", "identidad", "usuarios",
	}
	for _, table := range tables {
		if _, err := conn.Exec("TRUNCATE TABLE " + table + " CASCADE"); err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}

type seedOpts struct {
	Rol        string
	Unidad     string
	EmailLider string
	Password   string
	Estado     string
}

func seedUser(t *testing.T, conn *sqlx.DB, email, nombre string, opts seedOpts) {
	t.Helper()
	if opts.Rol == "" {
		opts.Rol = models.RolColaborador
	}
	if opts.Password == "" {
		opts.Password = "secreta123"
	}
	if opts.Estado == "" {
		opts.Estado = models.EstadoActivo
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	var unidad, lider *string
	if opts.Unidad != "" {
		unidad = &opts.Unidad
	}
	if opts.EmailLider != "" {
		lider = &opts.EmailLider
	}
	_, err = conn.Exec(`
		INSERT INTO usuarios (email, nombre, rol, estado, unidad, email_lider, password, debe_cambiar_password)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false)`,
		email, nombre, opts.Rol, opts.Estado, unidad, lider, string(hash))
	if err != nil {
		t.Fatalf("seed usuario: %v", err)
	}
	_, err = conn.Exec(`
		INSERT INTO identidad (email, nombre, rol, unidad, estado, email_lider)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		email, nombre, opts.Rol, unidad, opts.Estado, lider)
	if err != nil {
		t.Fatalf("seed identidad: %v", err)
	}
}

// authedRequest builds a request carrying the identity the auth middleware
// would have extracted from a valid token.
func authedRequest(t *testing.T, method, target string, body any, email, rol string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	ctx := context.WithValue(req.Context(), mw.CtxEmail, email)
	ctx = context.WithValue(ctx, mw.CtxRol, rol)
	return req.WithContext(ctx)
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

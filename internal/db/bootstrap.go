package db

import (
	"context"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// EnsureAdmin inserts an Admin account when the roster is empty, so a fresh
// deployment has a first login. No-op when any user exists or when email is
// empty.
func EnsureAdmin(ctx context.Context, db *sqlx.DB, email, password string) error {
	if email == "" {
		return nil
	}
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM usuarios`); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO usuarios (email, nombre, rol, estado, password, debe_cambiar_password)
		VALUES ($1, $2, 'Admin', 'Activo', $3, false)`,
		email, "Administrador", string(hashed)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO identidad (email, nombre, rol, estado)
		VALUES ($1, $2, 'Admin', 'Activo')`,
		email, "Administrador"); err != nil {
		return err
	}
	return tx.Commit()
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	mw "itacaos/internal/middleware"
	"itacaos/internal/models"
)

func itoa(i int) string { return strconv.Itoa(i) }

// result is the (success, message) envelope every mutating operation returns
// to the presentation layer.
type result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func currentEmail(r *http.Request) string {
	email, _ := r.Context().Value(mw.CtxEmail).(string)
	return email
}

func currentRol(r *http.Request) string {
	rol, _ := r.Context().Value(mw.CtxRol).(string)
	return rol
}

// isLeadership mirrors the role-gated navigation: the organizational-health
// assessment and the team check-in view are for leadership roles only.
func isLeadership(rol string) bool {
	return rol == models.RolAdmin || rol == models.RolLider || rol == models.RolCoordinador
}

// logActivity records an audit row. Best effort: a failed audit insert never
// fails the request that triggered it.
func logActivity(db *sqlx.DB, email, accion, detalle, modulo string) {
	_, _ = db.Exec(`INSERT INTO activity_log (log_id, email, accion, detalle, modulo)
	                VALUES ($1, $2, $3, $4, $5)`,
		uuid.NewString(), email, accion, detalle, modulo)
}

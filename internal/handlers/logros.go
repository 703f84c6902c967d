package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jmoiron/sqlx"

	"itacaos/internal/models"
	"itacaos/internal/wellness"
)

type LogrosHandler struct {
	db *sqlx.DB
}

func NewLogrosHandler(database *sqlx.DB) *LogrosHandler {
	return &LogrosHandler{db: database}
}

type awardRequest struct {
	BadgeID     string `json:"badge_id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Puntos      int    `json:"puntos"`
	Categoria   string `json:"categoria"`
	Icono       string `json:"icono"`
}

type awardResponse struct {
	Otorgado bool `json:"otorgado"`
}

// Award grants a badge to the caller. The row id is derived from
// (email local part, badge code), so a repeat award hits ON CONFLICT and
// reports otorgado=false without touching anything. Badge metadata is
// caller-supplied.
func (h *LogrosHandler) Award(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)

	var req awardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BadgeID == "" || req.Nombre == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	res, err := h.db.Exec(`
		INSERT INTO logros (logro_id, email, badge_id, nombre_badge, descripcion, puntos, categoria, icono)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (logro_id) DO NOTHING`,
		wellness.AwardID(email, req.BadgeID), email, req.BadgeID, req.Nombre,
		req.Descripcion, req.Puntos, req.Categoria, req.Icono)
	if err != nil {
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}
	n, _ := res.RowsAffected()
	if n == 1 {
		logActivity(h.db, email, "logro", req.BadgeID, "logros")
	}
	writeJSON(w, http.StatusOK, awardResponse{Otorgado: n == 1})
}

func (h *LogrosHandler) List(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)
	out := []models.Logro{}
	if err := h.db.Select(&out, `SELECT * FROM logros WHERE email=$1 ORDER BY fecha DESC`, email); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Puntos returns the caller's total: the sum over their badge rows, computed
// on read.
func (h *LogrosHandler) Puntos(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)
	var total int
	if err := h.db.Get(&total, `SELECT COALESCE(SUM(puntos), 0) FROM logros WHERE email=$1`, email); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"puntos": total})
}

package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"itacaos/internal/models"
	"itacaos/internal/wellness"
)

type FaroHandler struct {
	db *sqlx.DB
}

func NewFaroHandler(database *sqlx.DB) *FaroHandler {
	return &FaroHandler{db: database}
}

type faroRequest struct {
	EmailReceptor string `json:"email_receptor"`
	TipoFaro      string `json:"tipo_faro"`
	Mensaje       string `json:"mensaje"`
}

// Send records a recognition message. The type catalog is closed; unknown
// types are rejected before anything is written. Display names come from the
// identity profiles, falling back to the raw email when a profile is missing.
// Messages go out approved and public: the moderation columns exist in the
// schema but no workflow writes anything else to them.
func (h *FaroHandler) Send(w http.ResponseWriter, r *http.Request) {
	emisor := currentEmail(r)

	var req faroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.EmailReceptor == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	req.EmailReceptor = strings.TrimSpace(strings.ToLower(req.EmailReceptor))

	tipo, ok := wellness.ResolveFaro(req.TipoFaro)
	if !ok {
		writeJSON(w, http.StatusBadRequest, result{Success: false, Message: "Tipo de faro desconocido."})
		return
	}

	now := time.Now()
	fid := fmt.Sprintf("FARO_%d", now.UnixNano())

	_, err := h.db.Exec(`
		INSERT INTO faros (faro_id, email_emisor, nombre_emisor, email_receptor, nombre_receptor, tipo_faro, pilar, animal, mensaje, fecha_envio, estado, fecha_aprobacion, visible)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'Aprobado', $10, true)`,
		fid, emisor, h.displayName(emisor), req.EmailReceptor, h.displayName(req.EmailReceptor),
		req.TipoFaro, tipo.Pilar, tipo.Animal, req.Mensaje, now)
	if err != nil {
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}

	logActivity(h.db, emisor, "faro_enviado", req.TipoFaro, "cultura")
	writeJSON(w, http.StatusCreated, result{Success: true, Message: fmt.Sprintf("¡Faro enviado a %s!", h.displayName(req.EmailReceptor))})
}

// Celebrar bumps the celebration counter. There is no de-duplication: any
// viewer may celebrate the same faro repeatedly and the counter only grows.
func (h *FaroHandler) Celebrar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := h.db.Exec(`UPDATE faros SET celebraciones = celebraciones + 1 WHERE faro_id=$1`, id)
	if err != nil {
		http.Error(w, "could not update", http.StatusInternalServerError)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FaroHandler) ListRecibidos(w http.ResponseWriter, r *http.Request) {
	h.list(w, `SELECT * FROM faros WHERE email_receptor=$1 AND visible ORDER BY fecha_envio DESC LIMIT 20`, currentEmail(r))
}

func (h *FaroHandler) ListEnviados(w http.ResponseWriter, r *http.Request) {
	h.list(w, `SELECT * FROM faros WHERE email_emisor=$1 ORDER BY fecha_envio DESC LIMIT 20`, currentEmail(r))
}

func (h *FaroHandler) ListPublicos(w http.ResponseWriter, r *http.Request) {
	h.list(w, `SELECT * FROM faros WHERE visible ORDER BY fecha_envio DESC LIMIT 20`)
}

func (h *FaroHandler) list(w http.ResponseWriter, query string, args ...any) {
	out := []models.Faro{}
	if err := h.db.Select(&out, query, args...); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *FaroHandler) displayName(email string) string {
	var nombre sql.NullString
	err := h.db.Get(&nombre, `SELECT nombre FROM identidad WHERE email=$1`, email)
	if err != nil || !nombre.Valid || nombre.String == "" {
		return email
	}
	return nombre.String
}

package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"itacaos/internal/db"
	"itacaos/internal/models"
	"itacaos/internal/wellness"
)

type CheckinHandler struct {
	db *sqlx.DB
}

func NewCheckinHandler(database *sqlx.DB) *CheckinHandler {
	return &CheckinHandler{db: database}
}

type checkinRequest struct {
	EstadoGeneral    string   `json:"estado_general"`
	NivelEstres      int      `json:"nivel_estres"`
	AreaPreocupacion string   `json:"area_preocupacion"`
	Etiquetas        []string `json:"etiquetas"`
	Comentario       string   `json:"comentario"`
}

// Submit records the weekly check-in. One row per (email, ISO week): the
// unique index decides, and a conflict surfaces as the duplicate message with
// nothing written. A stress level at or above the alert threshold flags the
// row and notifies the user's leader inside the same transaction.
func (h *CheckinHandler) Submit(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)

	var req checkinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.EstadoGeneral == "" ||
		req.NivelEstres < 1 || req.NivelEstres > 5 {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	now := time.Now()
	semana := wellness.WeekKey(now)
	alerta := req.NivelEstres >= wellness.NivelAlerta

	var u models.Usuario
	if err := h.db.Get(&u, `SELECT * FROM usuarios WHERE email=$1`, email); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	tx, err := h.db.Beginx()
	if err != nil {
		http.Error(w, "could not start transaction", http.StatusInternalServerError)
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO checkins (checkin_id, email, estado_general, nivel_estres, area_preocupacion, etiquetas, comentario, fecha, semana, alerta_enviada)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		wellness.CheckinID(email, now), email, req.EstadoGeneral, req.NivelEstres,
		req.AreaPreocupacion, strings.Join(req.Etiquetas, ","), req.Comentario,
		now, semana, alerta)
	if err != nil {
		if db.IsUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, result{Success: false, Message: "Ya hiciste tu check-in esta semana."})
			return
		}
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}

	if alerta && u.EmailLider != nil && *u.EmailLider != "" {
		_, err = tx.Exec(`
			INSERT INTO notificaciones (notif_id, email_dest, tipo, titulo, mensaje, prioridad)
			VALUES ($1, $2, 'alerta_bienestar', 'Alerta de bienestar', $3, 'Alta')`,
			uuid.NewString(), *u.EmailLider,
			fmt.Sprintf("%s reportó un nivel de estrés %d/5 esta semana.", u.Nombre, req.NivelEstres))
		if err != nil {
			http.Error(w, "could not save", http.StatusInternalServerError)
			return
		}
	}

	if err := tx.Commit(); err != nil {
		http.Error(w, "could not commit", http.StatusInternalServerError)
		return
	}

	logActivity(h.db, email, "checkin", semana, "checkin")
	writeJSON(w, http.StatusCreated, result{Success: true, Message: "Check-in registrado. ¡Gracias por compartir!"})
}

func (h *CheckinHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)
	out := []models.Checkin{}
	if err := h.db.Select(&out, `SELECT * FROM checkins WHERE email=$1 ORDER BY fecha DESC LIMIT 20`, email); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// WeekStatus tells the client whether the caller already checked in this week.
func (h *CheckinHandler) WeekStatus(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)
	var done bool
	err := h.db.Get(&done, `SELECT EXISTS (SELECT 1 FROM checkins WHERE email=$1 AND semana=$2)`,
		email, wellness.WeekKey(time.Now()))
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"semana": wellness.WeekKey(time.Now()), "realizado": done})
}

type teamCheckin struct {
	models.Checkin
	Nombre string `db:"nombre" json:"nombre"`
}

// ListTeam returns recent check-ins of the caller's unit, for leadership
// roles. Membership is by shared unidad on the identity profile; the caller's
// own rows are excluded.
func (h *CheckinHandler) ListTeam(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)
	if rol := currentRol(r); !isLeadership(rol) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var unidad sql.NullString
	if err := h.db.Get(&unidad, `SELECT unidad FROM identidad WHERE email=$1`, email); err != nil {
		if err == sql.ErrNoRows {
			writeJSON(w, http.StatusOK, []teamCheckin{})
			return
		}
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	if !unidad.Valid || unidad.String == "" {
		writeJSON(w, http.StatusOK, []teamCheckin{})
		return
	}

	out := []teamCheckin{}
	err := h.db.Select(&out, `
		SELECT c.*, COALESCE(i.nombre, c.email) AS nombre
		FROM checkins c
		JOIN identidad i ON c.email = i.email
		WHERE i.unidad=$1 AND c.email != $2 AND i.estado='Activo'
		ORDER BY c.fecha DESC LIMIT 50`, unidad.String, email)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

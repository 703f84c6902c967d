package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"itacaos/internal/models"
	"itacaos/internal/wellness"
)

type JournalHandler struct {
	db *sqlx.DB
}

func NewJournalHandler(database *sqlx.DB) *JournalHandler {
	return &JournalHandler{db: database}
}

type journalRequest struct {
	Emociones   []string `json:"emociones"`
	Intensidad  int      `json:"intensidad"`
	Trigger     string   `json:"trigger"`
	Pensamiento string   `json:"pensamiento"`
	Reflexion   string   `json:"reflexion"`
	Estrategia  string   `json:"estrategia"`
	Efectividad int      `json:"efectividad"`
	Contexto    string   `json:"contexto"`
}

// Add records an emotional episode. Entries are keyed to the minute; the
// weekday name and day-part bucket are derived from the submission moment and
// stored with the row. There is no per-day uniqueness.
func (h *JournalHandler) Add(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)

	var req journalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Emociones) == 0 {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	now := time.Now()
	_, err := h.db.Exec(`
		INSERT INTO journal (journal_id, email, fecha, emociones, intensidad, trigger_text, pensamiento, reflexion, estrategia, efectividad, contexto, dia_semana, hora_dia)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		wellness.JournalID(email, now), email, now, strings.Join(req.Emociones, ","),
		req.Intensidad, req.Trigger, req.Pensamiento, req.Reflexion, req.Estrategia,
		req.Efectividad, req.Contexto, wellness.Weekday(now), wellness.DayPart(now))
	if err != nil {
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}

	logActivity(h.db, email, "journal", "", "brujula")
	writeJSON(w, http.StatusCreated, result{Success: true, Message: "Entrada de journal guardada."})
}

func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)
	out := []models.JournalEntry{}
	if err := h.db.Select(&out, `SELECT * FROM journal WHERE email=$1 ORDER BY fecha DESC LIMIT 30`, email); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

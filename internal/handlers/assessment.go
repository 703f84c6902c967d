package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"itacaos/internal/db"
	"itacaos/internal/models"
	"itacaos/internal/wellness"
)

// AssessmentHandler serves both monthly self-assessments. They share the
// period pattern: derive the email_YYYY-MM id, insert, and read a primary-key
// conflict as "already submitted this month".
type AssessmentHandler struct {
	db *sqlx.DB
}

func NewAssessmentHandler(database *sqlx.DB) *AssessmentHandler {
	return &AssessmentHandler{db: database}
}

type assessmentResult struct {
	Success  bool    `json:"success"`
	Message  string  `json:"message"`
	Promedio float64 `json:"promedio"`
}

// formatPromedio renders the mean for user-facing messages. Whole numbers
// keep one decimal, so an all-fours evaluation reads "4.0" rather than "4".
func formatPromedio(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

type hexagonoRequest struct {
	Vision           int    `json:"vision"`
	Planificacion    int    `json:"planificacion"`
	Encaje           int    `json:"encaje"`
	Entrenamiento    int    `json:"entrenamiento"`
	EvaluacionMejora int    `json:"evaluacion_mejora"`
	Reconocimiento   int    `json:"reconocimiento"`
	Reflexion        string `json:"reflexion"`
}

func (h *AssessmentHandler) SubmitHexagono(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)
	if !isLeadership(currentRol(r)) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var req hexagonoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	now := time.Now()
	periodo := wellness.MonthKey(now)
	scores := []int{req.Vision, req.Planificacion, req.Encaje, req.Entrenamiento, req.EvaluacionMejora, req.Reconocimiento}
	s := wellness.Summarize(wellness.HexagonoDims, scores)

	_, err := h.db.Exec(`
		INSERT INTO hexagono (eval_id, email, periodo, fecha, vision, planificacion, encaje, entrenamiento, evaluacion_mejora, reconocimiento, promedio, reflexion, dim_baja, dim_alta)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		wellness.PeriodID(email, periodo), email, periodo, now,
		req.Vision, req.Planificacion, req.Encaje, req.Entrenamiento, req.EvaluacionMejora, req.Reconocimiento,
		s.Promedio, req.Reflexion, s.Baja, s.Alta)
	if err != nil {
		if db.IsUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, result{Success: false, Message: "Ya evaluaste este mes."})
			return
		}
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}

	logActivity(h.db, email, "hexagono", periodo, "hexagono")
	writeJSON(w, http.StatusCreated, assessmentResult{
		Success:  true,
		Message:  fmt.Sprintf("Evaluación guardada. Promedio: %s", formatPromedio(s.Promedio)),
		Promedio: s.Promedio,
	})
}

func (h *AssessmentHandler) ListHexagono(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)
	out := []models.Hexagono{}
	if err := h.db.Select(&out, `SELECT * FROM hexagono WHERE email=$1 ORDER BY periodo DESC LIMIT 12`, email); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type brujulaRequest struct {
	Autoconocimiento    int    `json:"autoconocimiento"`
	Autorregulacion     int    `json:"autorregulacion"`
	Motivacion          int    `json:"motivacion"`
	Empatia             int    `json:"empatia"`
	HabilidadesSociales int    `json:"habilidades_sociales"`
	Reflexion           string `json:"reflexion"`
}

// SubmitBrujula stores the emotional-intelligence assessment. The two
// activity counters (exercise logs and journal entries this month) are
// computed inside the same transaction and frozen into the row.
func (h *AssessmentHandler) SubmitBrujula(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)

	var req brujulaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	now := time.Now()
	periodo := wellness.MonthKey(now)
	scores := []int{req.Autoconocimiento, req.Autorregulacion, req.Motivacion, req.Empatia, req.HabilidadesSociales}
	s := wellness.Summarize(wellness.BrujulaDims, scores)

	tx, err := h.db.Beginx()
	if err != nil {
		http.Error(w, "could not start transaction", http.StatusInternalServerError)
		return
	}
	defer tx.Rollback()

	var ejerciciosMes, journalMes int
	if err := tx.Get(&ejerciciosMes,
		`SELECT COUNT(*) FROM ejercicios_log WHERE email=$1 AND to_char(fecha, 'YYYY-MM')=$2`,
		email, periodo); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	if err := tx.Get(&journalMes,
		`SELECT COUNT(*) FROM journal WHERE email=$1 AND to_char(fecha, 'YYYY-MM')=$2`,
		email, periodo); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}

	_, err = tx.Exec(`
		INSERT INTO brujula_eval (brujula_id, email, periodo, fecha, autoconocimiento, autorregulacion, motivacion, empatia, habilidades_sociales, promedio, comp_baja, comp_alta, reflexion, ejercicios_mes, journal_mes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		wellness.PeriodID(email, periodo), email, periodo, now,
		req.Autoconocimiento, req.Autorregulacion, req.Motivacion, req.Empatia, req.HabilidadesSociales,
		s.Promedio, s.Baja, s.Alta, req.Reflexion, ejerciciosMes, journalMes)
	if err != nil {
		if db.IsUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, result{Success: false, Message: "Ya evaluaste este mes."})
			return
		}
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(); err != nil {
		http.Error(w, "could not commit", http.StatusInternalServerError)
		return
	}

	logActivity(h.db, email, "brujula", periodo, "brujula")
	writeJSON(w, http.StatusCreated, assessmentResult{
		Success:  true,
		Message:  fmt.Sprintf("Evaluación IE guardada. Promedio: %s", formatPromedio(s.Promedio)),
		Promedio: s.Promedio,
	})
}

func (h *AssessmentHandler) ListBrujula(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)
	out := []models.Brujula{}
	if err := h.db.Select(&out, `SELECT * FROM brujula_eval WHERE email=$1 ORDER BY periodo DESC LIMIT 12`, email); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

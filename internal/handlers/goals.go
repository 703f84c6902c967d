package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"itacaos/internal/models"
)

// GoalsHandler covers the development side of the platform: quarterly
// objectives, dimension action plans and emotional-intelligence exercise
// logs. Exercise logs also feed the frozen counters on monthly
// self-assessments.
type GoalsHandler struct {
	db *sqlx.DB
}

func NewGoalsHandler(database *sqlx.DB) *GoalsHandler {
	return &GoalsHandler{db: database}
}

type metaRequest struct {
	Tipo        string  `json:"tipo"`
	Periodo     string  `json:"periodo"`
	Objetivo    string  `json:"objetivo"`
	KR1         string  `json:"kr1"`
	KR2         string  `json:"kr2"`
	KR3         string  `json:"kr3"`
	FechaLimite *string `json:"fecha_limite"`
}

func (h *GoalsHandler) AddMeta(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)
	var req metaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Objetivo == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	_, err := h.db.Exec(`
		INSERT INTO metas (meta_id, email, tipo, periodo, objetivo, kr1, kr2, kr3, fecha_limite)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.NewString(), email, req.Tipo, req.Periodo, req.Objetivo,
		req.KR1, req.KR2, req.KR3, req.FechaLimite)
	if err != nil {
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}
	logActivity(h.db, email, "meta_creada", req.Objetivo, "metas")
	writeJSON(w, http.StatusCreated, result{Success: true, Message: "Meta guardada."})
}

func (h *GoalsHandler) ListMetas(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)
	out := []models.Meta{}
	if err := h.db.Select(&out, `SELECT * FROM metas WHERE email=$1 ORDER BY fecha_creacion DESC`, email); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// UpdateMetaProgreso moves a goal's completion percentage; 100 also flips the
// estado to Completada.
func (h *GoalsHandler) UpdateMetaProgreso(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)
	id := chi.URLParam(r, "id")

	var body struct {
		Progreso int `json:"progreso"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Progreso < 0 || body.Progreso > 100 {
		http.Error(w, "progreso must be between 0 and 100", http.StatusBadRequest)
		return
	}
	estado := "En progreso"
	if body.Progreso >= 100 {
		estado = "Completada"
	}

	res, err := h.db.Exec(`
		UPDATE metas SET progreso=$1, estado=$2
		WHERE meta_id=$3 AND email=$4`, body.Progreso, estado, id, email)
	if err != nil {
		http.Error(w, "could not update", http.StatusInternalServerError)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		http.Error(w, "goal not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type planRequest struct {
	Periodo       string  `json:"periodo"`
	Dimension     string  `json:"dimension"`
	PuntajeActual int     `json:"puntaje_actual"`
	PuntajeMeta   int     `json:"puntaje_meta"`
	Accion1       string  `json:"accion1"`
	Accion2       string  `json:"accion2"`
	Accion3       string  `json:"accion3"`
	FechaLimite   *string `json:"fecha_limite"`
}

func (h *GoalsHandler) AddPlan(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Dimension == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	_, err := h.db.Exec(`
		INSERT INTO planes_accion (plan_id, email, periodo, dimension, puntaje_actual, puntaje_meta,
		                           accion1, accion2, accion3, fecha_limite)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		uuid.NewString(), email, req.Periodo, req.Dimension, req.PuntajeActual, req.PuntajeMeta,
		req.Accion1, req.Accion2, req.Accion3, req.FechaLimite)
	if err != nil {
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}
	logActivity(h.db, email, "plan_creado", req.Dimension, "planes")
	writeJSON(w, http.StatusCreated, result{Success: true, Message: "Plan de acción guardado."})
}

func (h *GoalsHandler) ListPlanes(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)
	out := []models.PlanAccion{}
	if err := h.db.Select(&out, `SELECT * FROM planes_accion WHERE email=$1 ORDER BY fecha_creacion DESC`, email); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type ejercicioRequest struct {
	EjercicioID   string `json:"ejercicio_id"`
	DuracionReal  int    `json:"duracion_real"`
	Efectividad   int    `json:"efectividad"`
	EstadoAntes   string `json:"estado_antes"`
	EstadoDespues string `json:"estado_despues"`
	Notas         string `json:"notas"`
	Competencia   string `json:"competencia"`
}

func (h *GoalsHandler) AddEjercicio(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)
	var req ejercicioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.EjercicioID == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	_, err := h.db.Exec(`
		INSERT INTO ejercicios_log (log_id, email, ejercicio_id, duracion_real, efectividad,
		                            estado_antes, estado_despues, notas, competencia)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.NewString(), email, req.EjercicioID, req.DuracionReal, req.Efectividad,
		req.EstadoAntes, req.EstadoDespues, req.Notas, req.Competencia)
	if err != nil {
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, result{Success: true, Message: "Ejercicio registrado."})
}

func (h *GoalsHandler) ListEjercicios(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)
	out := []models.EjercicioLog{}
	if err := h.db.Select(&out, `SELECT * FROM ejercicios_log WHERE email=$1 ORDER BY fecha DESC LIMIT 50`, email); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

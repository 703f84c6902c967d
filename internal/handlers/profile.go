package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"itacaos/internal/models"
)

type ProfileHandler struct {
	db *sqlx.DB
}

func NewProfileHandler(database *sqlx.DB) *ProfileHandler {
	return &ProfileHandler{db: database}
}

type profileResponse struct {
	Usuario   models.Usuario    `json:"usuario"`
	Identidad *models.Identidad `json:"identidad,omitempty"`
	Puntos    int               `json:"puntos"`
	NoLeidas  int               `json:"no_leidas"`
}

// GetMe returns the caller's account, profile record, badge point total and
// unread notification count in one round trip.
func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)

	var u models.Usuario
	if err := h.db.Get(&u, `SELECT * FROM usuarios WHERE email=$1`, email); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	resp := profileResponse{Usuario: u}

	var ident models.Identidad
	if err := h.db.Get(&ident, `SELECT * FROM identidad WHERE email=$1`, email); err == nil {
		resp.Identidad = &ident
	}
	_ = h.db.Get(&resp.Puntos, `SELECT COALESCE(SUM(puntos), 0) FROM logros WHERE email=$1`, email)
	_ = h.db.Get(&resp.NoLeidas, `SELECT COUNT(*) FROM notificaciones WHERE email_dest=$1 AND leida=false`, email)

	writeJSON(w, http.StatusOK, resp)
}

// UpdateMe updates provided fields on the caller's identidad row. Role, unit
// and estado are roster attributes and only change through admin operations.
func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)
	var body struct {
		Nombre           *string `json:"nombre"`
		FotoURL          *string `json:"foto_url"`
		Puesto           *string `json:"puesto"`
		FechaIngreso     *string `json:"fecha_ingreso"`
		ArquetipoDisc    *string `json:"arquetipo_disc"`
		DiscD            *int    `json:"disc_d"`
		DiscI            *int    `json:"disc_i"`
		DiscS            *int    `json:"disc_s"`
		DiscC            *int    `json:"disc_c"`
		MetaTrascendente *string `json:"meta_trascendente"`
		FrasePersonal    *string `json:"frase_personal"`
		Limitantes       *string `json:"limitantes"`
		Fortalezas       *string `json:"fortalezas"`
		ProgresoMeta     *int    `json:"progreso_meta"`
		Telefono         *string `json:"telefono"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	setClauses := []string{}
	args := []interface{}{}
	argIdx := 1
	set := func(col string, val interface{}) {
		setClauses = append(setClauses, col+"=$"+strconv.Itoa(argIdx))
		args = append(args, val)
		argIdx++
	}

	if body.Nombre != nil {
		set("nombre", *body.Nombre)
	}
	if body.FotoURL != nil {
		set("foto_url", *body.FotoURL)
	}
	if body.Puesto != nil {
		set("puesto", *body.Puesto)
	}
	if body.FechaIngreso != nil {
		set("fecha_ingreso", *body.FechaIngreso)
	}
	if body.ArquetipoDisc != nil {
		set("arquetipo_disc", *body.ArquetipoDisc)
	}
	if body.DiscD != nil {
		set("disc_d", *body.DiscD)
	}
	if body.DiscI != nil {
		set("disc_i", *body.DiscI)
	}
	if body.DiscS != nil {
		set("disc_s", *body.DiscS)
	}
	if body.DiscC != nil {
		set("disc_c", *body.DiscC)
	}
	if body.MetaTrascendente != nil {
		set("meta_trascendente", *body.MetaTrascendente)
	}
	if body.FrasePersonal != nil {
		set("frase_personal", *body.FrasePersonal)
	}
	if body.Limitantes != nil {
		set("limitantes", *body.Limitantes)
	}
	if body.Fortalezas != nil {
		set("fortalezas", *body.Fortalezas)
	}
	if body.ProgresoMeta != nil {
		if *body.ProgresoMeta < 0 || *body.ProgresoMeta > 100 {
			http.Error(w, "progreso_meta must be between 0 and 100", http.StatusBadRequest)
			return
		}
		set("progreso_meta", *body.ProgresoMeta)
	}
	if body.Telefono != nil {
		set("telefono", *body.Telefono)
	}
	if len(setClauses) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	setClauses = append(setClauses, "fecha_actualizacion=NOW()")

	query := "UPDATE identidad SET " + strings.Join(setClauses, ", ") + " WHERE email=$" + strconv.Itoa(argIdx)
	args = append(args, email)
	if _, err := h.db.Exec(query, args...); err != nil {
		http.Error(w, "could not update", http.StatusInternalServerError)
		return
	}
	logActivity(h.db, email, "perfil_actualizado", "", "identidad")
	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"itacaos/internal/wellness"
)

type analyticsOverview struct {
	TotalUsers   int     `json:"total_users"`
	CheckinsWeek int     `json:"checkins_week"`
	TasaCheckin  int     `json:"tasa_checkin"`
	AvgEstres    float64 `json:"avg_estres"`
	Alertas      int     `json:"alertas"`
	FarosMes     int     `json:"faros_mes"`
	TotalFaros   int     `json:"total_faros"`
}

type unidadEstres struct {
	Unidad    string  `db:"unidad" json:"unidad"`
	AvgEstres float64 `db:"avg_estres" json:"avg_estres"`
	Checkins  int     `db:"checkins" json:"checkins"`
}

type tipoFaroCount struct {
	TipoFaro string `db:"tipo_faro" json:"tipo_faro"`
	Total    int    `db:"total" json:"total"`
}

// Analytics returns the organization-wide wellbeing dashboard. The
// participation rate is the share of active users with a check-in in the
// current ISO week; stress figures cover the trailing seven days.
func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	now := time.Now()
	semana := wellness.WeekKey(now)
	hace7d := now.AddDate(0, 0, -7)
	hace30d := now.AddDate(0, 0, -30)

	var ov analyticsOverview
	if err := h.db.Get(&ov.TotalUsers, `SELECT COUNT(*) FROM usuarios WHERE estado='Activo'`); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	if err := h.db.Get(&ov.CheckinsWeek, `SELECT COUNT(*) FROM checkins WHERE semana=$1`, semana); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}

	users := ov.TotalUsers
	if users < 1 {
		users = 1
	}
	ov.TasaCheckin = int(decimal.NewFromInt(int64(ov.CheckinsWeek * 100)).
		Div(decimal.NewFromInt(int64(users))).
		Round(0).IntPart())

	var avg *float64
	if err := h.db.Get(&avg, `SELECT AVG(nivel_estres) FROM checkins WHERE fecha >= $1`, hace7d); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	if avg != nil {
		ov.AvgEstres, _ = decimal.NewFromFloat(*avg).Round(1).Float64()
	}

	if err := h.db.Get(&ov.Alertas, `SELECT COUNT(*) FROM checkins WHERE alerta_enviada AND fecha >= $1`, hace7d); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	if err := h.db.Get(&ov.FarosMes, `SELECT COUNT(*) FROM faros WHERE fecha_envio >= $1`, hace30d); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	if err := h.db.Get(&ov.TotalFaros, `SELECT COUNT(*) FROM faros`); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}

	porUnidad := []unidadEstres{}
	err := h.db.Select(&porUnidad, `
		SELECT COALESCE(i.unidad, 'Sin unidad') AS unidad,
		       ROUND(AVG(c.nivel_estres)::numeric, 1)::float8 AS avg_estres,
		       COUNT(*) AS checkins
		FROM checkins c
		JOIN identidad i ON i.email = c.email
		WHERE c.fecha >= $1
		GROUP BY COALESCE(i.unidad, 'Sin unidad')
		ORDER BY avg_estres DESC`, hace30d)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}

	porTipo := []tipoFaroCount{}
	err = h.db.Select(&porTipo, `
		SELECT tipo_faro, COUNT(*) AS total
		FROM faros
		GROUP BY tipo_faro
		ORDER BY total DESC`)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_users":       ov.TotalUsers,
		"checkins_week":     ov.CheckinsWeek,
		"tasa_checkin":      ov.TasaCheckin,
		"avg_estres":        ov.AvgEstres,
		"alertas":           ov.Alertas,
		"faros_mes":         ov.FarosMes,
		"total_faros":       ov.TotalFaros,
		"estres_por_unidad": porUnidad,
		"faros_por_tipo":    porTipo,
	})
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"itacaos/internal/models"
)

type NotificationsHandler struct {
	db *sqlx.DB
}

func NewNotificationsHandler(database *sqlx.DB) *NotificationsHandler {
	return &NotificationsHandler{db: database}
}

func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)
	out := []models.Notificacion{}
	err := h.db.Select(&out, `
		SELECT * FROM notificaciones
		WHERE email_dest=$1
		ORDER BY fecha DESC
		LIMIT 20`, email)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *NotificationsHandler) Unread(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)
	var count int
	err := h.db.Get(&count, `
		SELECT COUNT(*) FROM notificaciones
		WHERE email_dest=$1 AND leida=false`, email)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"no_leidas": count})
}

// MarkRead flips a single notification. The email filter keeps users from
// acking each other's rows.
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)
	id := chi.URLParam(r, "id")

	res, err := h.db.Exec(`
		UPDATE notificaciones SET leida=true
		WHERE notif_id=$1 AND email_dest=$2`, id, email)
	if err != nil {
		http.Error(w, "could not update", http.StatusInternalServerError)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		http.Error(w, "notification not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

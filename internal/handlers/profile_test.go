package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itacaos/internal/models"
)

func TestProfileGetMe(t *testing.T) {
	conn := testDatabase(t)
	resetDB(t, conn)
	seedUser(t, conn, "ana@itaca.mx", "Ana", seedOpts{Unidad: "Operaciones"})
	profile := NewProfileHandler(conn)
	logros := NewLogrosHandler(conn)

	rec := httptest.NewRecorder()
	logros.Award(rec, authedRequest(t, http.MethodPost, "/api/logros",
		map[string]any{"badge_id": "primer_checkin", "nombre": "Primer Check-in", "puntos": 10},
		"ana@itaca.mx", models.RolColaborador))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	profile.GetMe(rec, authedRequest(t, http.MethodGet, "/api/perfil", nil, "ana@itaca.mx", models.RolColaborador))
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeJSON[profileResponse](t, rec)

	assert.Equal(t, "ana@itaca.mx", resp.Usuario.Email)
	assert.Empty(t, resp.Usuario.Password)
	require.NotNil(t, resp.Identidad)
	require.NotNil(t, resp.Identidad.Unidad)
	assert.Equal(t, "Operaciones", *resp.Identidad.Unidad)
	assert.Equal(t, 10, resp.Puntos)
	assert.Zero(t, resp.NoLeidas)
}

func TestProfileUpdateMe(t *testing.T) {
	conn := testDatabase(t)
	resetDB(t, conn)
	seedUser(t, conn, "ana@itaca.mx", "Ana", seedOpts{})
	h := NewProfileHandler(conn)

	body := map[string]any{
		"puesto":         "Coordinadora de Cultura",
		"frase_personal": "Un día a la vez",
		"disc_d":         7,
		"progreso_meta":  40,
	}
	rec := httptest.NewRecorder()
	h.UpdateMe(rec, authedRequest(t, http.MethodPut, "/api/perfil", body, "ana@itaca.mx", models.RolColaborador))
	require.Equal(t, http.StatusNoContent, rec.Code)

	var ident models.Identidad
	require.NoError(t, conn.Get(&ident, `SELECT * FROM identidad WHERE email='ana@itaca.mx'`))
	require.NotNil(t, ident.Puesto)
	assert.Equal(t, "Coordinadora de Cultura", *ident.Puesto)
	require.NotNil(t, ident.FrasePersonal)
	assert.Equal(t, "Un día a la vez", *ident.FrasePersonal)
	assert.Equal(t, 7, ident.DiscD)
	assert.Equal(t, 40, ident.ProgresoMeta)
}

func TestProfileUpdateBounds(t *testing.T) {
	conn := testDatabase(t)
	resetDB(t, conn)
	seedUser(t, conn, "ana@itaca.mx", "Ana", seedOpts{})
	h := NewProfileHandler(conn)

	rec := httptest.NewRecorder()
	h.UpdateMe(rec, authedRequest(t, http.MethodPut, "/api/perfil",
		map[string]any{"progreso_meta": 120}, "ana@itaca.mx", models.RolColaborador))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// empty body is a no-op
	rec = httptest.NewRecorder()
	h.UpdateMe(rec, authedRequest(t, http.MethodPut, "/api/perfil",
		map[string]any{}, "ana@itaca.mx", models.RolColaborador))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestNotificationsFlow(t *testing.T) {
	conn := testDatabase(t)
	resetDB(t, conn)
	seedUser(t, conn, "lider@itaca.mx", "Laura", seedOpts{Rol: models.RolLider})
	seedUser(t, conn, "ana@itaca.mx", "Ana", seedOpts{EmailLider: "lider@itaca.mx"})
	checkin := NewCheckinHandler(conn)
	notif := NewNotificationsHandler(conn)

	rec := httptest.NewRecorder()
	checkin.Submit(rec, authedRequest(t, http.MethodPost, "/api/checkins",
		map[string]any{"estado_general": "Agotado", "nivel_estres": 5}, "ana@itaca.mx", models.RolColaborador))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	notif.Unread(rec, authedRequest(t, http.MethodGet, "/api/notificaciones/no-leidas", nil, "lider@itaca.mx", models.RolLider))
	unread := decodeJSON[map[string]int](t, rec)
	require.Equal(t, 1, unread["no_leidas"])

	rec = httptest.NewRecorder()
	notif.List(rec, authedRequest(t, http.MethodGet, "/api/notificaciones", nil, "lider@itaca.mx", models.RolLider))
	list := decodeJSON[[]models.Notificacion](t, rec)
	require.Len(t, list, 1)

	// another user cannot mark it read
	rec = httptest.NewRecorder()
	notif.MarkRead(rec, withURLParam(authedRequest(t, http.MethodPut, "/api/notificaciones/x/leida", nil, "ana@itaca.mx", models.RolColaborador), "id", list[0].NotifID))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	notif.MarkRead(rec, withURLParam(authedRequest(t, http.MethodPut, "/api/notificaciones/x/leida", nil, "lider@itaca.mx", models.RolLider), "id", list[0].NotifID))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	notif.Unread(rec, authedRequest(t, http.MethodGet, "/api/notificaciones/no-leidas", nil, "lider@itaca.mx", models.RolLider))
	unread = decodeJSON[map[string]int](t, rec)
	assert.Zero(t, unread["no_leidas"])
}

func TestGoalsFlow(t *testing.T) {
	conn := testDatabase(t)
	resetDB(t, conn)
	seedUser(t, conn, "ana@itaca.mx", "Ana", seedOpts{})
	h := NewGoalsHandler(conn)

	body := map[string]any{
		"tipo":     "Trimestral",
		"periodo":  "2026-Q3",
		"objetivo": "Cerrar certificación",
		"kr1":      "Terminar los 3 módulos",
	}
	rec := httptest.NewRecorder()
	h.AddMeta(rec, authedRequest(t, http.MethodPost, "/api/metas", body, "ana@itaca.mx", models.RolColaborador))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.ListMetas(rec, authedRequest(t, http.MethodGet, "/api/metas", nil, "ana@itaca.mx", models.RolColaborador))
	metas := decodeJSON[[]models.Meta](t, rec)
	require.Len(t, metas, 1)
	assert.Equal(t, "Pendiente", metas[0].Estado)

	rec = httptest.NewRecorder()
	h.UpdateMetaProgreso(rec, withURLParam(authedRequest(t, http.MethodPut, "/api/metas/x/progreso",
		map[string]any{"progreso": 100}, "ana@itaca.mx", models.RolColaborador), "id", metas[0].MetaID))
	require.Equal(t, http.StatusNoContent, rec.Code)

	var m models.Meta
	require.NoError(t, conn.Get(&m, `SELECT * FROM metas WHERE meta_id=$1`, metas[0].MetaID))
	assert.Equal(t, 100, m.Progreso)
	assert.Equal(t, "Completada", m.Estado)
}

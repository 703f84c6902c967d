package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itacaos/internal/models"
	"itacaos/internal/wellness"
)

func TestHexagonoSubmit(t *testing.T) {
	conn := testDatabase(t)
	resetDB(t, conn)
	seedUser(t, conn, "lider@itaca.mx", "Laura", seedOpts{Rol: models.RolLider})
	h := NewAssessmentHandler(conn)

	body := map[string]any{
		"vision":            5,
		"planificacion":     3,
		"encaje":            4,
		"entrenamiento":     2,
		"evaluacion_mejora": 4,
		"reconocimiento":    5,
		"reflexion":         "Necesito delegar más",
	}
	rec := httptest.NewRecorder()
	h.SubmitHexagono(rec, authedRequest(t, http.MethodPost, "/api/evaluaciones/hexagono", body, "lider@itaca.mx", models.RolLider))
	require.Equal(t, http.StatusCreated, rec.Code)
	res := decodeJSON[assessmentResult](t, rec)
	assert.True(t, res.Success)
	assert.Equal(t, 3.83, res.Promedio)
	assert.Equal(t, "Evaluación guardada. Promedio: 3.83", res.Message)

	var row models.Hexagono
	require.NoError(t, conn.Get(&row, `SELECT * FROM hexagono WHERE email='lider@itaca.mx'`))
	assert.Equal(t, "Entrenamiento", row.DimBaja)
	assert.Equal(t, "Visión Corporativa", row.DimAlta)
	assert.Equal(t, wellness.MonthKey(time.Now()), row.Periodo)

	// second submission in the same month is rejected with nothing written
	rec = httptest.NewRecorder()
	h.SubmitHexagono(rec, authedRequest(t, http.MethodPost, "/api/evaluaciones/hexagono", body, "lider@itaca.mx", models.RolLider))
	require.Equal(t, http.StatusConflict, rec.Code)
	dup := decodeJSON[result](t, rec)
	assert.Equal(t, "Ya evaluaste este mes.", dup.Message)

	var count int
	require.NoError(t, conn.Get(&count, `SELECT COUNT(*) FROM hexagono`))
	assert.Equal(t, 1, count)
}

func TestHexagonoRoleGate(t *testing.T) {
	conn := testDatabase(t)
	resetDB(t, conn)
	seedUser(t, conn, "ana@itaca.mx", "Ana", seedOpts{})
	h := NewAssessmentHandler(conn)

	body := map[string]any{"vision": 3, "planificacion": 3, "encaje": 3, "entrenamiento": 3, "evaluacion_mejora": 3, "reconocimiento": 3}
	rec := httptest.NewRecorder()
	h.SubmitHexagono(rec, authedRequest(t, http.MethodPost, "/api/evaluaciones/hexagono", body, "ana@itaca.mx", models.RolColaborador))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBrujulaFreezesActivityCounters(t *testing.T) {
	conn := testDatabase(t)
	resetDB(t, conn)
	seedUser(t, conn, "ana@itaca.mx", "Ana", seedOpts{})

	goals := NewGoalsHandler(conn)
	journal := NewJournalHandler(conn)
	assess := NewAssessmentHandler(conn)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		goals.AddEjercicio(rec, authedRequest(t, http.MethodPost, "/api/ejercicios",
			map[string]any{"ejercicio_id": "respiracion"}, "ana@itaca.mx", models.RolColaborador))
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec := httptest.NewRecorder()
	journal.Add(rec, authedRequest(t, http.MethodPost, "/api/journal",
		map[string]any{"emociones": []string{"Alegría"}, "intensidad": 3}, "ana@itaca.mx", models.RolColaborador))
	require.Equal(t, http.StatusCreated, rec.Code)

	body := map[string]any{
		"autoconocimiento":     4,
		"autorregulacion":      3,
		"motivacion":           5,
		"empatia":              4,
		"habilidades_sociales": 3,
	}
	rec = httptest.NewRecorder()
	assess.SubmitBrujula(rec, authedRequest(t, http.MethodPost, "/api/evaluaciones/brujula", body, "ana@itaca.mx", models.RolColaborador))
	require.Equal(t, http.StatusCreated, rec.Code)
	res := decodeJSON[assessmentResult](t, rec)
	assert.Equal(t, 3.8, res.Promedio)
	assert.Equal(t, "Evaluación IE guardada. Promedio: 3.8", res.Message)

	var row models.Brujula
	require.NoError(t, conn.Get(&row, `SELECT * FROM brujula_eval WHERE email='ana@itaca.mx'`))
	assert.Equal(t, 2, row.EjerciciosMes)
	assert.Equal(t, 1, row.JournalMes)
	assert.Equal(t, "Autorregulación", row.CompBaja)
	assert.Equal(t, "Motivación", row.CompAlta)

	// counters stay frozen after more activity
	rec = httptest.NewRecorder()
	journal.Add(rec, authedRequest(t, http.MethodPost, "/api/journal",
		map[string]any{"emociones": []string{"Calma"}}, "ana@itaca.mx", models.RolColaborador))
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NoError(t, conn.Get(&row, `SELECT * FROM brujula_eval WHERE email='ana@itaca.mx'`))
	assert.Equal(t, 1, row.JournalMes)
}

func TestBrujulaWholeNumberMessage(t *testing.T) {
	conn := testDatabase(t)
	resetDB(t, conn)
	seedUser(t, conn, "ana@itaca.mx", "Ana", seedOpts{})
	h := NewAssessmentHandler(conn)

	body := map[string]any{"autoconocimiento": 4, "autorregulacion": 4, "motivacion": 4, "empatia": 4, "habilidades_sociales": 4}
	rec := httptest.NewRecorder()
	h.SubmitBrujula(rec, authedRequest(t, http.MethodPost, "/api/evaluaciones/brujula", body, "ana@itaca.mx", models.RolColaborador))
	require.Equal(t, http.StatusCreated, rec.Code)
	res := decodeJSON[assessmentResult](t, rec)
	assert.Equal(t, 4.0, res.Promedio)
	assert.Equal(t, "Evaluación IE guardada. Promedio: 4.0", res.Message)
}

func TestBrujulaDuplicateMonth(t *testing.T) {
	conn := testDatabase(t)
	resetDB(t, conn)
	seedUser(t, conn, "ana@itaca.mx", "Ana", seedOpts{})
	h := NewAssessmentHandler(conn)

	body := map[string]any{"autoconocimiento": 3, "autorregulacion": 3, "motivacion": 3, "empatia": 3, "habilidades_sociales": 3}
	rec := httptest.NewRecorder()
	h.SubmitBrujula(rec, authedRequest(t, http.MethodPost, "/api/evaluaciones/brujula", body, "ana@itaca.mx", models.RolColaborador))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.SubmitBrujula(rec, authedRequest(t, http.MethodPost, "/api/evaluaciones/brujula", body, "ana@itaca.mx", models.RolColaborador))
	require.Equal(t, http.StatusConflict, rec.Code)
	dup := decodeJSON[result](t, rec)
	assert.Equal(t, "Ya evaluaste este mes.", dup.Message)
}

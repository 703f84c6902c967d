package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"itacaos/internal/db"
	"itacaos/internal/models"
)

// TempPassword is assigned to every account an admin creates or resets. The
// debe_cambiar_password flag forces a change on first login.
const TempPassword = "Itaca2026!"

type AdminHandler struct {
	db *sqlx.DB
}

func NewAdminHandler(database *sqlx.DB) *AdminHandler {
	return &AdminHandler{db: database}
}

// mustBeAdmin re-checks the role against the roster rather than trusting the
// token claim alone, so a demoted admin is locked out as soon as the row
// changes.
func (h *AdminHandler) mustBeAdmin(email string) (bool, error) {
	var rol string
	if err := h.db.QueryRowx(`SELECT rol FROM usuarios WHERE email=$1 AND estado=$2`,
		email, models.EstadoActivo).Scan(&rol); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return rol == models.RolAdmin, nil
}

func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) (string, bool) {
	email := currentEmail(r)
	ok, err := h.mustBeAdmin(email)
	if err != nil {
		http.Error(w, "could not verify role", http.StatusInternalServerError)
		return "", false
	}
	if !ok {
		http.Error(w, "admin only", http.StatusForbidden)
		return "", false
	}
	return email, true
}

type rosterUser struct {
	models.Usuario
	Puesto       *string `db:"puesto" json:"puesto,omitempty"`
	FechaIngreso *string `db:"fecha_ingreso" json:"fecha_ingreso,omitempty"`
}

// ListUsers returns the roster joined with profile data. Optional unidad and
// estado query parameters narrow the listing.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	query := `
		SELECT u.email, u.nombre, u.rol, u.estado, u.unidad, u.email_lider,
		       u.password, u.debe_cambiar_password, u.fecha_registro, u.ultimo_acceso,
		       i.puesto, i.fecha_ingreso
		FROM usuarios u
		LEFT JOIN identidad i ON i.email = u.email`
	clauses := []string{}
	args := []interface{}{}
	if unidad := r.URL.Query().Get("unidad"); unidad != "" {
		args = append(args, unidad)
		clauses = append(clauses, "u.unidad=$1")
	}
	if estado := r.URL.Query().Get("estado"); estado != "" {
		args = append(args, estado)
		clauses = append(clauses, "u.estado=$"+itoa(len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY u.nombre"

	out := []rosterUser{}
	if err := h.db.Select(&out, query, args...); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type addUserRequest struct {
	Email        string  `json:"email"`
	Nombre       string  `json:"nombre"`
	Rol          string  `json:"rol"`
	Unidad       *string `json:"unidad"`
	Puesto       *string `json:"puesto"`
	EmailLider   *string `json:"email_lider"`
	Telefono     *string `json:"telefono"`
	FechaIngreso *string `json:"fecha_ingreso"`
}

// AddUser registers an account with the temporary password. The roster row
// and its identidad record are created in one transaction so neither exists
// without the other.
func (h *AdminHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	adminEmail, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req addUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Nombre = strings.TrimSpace(req.Nombre)
	if req.Email == "" || req.Nombre == "" {
		writeJSON(w, http.StatusBadRequest, result{Success: false, Message: "Email y nombre son obligatorios."})
		return
	}
	if !strings.Contains(req.Email, "@") {
		writeJSON(w, http.StatusBadRequest, result{Success: false, Message: "Email inválido."})
		return
	}
	if req.Rol == "" {
		req.Rol = models.RolColaborador
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(TempPassword), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "could not hash password", http.StatusInternalServerError)
		return
	}

	tx, err := h.db.Beginx()
	if err != nil {
		http.Error(w, "could not start transaction", http.StatusInternalServerError)
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO usuarios (email, nombre, rol, estado, unidad, email_lider, password, debe_cambiar_password)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true)`,
		req.Email, req.Nombre, req.Rol, models.EstadoActivo, req.Unidad, req.EmailLider, string(hash))
	if err != nil {
		if db.IsUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, result{Success: false, Message: "Ya existe un usuario con ese email."})
			return
		}
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}
	_, err = tx.Exec(`
		INSERT INTO identidad (email, nombre, puesto, fecha_ingreso, rol, unidad, estado, telefono, email_lider)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		req.Email, req.Nombre, req.Puesto, req.FechaIngreso, req.Rol, req.Unidad,
		models.EstadoActivo, req.Telefono, req.EmailLider)
	if err != nil {
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit(); err != nil {
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}

	logActivity(h.db, adminEmail, "usuario_creado", req.Email, "admin")
	writeJSON(w, http.StatusCreated, result{Success: true, Message: "Usuario registrado. Contraseña temporal asignada."})
}

type updateUserRequest struct {
	Nombre     *string `json:"nombre"`
	Rol        *string `json:"rol"`
	Unidad     *string `json:"unidad"`
	Puesto     *string `json:"puesto"`
	EmailLider *string `json:"email_lider"`
}

// UpdateUser edits roster attributes. Changes to shared columns are applied
// to usuarios and identidad in the same transaction to keep the denormalized
// copies in sync.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	adminEmail, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	target := strings.ToLower(chi.URLParam(r, "email"))

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	tx, err := h.db.Beginx()
	if err != nil {
		http.Error(w, "could not start transaction", http.StatusInternalServerError)
		return
	}
	defer tx.Rollback()

	setU := []string{}
	argsU := []interface{}{}
	setI := []string{}
	argsI := []interface{}{}
	if req.Nombre != nil {
		argsU = append(argsU, *req.Nombre)
		setU = append(setU, "nombre=$"+itoa(len(argsU)))
		argsI = append(argsI, *req.Nombre)
		setI = append(setI, "nombre=$"+itoa(len(argsI)))
	}
	if req.Rol != nil {
		argsU = append(argsU, *req.Rol)
		setU = append(setU, "rol=$"+itoa(len(argsU)))
		argsI = append(argsI, *req.Rol)
		setI = append(setI, "rol=$"+itoa(len(argsI)))
	}
	if req.Unidad != nil {
		argsU = append(argsU, *req.Unidad)
		setU = append(setU, "unidad=$"+itoa(len(argsU)))
		argsI = append(argsI, *req.Unidad)
		setI = append(setI, "unidad=$"+itoa(len(argsI)))
	}
	if req.EmailLider != nil {
		argsU = append(argsU, *req.EmailLider)
		setU = append(setU, "email_lider=$"+itoa(len(argsU)))
		argsI = append(argsI, *req.EmailLider)
		setI = append(setI, "email_lider=$"+itoa(len(argsI)))
	}
	if req.Puesto != nil {
		argsI = append(argsI, *req.Puesto)
		setI = append(setI, "puesto=$"+itoa(len(argsI)))
	}
	if len(setU) == 0 && len(setI) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if len(setU) > 0 {
		argsU = append(argsU, target)
		res, err := tx.Exec("UPDATE usuarios SET "+strings.Join(setU, ", ")+" WHERE email=$"+itoa(len(argsU)), argsU...)
		if err != nil {
			http.Error(w, "could not update", http.StatusInternalServerError)
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
	}
	if len(setI) > 0 {
		setI = append(setI, "fecha_actualizacion=NOW()")
		argsI = append(argsI, target)
		if _, err := tx.Exec("UPDATE identidad SET "+strings.Join(setI, ", ")+" WHERE email=$"+itoa(len(argsI)), argsI...); err != nil {
			http.Error(w, "could not update", http.StatusInternalServerError)
			return
		}
	}
	if err := tx.Commit(); err != nil {
		http.Error(w, "could not update", http.StatusInternalServerError)
		return
	}

	logActivity(h.db, adminEmail, "usuario_actualizado", target, "admin")
	w.WriteHeader(http.StatusNoContent)
}

// setEstado flips estado on both tables; rows referencing the email are left
// untouched so history stays queryable.
func (h *AdminHandler) setEstado(w http.ResponseWriter, r *http.Request, estado, accion, msg string) {
	adminEmail, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	target := strings.ToLower(chi.URLParam(r, "email"))
	if target == adminEmail && estado == models.EstadoInactivo {
		writeJSON(w, http.StatusBadRequest, result{Success: false, Message: "No puedes desactivar tu propia cuenta."})
		return
	}

	tx, err := h.db.Beginx()
	if err != nil {
		http.Error(w, "could not start transaction", http.StatusInternalServerError)
		return
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE usuarios SET estado=$1 WHERE email=$2`, estado, target)
	if err != nil {
		http.Error(w, "could not update", http.StatusInternalServerError)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	if _, err := tx.Exec(`UPDATE identidad SET estado=$1, fecha_actualizacion=NOW() WHERE email=$2`, estado, target); err != nil {
		http.Error(w, "could not update", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit(); err != nil {
		http.Error(w, "could not update", http.StatusInternalServerError)
		return
	}

	logActivity(h.db, adminEmail, accion, target, "admin")
	writeJSON(w, http.StatusOK, result{Success: true, Message: msg})
}

func (h *AdminHandler) Desactivar(w http.ResponseWriter, r *http.Request) {
	h.setEstado(w, r, models.EstadoInactivo, "usuario_desactivado", "Usuario desactivado.")
}

func (h *AdminHandler) Reactivar(w http.ResponseWriter, r *http.Request) {
	h.setEstado(w, r, models.EstadoActivo, "usuario_reactivado", "Usuario reactivado.")
}

// ResetPassword puts the account back on the temporary password and forces a
// change at next login.
func (h *AdminHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	adminEmail, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	target := strings.ToLower(chi.URLParam(r, "email"))

	hash, err := bcrypt.GenerateFromPassword([]byte(TempPassword), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "could not hash password", http.StatusInternalServerError)
		return
	}
	res, err := h.db.Exec(`
		UPDATE usuarios SET password=$1, debe_cambiar_password=true
		WHERE email=$2`, string(hash), target)
	if err != nil {
		http.Error(w, "could not update", http.StatusInternalServerError)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	logActivity(h.db, adminEmail, "password_reseteado", target, "admin")
	writeJSON(w, http.StatusOK, result{Success: true, Message: "Contraseña temporal asignada."})
}

type unidadResumen struct {
	Unidad  string `db:"unidad" json:"unidad"`
	Total   int    `db:"total" json:"total"`
	Activos int    `db:"activos" json:"activos"`
	Lideres int    `db:"lideres" json:"lideres"`
}

type rolResumen struct {
	Rol     string `db:"rol" json:"rol"`
	Total   int    `db:"total" json:"total"`
	Activos int    `db:"activos" json:"activos"`
}

// Resumen breaks the roster down by unit and by role.
func (h *AdminHandler) Resumen(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	porUnidad := []unidadResumen{}
	err := h.db.Select(&porUnidad, `
		SELECT COALESCE(unidad, 'Sin unidad') AS unidad,
		       COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE estado='Activo') AS activos,
		       COUNT(*) FILTER (WHERE rol IN ('Líder', 'Coordinador')) AS lideres
		FROM usuarios
		GROUP BY COALESCE(unidad, 'Sin unidad')
		ORDER BY unidad`)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}

	porRol := []rolResumen{}
	err = h.db.Select(&porRol, `
		SELECT rol,
		       COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE estado='Activo') AS activos
		FROM usuarios
		GROUP BY rol
		ORDER BY rol`)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"por_unidad": porUnidad,
		"por_rol":    porRol,
	})
}

package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"itacaos/internal/models"
)

type AuthHandler struct {
	db        *sqlx.DB
	jwtSecret []byte
}

func NewAuthHandler(db *sqlx.DB, jwtSecret []byte) *AuthHandler {
	return &AuthHandler{db: db, jwtSecret: jwtSecret}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against the roster. Deactivated accounts cannot log in.
// The response carries debe_cambiar_password so the client can force the
// first-login password change before showing anything else.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	c.Email = strings.TrimSpace(strings.ToLower(c.Email))
	if c.Email == "" || c.Password == "" {
		http.Error(w, "email and password required", http.StatusBadRequest)
		return
	}

	var u models.Usuario
	err := h.db.Get(&u, `SELECT * FROM usuarios WHERE email=$1`, c.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "credenciales incorrectas", http.StatusUnauthorized)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if u.Estado != models.EstadoActivo {
		http.Error(w, "cuenta desactivada", http.StatusForbidden)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(c.Password)) != nil {
		http.Error(w, "credenciales incorrectas", http.StatusUnauthorized)
		return
	}

	if _, err := h.db.Exec(`UPDATE usuarios SET ultimo_acceso=NOW() WHERE email=$1`, u.Email); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	token, err := h.issueJWT(u.Email, u.Rol)
	if err != nil {
		http.Error(w, "could not issue token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token":                 token,
		"nombre":                u.Nombre,
		"rol":                   u.Rol,
		"debe_cambiar_password": u.DebeCambiarPassword,
	})
}

type changePasswordRequest struct {
	PasswordActual string `json:"password_actual"`
	PasswordNueva  string `json:"password_nueva"`
}

// ChangePassword replaces the caller's password and clears the first-login
// flag.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	email := currentEmail(r)

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if len(req.PasswordNueva) < 6 {
		writeJSON(w, http.StatusBadRequest, result{Success: false, Message: "La contraseña debe tener al menos 6 caracteres."})
		return
	}
	if req.PasswordNueva == req.PasswordActual {
		writeJSON(w, http.StatusBadRequest, result{Success: false, Message: "No puedes reutilizar la contraseña actual."})
		return
	}

	var current string
	if err := h.db.Get(&current, `SELECT password FROM usuarios WHERE email=$1`, email); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(current), []byte(req.PasswordActual)) != nil {
		writeJSON(w, http.StatusUnauthorized, result{Success: false, Message: "La contraseña actual no coincide."})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.PasswordNueva), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "could not hash password", http.StatusInternalServerError)
		return
	}
	if _, err := h.db.Exec(`UPDATE usuarios SET password=$1, debe_cambiar_password=false WHERE email=$2`,
		string(hashed), email); err != nil {
		http.Error(w, "could not update", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result{Success: true, Message: "Contraseña actualizada."})
}

func (h *AuthHandler) issueJWT(email, rol string) (string, error) {
	claims := jwt.MapClaims{
		"sub": email,
		"rol": rol,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.jwtSecret)
}

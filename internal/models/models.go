package models

import "time"

// Roles. Every request carries one via the auth token; Admin is additionally
// verified against the roster before admin operations run.
const (
	RolColaborador = "Colaborador"
	RolCoordinador = "Coordinador"
	RolLider       = "Líder"
	RolAdmin       = "Admin"
)

// Account status. Users are never hard-deleted; estado flips instead, and
// rows referencing a deactivated user's email stay queryable.
const (
	EstadoActivo   = "Activo"
	EstadoInactivo = "Inactivo"
)

type Usuario struct {
	Email               string     `db:"email" json:"email"`
	Nombre              string     `db:"nombre" json:"nombre"`
	Rol                 string     `db:"rol" json:"rol"`
	Estado              string     `db:"estado" json:"estado"`
	Unidad              *string    `db:"unidad" json:"unidad,omitempty"`
	EmailLider          *string    `db:"email_lider" json:"email_lider,omitempty"`
	Password            string     `db:"password" json:"-"` // bcrypt hash
	DebeCambiarPassword bool       `db:"debe_cambiar_password" json:"debe_cambiar_password"`
	FechaRegistro       time.Time  `db:"fecha_registro" json:"fecha_registro"`
	UltimoAcceso        *time.Time `db:"ultimo_acceso" json:"ultimo_acceso,omitempty"`
}

// Identidad is the one-to-one profile record for a user. rol/unidad/email_lider
// are denormalized copies kept for query convenience.
type Identidad struct {
	Email              string    `db:"email" json:"email"`
	Nombre             *string   `db:"nombre" json:"nombre,omitempty"`
	FotoURL            *string   `db:"foto_url" json:"foto_url,omitempty"`
	Puesto             *string   `db:"puesto" json:"puesto,omitempty"`
	FechaIngreso       *string   `db:"fecha_ingreso" json:"fecha_ingreso,omitempty"`
	Rol                *string   `db:"rol" json:"rol,omitempty"`
	Unidad             *string   `db:"unidad" json:"unidad,omitempty"`
	Estado             string    `db:"estado" json:"estado"`
	ArquetipoDisc      *string   `db:"arquetipo_disc" json:"arquetipo_disc,omitempty"`
	DiscD              int       `db:"disc_d" json:"disc_d"`
	DiscI              int       `db:"disc_i" json:"disc_i"`
	DiscS              int       `db:"disc_s" json:"disc_s"`
	DiscC              int       `db:"disc_c" json:"disc_c"`
	MetaTrascendente   *string   `db:"meta_trascendente" json:"meta_trascendente,omitempty"`
	FrasePersonal      *string   `db:"frase_personal" json:"frase_personal,omitempty"`
	Limitantes         *string   `db:"limitantes" json:"limitantes,omitempty"`
	Fortalezas         *string   `db:"fortalezas" json:"fortalezas,omitempty"`
	ProgresoMeta       int       `db:"progreso_meta" json:"progreso_meta"`
	Telefono           *string   `db:"telefono" json:"telefono,omitempty"`
	EmailLider         *string   `db:"email_lider" json:"email_lider,omitempty"`
	FechaActualizacion time.Time `db:"fecha_actualizacion" json:"fecha_actualizacion"`
}

type Checkin struct {
	CheckinID        string    `db:"checkin_id" json:"checkin_id"`
	Email            string    `db:"email" json:"email"`
	EstadoGeneral    string    `db:"estado_general" json:"estado_general"`
	NivelEstres      int       `db:"nivel_estres" json:"nivel_estres"`
	AreaPreocupacion string    `db:"area_preocupacion" json:"area_preocupacion"`
	Etiquetas        string    `db:"etiquetas" json:"etiquetas"`
	Comentario       string    `db:"comentario" json:"comentario"`
	Fecha            time.Time `db:"fecha" json:"fecha"`
	Semana           string    `db:"semana" json:"semana"`
	AlertaEnviada    bool      `db:"alerta_enviada" json:"alerta_enviada"`
}

type Faro struct {
	FaroID          string     `db:"faro_id" json:"faro_id"`
	EmailEmisor     string     `db:"email_emisor" json:"email_emisor"`
	NombreEmisor    string     `db:"nombre_emisor" json:"nombre_emisor"`
	EmailReceptor   string     `db:"email_receptor" json:"email_receptor"`
	NombreReceptor  string     `db:"nombre_receptor" json:"nombre_receptor"`
	TipoFaro        string     `db:"tipo_faro" json:"tipo_faro"`
	Pilar           string     `db:"pilar" json:"pilar"`
	Animal          string     `db:"animal" json:"animal"`
	Mensaje         string     `db:"mensaje" json:"mensaje"`
	FotoURL         string     `db:"foto_url" json:"foto_url"`
	FechaEnvio      time.Time  `db:"fecha_envio" json:"fecha_envio"`
	Estado          string     `db:"estado" json:"estado"`
	EmailAprobador  string     `db:"email_aprobador" json:"email_aprobador"`
	FechaAprobacion *time.Time `db:"fecha_aprobacion" json:"fecha_aprobacion,omitempty"`
	Celebraciones   int        `db:"celebraciones" json:"celebraciones"`
	Visible         bool       `db:"visible" json:"visible"`
}

type Notificacion struct {
	NotifID   string    `db:"notif_id" json:"notif_id"`
	EmailDest string    `db:"email_dest" json:"email_dest"`
	Tipo      string    `db:"tipo" json:"tipo"`
	Titulo    string    `db:"titulo" json:"titulo"`
	Mensaje   string    `db:"mensaje" json:"mensaje"`
	Fecha     time.Time `db:"fecha" json:"fecha"`
	Leida     bool      `db:"leida" json:"leida"`
	Prioridad string    `db:"prioridad" json:"prioridad"`
}

type Logro struct {
	LogroID     string    `db:"logro_id" json:"logro_id"`
	Email       string    `db:"email" json:"email"`
	BadgeID     string    `db:"badge_id" json:"badge_id"`
	NombreBadge string    `db:"nombre_badge" json:"nombre_badge"`
	Descripcion string    `db:"descripcion" json:"descripcion"`
	Puntos      int       `db:"puntos" json:"puntos"`
	Categoria   string    `db:"categoria" json:"categoria"`
	Fecha       time.Time `db:"fecha" json:"fecha"`
	Icono       string    `db:"icono" json:"icono"`
}

type Hexagono struct {
	EvalID           string    `db:"eval_id" json:"eval_id"`
	Email            string    `db:"email" json:"email"`
	Periodo          string    `db:"periodo" json:"periodo"`
	Fecha            time.Time `db:"fecha" json:"fecha"`
	Vision           int       `db:"vision" json:"vision"`
	Planificacion    int       `db:"planificacion" json:"planificacion"`
	Encaje           int       `db:"encaje" json:"encaje"`
	Entrenamiento    int       `db:"entrenamiento" json:"entrenamiento"`
	EvaluacionMejora int       `db:"evaluacion_mejora" json:"evaluacion_mejora"`
	Reconocimiento   int       `db:"reconocimiento" json:"reconocimiento"`
	Promedio         float64   `db:"promedio" json:"promedio"`
	Reflexion        string    `db:"reflexion" json:"reflexion"`
	DimBaja          string    `db:"dim_baja" json:"dim_baja"`
	DimAlta          string    `db:"dim_alta" json:"dim_alta"`
}

// Brujula carries two counters frozen at submission time; they are never
// recomputed afterwards.
type Brujula struct {
	BrujulaID           string    `db:"brujula_id" json:"brujula_id"`
	Email               string    `db:"email" json:"email"`
	Periodo             string    `db:"periodo" json:"periodo"`
	Fecha               time.Time `db:"fecha" json:"fecha"`
	Autoconocimiento    int       `db:"autoconocimiento" json:"autoconocimiento"`
	Autorregulacion     int       `db:"autorregulacion" json:"autorregulacion"`
	Motivacion          int       `db:"motivacion" json:"motivacion"`
	Empatia             int       `db:"empatia" json:"empatia"`
	HabilidadesSociales int       `db:"habilidades_sociales" json:"habilidades_sociales"`
	Promedio            float64   `db:"promedio" json:"promedio"`
	CompBaja            string    `db:"comp_baja" json:"comp_baja"`
	CompAlta            string    `db:"comp_alta" json:"comp_alta"`
	Reflexion           string    `db:"reflexion" json:"reflexion"`
	EjerciciosMes       int       `db:"ejercicios_mes" json:"ejercicios_mes"`
	JournalMes          int       `db:"journal_mes" json:"journal_mes"`
}

type JournalEntry struct {
	JournalID   string    `db:"journal_id" json:"journal_id"`
	Email       string    `db:"email" json:"email"`
	Fecha       time.Time `db:"fecha" json:"fecha"`
	Emociones   string    `db:"emociones" json:"emociones"`
	Intensidad  int       `db:"intensidad" json:"intensidad"`
	TriggerText string    `db:"trigger_text" json:"trigger_text"`
	Pensamiento string    `db:"pensamiento" json:"pensamiento"`
	Reflexion   string    `db:"reflexion" json:"reflexion"`
	Estrategia  string    `db:"estrategia" json:"estrategia"`
	Efectividad int       `db:"efectividad" json:"efectividad"`
	Contexto    string    `db:"contexto" json:"contexto"`
	DiaSemana   string    `db:"dia_semana" json:"dia_semana"`
	HoraDia     string    `db:"hora_dia" json:"hora_dia"`
}

type EjercicioLog struct {
	LogID         string    `db:"log_id" json:"log_id"`
	Email         string    `db:"email" json:"email"`
	EjercicioID   string    `db:"ejercicio_id" json:"ejercicio_id"`
	Fecha         time.Time `db:"fecha" json:"fecha"`
	DuracionReal  int       `db:"duracion_real" json:"duracion_real"`
	Efectividad   int       `db:"efectividad" json:"efectividad"`
	EstadoAntes   string    `db:"estado_antes" json:"estado_antes"`
	EstadoDespues string    `db:"estado_despues" json:"estado_despues"`
	Notas         string    `db:"notas" json:"notas"`
	Competencia   string    `db:"competencia" json:"competencia"`
}

type Meta struct {
	MetaID        string    `db:"meta_id" json:"meta_id"`
	Email         string    `db:"email" json:"email"`
	Tipo          string    `db:"tipo" json:"tipo"`
	Periodo       string    `db:"periodo" json:"periodo"`
	Objetivo      string    `db:"objetivo" json:"objetivo"`
	KR1           string    `db:"kr1" json:"kr1"`
	KR2           string    `db:"kr2" json:"kr2"`
	KR3           string    `db:"kr3" json:"kr3"`
	Progreso      int       `db:"progreso" json:"progreso"`
	Estado        string    `db:"estado" json:"estado"`
	FechaCreacion time.Time `db:"fecha_creacion" json:"fecha_creacion"`
	FechaLimite   *string   `db:"fecha_limite" json:"fecha_limite,omitempty"`
}

type PlanAccion struct {
	PlanID        string    `db:"plan_id" json:"plan_id"`
	Email         string    `db:"email" json:"email"`
	Periodo       string    `db:"periodo" json:"periodo"`
	Dimension     string    `db:"dimension" json:"dimension"`
	PuntajeActual int       `db:"puntaje_actual" json:"puntaje_actual"`
	PuntajeMeta   int       `db:"puntaje_meta" json:"puntaje_meta"`
	Accion1       string    `db:"accion1" json:"accion1"`
	Accion2       string    `db:"accion2" json:"accion2"`
	Accion3       string    `db:"accion3" json:"accion3"`
	FechaCreacion time.Time `db:"fecha_creacion" json:"fecha_creacion"`
	FechaLimite   *string   `db:"fecha_limite" json:"fecha_limite,omitempty"`
	Estado        string    `db:"estado" json:"estado"`
}

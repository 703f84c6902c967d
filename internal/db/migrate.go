package db

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// RunMigrations bootstraps the schema. Every table is keyed by the
// deterministic identifier its writer derives; the extra unique index on
// checkins (email, semana) is what makes the one-check-in-per-week rule
// atomic under concurrent submitters. Monthly evaluations get that for free
// from their email_periodo primary keys.
func RunMigrations(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS usuarios (
    email TEXT PRIMARY KEY,
    nombre TEXT NOT NULL,
    rol TEXT NOT NULL DEFAULT 'Colaborador',
    estado TEXT NOT NULL DEFAULT 'Activo',
    unidad TEXT,
    email_lider TEXT,
    password TEXT NOT NULL,
    debe_cambiar_password BOOLEAN NOT NULL DEFAULT true,
    fecha_registro TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    ultimo_acceso TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS identidad (
    email TEXT PRIMARY KEY,
    nombre TEXT,
    foto_url TEXT,
    puesto TEXT,
    fecha_ingreso TEXT,
    rol TEXT,
    unidad TEXT,
    estado TEXT NOT NULL DEFAULT 'Activo',
    arquetipo_disc TEXT,
    disc_d INTEGER NOT NULL DEFAULT 0,
    disc_i INTEGER NOT NULL DEFAULT 0,
    disc_s INTEGER NOT NULL DEFAULT 0,
    disc_c INTEGER NOT NULL DEFAULT 0,
    meta_trascendente TEXT,
    frase_personal TEXT,
    limitantes TEXT,
    fortalezas TEXT,
    progreso_meta INTEGER NOT NULL DEFAULT 0,
    telefono TEXT,
    email_lider TEXT,
    fecha_actualizacion TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS checkins (
    checkin_id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    estado_general TEXT NOT NULL,
    nivel_estres INTEGER NOT NULL,
    area_preocupacion TEXT NOT NULL DEFAULT '',
    etiquetas TEXT NOT NULL DEFAULT '',
    comentario TEXT NOT NULL DEFAULT '',
    fecha TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    semana TEXT NOT NULL,
    alerta_enviada BOOLEAN NOT NULL DEFAULT false,
    UNIQUE (email, semana)
);

CREATE TABLE IF NOT EXISTS faros (
    faro_id TEXT PRIMARY KEY,
    email_emisor TEXT NOT NULL,
    nombre_emisor TEXT NOT NULL,
    email_receptor TEXT NOT NULL,
    nombre_receptor TEXT NOT NULL,
    tipo_faro TEXT NOT NULL,
    pilar TEXT NOT NULL,
    animal TEXT NOT NULL,
    mensaje TEXT NOT NULL DEFAULT '',
    foto_url TEXT NOT NULL DEFAULT '',
    fecha_envio TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    estado TEXT NOT NULL DEFAULT 'Aprobado',
    email_aprobador TEXT NOT NULL DEFAULT '',
    fecha_aprobacion TIMESTAMPTZ,
    celebraciones INTEGER NOT NULL DEFAULT 0,
    visible BOOLEAN NOT NULL DEFAULT true
);

CREATE TABLE IF NOT EXISTS notificaciones (
    notif_id TEXT PRIMARY KEY,
    email_dest TEXT NOT NULL,
    tipo TEXT NOT NULL,
    titulo TEXT NOT NULL,
    mensaje TEXT NOT NULL,
    fecha TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    leida BOOLEAN NOT NULL DEFAULT false,
    prioridad TEXT NOT NULL DEFAULT 'Media'
);

CREATE TABLE IF NOT EXISTS logros (
    logro_id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    badge_id TEXT NOT NULL,
    nombre_badge TEXT NOT NULL,
    descripcion TEXT NOT NULL DEFAULT '',
    puntos INTEGER NOT NULL DEFAULT 0,
    categoria TEXT NOT NULL DEFAULT '',
    fecha TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    icono TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS hexagono (
    eval_id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    periodo TEXT NOT NULL,
    fecha TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    vision INTEGER NOT NULL,
    planificacion INTEGER NOT NULL,
    encaje INTEGER NOT NULL,
    entrenamiento INTEGER NOT NULL,
    evaluacion_mejora INTEGER NOT NULL,
    reconocimiento INTEGER NOT NULL,
    promedio DOUBLE PRECISION NOT NULL,
    reflexion TEXT NOT NULL DEFAULT '',
    dim_baja TEXT NOT NULL,
    dim_alta TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS journal (
    journal_id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    fecha TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    emociones TEXT NOT NULL DEFAULT '',
    intensidad INTEGER NOT NULL DEFAULT 0,
    trigger_text TEXT NOT NULL DEFAULT '',
    pensamiento TEXT NOT NULL DEFAULT '',
    reflexion TEXT NOT NULL DEFAULT '',
    estrategia TEXT NOT NULL DEFAULT '',
    efectividad INTEGER NOT NULL DEFAULT 0,
    contexto TEXT NOT NULL DEFAULT '',
    dia_semana TEXT NOT NULL,
    hora_dia TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS brujula_eval (
    brujula_id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    periodo TEXT NOT NULL,
    fecha TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    autoconocimiento INTEGER NOT NULL,
    autorregulacion INTEGER NOT NULL,
    motivacion INTEGER NOT NULL,
    empatia INTEGER NOT NULL,
    habilidades_sociales INTEGER NOT NULL,
    promedio DOUBLE PRECISION NOT NULL,
    comp_baja TEXT NOT NULL,
    comp_alta TEXT NOT NULL,
    reflexion TEXT NOT NULL DEFAULT '',
    ejercicios_mes INTEGER NOT NULL DEFAULT 0,
    journal_mes INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS ejercicios_log (
    log_id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    ejercicio_id TEXT NOT NULL,
    fecha TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    duracion_real INTEGER NOT NULL DEFAULT 0,
    efectividad INTEGER NOT NULL DEFAULT 0,
    estado_antes TEXT NOT NULL DEFAULT '',
    estado_despues TEXT NOT NULL DEFAULT '',
    notas TEXT NOT NULL DEFAULT '',
    competencia TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS metas (
    meta_id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    tipo TEXT NOT NULL DEFAULT '',
    periodo TEXT NOT NULL DEFAULT '',
    objetivo TEXT NOT NULL DEFAULT '',
    kr1 TEXT NOT NULL DEFAULT '',
    kr2 TEXT NOT NULL DEFAULT '',
    kr3 TEXT NOT NULL DEFAULT '',
    progreso INTEGER NOT NULL DEFAULT 0,
    estado TEXT NOT NULL DEFAULT 'Pendiente',
    fecha_creacion TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    fecha_limite TEXT
);

CREATE TABLE IF NOT EXISTS planes_accion (
    plan_id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    periodo TEXT NOT NULL DEFAULT '',
    dimension TEXT NOT NULL DEFAULT '',
    puntaje_actual INTEGER NOT NULL DEFAULT 0,
    puntaje_meta INTEGER NOT NULL DEFAULT 0,
    accion1 TEXT NOT NULL DEFAULT '',
    accion2 TEXT NOT NULL DEFAULT '',
    accion3 TEXT NOT NULL DEFAULT '',
    fecha_creacion TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    fecha_limite TEXT,
    estado TEXT NOT NULL DEFAULT 'Pendiente'
);

CREATE TABLE IF NOT EXISTS activity_log (
    log_id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    accion TEXT NOT NULL,
    detalle TEXT NOT NULL DEFAULT '',
    fecha TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    modulo TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_checkins_email_fecha ON checkins (email, fecha DESC);
CREATE INDEX IF NOT EXISTS idx_checkins_fecha ON checkins (fecha);
CREATE INDEX IF NOT EXISTS idx_faros_receptor ON faros (email_receptor, fecha_envio DESC);
CREATE INDEX IF NOT EXISTS idx_faros_emisor ON faros (email_emisor, fecha_envio DESC);
CREATE INDEX IF NOT EXISTS idx_notificaciones_dest ON notificaciones (email_dest, fecha DESC);
CREATE INDEX IF NOT EXISTS idx_logros_email ON logros (email);
CREATE INDEX IF NOT EXISTS idx_hexagono_email ON hexagono (email, periodo DESC);
CREATE INDEX IF NOT EXISTS idx_brujula_email ON brujula_eval (email, periodo DESC);
CREATE INDEX IF NOT EXISTS idx_journal_email ON journal (email, fecha DESC);
`
	_, err := db.ExecContext(context.Background(), schema)
	return err
}

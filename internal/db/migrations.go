package db

import (
	"context"
	"database/sql"
	"fmt"
)

var migrationStatements = []string{
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'estado_contrato') THEN
			CREATE TYPE estado_contrato AS ENUM ('ABIERTO', 'EN_PRODUCCION', 'FINALIZADO', 'INACTIVO');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS terceros (
		id BIGSERIAL PRIMARY KEY,
		nit VARCHAR(32) NOT NULL,
		nombre VARCHAR(255) NOT NULL,
		telefono VARCHAR(64),
		correo VARCHAR(255),
		direccion VARCHAR(255)
	);`,
	`CREATE TABLE IF NOT EXISTS contratos (
		id BIGSERIAL PRIMARY KEY,
		no_contrato VARCHAR(64) NOT NULL,
		id_tercero BIGINT NOT NULL REFERENCES terceros(id),
		fecha_inicial DATE NOT NULL,
		fecha_final DATE NOT NULL,
		fecha_ejecucion DATE,
		no_ppl INTEGER NOT NULL DEFAULT 0,
		no_servicios INTEGER NOT NULL DEFAULT 0,
		no_ciclos INTEGER NOT NULL DEFAULT 0,
		valor NUMERIC(18,2) NOT NULL DEFAULT 0,
		estado estado_contrato NOT NULL DEFAULT 'ABIERTO',
		clausulas TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_contratos_no_contrato ON contratos (no_contrato);`,
	`CREATE TABLE IF NOT EXISTS zonas (
		id BIGSERIAL PRIMARY KEY,
		codigo VARCHAR(32) NOT NULL,
		nombre VARCHAR(255) NOT NULL,
		no_ppl INTEGER NOT NULL DEFAULT 0
	);`,
	`CREATE TABLE IF NOT EXISTS zonas_contrato (
		id BIGSERIAL PRIMARY KEY,
		id_contrato BIGINT NOT NULL REFERENCES contratos(id),
		id_zona BIGINT NOT NULL REFERENCES zonas(id),
		UNIQUE (id_contrato, id_zona)
	);`,
	`CREATE TABLE IF NOT EXISTS unidades_servicio (
		id BIGSERIAL PRIMARY KEY,
		nombre VARCHAR(255) NOT NULL,
		no_ppl INTEGER NOT NULL DEFAULT 0,
		id_zona BIGINT REFERENCES zonas(id)
	);`,
	`CREATE TABLE IF NOT EXISTS productos (
		id BIGSERIAL PRIMARY KEY,
		nombre VARCHAR(255) NOT NULL,
		codigo VARCHAR(64) NOT NULL,
		categoria VARCHAR(128),
		sublinea VARCHAR(128),
		componente_menu VARCHAR(128),
		clase_servicio VARCHAR(32)
	);`,
	`CREATE TABLE IF NOT EXISTS productos_unidad (
		id BIGSERIAL PRIMARY KEY,
		id_producto BIGINT NOT NULL REFERENCES productos(id),
		id_unidad_servicio BIGINT NOT NULL REFERENCES unidades_servicio(id),
		UNIQUE (id_producto, id_unidad_servicio)
	);`,
	`CREATE TABLE IF NOT EXISTS productos_asignados (
		id BIGSERIAL PRIMARY KEY,
		id_producto_unidad BIGINT NOT NULL REFERENCES productos_unidad(id),
		id_contrato BIGINT NOT NULL REFERENCES contratos(id),
		id_unidad_servicio BIGINT NOT NULL REFERENCES unidades_servicio(id),
		estado BOOLEAN NOT NULL DEFAULT TRUE
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_productos_asignados
		ON productos_asignados (id_producto_unidad, id_contrato, id_unidad_servicio);`,
	`CREATE INDEX IF NOT EXISTS idx_productos_asignados_unidad
		ON productos_asignados (id_contrato, id_unidad_servicio);`,
	`CREATE TABLE IF NOT EXISTS minutas (
		id BIGSERIAL PRIMARY KEY,
		id_contrato BIGINT NOT NULL REFERENCES contratos(id),
		id_zona BIGINT NOT NULL REFERENCES zonas(id),
		id_producto BIGINT NOT NULL REFERENCES productos(id),
		fecha DATE NOT NULL,
		clase_servicio VARCHAR(32) NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_minutas_contrato_fecha ON minutas (id_contrato, fecha);`,
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrationStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

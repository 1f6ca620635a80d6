package entity

import "time"

// OrdenTrabajo representa una unidad de trabajo en terreno identificada por un
// código de negocio globalmente único. Pertenece a exactamente una empresa externa.
type OrdenTrabajo struct {
	ID        int64
	UUID      string
	Codigo    string
	IDEmpresa int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Active    bool
}

package entity

import "time"

// EmpresaExterna representa una empresa contratista de servicio en terreno (tenant).
// NombreTOA es el código corto que aparece embebido en el campo Técnico de los
// reportes TOA; también prefija los códigos de orden de trabajo.
type EmpresaExterna struct {
	ID        int64
	UUID      string
	Nombre    string
	NombreTOA string
	RUT       string
	CreatedAt time.Time
	UpdatedAt time.Time
	Active    bool
}

package entity

import "time"

// TecnicoSupervisor asocia un técnico en terreno (nombre + RUT) con su
// supervisor, dentro de una empresa externa.
type TecnicoSupervisor struct {
	ID               int64
	UUID             string
	NombreTecnico    string
	RutTecnico       string
	NombreSupervisor string
	IDEmpresa        int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Active           bool
}

package dto

import "time"

// TecnicoItem un técnico dentro del formulario de alta masiva.
type TecnicoItem struct {
	NombreTecnico    string `json:"nombre_tecnico" form:"nombre_tecnico"`
	RutTecnico       string `json:"rut_tecnico" form:"rut_tecnico"`
	NombreSupervisor string `json:"nombre_supervisor" form:"nombre_supervisor"`
}

// AddTecnicosRequest alta masiva de técnicos para la empresa del usuario.
type AddTecnicosRequest struct {
	Tecnicos []TecnicoItem `json:"tecnicos"`
}

// AddTecnicosResult resultado de la creación masiva.
type AddTecnicosResult struct {
	Message      string  `json:"message"`
	CreatedCount int     `json:"created_count"`
	CreatedIDs   []int64 `json:"created_ids"`
	TotalCount   int     `json:"total_count"`
}

// TecnicoResponse representación de un técnico/supervisor.
type TecnicoResponse struct {
	ID               int64     `json:"id"`
	NombreTecnico    string    `json:"nombre_tecnico"`
	RutTecnico       string    `json:"rut_tecnico"`
	NombreSupervisor string    `json:"nombre_supervisor"`
	IDEmpresa        int64     `json:"id_empresa"`
	CreatedAt        time.Time `json:"created_at"`
}

// TecnicosEmpresaResponse técnicos de la empresa del usuario.
type TecnicosEmpresaResponse struct {
	EmpresaID     int64             `json:"empresa_id"`
	EmpresaNombre string            `json:"empresa_nombre"`
	Tecnicos      []TecnicoResponse `json:"tecnicos"`
}

// TecnicoDumpResponse dump completo para la API de lectura (PowerBI).
type TecnicoDumpResponse struct {
	TecnicosSupervisores []TecnicoResponse `json:"tecnicos_supervisores"`
	Total                int               `json:"total"`
}

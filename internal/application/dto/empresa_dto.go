package dto

import "time"

// CreateEmpresaRequest alta de una empresa externa (import o API).
type CreateEmpresaRequest struct {
	Nombre    string `json:"nombre"`
	NombreTOA string `json:"nombre_toa"`
	RUT       string `json:"rut"`
}

// EmpresaResponse representación de una empresa externa.
type EmpresaResponse struct {
	ID        int64     `json:"id"`
	UUID      string    `json:"uuid"`
	Nombre    string    `json:"nombre"`
	NombreTOA string    `json:"nombre_toa"`
	RUT       string    `json:"rut"`
	CreatedAt time.Time `json:"created_at"`
}

// EmpresaListResponse listado de empresas externas.
type EmpresaListResponse struct {
	Empresas []EmpresaResponse `json:"empresas"`
	Total    int               `json:"total"`
}

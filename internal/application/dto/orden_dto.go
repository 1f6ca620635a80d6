package dto

import "time"

// OrdenBulkItem un elemento del lote de inserción masiva de ordenes de trabajo.
type OrdenBulkItem struct {
	IDEmpresa int64  `json:"id_empresa"`
	Codigo    string `json:"codigo"`
}

// OrdenBulkResult resultado estructurado de la inserción masiva.
// Inserted: códigos nuevos; NotInserted: códigos que ya existían (conflicto);
// Errors: items rechazados en validación, identificados por código o posición.
type OrdenBulkResult struct {
	Inserted    []string `json:"inserted"`
	NotInserted []string `json:"not_inserted"`
	Errors      []string `json:"errors"`
}

// OrdenResponse representación de una orden de trabajo.
type OrdenResponse struct {
	ID        int64     `json:"id"`
	Codigo    string    `json:"codigo"`
	IDEmpresa int64     `json:"id_empresa"`
	CreatedAt time.Time `json:"created_at"`
}

// OrdenListResponse listado completo de ordenes (API de lectura).
type OrdenListResponse struct {
	OrdenesTrabajo []OrdenResponse `json:"ordenes_trabajo"`
	Total          int             `json:"total"`
}

package dto

// RegistroHistoria es el registro tal como llega en los exports TOA por zona.
// Las claves JSON reproducen los encabezados del export (texto libre, con
// acentos y espacios). Un campo ausente o null decodifica a cadena vacía.
type RegistroHistoria struct {
	OrdenDeTrabajo           string `json:"Orden_de_Trabajo"`
	Tecnico                  string `json:"Técnico"`
	CoordX                   string `json:"Coord_X"`
	CoordY                   string `json:"Coord_Y"`
	Duracion                 string `json:"Duración"`
	Estado                   string `json:"Estado"`
	Fecha                    string `json:"Fecha"`
	FlagConsultaVecino       string `json:"Flag Consulta Vecino"`
	FlagEstadoAprovision     string `json:"Flag Estado Aprovisión"`
	FlagFallasMasivas        string `json:"Flag Fallas Masivas"`
	FlagMateriales           string `json:"Flag Materiales"`
	FlagNiveles              string `json:"Flag Niveles"`
	HoraFlagEstadoAprovision string `json:"Hora Flag Estado Aprovisión"`
	HoraFlagFallasMasivas    string `json:"Hora Flag Fallas Masivas"`
	HoraFlagMateriales       string `json:"Hora Flag Materiales"`
	HoraFlagNiveles          string `json:"Hora Flag Niveles"`
	Inicio                   string `json:"Inicio"`
	IntervencionNeutra       string `json:"Intervención neutra"`
	NotasConsultaVecino      string `json:"Notas Consulta Vecino"`
	NotasConsultaVecinoUlt   string `json:"Notas Consulta Vecino ultimo"`
	QRDrop                   string `json:"QR DROP"`
	RutTecnico               string `json:"Rut_tecnico"`
	TipoRedProducto          string `json:"Tipo red producto"`
	HoraUltimaVecino         string `json:"hora ultima vecino"`
	HoraQR                   string `json:"hora_QR"`
	TipoActividad            string `json:"tipo_actividad"`
	ZonaDeTrabajo            string `json:"Zona de trabajo"`
}

// HistoriaImportResult respuesta de la importación por zona.
type HistoriaImportResult struct {
	Message       string             `json:"message"`
	Procesadas    int                `json:"procesadas"`
	NoIngresadas  []RegistroHistoria `json:"no_ingresadas"`
	TotalRecibido int                `json:"total_recibido"`
}

package entity

import "time"

// Zona es la partición geográfica de los lotes de historia TOA.
type Zona string

// Zonas conocidas (valores persistidos).
const (
	ZonaSur           Zona = "sur"
	ZonaNorte         Zona = "norte"
	ZonaCentro        Zona = "centro"
	ZonaMetropolitana Zona = "metropolitana"
)

// ParseZona acepta el nombre persistido o su alias en inglés usado en las URLs
// de importación. Devuelve "" si la zona no es válida.
func ParseZona(s string) Zona {
	switch s {
	case "sur", "south":
		return ZonaSur
	case "norte", "north":
		return ZonaNorte
	case "centro", "center":
		return ZonaCentro
	case "metropolitana", "metro":
		return ZonaMetropolitana
	}
	return ""
}

// HistoriaOT es un registro desnormalizado de actividad en terreno importado
// desde los exports TOA. Los timestamps y flags llegan como texto libre y se
// almacenan tal cual; solo zona y empresa tienen significado estructural.
type HistoriaOT struct {
	ID                       int64
	UUID                     string
	Zona                     Zona
	Empresa                  string // nombre_toa de la empresa asignada por el matcher
	OrdenDeTrabajo           string
	Tecnico                  string
	CoordX                   string
	CoordY                   string
	Duracion                 string
	Estado                   string
	Fecha                    string
	FlagConsultaVecino       string
	FlagEstadoAprovision     string
	FlagFallasMasivas        string
	FlagMateriales           string
	FlagNiveles              string
	HoraFlagEstadoAprovision string
	HoraFlagFallasMasivas    string
	HoraFlagMateriales       string
	HoraFlagNiveles          string
	Inicio                   string
	IntervencionNeutra       string
	NotasConsultaVecino      string
	NotasConsultaVecinoUlt   string
	QRDrop                   string
	RutTecnico               string
	TipoRedProducto          string
	HoraUltimaVecino         string
	HoraQR                   string
	TipoActividad            string
	ZonaDeTrabajo            string
	CreatedAt                time.Time
	UpdatedAt                time.Time
	Active                   bool
}

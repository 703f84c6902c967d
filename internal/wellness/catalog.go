package wellness

// FaroType pairs a recognition type with its fixed cultural pillar and emblem
// animal.
type FaroType struct {
	Pilar  string
	Animal string
}

// The catalog is closed: recognition types cannot be created at runtime, and
// a submission with an unknown type is rejected at the boundary.
var tiposFaro = map[string]FaroType{
	"Faro de Valor":   {Pilar: "ITACTIVIDAD", Animal: "Ardilla"},
	"Faro de Aliento": {Pilar: "Muro de Confianza", Animal: "Ganso"},
	"Faro de Guía":    {Pilar: "+1 Sí Importa", Animal: "Castor"},
}

// ResolveFaro returns the catalog entry for tipo. The second return is false
// for unknown types.
func ResolveFaro(tipo string) (FaroType, bool) {
	ft, ok := tiposFaro[tipo]
	return ft, ok
}

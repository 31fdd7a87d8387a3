// Package licencias serves the license-type catalog. The four types are
// fixed; administrators may only reword the presentation fields, and an
// overlay keeps those edits without touching the base catalog.
package licencias

// LicenseType is a bookable license category as shown to the citizen.
type LicenseType struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Icon         string   `json:"icon"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
}

var baseCatalog = []LicenseType{
	{
		ID:          "motocicleta",
		Name:        "Motocicleta",
		Icon:        "motorcycle",
		Description: "Licencia para conducir motocicletas y motonetas.",
		Requirements: []string{
			"Mayor de 18 años",
			"Identificación oficial vigente",
			"Comprobante de domicilio",
		},
	},
	{
		ID:          "particular",
		Name:        "Automóvil particular",
		Icon:        "car",
		Description: "Licencia para vehículos particulares de hasta 9 pasajeros.",
		Requirements: []string{
			"Mayor de 18 años",
			"Identificación oficial vigente",
			"Comprobante de domicilio",
		},
	},
	{
		ID:          "publico",
		Name:        "Transporte público",
		Icon:        "bus",
		Description: "Licencia para unidades de transporte público de pasajeros.",
		Requirements: []string{
			"Mayor de 21 años",
			"Licencia particular con 2 años de antigüedad",
			"Examen médico vigente",
			"Carta de no antecedentes penales",
		},
	},
	{
		ID:          "carga",
		Name:        "Transporte de carga",
		Icon:        "truck",
		Description: "Licencia para vehículos de carga y tractocamiones.",
		Requirements: []string{
			"Mayor de 21 años",
			"Licencia particular con 2 años de antigüedad",
			"Examen médico vigente",
		},
	},
}

// Catalog returns a copy of the base license-type catalog. Requirements
// are copied too so no caller holds a slice into the shipped data.
func Catalog() []LicenseType {
	out := make([]LicenseType, len(baseCatalog))
	copy(out, baseCatalog)
	for i := range out {
		out[i].Requirements = append([]string(nil), out[i].Requirements...)
	}
	return out
}

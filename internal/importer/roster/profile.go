package roster

// nameMode determines how the client name is extracted from a row.
type nameMode int

const (
	// nameSplit means separate first and last name columns.
	nameSplit nameMode = iota
	// nameFull means one combined column ("Juan Carlos Pérez").
	nameFull
)

// Profile describes the column layout of a roster export. Optional columns
// are looked up leniently; only the name and phone columns must be present.
type Profile struct {
	Name       string
	NameMode   nameMode
	FirstCol   string // used when NameMode == nameSplit
	LastCol    string // used when NameMode == nameSplit
	FullCol    string // used when NameMode == nameFull
	PhoneCol   string
	EmailCol   string
	AddressCol string
	CityCol    string
	StateCol   string
	ZipCol     string
	DNICol     string
	RefCol     string
	NotesCol   string
}

func (p Profile) requiredCols() []string {
	cols := []string{p.PhoneCol}

	switch p.NameMode {
	case nameSplit:
		cols = append(cols, p.FirstCol, p.LastCol)
	case nameFull:
		cols = append(cols, p.FullCol)
	}

	return cols
}

// profiles is the ordered list of roster layouts to try during auto-detection.
// More specific profiles come first to avoid false matches.
var profiles = []Profile{
	{
		Name:       "planilla",
		NameMode:   nameSplit,
		FirstCol:   "Nombre",
		LastCol:    "Apellido",
		PhoneCol:   "Teléfono",
		EmailCol:   "Email",
		AddressCol: "Dirección",
		CityCol:    "Ciudad",
		StateCol:   "Provincia",
		ZipCol:     "CP",
		DNICol:     "DNI",
		RefCol:     "Medio de referencia",
		NotesCol:   "Notas",
	},
	{
		Name:     "agenda",
		NameMode: nameFull,
		FullCol:  "Cliente",
		PhoneCol: "Teléfono",
		EmailCol: "Email",
		CityCol:  "Ciudad",
		DNICol:   "DNI",
	},
}

package entity

// Choice par valor/etiqueta para enumeraciones cerradas (selects de formularios, exportaciones).
type Choice struct {
	Value string
	Label string
}

// LabelOf devuelve la etiqueta de value dentro de choices, o value si no existe.
func LabelOf(choices []Choice, value string) string {
	for _, c := range choices {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}

// IsChoice indica si value pertenece a choices.
func IsChoice(choices []Choice, value string) bool {
	for _, c := range choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

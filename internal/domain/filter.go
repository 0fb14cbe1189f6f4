package domain

// AllOption é o rótulo exibido para "sem filtro" nos seletores
const AllOption = "All"

// FilterSpec define os filtros de igualdade opcionais.
// Um campo nil significa que a dimensão não é filtrada.
type FilterSpec struct {
	Label  *string `json:"label,omitempty"`
	Period *string `json:"period,omitempty"`
}

// NewFilterSpec monta um FilterSpec a partir dos valores selecionados; string vazia não filtra
func NewFilterSpec(label, period string) FilterSpec {
	var filter FilterSpec
	if label != "" {
		filter.Label = &label
	}
	if period != "" {
		filter.Period = &period
	}
	return filter
}

func (f FilterSpec) Matches(r Record) bool {
	if f.Label != nil && r.ReportingLabel != *f.Label {
		return false
	}
	if f.Period != nil && r.Period != *f.Period {
		return false
	}
	return true
}

// LabelValue retorna o label selecionado ou "" quando não há filtro
func (f FilterSpec) LabelValue() string {
	if f.Label == nil {
		return ""
	}
	return *f.Label
}

// PeriodValue retorna o período selecionado ou "" quando não há filtro
func (f FilterSpec) PeriodValue() string {
	if f.Period == nil {
		return ""
	}
	return *f.Period
}

func (f FilterSpec) IsEmpty() bool {
	return f.Label == nil && f.Period == nil
}

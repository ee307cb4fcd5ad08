package kpi

import "github.com/ignite/campaign-insights/internal/contact"

// Segment names as they appear in the report table. These are fixed
// presentation constants consumed by the Spanish-language dashboards, not
// derived from any schema.
const (
	SegmentGeneral      = "General"
	SegmentAgeGroup     = "Grupo de Edad"
	SegmentOccupation   = "Ocupación"
	SegmentEducation    = "Educación"
	SegmentMarital      = "Estado Civil"
	SegmentBalance      = "Categoría de Balance"
	SegmentIntensity    = "Intensidad de Campaña"
	SegmentChannel      = "Canal de Contacto"
	SegmentPriorOutcome = "Resultado Campaña Anterior"
	SegmentMonth        = "Mes de Contacto"
)

// Replacement labels for records whose categorical value is unknown.
// Prior-campaign outcome gets its own label: an unknown outcome means the
// customer was never in a previous campaign, which is not the same thing
// as missing data.
const (
	ValueAll             = "Todos"
	LabelUnknown         = "Desconocido"
	LabelNoPriorCampaign = "Sin Campaña Previa"
)

// Dimension describes one segmentation axis: the segment name stamped on
// every output row and the extractor producing a record's segment value.
// Extractors are total; absent categoricals resolve to a replacement label.
type Dimension struct {
	Segment string
	Value   func(*contact.CleanedContact) string
}

// Dimensions returns the fixed, ordered list of the ten report dimensions.
// The degenerate General dimension maps every record to a single "Todos"
// group and anchors the relative-effectiveness normalization.
func Dimensions() []Dimension {
	return []Dimension{
		{SegmentGeneral, func(*contact.CleanedContact) string { return ValueAll }},
		{SegmentAgeGroup, func(c *contact.CleanedContact) string { return c.AgeGroup }},
		{SegmentOccupation, categorical(func(c *contact.CleanedContact) *string { return c.Job }, LabelUnknown)},
		{SegmentEducation, categorical(func(c *contact.CleanedContact) *string { return c.Education }, LabelUnknown)},
		{SegmentMarital, categorical(func(c *contact.CleanedContact) *string { return c.Marital }, LabelUnknown)},
		{SegmentBalance, func(c *contact.CleanedContact) string { return c.BalanceCategory }},
		{SegmentIntensity, func(c *contact.CleanedContact) string { return c.CampaignIntensity }},
		{SegmentChannel, categorical(func(c *contact.CleanedContact) *string { return c.Channel }, LabelUnknown)},
		{SegmentPriorOutcome, categorical(func(c *contact.CleanedContact) *string { return c.PriorOutcome }, LabelNoPriorCampaign)},
		{SegmentMonth, func(c *contact.CleanedContact) string { return c.ContactMonth }},
	}
}

func categorical(get func(*contact.CleanedContact) *string, fallback string) func(*contact.CleanedContact) string {
	return func(c *contact.CleanedContact) string {
		if v := get(c); v != nil {
			return *v
		}
		return fallback
	}
}

package contact

import (
	"math"
	"strings"
)

// MinDurationSec is the business-rule floor on call duration. Contacts
// shorter than this convert at near-zero rates and are dropped as noise.
const MinDurationSec = 60

// Clean normalizes a single raw event into a CleanedContact. It applies
// every field-level rule (ternary coercion, unknown-literal normalization,
// sentinel handling, unit derivation, bucketing) but does NOT apply the
// duration filter; CleanAll owns row-level filtering.
func Clean(raw RawContactEvent) CleanedContact {
	return CleanedContact{
		Age:      raw.Age,
		AgeGroup: AgeGroup(raw.Age),

		Job:       normalizeCategory(raw.Job),
		Marital:   normalizeCategory(raw.Marital),
		Education: normalizeCategory(raw.Education),

		CreditDefault: parseTernary(raw.CreditFlag),

		Balance:         raw.Balance,
		BalanceCategory: BalanceCategory(raw.Balance),

		HousingLoan:  parseTernary(raw.HousingLoan),
		PersonalLoan: parseTernary(raw.PersonalLoan),

		Channel:      normalizeCategory(raw.Channel),
		ContactDay:   raw.ContactDay,
		ContactMonth: strings.ToLower(strings.TrimSpace(raw.ContactMonth)),

		DurationSec: raw.DurationSec,
		DurationMin: round2(float64(raw.DurationSec) / 60.0),

		CampaignContacts:  raw.CampaignContacts,
		CampaignIntensity: CampaignIntensity(raw.CampaignContacts),

		PriorContacts:  raw.PriorContacts,
		DaysSincePrior: normalizeDaysSincePrior(raw.DaysSincePrior),
		PriorOutcome:   normalizeCategory(raw.PriorOutcome),

		Subscribed: parseTernary(raw.Subscribed),
	}
}

// CleanAll cleans every raw event and drops short calls. The returned set
// satisfies DurationSec >= MinDurationSec for every row.
func CleanAll(raws []RawContactEvent) []CleanedContact {
	cleaned := make([]CleanedContact, 0, len(raws))
	for _, raw := range raws {
		if raw.DurationSec < MinDurationSec {
			continue
		}
		cleaned = append(cleaned, Clean(raw))
	}
	return cleaned
}

// parseTernary maps the source's yes/no/unknown literals onto an optional
// bool: "yes" -> true, "no" -> false, anything else -> nil (unknown).
func parseTernary(raw string) *bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes":
		v := true
		return &v
	case "no":
		v := false
		return &v
	default:
		return nil
	}
}

// normalizeCategory maps the "unknown" literal (and empty values) to nil.
// Any other label is trimmed, lowercased, and kept as-is.
func normalizeCategory(raw string) *string {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" || v == "unknown" {
		return nil
	}
	return &v
}

// normalizeDaysSincePrior maps the -1 "never contacted" sentinel to nil.
// Zero and positive counts pass through unchanged.
func normalizeDaysSincePrior(days int) *int {
	if days == -1 {
		return nil
	}
	return &days
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

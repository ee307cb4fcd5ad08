package contact

// Fixed bucket labels for the three derived categorical fields. Each
// bucketing function is total over its numeric domain: every input maps to
// exactly one label, including negative and arbitrarily large values.

// AgeGroup buckets an age into one of five fixed groups, left-inclusive
// on the lower bound.
func AgeGroup(age int) string {
	switch {
	case age < 30:
		return "18-29"
	case age < 40:
		return "30-39"
	case age < 50:
		return "40-49"
	case age < 60:
		return "50-59"
	default:
		return "60+"
	}
}

// BalanceCategory buckets a signed account balance into one of six tiers.
func BalanceCategory(balance int) string {
	switch {
	case balance < 0:
		return "Negative"
	case balance == 0:
		return "Zero"
	case balance <= 1000:
		return "Low (1-1K)"
	case balance <= 5000:
		return "Medium (1K-5K)"
	case balance <= 10000:
		return "High (5K-10K)"
	default:
		return "Very High (10K+)"
	}
}

// CampaignIntensity buckets the number of contacts made during the current
// campaign into one of four intensity tiers.
func CampaignIntensity(contacts int) string {
	switch {
	case contacts <= 1:
		return "Single Contact"
	case contacts <= 3:
		return "Low (2-3)"
	case contacts <= 5:
		return "Medium (4-5)"
	default:
		return "High (6+)"
	}
}

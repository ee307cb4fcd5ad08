package contact

// RawContactEvent is one row of the bank's direct-marketing contact log,
// exactly as loaded from the source table and before any cleaning.
// Ternary flags and categoricals are kept as raw string literals here;
// the cleaning stage owns their interpretation.
type RawContactEvent struct {
	Age              int
	Job              string
	Marital          string
	Education        string
	CreditFlag       string // credit-in-default flag: yes/no/unknown
	Balance          int    // average yearly balance, euros (signed)
	HousingLoan      string
	PersonalLoan     string
	Channel          string // contact channel: cellular, telephone, unknown
	ContactDay       int
	ContactMonth     string
	DurationSec      int // last call duration, seconds
	CampaignContacts int // contacts during this campaign, including this one
	DaysSincePrior   int // days since last contact of a previous campaign, -1 = never
	PriorContacts    int // contacts before this campaign
	PriorOutcome     string
	Subscribed       string // target: term-deposit subscription outcome
}

// CleanedContact is the normalized, enriched form of a surviving raw event.
// Pointer fields carry three-valued semantics: nil means "unknown", which
// is distinct from false / empty. Derived bucket fields are always set.
type CleanedContact struct {
	Age      int
	AgeGroup string

	Job       *string
	Marital   *string
	Education *string

	CreditDefault *bool

	Balance         int
	BalanceCategory string

	HousingLoan  *bool
	PersonalLoan *bool

	Channel      *string
	ContactDay   int
	ContactMonth string

	DurationSec int
	DurationMin float64 // DurationSec / 60, rounded to 2 decimals

	CampaignContacts  int
	CampaignIntensity string

	PriorContacts  int
	DaysSincePrior *int // nil when never previously contacted
	PriorOutcome   *string
	Subscribed     *bool
}

// Converted reports whether this contact ended in a subscription.
// An unknown outcome counts as not converted.
func (c *CleanedContact) Converted() bool {
	return c.Subscribed != nil && *c.Subscribed
}

package contact

import "testing"

func TestAgeGroup(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{18, "18-29"},
		{25, "18-29"},
		{29, "18-29"},
		{30, "30-39"},
		{39, "30-39"},
		{40, "40-49"},
		{45, "40-49"},
		{49, "40-49"},
		{50, "50-59"},
		{59, "50-59"},
		{60, "60+"},
		{70, "60+"},
		{95, "60+"},
		// Out-of-domain ages still map somewhere: bucketing is total.
		{0, "18-29"},
		{-1, "18-29"},
	}
	for _, tt := range tests {
		if got := AgeGroup(tt.age); got != tt.want {
			t.Errorf("AgeGroup(%d) = %q, want %q", tt.age, got, tt.want)
		}
	}
}

func TestBalanceCategory(t *testing.T) {
	tests := []struct {
		balance int
		want    string
	}{
		{-5000, "Negative"},
		{-1, "Negative"},
		{0, "Zero"},
		{1, "Low (1-1K)"},
		{500, "Low (1-1K)"},
		{1000, "Low (1-1K)"},
		{1001, "Medium (1K-5K)"},
		{5000, "Medium (1K-5K)"},
		{5001, "High (5K-10K)"},
		{10000, "High (5K-10K)"},
		{10001, "Very High (10K+)"},
		{12000, "Very High (10K+)"},
		{1 << 40, "Very High (10K+)"},
	}
	for _, tt := range tests {
		if got := BalanceCategory(tt.balance); got != tt.want {
			t.Errorf("BalanceCategory(%d) = %q, want %q", tt.balance, got, tt.want)
		}
	}
}

func TestCampaignIntensity(t *testing.T) {
	tests := []struct {
		contacts int
		want     string
	}{
		{1, "Single Contact"},
		{2, "Low (2-3)"},
		{3, "Low (2-3)"},
		{4, "Medium (4-5)"},
		{5, "Medium (4-5)"},
		{6, "High (6+)"},
		{50, "High (6+)"},
		{0, "Single Contact"},
	}
	for _, tt := range tests {
		if got := CampaignIntensity(tt.contacts); got != tt.want {
			t.Errorf("CampaignIntensity(%d) = %q, want %q", tt.contacts, got, tt.want)
		}
	}
}

// Bucketing must return one of the fixed labels for any int input.
func TestBucketTotality(t *testing.T) {
	ageLabels := map[string]bool{"18-29": true, "30-39": true, "40-49": true, "50-59": true, "60+": true}
	balanceLabels := map[string]bool{
		"Negative": true, "Zero": true, "Low (1-1K)": true,
		"Medium (1K-5K)": true, "High (5K-10K)": true, "Very High (10K+)": true,
	}
	intensityLabels := map[string]bool{
		"Single Contact": true, "Low (2-3)": true, "Medium (4-5)": true, "High (6+)": true,
	}

	probes := []int{-1 << 31, -10001, -1, 0, 1, 29, 30, 1000, 1001, 5000, 5001, 10000, 10001, 1 << 31}
	for _, v := range probes {
		if !ageLabels[AgeGroup(v)] {
			t.Errorf("AgeGroup(%d) = %q is not a known label", v, AgeGroup(v))
		}
		if !balanceLabels[BalanceCategory(v)] {
			t.Errorf("BalanceCategory(%d) = %q is not a known label", v, BalanceCategory(v))
		}
		if !intensityLabels[CampaignIntensity(v)] {
			t.Errorf("CampaignIntensity(%d) = %q is not a known label", v, CampaignIntensity(v))
		}
	}
}

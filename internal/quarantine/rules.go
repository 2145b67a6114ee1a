package quarantine

import (
	"github.com/wonny/covid-europe/internal/contracts"
)

// Thresholds for entry into Norway
const (
	PositivityLimit = 4.0   // percent of tests positive
	CaseRateLow     = 25.0  // 14-day cases per 100 000
	CaseRateHigh    = 150.0 // 14-day cases per 100 000
)

const (
	Heading    = "Quarantine Regulations for Immigration to Norway"
	Disclaimer = "Rules are based on the entry quarantine regulations of the Norwegian Institute of Public Health (FHI). " +
		"Always check the official FHI guidance before travelling; this overview is informational only."
	Sources = "Sources: European Centre for Disease Prevention and Control (ECDC), Norwegian Institute of Public Health (FHI)"
)

// Classify maps a test positivity rate and a 14-day case rate to a
// quarantine requirement. NaN inputs fail every comparison and end up as hotel.
// ⭐ SSOT: 격리 분류 규칙은 여기서만
func Classify(testRate, caseRate float64) contracts.Quarantine {
	if testRate < PositivityLimit && caseRate < CaseRateLow {
		return contracts.QuarantineNone
	}
	if testRate < PositivityLimit && caseRate < CaseRateHigh {
		return contracts.QuarantineHome
	}
	return contracts.QuarantineHotel
}

// Message returns the user facing rule for a category
func Message(q contracts.Quarantine) string {
	switch q {
	case contracts.QuarantineNone:
		return "No quarantine required."
	case contracts.QuarantineHome:
		return "Quarantine at home required."
	case contracts.QuarantineHotel:
		return "Quarantine at hotel required."
	default:
		return ""
	}
}

// ClassifySnapshot classifies the latest values of one country
func ClassifySnapshot(s contracts.Snapshot) contracts.Quarantine {
	return Classify(s.PositivityRate, s.Rate14Day)
}

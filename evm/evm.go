// Package evm computes the Earned Value Management figures quoted in the deck
// and classifies a project into Good / Warning / At Risk.
package evm

import (
	"fmt"
	"math"
)

// Status thresholds
const (
	CPIGood         = 1.0
	CPIWarning      = 0.83
	PassRateGood    = 95.0
	PassRateWarning = 80.0
)

// Snapshot holds the four base EVM inputs, in man-months
type Snapshot struct {
	BAC float64 // budget at completion
	PV  float64 // planned value
	EV  float64 // earned value
	AC  float64 // actual cost
}

// SPI = EV / PV
func (s Snapshot) SPI() float64 {
	if s.PV == 0 {
		return 0
	}
	return s.EV / s.PV
}

// CPI = EV / AC
func (s Snapshot) CPI() float64 {
	if s.AC == 0 {
		return 0
	}
	return s.EV / s.AC
}

// EAC = AC + (BAC - EV) / CPI. Falls back to BAC when CPI is undefined.
func (s Snapshot) EAC() float64 {
	cpi := s.CPI()
	if cpi == 0 {
		return s.BAC
	}
	return s.AC + (s.BAC-s.EV)/cpi
}

// VAC = BAC - EAC; negative means over budget
func (s Snapshot) VAC() float64 {
	return s.BAC - s.EAC()
}

// TCPI = (BAC - EV) / (BAC - AC)
func (s Snapshot) TCPI() float64 {
	if s.BAC == s.AC {
		return 0
	}
	return (s.BAC - s.EV) / (s.BAC - s.AC)
}

// Progress is the completed fraction of the budget, EV / BAC
func (s Snapshot) Progress() float64 {
	if s.BAC == 0 {
		return 0
	}
	return s.EV / s.BAC
}

// RemainingBudget = BAC - AC
func (s Snapshot) RemainingBudget() float64 {
	return s.BAC - s.AC
}

// Validate rejects negative inputs
func (s Snapshot) Validate() error {
	for name, v := range map[string]float64{"BAC": s.BAC, "PV": s.PV, "EV": s.EV, "AC": s.AC} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("evm: invalid %s %v", name, v)
		}
	}
	return nil
}

// Status is a project health classification
type Status int

const (
	Good Status = iota
	Warning
	AtRisk
)

// String returns the English label used by the backend
func (s Status) String() string {
	switch s {
	case Good:
		return "Good"
	case Warning:
		return "Warning"
	default:
		return "At Risk"
	}
}

// Label returns the Vietnamese label shown to users
func (s Status) Label() string {
	switch s {
	case Good:
		return "Tốt"
	case Warning:
		return "Cảnh báo"
	default:
		return "Rủi ro"
	}
}

// Badge returns the traffic-light badge used in tables
func (s Status) Badge() string {
	switch s {
	case Good:
		return "🟢 GOOD"
	case Warning:
		return "🟡 WARNING"
	default:
		return "🔴 AT RISK"
	}
}

// ClassifyCost classifies by cost efficiency
func ClassifyCost(cpi float64) Status {
	switch {
	case cpi >= CPIGood:
		return Good
	case cpi >= CPIWarning:
		return Warning
	default:
		return AtRisk
	}
}

// ClassifyQuality classifies by test pass rate, in percent
func ClassifyQuality(passRate float64) Status {
	switch {
	case passRate >= PassRateGood:
		return Good
	case passRate >= PassRateWarning:
		return Warning
	default:
		return AtRisk
	}
}

// Classify returns the worse of the cost and quality statuses
func Classify(cpi, passRate float64) Status {
	return Worst(ClassifyCost(cpi), ClassifyQuality(passRate))
}

// Worst returns the most severe status, Good for none
func Worst(statuses ...Status) Status {
	worst := Good
	for _, s := range statuses {
		if s > worst {
			worst = s
		}
	}
	return worst
}

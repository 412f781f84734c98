package simulation

import (
	"fmt"
	"math"
)

const (
	// RatioThreshold is the I2/I1 level above which a broken conductor is declared.
	RatioThreshold = 0.15
	// ratioEpsilon keeps the ratio finite when I1 is zero.
	ratioEpsilon = 1e-9
)

// Scenario names a reading in ChartData.
type Scenario string

const (
	ScenarioHealthy Scenario = "healthy"
	ScenarioFaulted Scenario = "faulted"
)

const (
	VerdictNoTrip      = "No Trip"
	VerdictTrip        = "Trip"
	VerdictTripDelayed = "Trip (after delay)"
)

// Explanation is the fixed paragraph shown under the chart.
const Explanation = "In healthy operation, negative-sequence current (I2) is tiny compared to positive (I1). " +
	"When a conductor opens, the system becomes unbalanced, so I2 rises sharply while I1 changes only a little. " +
	"This is why the ratio I2/I1 is a reliable indicator of a broken conductor."

// Ratio returns I2 / max(epsilon, I1).
func (r SequenceReading) Ratio() float64 {
	return r.I2 / math.Max(ratioEpsilon, r.I1)
}

// Determination is the trip decision for one scenario.
type Determination struct {
	Scenario  Scenario `json:"scenario" yaml:"scenario"`
	Ratio     float64  `json:"ratio" yaml:"ratio"`
	Threshold float64  `json:"threshold" yaml:"threshold"`
	Trip      bool     `json:"trip" yaml:"trip"`
	Verdict   string   `json:"verdict" yaml:"verdict"`
}

// Summary renders the determination the way the results panel shows it.
func (d Determination) Summary() string {
	label := "Healthy"
	if d.Scenario == ScenarioFaulted {
		label = "Faulted"
	}
	return fmt.Sprintf("%s: %.4f (threshold %g) - %s", label, d.Ratio, d.Threshold, d.Verdict)
}

// Evaluate compares the reading's ratio against RatioThreshold. A tripping
// faulted reading is reported with its definite-time delay.
func Evaluate(scenario Scenario, r SequenceReading) Determination {
	ratio := r.Ratio()
	d := Determination{
		Scenario:  scenario,
		Ratio:     ratio,
		Threshold: RatioThreshold,
		Trip:      ratio > RatioThreshold,
		Verdict:   VerdictNoTrip,
	}
	if d.Trip {
		d.Verdict = VerdictTrip
		if scenario == ScenarioFaulted {
			d.Verdict = VerdictTripDelayed
		}
	}
	return d
}

// Logic bundles the chart data with both determinations and the explanation.
type Logic struct {
	Data        ChartData     `json:"data" yaml:"data"`
	Healthy     Determination `json:"healthy" yaml:"healthy"`
	Faulted     Determination `json:"faulted" yaml:"faulted"`
	Explanation string        `json:"explanation" yaml:"explanation"`
}

// Analyze evaluates both scenarios of data.
func Analyze(data ChartData) Logic {
	return Logic{
		Data:        data,
		Healthy:     Evaluate(ScenarioHealthy, data.Healthy),
		Faulted:     Evaluate(ScenarioFaulted, data.Faulted),
		Explanation: Explanation,
	}
}

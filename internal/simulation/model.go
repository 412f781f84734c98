// Package simulation turns analyzer output into the payloads served to the
// browser and supplies the fixed demo values used when the analyzer is
// unavailable.
package simulation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrMalformedChartData is returned when JSON-mode output does not have the
// healthy/faulted reading shape.
var ErrMalformedChartData = errors.New("malformed chart data")

// SequenceReading holds positive- and negative-sequence current magnitudes.
type SequenceReading struct {
	I1 float64 `json:"I1" yaml:"I1"`
	I2 float64 `json:"I2" yaml:"I2"`
}

// ChartData is the healthy/faulted reading pair drawn by the browser.
type ChartData struct {
	Healthy SequenceReading `json:"healthy" yaml:"healthy"`
	Faulted SequenceReading `json:"faulted" yaml:"faulted"`
}

// FallbackChartData returns the demo values served when the analyzer cannot be used.
func FallbackChartData() ChartData {
	return ChartData{
		Healthy: SequenceReading{I1: 80, I2: 3},
		Faulted: SequenceReading{I1: 60, I2: 15},
	}
}

type rawReading struct {
	I1 *float64 `json:"I1"`
	I2 *float64 `json:"I2"`
}

type rawChartData struct {
	Healthy *rawReading `json:"healthy"`
	Faulted *rawReading `json:"faulted"`
}

// ParseChartData decodes analyzer JSON-mode output. The output must be a single
// object with both scenarios, each with finite non-negative I1 and I2.
func ParseChartData(out string) (ChartData, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(out)))
	var raw rawChartData
	if err := dec.Decode(&raw); err != nil {
		return ChartData{}, fmt.Errorf("%w: %v", ErrMalformedChartData, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return ChartData{}, fmt.Errorf("%w: trailing data after object", ErrMalformedChartData)
	}

	healthy, err := raw.Healthy.reading("healthy")
	if err != nil {
		return ChartData{}, err
	}
	faulted, err := raw.Faulted.reading("faulted")
	if err != nil {
		return ChartData{}, err
	}
	return ChartData{Healthy: healthy, Faulted: faulted}, nil
}

func (r *rawReading) reading(scenario string) (SequenceReading, error) {
	if r == nil {
		return SequenceReading{}, fmt.Errorf("%w: missing %s", ErrMalformedChartData, scenario)
	}
	if r.I1 == nil || r.I2 == nil {
		return SequenceReading{}, fmt.Errorf("%w: %s needs I1 and I2", ErrMalformedChartData, scenario)
	}
	out := SequenceReading{I1: *r.I1, I2: *r.I2}
	if err := out.Validate(); err != nil {
		return SequenceReading{}, fmt.Errorf("%w: %s: %v", ErrMalformedChartData, scenario, err)
	}
	return out, nil
}

// Validate checks both magnitudes are finite and non-negative.
func (r SequenceReading) Validate() error {
	if err := checkMagnitude("I1", r.I1); err != nil {
		return err
	}
	return checkMagnitude("I2", r.I2)
}

func checkMagnitude(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s is not finite", name)
	}
	if v < 0 {
		return fmt.Errorf("%s is negative", name)
	}
	return nil
}

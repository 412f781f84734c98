package simulation

import "strings"

const errPlaceholder = "{{error}}"

const demoTranscript = `--------------------------------------------------
--- Broken Conductor Detection Software Simulation ---
*** DEMO MODE - Python/OpenDSS not available on this host ***
1. Model: 'LT_Feeder_Model.dss' (simulated)

--- CASE 1: HEALTHY OPERATION ---
  > I1 Magnitude (Positive Sequence): 154.78 A (Min Req: 6.40 A)
  > I2 Magnitude (Negative Sequence): 11.81 A
  > Calculated Ratio I2/I1: 0.0763 (Threshold: 0.15)
  I2/I1 ratio is normal.
-> Healthy System Status: NORMAL

--- CASE 2: SIMULATE BCF (Phase A Open) ---
2. Fault Simulated: Phase A of Line.L1 is open (simulated)
  > I1 Magnitude (Positive Sequence): 102.35 A (Min Req: 6.40 A)
  > I2 Magnitude (Negative Sequence): 53.61 A
  > Calculated Ratio I2/I1: 0.5237 (Threshold: 0.15)
  Broken Conductor condition confirmed by ratio check.
  Waiting for definite time delay of 1.0 seconds...
  *** TRIP COMMAND ISSUED to Breaker/Recloser controlling Line.L1 ***
-> Faulted System Status: TRIPPED

*** Note: This is demo data. Python/OpenDSS error: {{error}} ***
--------------------------------------------------`

// DemoTranscript returns the canned simulation narrative with errText
// embedded in the closing note. errText is inserted literally.
func DemoTranscript(errText string) string {
	return strings.Replace(demoTranscript, errPlaceholder, errText, 1)
}

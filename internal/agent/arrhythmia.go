package agent

import (
	"slices"
	"strings"

	"heart-triage-agent/internal/triage"
)

const (
	tachycardiaRate       = 100
	svtRate               = 150
	bradycardiaRate       = 60
	severeBradycardiaRate = 40
	elderlyAge            = 70

	// Chance of an indeterminate finding when nothing else fired.
	indeterminateChance = 0.05
)

// ArrhythmiaAnalyzer applies rate and rhythm thresholds to a rhythm strip.
type ArrhythmiaAnalyzer struct {
	rng RandomSource
}

func NewArrhythmiaAnalyzer(rng RandomSource) *ArrhythmiaAnalyzer {
	return &ArrhythmiaAnalyzer{rng: rng}
}

func (a *ArrhythmiaAnalyzer) AnalyzeRhythm(in triage.AnalyzerInput) triage.ArrhythmiaFindings {
	var strip triage.RhythmStrip
	if in.Patient.RhythmStrip != nil {
		strip = *in.Patient.RhythmStrip
	}
	rate := strip.HeartRate
	irregular := strings.EqualFold(strip.Rhythm, "irregular")
	palpitations := strings.Contains(strings.ToLower(in.Symptoms), "palpitations")

	var types []string
	add := func(t string) {
		if !slices.Contains(types, t) {
			types = append(types, t)
		}
	}

	if rate > 0 {
		if rate > tachycardiaRate {
			add("Tachycardia")
		}
		if rate < bradycardiaRate {
			add("Bradycardia")
		}
	}
	if irregular {
		add("Irregular Rhythm")
	}
	if rate > svtRate && palpitations {
		add("Possible Supraventricular Tachycardia")
	}
	if irregular && palpitations {
		add("Atrial Fibrillation")
	}
	if rate > 0 && rate < severeBradycardiaRate && in.Patient.AgeOrDefault() > elderlyAge {
		add("Possible Significant Bradycardia")
	}

	if len(types) == 0 {
		if a.rng != nil && a.rng.Float64() < indeterminateChance {
			return triage.ArrhythmiaFindings{Detected: true, Type: "Indeterminate Arrhythmia (Subtle Signs or Random)"}
		}
		return triage.ArrhythmiaFindings{}
	}
	return triage.ArrhythmiaFindings{Detected: true, Type: strings.Join(types, " and ")}
}

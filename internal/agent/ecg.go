package agent

import (
	"strings"

	"heart-triage-agent/internal/triage"
)

// Detection probabilities for RandomECG, drawn in order.
const (
	stemiChance          = 0.3
	nstemiChance         = 0.4
	unstableAnginaChance = 0.5
)

// CoupledECG reports a STEMI exactly when the symptoms mention chest pain.
type CoupledECG struct{}

func NewCoupledECG() *CoupledECG {
	return &CoupledECG{}
}

func (a *CoupledECG) AnalyzeECG(in triage.AnalyzerInput) triage.ECGFindings {
	return triage.ECGFindings{
		STEMI: strings.Contains(strings.ToLower(in.Symptoms), "chest pain"),
	}
}

// RandomECG flags at most one acute coronary syndrome pattern using
// successive draws: STEMI 30 %, then NSTEMI 40 %, then unstable angina 50 %.
type RandomECG struct {
	rng RandomSource
}

func NewRandomECG(rng RandomSource) *RandomECG {
	return &RandomECG{rng: rng}
}

func (a *RandomECG) AnalyzeECG(_ triage.AnalyzerInput) triage.ECGFindings {
	var f triage.ECGFindings
	switch {
	case a.rng.Float64() < stemiChance:
		f.STEMI = true
	case a.rng.Float64() < nstemiChance:
		f.NSTEMI = true
	case a.rng.Float64() < unstableAnginaChance:
		f.UnstableAngina = true
	}
	return f
}

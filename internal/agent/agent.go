// Package agent holds the modality analyzers the triage orchestrator gates:
// ECG, echocardiogram, CT calcium scoring, MRI infarct detection and rhythm
// analysis. They are deterministic stubs; the only nondeterminism comes from
// an injected RandomSource.
package agent

import (
	"fmt"
	"math/rand/v2"
	"time"

	"heart-triage-agent/internal/triage"
)

// RandomSource is the injectable randomness used by the probabilistic analyzers.
type RandomSource interface {
	Float64() float64
}

// NewRandomSource returns a seeded source. Seed 0 seeds from the clock.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type ECGMode string

const (
	ECGModeCoupled ECGMode = "coupled"
	ECGModeRandom  ECGMode = "random"
)

func ParseECGMode(s string) (ECGMode, error) {
	switch ECGMode(s) {
	case ECGModeCoupled, ECGModeRandom:
		return ECGMode(s), nil
	case "":
		return ECGModeCoupled, nil
	default:
		return "", fmt.Errorf("unknown ECG mode %q", s)
	}
}

// NewAnalyzers builds the full analyzer set for the orchestrator.
func NewAnalyzers(mode ECGMode, rng RandomSource) triage.Analyzers {
	var ecg triage.ECGAnalyzer = NewCoupledECG()
	if mode == ECGModeRandom {
		ecg = NewRandomECG(rng)
	}
	return triage.Analyzers{
		ECG:        ecg,
		Echo:       NewEchoAnalyzer(),
		CT:         NewCTAnalyzer(),
		MRI:        NewMRIAnalyzer(),
		Arrhythmia: NewArrhythmiaAnalyzer(rng),
	}
}

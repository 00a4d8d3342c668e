package agent

import "heart-triage-agent/internal/triage"

// Simulated calcium scores.
const (
	stenosisAorticScore      = 2500
	regurgitationAorticScore = 800
	cadCoronaryScore         = 1200
)

// obesityBMI is the BMI above which the echo reports enlarged chambers.
const obesityBMI = 30

type EchoAnalyzer struct{}

func NewEchoAnalyzer() *EchoAnalyzer {
	return &EchoAnalyzer{}
}

func (a *EchoAnalyzer) AnalyzeEcho(in triage.AnalyzerInput) triage.EchoFindings {
	f := triage.EchoFindings{
		ValveFunction:    triage.ValveNormal,
		ChamberSize:      triage.ChamberNormal,
		EjectionFraction: triage.EFNormal,
	}
	if in.Patient.BMIOrDefault() > obesityBMI {
		f.ChamberSize = triage.ChamberEnlarged
	}

	c := in.Conditions
	if c.Has(triage.AorticRegurgitation) {
		f.AorticValveFunction = triage.SevereRegurgitation
	}
	if c.Has(triage.MitralRegurgitation) {
		f.MitralValveFunction = triage.SevereRegurgitation
	}
	if c.Has(triage.DilatedCardiomyopathy) {
		f.ChamberSize = triage.ChamberEnlarged
		f.EjectionFraction = triage.EFReduced
	}
	if c.Has(triage.HeartFailure) && f.EjectionFraction == triage.EFNormal {
		f.EjectionFraction = triage.EFPreserved
	}
	return f
}

type CTAnalyzer struct{}

func NewCTAnalyzer() *CTAnalyzer {
	return &CTAnalyzer{}
}

// AnalyzeCT simulates calcium scoring. With both aortic conditions suspected
// the stenosis score wins.
func (a *CTAnalyzer) AnalyzeCT(in triage.AnalyzerInput) triage.CTFindings {
	var f triage.CTFindings
	c := in.Conditions
	switch {
	case c.Has(triage.AorticStenosis):
		f.AorticValveCalciumScore = triage.Score(stenosisAorticScore)
	case c.Has(triage.AorticRegurgitation):
		f.AorticValveCalciumScore = triage.Score(regurgitationAorticScore)
	}
	if c.Has(triage.CoronaryArteryDisease) {
		f.CoronaryCalciumScore = triage.Score(cadCoronaryScore)
	}
	return f
}

type MRIAnalyzer struct{}

func NewMRIAnalyzer() *MRIAnalyzer {
	return &MRIAnalyzer{}
}

func (a *MRIAnalyzer) AnalyzeMRI(in triage.AnalyzerInput) triage.MRIFindings {
	if in.Conditions.HasAny(triage.HeartAttack, triage.CoronaryArteryDisease) {
		return triage.MRIFindings{
			InfarctDetected: true,
			InfarctLocation: "Anterior",
			InfarctSize:     "simulated_size",
		}
	}
	return triage.MRIFindings{}
}

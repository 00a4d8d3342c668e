package triage

import (
	"fmt"
	"strings"
)

const (
	DefaultDiagnosis = "Further evaluation needed"
	DefaultRuleName  = "default"
	geneticSuffix    = " (with genetic predisposition)"

	// Aortic valve calcium score thresholds (Agatston units).
	severeCalciumScore   = 1500
	moderateCalciumScore = 500
)

// Evidence is everything the diagnosis and treatment rules may read.
type Evidence struct {
	Conditions ConditionSet
	Findings   Findings
	Patient    Patient
}

// DiagnosisRule is one branch of the diagnosis priority chain. A rule is
// considered when any of its When conditions is present; Decide may still
// decline, in which case evaluation falls through to the next rule.
type DiagnosisRule struct {
	Name   string
	When   []Condition
	Decide func(ev Evidence) (string, bool)
}

// DiagnosisRules is the priority chain; the first rule that decides wins.
// A detected arrhythmia outranks the valve and cardiomyopathy rules, which the
// same palpitation keywords always suggest.
var DiagnosisRules = []DiagnosisRule{
	{Name: "heart_attack", When: []Condition{HeartAttack}, Decide: decideHeartAttack},
	{Name: "coronary_artery_disease", When: []Condition{CoronaryArteryDisease}, Decide: decideCoronaryArteryDisease},
	{Name: "cardiac_arrhythmia", When: []Condition{CardiacArrhythmia}, Decide: decideDetectedArrhythmia},
	{Name: "heart_failure", When: []Condition{HeartFailure}, Decide: decideHeartFailure},
	{Name: "aortic_regurgitation", When: []Condition{AorticRegurgitation}, Decide: decideAorticRegurgitation},
	{Name: "mitral_regurgitation", When: []Condition{MitralRegurgitation}, Decide: decideMitralRegurgitation},
	{Name: "dilated_cardiomyopathy", When: []Condition{DilatedCardiomyopathy}, Decide: decideDilatedCardiomyopathy},
	{Name: "aortic_stenosis", When: []Condition{AorticStenosis}, Decide: decideAorticStenosis},
	{Name: "cardiac_arrhythmia_unconfirmed", When: []Condition{CardiacArrhythmia}, Decide: decideUnconfirmedArrhythmia},
}

// Diagnose runs DiagnosisRules and returns the diagnosis and the name of the
// rule that produced it. It never fails: unmatched evidence yields DefaultDiagnosis.
func Diagnose(ev Evidence) (string, string) {
	return DiagnoseWith(DiagnosisRules, ev)
}

func DiagnoseWith(rules []DiagnosisRule, ev Evidence) (string, string) {
	for _, r := range rules {
		if !ev.Conditions.HasAny(r.When...) {
			continue
		}
		if d, ok := r.Decide(ev); ok {
			return d, r.Name
		}
	}
	return DefaultDiagnosis, DefaultRuleName
}

func decideHeartAttack(ev Evidence) (string, bool) {
	ecg := ev.Findings.ECG
	switch {
	case ecg.GetSTEMI():
		return "STEMI (ST-Elevation Myocardial Infarction)" + leads("ST elevation", ecg.STElevationLeads), true
	case ecg.GetNSTEMI():
		return "NSTEMI (Non-ST-Elevation Myocardial Infarction)" + leads("ST depression", ecg.STDepressionLeads), true
	case ecg.GetUnstableAngina():
		return "Unstable Angina" + leads("T-wave inversion", ecg.TWaveInversionLeads), true
	}
	return "", false
}

func leads(pattern string, names []string) string {
	if len(names) == 0 {
		return ""
	}
	return fmt.Sprintf(" (%s in %s)", pattern, strings.Join(names, ", "))
}

func decideCoronaryArteryDisease(ev Evidence) (string, bool) {
	d := "Coronary Artery Disease"
	if ev.Patient.HasVariant(Variant9p21) {
		d += geneticSuffix
	}
	return d, true
}

func decideHeartFailure(ev Evidence) (string, bool) {
	echo := ev.Findings.Echo
	switch {
	case echo.GetEjectionFraction() == EFReduced:
		d := "Heart Failure with Reduced Ejection Fraction (HFrEF)"
		if ev.Patient.HasVariant(VariantDCM) {
			d += geneticSuffix
		}
		return d, true
	case echo.GetChamberSize() == ChamberEnlarged:
		return "Heart Failure (likely due to chamber enlargement)", true
	case ev.Patient.HasHistory:
		if ev.Patient.HasVariant(VariantDCM, VariantHCM) {
			return "Heart Failure (clinical suspicion, with genetic predisposition)", true
		}
		return "Heart Failure (clinical suspicion)", true
	}
	// Suspected but unsupported heart failure stays undetermined.
	return DefaultDiagnosis, true
}

func decideAorticRegurgitation(ev Evidence) (string, bool) {
	return regurgitation("Aortic", ev.Findings.Echo.GetAorticValveFunction()), true
}

func decideMitralRegurgitation(ev Evidence) (string, bool) {
	return regurgitation("Mitral", ev.Findings.Echo.GetMitralValveFunction()), true
}

func regurgitation(valve, function string) string {
	switch function {
	case SevereRegurgitation:
		return "Severe " + valve + " Regurgitation"
	case ModerateRegurgitation:
		return "Moderate " + valve + " Regurgitation"
	default:
		return valve + " Regurgitation (Mild or Undetermined Severity)"
	}
}

func decideDilatedCardiomyopathy(ev Evidence) (string, bool) {
	echo := ev.Findings.Echo
	if echo.GetEjectionFraction() == EFReduced && echo.GetChamberSize() == ChamberEnlarged {
		return "Dilated Cardiomyopathy (with reduced EF and enlarged chambers)", true
	}
	return "Dilated Cardiomyopathy", true
}

func decideAorticStenosis(ev Evidence) (string, bool) {
	valve := ev.Findings.Echo.GetValveFunction()
	score, measured := ev.Findings.CT.GetAorticValveCalciumScore()
	switch {
	case valve == SevereStenosis || (measured && score > severeCalciumScore):
		return "Severe Aortic Stenosis", true
	case valve == ModerateStenosis || (measured && score > moderateCalciumScore):
		if ev.Patient.HasVariant(VariantLRP5) {
			return "Moderate Aortic Stenosis" + geneticSuffix, true
		}
		return "Moderate Aortic Stenosis", true
	default:
		return "Aortic Stenosis (Mild or Undetermined Severity)", true
	}
}

func decideDetectedArrhythmia(ev Evidence) (string, bool) {
	a := ev.Findings.Arrhythmia
	if !a.GetDetected() {
		return "", false
	}
	return "Cardiac Arrhythmia: " + a.GetType(), true
}

// decideUnconfirmedArrhythmia covers a rhythm analysis that found nothing.
func decideUnconfirmedArrhythmia(ev Evidence) (string, bool) {
	if ev.Findings.Arrhythmia == nil {
		return "", false
	}
	return "Cardiac Arrhythmia (no specific type detected by analysis)", true
}

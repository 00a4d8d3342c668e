package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanTreatment_DefaultIsTotal(t *testing.T) {
	for _, d := range []string{"", DefaultDiagnosis, "something unheard of"} {
		assert.Equal(t, DefaultTreatmentPlan, PlanTreatment(d, Evidence{}), d)
	}
}

func TestPlanTreatment_EmptyFindingsNeverPanic(t *testing.T) {
	for _, r := range TreatmentRules {
		for _, m := range r.Matches {
			assert.NotPanics(t, func() {
				plan := PlanTreatment(m, Evidence{})
				assert.NotEmpty(t, plan)
				assert.NotEqual(t, DefaultTreatmentPlan, plan)
			}, m)
		}
	}
}

func TestPlanTreatment_InjectedHeartAttackDiagnosis(t *testing.T) {
	plan := PlanTreatment("Heart Attack (suspected)", Evidence{Patient: DemoPatient()})
	assert.Contains(t, plan, "Seek immediate medical attention.")
	assert.NotContains(t, plan, "reperfusion")
}

func TestPlanTreatment(t *testing.T) {
	demo := DemoPatient()

	tests := []struct {
		name        string
		diagnosis   string
		ev          Evidence
		contains    []string
		notContains []string
	}{
		{
			name:      "STEMI is reperfusion",
			diagnosis: "STEMI (ST-Elevation Myocardial Infarction)",
			ev:        Evidence{Patient: demo},
			contains:  []string{"reperfusion", "Genetic variants associated with increased heart attack risk"},
		},
		{
			name:        "NSTEMI is medical management",
			diagnosis:   "NSTEMI (Non-ST-Elevation Myocardial Infarction)",
			ev:          Evidence{Patient: Patient{}},
			contains:    []string{"Medical management with antiplatelets"},
			notContains: []string{"reperfusion", "Genetic"},
		},
		{
			name:      "unstable angina",
			diagnosis: "Unstable Angina",
			contains:  []string{"Medical management"},
		},
		{
			name:      "STEMI with MRI infarct",
			diagnosis: "STEMI (ST-Elevation Myocardial Infarction)",
			ev: Evidence{Findings: Findings{
				MRI: &MRIFindings{InfarctDetected: true, InfarctLocation: "Anterior"},
			}},
			contains: []string{"MRI shows infarct detected in the Anterior region."},
		},
		{
			name:      "MRI infarct without location",
			diagnosis: "STEMI",
			ev:        Evidence{Findings: Findings{MRI: &MRIFindings{InfarctDetected: true}}},
			contains:  []string{"in the unknown location region."},
		},
		{
			name:      "CAD uses the coronary calcium score",
			diagnosis: "Coronary Artery Disease",
			ev: Evidence{Findings: Findings{CT: &CTFindings{
				CoronaryCalciumScore:    Score(1200),
				AorticValveCalciumScore: Score(800),
			}}},
			contains:    []string{"coronary artery calcium score of 1200"},
			notContains: []string{"800"},
		},
		{
			name:      "CAD with CYP2C19",
			diagnosis: "Coronary Artery Disease (with genetic predisposition)",
			ev:        Evidence{Patient: Patient{GeneticVariants: []string{VariantCYP2C19}}},
			contains:  []string{"CYP2C19", "Genetic variants associated with CAD risk detected."},
		},
		{
			name:      "heart failure echo clause",
			diagnosis: "Heart Failure with Reduced Ejection Fraction (HFrEF)",
			ev:        Evidence{Findings: Findings{Echo: &EchoFindings{EjectionFraction: EFReduced}}},
			contains:  []string{"Echo results (Reduced EF, not available chamber size)"},
		},
		{
			name:      "aortic regurgitation",
			diagnosis: "Severe Aortic Regurgitation",
			ev:        Evidence{Findings: Findings{Echo: &EchoFindings{AorticValveFunction: SevereRegurgitation}}},
			contains:  []string{"Aortic Regurgitation depends on severity", "Echo shows Severe Regurgitation."},
		},
		{
			name:      "mitral regurgitation",
			diagnosis: "Mitral Regurgitation (Mild or Undetermined Severity)",
			contains:  []string{"Mitral Regurgitation depends on severity"},
		},
		{
			name:      "DCM with TTN",
			diagnosis: "Dilated Cardiomyopathy",
			ev:        Evidence{Patient: Patient{GeneticVariants: []string{VariantTTN}}},
			contains:  []string{"Titin-related", "Genetic counseling"},
		},
		{
			name:      "aortic stenosis",
			diagnosis: "Severe Aortic Stenosis",
			ev:        Evidence{Findings: Findings{CT: &CTFindings{AorticValveCalciumScore: Score(2000)}}},
			contains:  []string{"TAVR or SAVR", "aortic valve calcium score of 2000"},
		},
		{
			name:      "atrial fibrillation",
			diagnosis: "Cardiac Arrhythmia: Irregular Rhythm and Atrial Fibrillation",
			contains:  []string{"anticoagulation to prevent stroke"},
		},
		{
			name:        "other arrhythmia",
			diagnosis:   "Cardiac Arrhythmia: Tachycardia",
			contains:    []string{"cardioversion, ablation"},
			notContains: []string{"Atrial Fibrillation"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := PlanTreatment(tt.diagnosis, tt.ev)
			for _, s := range tt.contains {
				assert.Contains(t, plan, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, plan, s)
			}
		})
	}
}

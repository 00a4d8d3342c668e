package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heart-triage-agent/internal/triage"
)

// sequence replays fixed draws, then repeats the last one.
type sequence struct {
	draws []float64
	calls int
}

func (s *sequence) Float64() float64 {
	i := s.calls
	if i >= len(s.draws) {
		i = len(s.draws) - 1
	}
	s.calls++
	return s.draws[i]
}

func input(symptoms string, p triage.Patient) triage.AnalyzerInput {
	return triage.AnalyzerInput{
		Symptoms:   symptoms,
		Conditions: triage.Classify(symptoms),
		Patient:    p,
	}
}

func TestParseECGMode(t *testing.T) {
	mode, err := ParseECGMode("")
	require.NoError(t, err)
	assert.Equal(t, ECGModeCoupled, mode)

	mode, err = ParseECGMode("random")
	require.NoError(t, err)
	assert.Equal(t, ECGModeRandom, mode)

	_, err = ParseECGMode("psychic")
	assert.Error(t, err)
}

func TestNewAnalyzers(t *testing.T) {
	a := NewAnalyzers(ECGModeCoupled, &sequence{draws: []float64{0.9}})
	assert.IsType(t, &CoupledECG{}, a.ECG)
	assert.NotNil(t, a.Echo)
	assert.NotNil(t, a.CT)
	assert.NotNil(t, a.MRI)
	assert.NotNil(t, a.Arrhythmia)

	a = NewAnalyzers(ECGModeRandom, &sequence{draws: []float64{0.9}})
	assert.IsType(t, &RandomECG{}, a.ECG)
}

func TestNewRandomSource_Seeded(t *testing.T) {
	a, b := NewRandomSource(42), NewRandomSource(42)
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestCoupledECG(t *testing.T) {
	ecg := NewCoupledECG()
	assert.True(t, ecg.AnalyzeECG(input("Chest Pain at rest", triage.Patient{})).STEMI)
	assert.False(t, ecg.AnalyzeECG(input("arm pain", triage.Patient{})).STEMI)
}

func TestRandomECG(t *testing.T) {
	tests := []struct {
		name  string
		draws []float64
		want  triage.ECGFindings
	}{
		{"STEMI", []float64{0.1}, triage.ECGFindings{STEMI: true}},
		{"NSTEMI", []float64{0.5, 0.2}, triage.ECGFindings{NSTEMI: true}},
		{"unstable angina", []float64{0.5, 0.6, 0.4}, triage.ECGFindings{UnstableAngina: true}},
		{"clean", []float64{0.9}, triage.ECGFindings{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ecg := NewRandomECG(&sequence{draws: tt.draws})
			assert.Equal(t, tt.want, ecg.AnalyzeECG(input("chest pain", triage.Patient{})))
		})
	}
}

func TestEchoAnalyzer(t *testing.T) {
	echo := NewEchoAnalyzer()

	tests := []struct {
		name     string
		symptoms string
		patient  triage.Patient
		want     triage.EchoFindings
	}{
		{
			name:     "aortic stenosis only",
			symptoms: "dizziness",
			want:     triage.EchoFindings{ValveFunction: triage.ValveNormal, ChamberSize: triage.ChamberNormal, EjectionFraction: triage.EFNormal},
		},
		{
			name:     "obese patient has enlarged chambers",
			symptoms: "dizziness",
			patient:  triage.Patient{BMI: 32},
			want:     triage.EchoFindings{ValveFunction: triage.ValveNormal, ChamberSize: triage.ChamberEnlarged, EjectionFraction: triage.EFNormal},
		},
		{
			name:     "aortic regurgitation",
			symptoms: "bounding pulse",
			want: triage.EchoFindings{
				ValveFunction: triage.ValveNormal, ChamberSize: triage.ChamberNormal, EjectionFraction: triage.EFNormal,
				AorticValveFunction: triage.SevereRegurgitation,
			},
		},
		{
			name:     "swelling implies DCM and heart failure",
			symptoms: "swelling",
			want: triage.EchoFindings{
				ValveFunction: triage.ValveNormal, ChamberSize: triage.ChamberEnlarged, EjectionFraction: triage.EFReduced,
				MitralValveFunction: triage.SevereRegurgitation,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, echo.AnalyzeEcho(input(tt.symptoms, tt.patient)))
		})
	}
}

func TestEchoAnalyzer_HeartFailurePreserved(t *testing.T) {
	in := triage.AnalyzerInput{Conditions: triage.NewConditionSet(triage.HeartFailure)}
	assert.Equal(t, triage.EFPreserved, NewEchoAnalyzer().AnalyzeEcho(in).EjectionFraction)
}

func TestCTAnalyzer(t *testing.T) {
	ct := NewCTAnalyzer()

	f := ct.AnalyzeCT(triage.AnalyzerInput{Conditions: triage.NewConditionSet(triage.AorticStenosis, triage.AorticRegurgitation)})
	score, ok := f.GetAorticValveCalciumScore()
	require.True(t, ok)
	assert.Equal(t, 2500, score)
	_, ok = f.GetCoronaryCalciumScore()
	assert.False(t, ok)

	f = ct.AnalyzeCT(triage.AnalyzerInput{Conditions: triage.NewConditionSet(triage.AorticRegurgitation, triage.CoronaryArteryDisease)})
	score, _ = f.GetAorticValveCalciumScore()
	assert.Equal(t, 800, score)
	score, _ = f.GetCoronaryCalciumScore()
	assert.Equal(t, 1200, score)
}

func TestMRIAnalyzer(t *testing.T) {
	mri := NewMRIAnalyzer()

	f := mri.AnalyzeMRI(triage.AnalyzerInput{Conditions: triage.NewConditionSet(triage.HeartAttack)})
	assert.Equal(t, triage.MRIFindings{InfarctDetected: true, InfarctLocation: "Anterior", InfarctSize: "simulated_size"}, f)

	f = mri.AnalyzeMRI(triage.AnalyzerInput{Conditions: triage.NewConditionSet(triage.HeartFailure)})
	assert.False(t, f.InfarctDetected)
}

func TestArrhythmiaAnalyzer(t *testing.T) {
	tests := []struct {
		name     string
		symptoms string
		age      int
		strip    *triage.RhythmStrip
		draw     float64
		want     triage.ArrhythmiaFindings
	}{
		{
			name:  "tachycardia",
			strip: &triage.RhythmStrip{HeartRate: 120, Rhythm: "regular"},
			draw:  0.9,
			want:  triage.ArrhythmiaFindings{Detected: true, Type: "Tachycardia"},
		},
		{
			name:     "SVT with palpitations",
			symptoms: "palpitations",
			strip:    &triage.RhythmStrip{HeartRate: 170, Rhythm: "regular"},
			draw:     0.9,
			want:     triage.ArrhythmiaFindings{Detected: true, Type: "Tachycardia and Possible Supraventricular Tachycardia"},
		},
		{
			name:     "atrial fibrillation",
			symptoms: "palpitations",
			strip:    &triage.RhythmStrip{HeartRate: 80, Rhythm: "Irregular"},
			draw:     0.9,
			want:     triage.ArrhythmiaFindings{Detected: true, Type: "Irregular Rhythm and Atrial Fibrillation"},
		},
		{
			name:  "elderly severe bradycardia",
			age:   75,
			strip: &triage.RhythmStrip{HeartRate: 35, Rhythm: "regular"},
			draw:  0.9,
			want:  triage.ArrhythmiaFindings{Detected: true, Type: "Bradycardia and Possible Significant Bradycardia"},
		},
		{
			name:  "young severe bradycardia",
			age:   30,
			strip: &triage.RhythmStrip{HeartRate: 35, Rhythm: "regular"},
			draw:  0.9,
			want:  triage.ArrhythmiaFindings{Detected: true, Type: "Bradycardia"},
		},
		{
			name:  "normal rhythm",
			strip: &triage.RhythmStrip{HeartRate: 72, Rhythm: "regular"},
			draw:  0.9,
			want:  triage.ArrhythmiaFindings{},
		},
		{
			name:  "normal rhythm with an unlucky draw",
			strip: &triage.RhythmStrip{HeartRate: 72, Rhythm: "regular"},
			draw:  0.01,
			want:  triage.ArrhythmiaFindings{Detected: true, Type: "Indeterminate Arrhythmia (Subtle Signs or Random)"},
		},
		{
			name:  "unknown rate",
			strip: &triage.RhythmStrip{Rhythm: "regular"},
			draw:  0.9,
			want:  triage.ArrhythmiaFindings{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArrhythmiaAnalyzer(&sequence{draws: []float64{tt.draw}})
			p := triage.Patient{Age: tt.age, RhythmStrip: tt.strip}
			assert.Equal(t, tt.want, a.AnalyzeRhythm(input(tt.symptoms, p)))
		})
	}
}

package triage

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Condition is a candidate condition label produced by the classifier.
type Condition string

const (
	HeartAttack           Condition = "Heart Attack"
	HeartFailure          Condition = "Heart Failure"
	AorticStenosis        Condition = "Aortic Stenosis"
	AorticRegurgitation   Condition = "Aortic Regurgitation"
	MitralRegurgitation   Condition = "Mitral Regurgitation"
	DilatedCardiomyopathy Condition = "Dilated Cardiomyopathy"
	CoronaryArteryDisease Condition = "Coronary Artery Disease"
	CardiacArrhythmia     Condition = "Cardiac Arrhythmia"
	UnknownCondition      Condition = "Unknown"
)

// ConditionSet is an unordered, duplicate-free set of conditions.
// Callers test membership; iteration order carries no meaning.
type ConditionSet map[Condition]struct{}

func NewConditionSet(conds ...Condition) ConditionSet {
	s := make(ConditionSet, len(conds))
	for _, c := range conds {
		s[c] = struct{}{}
	}
	return s
}

func (s ConditionSet) Has(c Condition) bool {
	_, ok := s[c]
	return ok
}

// HasAny reports whether s intersects conds.
func (s ConditionSet) HasAny(conds ...Condition) bool {
	for _, c := range conds {
		if s.Has(c) {
			return true
		}
	}
	return false
}

// Sorted returns the labels in lexical order, for output and logs.
func (s ConditionSet) Sorted() []Condition {
	out := make([]Condition, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Modality identifiers, also used as the JSON keys of Findings.
const (
	ModalityECG        = "ecg_analysis"
	ModalityEcho       = "echo_analysis"
	ModalityCT         = "ct_scan_analysis"
	ModalityMRI        = "mri_analysis"
	ModalityArrhythmia = "cardiac_arrhythmia_analysis"
)

// Echo categorical values.
const (
	EFNormal    = "Normal"
	EFReduced   = "Reduced"
	EFPreserved = "Preserved"

	ChamberNormal   = "Normal"
	ChamberEnlarged = "Enlarged"

	ValveNormal           = "Normal"
	SevereRegurgitation   = "Severe Regurgitation"
	ModerateRegurgitation = "Moderate Regurgitation"
	SevereStenosis        = "Severe Stenosis"
	ModerateStenosis      = "Moderate Stenosis"
)

type ECGFindings struct {
	STEMI               bool     `json:"STEMI"`
	NSTEMI              bool     `json:"NSTEMI"`
	UnstableAngina      bool     `json:"Unstable Angina"`
	STElevationLeads    []string `json:"ST_elevation_leads,omitempty"`
	STDepressionLeads   []string `json:"ST_depression_leads,omitempty"`
	TWaveInversionLeads []string `json:"T_wave_inversion_leads,omitempty"`
}

func (e *ECGFindings) GetSTEMI() bool          { return e != nil && e.STEMI }
func (e *ECGFindings) GetNSTEMI() bool         { return e != nil && e.NSTEMI }
func (e *ECGFindings) GetUnstableAngina() bool { return e != nil && e.UnstableAngina }

type EchoFindings struct {
	ValveFunction                   string `json:"valve_function,omitempty"`
	ChamberSize                     string `json:"chamber_size,omitempty"`
	EjectionFraction                string `json:"ejection_fraction,omitempty"`
	RegionalWallMotionAbnormalities bool   `json:"regional_wall_motion_abnormalities"`
	AorticValveFunction             string `json:"aortic_valve_function,omitempty"`
	MitralValveFunction             string `json:"mitral_valve_function,omitempty"`
}

// Getters return "" when the echo was not performed or the field was not reported.

func (e *EchoFindings) GetValveFunction() string {
	if e == nil {
		return ""
	}
	return e.ValveFunction
}

func (e *EchoFindings) GetChamberSize() string {
	if e == nil {
		return ""
	}
	return e.ChamberSize
}

func (e *EchoFindings) GetEjectionFraction() string {
	if e == nil {
		return ""
	}
	return e.EjectionFraction
}

func (e *EchoFindings) GetAorticValveFunction() string {
	if e == nil {
		return ""
	}
	return e.AorticValveFunction
}

func (e *EchoFindings) GetMitralValveFunction() string {
	if e == nil {
		return ""
	}
	return e.MitralValveFunction
}

type CTFindings struct {
	AorticValveCalciumScore *int `json:"aortic_valve_calcium_score,omitempty"`
	CoronaryCalciumScore    *int `json:"coronary_calcium_score,omitempty"`
}

// GetAorticValveCalciumScore reports the score and whether one was measured.
func (c *CTFindings) GetAorticValveCalciumScore() (int, bool) {
	if c == nil || c.AorticValveCalciumScore == nil {
		return 0, false
	}
	return *c.AorticValveCalciumScore, true
}

func (c *CTFindings) GetCoronaryCalciumScore() (int, bool) {
	if c == nil || c.CoronaryCalciumScore == nil {
		return 0, false
	}
	return *c.CoronaryCalciumScore, true
}

// Score is a helper for building CTFindings literals.
func Score(v int) *int { return &v }

type MRIFindings struct {
	InfarctDetected bool   `json:"infarct_detected"`
	InfarctLocation string `json:"infarct_location,omitempty"`
	InfarctSize     string `json:"infarct_size,omitempty"`
}

func (m *MRIFindings) GetInfarctDetected() bool { return m != nil && m.InfarctDetected }

// GetInfarctLocation defaults to "unknown location".
func (m *MRIFindings) GetInfarctLocation() string {
	if m == nil || m.InfarctLocation == "" {
		return "unknown location"
	}
	return m.InfarctLocation
}

type ArrhythmiaFindings struct {
	Detected bool   `json:"arrhythmia_detected"`
	Type     string `json:"arrhythmia_type,omitempty"`
}

func (a *ArrhythmiaFindings) GetDetected() bool { return a != nil && a.Detected }

// GetType defaults to "Undetermined Type".
func (a *ArrhythmiaFindings) GetType() string {
	if a == nil || a.Type == "" {
		return "Undetermined Type"
	}
	return a.Type
}

// Findings is the per-run record of modality results. A nil entry means the
// modality was not assessed; each entry is written at most once per run.
type Findings struct {
	ECG        *ECGFindings        `json:"ecg_analysis,omitempty"`
	Echo       *EchoFindings       `json:"echo_analysis,omitempty"`
	CT         *CTFindings         `json:"ct_scan_analysis,omitempty"`
	MRI        *MRIFindings        `json:"mri_analysis,omitempty"`
	Arrhythmia *ArrhythmiaFindings `json:"cardiac_arrhythmia_analysis,omitempty"`
}

// Keys lists the assessed modalities in pipeline order.
func (f Findings) Keys() []string {
	var keys []string
	if f.ECG != nil {
		keys = append(keys, ModalityECG)
	}
	if f.MRI != nil {
		keys = append(keys, ModalityMRI)
	}
	if f.Echo != nil {
		keys = append(keys, ModalityEcho)
	}
	if f.CT != nil {
		keys = append(keys, ModalityCT)
	}
	if f.Arrhythmia != nil {
		keys = append(keys, ModalityArrhythmia)
	}
	return keys
}

func (f Findings) Has(modality string) bool {
	for _, k := range f.Keys() {
		if k == modality {
			return true
		}
	}
	return false
}

// RhythmStrip is the raw input for arrhythmia analysis. HeartRate 0 means unknown.
type RhythmStrip struct {
	HeartRate int    `json:"heart_rate" yaml:"heart_rate"`
	Rhythm    string `json:"rhythm" yaml:"rhythm"`
}

const (
	DefaultAge = 50
	DefaultBMI = 25.0
)

// Patient is the per-call patient context. Raw modality inputs are opaque
// placeholders; an empty value means the input is unavailable.
type Patient struct {
	Age             int          `json:"age,omitempty" yaml:"age"`
	BMI             float64      `json:"bmi,omitempty" yaml:"bmi"`
	HasHistory      bool         `json:"has_history" yaml:"has_history"`
	GeneticVariants []string     `json:"genetic_variants,omitempty" yaml:"genetic_variants"`
	ECGData         string       `json:"ecg_data,omitempty" yaml:"ecg_data"`
	MRIData         string       `json:"mri_data,omitempty" yaml:"mri_data"`
	EchoData        string       `json:"echo_data,omitempty" yaml:"echo_data"`
	CTData          string       `json:"ct_data,omitempty" yaml:"ct_data"`
	RhythmStrip     *RhythmStrip `json:"rhythm_strip,omitempty" yaml:"rhythm_strip"`
}

// AgeOrDefault returns DefaultAge when no age was recorded.
func (p Patient) AgeOrDefault() int {
	if p.Age <= 0 {
		return DefaultAge
	}
	return p.Age
}

// BMIOrDefault returns DefaultBMI when no BMI was recorded.
func (p Patient) BMIOrDefault() float64 {
	if p.BMI <= 0 {
		return DefaultBMI
	}
	return p.BMI
}

func (p Patient) HasVariant(names ...string) bool {
	for _, v := range p.GeneticVariants {
		for _, n := range names {
			if v == n {
				return true
			}
		}
	}
	return false
}

// DemoPatient is the built-in profile used when no profile is configured.
func DemoPatient() Patient {
	return Patient{
		Age:             55,
		HasHistory:      true,
		GeneticVariants: []string{"9p21.3 variant", "APOE E4 allele"},
		ECGData:         "simulated_ecg_waveform",
		MRIData:         "simulated_mri_data",
		EchoData:        "simulated_echo_data",
		CTData:          "simulated_ct_data",
	}
}

// Stage marks a completed step of an orchestration run.
type Stage string

const (
	StageClassified   Stage = "classified"
	StageECGGated     Stage = "ecg_gated"
	StageImagingGated Stage = "imaging_gated"
	StageRhythmGated  Stage = "rhythm_gated"
	StageAggregated   Stage = "aggregated"
	StagePlanned      Stage = "planned"
	StageDone         Stage = "done"
)

// Request is one triage input. Patient overrides the service default when set.
type Request struct {
	Symptoms   string
	Patient    *Patient
	Attachment string
}

// Result is the output of one orchestration run.
type Result struct {
	ID            uuid.UUID   `json:"id"`
	Symptoms      string      `json:"symptoms"`
	Conditions    []Condition `json:"conditions"`
	Findings      Findings    `json:"findings"`
	Diagnosis     string      `json:"diagnosis"`
	TreatmentPlan string      `json:"treatment_plan"`
	Rule          string      `json:"rule"`
	Stages        []Stage     `json:"stages"`
	Attachment    string      `json:"ecg_file_received,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

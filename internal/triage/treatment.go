package triage

import (
	"fmt"
	"strings"
)

const DefaultTreatmentPlan = "Consult a medical professional for a personalized plan."

// TreatmentRule is one branch of the treatment priority chain. It fires when
// the diagnosis contains any of Matches.
type TreatmentRule struct {
	Name    string
	Matches []string
	Plan    func(diagnosis string, ev Evidence) string
}

// TreatmentRules is evaluated top to bottom. NSTEMI and Unstable Angina come
// before STEMI because "NSTEMI" contains "STEMI".
var TreatmentRules = []TreatmentRule{
	// No built-in diagnosis says "Heart Attack"; kept for diagnoses passed in directly.
	{Name: "heart_attack", Matches: []string{"Heart Attack"}, Plan: planHeartAttack},
	{Name: "nstemi_unstable_angina", Matches: []string{"NSTEMI", "Unstable Angina"}, Plan: planNSTEMI},
	{Name: "stemi", Matches: []string{"STEMI"}, Plan: planSTEMI},
	{Name: "coronary_artery_disease", Matches: []string{"Coronary Artery Disease"}, Plan: planCoronaryArteryDisease},
	{Name: "heart_failure", Matches: []string{"Heart Failure"}, Plan: planHeartFailure},
	{Name: "aortic_regurgitation", Matches: []string{"Aortic Regurgitation"}, Plan: planAorticRegurgitation},
	{Name: "mitral_regurgitation", Matches: []string{"Mitral Regurgitation"}, Plan: planMitralRegurgitation},
	{Name: "dilated_cardiomyopathy", Matches: []string{"Dilated Cardiomyopathy"}, Plan: planDilatedCardiomyopathy},
	{Name: "aortic_stenosis", Matches: []string{"Aortic Stenosis"}, Plan: planAorticStenosis},
	{Name: "cardiac_arrhythmia", Matches: []string{"Cardiac Arrhythmia"}, Plan: planCardiacArrhythmia},
}

// PlanTreatment picks the first rule matching the diagnosis text. Findings
// may be empty; every clause that reads them has its own default.
func PlanTreatment(diagnosis string, ev Evidence) string {
	return PlanTreatmentWith(TreatmentRules, diagnosis, ev)
}

func PlanTreatmentWith(rules []TreatmentRule, diagnosis string, ev Evidence) string {
	for _, r := range rules {
		if containsAny(diagnosis, r.Matches) {
			return r.Plan(diagnosis, ev)
		}
	}
	return DefaultTreatmentPlan
}

func planHeartAttack(_ string, ev Evidence) string {
	var b strings.Builder
	b.WriteString("Seek immediate medical attention. Treatment is critical and depends on the type of heart attack. " +
		"May include medication (aspirin, nitroglycerin), angioplasty, or bypass surgery.")
	acuteCoronaryClauses(&b, ev)
	return b.String()
}

func planNSTEMI(_ string, ev Evidence) string {
	var b strings.Builder
	b.WriteString("Medical management with antiplatelets, anticoagulants, and other medications. " +
		"May require angiography and intervention.")
	acuteCoronaryClauses(&b, ev)
	return b.String()
}

func planSTEMI(_ string, ev Evidence) string {
	var b strings.Builder
	b.WriteString("Immediate reperfusion therapy (PCI or fibrinolysis) is crucial for STEMI. " +
		"Also includes medications (aspirin, heparin, antiplatelets).")
	acuteCoronaryClauses(&b, ev)
	return b.String()
}

func acuteCoronaryClauses(b *strings.Builder, ev Evidence) {
	if mri := ev.Findings.MRI; mri.GetInfarctDetected() {
		fmt.Fprintf(b, " MRI shows infarct detected in the %s region.", mri.GetInfarctLocation())
	}
	if ev.Patient.HasRecognizedVariant() {
		b.WriteString(" Genetic variants associated with increased heart attack risk detected. " +
			"Aggressive risk factor management and family screening are recommended.")
	}
}

func planCoronaryArteryDisease(_ string, ev Evidence) string {
	var b strings.Builder
	b.WriteString("Management of Coronary Artery Disease typically involves lifestyle changes (diet, exercise, smoking cessation), " +
		"medications (e.g., statins, antiplatelets, beta-blockers), and potentially procedures like angioplasty or bypass surgery depending on the severity.")
	if ev.Patient.HasVariant(VariantCYP2C19) {
		b.WriteString(" Considering genetic variants (e.g., CYP2C19), pharmacological therapy may need adjustment " +
			"(e.g., alternative antiplatelets or dosage) to optimize effectiveness and avoid complications like increased bleeding or major cardiac events.")
	}
	if score, ok := ev.Findings.CT.GetCoronaryCalciumScore(); ok {
		fmt.Fprintf(&b, " CT scan shows a coronary artery calcium score of %d, which helps assess risk.", score)
	}
	echoClause(&b, ev.Findings.Echo, "provide important information about heart function to guide management.")
	if ev.Patient.HasRecognizedVariant() {
		b.WriteString(" Genetic variants associated with CAD risk detected. " +
			"Intensified risk factor management and consideration of family screening are important.")
	}
	return b.String()
}

func planHeartFailure(_ string, ev Evidence) string {
	var b strings.Builder
	b.WriteString("Treatment for Heart Failure involves managing symptoms and improving heart function. " +
		"May include lifestyle changes, medications (ACE inhibitors, beta-blockers, diuretics), and potentially devices or surgery.")
	if ev.Patient.HasVariant(VariantBeta1) {
		b.WriteString(" Considering genetic variants (e.g., beta-1 adrenergic receptor), beta-blocker therapy may require " +
			"dosage adjustment or closer monitoring to optimize effectiveness and minimize adverse events.")
	}
	echoClause(&b, ev.Findings.Echo, "are key to guiding treatment strategy for Heart Failure.")
	if ev.Patient.HasRecognizedVariant() {
		b.WriteString(" Genetic variants associated with Heart Failure risk detected. Consider targeted therapies and family screening.")
	}
	return b.String()
}

func planAorticRegurgitation(_ string, ev Evidence) string {
	var b strings.Builder
	b.WriteString("Management of Aortic Regurgitation depends on severity. Severe cases may require surgical valve replacement or repair. " +
		"Mild to moderate cases are typically monitored.")
	valveClauses(&b, ev.Findings.Echo.GetAorticValveFunction(), ev.Patient)
	return b.String()
}

func planMitralRegurgitation(_ string, ev Evidence) string {
	var b strings.Builder
	b.WriteString("Management of Mitral Regurgitation depends on severity. Severe cases may require surgical valve repair or replacement. " +
		"Mild to moderate cases are typically monitored.")
	valveClauses(&b, ev.Findings.Echo.GetMitralValveFunction(), ev.Patient)
	return b.String()
}

func valveClauses(b *strings.Builder, function string, p Patient) {
	if function != "" {
		fmt.Fprintf(b, " Echo shows %s. Review other factors that may influence severity.", function)
	}
	if p.HasRecognizedVariant() {
		b.WriteString(" Genetic factors may influence valve development or connective tissue, " +
			"consider relevant genetic testing and family screening.")
	}
}

func planDilatedCardiomyopathy(_ string, ev Evidence) string {
	var b strings.Builder
	b.WriteString("Treatment for Dilated Cardiomyopathy focuses on managing heart failure symptoms and improving cardiac function. " +
		"May include medications, devices, or in severe cases, heart transplant.")
	if ev.Patient.HasRecognizedVariant() {
		b.WriteString(" Genetic variants associated with Dilated Cardiomyopathy detected. Genetic counseling and family screening are strongly recommended. " +
			"Specific therapies may be influenced by the underlying genetic cause.")
		if ev.Patient.HasVariant(VariantBeta1) {
			b.WriteString(" Considering genetic variants (e.g., beta-1 adrenergic receptor), beta-blocker therapy may require dosage adjustment or closer monitoring.")
		}
		if ev.Patient.HasVariant(VariantTTN) {
			b.WriteString(" Consider therapies relevant to Titin-related cardiomyopathy.")
		}
	}
	echoClause(&b, ev.Findings.Echo, "are important for assessing the severity and guiding treatment.")
	return b.String()
}

func planAorticStenosis(_ string, ev Evidence) string {
	var b strings.Builder
	b.WriteString("Management of Aortic Stenosis depends on severity. Severe cases typically require valve replacement (TAVR or SAVR). " +
		"Moderate cases are monitored.")
	if ev.Patient.HasVariant(VariantLRP5) {
		b.WriteString(" Considering genetic variants (e.g., LRP5), management and timing of intervention for Aortic Stenosis may need careful consideration.")
	}
	if v := ev.Findings.Echo.GetValveFunction(); v != "" {
		fmt.Fprintf(&b, " Echo shows %s. Review calcium score and symptoms for severity.", v)
	}
	if score, ok := ev.Findings.CT.GetAorticValveCalciumScore(); ok {
		fmt.Fprintf(&b, " CT scan shows an aortic valve calcium score of %d. This score is important for assessing severity.", score)
	}
	if ev.Patient.HasRecognizedVariant() {
		b.WriteString(" Genetic variants associated with Aortic Stenosis risk detected. " +
			"Family screening and potentially earlier intervention may be considered.")
	}
	return b.String()
}

func planCardiacArrhythmia(diagnosis string, _ Evidence) string {
	if strings.Contains(diagnosis, "Atrial Fibrillation") {
		return "Treatment for Atrial Fibrillation may include rate control or rhythm control medications, " +
			"anticoagulation to prevent stroke, and lifestyle changes."
	}
	return "Management of Cardiac Arrhythmia depends on the specific type. May include medications, cardioversion, ablation, " +
		"or device implantation (pacemaker, defibrillator). Genetic testing may be relevant for some types of inherited arrhythmias."
}

func echoClause(b *strings.Builder, echo *EchoFindings, purpose string) {
	if echo == nil {
		return
	}
	fmt.Fprintf(b, " Echo results (%s EF, %s chamber size) %s",
		orNotAvailable(echo.GetEjectionFraction()), orNotAvailable(echo.GetChamberSize()), purpose)
}

func orNotAvailable(v string) string {
	if v == "" {
		return "not available"
	}
	return v
}

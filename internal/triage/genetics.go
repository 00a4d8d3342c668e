package triage

// Genetic variants the rules know about.
const (
	Variant9p21    = "9p21.3 variant"
	VariantAPOE4   = "APOE E4 allele"
	VariantDCM     = "Dilated cardiomyopathy variant"
	VariantHCM     = "Hypertrophic cardiomyopathy variant"
	VariantLRP5    = "LRP5 variant"
	VariantCYP2C19 = "CYP2C19 variant"
	VariantBeta1   = "beta-1 adrenergic receptor variant"
	VariantTTN     = "TTN variant"
)

// RecognizedVariants gates the generic genetic-risk sentences in treatment plans.
var RecognizedVariants = []string{
	Variant9p21,
	VariantAPOE4,
	VariantDCM,
	VariantHCM,
	VariantLRP5,
	VariantCYP2C19,
	VariantBeta1,
	VariantTTN,
}

func (p Patient) HasRecognizedVariant() bool {
	return p.HasVariant(RecognizedVariants...)
}

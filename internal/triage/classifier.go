package triage

import "strings"

// KeywordRule maps any of its keywords, matched as substrings of the
// lower-cased symptom text, to one or more conditions.
type KeywordRule struct {
	Keywords   []string
	Conditions []Condition
}

// KeywordTable is evaluated top to bottom; every matching rule contributes.
var KeywordTable = []KeywordRule{
	{
		Keywords:   []string{"chest pain", "discomfort", "arm pain"},
		Conditions: []Condition{HeartAttack},
	},
	{
		Keywords:   []string{"angina", "chest discomfort"},
		Conditions: []Condition{CoronaryArteryDisease},
	},
	{
		Keywords:   []string{"shortness of breath", "difficulty breathing"},
		Conditions: []Condition{HeartFailure, AorticStenosis, AorticRegurgitation, MitralRegurgitation, DilatedCardiomyopathy},
	},
	{
		Keywords:   []string{"fatigue", "fatique", "tiredness"},
		Conditions: []Condition{HeartFailure, AorticRegurgitation, MitralRegurgitation, DilatedCardiomyopathy},
	},
	{
		Keywords:   []string{"swelling", "swollen ankles", "edema"},
		Conditions: []Condition{HeartFailure, MitralRegurgitation, DilatedCardiomyopathy},
	},
	{
		Keywords:   []string{"dizziness", "syncope"},
		Conditions: []Condition{AorticStenosis},
	},
	{
		Keywords:   []string{"bounding pulse"},
		Conditions: []Condition{AorticRegurgitation},
	},
	{
		Keywords:   []string{"palpitation", "irregular heartbeat"},
		Conditions: []Condition{MitralRegurgitation, DilatedCardiomyopathy, CardiacArrhythmia},
	},
}

// Classify maps free text to candidate conditions using KeywordTable.
// It is total: text that matches nothing, including "", yields {Unknown}.
func Classify(text string) ConditionSet {
	return ClassifyWith(KeywordTable, text)
}

func ClassifyWith(table []KeywordRule, text string) ConditionSet {
	lower := strings.ToLower(text)
	set := NewConditionSet()
	for _, rule := range table {
		if !containsAny(lower, rule.Keywords) {
			continue
		}
		for _, c := range rule.Conditions {
			set[c] = struct{}{}
		}
	}
	if len(set) == 0 {
		set[UnknownCondition] = struct{}{}
	}
	return set
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

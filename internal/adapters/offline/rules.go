package offline

import "github.com/corey/medreport/internal/domain/report"

// Symptoms that on their own call for emergency or prompt care.
var (
	emergencySymptoms = []string{
		"Chest pain", "Coughing up blood", "Seizures", "Fainting", "Difficulty speaking",
	}
	highSymptoms = []string{
		"Shortness of breath", "Confusion", "Blood in stool", "Blood in urine",
		"Yellow skin", "Rapid heartbeat", "Difficulty swallowing",
	}
)

// Free-text phrases that raise urgency even when no catalog symptom matches.
var (
	emergencyPhrases = []string{
		"not breathing", "unconscious", "suicidal", "overdose", "severe bleeding",
		"can't breathe", "cannot breathe", "anaphylaxis",
	}
	highPhrases = []string{
		"severe", "worst", "high fever", "getting worse", "pregnant",
	}
)

// conditionRule suggests a condition when enough of its symptoms are present.
type conditionRule struct {
	name      string
	symptoms  []string
	rationale string
}

// minRuleMatches is how many of a rule's symptoms must be present.
const minRuleMatches = 2

// maxConditions caps the suggested conditions per report.
const maxConditions = 3

var conditionRules = []conditionRule{
	{"Common cold", []string{"Runny nose", "Nasal congestion", "Sneezing", "Sore throat", "Cough"}, "upper airway symptoms"},
	{"Influenza-like illness", []string{"Fever", "Muscle aches", "Fatigue", "Cough", "Chills", "Headache"}, "systemic symptoms with fever"},
	{"Gastroenteritis", []string{"Nausea", "Vomiting", "Diarrhea", "Abdominal pain", "Fever"}, "acute digestive upset"},
	{"Gastroesophageal reflux", []string{"Heartburn", "Indigestion", "Chest pain", "Difficulty swallowing"}, "reflux pattern"},
	{"Migraine", []string{"Headache", "Nausea", "Blurred vision", "Dizziness"}, "headache with neurological features"},
	{"Urinary tract infection", []string{"Painful urination", "Frequent urination", "Blood in urine", "Flank pain", "Fever"}, "urinary symptoms"},
	{"Anxiety disorder", []string{"Anxiety", "Palpitations", "Insomnia", "Panic attacks", "Irritability"}, "anxiety with physical symptoms"},
	{"Allergic reaction", []string{"Hives", "Itching", "Rash", "Sneezing", "Watery eyes"}, "allergy pattern"},
	{"Cardiac event", []string{"Chest pain", "Shortness of breath", "Palpitations", "Fainting"}, "cardiac warning signs"},
}

// likelihood maps the share of a rule's symptoms present to a label.
func likelihood(matched, total int) string {
	ratio := float64(matched) / float64(total)
	switch {
	case ratio >= 0.6:
		return "high"
	case ratio >= 0.35:
		return "medium"
	}
	return "low"
}

var recommendations = map[report.Urgency][]string{
	report.UrgencyEmergency: {
		"Call emergency services or go to the nearest emergency department now.",
		"Do not drive yourself.",
	},
	report.UrgencyHigh: {
		"Contact a doctor or urgent care clinic today.",
		"Seek emergency care if symptoms get worse.",
	},
	report.UrgencyModerate: {
		"Book an appointment with your doctor within the next few days.",
		"Rest, stay hydrated and track how symptoms change.",
	},
	report.UrgencyLow: {
		"Self-care is usually enough; rest and stay hydrated.",
		"See a doctor if symptoms last more than a week or get worse.",
	},
}

package models

func FlowOptions() []string {
	return []string{FlowNone, FlowLight, FlowMedium, FlowHeavy}
}

func SymptomOptions() []string {
	return []string{
		"cramps",
		"headache",
		"breast_tenderness",
		"acne",
		"fatigue",
		"bloating",
	}
}

func MoodOptions() []string {
	return []string{
		"happy",
		"sad",
		"anxious",
		"irritable",
		"focused",
		"energetic",
		"tired",
	}
}

func IsKnownOption(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}

package describe

// Instruction wraps a description in the grounding prompt handed to a
// language model.
func Instruction(description string) string {
	return "Current camera view analysis: " + description + ". " +
		"CRITICAL: Only describe what is explicitly listed in the analysis. " +
		"Do NOT invent, assume, or hallucinate any objects, people, measurements, or details not present in the data. " +
		"If no objects are detected, simply describe the lighting and colors. " +
		"Never make up specific measurements or object names."
}

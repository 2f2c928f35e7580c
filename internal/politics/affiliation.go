package politics

// Affiliation is an interest-group faction. Identity is immutable; state
// (ideology, party membership) is dynamic. Affiliations never die — they may
// become independent (member of no party) and later rejoin one.
type Affiliation struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Ethnicity Ethnicity `json:"ethnicity"`
	Area      Area      `json:"area"`

	// BaseIdeology is the static generation seed. Ideology is the dynamic
	// position, the average of living members, falling back to BaseIdeology
	// when membership is zero.
	BaseIdeology Ideology `json:"base_ideology"`
	Ideology     Ideology `json:"ideology"`
}

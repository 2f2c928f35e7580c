package politics

import "time"

// SeatSpeaker is the sentinel seat code for the Speaker of the house.
const SeatSpeaker = "SPEAKER"

// HistoryEntry is one line in a character's append-only audit log.
type HistoryEntry struct {
	Date time.Time `json:"date"`
	Text string    `json:"text"`
}

// Character is a politician. Dead characters are retained for history
// integrity — IsAlive flips false, the record is never removed.
type Character struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	CurrentSeatCode string    `json:"current_seat_code,omitempty"` // constituency code or SeatSpeaker
	AffiliationID   string    `json:"affiliation_id"`
	Ethnicity       Ethnicity `json:"ethnicity"`
	HomeState       string    `json:"home_state"`
	IsPlayer        bool      `json:"is_player"`

	// Capability stats, each in [0,100].
	Charisma    float64 `json:"charisma"`
	Influence   float64 `json:"influence"`
	Recognition float64 `json:"recognition"`

	DateOfBirth         time.Time `json:"date_of_birth"`
	IsAlive             bool      `json:"is_alive"`
	IsAffiliationLeader bool      `json:"is_affiliation_leader"` // derived, recomputed periodically
	IsMP                bool      `json:"is_mp"`

	Ideology Ideology       `json:"ideology"`
	History  []HistoryEntry `json:"history"`
}

// Age returns the character's age in whole years at the given date.
func (c *Character) Age(at time.Time) int {
	years := at.Year() - c.DateOfBirth.Year()
	if at.YearDay() < c.DateOfBirth.YearDay() {
		years--
	}
	return years
}

// LogHistory appends an audit entry.
func (c *Character) LogHistory(date time.Time, text string) {
	c.History = append(c.History, HistoryEntry{Date: date, Text: text})
}

// Package persistence provides SQLite-based snapshot storage for the
// full political world state.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/azmanhj/dewansim/internal/engine"
	"github.com/azmanhj/dewansim/internal/politics"
)

// DB wraps a SQLite connection for world state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS characters (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		seat_code TEXT NOT NULL,
		affiliation_id TEXT NOT NULL,
		ethnicity TEXT NOT NULL,
		home_state TEXT NOT NULL,
		is_player INTEGER NOT NULL,
		charisma REAL NOT NULL,
		influence REAL NOT NULL,
		recognition REAL NOT NULL,
		date_of_birth TEXT NOT NULL,
		alive INTEGER NOT NULL,
		is_mp INTEGER NOT NULL,
		eco REAL NOT NULL,
		gov REAL NOT NULL,
		history_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS affiliations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		ethnicity TEXT NOT NULL,
		area TEXT NOT NULL,
		base_eco REAL NOT NULL,
		base_gov REAL NOT NULL,
		eco REAL NOT NULL,
		gov REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS parties (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		color TEXT NOT NULL,
		leader_id TEXT NOT NULL,
		deputy_leader_id TEXT NOT NULL,
		ethnicity_focus TEXT NOT NULL,
		unity REAL NOT NULL,
		affiliations_json TEXT NOT NULL,
		branches_json TEXT NOT NULL,
		contested_json TEXT NOT NULL,
		relations_json TEXT NOT NULL,
		leader_history_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS alliances (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		leader_party_id TEXT NOT NULL,
		members_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS seats (
		code TEXT PRIMARY KEY,
		holder_party_id TEXT NOT NULL,
		stronghold_aff_id TEXT NOT NULL,
		stronghold_terms INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS election_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		record_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_characters_alive ON characters(alive);
	CREATE INDEX IF NOT EXISTS idx_characters_affiliation ON characters(affiliation_id);
	CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveCharacters writes the full roster (full replace).
func (db *DB) SaveCharacters(roster []*politics.Character) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM characters"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO characters
		(id, name, seat_code, affiliation_id, ethnicity, home_state, is_player,
		 charisma, influence, recognition, date_of_birth, alive, is_mp,
		 eco, gov, history_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range roster {
		historyJSON, _ := json.Marshal(c.History)
		_, err := stmt.Exec(
			c.ID, c.Name, c.CurrentSeatCode, c.AffiliationID,
			string(c.Ethnicity), c.HomeState, boolInt(c.IsPlayer),
			c.Charisma, c.Influence, c.Recognition,
			c.DateOfBirth.Format(time.RFC3339), boolInt(c.IsAlive), boolInt(c.IsMP),
			c.Ideology.Economic, c.Ideology.Governance, string(historyJSON),
		)
		if err != nil {
			return fmt.Errorf("insert character %s: %w", c.ID, err)
		}
	}

	return tx.Commit()
}

// SaveAffiliations writes all affiliations (full replace).
func (db *DB) SaveAffiliations(affs map[string]*politics.Affiliation) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM affiliations"); err != nil {
		return err
	}

	for _, a := range affs {
		_, err := tx.Exec(`INSERT INTO affiliations
			(id, name, ethnicity, area, base_eco, base_gov, eco, gov)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.Name, string(a.Ethnicity), string(a.Area),
			a.BaseIdeology.Economic, a.BaseIdeology.Governance,
			a.Ideology.Economic, a.Ideology.Governance,
		)
		if err != nil {
			return fmt.Errorf("insert affiliation %s: %w", a.ID, err)
		}
	}

	return tx.Commit()
}

// SaveParties writes all parties (full replace). Nested structures go
// to JSON columns.
func (db *DB) SaveParties(parties []*politics.Party) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM parties"); err != nil {
		return err
	}

	for _, p := range parties {
		affsJSON, _ := json.Marshal(p.AffiliationIDs)
		branchesJSON, _ := json.Marshal(p.StateBranches)
		contestedJSON, _ := json.Marshal(p.ContestedSeats)
		relationsJSON, _ := json.Marshal(p.Relations)
		historyJSON, _ := json.Marshal(p.LeaderHistory)

		_, err := tx.Exec(`INSERT INTO parties
			(id, name, color, leader_id, deputy_leader_id, ethnicity_focus, unity,
			 affiliations_json, branches_json, contested_json, relations_json, leader_history_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Color, p.LeaderID, p.DeputyLeaderID,
			string(p.EthnicityFocus), p.Unity,
			string(affsJSON), string(branchesJSON), string(contestedJSON),
			string(relationsJSON), string(historyJSON),
		)
		if err != nil {
			return fmt.Errorf("insert party %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// SaveAlliances writes all alliances (full replace).
func (db *DB) SaveAlliances(alliances []*politics.Alliance) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM alliances"); err != nil {
		return err
	}

	for _, a := range alliances {
		membersJSON, _ := json.Marshal(a.MemberPartyIDs)
		_, err := tx.Exec(`INSERT INTO alliances
			(id, name, type, leader_party_id, members_json)
			VALUES (?, ?, ?, ?, ?)`,
			a.ID, a.Name, string(a.Type), a.LeaderPartyID, string(membersJSON),
		)
		if err != nil {
			return fmt.Errorf("insert alliance %s: %w", a.ID, err)
		}
	}

	return tx.Commit()
}

// SaveSeats writes seat holders and strongholds (full replace).
func (db *DB) SaveSeats(results map[string]string, strongholds map[string]engine.Stronghold) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM seats"); err != nil {
		return err
	}

	codes := make(map[string]bool, len(results))
	for code := range results {
		codes[code] = true
	}
	for code := range strongholds {
		codes[code] = true
	}

	for code := range codes {
		sh := strongholds[code]
		_, err := tx.Exec(`INSERT INTO seats
			(code, holder_party_id, stronghold_aff_id, stronghold_terms)
			VALUES (?, ?, ?, ?)`,
			code, results[code], sh.AffiliationID, sh.Terms,
		)
		if err != nil {
			return fmt.Errorf("insert seat %s: %w", code, err)
		}
	}

	return tx.Commit()
}

// SaveHistory writes the election history (full replace, JSON records).
func (db *DB) SaveHistory(history []engine.ElectionRecord) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM election_history"); err != nil {
		return err
	}

	for i, rec := range history {
		recJSON, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal election record %d: %w", i, err)
		}
		if _, err := tx.Exec("INSERT INTO election_history (record_json) VALUES (?)", string(recJSON)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveEvents replaces the stored audit log with the current ring buffer.
func (db *DB) SaveEvents(events []engine.Event) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM events"); err != nil {
		return err
	}

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (date, title, description, category) VALUES (?, ?, ?, ?)",
			e.Date.Format(time.RFC3339), e.Title, e.Description, e.Category,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveMeta stores a key-value pair in world metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}

// SaveWorldState performs a full snapshot of the simulation.
func (db *DB) SaveWorldState(sim *engine.Simulation) error {
	slog.Info("saving world state",
		"characters", len(sim.Characters), "parties", len(sim.Parties))

	if err := db.SaveCharacters(sim.Characters); err != nil {
		return fmt.Errorf("save characters: %w", err)
	}
	if err := db.SaveAffiliations(sim.Affiliations); err != nil {
		return fmt.Errorf("save affiliations: %w", err)
	}
	if err := db.SaveParties(sim.Parties); err != nil {
		return fmt.Errorf("save parties: %w", err)
	}
	if err := db.SaveAlliances(sim.Alliances); err != nil {
		return fmt.Errorf("save alliances: %w", err)
	}
	if err := db.SaveSeats(sim.ElectionResults, sim.Strongholds); err != nil {
		return fmt.Errorf("save seats: %w", err)
	}
	if err := db.SaveHistory(sim.History); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	if err := db.SaveEvents(sim.Events); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	if err := db.saveMetaState(sim); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	slog.Info("world state saved")
	return nil
}

func (db *DB) saveMetaState(sim *engine.Simulation) error {
	govJSON := "null"
	if sim.Government != nil {
		b, err := json.Marshal(sim.Government)
		if err != nil {
			return err
		}
		govJSON = string(b)
	}
	meta := map[string]string{
		"date":                sim.Date.Format(time.RFC3339),
		"next_election":       sim.NextElection.Format(time.RFC3339),
		"next_party_election": sim.NextPartyElection.Format(time.RFC3339),
		"system":              string(sim.System),
		"speaker_id":          sim.SpeakerID,
		"regime_party_id":     sim.RegimePartyID,
		"regime_since":        sim.RegimeSince.Format(time.RFC3339),
		"big_tent_triggered":  fmt.Sprintf("%t", sim.BigTentTriggered),
		"player_character_id": sim.PlayerCharacterID,
		"government":          govJSON,
	}
	for k, v := range meta {
		if err := db.SaveMeta(k, v); err != nil {
			return err
		}
	}
	return nil
}

// HasSnapshot reports whether the database contains a saved world.
func (db *DB) HasSnapshot() bool {
	_, err := db.GetMeta("date")
	return err == nil
}

// LoadWorldState restores a snapshot into the given simulation, which
// must already carry the country, RNG, and spawner.
func (db *DB) LoadWorldState(sim *engine.Simulation) error {
	if err := db.loadCharacters(sim); err != nil {
		return fmt.Errorf("load characters: %w", err)
	}
	if err := db.loadAffiliations(sim); err != nil {
		return fmt.Errorf("load affiliations: %w", err)
	}
	if err := db.loadParties(sim); err != nil {
		return fmt.Errorf("load parties: %w", err)
	}
	if err := db.loadAlliances(sim); err != nil {
		return fmt.Errorf("load alliances: %w", err)
	}
	if err := db.loadSeats(sim); err != nil {
		return fmt.Errorf("load seats: %w", err)
	}
	if err := db.loadHistory(sim); err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if err := db.loadEvents(sim); err != nil {
		return fmt.Errorf("load events: %w", err)
	}
	if err := db.loadMetaState(sim); err != nil {
		return fmt.Errorf("load meta: %w", err)
	}

	sim.RefreshAffiliationLeaders()
	sim.UpdateStats()
	slog.Info("world state restored",
		"date", sim.Date.Format("2006-01-02"),
		"characters", len(sim.Characters), "parties", len(sim.Parties))
	return nil
}

type characterRow struct {
	ID            string  `db:"id"`
	Name          string  `db:"name"`
	SeatCode      string  `db:"seat_code"`
	AffiliationID string  `db:"affiliation_id"`
	Ethnicity     string  `db:"ethnicity"`
	HomeState     string  `db:"home_state"`
	IsPlayer      int     `db:"is_player"`
	Charisma      float64 `db:"charisma"`
	Influence     float64 `db:"influence"`
	Recognition   float64 `db:"recognition"`
	DateOfBirth   string  `db:"date_of_birth"`
	Alive         int     `db:"alive"`
	IsMP          int     `db:"is_mp"`
	Eco           float64 `db:"eco"`
	Gov           float64 `db:"gov"`
	HistoryJSON   string  `db:"history_json"`
}

func (db *DB) loadCharacters(sim *engine.Simulation) error {
	var rows []characterRow
	if err := db.conn.Select(&rows, "SELECT * FROM characters"); err != nil {
		return err
	}
	for _, r := range rows {
		dob, err := time.Parse(time.RFC3339, r.DateOfBirth)
		if err != nil {
			return fmt.Errorf("character %s date_of_birth: %w", r.ID, err)
		}
		c := &politics.Character{
			ID:              r.ID,
			Name:            r.Name,
			CurrentSeatCode: r.SeatCode,
			AffiliationID:   r.AffiliationID,
			Ethnicity:       politics.Ethnicity(r.Ethnicity),
			HomeState:       r.HomeState,
			IsPlayer:        r.IsPlayer != 0,
			Charisma:        r.Charisma,
			Influence:       r.Influence,
			Recognition:     r.Recognition,
			DateOfBirth:     dob,
			IsAlive:         r.Alive != 0,
			IsMP:            r.IsMP != 0,
			Ideology:        politics.Ideology{Economic: r.Eco, Governance: r.Gov},
		}
		if err := json.Unmarshal([]byte(r.HistoryJSON), &c.History); err != nil {
			return fmt.Errorf("character %s history: %w", r.ID, err)
		}
		sim.AddCharacter(c)
	}
	return nil
}

type affiliationRow struct {
	ID        string  `db:"id"`
	Name      string  `db:"name"`
	Ethnicity string  `db:"ethnicity"`
	Area      string  `db:"area"`
	BaseEco   float64 `db:"base_eco"`
	BaseGov   float64 `db:"base_gov"`
	Eco       float64 `db:"eco"`
	Gov       float64 `db:"gov"`
}

func (db *DB) loadAffiliations(sim *engine.Simulation) error {
	var rows []affiliationRow
	if err := db.conn.Select(&rows, "SELECT * FROM affiliations"); err != nil {
		return err
	}
	for _, r := range rows {
		sim.Affiliations[r.ID] = &politics.Affiliation{
			ID:           r.ID,
			Name:         r.Name,
			Ethnicity:    politics.Ethnicity(r.Ethnicity),
			Area:         politics.Area(r.Area),
			BaseIdeology: politics.Ideology{Economic: r.BaseEco, Governance: r.BaseGov},
			Ideology:     politics.Ideology{Economic: r.Eco, Governance: r.Gov},
		}
	}
	return nil
}

type partyRow struct {
	ID                string  `db:"id"`
	Name              string  `db:"name"`
	Color             string  `db:"color"`
	LeaderID          string  `db:"leader_id"`
	DeputyLeaderID    string  `db:"deputy_leader_id"`
	EthnicityFocus    string  `db:"ethnicity_focus"`
	Unity             float64 `db:"unity"`
	AffiliationsJSON  string  `db:"affiliations_json"`
	BranchesJSON      string  `db:"branches_json"`
	ContestedJSON     string  `db:"contested_json"`
	RelationsJSON     string  `db:"relations_json"`
	LeaderHistoryJSON string  `db:"leader_history_json"`
}

func (db *DB) loadParties(sim *engine.Simulation) error {
	var rows []partyRow
	if err := db.conn.Select(&rows, "SELECT * FROM parties"); err != nil {
		return err
	}
	for _, r := range rows {
		p := &politics.Party{
			ID:             r.ID,
			Name:           r.Name,
			Color:          r.Color,
			LeaderID:       r.LeaderID,
			DeputyLeaderID: r.DeputyLeaderID,
			EthnicityFocus: politics.Ethnicity(r.EthnicityFocus),
			Unity:          r.Unity,
		}
		cols := []struct {
			raw string
			dst any
		}{
			{r.AffiliationsJSON, &p.AffiliationIDs},
			{r.BranchesJSON, &p.StateBranches},
			{r.ContestedJSON, &p.ContestedSeats},
			{r.RelationsJSON, &p.Relations},
			{r.LeaderHistoryJSON, &p.LeaderHistory},
		}
		for _, col := range cols {
			if err := json.Unmarshal([]byte(col.raw), col.dst); err != nil {
				return fmt.Errorf("party %s: %w", r.ID, err)
			}
		}
		if p.StateBranches == nil {
			p.StateBranches = make(map[string]*politics.StateBranch)
		}
		if p.ContestedSeats == nil {
			p.ContestedSeats = make(map[string]politics.SeatPlan)
		}
		if p.Relations == nil {
			p.Relations = make(map[string]float64)
		}
		sim.AddParty(p)
	}
	return nil
}

type allianceRow struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	Type          string `db:"type"`
	LeaderPartyID string `db:"leader_party_id"`
	MembersJSON   string `db:"members_json"`
}

func (db *DB) loadAlliances(sim *engine.Simulation) error {
	var rows []allianceRow
	if err := db.conn.Select(&rows, "SELECT * FROM alliances"); err != nil {
		return err
	}
	for _, r := range rows {
		a := &politics.Alliance{
			ID:            r.ID,
			Name:          r.Name,
			Type:          politics.AllianceType(r.Type),
			LeaderPartyID: r.LeaderPartyID,
		}
		if err := json.Unmarshal([]byte(r.MembersJSON), &a.MemberPartyIDs); err != nil {
			return fmt.Errorf("alliance %s: %w", r.ID, err)
		}
		sim.Alliances = append(sim.Alliances, a)
	}
	return nil
}

type seatRow struct {
	Code            string `db:"code"`
	HolderPartyID   string `db:"holder_party_id"`
	StrongholdAffID string `db:"stronghold_aff_id"`
	StrongholdTerms int    `db:"stronghold_terms"`
}

func (db *DB) loadSeats(sim *engine.Simulation) error {
	var rows []seatRow
	if err := db.conn.Select(&rows, "SELECT * FROM seats"); err != nil {
		return err
	}
	for _, r := range rows {
		if r.HolderPartyID != "" {
			sim.ElectionResults[r.Code] = r.HolderPartyID
		}
		if r.StrongholdAffID != "" {
			sim.Strongholds[r.Code] = engine.Stronghold{
				AffiliationID: r.StrongholdAffID,
				Terms:         r.StrongholdTerms,
			}
		}
	}
	return nil
}

func (db *DB) loadHistory(sim *engine.Simulation) error {
	var recs []string
	if err := db.conn.Select(&recs, "SELECT record_json FROM election_history ORDER BY id"); err != nil {
		return err
	}
	for i, raw := range recs {
		var rec engine.ElectionRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return fmt.Errorf("election record %d: %w", i, err)
		}
		sim.History = append(sim.History, rec)
	}
	return nil
}

type eventRow struct {
	ID          int    `db:"id"`
	Date        string `db:"date"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Category    string `db:"category"`
}

func (db *DB) loadEvents(sim *engine.Simulation) error {
	var rows []eventRow
	if err := db.conn.Select(&rows, "SELECT * FROM events ORDER BY id"); err != nil {
		return err
	}
	for _, r := range rows {
		date, err := time.Parse(time.RFC3339, r.Date)
		if err != nil {
			return fmt.Errorf("event %d date: %w", r.ID, err)
		}
		sim.Events = append(sim.Events, engine.Event{
			Date:        date,
			Title:       r.Title,
			Description: r.Description,
			Category:    r.Category,
		})
	}
	return nil
}

func (db *DB) loadMetaState(sim *engine.Simulation) error {
	get := func(key string) (string, error) {
		v, err := db.GetMeta(key)
		if err != nil {
			return "", fmt.Errorf("meta %s: %w", key, err)
		}
		return v, nil
	}
	parseDate := func(key string, dst *time.Time) error {
		v, err := get(key)
		if err != nil {
			return err
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return fmt.Errorf("meta %s: %w", key, err)
		}
		*dst = t
		return nil
	}

	if err := parseDate("date", &sim.Date); err != nil {
		return err
	}
	if err := parseDate("next_election", &sim.NextElection); err != nil {
		return err
	}
	if err := parseDate("next_party_election", &sim.NextPartyElection); err != nil {
		return err
	}
	if err := parseDate("regime_since", &sim.RegimeSince); err != nil {
		return err
	}

	system, err := get("system")
	if err != nil {
		return err
	}
	sim.System = engine.ElectoralSystem(system)

	sim.SpeakerID, _ = db.GetMeta("speaker_id")
	sim.RegimePartyID, _ = db.GetMeta("regime_party_id")
	sim.PlayerCharacterID, _ = db.GetMeta("player_character_id")

	bigTent, _ := db.GetMeta("big_tent_triggered")
	sim.BigTentTriggered = bigTent == "true"

	govJSON, err := get("government")
	if err != nil {
		return err
	}
	if govJSON != "null" {
		var gov engine.Government
		if err := json.Unmarshal([]byte(govJSON), &gov); err != nil {
			return fmt.Errorf("meta government: %w", err)
		}
		sim.Government = &gov
	}
	return nil
}

// RecentEvents returns the most recent N stored events.
func (db *DB) RecentEvents(limit int) ([]engine.Event, error) {
	var rows []eventRow
	err := db.conn.Select(&rows,
		"SELECT * FROM events ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	events := make([]engine.Event, 0, len(rows))
	for _, r := range rows {
		date, _ := time.Parse(time.RFC3339, r.Date)
		events = append(events, engine.Event{
			Date:        date,
			Title:       r.Title,
			Description: r.Description,
			Category:    r.Category,
		})
	}
	return events, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

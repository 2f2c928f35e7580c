// Package api provides the HTTP API for observing the simulation.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (admin control plane).
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/azmanhj/dewansim/internal/engine"
	"github.com/azmanhj/dewansim/internal/persistence"
	"github.com/azmanhj/dewansim/internal/politics"
)

// Server serves the political world state over HTTP.
type Server struct {
	Ticker   *engine.Ticker
	DB       *persistence.DB
	Hub      *Hub
	Addr     string
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.
}

// Start begins serving the HTTP API in a goroutine and wires the
// simulation's event sink into the stream hub.
func (s *Server) Start() {
	go s.Hub.Run()

	s.Ticker.Locked(func(sim *engine.Simulation) {
		sim.EventSink = func(e engine.Event) {
			frame, err := json.Marshal(Message{Type: "event", Payload: e})
			if err != nil {
				return
			}
			select {
			case s.Hub.Broadcast <- frame:
			default:
			}
		}
	})

	streamLimiter := NewRateLimiter(30, time.Hour)

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/parties", s.handleParties)
	mux.HandleFunc("/api/v1/party/", s.handlePartyDetail)
	mux.HandleFunc("/api/v1/characters", s.handleCharacters)
	mux.HandleFunc("/api/v1/alliances", s.handleAlliances)
	mux.HandleFunc("/api/v1/constituencies", s.handleConstituencies)
	mux.HandleFunc("/api/v1/government", s.handleGovernment)
	mux.HandleFunc("/api/v1/elections", s.handleElections)
	mux.HandleFunc("/api/v1/events", s.handleEvents)

	// Live event feed.
	mux.HandleFunc("/api/v1/stream", RateLimitMiddleware(streamLimiter, s.handleStream))

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))
	mux.HandleFunc("/api/v1/snapshot", s.adminOnly(s.handleSnapshot))

	slog.Info("HTTP API starting", "addr", s.Addr, "admin_auth", s.AdminKey != "")

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(s.Addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins. Set
// CORS_ORIGINS to a comma-separated list; localhost dev servers are
// always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if s.AdminKey == "" {
				http.Error(w, "admin endpoints disabled (no DEWANSIM_ADMIN_KEY set)", http.StatusForbidden)
				return
			}
			if !s.checkBearerToken(r) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var status map[string]any
	s.Ticker.Locked(func(sim *engine.Simulation) {
		status = map[string]any{
			"date":                sim.Date.Format("2006-01-02"),
			"speed":               s.Ticker.Speed().String(),
			"electoral_system":    string(sim.System),
			"next_election":       sim.NextElection.Format("2006-01-02"),
			"next_party_election": sim.NextPartyElection.Format("2006-01-02"),
			"total_seats":         sim.Country.TotalSeats(),
			"living_characters":   sim.Stats.LivingCharacters,
			"parties":             sim.Stats.Parties,
			"alliances":           sim.Stats.Alliances,
			"government_seats":    sim.Stats.GovernmentSeats,
			"last_turnout":        sim.Stats.LastTurnout,
			"deaths":              sim.Stats.Deaths,
		}
	})
	writeJSON(w, status)
}

func (s *Server) handleParties(w http.ResponseWriter, r *http.Request) {
	type partySummary struct {
		ID             string  `json:"id"`
		Name           string  `json:"name"`
		Color          string  `json:"color"`
		Leader         string  `json:"leader"`
		Seats          int     `json:"seats"`
		Unity          float64 `json:"unity"`
		EthnicityFocus string  `json:"ethnicity_focus,omitempty"`
		Ideology       string  `json:"ideology"`
		Affiliations   int     `json:"affiliations"`
		Alliance       string  `json:"alliance,omitempty"`
	}

	var result []partySummary
	s.Ticker.Locked(func(sim *engine.Simulation) {
		for _, p := range sim.SortedParties() {
			leaderName := ""
			if lead, ok := sim.CharacterIndex[p.LeaderID]; ok {
				leaderName = lead.Name
			}
			allianceName := ""
			if a := sim.AnyAllianceOf(p.ID); a != nil {
				allianceName = a.Name
			}
			result = append(result, partySummary{
				ID:             p.ID,
				Name:           p.Name,
				Color:          p.Color,
				Leader:         leaderName,
				Seats:          sim.SeatCount(p.ID),
				Unity:          p.Unity,
				EthnicityFocus: string(p.EthnicityFocus),
				Ideology:       politics.IdeologyName(p.Ideology),
				Affiliations:   len(p.AffiliationIDs),
				Alliance:       allianceName,
			})
		}
	})
	writeJSON(w, result)
}

func (s *Server) handlePartyDetail(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/party/")
	var found bool
	var detail map[string]any
	s.Ticker.Locked(func(sim *engine.Simulation) {
		p, ok := sim.PartyIndex[id]
		if !ok {
			return
		}
		found = true

		type affEntry struct {
			ID        string `json:"id"`
			Name      string `json:"name"`
			Ethnicity string `json:"ethnicity"`
			Members   int    `json:"members"`
		}
		affs := make([]affEntry, 0, len(p.AffiliationIDs))
		for _, affID := range p.AffiliationIDs {
			aff := sim.Affiliations[affID]
			if aff == nil {
				continue
			}
			affs = append(affs, affEntry{
				ID:        aff.ID,
				Name:      aff.Name,
				Ethnicity: string(aff.Ethnicity),
				Members:   len(sim.AffiliationMembers(affID)),
			})
		}

		detail = map[string]any{
			"party":          p,
			"seats":          sim.SeatCount(p.ID),
			"ideology_name":  politics.IdeologyName(p.Ideology),
			"affiliations":   affs,
			"living_members": len(sim.LivingMembers(p)),
		}
	})
	if !found {
		http.Error(w, "party not found", http.StatusNotFound)
		return
	}
	writeJSON(w, detail)
}

func (s *Server) handleCharacters(w http.ResponseWriter, r *http.Request) {
	mpOnly := r.URL.Query().Get("mp") == "true"

	type characterSummary struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Age         int     `json:"age"`
		Ethnicity   string  `json:"ethnicity"`
		Seat        string  `json:"seat,omitempty"`
		Party       string  `json:"party,omitempty"`
		Influence   float64 `json:"influence"`
		Charisma    float64 `json:"charisma"`
		Recognition float64 `json:"recognition"`
		Ideology    string  `json:"ideology"`
		MP          bool    `json:"mp"`
		Alive       bool    `json:"alive"`
	}

	var result []characterSummary
	s.Ticker.Locked(func(sim *engine.Simulation) {
		for _, c := range sim.Characters {
			if !c.IsAlive || (mpOnly && !c.IsMP) {
				continue
			}
			partyName := ""
			if p := sim.PartyOfCharacter(c); p != nil {
				partyName = p.Name
			}
			result = append(result, characterSummary{
				ID:          c.ID,
				Name:        c.Name,
				Age:         c.Age(sim.Date),
				Ethnicity:   string(c.Ethnicity),
				Seat:        c.CurrentSeatCode,
				Party:       partyName,
				Influence:   c.Influence,
				Charisma:    c.Charisma,
				Recognition: c.Recognition,
				Ideology:    politics.IdeologyName(c.Ideology),
				MP:          c.IsMP,
				Alive:       c.IsAlive,
			})
		}
	})
	writeJSON(w, result)
}

func (s *Server) handleAlliances(w http.ResponseWriter, r *http.Request) {
	type allianceSummary struct {
		ID      string   `json:"id"`
		Name    string   `json:"name"`
		Type    string   `json:"type"`
		Leader  string   `json:"leader"`
		Members []string `json:"members"`
		Seats   int      `json:"seats"`
	}

	var result []allianceSummary
	s.Ticker.Locked(func(sim *engine.Simulation) {
		for _, a := range sim.Alliances {
			members := make([]string, 0, len(a.MemberPartyIDs))
			seats := 0
			for _, pid := range a.MemberPartyIDs {
				if p, ok := sim.PartyIndex[pid]; ok {
					members = append(members, p.Name)
				}
				seats += sim.SeatCount(pid)
			}
			leaderName := ""
			if p, ok := sim.PartyIndex[a.LeaderPartyID]; ok {
				leaderName = p.Name
			}
			result = append(result, allianceSummary{
				ID:      a.ID,
				Name:    a.Name,
				Type:    string(a.Type),
				Leader:  leaderName,
				Members: members,
				Seats:   seats,
			})
		}
	})
	writeJSON(w, result)
}

func (s *Server) handleConstituencies(w http.ResponseWriter, r *http.Request) {
	type seatEntry struct {
		Code            string  `json:"code"`
		Name            string  `json:"name"`
		State           string  `json:"state"`
		Urban           bool    `json:"urban"`
		Electorate      int     `json:"electorate"`
		HolderParty     string  `json:"holder_party,omitempty"`
		MP              string  `json:"mp,omitempty"`
		StrongholdAff   string  `json:"stronghold_affiliation,omitempty"`
		StrongholdTerms int     `json:"stronghold_terms,omitempty"`
		PctMalay        float64 `json:"pct_malay"`
		PctChinese      float64 `json:"pct_chinese"`
		PctIndian       float64 `json:"pct_indian"`
		PctOthers       float64 `json:"pct_others"`
	}

	var result []seatEntry
	s.Ticker.Locked(func(sim *engine.Simulation) {
		holders := make(map[string]string)
		for _, c := range sim.Characters {
			if c.IsAlive && c.IsMP && c.CurrentSeatCode != politics.SeatSpeaker {
				holders[c.CurrentSeatCode] = c.Name
			}
		}
		for _, code := range sim.Country.Codes() {
			seat := sim.Country.Get(code)
			entry := seatEntry{
				Code:       seat.Code,
				Name:       seat.Name,
				State:      seat.State,
				Urban:      seat.Urban,
				Electorate: seat.Demo.Electorate,
				MP:         holders[code],
				PctMalay:   seat.Demo.PctMalay,
				PctChinese: seat.Demo.PctChinese,
				PctIndian:  seat.Demo.PctIndian,
				PctOthers:  seat.Demo.PctOthers,
			}
			if pid, ok := sim.ElectionResults[code]; ok {
				if p, pok := sim.PartyIndex[pid]; pok {
					entry.HolderParty = p.Name
				}
			}
			if sh, ok := sim.Strongholds[code]; ok {
				if aff := sim.Affiliations[sh.AffiliationID]; aff != nil {
					entry.StrongholdAff = aff.Name
					entry.StrongholdTerms = sh.Terms
				}
			}
			result = append(result, entry)
		}
	})
	writeJSON(w, result)
}

func (s *Server) handleGovernment(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	s.Ticker.Locked(func(sim *engine.Simulation) {
		if sim.Government == nil {
			payload = map[string]any{"formed": false}
			return
		}
		g := sim.Government

		cmName := ""
		if c, ok := sim.CharacterIndex[g.ChiefMinisterID]; ok {
			cmName = c.Name
		}
		speakerName := ""
		if c, ok := sim.CharacterIndex[sim.SpeakerID]; ok {
			speakerName = c.Name
		}

		type cabinetEntry struct {
			Portfolio string `json:"portfolio"`
			Minister  string `json:"minister"`
		}
		cabinet := make([]cabinetEntry, 0, len(g.Cabinet))
		for _, m := range g.Cabinet {
			name := ""
			if c, ok := sim.CharacterIndex[m.MinisterID]; ok {
				name = c.Name
			}
			cabinet = append(cabinet, cabinetEntry{Portfolio: m.Portfolio, Minister: name})
		}

		coalition := make([]string, 0, len(g.RulingCoalitionIDs))
		seats := 0
		for _, pid := range g.RulingCoalitionIDs {
			if p, ok := sim.PartyIndex[pid]; ok {
				coalition = append(coalition, p.Name)
			}
			seats += sim.SeatCount(pid)
		}

		payload = map[string]any{
			"formed":         true,
			"chief_minister": cmName,
			"speaker":        speakerName,
			"coalition":      coalition,
			"seats":          seats,
			"majority":       sim.MajorityThreshold(),
			"cabinet":        cabinet,
			"formed_date":    g.FormedDate.Format("2006-01-02"),
		}
	})
	writeJSON(w, payload)
}

func (s *Server) handleElections(w http.ResponseWriter, r *http.Request) {
	var result []engine.ElectionRecord
	s.Ticker.Locked(func(sim *engine.Simulation) {
		result = append(result, sim.History...)
	})
	writeJSON(w, result)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 && n <= 2000 {
			limit = n
		}
	}
	var result []engine.Event
	s.Ticker.Locked(func(sim *engine.Simulation) {
		events := sim.Events
		if len(events) > limit {
			events = events[len(events)-limit:]
		}
		result = append(result, events...)
	})
	writeJSON(w, result)
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	ServeWs(s.Hub, w, r)
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, map[string]any{"speed": s.Ticker.Speed().String()})
		return
	}
	var req struct {
		Speed string `json:"speed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	sp, ok := engine.ParseSpeed(req.Speed)
	if !ok {
		http.Error(w, "unknown speed", http.StatusBadRequest)
		return
	}
	s.Ticker.SetSpeed(sp)
	slog.Info("speed changed via API", "speed", sp)
	writeJSON(w, map[string]any{"speed": s.Ticker.Speed().String()})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.DB == nil {
		http.Error(w, "persistence disabled", http.StatusServiceUnavailable)
		return
	}
	var saveErr error
	s.Ticker.Locked(func(sim *engine.Simulation) {
		saveErr = s.DB.SaveWorldState(sim)
	})
	if saveErr != nil {
		slog.Error("snapshot failed", "error", saveErr)
		http.Error(w, "snapshot failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"saved": true})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("write response", "error", err)
	}
}

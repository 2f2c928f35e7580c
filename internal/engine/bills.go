// Bill voting — the legislative layer. The catalog itself is static
// configuration; the engine supplies the AI voting logic and passage
// rules.
package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/azmanhj/dewansim/internal/politics"
)

// BillConstProportionalRep is the constitutional bill that permanently
// switches the electoral system to proportional representation.
const BillConstProportionalRep = "const_prop_rep"

// Bill is a catalog template for a piece of legislation.
type Bill struct {
	ID             string             `yaml:"id" json:"id"`
	Title          string             `yaml:"title" json:"title"`
	Description    string             `yaml:"description" json:"description"`
	Constitutional bool               `yaml:"constitutional" json:"constitutional"`
	Tags           []string           `yaml:"tags" json:"tags"`
	EconomicLean   float64            `yaml:"economic_lean" json:"economic_lean"` // 0 planned – 100 market
	PartyEffects   map[string]float64 `yaml:"party_effects" json:"party_effects"` // party name -> unity delta
	AffEffects     map[string]float64 `yaml:"aff_effects" json:"aff_effects"`     // affiliation-name substring -> influence delta
}

// VoteChoice is a party's position on a bill.
type VoteChoice string

const (
	VoteAye     VoteChoice = "Aye"
	VoteNay     VoteChoice = "Nay"
	VoteAbstain VoteChoice = "Abstain"
)

// BillResult records one division of the house.
type BillResult struct {
	Bill       Bill                  `json:"bill"`
	Votes      map[string]VoteChoice `json:"votes"` // party -> choice
	AyeSeats   int                   `json:"aye_seats"`
	NaySeats   int                   `json:"nay_seats"`
	Abstained  int                   `json:"abstained"`
	Passed     bool                  `json:"passed"`
	ProposerID string                `json:"proposer_id"`
}

// DefaultBillCatalog is the compiled-in catalog, used when no YAML
// catalog file is supplied.
func DefaultBillCatalog() []Bill {
	return []Bill{
		{
			ID:           "edu_vernacular",
			Title:        "Vernacular Schools Funding Act",
			Description:  "Expands public funding for vernacular-language schools.",
			Tags:         []string{"social"},
			AffEffects:   map[string]float64{"Chinese": 3, "Tamil": 3},
			EconomicLean: 35,
		},
		{
			ID:           "rural_dev",
			Title:        "Rural Development Fund",
			Description:  "A land-settlement and smallholder support scheme.",
			Tags:         []string{"economic"},
			EconomicLean: 30,
		},
		{
			ID:           "industry_priv",
			Title:        "State Industries Privatisation Act",
			Description:  "Sells state-held industrial corporations to private owners.",
			Tags:         []string{"economic"},
			EconomicLean: 80,
		},
		{
			ID:           "faith_council",
			Title:        "Religious Affairs Council Act",
			Description:  "Establishes a national council overseeing religious schooling.",
			Tags:         []string{"religious"},
		},
		{
			ID:           "lang_national",
			Title:        "National Language Act",
			Description:  "Entrenches the national language in administration and education.",
			Tags:         []string{"nationalist"},
		},
		{
			ID:             BillConstProportionalRep,
			Title:          "Constitution (Proportional Representation) Amendment",
			Description:    "Replaces first-past-the-post with proportional representation.",
			Constitutional: true,
			Tags:           []string{"constitutional"},
		},
		{
			ID:             "const_states",
			Title:          "Constitution (State Powers) Amendment",
			Description:    "Devolves listed powers to the state assemblies.",
			Constitutional: true,
			Tags:           []string{"constitutional"},
		},
	}
}

// AIDecideBillVote determines a party's position using the priority
// chain: explicit catalog effect, constitutional bloc discipline,
// tag heuristics, then abstention.
func (s *Simulation) AIDecideBillVote(p *politics.Party, bill Bill, proposerPartyID string) VoteChoice {
	// 1. An explicit per-party effect decides outright.
	if delta, ok := bill.PartyEffects[p.Name]; ok && delta != 0 {
		if delta > 0 {
			return VoteAye
		}
		return VoteNay
	}

	// 2. Constitutional bills follow strict bloc discipline.
	if bill.Constitutional && proposerPartyID != "" {
		if p.ID == proposerPartyID {
			return VoteAye
		}
		if bloc := s.AllianceOf(proposerPartyID); bloc != nil && bloc.HasMember(p.ID) {
			return VoteAye
		}
		return VoteNay
	}

	// 3. Tag heuristics.
	for _, tag := range bill.Tags {
		switch tag {
		case "economic":
			gap := p.Ideology.Economic - bill.EconomicLean
			if gap < 0 {
				gap = -gap
			}
			if gap < 20 {
				return VoteAye
			}
			if gap > 45 {
				return VoteNay
			}
		case "religious", "nationalist":
			for _, affID := range p.AffiliationIDs {
				aff := s.Affiliations[affID]
				if aff == nil {
					continue
				}
				name := strings.ToLower(aff.Name)
				if strings.Contains(name, "islamic") || strings.Contains(name, "malay") ||
					strings.Contains(name, "national") {
					return VoteAye
				}
			}
		case "social":
			if p.EthnicityFocus == politics.EthChinese || p.EthnicityFocus == politics.EthIndian {
				if s.Rand.Chance(0.8) {
					return VoteAye
				}
				return VoteAbstain
			}
		}
	}

	// 4. No opinion.
	return VoteAbstain
}

// ConductBillVote puts a bill to the house. Party votes weigh their seat
// counts; abstentions count against neither side. Constitutional bills
// need two thirds of ALL seats, ordinary ones a simple majority of the
// votes cast. playerVote, when set, overrides the player party's AI
// decision.
func (s *Simulation) ConductBillVote(bill Bill, proposerPartyID string, playerVote VoteChoice) BillResult {
	result := BillResult{
		Bill:       bill,
		Votes:      make(map[string]VoteChoice, len(s.Parties)),
		ProposerID: proposerPartyID,
	}
	playerParty := s.playerPartyID()

	for _, p := range s.Parties {
		seats := s.SeatCount(p.ID)
		if seats == 0 {
			continue
		}
		choice := s.AIDecideBillVote(p, bill, proposerPartyID)
		if p.ID == playerParty && playerVote != "" {
			choice = playerVote
		}
		result.Votes[p.ID] = choice
		switch choice {
		case VoteAye:
			result.AyeSeats += seats
		case VoteNay:
			result.NaySeats += seats
		default:
			result.Abstained += seats
		}
	}

	if bill.Constitutional {
		result.Passed = result.AyeSeats*3 >= s.Country.TotalSeats()*2
	} else {
		result.Passed = result.AyeSeats > result.NaySeats
	}

	if result.Passed {
		s.applyBillEffects(bill)
	}
	s.EmitEvent(Event{
		Title:       "Bill " + passText(result.Passed),
		Description: fmt.Sprintf("%s: %d aye, %d nay, %d abstained", bill.Title, result.AyeSeats, result.NaySeats, result.Abstained),
		Category:    "bill",
	})
	slog.Info("bill voted", "bill", bill.ID, "aye", result.AyeSeats, "nay", result.NaySeats, "passed", result.Passed)
	return result
}

func passText(passed bool) string {
	if passed {
		return "passed"
	}
	return "rejected"
}

// applyBillEffects mutates the world once for a passed bill.
func (s *Simulation) applyBillEffects(bill Bill) {
	if bill.ID == BillConstProportionalRep && s.System == SystemFPTP {
		// Irreversible: the system never switches back.
		s.System = SystemPR
		slog.Info("electoral system changed", "system", s.System)
		s.EmitEvent(Event{
			Title:       "Constitutional change",
			Description: "All future elections will be held under proportional representation",
			Category:    "bill",
		})
	}
	for name, delta := range bill.PartyEffects {
		for _, p := range s.Parties {
			if p.Name == name {
				p.Unity = clampScore(p.Unity + delta)
			}
		}
	}
	for sub, delta := range bill.AffEffects {
		needle := strings.ToLower(sub)
		for _, aff := range s.Affiliations {
			if !strings.Contains(strings.ToLower(aff.Name), needle) {
				continue
			}
			for _, c := range s.AffiliationMembers(aff.ID) {
				c.Influence = clampScore(c.Influence + delta)
			}
		}
	}
}

package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/azmanhj/dewansim/internal/politics"
)

// Speed is the wall-clock pace of the simulation. One tick always
// advances one calendar day regardless of speed.
type Speed int

const (
	SpeedPaused Speed = iota
	SpeedSlow
	SpeedNormal
	SpeedFast
	SpeedFastest
)

// electionClampWindow: within this many days of a scheduled general
// election the speed is forced down to SpeedFast at most, so the
// election cannot be skipped past.
const electionClampWindowDays = 20

func (sp Speed) String() string {
	switch sp {
	case SpeedPaused:
		return "paused"
	case SpeedSlow:
		return "slow"
	case SpeedNormal:
		return "normal"
	case SpeedFast:
		return "fast"
	case SpeedFastest:
		return "fastest"
	}
	return "unknown"
}

// Interval returns the wall-clock duration of one tick at this speed.
// SpeedPaused returns 0.
func (sp Speed) Interval() time.Duration {
	switch sp {
	case SpeedSlow:
		return 2 * time.Second
	case SpeedNormal:
		return time.Second
	case SpeedFast:
		return 250 * time.Millisecond
	case SpeedFastest:
		return 50 * time.Millisecond
	}
	return 0
}

// ParseSpeed maps a name back to a Speed; unknown names return
// SpeedPaused and false.
func ParseSpeed(name string) (Speed, bool) {
	for sp := SpeedPaused; sp <= SpeedFastest; sp++ {
		if sp.String() == name {
			return sp, true
		}
	}
	return SpeedPaused, false
}

// Ticker drives the simulation clock. Days are computed synchronously
// under the lock; readers (the API) take the same lock, so no day is
// ever observed half-applied.
type Ticker struct {
	mu    sync.Mutex
	sim   *Simulation
	speed Speed

	// resumeSpeed remembers the pre-pause speed across a major event.
	resumeSpeed Speed

	// OnDay, when set, runs after each completed day, still under the
	// lock.
	OnDay func(*Simulation)
}

func NewTicker(sim *Simulation, speed Speed) *Ticker {
	return &Ticker{sim: sim, speed: speed, resumeSpeed: speed}
}

// Speed returns the current speed after election clamping.
func (t *Ticker) Speed() Speed {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.clamped(t.speed)
}

// SetSpeed changes the pace. The clamp near elections still applies.
func (t *Ticker) SetSpeed(sp Speed) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.speed = sp
	t.resumeSpeed = sp
}

func (t *Ticker) clamped(sp Speed) Speed {
	until := t.sim.NextElection.Sub(t.sim.Date)
	if until >= 0 && until <= electionClampWindowDays*24*time.Hour && sp > SpeedFast {
		return SpeedFast
	}
	return sp
}

// Locked runs fn while holding the simulation lock, for API readers.
func (t *Ticker) Locked(fn func(*Simulation)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.sim)
}

// Run loops until the context is cancelled, advancing one day per tick
// at the current speed. Major-event days pause the clock first and
// restore the previous speed after the day completes.
func (t *Ticker) Run(ctx context.Context) {
	for {
		t.mu.Lock()
		sp := t.clamped(t.speed)
		t.mu.Unlock()

		if sp == SpeedPaused {
			select {
			case <-ctx.Done():
				return
			case <-time.After(100 * time.Millisecond):
			}
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(sp.Interval()):
		}

		t.mu.Lock()
		if t.sim.MajorEventPending() {
			t.resumeSpeed = t.speed
			t.speed = SpeedPaused
			slog.Info("clock paused for major event", "date", t.sim.Date.Format("2006-01-02"))
			t.sim.AdvanceDay()
			t.speed = t.resumeSpeed
		} else {
			t.sim.AdvanceDay()
		}
		if t.OnDay != nil {
			t.OnDay(t.sim)
		}
		t.mu.Unlock()
	}
}

// MajorEventPending reports whether the next day triggers a general
// election, a party election round, or the monthly development pass.
func (s *Simulation) MajorEventPending() bool {
	next := s.Date.AddDate(0, 0, 1)
	if !next.Before(s.NextElection) || !next.Before(s.NextPartyElection) {
		return true
	}
	return next.Day() == 1
}

// AdvanceDay moves the clock one day and runs every operation scheduled
// for the new date. All state for the day lands before it returns.
func (s *Simulation) AdvanceDay() {
	s.Date = s.Date.AddDate(0, 0, 1)

	s.ProcessMortality()
	s.TryRandomEvent()

	if s.Date.Day() == 1 {
		s.GrowElectorates()
		s.runDevelopmentPass()
	}

	if !s.Date.Before(s.NextPartyElection) {
		s.RunPartyElections()
		s.NextPartyElection = s.Date.AddDate(3, 0, 0)
	}

	if !s.Date.Before(s.NextElection) {
		s.ConductGeneralElection()
		s.NextElection = s.Date.AddDate(5, 0, 0)
	}

	s.UpdateStats()
	slog.Debug("day complete", "date", s.Date.Format("2006-01-02"),
		"living", s.Stats.LivingCharacters, "parties", s.Stats.Parties)
}

// runDevelopmentPass is the monthly political development sequence. The
// order matters: ideology and leadership refresh first so every later
// step sees current derived state.
func (s *Simulation) runDevelopmentPass() {
	s.RefreshIdeologies()
	s.RefreshAffiliationLeaders()

	s.ProcessPartyUnity()
	s.ProcessSchisms()
	s.ProcessPartyConsolidation()
	s.ProcessIndependentAffiliations()

	s.aiAllianceDiplomacy()
	s.ConsolidateAllianceCohesion()
	s.AttemptAllianceMerger()
	s.CheckBigTent()

	s.aiProposeBill()

	s.CleanupPoliticalVacancies()
	s.CleanupGovernmentVacancies()
}

// aiAllianceDiplomacy lets unaligned AI parties court their warmest
// ideologically-close peer into a bloc. At most one proposal lands per
// month and the proposal itself may still be rejected by the formation
// odds.
func (s *Simulation) aiAllianceDiplomacy() {
	player := s.playerPartyID()
	for _, p := range s.SortedParties() {
		if p.ID == player || s.AllianceOf(p.ID) != nil {
			continue
		}
		if !s.Rand.Chance(0.15) {
			continue
		}
		var best *politics.Party
		bestScore := 0.0
		for _, q := range s.Parties {
			if q.ID == p.ID || q.ID == player || !p.CompatibleWith(q) {
				continue
			}
			dist := politics.IdeologicalDistance(p.Ideology, q.Ideology)
			if dist >= 35 {
				continue
			}
			score := p.RelationWith(q.ID) + (100 - dist)
			if best == nil || score > bestScore {
				best, bestScore = q, score
			}
		}
		if best == nil {
			continue
		}
		if s.AttemptAllianceFormation(p.ID, []string{best.ID}, politics.AllianceFull) != nil {
			return
		}
	}
}

// aiProposeBill has the governing party table a random catalog bill
// once in a while.
func (s *Simulation) aiProposeBill() {
	if s.Government == nil || len(s.Government.RulingCoalitionIDs) == 0 {
		return
	}
	if !s.Rand.Chance(0.1) {
		return
	}
	if len(s.BillCatalog) == 0 {
		return
	}
	bill := s.BillCatalog[s.Rand.IntN(len(s.BillCatalog))]
	proposer := s.Government.RulingCoalitionIDs[0]
	if bill.ID == BillConstProportionalRep && s.System == SystemPR {
		return
	}
	s.ConductBillVote(bill, proposer, "")
}

// Package geo provides the constituency model: demographics, states, and
// urban/rural classification.
package geo

import (
	"sort"

	"github.com/azmanhj/dewansim/internal/politics"
)

// Demographics describes the electorate of one constituency: its size and
// the ethnic composition in percent. Native groups are counted inside the
// Malay/bumiputera share, matching how the source data reports them.
type Demographics struct {
	Electorate int     `json:"electorate"`
	PctMalay   float64 `json:"pct_malay"`
	PctChinese float64 `json:"pct_chinese"`
	PctIndian  float64 `json:"pct_indian"`
	PctOthers  float64 `json:"pct_others"`
}

// Share returns the local population share (0–100) of the given ethnicity.
func (d Demographics) Share(e politics.Ethnicity) float64 {
	switch e {
	case politics.EthMalay, politics.EthBornean, politics.EthSarawak:
		return d.PctMalay
	case politics.EthChinese:
		return d.PctChinese
	case politics.EthIndian:
		return d.PctIndian
	default:
		return d.PctOthers
	}
}

// Constituency is one parliamentary seat.
type Constituency struct {
	Code  string       `json:"code"`
	Name  string       `json:"name"`
	State string       `json:"state"`
	Urban bool         `json:"urban"`
	Demo  Demographics `json:"demographics"`
}

// Area returns the constituency's classification as an area preference.
func (c *Constituency) Area() politics.Area {
	if c.Urban {
		return politics.AreaUrban
	}
	return politics.AreaRural
}

// Country is the full constituency set, the read-only stage the simulation
// plays out on. Electorate counts are the only field the engine mutates
// (monthly demographic growth).
type Country struct {
	Constituencies map[string]*Constituency `json:"constituencies"`
}

// Codes returns every seat code in lexical order.
func (c *Country) Codes() []string {
	codes := make([]string, 0, len(c.Constituencies))
	for code := range c.Constituencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// States returns the distinct state names in lexical order.
func (c *Country) States() []string {
	seen := make(map[string]bool)
	for _, con := range c.Constituencies {
		seen[con.State] = true
	}
	states := make([]string, 0, len(seen))
	for s := range seen {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}

// Get returns the constituency for a seat code, or nil when the code is
// unknown (the Speaker sentinel, for example).
func (c *Country) Get(code string) *Constituency {
	return c.Constituencies[code]
}

// TotalSeats returns the number of constituencies.
func (c *Country) TotalSeats() int {
	return len(c.Constituencies)
}

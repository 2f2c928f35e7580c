// Name generation for characters, parties, and alliances. Character names
// draw from per-ethnicity pools; organization names are composed from stem
// and theme word lists, rejecting near-duplicates of existing names.
package politics

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/azmanhj/dewansim/internal/rng"
)

var givenNames = map[Ethnicity][]string{
	EthMalay: {
		"Ahmad", "Ismail", "Razak", "Hussein", "Mahathir", "Anwar", "Azlan",
		"Zainal", "Khairul", "Syed", "Hamzah", "Onn", "Musa", "Ghafar",
		"Tengku", "Najib", "Hishammuddin", "Shafie", "Mukhriz", "Azmin",
		"Zahid", "Sabri", "Fadillah", "Rafizi", "Saifuddin", "Khalid",
	},
	EthChinese: {
		"Wei Ming", "Kah Seng", "Chee Keong", "Boon Huat", "Siew Lin",
		"Kok Wai", "Teck Hock", "Yew Teong", "Chin Peng", "Ka Siong",
		"Guan Eng", "Kit Siang", "Tiong Lai", "Soon Koh", "Vui Soon",
		"Yee Ling", "Hua Min", "Jun Hao", "Zhi Wei", "Cheng Hock",
	},
	EthIndian: {
		"Samy", "Ramasamy", "Karpal", "Subramaniam", "Saravanan", "Kula",
		"Xavier", "Charles", "Sivarasa", "Gobind", "Waytha", "Murugan",
		"Devamany", "Kavitha", "Prabakaran", "Sivakumar", "Manogaran",
	},
	EthOthers: {
		"Peter", "Francis", "Bernard", "Dominic", "Gerald", "Edmund",
		"Vincent", "Stephen", "Patrick", "Leonard", "Martin", "Joseph",
	},
	EthBornean: {
		"Joseph Pairin", "Maximus", "Jeffrey", "Madius", "Wilfred", "Darell",
		"Ewon", "Ignatius", "Herbert", "Clarence", "Bernard Dompok",
	},
	EthSarawak: {
		"Taib", "Adenan", "Abang Johari", "Leo Moggie", "James Masing",
		"Alfred Jabu", "Douglas Uggah", "Baru Bian", "Awang Tengah",
	},
}

var familyNames = map[Ethnicity][]string{
	EthMalay:   {"bin Abdullah", "bin Hamid", "bin Yusof", "bin Hassan", "bin Omar", "bin Ibrahim", "bin Said", "bin Jaafar", "bin Sulaiman", "bin Osman"},
	EthChinese: {"Tan", "Lim", "Lee", "Wong", "Ng", "Chan", "Ong", "Teo", "Chong", "Liew", "Yap", "Goh"},
	EthIndian:  {"Vellu", "Singh", "Pillai", "Naidu", "Menon", "Raj", "Nair", "Sundram", "Pathmanaban"},
	EthOthers:  {"Fernandez", "de Silva", "Pereira", "Sta Maria", "Rozario", "Gomez", "Dias"},
	EthBornean: {"Kitingan", "Ongkili", "Mojuntin", "Dompok", "Tangau", "Malanjum", "Bumburing"},
	EthSarawak: {"Anak Linggi", "Anak Jugah", "Openg", "Anak Nyipa", "Anak Rembuyan", "Satem", "Mahmud"},
}

var partyStems = []string{
	"United", "National", "Democratic", "People's", "Progressive", "Justice",
	"Heritage", "Solidarity", "Reform", "Homeland", "Unity", "Workers'",
	"Federal", "Islamic", "Liberal", "Social", "Grassroots", "Sovereign",
}

var partyThemes = []string{
	"Front", "Party", "Movement", "Congress", "Organisation", "Action Party",
	"Alliance Party", "Council", "League", "Assembly", "Union",
}

var allianceThemes = []string{
	"National Front", "People's Pact", "Unity Coalition", "Grand Alliance",
	"Federal Concord", "Harapan Bloc", "Perikatan", "Gabungan", "Muafakat",
	"Consensus Front",
}

// nameDistanceLimit: generated org names within this edit distance of an
// existing name are rejected as near-duplicates.
const nameDistanceLimit = 3

// CharacterName produces a full name for the given ethnicity.
func CharacterName(rn *rng.Rand, e Ethnicity) string {
	given, ok := givenNames[e]
	if !ok {
		given = givenNames[EthOthers]
	}
	family, ok := familyNames[e]
	if !ok {
		family = familyNames[EthOthers]
	}
	switch e {
	case EthChinese:
		return rng.Pick(rn, family) + " " + rng.Pick(rn, given)
	case EthIndian:
		return rng.Pick(rn, given) + " " + rng.Pick(rn, family)
	default:
		return rng.Pick(rn, given) + " " + rng.Pick(rn, family)
	}
}

// PartyName composes a party name avoiding near-duplicates of taken names.
func PartyName(rn *rng.Rand, taken []string) string {
	return composeName(rn, taken, partyStems, partyThemes)
}

// AllianceName composes an alliance name avoiding near-duplicates.
func AllianceName(rn *rng.Rand, taken []string) string {
	for attempt := 0; attempt < 40; attempt++ {
		name := rng.Pick(rn, allianceThemes)
		if attempt >= 20 {
			name = rng.Pick(rn, partyStems) + " " + name
		}
		if !tooClose(name, taken) {
			return name
		}
	}
	return fmt.Sprintf("%s %d", rng.Pick(rn, allianceThemes), rn.IntN(100))
}

func composeName(rn *rng.Rand, taken, stems, themes []string) string {
	for attempt := 0; attempt < 40; attempt++ {
		name := rng.Pick(rn, stems) + " " + rng.Pick(rn, themes)
		if attempt >= 20 {
			name = rng.Pick(rn, stems) + " " + name
		}
		if !tooClose(name, taken) {
			return name
		}
	}
	// Pool exhausted; disambiguate numerically rather than loop forever.
	return fmt.Sprintf("%s %s %d", rng.Pick(rn, stems), rng.Pick(rn, themes), rn.IntN(100))
}

func tooClose(name string, taken []string) bool {
	for _, t := range taken {
		if levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(t)) <= nameDistanceLimit {
			return true
		}
	}
	return false
}

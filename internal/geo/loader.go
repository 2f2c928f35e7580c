// CSV demographics loading — the inbound data collaborator. One row per
// constituency: code,name,state,urban,electorate,pct_malay,pct_chinese,
// pct_indian,pct_others. A header row is skipped when present.
package geo

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads a demographics file into a Country.
func LoadCSV(path string) (*Country, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open demographics: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses demographics rows from a reader.
func ReadCSV(r io.Reader) (*Country, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	country := &Country{Constituencies: make(map[string]*Constituency)}
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read demographics row: %w", err)
		}
		line++
		if len(rec) < 9 {
			return nil, fmt.Errorf("demographics row %d: want 9 fields, got %d", line, len(rec))
		}
		if line == 1 && strings.EqualFold(rec[0], "code") {
			continue // header
		}

		elect, err := strconv.Atoi(rec[4])
		if err != nil {
			return nil, fmt.Errorf("demographics row %d electorate: %w", line, err)
		}
		pcts := make([]float64, 4)
		for i := 0; i < 4; i++ {
			pcts[i], err = strconv.ParseFloat(rec[5+i], 64)
			if err != nil {
				return nil, fmt.Errorf("demographics row %d percentage: %w", line, err)
			}
		}

		code := rec[0]
		if _, dup := country.Constituencies[code]; dup {
			return nil, fmt.Errorf("demographics row %d: duplicate seat code %s", line, code)
		}
		country.Constituencies[code] = &Constituency{
			Code:  code,
			Name:  rec[1],
			State: rec[2],
			Urban: strings.EqualFold(rec[3], "urban") || rec[3] == "1" || strings.EqualFold(rec[3], "true"),
			Demo: Demographics{
				Electorate: elect,
				PctMalay:   pcts[0],
				PctChinese: pcts[1],
				PctIndian:  pcts[2],
				PctOthers:  pcts[3],
			},
		}
	}
	if len(country.Constituencies) == 0 {
		return nil, fmt.Errorf("demographics file contains no constituencies")
	}
	return country, nil
}

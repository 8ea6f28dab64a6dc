// Package location serves the static division→district→thana lookup used by
// registration validation and the public location endpoints. The dataset is
// embedded at build time and loaded once; lookups are case-insensitive and
// unknown names yield empty results.
package location

import (
	_ "embed"
	"encoding/json"
	"strings"
	"sync"
)

//go:embed divisions.json
var rawData []byte

type district struct {
	Name     string   `json:"name"`
	Upazilas []string `json:"upazilas"`
}

type division struct {
	Name      string     `json:"name"`
	Districts []district `json:"districts"`
}

type dataset struct {
	Divisions []division `json:"divisions"`
}

var (
	loadOnce sync.Once
	data     dataset
)

func load() {
	loadOnce.Do(func() {
		if err := json.Unmarshal(rawData, &data); err != nil {
			// The dataset ships with the binary; a parse failure is a build
			// defect, not a runtime condition.
			panic("location: invalid embedded dataset: " + err.Error())
		}
	})
}

// Divisions returns all division names in dataset order.
func Divisions() []string {
	load()
	names := make([]string, 0, len(data.Divisions))
	for _, div := range data.Divisions {
		names = append(names, div.Name)
	}
	return names
}

// Districts returns the district names of a division, empty when unknown.
func Districts(divisionName string) []string {
	load()
	for _, div := range data.Divisions {
		if strings.EqualFold(div.Name, divisionName) {
			names := make([]string, 0, len(div.Districts))
			for _, dist := range div.Districts {
				names = append(names, dist.Name)
			}
			return names
		}
	}
	return nil
}

// Upazilas returns the upazila/thana names of a district, empty when either
// the division or the district is unknown.
func Upazilas(divisionName, districtName string) []string {
	load()
	for _, div := range data.Divisions {
		if !strings.EqualFold(div.Name, divisionName) {
			continue
		}
		for _, dist := range div.Districts {
			if strings.EqualFold(dist.Name, districtName) {
				return append([]string(nil), dist.Upazilas...)
			}
		}
	}
	return nil
}

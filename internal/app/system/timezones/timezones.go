// Package timezones serves the curated zone list offered in the profile
// timezone selector.
package timezones

import (
	"embed"
	"encoding/json"
	"sort"
	"sync"
)

//go:embed timezonedata/timezones.json
var FS embed.FS

// Zone is one selectable IANA zone.
type Zone struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Region string `json:"region,omitempty"`
}

// ZoneGroup is the zones of one region, sorted by label.
type ZoneGroup struct {
	Region string
	Zones  []Zone
}

type catalog struct {
	zones  []Zone
	byID   map[string]Zone
	groups []ZoneGroup
}

var (
	once    sync.Once
	cat     catalog
	loadErr error
)

func load() (catalog, error) {
	once.Do(func() {
		data, err := FS.ReadFile("timezonedata/timezones.json")
		if err != nil {
			loadErr = err
			return
		}
		var list []Zone
		if err := json.Unmarshal(data, &list); err != nil {
			loadErr = err
			return
		}
		cat = catalog{zones: list, byID: make(map[string]Zone, len(list))}
		byRegion := map[string][]Zone{}
		for _, z := range list {
			cat.byID[z.ID] = z
			region := z.Region
			if region == "" {
				region = "Other"
			}
			byRegion[region] = append(byRegion[region], z)
		}
		for region, zs := range byRegion {
			sort.SliceStable(zs, func(i, j int) bool { return zs[i].Label < zs[j].Label })
			cat.groups = append(cat.groups, ZoneGroup{Region: region, Zones: zs})
		}
		sort.Slice(cat.groups, func(i, j int) bool { return cat.groups[i].Region < cat.groups[j].Region })
	})
	return cat, loadErr
}

// Load parses the embedded list. Call it at startup to fail fast.
func Load() error {
	_, err := load()
	return err
}

// All returns the curated zones in file order.
func All() ([]Zone, error) {
	c, err := load()
	if err != nil {
		return nil, err
	}
	return c.zones, nil
}

// Groups returns the zones grouped by region, regions sorted by name.
func Groups() ([]ZoneGroup, error) {
	c, err := load()
	if err != nil {
		return nil, err
	}
	return c.groups, nil
}

// Label returns the display label for id, or id itself when unknown.
func Label(id string) string {
	c, err := load()
	if err != nil {
		return id
	}
	if z, ok := c.byID[id]; ok && z.Label != "" {
		return z.Label
	}
	return id
}

// Curated reports whether id is in the curated list. Zones outside the list
// may still be valid IANA names.
func Curated(id string) bool {
	c, err := load()
	if err != nil {
		return false
	}
	_, ok := c.byID[id]
	return ok
}

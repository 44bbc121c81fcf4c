package timezones

import (
	"testing"
	"time"
	_ "time/tzdata"
)

func TestAll_LoadableZones(t *testing.T) {
	zones, err := All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(zones) == 0 {
		t.Fatal("All() returned no zones")
	}
	for _, z := range zones {
		if z.Label == "" {
			t.Errorf("zone %q has empty label", z.ID)
		}
		if _, err := time.LoadLocation(z.ID); err != nil {
			t.Errorf("zone %q is not a loadable IANA name: %v", z.ID, err)
		}
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"America/New_York", "Eastern Time (New York)"},
		{"Invalid/Timezone", "Invalid/Timezone"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Label(tt.id); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestCurated(t *testing.T) {
	if !Curated("UTC") {
		t.Error("UTC should be curated")
	}
	if Curated("Not/AZone") {
		t.Error("Not/AZone should not be curated")
	}
}

func TestGroups_Sorted(t *testing.T) {
	groups, err := Groups()
	if err != nil {
		t.Fatalf("Groups() error = %v", err)
	}
	for i := 1; i < len(groups); i++ {
		if groups[i-1].Region >= groups[i].Region {
			t.Errorf("regions not sorted: %q before %q", groups[i-1].Region, groups[i].Region)
		}
	}
	for _, g := range groups {
		for i := 1; i < len(g.Zones); i++ {
			if g.Zones[i-1].Label > g.Zones[i].Label {
				t.Errorf("%s zones not sorted by label", g.Region)
			}
		}
	}
}

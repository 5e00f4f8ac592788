package govdata

import (
	"testing"

	"engagegov/internal/core/ident"
	"engagegov/internal/core/records"
)

func TestStamp(t *testing.T) {
	reps := StampRepresentatives([]records.Representative{{ExternalID: "1", Source: records.SourceCamara}})
	if reps[0].ID != ident.Generate(records.SourceCamara, "1") {
		t.Fatalf("rep id = %q", reps[0].ID)
	}
	items := StampItems([]records.LegislativeItem{{ExternalID: "1", Source: records.SourceSenado}})
	if items[0].ID != ident.Generate(records.SourceSenado, "1") || items[0].ID == reps[0].ID {
		t.Fatalf("item id = %q", items[0].ID)
	}
	sp := StampSpeeches([]records.Speech{{ExternalID: "s1", Source: records.SourceCamara}})
	if sp[0].ID != ident.Generate(records.SourceCamara, "s1") {
		t.Fatalf("speech id = %q", sp[0].ID)
	}
}

func TestCap(t *testing.T) {
	s := []int{1, 2, 3}
	if len(Cap(s, 2)) != 2 || len(Cap(s, 0)) != 3 || len(Cap(s, 10)) != 3 {
		t.Fatalf("Cap mismatch")
	}
}

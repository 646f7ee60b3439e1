package utils

import "testing"

func TestMergeLabel(t *testing.T) {
	tests := []struct {
		name     string
		existing Label
		incoming Label
		want     Label
	}{
		{"empty existing", Label{}, Label{Value: "a", Source: "recall"}, Label{Value: "a", Source: "recall"}},
		{"empty incoming", Label{Value: "a", Source: "recall"}, Label{}, Label{Value: "a", Source: "recall"}},
		{"append", Label{Value: "a", Source: "recall"}, Label{Value: "b", Source: "rank"}, Label{Value: "a|b", Source: "recall,rank"}},
		{"same value", Label{Value: "a", Source: "recall"}, Label{Value: "a", Source: "recall"}, Label{Value: "a", Source: "recall"}},
		{"missing source", Label{Value: "a"}, Label{Value: "b", Source: "rank"}, Label{Value: "a|b", Source: "rank"}},
	}
	for _, tt := range tests {
		if got := MergeLabel(tt.existing, tt.incoming); got != tt.want {
			t.Errorf("%s: MergeLabel = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestLabelFields(t *testing.T) {
	got := LabelFields(map[string]Label{"matched_city": {Value: "jaipur", Source: "location"}})
	if len(got) != 1 || got["matched_city"] != "jaipur" {
		t.Errorf("LabelFields = %v", got)
	}
}

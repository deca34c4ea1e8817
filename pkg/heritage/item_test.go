package heritage

import (
	"testing"
)

func TestQuery_Equal(t *testing.T) {
	base := Query{
		Category: "all",
		Filters:  Filters{Era: []string{"Ancient", "Medieval"}, Culture: []string{"Greek"}, SortBy: SortPopular},
		Search:   "mask",
	}

	tests := []struct {
		name  string
		other Query
		want  bool
	}{
		{"identical", base, true},
		{
			"era order ignored",
			Query{Category: "all", Filters: Filters{Era: []string{"Medieval", "Ancient"}, Culture: []string{"Greek"}}, Search: "mask"},
			true,
		},
		{
			"surrounding whitespace ignored",
			Query{Category: "all", Filters: base.Filters, Search: " mask "},
			true,
		},
		{"category differs", Query{Category: "ancient", Filters: base.Filters, Search: "mask"}, false},
		{"search differs", Query{Category: "all", Filters: base.Filters, Search: "vase"}, false},
		{
			"ar flag differs",
			Query{Category: "all", Filters: Filters{Era: base.Filters.Era, Culture: base.Filters.Culture, AROnly: true}, Search: "mask"},
			false,
		},
		{
			"culture differs",
			Query{Category: "all", Filters: Filters{Era: base.Filters.Era, Culture: []string{"Roman"}}, Search: "mask"},
			false,
		},
		{
			"sort differs",
			Query{Category: "all", Filters: Filters{Era: base.Filters.Era, Culture: base.Filters.Culture, SortBy: SortOldest}, Search: "mask"},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	tests := map[string]SortOrder{
		"popular": SortPopular,
		"newest":  SortNewest,
		"OLDEST":  SortOldest,
		"":        SortPopular,
		"random":  SortPopular,
	}

	for in, want := range tests {
		if got := ParseSortOrder(in); got != want {
			t.Errorf("ParseSortOrder(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSortItems(t *testing.T) {
	items := func() []Item {
		return []Item{
			{ID: "a", Views: 10, Year: 1500},
			{ID: "b", Views: 30, Year: -200},
			{ID: "c", Views: 20, Year: 1900},
		}
	}

	tests := []struct {
		order SortOrder
		want  []string
	}{
		{SortPopular, []string{"b", "c", "a"}},
		{SortNewest, []string{"c", "a", "b"}},
		{SortOldest, []string{"b", "a", "c"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			got := items()
			SortItems(got, tt.order)
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Fatalf("SortItems(%s) order = %v, want %v", tt.order, ids(got), tt.want)
				}
			}
		})
	}
}

func TestSampleItems(t *testing.T) {
	items := SampleItems()
	if len(items) != 8 {
		t.Fatalf("len(SampleItems()) = %d, want 8", len(items))
	}

	items[0].Title = "changed"
	if SampleItems()[0].Title == "changed" {
		t.Error("SampleItems() must return a fresh slice")
	}

	seen := make(map[string]bool)
	for _, it := range SampleItems() {
		if seen[it.ID] {
			t.Errorf("duplicate sample id %q", it.ID)
		}
		seen[it.ID] = true
		if it.ImageURL == "" {
			t.Errorf("sample %q has no image", it.ID)
		}
	}
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

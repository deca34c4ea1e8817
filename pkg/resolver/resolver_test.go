package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/arcivia/arcivia-explore/pkg/client"
	"github.com/arcivia/arcivia-explore/pkg/heritage"
	"github.com/google/go-cmp/cmp"
)

// fakeUpstream records the calls the resolver makes.
type fakeUpstream struct {
	searchIDs   []int
	departments map[int][]int
	err         error

	searches  []client.SearchParams
	deptCalls []int
}

func (f *fakeUpstream) Search(_ context.Context, p client.SearchParams) ([]int, error) {
	f.searches = append(f.searches, p)
	return f.searchIDs, f.err
}

func (f *fakeUpstream) ListObjectIDs(_ context.Context, departmentID int) ([]int, error) {
	f.deptCalls = append(f.deptCalls, departmentID)
	return f.departments[departmentID], f.err
}

func seq(from, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = from + i
	}
	return out
}

func TestEraRange(t *testing.T) {
	tests := []struct {
		name       string
		begin, end int
		ok         bool
	}{
		{"Prehistoric", -10000, -3000, true},
		{"Ancient", -3000, 500, true},
		{"Medieval", 500, 1400, true},
		{"Renaissance", 1400, 1700, true},
		{"Modern", 1700, 2100, true},
		{"modern", 1700, 2100, true},
		{"Baroque", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			begin, end, ok := EraRange(tt.name)
			if begin != tt.begin || end != tt.end || ok != tt.ok {
				t.Errorf("EraRange(%q) = (%d, %d, %v), want (%d, %d, %v)",
					tt.name, begin, end, ok, tt.begin, tt.end, tt.ok)
			}
		})
	}
}

func TestDepartmentsFor(t *testing.T) {
	for _, c := range Categories() {
		if len(DepartmentsFor(c)) == 0 {
			t.Errorf("DepartmentsFor(%q) is empty", c)
		}
	}

	if diff := cmp.Diff(DepartmentsFor("all"), DepartmentsFor("sculpture-garden")); diff != "" {
		t.Errorf("unknown category should fall back to all (-all +got):\n%s", diff)
	}
}

func TestSearchParamsFor(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want client.SearchParams
	}{
		{
			name: "plain search",
			req:  Request{Search: "  vase "},
			want: client.SearchParams{Query: "vase"},
		},
		{
			name: "ar only maps to highlight",
			req:  Request{Search: "vase", Filters: heritage.Filters{AROnly: true}},
			want: client.SearchParams{Query: "vase", HighlightOnly: true},
		},
		{
			name: "single known era sets date range",
			req:  Request{Search: "vase", Filters: heritage.Filters{Era: []string{"Medieval"}}},
			want: client.SearchParams{Query: "vase", DateRange: &client.DateRange{Begin: 500, End: 1400}},
		},
		{
			name: "unknown era fails open",
			req:  Request{Search: "vase", Filters: heritage.Filters{Era: []string{"Jurassic"}}},
			want: client.SearchParams{Query: "vase"},
		},
		{
			name: "two eras set no range",
			req:  Request{Search: "vase", Filters: heritage.Filters{Era: []string{"Ancient", "Modern"}}},
			want: client.SearchParams{Query: "vase"},
		},
		{
			name: "culture replaces search text",
			req:  Request{Search: "vase", Filters: heritage.Filters{Culture: []string{"Egyptian", "Greek"}}},
			want: client.SearchParams{Query: "Egyptian", ArtistOrCulture: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, SearchParamsFor(tt.req)); diff != "" {
				t.Errorf("SearchParamsFor() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_SearchWindow(t *testing.T) {
	up := &fakeUpstream{searchIDs: seq(1, 150)}
	r := New(up)
	ctx := context.Background()

	tests := []struct {
		page int
		want []int
	}{
		{1, seq(1, 60)},
		{2, seq(61, 60)},
		{3, seq(121, 30)},
		{4, []int{}},
	}

	for _, tt := range tests {
		got, err := r.Resolve(ctx, Request{Search: "bowl", Page: tt.page})
		if err != nil {
			t.Fatalf("Resolve(page %d) error = %v", tt.page, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Resolve(page %d) mismatch (-want +got):\n%s", tt.page, diff)
		}
	}

	if len(up.deptCalls) != 0 {
		t.Errorf("search path must not list departments, got %v", up.deptCalls)
	}
}

func TestResolve_DepartmentRotation(t *testing.T) {
	depts := DepartmentsFor("all")
	up := &fakeUpstream{departments: map[int][]int{}}
	for _, d := range depts {
		up.departments[d] = seq(d*1000, 100)
	}
	r := New(up)
	ctx := context.Background()

	for page := 1; page <= len(depts)+1; page++ {
		if _, err := r.Resolve(ctx, Request{Category: "all", Page: page}); err != nil {
			t.Fatalf("Resolve(page %d) error = %v", page, err)
		}
	}

	want := append(append([]int(nil), depts...), depts[0])
	if diff := cmp.Diff(want, up.deptCalls); diff != "" {
		t.Errorf("department rotation mismatch (-want +got):\n%s", diff)
	}
	if len(up.searches) != 0 {
		t.Errorf("department path must not search, got %d searches", len(up.searches))
	}
}

func TestResolve_FiltersWithoutSearchListDepartment(t *testing.T) {
	dept := DepartmentsFor("ancient")[0]
	up := &fakeUpstream{departments: map[int][]int{dept: {1, 2, 3}}}
	r := New(up)

	req := Request{
		Category: "ancient",
		Search:   "   ",
		Filters:  heritage.Filters{Era: []string{"Ancient"}, Culture: []string{"Greek"}},
		Page:     1,
	}
	got, err := r.Resolve(context.Background(), req)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
	if len(up.searches) != 0 {
		t.Errorf("era and culture alone must not search, got %d searches", len(up.searches))
	}
}

func TestResolve_DepartmentOffsetWraps(t *testing.T) {
	dept := DepartmentsFor("medieval")[1]
	up := &fakeUpstream{departments: map[int][]int{
		DepartmentsFor("medieval")[0]: seq(1, 100),
		dept:                          seq(1, 100),
	}}
	r := New(up)

	// page 2: offset 60 in a 100-item list wraps after 40 IDs
	got, err := r.Resolve(context.Background(), Request{Category: "medieval", Page: 2})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := append(seq(61, 40), seq(1, 20)...)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_ShortDepartmentNeverRepeats(t *testing.T) {
	up := &fakeUpstream{departments: map[int][]int{DepartmentsFor("medieval")[0]: {5, 6, 7}}}
	r := New(up)

	got, err := r.Resolve(context.Background(), Request{Category: "medieval", Page: 1})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if diff := cmp.Diff([]int{5, 6, 7}, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_EmptyIsNotAnError(t *testing.T) {
	r := New(&fakeUpstream{})

	for _, req := range []Request{
		{Category: "museums", Page: 1},
		{Search: "nothing", Page: 1},
	} {
		got, err := r.Resolve(context.Background(), req)
		if err != nil {
			t.Errorf("Resolve(%+v) error = %v", req, err)
		}
		if len(got) != 0 {
			t.Errorf("Resolve(%+v) = %v, want empty", req, got)
		}
	}
}

func TestResolve_UpstreamError(t *testing.T) {
	boom := errors.New("upstream down")
	r := New(&fakeUpstream{err: boom})

	_, err := r.Resolve(context.Background(), Request{Category: "all", Page: 1})
	if !errors.Is(err, boom) {
		t.Errorf("Resolve() error = %v, want wrapped %v", err, boom)
	}
}

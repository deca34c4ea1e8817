package resolver

import "strings"

type eraRange struct {
	begin, end int
}

var eras = map[string]eraRange{
	"prehistoric": {-10000, -3000},
	"ancient":     {-3000, 500},
	"medieval":    {500, 1400},
	"renaissance": {1400, 1700},
	"modern":      {1700, 2100},
}

// EraRange returns the year span of a named era. Negative years are BC.
// Unknown names report ok=false and apply no date restriction.
func EraRange(name string) (begin, end int, ok bool) {
	r, ok := eras[strings.ToLower(strings.TrimSpace(name))]
	return r.begin, r.end, ok
}

// Met department IDs per explore category.
var categoryDepartments = map[string][]int{
	"all":       {11, 13, 10, 6, 17, 12},
	"trending":  {11, 21, 13},
	"ancient":   {10, 13, 3},
	"medieval":  {17, 7},
	"artifacts": {4, 5, 14, 12},
	"monuments": {13, 3, 10},
	"museums":   {11, 15, 1},
}

// Categories lists the known category names in display order.
func Categories() []string {
	return []string{"all", "trending", "ancient", "medieval", "artifacts", "monuments", "museums"}
}

// DepartmentsFor returns the departments rotated through for category.
// Unknown categories fall back to "all".
func DepartmentsFor(category string) []int {
	if depts, ok := categoryDepartments[strings.ToLower(category)]; ok {
		return depts
	}
	return categoryDepartments["all"]
}

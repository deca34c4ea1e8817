package heritage

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fullRecord() Record {
	return Record{
		ObjectID:          544320,
		IsHighlight:       true,
		PrimaryImage:      "https://images.metmuseum.org/CRDImages/eg/original/DP-1.jpg",
		PrimaryImageSmall: "https://images.metmuseum.org/CRDImages/eg/web-large/DP-1.jpg",
		Department:        "Egyptian Art",
		ObjectName:        "Funerary mask",
		Title:             "Mask of a Noble",
		Culture:           "Egyptian",
		Period:            "New Kingdom",
		ObjectDate:        "ca. 1323 B.C.",
		ObjectBeginDate:   -1323,
		Medium:            "Gold, lapis lazuli",
		Dimensions:        "H. 54 cm",
		CreditLine:        "Rogers Fund, 1915.",
		City:              "Thebes",
		Country:           "Egypt",
		Classification:    "Metalwork",
		Tags:              []string{"Gold", "Funerary", "Royal"},
	}
}

func TestNormalize_FullRecord(t *testing.T) {
	item, ok := Normalize(fullRecord(), "artifacts")
	if !ok {
		t.Fatal("Normalize() returned false for record with image")
	}

	want := Item{
		ID:          "544320",
		Title:       "Mask of a Noble",
		Subtitle:    "Funerary mask",
		Era:         "New Kingdom · 1323 BC",
		Culture:     "Egyptian",
		ImageURL:    "https://images.metmuseum.org/CRDImages/eg/original/DP-1.jpg",
		IsAR:        true,
		Category:    "artifacts",
		Location:    "Thebes, Egypt",
		Description: "Funerary mask. Medium: Gold, lapis lazuli. Dimensions: H. 54 cm. Rogers Fund, 1915.",
		Tags:        []string{"gold", "funerary", "royal"},
		Year:        -1323,
	}

	// engagement counts are synthetic; compare them separately
	if item.Views < 0 || item.Likes < 0 {
		t.Errorf("engagement must be non-negative, got views=%d likes=%d", item.Views, item.Likes)
	}
	item.Views, item.Likes = 0, 0

	if diff := cmp.Diff(want, item); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_NoImage(t *testing.T) {
	rec := fullRecord()
	rec.PrimaryImage = ""
	rec.PrimaryImageSmall = ""

	if _, ok := Normalize(rec, "all"); ok {
		t.Error("Normalize() should discard records without an image")
	}
}

func TestNormalize_SmallImageFallback(t *testing.T) {
	rec := fullRecord()
	rec.PrimaryImage = ""

	item, ok := Normalize(rec, "all")
	if !ok {
		t.Fatal("Normalize() should accept a record with only a small image")
	}
	if item.ImageURL != rec.PrimaryImageSmall {
		t.Errorf("ImageURL = %q, want %q", item.ImageURL, rec.PrimaryImageSmall)
	}
}

func TestNormalize_Era(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{"bc year with period", Record{Period: "Hellenistic", ObjectBeginDate: -130}, "Hellenistic · 130 BC"},
		{"ad year only", Record{ObjectBeginDate: 1163}, "1163 AD"},
		{"dynasty label", Record{Dynasty: "Qin dynasty", ObjectBeginDate: -210}, "Qin dynasty · 210 BC"},
		{"raw date fallback", Record{ObjectDate: "ca. 1500"}, "ca. 1500"},
		{"label and raw date", Record{Reign: "Amenhotep III", ObjectDate: "ca. 1390–1352 B.C."}, "Amenhotep III · ca. 1390–1352 B.C."},
		{"nothing known", Record{}, UnknownPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatEra(tt.rec); got != tt.want {
				t.Errorf("formatEra() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalize_Fallbacks(t *testing.T) {
	rec := Record{ObjectID: 7, PrimaryImage: "https://img/7.jpg"}

	item, ok := Normalize(rec, "museums")
	if !ok {
		t.Fatal("Normalize() returned false")
	}

	if item.Title != UntitledTitle {
		t.Errorf("Title = %q, want %q", item.Title, UntitledTitle)
	}
	if item.Culture != UnknownCulture {
		t.Errorf("Culture = %q, want %q", item.Culture, UnknownCulture)
	}
	if item.Location != DefaultLocation {
		t.Errorf("Location = %q, want %q", item.Location, DefaultLocation)
	}
	if item.Description != NoDescription {
		t.Errorf("Description = %q, want %q", item.Description, NoDescription)
	}
	if item.Era != UnknownPeriod {
		t.Errorf("Era = %q, want %q", item.Era, UnknownPeriod)
	}
	if len(item.Tags) != 0 {
		t.Errorf("Tags = %v, want none", item.Tags)
	}
}

func TestNormalize_CultureChain(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{"culture field", Record{Culture: "Roman", ArtistDisplayName: "Unknown", Department: "Greek and Roman Art"}, "Roman"},
		{"artist name", Record{ArtistDisplayName: "Rembrandt", Department: "European Paintings"}, "Rembrandt"},
		{"department", Record{Department: "Asian Art"}, "Asian Art"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.rec.PrimaryImage = "https://img/x.jpg"
			item, _ := Normalize(tt.rec, "all")
			if item.Culture != tt.want {
				t.Errorf("Culture = %q, want %q", item.Culture, tt.want)
			}
		})
	}
}

func TestNormalize_DerivedTags(t *testing.T) {
	rec := Record{
		ObjectID:       1,
		PrimaryImage:   "https://img/1.jpg",
		Classification: "Metalwork",
		ObjectName:     "Mask fragment",
		Medium:         "Gold, silver",
	}

	item, _ := Normalize(rec, "all")
	want := []string{"metalwork", "mask", "gold"}
	if diff := cmp.Diff(want, item.Tags); diff != "" {
		t.Errorf("Tags mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_TagCap(t *testing.T) {
	rec := fullRecord()
	rec.Tags = []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	item, _ := Normalize(rec, "all")
	if len(item.Tags) != MaxTags {
		t.Fatalf("len(Tags) = %d, want %d", len(item.Tags), MaxTags)
	}
	if item.Tags[MaxTags-1] != "f" {
		t.Errorf("Tags should keep upstream order, got %v", item.Tags)
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	a, _ := Normalize(fullRecord(), "all")
	b, _ := Normalize(fullRecord(), "all")

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Normalize() is not deterministic:\n%s", diff)
	}
}

func TestNormalize_DescriptionFragments(t *testing.T) {
	rec := Record{
		ObjectID:         3,
		PrimaryImage:     "https://img/3.jpg",
		ArtistDisplayBio: "Dutch, Leiden 1606–1669 Amsterdam",
	}

	item, _ := Normalize(rec, "all")
	if item.Description != "Dutch, Leiden 1606–1669 Amsterdam." {
		t.Errorf("Description = %q", item.Description)
	}
	if strings.Contains(item.Description, "Medium") {
		t.Error("absent fragments must not appear in the description")
	}
}

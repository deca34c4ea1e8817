package heritage

import (
	"errors"
	"testing"
)

func TestParseRecord(t *testing.T) {
	body := []byte(`{
		"objectID": 436535,
		"isHighlight": true,
		"primaryImage": "https://images.metmuseum.org/CRDImages/ep/original/DT1567.jpg",
		"primaryImageSmall": "https://images.metmuseum.org/CRDImages/ep/web-large/DT1567.jpg",
		"department": "European Paintings",
		"objectName": "Painting",
		"title": "Wheat Field with Cypresses",
		"culture": "",
		"period": "",
		"artistDisplayName": "Vincent van Gogh",
		"artistDisplayBio": "Dutch, Zundert 1853–1890 Auvers-sur-Oise",
		"objectDate": "1889",
		"objectBeginDate": 1889,
		"objectEndDate": 1889,
		"medium": "Oil on canvas",
		"classification": "Paintings",
		"tags": [{"term": "Landscapes"}, {"term": "Cypresses"}, {"term": "Wheat"}]
	}`)

	rec, err := ParseRecord(body)
	if err != nil {
		t.Fatalf("ParseRecord() error = %v", err)
	}

	if rec.ObjectID != 436535 {
		t.Errorf("ObjectID = %d, want 436535", rec.ObjectID)
	}
	if !rec.IsHighlight {
		t.Error("IsHighlight should be true")
	}
	if rec.ArtistDisplayName != "Vincent van Gogh" {
		t.Errorf("ArtistDisplayName = %q", rec.ArtistDisplayName)
	}
	if rec.ObjectBeginDate != 1889 {
		t.Errorf("ObjectBeginDate = %d, want 1889", rec.ObjectBeginDate)
	}
	if len(rec.Tags) != 3 || rec.Tags[0] != "Landscapes" {
		t.Errorf("Tags = %v", rec.Tags)
	}
	if !rec.HasImage() {
		t.Error("HasImage() should be true")
	}
}

func TestParseRecord_NullTags(t *testing.T) {
	rec, err := ParseRecord([]byte(`{"objectID": 1, "tags": null, "primaryImage": ""}`))
	if err != nil {
		t.Fatalf("ParseRecord() error = %v", err)
	}
	if len(rec.Tags) != 0 {
		t.Errorf("Tags = %v, want none", rec.Tags)
	}
	if rec.HasImage() {
		t.Error("HasImage() should be false")
	}
}

func TestParseRecord_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>rate limited</html>`},
		{"array", `[1, 2, 3]`},
		{"error body", `{"message": "ObjectID not found"}`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecord([]byte(tt.body))
			if !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("ParseRecord() error = %v, want ErrInvalidRecord", err)
			}
		})
	}
}

func TestRecordHasImage(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want bool
	}{
		{"primary", Record{PrimaryImage: "https://img/1.jpg"}, true},
		{"small only", Record{PrimaryImageSmall: "https://img/1-small.jpg"}, true},
		{"none", Record{}, false},
		{"blank", Record{PrimaryImage: "   ", PrimaryImageSmall: "\t"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.HasImage(); got != tt.want {
				t.Errorf("HasImage() = %v, want %v", got, tt.want)
			}
			if _, ok := Normalize(tt.rec, "all"); ok != tt.want {
				t.Errorf("Normalize() ok = %v, want it to agree with HasImage", ok)
			}
		})
	}
}

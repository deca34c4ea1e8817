package heritage

import (
	"errors"

	"github.com/tidwall/gjson"
)

// ErrInvalidRecord is returned when an upstream body is not a usable object record.
var ErrInvalidRecord = errors.New("invalid object record")

// Record is one upstream collection object as returned by
// GET /objects/{id}. Only the fields the normalizer consumes are kept.
type Record struct {
	ObjectID          int
	IsHighlight       bool
	PrimaryImage      string
	PrimaryImageSmall string
	Department        string
	ObjectName        string
	Title             string
	Culture           string
	Period            string
	Dynasty           string
	Reign             string
	ArtistDisplayName string
	ArtistDisplayBio  string
	ObjectDate        string
	ObjectBeginDate   int
	ObjectEndDate     int
	Medium            string
	Dimensions        string
	CreditLine        string
	City              string
	Country           string
	Region            string
	Classification    string
	Tags              []string
}

// HasImage reports whether the record carries a non-blank image URL. It
// agrees with Normalize, which discards records without one.
func (r Record) HasImage() bool {
	return firstNonEmpty(r.PrimaryImage, r.PrimaryImageSmall) != ""
}

// ParseRecord decodes a raw object body.
func ParseRecord(body []byte) (Record, error) {
	if !gjson.ValidBytes(body) {
		return Record{}, ErrInvalidRecord
	}
	obj := gjson.ParseBytes(body)
	if !obj.IsObject() || !obj.Get("objectID").Exists() {
		return Record{}, ErrInvalidRecord
	}

	rec := Record{
		ObjectID:          int(obj.Get("objectID").Int()),
		IsHighlight:       obj.Get("isHighlight").Bool(),
		PrimaryImage:      obj.Get("primaryImage").String(),
		PrimaryImageSmall: obj.Get("primaryImageSmall").String(),
		Department:        obj.Get("department").String(),
		ObjectName:        obj.Get("objectName").String(),
		Title:             obj.Get("title").String(),
		Culture:           obj.Get("culture").String(),
		Period:            obj.Get("period").String(),
		Dynasty:           obj.Get("dynasty").String(),
		Reign:             obj.Get("reign").String(),
		ArtistDisplayName: obj.Get("artistDisplayName").String(),
		ArtistDisplayBio:  obj.Get("artistDisplayBio").String(),
		ObjectDate:        obj.Get("objectDate").String(),
		ObjectBeginDate:   int(obj.Get("objectBeginDate").Int()),
		ObjectEndDate:     int(obj.Get("objectEndDate").Int()),
		Medium:            obj.Get("medium").String(),
		Dimensions:        obj.Get("dimensions").String(),
		CreditLine:        obj.Get("creditLine").String(),
		City:              obj.Get("city").String(),
		Country:           obj.Get("country").String(),
		Region:            obj.Get("region").String(),
		Classification:    obj.Get("classification").String(),
	}

	for _, term := range obj.Get("tags.#.term").Array() {
		if t := term.String(); t != "" {
			rec.Tags = append(rec.Tags, t)
		}
	}

	return rec, nil
}

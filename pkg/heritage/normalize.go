package heritage

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// Fallback strings used when upstream data is absent.
const (
	UnknownPeriod     = "Unknown Period"
	UnknownCulture    = "Unknown Culture"
	DefaultLocation   = "The Metropolitan Museum of Art, New York"
	NoDescription     = "No description available."
	UntitledTitle     = "Untitled"
	DefaultSubtitle   = "Artifact"
	eraSeparator      = " · "
	locationSeparator = ", "
)

// Normalize maps an upstream record onto an Item for the given category.
// It returns false when the record has no image and must be discarded.
// Normalize is a pure function of its input.
func Normalize(rec Record, category string) (Item, bool) {
	image := firstNonEmpty(rec.PrimaryImage, rec.PrimaryImageSmall)
	if image == "" {
		return Item{}, false
	}

	id := strconv.Itoa(rec.ObjectID)
	views, likes := engagement(id)

	return Item{
		ID:          id,
		Title:       firstNonEmpty(rec.Title, rec.ObjectName, UntitledTitle),
		Subtitle:    firstNonEmpty(rec.ObjectName, rec.Classification, DefaultSubtitle),
		Era:         formatEra(rec),
		Culture:     firstNonEmpty(rec.Culture, rec.ArtistDisplayName, rec.Department, UnknownCulture),
		ImageURL:    image,
		Views:       views,
		Likes:       likes,
		IsAR:        rec.IsHighlight,
		Category:    category,
		Location:    formatLocation(rec),
		Description: formatDescription(rec),
		Tags:        deriveTags(rec),
		Year:        rec.ObjectBeginDate,
	}, true
}

func formatEra(rec Record) string {
	label := firstNonEmpty(rec.Period, rec.Dynasty, rec.Reign)

	var year string
	switch {
	case rec.ObjectBeginDate < 0:
		year = fmt.Sprintf("%d BC", -rec.ObjectBeginDate)
	case rec.ObjectBeginDate > 0:
		year = fmt.Sprintf("%d AD", rec.ObjectBeginDate)
	default:
		year = strings.TrimSpace(rec.ObjectDate)
	}

	if era := joinPresent(eraSeparator, label, year); era != "" {
		return era
	}
	return UnknownPeriod
}

func formatLocation(rec Record) string {
	if loc := joinPresent(locationSeparator, rec.City, rec.Country, rec.Region); loc != "" {
		return loc
	}
	return DefaultLocation
}

func formatDescription(rec Record) string {
	var fragments []string
	if rec.ObjectName != "" {
		fragments = append(fragments, rec.ObjectName)
	}
	if rec.Medium != "" {
		fragments = append(fragments, "Medium: "+rec.Medium)
	}
	if rec.Dimensions != "" {
		fragments = append(fragments, "Dimensions: "+rec.Dimensions)
	}
	if rec.CreditLine != "" {
		fragments = append(fragments, rec.CreditLine)
	}
	if rec.ArtistDisplayBio != "" {
		fragments = append(fragments, rec.ArtistDisplayBio)
	}
	if len(fragments) == 0 {
		return NoDescription
	}
	for i, f := range fragments {
		fragments[i] = strings.TrimRight(strings.TrimSpace(f), ".")
	}
	return strings.Join(fragments, ". ") + "."
}

func deriveTags(rec Record) []string {
	var tags []string
	if len(rec.Tags) > 0 {
		for _, t := range rec.Tags {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, strings.ToLower(t))
			}
		}
	} else {
		for _, field := range []string{rec.Classification, rec.ObjectName, rec.Medium} {
			words := strings.Fields(field)
			if len(words) == 0 {
				continue
			}
			tags = append(tags, strings.ToLower(strings.Trim(words[0], ",;:")))
		}
	}
	if len(tags) > MaxTags {
		tags = tags[:MaxTags]
	}
	return tags
}

// engagement derives placeholder view and like counts from the item ID.
// There is no real engagement data upstream.
func engagement(id string) (views, likes int) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	sum := h.Sum32()
	views = int(sum % 100000)
	likes = int((sum / 100000) % 5000)
	return views, likes
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func joinPresent(sep string, values ...string) string {
	present := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			present = append(present, v)
		}
	}
	return strings.Join(present, sep)
}

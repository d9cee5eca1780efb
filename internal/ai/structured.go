package ai

import (
	"time"

	"github.com/jessebautista/wpnew-sub000/internal/blog"
	"github.com/jessebautista/wpnew-sub000/internal/content"
	"github.com/jessebautista/wpnew-sub000/internal/event"
	"github.com/jessebautista/wpnew-sub000/internal/piano"
)

// StructuredData is a schema.org-shaped record for page metadata. Keys
// follow the JSON-LD convention.
type StructuredData map[string]any

// StructuredDataForPiano renders a piano as a schema.org Place.
func StructuredDataForPiano(p *piano.Piano) StructuredData {
	data := StructuredData{
		"@context":    "https://schema.org",
		"@type":       "Place",
		"name":        p.Title,
		"description": p.Statement,
	}
	if p.LocationName != "" {
		data["address"] = p.LocationName
	}
	if p.Coordinates != nil && p.Coordinates.Valid() {
		data["geo"] = StructuredData{
			"@type":     "GeoCoordinates",
			"latitude":  p.Coordinates.Lat,
			"longitude": p.Coordinates.Lng,
		}
	}
	if len(p.Images) > 0 {
		urls := make([]string, 0, len(p.Images))
		for _, img := range p.Images {
			urls = append(urls, img.ImageURL)
		}
		data["image"] = urls
	}
	return data
}

// StructuredDataForEvent renders an event as a schema.org Event.
func StructuredDataForEvent(ev *event.Event) StructuredData {
	data := StructuredData{
		"@context":    "https://schema.org",
		"@type":       "Event",
		"name":        ev.Title,
		"description": ev.Description,
		"startDate":   ev.Date.Format(time.RFC3339),
	}
	if ev.LocationName != "" {
		loc := StructuredData{"@type": "Place", "name": ev.LocationName}
		if ev.Coordinates != nil && ev.Coordinates.Valid() {
			loc["geo"] = StructuredData{
				"@type":     "GeoCoordinates",
				"latitude":  ev.Coordinates.Lat,
				"longitude": ev.Coordinates.Lng,
			}
		}
		data["location"] = loc
	}
	if ev.Organizer != "" {
		data["organizer"] = StructuredData{"@type": "Organization", "name": ev.Organizer}
	}
	return data
}

// StructuredDataForPost renders a blog post as a schema.org Article.
func StructuredDataForPost(p *blog.Post) StructuredData {
	data := StructuredData{
		"@context":      "https://schema.org",
		"@type":         "Article",
		"headline":      p.Title,
		"description":   p.Excerpt,
		"datePublished": p.CreatedAt.Format(time.RFC3339),
		"dateModified":  p.UpdatedAt.Format(time.RFC3339),
	}
	if p.AuthorName != "" {
		data["author"] = StructuredData{"@type": "Person", "name": p.AuthorName}
	}
	if len(p.Tags) > 0 {
		data["keywords"] = p.Tags
	}
	return data
}

// typeNames maps content types to their schema.org counterparts; kept
// exhaustive so a new content type fails loudly here.
var typeNames = map[content.Type]string{
	content.TypePiano:    "Place",
	content.TypeEvent:    "Event",
	content.TypeBlogPost: "Article",
}

// SchemaTypeFor returns the schema.org type name for a content type.
func SchemaTypeFor(t content.Type) string {
	return typeNames[t]
}

// ABOUTME: Restaurant match and retrieval document structures
// ABOUTME: Match is a denormalized snapshot, not a live index reference
package models

import "encoding/json"

// DocumentMetadata is the structured metadata attached to an indexed document
type DocumentMetadata struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Location      string          `json:"location"`
	Price         string          `json:"price,omitempty"`
	RestaurantURL string          `json:"restaurant_url,omitempty"`
	ImagesURL     string          `json:"images_url,omitempty"`
	Coordinates   []float64       `json:"coordinates,omitempty"`
	OriginalData  json.RawMessage `json:"original_data,omitempty"`
}

// Document is a retrievable text document with restaurant metadata
type Document struct {
	Content  string           `json:"content"`
	Metadata DocumentMetadata `json:"metadata"`
	Score    float64          `json:"score,omitempty"`
}

// Match is a deduplicated restaurant candidate attached to the chat state
type Match struct {
	Name          string          `json:"name"`
	ID            string          `json:"id"`
	Content       string          `json:"content"`
	Price         string          `json:"price,omitempty"`
	RestaurantURL string          `json:"restaurant_url,omitempty"`
	ImagesURL     string          `json:"images_url,omitempty"`
	Coordinates   []float64       `json:"coordinates,omitempty"`
	OriginalData  json.RawMessage `json:"original_data,omitempty"`
}

// MatchFromDocument snapshots a retrieved document into a Match
func MatchFromDocument(doc Document) Match {
	name := doc.Metadata.Name
	if name == "" {
		name = "Unknown Restaurant"
	}
	return Match{
		Name:          name,
		ID:            doc.Metadata.ID,
		Content:       doc.Content,
		Price:         doc.Metadata.Price,
		RestaurantURL: doc.Metadata.RestaurantURL,
		ImagesURL:     doc.Metadata.ImagesURL,
		Coordinates:   doc.Metadata.Coordinates,
		OriginalData:  doc.Metadata.OriginalData,
	}
}

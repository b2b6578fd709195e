// ABOUTME: Restaurant catalog loading and document rendering for the index
// ABOUTME: Each catalog record becomes one embeddable text document with metadata
package index

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/harper/tablescout/internal/models"
)

// Restaurant mirrors one record of the restaurant catalog JSON
type Restaurant struct {
	ID                   string        `json:"id"`
	Name                 string        `json:"name"`
	City                 string        `json:"city"`
	State                string        `json:"state"`
	Neighborhood         string        `json:"neighborhood"`
	StreetAddress        string        `json:"street_address"`
	Zipcode              string        `json:"zipcode"`
	Country              string        `json:"country"`
	CrossStreet          string        `json:"cross_street"`
	Rating               *float64      `json:"rating"`
	ReviewCount          *int          `json:"review_count"`
	Price                string        `json:"price"`
	PaymentOptions       []string      `json:"payment_options"`
	Cuisines             []string      `json:"cuisines"`
	Tags                 []string      `json:"tags"`
	PopularDishes        []string      `json:"popular_dishes"`
	Description          string        `json:"description"`
	EndorsementCopy      string        `json:"endorsement_copy"`
	FeaturedIn           string        `json:"featured_in"`
	PhoneNumber          string        `json:"phone_number"`
	RestaurantURL        string        `json:"restaurant_url"`
	ImagesURL            string        `json:"images_url"`
	LocationGeom         *LocationGeom `json:"location_geom"`
	ReservationsRequired bool          `json:"reservations_required"`
	DiningStyle          string        `json:"dining_style"`
	ParkingDetails       string        `json:"parking_details"`
	PublicTransport      string        `json:"public_transport"`
}

// LocationGeom holds the GeoJSON-style coordinate pair for a restaurant
type LocationGeom struct {
	Coordinates []float64 `json:"coordinates"`
}

// LoadCatalog reads the restaurant catalog JSON file and renders each record
// into an embeddable document
func LoadCatalog(path string) ([]models.Document, error) {
	log := slog.With("component", "index")
	log.Info("loading restaurant catalog", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	docs := make([]models.Document, 0, len(raw))
	for i, record := range raw {
		var r Restaurant
		if err := json.Unmarshal(record, &r); err != nil {
			return nil, fmt.Errorf("parsing catalog record %d: %w", i, err)
		}
		docs = append(docs, renderDocument(r, record))
	}

	log.Info("prepared restaurant documents", "count", len(docs))
	return docs, nil
}

// renderDocument builds the searchable text representation and metadata for
// one restaurant. The original record travels along as metadata so handlers
// can surface any field the catalog carries.
func renderDocument(r Restaurant, original json.RawMessage) models.Document {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Restaurant Name: %s\n", r.Name)

	location := locationString(r)
	fmt.Fprintf(&sb, "Location: %s\n", location)

	if r.Rating != nil {
		fmt.Fprintf(&sb, "Rating: %g", *r.Rating)
		if r.ReviewCount != nil {
			fmt.Fprintf(&sb, " (from %d reviews)", *r.ReviewCount)
		}
		sb.WriteString("\n")
	}

	if r.Price != "" {
		fmt.Fprintf(&sb, "Price Level: %s\n", r.Price)
	}
	if len(r.PaymentOptions) > 0 {
		fmt.Fprintf(&sb, "Payment Options: %s\n", strings.Join(r.PaymentOptions, ", "))
	}
	if len(r.Cuisines) > 0 {
		fmt.Fprintf(&sb, "Cuisines: %s\n", strings.Join(r.Cuisines, ", "))
	}
	if len(r.Tags) > 0 {
		fmt.Fprintf(&sb, "Tags: %s\n", strings.Join(r.Tags, ", "))
	}
	if len(r.PopularDishes) > 0 {
		fmt.Fprintf(&sb, "Popular Dishes: %s\n", strings.Join(r.PopularDishes, ", "))
	}

	switch {
	case r.Description != "":
		fmt.Fprintf(&sb, "Description: %s\n", r.Description)
	case r.EndorsementCopy != "":
		fmt.Fprintf(&sb, "Description: %s\n", r.EndorsementCopy)
	}

	if r.FeaturedIn != "" {
		fmt.Fprintf(&sb, "Featured in: %s\n", r.FeaturedIn)
	}

	switch {
	case r.PhoneNumber != "" && r.RestaurantURL != "":
		fmt.Fprintf(&sb, "Phone number is %s and restaurant url is %s.", r.PhoneNumber, r.RestaurantURL)
	case r.PhoneNumber != "":
		fmt.Fprintf(&sb, "Phone number is %s.", r.PhoneNumber)
	case r.RestaurantURL != "":
		fmt.Fprintf(&sb, "The restaurant url is %s.", r.RestaurantURL)
	}

	if r.ReservationsRequired {
		sb.WriteString("Reservations required.\n")
	}
	if r.DiningStyle != "" {
		fmt.Fprintf(&sb, "Dining style: %s\n", r.DiningStyle)
	}
	if r.ParkingDetails != "" {
		fmt.Fprintf(&sb, "Parking: %s\n", r.ParkingDetails)
	}
	if r.PublicTransport != "" {
		fmt.Fprintf(&sb, "Public transport: %s\n", r.PublicTransport)
	}

	var coordinates []float64
	if r.LocationGeom != nil {
		coordinates = r.LocationGeom.Coordinates
	}

	return models.Document{
		Content: sb.String(),
		Metadata: models.DocumentMetadata{
			ID:            r.ID,
			Name:          r.Name,
			Location:      location,
			Price:         r.Price,
			RestaurantURL: r.RestaurantURL,
			ImagesURL:     r.ImagesURL,
			Coordinates:   coordinates,
			OriginalData:  original,
		},
	}
}

// locationString joins the available location parts in display order
func locationString(r Restaurant) string {
	var parts []string
	if r.StreetAddress != "" {
		parts = append(parts, r.StreetAddress)
	}
	if r.Neighborhood != "" {
		parts = append(parts, "Neighborhood: "+r.Neighborhood)
	}
	if r.CrossStreet != "" {
		parts = append(parts, "Cross Street: "+r.CrossStreet)
	}
	if r.City != "" {
		parts = append(parts, r.City)
	}
	if r.State != "" {
		parts = append(parts, r.State)
	}
	if r.Country != "" {
		parts = append(parts, r.Country)
	}
	if r.Zipcode != "" {
		parts = append(parts, r.Zipcode)
	}
	return strings.Join(parts, ", ")
}

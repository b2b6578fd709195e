// ABOUTME: Structured extraction payload returned by the query analyzer
// ABOUTME: StringList tolerates both string and list-of-string JSON fields
package models

import (
	"encoding/json"
	"fmt"
)

// StringList unmarshals from either a JSON string or an array of strings.
// The extraction model is inconsistent about which it returns.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler
func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*l = nil
		} else {
			*l = StringList{single}
		}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("string or string array expected: %w", err)
	}
	*l = StringList(many)
	return nil
}

// ExtractedInfo is the optional-field record produced by structured extraction
type ExtractedInfo struct {
	CuisineType     StringList `json:"cuisine_type,omitempty"`
	FoodType        StringList `json:"food_type,omitempty"`
	Location        string     `json:"location,omitempty"`
	SpecialFeatures StringList `json:"special_features,omitempty"`
	RestaurantNames StringList `json:"restaurant_names,omitempty"`
}

// AnalysisResult is the combined intent classification and extraction output
type AnalysisResult struct {
	Intent        Intent        `json:"intent"`
	ExtractedInfo ExtractedInfo `json:"extracted_info"`
}

// CachedAnalysis is the subset of state restored on an analysis cache hit
type CachedAnalysis struct {
	Intent             Intent      `json:"intent"`
	Preferences        Preferences `json:"user_preferences"`
	SpecificRestaurant []string    `json:"specific_restaurant,omitempty"`
}

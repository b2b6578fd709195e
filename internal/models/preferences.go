// ABOUTME: User preference record with incremental merge semantics
// ABOUTME: Non-empty extracted fields overwrite, empty ones never clobber
package models

// Preferences holds the restaurant search criteria accumulated for a user
type Preferences struct {
	CuisineType     []string `json:"cuisine_type"`
	FoodType        []string `json:"food_type"`
	Location        string   `json:"location"`
	SpecialFeatures []string `json:"special_features"`
}

// Merge applies extracted information onto the preferences. A non-empty
// extracted field overwrites the prior value; empty extractions leave the
// existing field untouched.
func (p *Preferences) Merge(info ExtractedInfo) {
	if len(info.CuisineType) > 0 {
		p.CuisineType = info.CuisineType
	}
	if len(info.FoodType) > 0 {
		p.FoodType = info.FoodType
	}
	if info.Location != "" {
		p.Location = info.Location
	}
	if len(info.SpecialFeatures) > 0 {
		p.SpecialFeatures = info.SpecialFeatures
	}
}

// IsEmpty reports whether no criteria have been collected yet
func (p *Preferences) IsEmpty() bool {
	return len(p.CuisineType) == 0 && len(p.FoodType) == 0 &&
		p.Location == "" && len(p.SpecialFeatures) == 0
}

// ABOUTME: Tests for preference merge semantics
// ABOUTME: Verifies non-empty overwrite and empty-extraction idempotence
package models

import (
	"reflect"
	"testing"
)

func TestPreferences_MergeEmptyIsNoop(t *testing.T) {
	prefs := Preferences{
		CuisineType:     []string{"Thai"},
		FoodType:        []string{"curry"},
		Location:        "downtown",
		SpecialFeatures: []string{"outdoor seating"},
	}
	want := prefs

	prefs.Merge(ExtractedInfo{})

	if !reflect.DeepEqual(prefs, want) {
		t.Errorf("Merge(empty) changed preferences: got %+v, want %+v", prefs, want)
	}
}

func TestPreferences_MergeOverwritesOnlyNonEmpty(t *testing.T) {
	prefs := Preferences{
		CuisineType: []string{"Thai"},
		Location:    "downtown",
	}

	prefs.Merge(ExtractedInfo{Location: "West Loop"})

	if prefs.Location != "West Loop" {
		t.Errorf("Location = %q, want %q", prefs.Location, "West Loop")
	}
	if !reflect.DeepEqual(prefs.CuisineType, []string{"Thai"}) {
		t.Errorf("CuisineType = %v, want [Thai]", prefs.CuisineType)
	}
}

func TestPreferences_MergeReplacesLists(t *testing.T) {
	prefs := Preferences{CuisineType: []string{"Thai"}}

	prefs.Merge(ExtractedInfo{CuisineType: StringList{"Italian", "French"}})

	if !reflect.DeepEqual(prefs.CuisineType, []string{"Italian", "French"}) {
		t.Errorf("CuisineType = %v, want [Italian French]", prefs.CuisineType)
	}
}

func TestPreferences_IsEmpty(t *testing.T) {
	var prefs Preferences
	if !prefs.IsEmpty() {
		t.Error("zero-value preferences should be empty")
	}

	prefs.Location = "downtown"
	if prefs.IsEmpty() {
		t.Error("preferences with a location should not be empty")
	}
}

// ABOUTME: Tests for liberal parsing of structured extraction payloads
// ABOUTME: StringList must accept both string and list-of-string JSON
package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestStringList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    StringList
		wantErr bool
	}{
		{"array", `["Thai","Italian"]`, StringList{"Thai", "Italian"}, false},
		{"single string", `"Thai"`, StringList{"Thai"}, false},
		{"empty string", `""`, nil, false},
		{"empty array", `[]`, StringList{}, false},
		{"number", `42`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAnalysisResult_Unmarshal(t *testing.T) {
	payload := `{
		"intent": "restaurant_recommendation",
		"extracted_info": {
			"cuisine_type": ["Thai"],
			"food_type": "noodles",
			"location": "downtown",
			"special_features": [],
			"restaurant_names": []
		}
	}`

	var result AnalysisResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if result.Intent != IntentRecommendation {
		t.Errorf("Intent = %q, want %q", result.Intent, IntentRecommendation)
	}
	if !reflect.DeepEqual(result.ExtractedInfo.CuisineType, StringList{"Thai"}) {
		t.Errorf("CuisineType = %v, want [Thai]", result.ExtractedInfo.CuisineType)
	}
	if !reflect.DeepEqual(result.ExtractedInfo.FoodType, StringList{"noodles"}) {
		t.Errorf("FoodType = %v, want [noodles]", result.ExtractedInfo.FoodType)
	}
	if result.ExtractedInfo.Location != "downtown" {
		t.Errorf("Location = %q, want %q", result.ExtractedInfo.Location, "downtown")
	}
}

func TestChatState_Messages(t *testing.T) {
	state := NewChatState("hello", "s1")

	if got := state.LastUserMessage(); got != "hello" {
		t.Errorf("LastUserMessage() = %q, want %q", got, "hello")
	}
	if got := state.LastReply(); got != "" {
		t.Errorf("LastReply() before any reply = %q, want empty", got)
	}

	state.AppendReply("hi there")
	if got := state.LastReply(); got != "hi there" {
		t.Errorf("LastReply() = %q, want %q", got, "hi there")
	}
	if got := state.LastUserMessage(); got != "hello" {
		t.Errorf("LastUserMessage() after reply = %q, want %q", got, "hello")
	}
	if len(state.Messages) != 2 {
		t.Errorf("len(Messages) = %d, want 2", len(state.Messages))
	}
}

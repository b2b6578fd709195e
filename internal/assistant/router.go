// ABOUTME: Pure intent-to-handler routing for the workflow graph
// ABOUTME: Total function, unrecognized intents default to casual conversation
package assistant

import "github.com/harper/tablescout/internal/models"

// Node identifies a workflow graph node
type Node string

const (
	NodeAnalyzing      Node = "analyze_query"
	NodeRecommendation Node = "restaurant_recommendation"
	NodeRestaurantInfo Node = "restaurant_info"
	NodeCasual         Node = "casual_conversation"
	NodeDone           Node = "done"
)

// Route maps a classified intent to exactly one terminal handler node.
// Unset or unrecognized intents route to casual conversation, never an error.
func Route(intent models.Intent) Node {
	switch intent {
	case models.IntentRecommendation:
		return NodeRecommendation
	case models.IntentRestaurantInfo:
		return NodeRestaurantInfo
	default:
		return NodeCasual
	}
}

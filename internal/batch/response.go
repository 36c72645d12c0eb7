// Package batch implements the batched, idempotent mutation engine that adds
// matched tracks to a remote playlist and converges on a confirmed/unconfirmed
// partition despite partial failures and a multi-shaped response format.
package batch

import "encoding/json"

// The add-items endpoint reports success in three incompatible shapes. Status
// values are ytmusicapi's wire constants.
const (
	itemStatusSucceeded = "STATUS_SUCCEEDED"
	overallStatusOK     = "SUCCEEDED"
	feedbackSuccess     = "SUCCESS"
)

// recognizer inspects a raw add-items response for one success-reporting
// shape. It reports (confirmed, true) when the shape's required fields are
// present - even when zero items succeeded - and (nil, false) when the shape
// does not apply, letting the next recognizer try.
type recognizer func(raw json.RawMessage, submitted []string) ([]string, bool)

// Recognizers run in priority order; the first shape that claims the
// response decides the confirmed set.
var recognizers = []recognizer{perItemResults, overallStatus, feedbackActions}

// ParseConfirmed extracts the IDs a raw add-items response positively
// confirms out of the submitted list. An unrecognized or negative response
// confirms nothing: the engine never assumes success it cannot justify from
// the response.
func ParseConfirmed(raw json.RawMessage, submitted []string) []string {
	for _, recognize := range recognizers {
		if confirmed, ok := recognize(raw, submitted); ok {
			return confirmed
		}
	}
	return nil
}

// perItemResults handles the actionResults shape: a list of per-item action
// results carrying a status flag and, usually, the affected item's ID. An
// item flagged successful but missing its own ID falls back to positional
// alignment against the submitted list.
func perItemResults(raw json.RawMessage, submitted []string) ([]string, bool) {
	var resp struct {
		ActionResults []struct {
			Status string `json:"status"`
			Item   struct {
				VideoID string `json:"videoId"`
			} `json:"item"`
		} `json:"actionResults"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil || len(resp.ActionResults) == 0 {
		return nil, false
	}

	var confirmed []string
	for i, result := range resp.ActionResults {
		if result.Status != itemStatusSucceeded {
			continue
		}
		id := result.Item.VideoID
		if id == "" && i < len(submitted) {
			id = submitted[i]
		}
		if id != "" {
			confirmed = append(confirmed, id)
		}
	}
	return confirmed, true
}

// overallStatus handles the unconditional-success shape: a top-level status
// flag confirming every ID submitted in the call.
func overallStatus(raw json.RawMessage, submitted []string) ([]string, bool) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil || resp.Status != overallStatusOK {
		return nil, false
	}
	return append([]string(nil), submitted...), true
}

// feedbackActions handles the action-list shape: any element reporting an
// affirmative added-to-playlist feedback confirms every submitted ID.
func feedbackActions(raw json.RawMessage, submitted []string) ([]string, bool) {
	var resp struct {
		Actions []struct {
			AddToPlaylistFeedback string `json:"addToPlaylistFeedback"`
		} `json:"actions"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil || len(resp.Actions) == 0 {
		return nil, false
	}
	for _, action := range resp.Actions {
		if action.AddToPlaylistFeedback == feedbackSuccess {
			return append([]string(nil), submitted...), true
		}
	}
	return nil, true
}

package ai

import (
	"encoding/json"
	"strings"
)

// extractJSON strips markdown fences and surrounding prose from a model response
func extractJSON(responseText string) string {
	responseText = strings.TrimSpace(responseText)
	if strings.HasPrefix(responseText, "```json") {
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimSuffix(responseText, "```")
	} else if strings.HasPrefix(responseText, "```") {
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
	}
	responseText = strings.TrimSpace(responseText)

	start := strings.IndexAny(responseText, "[{")
	if start == -1 {
		return responseText
	}
	closer := "]"
	if responseText[start] == '{' {
		closer = "}"
	}
	end := strings.LastIndex(responseText, closer)
	if end > start {
		return responseText[start : end+1]
	}
	return responseText
}

// decodeList accepts either a bare JSON array or an object holding the array under key
func decodeList[T any](payload, key string) ([]T, error) {
	var items []T
	if strings.HasPrefix(payload, "[") {
		err := json.Unmarshal([]byte(payload), &items)
		return items, err
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &wrapped); err != nil {
		return nil, err
	}
	raw, ok := wrapped[key]
	if !ok {
		return nil, nil
	}
	err := json.Unmarshal(raw, &items)
	return items, err
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

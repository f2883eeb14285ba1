package services

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

func parseJSONResponse(response string, target interface{}) error {
	// LLM might wrap the payload in markdown
	jsonStr := extractJSON(response)

	err := json.Unmarshal([]byte(jsonStr), target)
	if err == nil {
		return nil
	}

	// Prose around the payload can carry its own brackets ("score [0-10]"),
	// so fall back to the first offset that holds a value fitting target.
	if decodeFirstValue(stripFences(response), target) {
		return nil
	}

	return fmt.Errorf("failed to unmarshal JSON: %w", err)
}

// decodeFirstValue walks every '{' or '[' in text and unmarshals the first
// complete JSON value that fits target. target must be a non-nil pointer and
// is only written on success.
func decodeFirstValue(text string, target interface{}) bool {
	ptr := reflect.ValueOf(target)
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() {
		return false
	}

	for i := 0; i < len(text); i++ {
		if text[i] != '{' && text[i] != '[' {
			continue
		}

		var raw json.RawMessage
		if err := json.NewDecoder(strings.NewReader(text[i:])).Decode(&raw); err != nil {
			continue
		}
		fresh := reflect.New(ptr.Elem().Type())
		if err := json.Unmarshal(raw, fresh.Interface()); err == nil {
			ptr.Elem().Set(fresh.Elem())
			return true
		}
	}
	return false
}

func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	return strings.ReplaceAll(text, "```", "")
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	text = stripFences(text)

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	// Whichever opens first wins, so an array of objects stays an array.
	if startArr != -1 && endArr > startArr && (startObj == -1 || startArr < startObj) {
		return text[startArr : endArr+1]
	}
	if startObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}

	return strings.TrimSpace(text)
}

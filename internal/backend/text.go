package backend

import (
	"encoding/json"
	"fmt"
	"strings"
)

// textPaths are the locations, in order, where model JSON output commonly
// keeps its generated text. Integer segments index into arrays.
var textPaths = [][]interface{}{
	{"generation"},
	{"generation", "text"},
	{"generation", "content"},
	{"generation", "generated_text"},
	{"outputs", 0, "text"},
	{"outputs", 0, "content"},
	{"choices", 0, "text"},
	{"result"},
	{"response"},
	{"completion"},
	{"output"},
}

// templateTokens are instruction-template markers some models echo back.
var templateTokens = []string{"[INST]", "[/INST]", "<s>", "</s>"}

// extractText returns the generated text in raw model output. Output that
// is not JSON is taken as the text itself.
func extractText(raw string) string {
	var data interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return raw
	}

	switch v := data.(type) {
	case string:
		return v
	case map[string]interface{}:
		for _, path := range textPaths {
			if s, ok := lookup(v, path); ok {
				return s
			}
		}
		return ""
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// lookup follows path through nested objects and arrays and reports whether
// it ends at a string.
func lookup(data interface{}, path []interface{}) (string, bool) {
	cur := data
	for _, seg := range path {
		switch key := seg.(type) {
		case string:
			obj, ok := cur.(map[string]interface{})
			if !ok {
				return "", false
			}
			if cur, ok = obj[key]; !ok {
				return "", false
			}
		case int:
			arr, ok := cur.([]interface{})
			if !ok || key >= len(arr) {
				return "", false
			}
			cur = arr[key]
		}
	}
	s, ok := cur.(string)
	return s, ok
}

// cleanText removes template tokens, cuts anything after a leftover
// "[INST" marker and trims surrounding whitespace.
func cleanText(text string) string {
	for _, tok := range templateTokens {
		text = strings.ReplaceAll(text, tok, "")
	}
	text = strings.TrimSpace(text)

	if i := strings.Index(text, "[INST"); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}
	return text
}

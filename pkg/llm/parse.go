package llm

import (
	"encoding/json"
	"strings"
)

// Records extracts JSON object records from a model response. Model
// output is rarely clean: it may be wrapped in a fenced code block, be
// a top-level array, a single object, or one object per line. Each
// stage of the pipeline either yields records or hands over to the
// next; nothing here ever returns an error. Records missing any of the
// required keys are dropped silently.
func Records(content string, required []string) []map[string]any {
	content = stripFences(strings.TrimSpace(content))

	if records, ok := parseArray(content, required); ok {
		return records
	}
	if record, ok := parseObject(content, required); ok {
		return []map[string]any{record}
	}
	return parseLines(content, required)
}

func stripFences(content string) string {
	if strings.HasPrefix(content, "```json") {
		content = content[len("```json"):]
	} else if strings.HasPrefix(content, "```") {
		content = content[len("```"):]
	}
	if strings.HasSuffix(content, "```") {
		content = content[:len(content)-len("```")]
	}
	return strings.TrimSpace(content)
}

func parseArray(content string, required []string) ([]map[string]any, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(content), &items); err != nil {
		return nil, false
	}
	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if record, ok := parseObject(string(item), required); ok {
			records = append(records, record)
		}
	}
	return records, true
}

func parseObject(content string, required []string) (map[string]any, bool) {
	var record map[string]any
	if err := json.Unmarshal([]byte(content), &record); err != nil {
		return nil, false
	}
	if !hasKeys(record, required) {
		return nil, false
	}
	return record, true
}

func parseLines(content string, required []string) []map[string]any {
	var records []map[string]any
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "{") || !strings.HasSuffix(line, "}") {
			continue
		}
		if record, ok := parseObject(line, required); ok {
			records = append(records, record)
		}
	}
	return records
}

func hasKeys(record map[string]any, required []string) bool {
	for _, key := range required {
		if _, ok := record[key]; !ok {
			return false
		}
	}
	return true
}

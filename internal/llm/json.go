// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeJSON unmarshals an LLM response into v, tolerating markdown code
// fences and prose around the JSON object. Models occasionally wrap output
// despite being told not to.
func DecodeJSON(response string, v any) error {
	cleaned := strings.TrimSpace(response)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	if err := json.Unmarshal([]byte(cleaned), v); err == nil {
		return nil
	}

	// Fall back to the outermost braces in the raw response.
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(response[start:end+1]), v); err != nil {
			return fmt.Errorf("could not parse JSON from response: %w", err)
		}
		return nil
	}

	return fmt.Errorf("no JSON object found in response")
}

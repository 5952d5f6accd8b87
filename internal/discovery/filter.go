// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package discovery

import (
	"regexp"
	"strings"
)

// eventKeywords mark sentences worth sending to the classifier. This is a
// crude pre-filter; real relevance scoring happens in the classifier.
var eventKeywords = []string{
	"festival", "tasting", "tour", "harvest", "release", "market",
	"live music", "dinner", "celebration", "event", "tickets",
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// maxBlobChars caps a single source's contribution so one sprawling page
// cannot crowd out the rest of the classifier prompt.
const maxBlobChars = 8000

// FilterEventText keeps only sentences that look event-related: a keyword,
// a month or weekday name, or a 4-digit year.
func FilterEventText(text string) string {
	var kept []string
	total := 0

	for _, sentence := range splitSentences(text) {
		if !looksEventRelated(sentence) {
			continue
		}
		if total+len(sentence) > maxBlobChars {
			break
		}
		kept = append(kept, sentence)
		total += len(sentence)
	}

	return strings.Join(kept, " ")
}

func looksEventRelated(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, kw := range eventKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return yearPattern.MatchString(sentence)
}

// splitSentences splits text on sentence-ending punctuation and newlines,
// dropping fragments too short to carry event information.
func splitSentences(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})

	sentences := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Join(strings.Fields(f), " ") // collapse whitespace
		if len(f) < 20 {
			continue
		}
		sentences = append(sentences, f)
	}
	return sentences
}

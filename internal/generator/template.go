// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package generator

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"

	"github.com/craftvoice/craftvoice/internal/model"
)

// renderTemplate builds deterministic fallback content when no LLM is
// configured. HTML content types are written as markdown and rendered with
// goldmark; social posts stay plain text.
func renderTemplate(profile model.BusinessProfile, req ContentRequest, brief *model.ResearchBrief) (string, string) {
	topic := req.PrimaryTopic
	if topic == "" {
		topic = "What's new at " + profile.Name
	}

	if req.ContentType == model.ContentTypeSocialMedia {
		return topic, socialTemplate(profile, req, brief)
	}

	var md strings.Builder
	fmt.Fprintf(&md, "## %s\n\n", topic)
	fmt.Fprintf(&md, "Here at %s, we believe our %s community deserves to know what we're up to.\n\n",
		profile.Name, profile.Location)

	if brief != nil && brief.EventName != "" {
		fmt.Fprintf(&md, "**%s** is coming up", brief.EventName)
		if brief.EventDate != "" {
			fmt.Fprintf(&md, " on %s", brief.EventDate)
		}
		md.WriteString(", and we'll be part of the fun.\n\n")
	}

	if req.KeyTalkingPoints != "" {
		md.WriteString("A few things worth knowing:\n\n")
		for _, point := range strings.Split(req.KeyTalkingPoints, ";") {
			point = strings.TrimSpace(point)
			if point != "" {
				fmt.Fprintf(&md, "- %s\n", point)
			}
		}
		md.WriteString("\n")
	}

	if req.CallToAction != "" {
		fmt.Fprintf(&md, "%s.\n", strings.TrimSuffix(req.CallToAction, "."))
	}

	var html bytes.Buffer
	if err := goldmark.Convert([]byte(md.String()), &html); err != nil {
		// goldmark does not fail on plain markdown; fall back to the raw text.
		return topic, md.String()
	}
	return topic, html.String()
}

func socialTemplate(profile model.BusinessProfile, req ContentRequest, brief *model.ResearchBrief) string {
	var b strings.Builder
	if brief != nil && brief.EventName != "" {
		fmt.Fprintf(&b, "%s is almost here", brief.EventName)
		if brief.EventDate != "" {
			fmt.Fprintf(&b, " (%s)", brief.EventDate)
		}
		fmt.Fprintf(&b, " and %s is ready. ", profile.Name)
	} else {
		fmt.Fprintf(&b, "Something good is pouring at %s. ", profile.Name)
	}
	if req.CallToAction != "" {
		b.WriteString(strings.TrimSuffix(req.CallToAction, ".") + ". ")
	}
	b.WriteString(hashtags(profile))
	return strings.TrimSpace(b.String())
}

func hashtags(profile model.BusinessProfile) string {
	tag := camelWords(profile.Name)
	city := camelWords(strings.Split(profile.Location, ",")[0])
	if city == "" {
		return "#" + tag
	}
	return fmt.Sprintf("#%s #%s #Local", tag, city)
}

func camelWords(s string) string {
	var b strings.Builder
	for _, w := range strings.Fields(s) {
		r, size := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(w[size:])
	}
	return b.String()
}

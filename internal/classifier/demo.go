// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package classifier

import (
	"time"

	"github.com/craftvoice/craftvoice/internal/model"
)

// demoResult returns a small fixed candidate set so the dashboard has
// something to show when no LLM is configured. The IsDemoData tag is the
// contract: nothing downstream may present these as real discoveries.
func demoResult(today time.Time) *Result {
	nextSaturday := today.AddDate(0, 0, (13-int(today.Weekday()))%7+1)
	inThreeWeeks := today.AddDate(0, 0, 21)

	return &Result{
		IsDemoData: true,
		Candidates: []model.EventCandidate{
			{
				Name:           "Downtown Farmers Market",
				Date:           nextSaturday.Format("2006-01-02"),
				Location:       "Walla Walla, WA",
				Description:    "Weekly market with local produce, crafts and live music.",
				RelevanceScore: 7,
			},
			{
				Name:           "Fall Harvest Festival",
				Date:           inThreeWeeks.Format("2006-01-02"),
				Location:       "Walla Walla, WA",
				Description:    "Community festival celebrating the valley harvest season.",
				RelevanceScore: 8,
			},
			{
				Name:           "Valley Food Truck Night",
				Date:           nextSaturday.AddDate(0, 0, 6).Format("2006-01-02"),
				Location:       "College Place, WA",
				Description:    "Monthly food truck gathering at the park.",
				RelevanceScore: 6,
			},
		},
	}
}

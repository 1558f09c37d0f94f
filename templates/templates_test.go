package templates

import (
	"strings"
	"testing"

	"tripwatch-service/internal/domain/entity"
)

func TestPriceDropRendering(t *testing.T) {
	event := &entity.PriceDropEvent{
		DepartureDate:   "2026-04-03",
		ReturnDate:      "2026-04-09",
		PreviousPrice:   450,
		CurrentPrice:    420.50,
		Drop:            29.50,
		Currency:        "USD",
		InboundAirport:  "IAD",
		OutboundAirport: "LGA",
		Routing:         "SAN -> IAD, LGA -> SAN",
	}

	subject := PriceDropSubject(event)
	if !strings.Contains(subject, "29.50") {
		t.Errorf("subject should carry the drop amount: %q", subject)
	}

	body := PriceDropBody(event)
	for _, want := range []string{"2026-04-03", "2026-04-09", "450.00", "420.50", "29.50", "IAD", "LGA"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestDailyReportRendering(t *testing.T) {
	report := &entity.DailyReport{
		DepartureDate: "2026-04-03",
		ReturnDate:    "2026-04-09",
		Best: &entity.DailyBestPrice{
			BestPrice:       420.50,
			Currency:        "USD",
			Direction:       "WAS_FIRST",
			InboundAirport:  "IAD",
			OutboundAirport: "LGA",
		},
		Recommendation: &entity.Recommendation{
			Suggested:  true,
			Direction:  "NYC_FIRST",
			FirstCity:  "NYC",
			SecondCity: "WAS",
			Savings:    24.50,
			Currency:   "USD",
			Split:      map[string]int{"NYC": 2, "WAS": 4},
			TotalDays:  6,
			Festival:   entity.FestivalOverlap{OverlapsFestival: true, OverlapsPeak: true},
		},
	}

	subject := DailyReportSubject(report)
	if !strings.Contains(subject, "420.50") {
		t.Errorf("subject should carry the best price: %q", subject)
	}

	body := DailyReportBody(report)
	for _, want := range []string{"Visit NYC first", "24.50", "NYC: 2 days", "WAS: 4 days", "peak festival"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}

	// Split lines render in sorted city order regardless of map order
	if strings.Index(body, "NYC: 2 days") > strings.Index(body, "WAS: 4 days") {
		t.Error("split lines should be sorted by city code")
	}
}

func TestDailyReportWithoutPrices(t *testing.T) {
	report := &entity.DailyReport{
		DepartureDate:  "2026-04-03",
		ReturnDate:     "2026-04-09",
		Recommendation: &entity.Recommendation{Suggested: false, Message: "no priced routings for this window"},
	}

	subject := DailyReportSubject(report)
	if !strings.Contains(subject, "no compliant flights") {
		t.Errorf("subject should flag the empty day: %q", subject)
	}

	body := DailyReportBody(report)
	if !strings.Contains(body, "No compliant flights recorded") {
		t.Errorf("body should flag the empty day:\n%s", body)
	}
	if !strings.Contains(body, "no priced routings") {
		t.Errorf("body should carry the recommendation message:\n%s", body)
	}
}

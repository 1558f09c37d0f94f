package templates

import (
	"fmt"
	"sort"
	"strings"

	"tripwatch-service/internal/domain/entity"
)

// DailyReportSubject renders the daily report email subject
func DailyReportSubject(report *entity.DailyReport) string {
	if report.Best != nil {
		return fmt.Sprintf("Daily Flight Report %s: best %s %.2f",
			report.DepartureDate, report.Best.Currency, report.Best.BestPrice)
	}
	return fmt.Sprintf("Daily Flight Report %s: no compliant flights yet", report.DepartureDate)
}

// DailyReportBody renders the daily report email body
func DailyReportBody(report *entity.DailyReport) string {
	var b strings.Builder

	b.WriteString("Daily Flight Report\n")
	b.WriteString("===================\n\n")
	fmt.Fprintf(&b, "Travel dates: %s -> %s\n\n", report.DepartureDate, report.ReturnDate)

	if report.Best != nil {
		best := report.Best
		fmt.Fprintf(&b, "Best price so far: %s %.2f\n", best.Currency, best.BestPrice)
		fmt.Fprintf(&b, "Routing: %s (into %s, home from %s)\n\n",
			best.Direction, best.InboundAirport, best.OutboundAirport)
	} else {
		b.WriteString("No compliant flights recorded for these dates yet.\n\n")
	}

	rec := report.Recommendation
	if rec == nil {
		return b.String()
	}
	if !rec.Suggested {
		fmt.Fprintf(&b, "Recommendation: %s\n", rec.Message)
		return b.String()
	}

	b.WriteString("Recommendation\n")
	b.WriteString("--------------\n")
	fmt.Fprintf(&b, "Visit %s first, then %s.\n", rec.FirstCity, rec.SecondCity)
	if rec.Savings > 0 {
		fmt.Fprintf(&b, "Estimated savings vs the other direction: %s %.2f\n", rec.Currency, rec.Savings)
	}

	fmt.Fprintf(&b, "\nSuggested %d-day split:\n", rec.TotalDays)
	cities := make([]string, 0, len(rec.Split))
	for city := range rec.Split {
		cities = append(cities, city)
	}
	sort.Strings(cities)
	for _, city := range cities {
		fmt.Fprintf(&b, "  %s: %d days\n", city, rec.Split[city])
	}

	if rec.Festival.OverlapsPeak {
		b.WriteString("\nYour trip overlaps the peak festival window!\n")
	} else if rec.Festival.OverlapsFestival {
		b.WriteString("\nYour trip overlaps the festival period, but not its peak.\n")
	}

	return b.String()
}

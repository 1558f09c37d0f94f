package usecase

import (
	"testing"
	"time"

	"tripwatch-service/internal/domain/entity"
)

func testRouter(t *testing.T) *ItineraryRouter {
	t.Helper()
	router, err := NewItineraryRouter(
		"SAN",
		entity.CityGroup{Code: "WAS", Airports: []string{"IAD", "DCA"}},
		entity.CityGroup{Code: "NYC", Airports: []string{"JFK", "LGA", "EWR"}},
		"07:00",
		"22:00",
	)
	if err != nil {
		t.Fatalf("NewItineraryRouter: %v", err)
	}
	return router
}

func legAt(from string, departHour, departMin int, to string, arriveHour, arriveMin int) *entity.LegOffer {
	return &entity.LegOffer{
		Origin:      from,
		Destination: to,
		Segments: []entity.Segment{{
			DepartureAirport: from,
			ArrivalAirport:   to,
			DepartureTime:    time.Date(2026, 4, 3, departHour, departMin, 0, 0, time.UTC),
			ArrivalTime:      time.Date(2026, 4, 3, arriveHour, arriveMin, 0, 0, time.UTC),
		}},
		Price:    450,
		Currency: "USD",
	}
}

func TestClassifyLeg_NonstopRule(t *testing.T) {
	router := testRouter(t)

	multiSegment := legAt("SAN", 9, 0, "IAD", 17, 0)
	multiSegment.Segments = append(multiSegment.Segments, entity.Segment{
		DepartureAirport: "ORD",
		ArrivalAirport:   "IAD",
		DepartureTime:    time.Date(2026, 4, 3, 18, 0, 0, 0, time.UTC),
		ArrivalTime:      time.Date(2026, 4, 3, 20, 0, 0, 0, time.UTC),
	})
	multiSegment.Price = 99 // price never overrides the rule

	result := router.ClassifyLeg(multiSegment)
	if result.Compliant {
		t.Error("expected multi-segment leg to be rejected")
	}
	if result.Reason != entity.ReasonMultiSegment {
		t.Errorf("expected reason %q, got %q", entity.ReasonMultiSegment, result.Reason)
	}

	nonstop := legAt("SAN", 9, 0, "IAD", 17, 0)
	if result := router.ClassifyLeg(nonstop); !result.Compliant {
		t.Errorf("expected nonstop leg to be compliant, got reason %q", result.Reason)
	}
}

func TestClassifyLeg_DepartureCutoff(t *testing.T) {
	router := testRouter(t)

	tests := []struct {
		name      string
		hour, min int
		compliant bool
	}{
		{"exactly at cutoff is compliant", 7, 0, true},
		{"one minute before cutoff is rejected", 6, 59, false},
		{"well after cutoff is compliant", 9, 30, true},
		{"midnight departure is rejected", 0, 5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			leg := legAt("SAN", tc.hour, tc.min, "IAD", 17, 0)
			result := router.ClassifyLeg(leg)
			if result.Compliant != tc.compliant {
				t.Errorf("departure %02d:%02d: compliant = %v, want %v",
					tc.hour, tc.min, result.Compliant, tc.compliant)
			}
			if !tc.compliant && result.Reason != entity.ReasonRedEyeDeparture {
				t.Errorf("expected reason %q, got %q", entity.ReasonRedEyeDeparture, result.Reason)
			}
		})
	}
}

func TestClassifyLeg_ArrivalCutoff(t *testing.T) {
	router := testRouter(t)

	tests := []struct {
		name      string
		hour, min int
		compliant bool
	}{
		{"exactly at cutoff is compliant", 22, 0, true},
		{"one minute after cutoff is rejected", 22, 1, false},
		{"evening arrival is compliant", 21, 45, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			leg := legAt("SAN", 9, 0, "JFK", tc.hour, tc.min)
			result := router.ClassifyLeg(leg)
			if result.Compliant != tc.compliant {
				t.Errorf("arrival %02d:%02d: compliant = %v, want %v",
					tc.hour, tc.min, result.Compliant, tc.compliant)
			}
			if !tc.compliant && result.Reason != entity.ReasonRedEyeArrival {
				t.Errorf("expected reason %q, got %q", entity.ReasonRedEyeArrival, result.Reason)
			}
		})
	}
}

func TestClassifyLeg_CutoffsOnlyApplyToConfiguredAirports(t *testing.T) {
	router := testRouter(t)

	// Early departure from a non-home airport is not a red-eye
	early := legAt("JFK", 6, 0, "SAN", 9, 0)
	if result := router.ClassifyLeg(early); !result.Compliant {
		t.Errorf("early departure from JFK should be compliant, got reason %q", result.Reason)
	}

	// Late arrival at the home airport is not a red-eye either
	late := legAt("JFK", 18, 0, "SAN", 23, 30)
	if result := router.ClassifyLeg(late); !result.Compliant {
		t.Errorf("late arrival at SAN should be compliant, got reason %q", result.Reason)
	}
}

func TestClassify_CombinesBothLegs(t *testing.T) {
	router := testRouter(t)

	offer := &entity.Offer{
		Route:    entity.RouteOption{Direction: "WAS_FIRST", InboundAirport: "IAD", OutboundAirport: "JFK"},
		Outbound: legAt("SAN", 9, 0, "IAD", 17, 0),
		Return:   legAt("JFK", 6, 0, "SAN", 9, 0),
	}
	if result := router.Classify(offer); !result.Compliant {
		t.Errorf("expected compliant round trip, got reason %q", result.Reason)
	}

	offer.Return = legAt("JFK", 23, 0, "SAN", 2, 0)
	offer.Return.Segments = append(offer.Return.Segments, entity.Segment{
		DepartureAirport: "DEN",
		ArrivalAirport:   "SAN",
		DepartureTime:    time.Date(2026, 4, 9, 3, 0, 0, 0, time.UTC),
		ArrivalTime:      time.Date(2026, 4, 9, 5, 0, 0, 0, time.UTC),
	})
	result := router.Classify(offer)
	if result.Compliant {
		t.Error("expected rejection when the return leg has two segments")
	}
	if result.Reason != entity.ReasonMultiSegment {
		t.Errorf("expected reason %q, got %q", entity.ReasonMultiSegment, result.Reason)
	}
}

func TestDirectionPlans_DeterministicEnumeration(t *testing.T) {
	router := testRouter(t)

	plans := router.DirectionPlans()
	if len(plans) != 2 {
		t.Fatalf("expected 2 direction plans, got %d", len(plans))
	}
	if plans[0].Direction != "WAS_FIRST" || plans[1].Direction != "NYC_FIRST" {
		t.Errorf("unexpected direction order: %s, %s", plans[0].Direction, plans[1].Direction)
	}

	wantFirst := []struct{ inbound, outbound string }{
		{"IAD", "JFK"}, {"IAD", "LGA"}, {"IAD", "EWR"},
		{"DCA", "JFK"}, {"DCA", "LGA"}, {"DCA", "EWR"},
	}
	options := plans[0].RouteOptions()
	if len(options) != len(wantFirst) {
		t.Fatalf("expected %d route options, got %d", len(wantFirst), len(options))
	}
	for i, want := range wantFirst {
		if options[i].InboundAirport != want.inbound || options[i].OutboundAirport != want.outbound {
			t.Errorf("option %d: got %s/%s, want %s/%s",
				i, options[i].InboundAirport, options[i].OutboundAirport, want.inbound, want.outbound)
		}
	}

	// A second enumeration yields the identical list
	again := plans[0].RouteOptions()
	for i := range options {
		if options[i] != again[i] {
			t.Errorf("enumeration not stable at index %d: %+v vs %+v", i, options[i], again[i])
		}
	}
}

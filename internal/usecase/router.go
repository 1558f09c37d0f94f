package usecase

import (
	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/pkg/utils"
)

// DirectionPlan is one of the two open-jaw direction permutations:
// home into the inbound city, home from the outbound city
type DirectionPlan struct {
	Direction    string
	InboundCity  entity.CityGroup
	OutboundCity entity.CityGroup
}

// RouteOptions expands the plan into every airport-pair combination,
// in configured airport order
func (p DirectionPlan) RouteOptions() []entity.RouteOption {
	options := make([]entity.RouteOption, 0, len(p.InboundCity.Airports)*len(p.OutboundCity.Airports))
	for _, inbound := range p.InboundCity.Airports {
		for _, outbound := range p.OutboundCity.Airports {
			options = append(options, entity.RouteOption{
				Direction:       p.Direction,
				InboundCity:     p.InboundCity.Code,
				OutboundCity:    p.OutboundCity.Code,
				InboundAirport:  inbound,
				OutboundAirport: outbound,
			})
		}
	}
	return options
}

// ItineraryRouter enumerates the open-jaw direction options for the
// fixed home airport and destination city pair, and classifies offers
// against the nonstop and no-red-eye rules. Pure: no I/O, no state.
type ItineraryRouter struct {
	homeAirport        string
	firstCity          entity.CityGroup
	secondCity         entity.CityGroup
	departureCutoffMin int
	arrivalCutoffMin   int
	arrivalAirports    map[string]bool
}

// NewItineraryRouter creates a router for the configured itinerary.
// Cutoffs are HH:MM local wall-clock times.
func NewItineraryRouter(homeAirport string, firstCity, secondCity entity.CityGroup, departureCutoff, arrivalCutoff string) (*ItineraryRouter, error) {
	departureMin, err := utils.ParseClock(departureCutoff)
	if err != nil {
		return nil, err
	}
	arrivalMin, err := utils.ParseClock(arrivalCutoff)
	if err != nil {
		return nil, err
	}

	arrivalAirports := make(map[string]bool, len(firstCity.Airports)+len(secondCity.Airports))
	for _, code := range firstCity.Airports {
		arrivalAirports[code] = true
	}
	for _, code := range secondCity.Airports {
		arrivalAirports[code] = true
	}

	return &ItineraryRouter{
		homeAirport:        homeAirport,
		firstCity:          firstCity,
		secondCity:         secondCity,
		departureCutoffMin: departureMin,
		arrivalCutoffMin:   arrivalMin,
		arrivalAirports:    arrivalAirports,
	}, nil
}

// DirectionPlans returns the two direction permutations in fixed
// order, so a full sweep always evaluates the same ordered list
func (r *ItineraryRouter) DirectionPlans() []DirectionPlan {
	return []DirectionPlan{
		{
			Direction:    entity.DirectionCode(r.firstCity.Code),
			InboundCity:  r.firstCity,
			OutboundCity: r.secondCity,
		},
		{
			Direction:    entity.DirectionCode(r.secondCity.Code),
			InboundCity:  r.secondCity,
			OutboundCity: r.firstCity,
		},
	}
}

// ClassifyLeg checks a single one-way offer. Nonstop rule: exactly one
// segment. Red-eye rule: departures from the home airport strictly
// before the departure cutoff and arrivals at any destination
// candidate airport strictly after the arrival cutoff are rejected;
// the boundary values themselves are compliant.
func (r *ItineraryRouter) ClassifyLeg(leg *entity.LegOffer) entity.ComplianceResult {
	result := entity.ComplianceResult{Nonstop: true, NoRedEye: true}

	if len(leg.Segments) == 0 {
		result.Nonstop = false
		result.Reason = entity.ReasonMultiSegment
		return result
	}
	if len(leg.Segments) > 1 {
		result.Nonstop = false
		result.Reason = entity.ReasonMultiSegment
	}

	first := leg.Segments[0]
	last := leg.Segments[len(leg.Segments)-1]

	if first.DepartureAirport == r.homeAirport && utils.MinutesOfDay(first.DepartureTime) < r.departureCutoffMin {
		result.NoRedEye = false
		if result.Reason == "" {
			result.Reason = entity.ReasonRedEyeDeparture
		}
	}
	if r.arrivalAirports[last.ArrivalAirport] && utils.MinutesOfDay(last.ArrivalTime) > r.arrivalCutoffMin {
		result.NoRedEye = false
		if result.Reason == "" {
			result.Reason = entity.ReasonRedEyeArrival
		}
	}

	result.Compliant = result.Nonstop && result.NoRedEye
	return result
}

// Classify checks a combined round-trip offer. The outbound leg is
// evaluated first, so its rejection reason wins when both legs fail.
func (r *ItineraryRouter) Classify(offer *entity.Offer) entity.ComplianceResult {
	outbound := r.ClassifyLeg(offer.Outbound)
	inbound := r.ClassifyLeg(offer.Return)

	result := entity.ComplianceResult{
		Nonstop:  outbound.Nonstop && inbound.Nonstop,
		NoRedEye: outbound.NoRedEye && inbound.NoRedEye,
	}
	result.Compliant = result.Nonstop && result.NoRedEye
	if !result.Compliant {
		result.Reason = outbound.Reason
		if result.Reason == "" {
			result.Reason = inbound.Reason
		}
	}
	return result
}

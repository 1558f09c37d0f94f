package usecase

import (
	"context"
	"fmt"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"
	"tripwatch-service/pkg/metrics"
	"tripwatch-service/pkg/utils"
)

// SweepResult summarizes one tracked date pair
type SweepResult struct {
	DepartureDate string
	ReturnDate    string
	Recorded      int
	Rejected      int
	Best          *entity.DailyBestPrice
	Alerted       bool
}

// SweepTracker runs one full price sweep: it searches every routing
// option over the travel window, classifies the offers, persists the
// observations atomically and emits drop alerts and daily reports.
type SweepTracker struct {
	router   *ItineraryRouter
	searcher repository.OfferSearcher
	prices   repository.PriceRepository
	archive  repository.OfferArchiveRepository
	notifier repository.Notifier
	policy   AlertPolicy
	engine   *RecommendationEngine
	hotels   *HotelTracker
	metrics  *metrics.Metrics
	logger   logger.Logger

	homeAirport    string
	firstCity      string
	secondCity     string
	tripLengthDays int
	windowStart    string
	windowEnd      string
}

// NewSweepTracker creates a sweep tracker
func NewSweepTracker(
	router *ItineraryRouter,
	searcher repository.OfferSearcher,
	prices repository.PriceRepository,
	archive repository.OfferArchiveRepository,
	notifier repository.Notifier,
	policy AlertPolicy,
	engine *RecommendationEngine,
	metrics *metrics.Metrics,
	logger logger.Logger,
	homeAirport, firstCity, secondCity string,
	tripLengthDays int,
	windowStart, windowEnd string,
) *SweepTracker {
	return &SweepTracker{
		router:         router,
		searcher:       searcher,
		prices:         prices,
		archive:        archive,
		notifier:       notifier,
		policy:         policy,
		engine:         engine,
		metrics:        metrics,
		logger:         logger,
		homeAirport:    homeAirport,
		firstCity:      firstCity,
		secondCity:     secondCity,
		tripLengthDays: tripLengthDays,
		windowStart:    windowStart,
		windowEnd:      windowEnd,
	}
}

// WithHotelTracker makes the sweep record hotel rates for the stays
// implied by each date pair's recommendation
func (t *SweepTracker) WithHotelTracker(hotels *HotelTracker) *SweepTracker {
	t.hotels = hotels
	return t
}

// RunSweep tracks every departure date in the travel window. A
// persistence failure aborts the sweep; later date pairs are not
// attempted against a store that already refused a commit.
func (t *SweepTracker) RunSweep(ctx context.Context) error {
	started := time.Now()
	defer func() {
		t.metrics.SweepDuration.Observe(time.Since(started).Seconds())
	}()

	departureDate := t.windowStart
	for {
		if err := utils.ValidateDateOrder(departureDate, t.windowEnd); err != nil {
			break
		}
		returnDate, err := utils.AddDays(departureDate, t.tripLengthDays)
		if err != nil {
			return err
		}

		result, err := t.TrackDatePair(ctx, departureDate, returnDate)
		if err != nil {
			t.metrics.ErrorsCount.WithLabelValues("sweep").Inc()
			return fmt.Errorf("sweep aborted at %s: %w", departureDate, err)
		}
		t.logger.Info("Tracked date pair",
			"departureDate", result.DepartureDate,
			"returnDate", result.ReturnDate,
			"recorded", result.Recorded,
			"rejected", result.Rejected,
			"alerted", result.Alerted)

		departureDate, err = utils.AddDays(departureDate, 1)
		if err != nil {
			return err
		}
	}
	return nil
}

// TrackDatePair searches, classifies and records all routing options
// for one departure/return date pair, then runs drop detection and
// reporting. All of the pair's observations commit in one transaction.
func (t *SweepTracker) TrackDatePair(ctx context.Context, departureDate, returnDate string) (*SweepResult, error) {
	result := &SweepResult{DepartureDate: departureDate, ReturnDate: returnDate}

	// Drop detection compares against the check preceding this sweep,
	// so the previous observation is read before anything is recorded.
	previous, err := t.prices.LastObservedPrice(ctx, departureDate, returnDate)
	if err != nil {
		return nil, err
	}

	observations, err := t.collectObservations(ctx, departureDate, returnDate)
	if err != nil {
		return nil, err
	}

	if len(observations) > 0 {
		bests, err := t.prices.RecordSweep(ctx, observations)
		if err != nil {
			return nil, err
		}
		t.metrics.ObservationsRecorded.Add(float64(len(observations)))
		for _, obs := range observations {
			result.Recorded++
			if !obs.Compliant {
				result.Rejected++
			}
		}
		for _, best := range bests {
			if best.DepartureDate == departureDate && best.ReturnDate == returnDate {
				result.Best = best
			}
		}

		current := BestObservation(observations)
		if current != nil {
			var previousPrice *float64
			if previous != nil {
				previousPrice = &previous.TotalPrice
			}
			if t.policy.ShouldAlert(previousPrice, current.TotalPrice) {
				if err := t.sendDropAlert(ctx, previous, current); err != nil {
					t.logger.Error("Failed to send price drop alert", "error", err)
					t.metrics.ErrorsCount.WithLabelValues("alert").Inc()
				} else {
					result.Alerted = true
					t.metrics.PriceDropAlerts.Inc()
				}
			}
		}
	} else {
		// An empty provider result is still a checked date pair: the
		// report goes out carrying the historical best, if any.
		t.logger.Warn("No offers found for date pair",
			"departureDate", departureDate, "returnDate", returnDate)
		best, err := t.prices.BestPriceFor(ctx, departureDate, returnDate)
		if err != nil {
			return nil, err
		}
		result.Best = best
	}

	report, err := t.buildReport(ctx, departureDate, returnDate, result.Best)
	if err != nil {
		return nil, err
	}
	if err := t.notifier.SendDailyReport(ctx, report); err != nil {
		t.logger.Error("Failed to send daily report", "error", err)
		t.metrics.ErrorsCount.WithLabelValues("report").Inc()
	}

	if t.hotels != nil && report.Recommendation.Suggested {
		t.trackHotelStays(ctx, departureDate, report.Recommendation)
	}

	return result, nil
}

// trackHotelStays records hotel rates for the recommended split.
// Hotel failures never fail the flight sweep.
func (t *SweepTracker) trackHotelStays(ctx context.Context, departureDate string, recommendation *entity.Recommendation) {
	stays, err := t.hotels.StayPlan(departureDate, recommendation)
	if err != nil {
		t.logger.Error("Failed to derive hotel stays", "error", err)
		return
	}
	if err := t.hotels.TrackStays(ctx, stays); err != nil {
		t.logger.Error("Failed to record hotel prices", "error", err)
		t.metrics.ErrorsCount.WithLabelValues("hotel").Inc()
	}
}

// collectObservations evaluates every route option for the date pair.
// Per route option one observation is produced: the cheapest compliant
// outbound/return combination when one exists, otherwise the cheapest
// rejected combination recorded as non-compliant so the rejection
// stays auditable. Route options the provider returned nothing for
// produce no observation.
func (t *SweepTracker) collectObservations(ctx context.Context, departureDate, returnDate string) ([]*entity.FlightObservation, error) {
	observedAt := time.Now()
	var observations []*entity.FlightObservation

	for _, plan := range t.router.DirectionPlans() {
		for _, route := range plan.RouteOptions() {
			outboundOffers, err := t.searcher.Search(ctx, t.homeAirport, route.InboundAirport, departureDate)
			if err != nil {
				return nil, fmt.Errorf("outbound search %s-%s: %w", t.homeAirport, route.InboundAirport, err)
			}
			returnOffers, err := t.searcher.Search(ctx, route.OutboundAirport, t.homeAirport, returnDate)
			if err != nil {
				return nil, fmt.Errorf("return search %s-%s: %w", route.OutboundAirport, t.homeAirport, err)
			}
			if len(outboundOffers) == 0 || len(returnOffers) == 0 {
				continue
			}

			outbound := t.cheapestLeg(outboundOffers)
			inbound := t.cheapestLeg(returnOffers)

			offer := &entity.Offer{
				Route:      route,
				Outbound:   outbound.offer,
				Return:     inbound.offer,
				TotalPrice: outbound.offer.Price + inbound.offer.Price,
				Currency:   outbound.offer.Currency,
			}
			compliance := entity.ComplianceResult{
				Compliant: outbound.result.Compliant && inbound.result.Compliant,
				Nonstop:   outbound.result.Nonstop && inbound.result.Nonstop,
				NoRedEye:  outbound.result.NoRedEye && inbound.result.NoRedEye,
			}
			if !compliance.Compliant {
				compliance.Reason = outbound.result.Reason
				if compliance.Reason == "" {
					compliance.Reason = inbound.result.Reason
				}
				t.metrics.OffersClassified.WithLabelValues(compliance.Reason).Inc()
			} else {
				t.metrics.OffersClassified.WithLabelValues("compliant").Inc()
			}

			payloadRef := t.archivePayloads(ctx, departureDate, returnDate, offer)

			observations = append(observations, &entity.FlightObservation{
				DepartureDate:   departureDate,
				ReturnDate:      returnDate,
				Direction:       route.Direction,
				InboundAirport:  route.InboundAirport,
				OutboundAirport: route.OutboundAirport,
				TotalPrice:      offer.TotalPrice,
				Currency:        offer.Currency,
				Nonstop:         compliance.Nonstop,
				NoRedEye:        compliance.NoRedEye,
				Compliant:       compliance.Compliant,
				RejectReason:    compliance.Reason,
				PayloadRef:      payloadRef,
				ObservedAt:      observedAt,
			})
		}
	}

	return observations, nil
}

type classifiedLeg struct {
	offer  *entity.LegOffer
	result entity.ComplianceResult
}

// cheapestLeg prefers the cheapest compliant offer and falls back to
// the cheapest offer overall when the whole list is rejected
func (t *SweepTracker) cheapestLeg(offers []*entity.LegOffer) classifiedLeg {
	var bestCompliant, bestAny *classifiedLeg
	for _, offer := range offers {
		leg := &classifiedLeg{offer: offer, result: t.router.ClassifyLeg(offer)}
		if bestAny == nil || leg.offer.Price < bestAny.offer.Price {
			bestAny = leg
		}
		if leg.result.Compliant && (bestCompliant == nil || leg.offer.Price < bestCompliant.offer.Price) {
			bestCompliant = leg
		}
	}
	if bestCompliant != nil {
		return *bestCompliant
	}
	return *bestAny
}

// archivePayloads stores the raw provider offers. Archive failures are
// logged, not fatal: the priced observation is worth more than its
// payload copy.
func (t *SweepTracker) archivePayloads(ctx context.Context, departureDate, returnDate string, offer *entity.Offer) string {
	ref, err := t.archive.Archive(ctx, &entity.OfferPayload{
		DepartureDate:   departureDate,
		ReturnDate:      returnDate,
		Direction:       offer.Route.Direction,
		InboundAirport:  offer.Route.InboundAirport,
		OutboundAirport: offer.Route.OutboundAirport,
		Outbound:        offer.Outbound.Payload,
		Return:          offer.Return.Payload,
		ArchivedAt:      time.Now(),
	})
	if err != nil {
		t.logger.Error("Failed to archive offer payload", "error", err)
		t.metrics.ErrorsCount.WithLabelValues("archive").Inc()
		return ""
	}
	return ref
}

func (t *SweepTracker) sendDropAlert(ctx context.Context, previous, current *entity.FlightObservation) error {
	event := &entity.PriceDropEvent{
		DepartureDate:   current.DepartureDate,
		ReturnDate:      current.ReturnDate,
		PreviousPrice:   previous.TotalPrice,
		CurrentPrice:    current.TotalPrice,
		Drop:            previous.TotalPrice - current.TotalPrice,
		Currency:        current.Currency,
		InboundAirport:  current.InboundAirport,
		OutboundAirport: current.OutboundAirport,
		Routing: entity.RouteOption{
			Direction:       current.Direction,
			InboundAirport:  current.InboundAirport,
			OutboundAirport: current.OutboundAirport,
		}.Description(t.homeAirport),
	}
	return t.notifier.SendPriceDropAlert(ctx, event)
}

func (t *SweepTracker) buildReport(ctx context.Context, departureDate, returnDate string, best *entity.DailyBestPrice) (*entity.DailyReport, error) {
	byDirection, err := t.prices.BestByDirection(ctx, departureDate, returnDate)
	if err != nil {
		return nil, err
	}

	var firstCityBest, secondCityBest *float64
	if price, ok := byDirection[entity.DirectionCode(t.firstCity)]; ok {
		firstCityBest = &price
	}
	if price, ok := byDirection[entity.DirectionCode(t.secondCity)]; ok {
		secondCityBest = &price
	}
	currency := "USD"
	if best != nil {
		currency = best.Currency
	}

	recommendation := t.engine.Recommend(firstCityBest, secondCityBest, currency, entity.TripWindow{
		DepartureDate: departureDate,
		ReturnDate:    returnDate,
	})

	return &entity.DailyReport{
		DepartureDate:  departureDate,
		ReturnDate:     returnDate,
		Best:           best,
		Recommendation: recommendation,
	}, nil
}

// BestObservation returns the compliant observation with the lowest
// price, or nil when none is compliant. Equal prices keep the earlier
// observation, so the result is deterministic for the router's fixed
// enumeration order.
func BestObservation(observations []*entity.FlightObservation) *entity.FlightObservation {
	var best *entity.FlightObservation
	for _, obs := range observations {
		if !obs.Compliant {
			continue
		}
		if best == nil || obs.TotalPrice < best.TotalPrice {
			best = obs
		}
	}
	return best
}

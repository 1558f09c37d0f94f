package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/pkg/logger"
	"tripwatch-service/pkg/utils"

	"golang.org/x/oauth2/clientcredentials"
)

// Client talks to the Amadeus self-service APIs. It is the external
// search collaborator: it does not retry, and a provider failure is
// surfaced to the caller as-is.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     logger.Logger
}

// NewClient creates an Amadeus client. Token refresh is handled by the
// oauth2 client-credentials transport.
func NewClient(ctx context.Context, baseURL, clientID, clientSecret string, logger logger.Logger) *Client {
	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     baseURL + "/v1/security/oauth2/token",
	}

	httpClient := conf.Client(ctx)
	httpClient.Timeout = 30 * time.Second

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

type flightOffersResponse struct {
	Data []json.RawMessage `json:"data"`
}

type flightOffer struct {
	Itineraries []struct {
		Duration string `json:"duration"`
		Segments []struct {
			Departure struct {
				IataCode string `json:"iataCode"`
				At       string `json:"at"`
			} `json:"departure"`
			Arrival struct {
				IataCode string `json:"iataCode"`
				At       string `json:"at"`
			} `json:"arrival"`
		} `json:"segments"`
	} `json:"itineraries"`
	Price struct {
		Total    string `json:"total"`
		Currency string `json:"currency"`
	} `json:"price"`
}

// Search fetches one-way flight offers for an origin, destination and
// departure date. Offers with unparseable timestamps or prices are
// skipped with a warning; they cannot be classified or compared.
func (c *Client) Search(ctx context.Context, origin, destination, departureDate string) ([]*entity.LegOffer, error) {
	params := url.Values{}
	params.Set("originLocationCode", origin)
	params.Set("destinationLocationCode", destination)
	params.Set("departureDate", departureDate)
	params.Set("adults", "1")
	params.Set("currencyCode", "USD")
	params.Set("max", "50")

	body, err := c.get(ctx, "/v2/shopping/flight-offers", params)
	if err != nil {
		return nil, err
	}

	var response flightOffersResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("amadeus: decoding flight offers: %w", err)
	}

	offers := make([]*entity.LegOffer, 0, len(response.Data))
	for _, raw := range response.Data {
		offer, err := parseLegOffer(raw, origin, destination)
		if err != nil {
			c.logger.Warn("Skipping unparseable offer", "origin", origin, "destination", destination, "error", err)
			continue
		}
		offers = append(offers, offer)
	}

	c.logger.Info("Flight search complete",
		"origin", origin, "destination", destination,
		"departureDate", departureDate, "offers", len(offers))
	return offers, nil
}

func parseLegOffer(raw json.RawMessage, origin, destination string) (*entity.LegOffer, error) {
	var offer flightOffer
	if err := json.Unmarshal(raw, &offer); err != nil {
		return nil, err
	}
	if len(offer.Itineraries) == 0 {
		return nil, fmt.Errorf("offer has no itineraries")
	}

	itinerary := offer.Itineraries[0]
	segments := make([]entity.Segment, 0, len(itinerary.Segments))
	for _, seg := range itinerary.Segments {
		departureTime, err := utils.ParseLocalTime(seg.Departure.At)
		if err != nil {
			return nil, err
		}
		arrivalTime, err := utils.ParseLocalTime(seg.Arrival.At)
		if err != nil {
			return nil, err
		}
		segments = append(segments, entity.Segment{
			DepartureAirport: seg.Departure.IataCode,
			ArrivalAirport:   seg.Arrival.IataCode,
			DepartureTime:    departureTime,
			ArrivalTime:      arrivalTime,
		})
	}

	price, err := strconv.ParseFloat(offer.Price.Total, 64)
	if err != nil {
		return nil, fmt.Errorf("offer price %q: %w", offer.Price.Total, err)
	}
	currency := offer.Price.Currency
	if currency == "" {
		currency = "USD"
	}

	return &entity.LegOffer{
		Origin:      origin,
		Destination: destination,
		Segments:    segments,
		Price:       price,
		Currency:    currency,
		Payload:     append([]byte(nil), raw...),
	}, nil
}

type hotelOffersResponse struct {
	Data []struct {
		Hotel struct {
			Name string `json:"name"`
		} `json:"hotel"`
		Offers []struct {
			Price struct {
				Total    string `json:"total"`
				Currency string `json:"currency"`
			} `json:"price"`
		} `json:"offers"`
	} `json:"data"`
}

// SearchHotels fetches hotel offers for a city and stay dates
func (c *Client) SearchHotels(ctx context.Context, city, checkInDate, checkOutDate string) ([]*entity.HotelPrice, error) {
	params := url.Values{}
	params.Set("cityCode", city)
	params.Set("checkInDate", checkInDate)
	params.Set("checkOutDate", checkOutDate)
	params.Set("currency", "USD")

	body, err := c.get(ctx, "/v2/shopping/hotel-offers", params)
	if err != nil {
		return nil, err
	}

	var response hotelOffersResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("amadeus: decoding hotel offers: %w", err)
	}

	nights := stayNights(checkInDate, checkOutDate)
	var prices []*entity.HotelPrice
	for _, item := range response.Data {
		for _, offer := range item.Offers {
			total, err := strconv.ParseFloat(offer.Price.Total, 64)
			if err != nil {
				c.logger.Warn("Skipping hotel offer with bad price", "hotel", item.Hotel.Name, "total", offer.Price.Total)
				continue
			}
			perNight := total
			if nights > 0 {
				perNight = total / float64(nights)
			}
			currency := offer.Price.Currency
			if currency == "" {
				currency = "USD"
			}
			prices = append(prices, &entity.HotelPrice{
				City:          city,
				CheckInDate:   checkInDate,
				CheckOutDate:  checkOutDate,
				HotelName:     item.Hotel.Name,
				PricePerNight: perNight,
				TotalPrice:    total,
				Currency:      currency,
			})
		}
	}
	return prices, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	endpoint := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amadeus: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("amadeus: reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("amadeus: %s returned status %d: %s", path, resp.StatusCode, string(body))
	}
	return body, nil
}

func stayNights(checkInDate, checkOutDate string) int {
	checkIn, err1 := time.Parse(utils.DATE_LAYOUT, checkInDate)
	checkOut, err2 := time.Parse(utils.DATE_LAYOUT, checkOutDate)
	if err1 != nil || err2 != nil {
		return 0
	}
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

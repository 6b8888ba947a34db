package repository

import (
	"context"
	"strings"
	"time"

	"github.com/iliyamo/skyway-booking/internal/model"
)

// CatalogRepo serves the mock destinations, flights and hotels. Each instance owns
// its own copy of the data so that callers (and tests) never share state.
// Every read waits for latency to mimic a remote API.
type CatalogRepo struct {
	destinations []model.Destination
	flights      []model.Flight
	hotels       []model.Hotel
	latency      time.Duration
}

// NewCatalogRepo returns a CatalogRepo seeded with the demo catalog.
func NewCatalogRepo(latency time.Duration) *CatalogRepo {
	return &CatalogRepo{
		destinations: seedDestinations(),
		flights:      seedFlights(),
		hotels:       seedHotels(),
		latency:      latency,
	}
}

// DestinationFilter narrows ListDestinations. Empty Category and nil
// Popular match everything.
type DestinationFilter struct {
	Category string
	Popular  *bool
}

// ListDestinations returns destinations matching f in catalog order.
func (r *CatalogRepo) ListDestinations(ctx context.Context, f DestinationFilter) ([]model.Destination, error) {
	if err := wait(ctx, r.latency); err != nil {
		return nil, err
	}
	category := strings.ToLower(strings.TrimSpace(f.Category))
	out := make([]model.Destination, 0, len(r.destinations))
	for _, d := range r.destinations {
		if category != "" && d.Category != category {
			continue
		}
		if f.Popular != nil && d.Popular != *f.Popular {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// ListFlights returns all flight offers.
func (r *CatalogRepo) ListFlights(ctx context.Context) ([]model.Flight, error) {
	if err := wait(ctx, r.latency); err != nil {
		return nil, err
	}
	out := make([]model.Flight, len(r.flights))
	copy(out, r.flights)
	return out, nil
}

// GetFlight returns a single flight or ErrFlightNotFound.
func (r *CatalogRepo) GetFlight(ctx context.Context, id uint64) (model.Flight, error) {
	if err := wait(ctx, r.latency); err != nil {
		return model.Flight{}, err
	}
	for _, f := range r.flights {
		if f.ID == id {
			return f, nil
		}
	}
	return model.Flight{}, ErrFlightNotFound
}

// ListHotels returns hotels whose location contains location, ignoring case.
// An empty location matches every hotel.
func (r *CatalogRepo) ListHotels(ctx context.Context, location string) ([]model.Hotel, error) {
	if err := wait(ctx, r.latency); err != nil {
		return nil, err
	}
	location = strings.ToLower(strings.TrimSpace(location))
	out := make([]model.Hotel, 0, len(r.hotels))
	for _, h := range r.hotels {
		if location != "" && !strings.Contains(strings.ToLower(h.Location), location) {
			continue
		}
		h.Amenities = append([]string(nil), h.Amenities...)
		out = append(out, h)
	}
	return out, nil
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func seedDestinations() []model.Destination {
	return []model.Destination{
		{ID: 1, Name: "Bora Bora", Country: "French Polynesia", Category: "island", PriceFrom: 1200, Rating: 4.9, Popular: true,
			Description: "Experience the pinnacle of tropical luxury in overwater bungalows surrounded by turquoise lagoons.",
			ImageURL:    "https://images.pexels.com/photos/375735/pexels-photo-375735.jpeg"},
		{ID: 2, Name: "Kyoto", Country: "Japan", Category: "city", PriceFrom: 800, Rating: 4.8, Popular: true,
			Description: "Wander through serene temples, vibrant shrines, and traditional geisha districts in Japan's cultural heart.",
			ImageURL:    "https://images.pexels.com/photos/1440476/pexels-photo-1440476.jpeg"},
		{ID: 3, Name: "Swiss Alps", Country: "Switzerland", Category: "mountain", PriceFrom: 1500, Rating: 4.9,
			Description: "Conquer majestic peaks, ski down pristine slopes, and breathe in the crisp, clean mountain air."},
		{ID: 4, Name: "Santorini", Country: "Greece", Category: "island", PriceFrom: 950, Rating: 4.8, Popular: true,
			Description: "Witness iconic sunsets over the Aegean Sea from stunning white-washed villages."},
		{ID: 5, Name: "Machu Picchu", Country: "Peru", Category: "temple", PriceFrom: 700, Rating: 4.7,
			Description: "Explore the ancient Incan citadel set high in the Andes Mountains."},
		{ID: 6, Name: "Serengeti National Park", Country: "Tanzania", Category: "forest", PriceFrom: 2500, Rating: 4.9,
			Description: "Embark on an unforgettable safari to witness the great wildebeest migration."},
	}
}

func seedFlights() []model.Flight {
	return []model.Flight{
		{ID: 1, Airline: "SkyWings",
			Departure: model.Endpoint{Time: "08:30", City: "New York", Code: "JFK"},
			Arrival:   model.Endpoint{Time: "20:15", City: "Tokyo", Code: "NRT"},
			Duration:  "14h 45m", Stops: 1, Price: 1299, Class: "Economy", Amenities: []string{"wifi", "meals"}, Rating: 4.5},
		{ID: 2, Airline: "AeroLux",
			Departure: model.Endpoint{Time: "14:20", City: "New York", Code: "JFK"},
			Arrival:   model.Endpoint{Time: "06:45", City: "Tokyo", Code: "HND"},
			Duration:  "13h 25m", Stops: 0, Price: 2499, Class: "Business", Amenities: []string{"wifi", "meals", "lounge"}, Rating: 4.8},
		{ID: 3, Airline: "CloudJet",
			Departure: model.Endpoint{Time: "11:15", City: "New York", Code: "LGA"},
			Arrival:   model.Endpoint{Time: "02:30", City: "Tokyo", Code: "NRT"},
			Duration:  "16h 15m", Stops: 2, Price: 899, Class: "Economy", Amenities: []string{"meals"}, Rating: 4.2},
	}
}

func seedHotels() []model.Hotel {
	return []model.Hotel{
		{ID: 1, Name: "The Tokyo Palace", Location: "Tokyo, Japan", Rating: 4.9, PricePerNight: 450,
			Amenities:   []string{"wifi", "pool", "spa"},
			ImageURL:    "https://images.pexels.com/photos/271624/pexels-photo-271624.jpeg",
			Description: "Experience luxury in the heart of Tokyo with breathtaking city views and unparalleled service."},
		{ID: 2, Name: "Kyoto Serenity Inn", Location: "Kyoto, Japan", Rating: 4.7, PricePerNight: 320,
			Amenities:   []string{"wifi", "spa", "restaurant"},
			ImageURL:    "https://images.pexels.com/photos/2984857/pexels-photo-2984857.jpeg",
			Description: "A traditional Ryokan experience with modern comforts, nestled in the historic Gion district."},
		{ID: 3, Name: "Osaka City View Hotel", Location: "Osaka, Japan", Rating: 4.5, PricePerNight: 210,
			Amenities:   []string{"wifi", "gym"},
			ImageURL:    "https://images.pexels.com/photos/261102/pexels-photo-261102.jpeg",
			Description: "Modern, convenient, and stylish accommodation perfect for exploring the vibrant city of Osaka."},
	}
}

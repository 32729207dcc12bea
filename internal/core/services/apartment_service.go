package services

import (
	"context"
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/mmcloughlin/geohash"

	"rentwise-portal/internal/adapters/cache"
	"rentwise-portal/internal/adapters/marketapi"
	"rentwise-portal/internal/core/domain"
	"rentwise-portal/internal/pkg/logger"
)

const (
	DefaultClusterPrecision = 6
	maxClusterPrecision     = 9
)

// ApartmentService serves listing search, detail and landlord edits. Public reads go
// through a short-lived cache.
type ApartmentService struct {
	api   ApartmentAPI
	cache cache.Cache
	ttl   time.Duration
}

// NewApartmentService creates the service. A nil cache disables caching.
func NewApartmentService(api ApartmentAPI, c cache.Cache, ttl time.Duration) *ApartmentService {
	if c == nil {
		c = cache.Nop{}
	}
	return &ApartmentService{api: api, cache: c, ttl: ttl}
}

// ApartmentInput is a landlord's listing form
type ApartmentInput struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Community   string   `json:"community"`
	City        string   `json:"city" validate:"required"`
	Type        string   `json:"type"`
	Bedrooms    int      `json:"bedrooms" validate:"gte=0,lte=20"`
	Bathrooms   int      `json:"bathrooms" validate:"gte=0,lte=20"`
	AreaSqft    float64  `json:"area_sqft" validate:"gte=0"`
	Price       float64  `json:"price" validate:"required,price"`
	Furnished   bool     `json:"furnished"`
	Latitude    float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64  `json:"longitude" validate:"gte=-180,lte=180"`
	Images      []string `json:"images"`
	Amenities   []string `json:"amenities"`
}

func (in ApartmentInput) upstream() marketapi.ApartmentInput {
	return marketapi.ApartmentInput(in)
}

// Cluster groups the listings that share a geohash cell on the map
type Cluster struct {
	Geohash   string   `json:"geohash"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Count     int      `json:"count"`
	MinPrice  float64  `json:"min_price"`
	MaxPrice  float64  `json:"max_price"`
	IDs       []string `json:"ids"`
}

// Search lists apartments. Anonymous searches are cached; signed-in and landlord-scoped ones are not.
func (s *ApartmentService) Search(ctx context.Context, token string, filter domain.ApartmentFilter) ([]domain.Apartment, error) {
	cacheable := token == "" && filter.LandlordID == ""
	key := "listings:search:" + filterKey(filter)

	if cacheable {
		var cached []domain.Apartment
		if s.readCache(ctx, key, &cached) {
			return cached, nil
		}
	}

	items, err := s.api.ListApartments(ctx, token, filter)
	if err != nil {
		return nil, fromUpstream(err, "")
	}
	if cacheable {
		s.writeCache(ctx, key, items)
	}
	return items, nil
}

// Get loads one listing. Only anonymous reads share the cache, since a signed-in caller
// may see listings the public cannot.
func (s *ApartmentService) Get(ctx context.Context, token, id string) (*domain.Apartment, error) {
	cacheable := token == ""
	key := "listings:detail:" + id

	if cacheable {
		var cached domain.Apartment
		if s.readCache(ctx, key, &cached) {
			return &cached, nil
		}
	}

	apt, err := s.api.GetApartment(ctx, token, id)
	if err != nil {
		return nil, fromUpstream(err, "")
	}
	if cacheable {
		s.writeCache(ctx, key, apt)
	}
	return apt, nil
}

func (s *ApartmentService) Create(ctx context.Context, token string, in ApartmentInput) (*domain.Apartment, error) {
	apt, err := s.api.CreateApartment(ctx, token, in.upstream())
	if err != nil {
		return nil, fromUpstream(err, "")
	}
	logger.FromContext(ctx).Info("listing created", "apartment_id", apt.ID)
	return apt, nil
}

func (s *ApartmentService) Update(ctx context.Context, token, id string, in ApartmentInput) (*domain.Apartment, error) {
	apt, err := s.api.UpdateApartment(ctx, token, id, in.upstream())
	if err != nil {
		return nil, fromUpstream(err, "This listing was changed by someone else; refresh and try again")
	}
	s.invalidate(ctx, id)
	return apt, nil
}

func (s *ApartmentService) Delete(ctx context.Context, token, id string) error {
	if err := s.api.DeleteApartment(ctx, token, id); err != nil {
		return fromUpstream(err, "")
	}
	s.invalidate(ctx, id)
	logger.FromContext(ctx).Info("listing deleted", "apartment_id", id)
	return nil
}

// Map searches and groups the results into geohash cells of the given precision.
// Listings without coordinates are left out.
func (s *ApartmentService) Map(ctx context.Context, token string, filter domain.ApartmentFilter, precision int) ([]Cluster, error) {
	items, err := s.Search(ctx, token, filter)
	if err != nil {
		return nil, err
	}
	return ClusterApartments(items, precision), nil
}

// ClusterApartments groups listings by geohash cell, largest cluster first
func ClusterApartments(items []domain.Apartment, precision int) []Cluster {
	if precision < 1 || precision > maxClusterPrecision {
		precision = DefaultClusterPrecision
	}

	byCell := make(map[string]*Cluster)
	for _, apt := range items {
		if apt.Latitude == 0 && apt.Longitude == 0 {
			continue
		}
		cell := geohash.EncodeWithPrecision(apt.Latitude, apt.Longitude, uint(precision))
		c, ok := byCell[cell]
		if !ok {
			lat, lng := geohash.DecodeCenter(cell)
			c = &Cluster{Geohash: cell, Latitude: lat, Longitude: lng, MinPrice: apt.Price, MaxPrice: apt.Price}
			byCell[cell] = c
		}
		c.Count++
		c.IDs = append(c.IDs, apt.ID)
		if apt.Price < c.MinPrice {
			c.MinPrice = apt.Price
		}
		if apt.Price > c.MaxPrice {
			c.MaxPrice = apt.Price
		}
	}

	out := make([]Cluster, 0, len(byCell))
	for _, c := range byCell {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Geohash < out[j].Geohash
	})
	return out
}

// cache failures are logged and treated as misses
func (s *ApartmentService) readCache(ctx context.Context, key string, out interface{}) bool {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.FromContext(ctx).Warn("listing cache read failed", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false
	}
	return true
}

func (s *ApartmentService) writeCache(ctx context.Context, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		logger.FromContext(ctx).Warn("listing cache write failed", "key", key, "error", err)
	}
}

func (s *ApartmentService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, "listings:detail:"+id); err != nil {
		logger.FromContext(ctx).Warn("listing cache invalidation failed", "apartment_id", id, "error", err)
	}
}

// filterKey is a stable encoding of the filter; url.Values.Encode sorts by key
func filterKey(f domain.ApartmentFilter) string {
	q := url.Values{}
	q.Set("q", f.Query)
	q.Set("city", f.City)
	q.Set("community", f.Community)
	q.Set("type", f.Type)
	q.Set("min", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	q.Set("max", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	if f.Bedrooms != nil {
		q.Set("beds", strconv.Itoa(*f.Bedrooms))
	}
	if f.Furnished != nil {
		q.Set("furnished", strconv.FormatBool(*f.Furnished))
	}
	return q.Encode()
}

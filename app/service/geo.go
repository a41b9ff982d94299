package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/freshmarket/commerce-api/app/entity"
	"github.com/freshmarket/commerce-api/app/repository"
)

var (
	ErrCityNotFound     = errors.New("city not found")
	ErrDistrictNotFound = errors.New("district not found")
	ErrWardNotFound     = errors.New("ward not found")
)

// GeoService serves the city/district/ward reference data. List responses are
// cached in Redis when a client is configured; a nil client disables caching.
type GeoService struct {
	cities    *repository.CityRepository
	districts *repository.DistrictRepository
	wards     *repository.WardRepository
	cache     *redis.Client
	cacheTTL  time.Duration
}

func NewGeoService(
	cities *repository.CityRepository,
	districts *repository.DistrictRepository,
	wards *repository.WardRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
) *GeoService {
	return &GeoService{
		cities:    cities,
		districts: districts,
		wards:     wards,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

func cacheLookup[T any](ctx context.Context, cache *redis.Client, key string) (T, bool) {
	var zero T
	if cache == nil {
		return zero, false
	}

	payload, err := cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logrus.WithError(err).WithField("key", key).Debug("geo cache read failed")
		}
		return zero, false
	}

	var value T
	if err = json.Unmarshal(payload, &value); err != nil {
		return zero, false
	}
	return value, true
}

func cacheStore(ctx context.Context, cache *redis.Client, key string, value any, ttl time.Duration) {
	if cache == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err = cache.Set(ctx, key, payload, ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Debug("geo cache write failed")
	}
}

func (s *GeoService) ListCities(ctx context.Context, keywords string) ([]*entity.City, error) {
	key := "geo:cities:kw=" + keywords
	if cities, ok := cacheLookup[[]*entity.City](ctx, s.cache, key); ok {
		return cities, nil
	}

	cities, err := s.cities.List(ctx, keywords)
	if err != nil {
		return nil, err
	}

	cacheStore(ctx, s.cache, key, cities, s.cacheTTL)
	return cities, nil
}

func (s *GeoService) GetCity(ctx context.Context, id uint64) (*entity.City, error) {
	city, err := s.cities.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, ErrCityNotFound
	}
	return city, nil
}

func (s *GeoService) UpdateCity(ctx context.Context, city *entity.City) (*entity.City, error) {
	if _, err := s.GetCity(ctx, city.ID); err != nil {
		return nil, err
	}
	if err := s.cities.Update(ctx, city); err != nil {
		return nil, err
	}
	s.invalidate(ctx, "geo:cities:*")
	return city, nil
}

func (s *GeoService) ListDistricts(ctx context.Context, cityCode int64, keywords string) ([]*entity.District, error) {
	key := fmt.Sprintf("geo:districts:city=%d:kw=%s", cityCode, keywords)
	if districts, ok := cacheLookup[[]*entity.District](ctx, s.cache, key); ok {
		return districts, nil
	}

	districts, err := s.districts.List(ctx, cityCode, keywords)
	if err != nil {
		return nil, err
	}

	cacheStore(ctx, s.cache, key, districts, s.cacheTTL)
	return districts, nil
}

func (s *GeoService) GetDistrict(ctx context.Context, id uint64) (*entity.District, error) {
	district, err := s.districts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if district == nil {
		return nil, ErrDistrictNotFound
	}
	return district, nil
}

func (s *GeoService) UpdateDistrict(ctx context.Context, district *entity.District) (*entity.District, error) {
	if _, err := s.GetDistrict(ctx, district.ID); err != nil {
		return nil, err
	}
	if err := s.districts.Update(ctx, district); err != nil {
		return nil, err
	}
	s.invalidate(ctx, "geo:districts:*")
	return district, nil
}

func (s *GeoService) ListWards(ctx context.Context, districtCode int64, keywords string) ([]*entity.Ward, error) {
	key := fmt.Sprintf("geo:wards:district=%d:kw=%s", districtCode, keywords)
	if wards, ok := cacheLookup[[]*entity.Ward](ctx, s.cache, key); ok {
		return wards, nil
	}

	wards, err := s.wards.List(ctx, districtCode, keywords)
	if err != nil {
		return nil, err
	}

	cacheStore(ctx, s.cache, key, wards, s.cacheTTL)
	return wards, nil
}

func (s *GeoService) GetWard(ctx context.Context, id uint64) (*entity.Ward, error) {
	ward, err := s.wards.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ward == nil {
		return nil, ErrWardNotFound
	}
	return ward, nil
}

func (s *GeoService) UpdateWard(ctx context.Context, ward *entity.Ward) (*entity.Ward, error) {
	if _, err := s.GetWard(ctx, ward.ID); err != nil {
		return nil, err
	}
	if err := s.wards.Update(ctx, ward); err != nil {
		return nil, err
	}
	s.invalidate(ctx, "geo:wards:*")
	return ward, nil
}

// CityExists backs the existence-guard middleware on city routes.
func (s *GeoService) CityExists(ctx context.Context, id uint64) (bool, error) {
	city, err := s.cities.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return city != nil, nil
}

// DistrictExists backs the existence-guard middleware on district routes.
func (s *GeoService) DistrictExists(ctx context.Context, id uint64) (bool, error) {
	district, err := s.districts.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return district != nil, nil
}

// WardExists backs the existence-guard middleware on ward routes.
func (s *GeoService) WardExists(ctx context.Context, id uint64) (bool, error) {
	ward, err := s.wards.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return ward != nil, nil
}

func (s *GeoService) invalidate(ctx context.Context, pattern string) {
	if s.cache == nil {
		return
	}

	iter := s.cache.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := s.cache.Del(ctx, iter.Val()).Err(); err != nil {
			logrus.WithError(err).WithField("key", iter.Val()).Debug("geo cache invalidation failed")
		}
	}
	if err := iter.Err(); err != nil {
		logrus.WithError(err).Debug("geo cache scan failed")
	}
}

package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/freshmarket/commerce-api/app/entity"
	"github.com/freshmarket/commerce-api/app/repository"
	"github.com/freshmarket/commerce-api/app/service"

	"github.com/DATA-DOG/go-sqlmock"
)

const (
	listCitiesQuery    = `(?s)SELECT id, name, code, created_at, updated_at\s+FROM cities\s+WHERE name LIKE \?\s+ORDER BY name`
	findCityByIDQuery  = `(?s)SELECT id, name, code, created_at, updated_at\s+FROM cities WHERE id = \?`
	updateCityQuery    = `UPDATE cities SET name = \?, code = \?, updated_at = NOW\(\) WHERE id = \?`
	listDistrictsQuery = `(?s)SELECT id, name, code, city_code, created_at, updated_at\s+FROM districts\s+WHERE \(\? = 0 OR city_code = \?\) AND name LIKE \?\s+ORDER BY name`
)

var cityColumns = []string{"id", "name", "code", "created_at", "updated_at"}

// A nil Redis client disables the cache, so every call goes to the database.
func newGeoFixture(t *testing.T) (*service.GeoService, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	svc := service.NewGeoService(
		repository.NewCityRepository(db),
		repository.NewDistrictRepository(db),
		repository.NewWardRepository(db),
		nil,
		time.Minute,
	)
	return svc, mock, func() { _ = db.Close() }
}

func TestGeoService_ListCitiesWithoutCache(t *testing.T) {
	svc, mock, cleanup := newGeoFixture(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(listCitiesQuery).
		WithArgs("%Hà%").
		WillReturnRows(sqlmock.NewRows(cityColumns).
			AddRow(1, "Hà Nội", 1, now, now))

	cities, err := svc.ListCities(context.Background(), "Hà")
	if err != nil {
		t.Fatalf("ListCities returned error: %v", err)
	}
	if len(cities) != 1 || cities[0].Name != "Hà Nội" {
		t.Fatalf("unexpected cities: %+v", cities)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGeoService_ListDistrictsFiltersByCityCode(t *testing.T) {
	svc, mock, cleanup := newGeoFixture(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(listDistrictsQuery).
		WithArgs(int64(1), int64(1), "%%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code", "city_code", "created_at", "updated_at"}).
			AddRow(1, "Ba Đình", 1, 1, now, now).
			AddRow(2, "Hoàn Kiếm", 2, 1, now, now))

	districts, err := svc.ListDistricts(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("ListDistricts returned error: %v", err)
	}
	if len(districts) != 2 {
		t.Fatalf("expected 2 districts, got %d", len(districts))
	}
}

func TestGeoService_GetCityMissingIsNotFound(t *testing.T) {
	svc, mock, cleanup := newGeoFixture(t)
	defer cleanup()

	mock.ExpectQuery(findCityByIDQuery).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows(cityColumns))

	_, err := svc.GetCity(context.Background(), 404)
	if !errors.Is(err, service.ErrCityNotFound) {
		t.Fatalf("expected ErrCityNotFound, got %v", err)
	}
}

func TestGeoService_UpdateCityChecksExistence(t *testing.T) {
	svc, mock, cleanup := newGeoFixture(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(findCityByIDQuery).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows(cityColumns).
			AddRow(1, "Hà Nội", 1, now, now))
	mock.ExpectExec(updateCityQuery).
		WithArgs("Hà Nội", int64(1), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := svc.UpdateCity(context.Background(), &entity.City{ID: 1, Name: "Hà Nội", Code: 1})
	if err != nil {
		t.Fatalf("UpdateCity returned error: %v", err)
	}
	if updated.Name != "Hà Nội" {
		t.Fatalf("unexpected city: %+v", updated)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGeoService_CityExists(t *testing.T) {
	svc, mock, cleanup := newGeoFixture(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(findCityByIDQuery).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows(cityColumns).
			AddRow(1, "Hà Nội", 1, now, now))

	ok, err := svc.CityExists(context.Background(), 1)
	if err != nil {
		t.Fatalf("CityExists returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected city 1 to exist")
	}
}

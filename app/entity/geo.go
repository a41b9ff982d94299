package entity

import "time"

type City struct {
	ID        uint64
	Name      string
	Code      int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type District struct {
	ID        uint64
	Name      string
	Code      int64
	CityCode  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Ward struct {
	ID           uint64
	Name         string
	Code         int64
	DistrictCode int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

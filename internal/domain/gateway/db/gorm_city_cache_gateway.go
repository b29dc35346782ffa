package db

import (
	"context"
	"fmt"

	"city-api/internal/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cityRecord is the gorm mapping of the cities table
type cityRecord struct {
	Latitude   float64 `gorm:"primaryKey;autoIncrement:false"`
	Longitude  float64 `gorm:"primaryKey;autoIncrement:false"`
	Country    *string
	IsCapital  *bool
	Name       *string `gorm:"index"`
	Population *int
}

func (cityRecord) TableName() string {
	return "cities"
}

func newCityRecord(city entity.City) cityRecord {
	return cityRecord{
		Latitude:   city.Latitude,
		Longitude:  city.Longitude,
		Country:    city.Country,
		IsCapital:  city.IsCapital,
		Name:       city.Name,
		Population: city.Population,
	}
}

func (r cityRecord) toEntity() entity.City {
	return entity.City{
		Country:    r.Country,
		IsCapital:  r.IsCapital,
		Latitude:   r.Latitude,
		Longitude:  r.Longitude,
		Name:       r.Name,
		Population: r.Population,
	}
}

// GormCityCacheGateway is the postgres city cache on gorm
type GormCityCacheGateway struct {
	DB *gorm.DB
}

var _ CityCacheGateway = (*GormCityCacheGateway)(nil)

func NewGormCityCacheGateway(db *gorm.DB) *GormCityCacheGateway {
	return &GormCityCacheGateway{DB: db}
}

func (gateway *GormCityCacheGateway) EnsureSchema(ctx context.Context) error {
	if err := gateway.DB.WithContext(ctx).AutoMigrate(&cityRecord{}); err != nil {
		return fmt.Errorf("failed to migrate cities table: %w", err)
	}
	return nil
}

func (gateway *GormCityCacheGateway) FindAll(ctx context.Context) ([]entity.City, error) {
	var records []cityRecord
	if err := gateway.DB.WithContext(ctx).Order("name ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return toEntities(records), nil
}

func (gateway *GormCityCacheGateway) FindByName(ctx context.Context, name string) ([]entity.City, error) {
	var records []cityRecord
	err := gateway.DB.WithContext(ctx).
		Where(`name ILIKE ? ESCAPE '\'`, containsPattern(name)).
		Order("name ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toEntities(records), nil
}

// Upsert writes every city in one transaction, replacing rows on key conflict
func (gateway *GormCityCacheGateway) Upsert(ctx context.Context, cities []entity.City) error {
	if len(cities) == 0 {
		return nil
	}

	records := make([]cityRecord, len(cities))
	for i, city := range cities {
		records[i] = newCityRecord(city)
	}

	return gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "latitude"}, {Name: "longitude"}},
			UpdateAll: true,
		}).Create(&records).Error
	})
}

func toEntities(records []cityRecord) []entity.City {
	cities := make([]entity.City, len(records))
	for i, record := range records {
		cities[i] = record.toEntity()
	}
	return cities
}

package repository

import (
	"time"

	"gourd/entities"
)

// ListQuery filters and pages the per-user plant list.
type ListQuery struct {
	Status  entities.Status
	Species entities.Species
	Sort    string // newest|oldest|name|status
	Page    int
	Limit   int
}

type PlantRepository interface {
	Create(p *entities.Plant) error
	FindByID(id uint, uid string) (*entities.Plant, error)
	Save(p *entities.Plant) error
	Delete(id uint, uid string) error

	List(uid string, q ListQuery) ([]entities.Plant, int64, error)
	// Attention lists planted/flowering plants with a determined gender,
	// oldest planting first.
	Attention(uid string) ([]entities.Plant, error)
	// Pollinated lists plants with an armed reminder timing record.
	Pollinated(uid string) ([]entities.Plant, error)
	CountByStatus(uid string) (map[entities.Status]int64, error)
	CountBySpecies(uid string) (map[entities.Species]int64, error)
	RecentlyUpdated(uid string, since time.Time, limit int) ([]entities.Plant, error)
}

package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	gormModels "skyharbor/dispatch/internal/models/gorm"
)

// RegistryRepositoryGORM handles the reference-data CRUD side: airports and
// staff records. Worker IDs must be unique across pilots, attendants and
// managers.
type RegistryRepositoryGORM struct {
	db *gorm.DB
}

func NewRegistryRepositoryGORM(db *gorm.DB) *RegistryRepositoryGORM {
	return &RegistryRepositoryGORM{db: db}
}

func (r *RegistryRepositoryGORM) ListAirports(ctx context.Context) ([]gormModels.Airport, error) {
	var airports []gormModels.Airport
	err := r.db.WithContext(ctx).
		Order("country, city, airport_name").
		Find(&airports).Error
	return airports, err
}

// WorkerIDTaken checks all three worker tables for an existing ID.
func (r *RegistryRepositoryGORM) WorkerIDTaken(ctx context.Context, workerID int) (bool, error) {
	models := []interface{}{&gormModels.Pilot{}, &gormModels.Attendant{}, &gormModels.Manager{}}
	for _, m := range models {
		err := r.db.WithContext(ctx).First(m, "worker_id = ?", workerID).Error
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}
	}
	return false, nil
}

func (r *RegistryRepositoryGORM) CreatePilot(ctx context.Context, p *gormModels.Pilot) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *RegistryRepositoryGORM) CreateAttendant(ctx context.Context, a *gormModels.Attendant) error {
	return r.db.WithContext(ctx).Create(a).Error
}

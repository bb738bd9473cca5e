package repositoryImp

import (
	"time"

	"gorm.io/gorm"

	"gourd/entities"
	"gourd/pkg/plant/repository"
)

type plantRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlantRepository { return &plantRepo{db} }

func (r *plantRepo) Create(p *entities.Plant) error { return r.db.Create(p).Error }

func (r *plantRepo) FindByID(id uint, uid string) (*entities.Plant, error) {
	var p entities.Plant
	if err := r.db.Where("plant_id = ? AND user_id = ?", id, uid).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *plantRepo) Save(p *entities.Plant) error { return r.db.Save(p).Error }

func (r *plantRepo) Delete(id uint, uid string) error {
	res := r.db.Where("plant_id = ? AND user_id = ?", id, uid).Delete(&entities.Plant{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *plantRepo) List(uid string, q repository.ListQuery) ([]entities.Plant, int64, error) {
	tx := r.db.Model(&entities.Plant{}).Where("user_id = ?", uid)
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.Species != "" {
		tx = tx.Where("species = ?", q.Species)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch q.Sort {
	case "oldest":
		tx = tx.Order("date_planted ASC")
	case "name":
		tx = tx.Order("species ASC").Order("date_planted DESC")
	case "status":
		tx = tx.Order("status ASC").Order("date_planted DESC")
	default: // newest
		tx = tx.Order("date_planted DESC")
	}

	page, limit := q.Page, q.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	var out []entities.Plant
	if err := tx.Limit(limit).Offset((page - 1) * limit).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *plantRepo) Attention(uid string) ([]entities.Plant, error) {
	var out []entities.Plant
	err := r.db.
		Where("user_id = ? AND status IN ? AND gender <> ?",
			uid, []entities.Status{entities.StatusPlanted, entities.StatusFlowering}, entities.GenderUndetermined).
		Order("date_planted ASC").
		Find(&out).Error
	return out, err
}

func (r *plantRepo) Pollinated(uid string) ([]entities.Plant, error) {
	var out []entities.Plant
	err := r.db.
		Where("user_id = ? AND status = ? AND timing IS NOT NULL", uid, entities.StatusPollinated).
		Find(&out).Error
	return out, err
}

func (r *plantRepo) CountByStatus(uid string) (map[entities.Status]int64, error) {
	type row struct {
		Status entities.Status
		N      int64
	}
	var rows []row
	err := r.db.Model(&entities.Plant{}).
		Select("status, COUNT(*) AS n").
		Where("user_id = ?", uid).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := map[entities.Status]int64{}
	for _, rw := range rows {
		out[rw.Status] = rw.N
	}
	return out, nil
}

func (r *plantRepo) CountBySpecies(uid string) (map[entities.Species]int64, error) {
	type row struct {
		Species entities.Species
		N       int64
	}
	var rows []row
	err := r.db.Model(&entities.Plant{}).
		Select("species, COUNT(*) AS n").
		Where("user_id = ?", uid).
		Group("species").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := map[entities.Species]int64{}
	for _, rw := range rows {
		out[rw.Species] = rw.N
	}
	return out, nil
}

func (r *plantRepo) RecentlyUpdated(uid string, since time.Time, limit int) ([]entities.Plant, error) {
	var out []entities.Plant
	err := r.db.
		Where("user_id = ? AND updated_at >= ?", uid, since).
		Order("updated_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

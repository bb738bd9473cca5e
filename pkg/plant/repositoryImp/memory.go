package repositoryImp

import (
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"gourd/entities"
	"gourd/pkg/plant/repository"
)

// MemoryPlantRepo keeps records in process. Backs the service and handler
// tests so they run without a database file.
type MemoryPlantRepo struct {
	mu     sync.RWMutex
	nextID uint
	plants map[uint]entities.Plant
}

func NewMemory() *MemoryPlantRepo {
	return &MemoryPlantRepo{nextID: 1, plants: map[uint]entities.Plant{}}
}

func (r *MemoryPlantRepo) Create(p *entities.Plant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.PlantID = r.nextID
	r.nextID++
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.plants[p.PlantID] = *p
	return nil
}

func (r *MemoryPlantRepo) FindByID(id uint, uid string) (*entities.Plant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plants[id]
	if !ok || p.UserID != uid {
		return nil, gorm.ErrRecordNotFound
	}
	cp := p
	return &cp, nil
}

func (r *MemoryPlantRepo) Save(p *entities.Plant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plants[p.PlantID]; !ok {
		return gorm.ErrRecordNotFound
	}
	p.UpdatedAt = time.Now()
	r.plants[p.PlantID] = *p
	return nil
}

func (r *MemoryPlantRepo) Delete(id uint, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plants[id]
	if !ok || p.UserID != uid {
		return gorm.ErrRecordNotFound
	}
	delete(r.plants, id)
	return nil
}

func (r *MemoryPlantRepo) forUser(uid string) []entities.Plant {
	var out []entities.Plant
	for _, p := range r.plants {
		if p.UserID == uid {
			out = append(out, p)
		}
	}
	return out
}

func (r *MemoryPlantRepo) List(uid string, q repository.ListQuery) ([]entities.Plant, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []entities.Plant
	for _, p := range r.forUser(uid) {
		if q.Status != "" && p.Status != q.Status {
			continue
		}
		if q.Species != "" && p.Species != q.Species {
			continue
		}
		all = append(all, p)
	}

	switch q.Sort {
	case "oldest":
		sort.Slice(all, func(i, j int) bool { return all[i].DatePlanted.Before(all[j].DatePlanted) })
	case "name":
		sort.Slice(all, func(i, j int) bool {
			if all[i].Species != all[j].Species {
				return all[i].Species < all[j].Species
			}
			return all[i].DatePlanted.After(all[j].DatePlanted)
		})
	case "status":
		sort.Slice(all, func(i, j int) bool {
			if all[i].Status != all[j].Status {
				return all[i].Status < all[j].Status
			}
			return all[i].DatePlanted.After(all[j].DatePlanted)
		})
	default:
		sort.Slice(all, func(i, j int) bool { return all[i].DatePlanted.After(all[j].DatePlanted) })
	}

	total := int64(len(all))
	page, limit := q.Page, q.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *MemoryPlantRepo) Attention(uid string) ([]entities.Plant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []entities.Plant
	for _, p := range r.forUser(uid) {
		if (p.Status == entities.StatusPlanted || p.Status == entities.StatusFlowering) &&
			p.Gender != entities.GenderUndetermined {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DatePlanted.Before(out[j].DatePlanted) })
	return out, nil
}

func (r *MemoryPlantRepo) Pollinated(uid string) ([]entities.Plant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []entities.Plant
	for _, p := range r.forUser(uid) {
		if p.Status == entities.StatusPollinated && p.Timing != nil {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlantID < out[j].PlantID })
	return out, nil
}

func (r *MemoryPlantRepo) CountByStatus(uid string) (map[entities.Status]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := map[entities.Status]int64{}
	for _, p := range r.forUser(uid) {
		out[p.Status]++
	}
	return out, nil
}

func (r *MemoryPlantRepo) CountBySpecies(uid string) (map[entities.Species]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := map[entities.Species]int64{}
	for _, p := range r.forUser(uid) {
		out[p.Species]++
	}
	return out, nil
}

func (r *MemoryPlantRepo) RecentlyUpdated(uid string, since time.Time, limit int) ([]entities.Plant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []entities.Plant
	for _, p := range r.forUser(uid) {
		if !p.UpdatedAt.Before(since) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

package repo

import (
	"slices"
	"sync"

	"rizal-api/internal/domain"
)

// UserRepo 进程内用户存储，重启即丢失。
// 所有写操作在同一把锁下完成，邮箱查重与插入是原子的。
type UserRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*domain.User
	order  []int64        // 插入顺序
	emails map[string]int // email -> 引用数（更新允许重复邮箱）
}

var _ domain.UserRepository = (*UserRepo)(nil)

func NewUserRepo() *UserRepo {
	return &UserRepo{
		nextID: 1,
		byID:   make(map[int64]*domain.User),
		order:  make([]int64, 0, 16),
		emails: make(map[string]int),
	}
}

func (r *UserRepo) Create(u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emails[u.Email] > 0 {
		return domain.ErrUserExists
	}
	u.ID = r.nextID
	r.nextID++

	stored := *u
	r.byID[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	r.emails[stored.Email]++
	return nil
}

func (r *UserRepo) FindByID(id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *UserRepo) List() ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.byID[id])
	}
	return out, nil
}

// Update 合并补丁后原地替换；不复查邮箱唯一性
func (r *UserRepo) Update(id int64, p domain.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	merged := cur.Apply(p)
	merged.ID = id
	if merged.Email != cur.Email {
		r.releaseEmail(cur.Email)
		r.emails[merged.Email]++
	}
	*cur = merged

	out := merged
	return &out, nil
}

func (r *UserRepo) Delete(id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(r.byID, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	r.releaseEmail(u.Email)
	return u, nil
}

// Len 当前存量（给 metrics 用）
func (r *UserRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

func (r *UserRepo) releaseEmail(email string) {
	if n := r.emails[email]; n > 1 {
		r.emails[email] = n - 1
	} else {
		delete(r.emails, email)
	}
}

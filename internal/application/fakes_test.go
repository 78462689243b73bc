package application

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/accel-platform/internal/agent"
	"github.com/linskybing/accel-platform/internal/domain/arq"
	"github.com/linskybing/accel-platform/internal/domain/attach"
	"github.com/linskybing/accel-platform/internal/domain/deviceprofile"
	"github.com/linskybing/accel-platform/internal/domain/quota"
	"github.com/linskybing/accel-platform/internal/repository"
	"gorm.io/gorm"
)

// memStore is an in-memory repository.Store. Transactions are serialized
// and restore the previous contents when fn fails.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	nextID       uint
	profiles     map[uint]deviceprofile.DeviceProfile
	arqs         map[string]arq.ARQ
	usages       map[uint]quota.Usage
	reservations map[string]quota.Reservation

	// test hooks
	lockErr      error
	arqCreateErr error
	arqDeleteErr error
	// afterGet runs once after the next ARQ read returns its row.
	afterGet func(id string)
}

func newMemStore() *memStore {
	return &memStore{
		profiles:     map[uint]deviceprofile.DeviceProfile{},
		arqs:         map[string]arq.ARQ{},
		usages:       map[uint]quota.Usage{},
		reservations: map[string]quota.Reservation{},
	}
}

func (s *memStore) DeviceProfiles() repository.DeviceProfileRepo { return &memProfiles{s} }
func (s *memStore) ARQs() repository.ARQRepo                     { return &memARQs{s} }
func (s *memStore) Quotas() repository.QuotaRepo                 { return &memQuotas{s} }

func (s *memStore) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.snapshot()
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.restore(snapshot)
		s.mu.Unlock()
		return err
	}
	return ctx.Err()
}

type memSnapshot struct {
	nextID       uint
	profiles     map[uint]deviceprofile.DeviceProfile
	arqs         map[string]arq.ARQ
	usages       map[uint]quota.Usage
	reservations map[string]quota.Reservation
}

func (s *memStore) snapshot() memSnapshot {
	snap := memSnapshot{
		nextID:       s.nextID,
		profiles:     map[uint]deviceprofile.DeviceProfile{},
		arqs:         map[string]arq.ARQ{},
		usages:       map[uint]quota.Usage{},
		reservations: map[string]quota.Reservation{},
	}
	for k, v := range s.profiles {
		snap.profiles[k] = v
	}
	for k, v := range s.arqs {
		snap.arqs[k] = v
	}
	for k, v := range s.usages {
		snap.usages[k] = cloneUsage(v)
	}
	for k, v := range s.reservations {
		snap.reservations[k] = v
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.nextID = snap.nextID
	s.profiles = snap.profiles
	s.arqs = snap.arqs
	s.usages = snap.usages
	s.reservations = snap.reservations
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func cloneUsage(u quota.Usage) quota.Usage {
	if u.UntilRefresh != nil {
		n := *u.UntilRefresh
		u.UntilRefresh = &n
	}
	return u
}

// usage returns a copy of the row for project and resource.
func (s *memStore) usage(projectID, resource string) (quota.Usage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.usages {
		if u.ProjectID == projectID && u.Resource == resource {
			return cloneUsage(u), true
		}
	}
	return quota.Usage{}, false
}

func (s *memStore) onNextGet(fn func(id string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.afterGet = fn
}

func (s *memStore) reservationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reservations)
}

// --------------------- device profiles ---------------------

type memProfiles struct{ s *memStore }

func (r *memProfiles) Create(ctx context.Context, dp *deviceprofile.DeviceProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.profiles {
		if existing.Name == dp.Name {
			return repository.ErrDuplicate
		}
	}
	dp.ID = r.s.id()
	if dp.UUID == "" {
		dp.UUID = uuid.NewString()
	}
	dp.CreatedAt = time.Now()
	dp.UpdatedAt = dp.CreatedAt
	r.s.profiles[dp.ID] = *dp
	return nil
}

func (r *memProfiles) find(match func(deviceprofile.DeviceProfile) bool) (*deviceprofile.DeviceProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, dp := range r.s.profiles {
		if match(dp) {
			out := dp
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memProfiles) GetByID(ctx context.Context, id uint) (*deviceprofile.DeviceProfile, error) {
	return r.find(func(dp deviceprofile.DeviceProfile) bool { return dp.ID == id })
}

func (r *memProfiles) GetByUUID(ctx context.Context, id string) (*deviceprofile.DeviceProfile, error) {
	return r.find(func(dp deviceprofile.DeviceProfile) bool { return dp.UUID == id })
}

func (r *memProfiles) GetByName(ctx context.Context, name string) (*deviceprofile.DeviceProfile, error) {
	return r.find(func(dp deviceprofile.DeviceProfile) bool { return dp.Name == name })
}

func (r *memProfiles) List(ctx context.Context) ([]deviceprofile.DeviceProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]deviceprofile.DeviceProfile, 0, len(r.s.profiles))
	for _, dp := range r.s.profiles {
		out = append(out, dp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memProfiles) Update(ctx context.Context, dp *deviceprofile.DeviceProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.profiles[dp.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, other := range r.s.profiles {
		if other.ID != dp.ID && other.Name == dp.Name {
			return repository.ErrDuplicate
		}
	}
	stored.Name = dp.Name
	stored.Document = dp.Document
	stored.UpdatedAt = time.Now()
	r.s.profiles[dp.ID] = stored
	return nil
}

func (r *memProfiles) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.profiles[id]; !ok {
		return repository.ErrNotFound
	}
	for _, a := range r.s.arqs {
		if a.DeviceProfileID == id {
			return repository.ErrReferenced
		}
	}
	delete(r.s.profiles, id)
	return nil
}

func (r *memProfiles) WithTx(tx *gorm.DB) repository.DeviceProfileRepo { return r }

// --------------------- arqs ---------------------

type memARQs struct{ s *memStore }

func (r *memARQs) Create(ctx context.Context, a *arq.ARQ) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.arqCreateErr != nil {
		return r.s.arqCreateErr
	}
	if _, ok := r.s.profiles[a.DeviceProfileID]; !ok {
		return repository.ErrReferenced
	}
	if _, ok := r.s.arqs[a.UUID]; ok {
		return repository.ErrDuplicate
	}
	a.ID = r.s.id()
	a.CreatedAt = time.Now()
	stored := *a
	stored.DeviceProfile = nil
	stored.DeviceProfileName = ""
	r.s.arqs[a.UUID] = stored
	return nil
}

// load must be called with mu held.
func (r *memARQs) load(a arq.ARQ) *arq.ARQ {
	if dp, ok := r.s.profiles[a.DeviceProfileID]; ok {
		a.DeviceProfile = &dp
	}
	a.Hydrate()
	return &a
}

func (r *memARQs) GetByUUID(ctx context.Context, id string) (*arq.ARQ, error) {
	r.s.mu.Lock()
	stored, ok := r.s.arqs[id]
	var a *arq.ARQ
	if ok {
		a = r.load(stored)
	}
	hook := r.s.afterGet
	r.s.afterGet = nil
	r.s.mu.Unlock()

	if hook != nil {
		hook(id)
	}
	if !ok {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func (r *memARQs) GetByUUIDForUpdate(ctx context.Context, id string) (*arq.ARQ, error) {
	r.s.mu.Lock()
	lockErr := r.s.lockErr
	r.s.mu.Unlock()
	if lockErr != nil {
		return nil, lockErr
	}
	return r.GetByUUID(ctx, id)
}

func (r *memARQs) list(match func(*arq.ARQ) bool) []arq.ARQ {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []arq.ARQ
	for _, a := range r.s.arqs {
		loaded := r.load(a)
		if match(loaded) {
			out = append(out, *loaded)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memARQs) List(ctx context.Context, filter arq.ListFilter) ([]arq.ARQ, error) {
	return r.list(filter.Matches), nil
}

func (r *memARQs) ListByProject(ctx context.Context, projectID string) ([]arq.ARQ, error) {
	return r.list(func(a *arq.ARQ) bool { return a.ProjectID == projectID }), nil
}

func (r *memARQs) CountByProfile(ctx context.Context, profileID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, a := range r.s.arqs {
		if a.DeviceProfileID == profileID {
			n++
		}
	}
	return n, nil
}

func (r *memARQs) UpdateBinding(ctx context.Context, a *arq.ARQ) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.arqs[a.UUID]
	if !ok || stored.Version != a.Version {
		return repository.ErrStale
	}
	stored.State = a.State
	stored.HostName = a.HostName
	stored.DeviceRPUUID = a.DeviceRPUUID
	stored.InstanceUUID = a.InstanceUUID
	stored.AttachHandle = a.AttachHandle
	stored.Version++
	r.s.arqs[a.UUID] = stored
	a.Version++
	return nil
}

func (r *memARQs) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.arqDeleteErr != nil {
		return r.s.arqDeleteErr
	}
	if _, ok := r.s.arqs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.arqs, id)
	return nil
}

func (r *memARQs) WithTx(tx *gorm.DB) repository.ARQRepo { return r }

// --------------------- quota ---------------------

type memQuotas struct{ s *memStore }

func (r *memQuotas) EnsureUsage(ctx context.Context, u *quota.Usage) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.usages {
		if existing.ProjectID == u.ProjectID && existing.Resource == u.Resource {
			return false, nil
		}
	}
	u.ID = r.s.id()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.s.usages[u.ID] = cloneUsage(*u)
	return true, nil
}

func (r *memQuotas) GetUsagesForUpdate(ctx context.Context, projectID string, resources []string) (map[string]*quota.Usage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]*quota.Usage{}
	for _, u := range r.s.usages {
		if u.ProjectID == projectID && slices.Contains(resources, u.Resource) {
			c := cloneUsage(u)
			out[u.Resource] = &c
		}
	}
	return out, nil
}

func (r *memQuotas) ListUsages(ctx context.Context, projectID string) ([]quota.Usage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []quota.Usage
	for _, u := range r.s.usages {
		if u.ProjectID == projectID {
			out = append(out, cloneUsage(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Resource < out[j].Resource })
	return out, nil
}

func (r *memQuotas) SaveUsage(ctx context.Context, u *quota.Usage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.usages[u.ID]; !ok {
		return repository.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	r.s.usages[u.ID] = cloneUsage(*u)
	return nil
}

func (r *memQuotas) CreateReservation(ctx context.Context, res *quota.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reservations[res.UUID]; ok {
		return repository.ErrDuplicate
	}
	if _, ok := r.s.usages[res.UsageID]; !ok {
		return repository.ErrReferenced
	}
	res.ID = r.s.id()
	r.s.reservations[res.UUID] = *res
	return nil
}

func (r *memQuotas) reservationsWhere(match func(quota.Reservation) bool) []quota.Reservation {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []quota.Reservation
	for _, res := range r.s.reservations {
		if match(res) {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memQuotas) ListReservations(ctx context.Context, uuids []string) ([]quota.Reservation, error) {
	return r.reservationsWhere(func(res quota.Reservation) bool { return slices.Contains(uuids, res.UUID) }), nil
}

func (r *memQuotas) GetReservationsForUpdate(ctx context.Context, uuids []string) ([]quota.Reservation, error) {
	return r.ListReservations(ctx, uuids)
}

func (r *memQuotas) ListExpiredReservations(ctx context.Context, before time.Time, limit int) ([]quota.Reservation, error) {
	out := r.reservationsWhere(func(res quota.Reservation) bool { return res.Expire.Before(before) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memQuotas) DeleteReservation(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, res := range r.s.reservations {
		if res.ID == id {
			delete(r.s.reservations, key)
		}
	}
	return nil
}

func (r *memQuotas) WithTx(tx *gorm.DB) repository.QuotaRepo { return r }

// --------------------- collaborators ---------------------

// fakeCounter reports fixed usage and can fail a number of times first.
type fakeCounter struct {
	mu       sync.Mutex
	calls    int
	failures int
	err      error
	usage    map[string]int
}

func (c *fakeCounter) ActualUsage(ctx context.Context, projectID, resource string) (map[string]int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.failures > 0 {
		c.failures--
		return nil, c.err
	}
	out := map[string]int{}
	for k, v := range c.usage {
		out[k] = v
	}
	return out, nil
}

func (c *fakeCounter) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// fakeAgent records handshakes. attachErr makes every attach fail.
type fakeAgent struct {
	mu        sync.Mutex
	attachErr error
	detachErr error
	attached  []string
	detached  []string
}

func (a *fakeAgent) Attach(ctx context.Context, target agent.BindTarget) (attach.Handle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.attachErr != nil {
		return attach.Handle{}, a.attachErr
	}
	a.attached = append(a.attached, target.ARQUUID)
	return attach.NewPCIHandle(attach.PCIAddress{Bus: 0x5e, Function: uint8(len(a.attached) % 8)}), nil
}

func (a *fakeAgent) Detach(ctx context.Context, target agent.BindTarget, handle attach.Handle) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detached = append(a.detached, target.ARQUUID)
	return a.detachErr
}

func (a *fakeAgent) Detached() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.detached...)
}

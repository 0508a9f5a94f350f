package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/domain/entity"
	"github.com/prospecta/prospecta-api/pkg/pagination"
)

// In-memory repository fakes backing the service tests.

type fakeLeadRepo struct {
	mu        sync.Mutex
	leads     map[uuid.UUID]*entity.Lead
	stageType map[uuid.UUID]string // stage id -> type, for ListByStageType
	createErr error
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{
		leads:     make(map[uuid.UUID]*entity.Lead),
		stageType: make(map[uuid.UUID]string),
	}
}

func (r *fakeLeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	copied := *lead
	r.leads[lead.ID] = &copied
	return nil
}

func (r *fakeLeadRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[id]
	if !ok {
		return nil, nil
	}
	copied := *lead
	return &copied, nil
}

func (r *fakeLeadRepo) Save(ctx context.Context, lead *entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *lead
	r.leads[lead.ID] = &copied
	return nil
}

func (r *fakeLeadRepo) List(ctx context.Context, ownerID uuid.UUID, params *pagination.PaginationParams, search string, skipOwnerFilter bool) ([]entity.Lead, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Lead
	for _, lead := range r.leads {
		if !skipOwnerFilter && lead.OwnerID != ownerID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(lead.Name), strings.ToLower(search)) {
			continue
		}
		out = append(out, *lead)
	}
	return out, int64(len(out)), nil
}

func (r *fakeLeadRepo) ListAll(ctx context.Context) ([]entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		out = append(out, *lead)
	}
	return out, nil
}

func (r *fakeLeadRepo) ListByStageType(ctx context.Context, stageType string) ([]entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Lead
	for _, lead := range r.leads {
		if r.stageType[lead.StatusID] == stageType {
			out = append(out, *lead)
		}
	}
	return out, nil
}

func (r *fakeLeadRepo) CountByStage(ctx context.Context, stageID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, lead := range r.leads {
		if lead.StatusID == stageID {
			n++
		}
	}
	return n, nil
}

func (r *fakeLeadRepo) CountByTag(ctx context.Context, tagID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, lead := range r.leads {
		for _, id := range lead.TagIDs {
			if id == tagID {
				n++
				break
			}
		}
	}
	return n, nil
}

func (r *fakeLeadRepo) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, lead := range r.leads {
		for _, id := range lead.ProductIDs {
			if id == productID {
				n++
				break
			}
		}
	}
	return n, nil
}

func (r *fakeLeadRepo) CountByProvider(ctx context.Context, providerID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, lead := range r.leads {
		if lead.ProviderID != nil && *lead.ProviderID == providerID {
			n++
		}
	}
	return n, nil
}

func (r *fakeLeadRepo) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, lead := range r.leads {
		if lead.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

type fakeStageRepo struct {
	stages []entity.Stage
}

func (r *fakeStageRepo) Create(ctx context.Context, stage *entity.Stage) error {
	if stage.ID == uuid.Nil {
		stage.ID = uuid.New()
	}
	r.stages = append(r.stages, *stage)
	return nil
}

func (r *fakeStageRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Stage, error) {
	for i := range r.stages {
		if r.stages[i].ID == id {
			copied := r.stages[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeStageRepo) GetByName(ctx context.Context, name string) (*entity.Stage, error) {
	for i := range r.stages {
		if r.stages[i].Name == name {
			copied := r.stages[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeStageRepo) Update(ctx context.Context, stage *entity.Stage) error {
	for i := range r.stages {
		if r.stages[i].ID == stage.ID {
			r.stages[i] = *stage
			return nil
		}
	}
	return nil
}

func (r *fakeStageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range r.stages {
		if r.stages[i].ID == id {
			r.stages = append(r.stages[:i], r.stages[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeStageRepo) List(ctx context.Context) ([]entity.Stage, error) {
	out := make([]entity.Stage, len(r.stages))
	copy(out, r.stages)
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fakeStageRepo) Reorder(ctx context.Context, orderedIDs []uuid.UUID) error {
	for pos, id := range orderedIDs {
		for i := range r.stages {
			if r.stages[i].ID == id {
				r.stages[i].Position = pos + 1
			}
		}
	}
	return nil
}

type fakeTagRepo struct {
	tags []entity.Tag
}

func (r *fakeTagRepo) Create(ctx context.Context, tag *entity.Tag) error {
	if tag.ID == uuid.Nil {
		tag.ID = uuid.New()
	}
	r.tags = append(r.tags, *tag)
	return nil
}

func (r *fakeTagRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error) {
	for i := range r.tags {
		if r.tags[i].ID == id {
			copied := r.tags[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeTagRepo) Update(ctx context.Context, tag *entity.Tag) error {
	for i := range r.tags {
		if r.tags[i].ID == tag.ID {
			r.tags[i] = *tag
			return nil
		}
	}
	return nil
}

func (r *fakeTagRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range r.tags {
		if r.tags[i].ID == id {
			r.tags = append(r.tags[:i], r.tags[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeTagRepo) List(ctx context.Context) ([]entity.Tag, error) {
	out := make([]entity.Tag, len(r.tags))
	copy(out, r.tags)
	return out, nil
}

func (r *fakeTagRepo) ListByStage(ctx context.Context, stageID uuid.UUID) ([]entity.Tag, error) {
	var out []entity.Tag
	for _, tag := range r.tags {
		if tag.StageID == stageID {
			out = append(out, tag)
		}
	}
	return out, nil
}

func (r *fakeTagRepo) CountByStage(ctx context.Context, stageID uuid.UUID) (int64, error) {
	var n int64
	for _, tag := range r.tags {
		if tag.StageID == stageID {
			n++
		}
	}
	return n, nil
}

type fakeProductRepo struct {
	products []entity.Product
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.products = append(r.products, *product)
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			copied := r.products[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	for i := range r.products {
		if r.products[i].Name == name {
			copied := r.products[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	for i := range r.products {
		if r.products[i].ID == product.ID {
			r.products[i] = *product
			return nil
		}
	}
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context) ([]entity.Product, error) {
	out := make([]entity.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

type fakeProviderRepo struct {
	providers []entity.Provider
}

func (r *fakeProviderRepo) Create(ctx context.Context, provider *entity.Provider) error {
	if provider.ID == uuid.Nil {
		provider.ID = uuid.New()
	}
	r.providers = append(r.providers, *provider)
	return nil
}

func (r *fakeProviderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error) {
	for i := range r.providers {
		if r.providers[i].ID == id {
			copied := r.providers[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeProviderRepo) GetByName(ctx context.Context, name string) (*entity.Provider, error) {
	for i := range r.providers {
		if r.providers[i].Name == name {
			copied := r.providers[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeProviderRepo) Update(ctx context.Context, provider *entity.Provider) error {
	for i := range r.providers {
		if r.providers[i].ID == provider.ID {
			r.providers[i] = *provider
			return nil
		}
	}
	return nil
}

func (r *fakeProviderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range r.providers {
		if r.providers[i].ID == id {
			r.providers = append(r.providers[:i], r.providers[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeProviderRepo) List(ctx context.Context) ([]entity.Provider, error) {
	out := make([]entity.Provider, len(r.providers))
	copy(out, r.providers)
	return out, nil
}

type fakeUserRepo struct {
	users []entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			copied := r.users[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for i := range r.users {
		if r.users[i].Email == email {
			copied := r.users[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	for i := range r.users {
		if r.users[i].ID == user.ID {
			r.users[i] = *user
			return nil
		}
	}
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range r.users {
		if r.users[i].ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]entity.User, error) {
	out := make([]entity.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

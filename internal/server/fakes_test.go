package server

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"comunidad/pkg/types"
)

var errStoreDown = errors.New("connection refused")

// memStore is an in-memory stand-in for every repository the service uses.
// Joins and orderings follow the SQL the real repositories run.
type memStore struct {
	mu sync.Mutex

	clock time.Time

	participants []types.Participant
	categories   []types.Category
	questions    []types.Question
	needs        []types.Need

	// fail makes every call return errStoreDown.
	fail bool
	// panics makes the health round trip panic.
	panics bool

	createNeedCalls  int
	upsertCalls      int
	latestNeedsLimit uint64
	responsesFilter  types.ResponseFilter
}

func newMemStore() *memStore {
	return &memStore{clock: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func seededMemStore() *memStore {
	m := newMemStore()
	m.addCategory("Salud", "salud")
	m.addCategory("Educación", "educacion")
	m.addCategory("Empleo", "empleo")
	m.addQuestion(1, "¿Cuál crees que es la mayor necesidad en tu comunidad?")
	m.addQuestion(2, "¿Qué acción concreta propondrías para mejorar esa situación?")
	return m
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) addCategory(name, slug string) types.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := types.Category{ID: int64(len(m.categories) + 1), Name: name, Slug: slug}
	m.categories = append(m.categories, c)
	return c
}

func (m *memStore) addQuestion(id int64, prompt string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions = append(m.questions, types.Question{ID: id, Prompt: prompt, CreatedAt: m.tick()})
}

func (m *memStore) ParticipantByEmail(_ context.Context, email string) (*types.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errStoreDown
	}

	for _, p := range m.participants {
		if p.Email == email {
			return &p, nil
		}
	}
	return nil, types.ErrParticipantNotFound
}

func (m *memStore) UpsertParticipant(_ context.Context, participant *types.Participant) (*types.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertCalls++
	if m.fail {
		return nil, errStoreDown
	}

	for i, p := range m.participants {
		if p.Email != participant.Email {
			continue
		}
		updated := *participant
		updated.ID = p.ID
		updated.CreatedAt = p.CreatedAt
		m.participants[i] = updated
		return &updated, nil
	}

	created := *participant
	created.ID = int64(len(m.participants) + 1)
	created.CreatedAt = m.tick()
	m.participants = append(m.participants, created)
	return &created, nil
}

func (m *memStore) Categories(_ context.Context) ([]*types.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errStoreDown
	}

	out := make([]*types.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) CategoryBySlug(_ context.Context, slug string) (*types.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errStoreDown
	}

	for _, c := range m.categories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, types.ErrCategoryNotFound
}

func (m *memStore) Questions(_ context.Context) ([]*types.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errStoreDown
	}

	out := make([]*types.Question, 0, len(m.questions))
	for _, q := range m.questions {
		out = append(out, &q)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) CreateNeed(_ context.Context, need *types.Need) (*types.Need, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createNeedCalls++
	if m.fail {
		return nil, errStoreDown
	}
	if m.questionLocked(need.QuestionID) == nil {
		return nil, fmt.Errorf("failed to create need: foreign key violation on question_id %d", need.QuestionID)
	}

	created := *need
	created.ID = int64(len(m.needs) + 1)
	created.CreatedAt = m.tick()
	m.needs = append(m.needs, created)
	return &created, nil
}

func (m *memStore) LatestNeeds(_ context.Context, limit uint64) ([]*types.Need, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latestNeedsLimit = limit
	if m.fail {
		return nil, errStoreDown
	}

	out := make([]*types.Need, 0, len(m.needs))
	for i := len(m.needs) - 1; i >= 0 && uint64(len(out)) < limit; i-- {
		n := m.needs[i]
		out = append(out, &n)
	}
	return out, nil
}

func (m *memStore) Responses(_ context.Context, filter types.ResponseFilter) ([]*types.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responsesFilter = filter
	if m.fail {
		return nil, errStoreDown
	}

	out := make([]*types.Response, 0)
	for i := len(m.needs) - 1; i >= 0 && uint64(len(out)) < filter.Limit; i-- {
		n := m.needs[i]
		if filter.QuestionID != nil && n.QuestionID != *filter.QuestionID {
			continue
		}

		participant := m.participantLocked(n.ParticipantID)
		question := m.questionLocked(n.QuestionID)
		row := &types.Response{
			ID:               n.ID,
			QuestionID:       n.QuestionID,
			Description:      n.Description,
			CreatedAt:        n.CreatedAt,
			Question:         question.Prompt,
			ParticipantName:  participant.Name,
			ParticipantEmail: participant.Email,
		}
		if n.CategoryID != nil {
			if c := m.categoryLocked(*n.CategoryID); c != nil {
				row.CategoryName = &c.Name
				row.CategorySlug = &c.Slug
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (m *memStore) CategoryStats(_ context.Context) ([]*types.CategoryStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errStoreDown
	}

	out := make([]*types.CategoryStat, 0, len(m.categories))
	for _, c := range m.categories {
		stat := &types.CategoryStat{Name: c.Name, Slug: c.Slug}
		for _, n := range m.needs {
			if n.CategoryID != nil && *n.CategoryID == c.ID {
				stat.Count++
			}
		}
		out = append(out, stat)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *memStore) Now(_ context.Context) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.panics {
		panic("health check exploded")
	}
	if m.fail {
		return time.Time{}, errStoreDown
	}
	return m.clock, nil
}

func (m *memStore) participantLocked(id int64) *types.Participant {
	for _, p := range m.participants {
		if p.ID == id {
			return &p
		}
	}
	return nil
}

func (m *memStore) questionLocked(id int64) *types.Question {
	for _, q := range m.questions {
		if q.ID == id {
			return &q
		}
	}
	return nil
}

func (m *memStore) categoryLocked(id int64) *types.Category {
	for _, c := range m.categories {
		if c.ID == id {
			return &c
		}
	}
	return nil
}

// Package database holds the process-memory store for creators, matches,
// collaborations and messages. Nothing survives a restart.
package database

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"mentionmates/models"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already in use")
)

// collection keeps records keyed by id and remembers insertion order, so
// listings are deterministic and ties sort in encounter order. Records pass
// through clone on the way in and out, so stored values never share memory
// with callers.
type collection[T any] struct {
	items map[string]*T
	order []string
	clone func(T) T
}

func newCollection[T any](clone func(T) T) collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return collection[T]{items: make(map[string]*T), clone: clone}
}

// put stores v under id and returns a copy of what was stored.
func (c *collection[T]) put(id string, v T) T {
	if _, ok := c.items[id]; !ok {
		c.order = append(c.order, id)
	}
	stored := c.clone(v)
	c.items[id] = &stored
	return c.clone(stored)
}

// get returns the stored record itself. Callers must hold the store lock and
// must not hand the pointer out.
func (c *collection[T]) get(id string) (*T, bool) {
	v, ok := c.items[id]
	return v, ok
}

func (c *collection[T]) load(id string) (T, bool) {
	v, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.clone(*v), true
}

// filter returns copies of every record matching keep, in insertion order.
func (c *collection[T]) filter(keep func(*T) bool) []T {
	out := make([]T, 0)
	for _, id := range c.order {
		v := c.items[id]
		if keep == nil || keep(v) {
			out = append(out, c.clone(*v))
		}
	}
	return out
}

type Option func(*Store)

// WithClock replaces time.Now as the source of record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store is safe for concurrent use. Construct it once and pass it to every
// component that needs it.
type Store struct {
	mu             sync.RWMutex
	now            func() time.Time
	creators       collection[models.Creator]
	collaborations collection[models.Collaboration]
	messages       collection[models.Message]
	matches        collection[models.Match]
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		now:            time.Now,
		creators:       newCollection(models.Creator.Clone),
		collaborations: newCollection(models.Collaboration.Clone),
		messages:       newCollection[models.Message](nil),
		matches:        newCollection[models.Match](nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newID() string {
	return uuid.NewString()
}

// ===== CREATORS =====

func (s *Store) CreateCreator(in models.NewCreator) (models.Creator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailInUseLocked(in.Email, "") {
		return models.Creator{}, fmt.Errorf("create creator %q: %w", in.Email, ErrEmailTaken)
	}

	creator := models.Creator{
		ID:                newID(),
		Name:              in.Name,
		Email:             in.Email,
		Username:          in.Username,
		Niche:             in.Niche,
		Platform:          in.Platform,
		AudienceSize:      in.AudienceSize,
		AudienceSizeRange: in.AudienceSizeRange,
		Goal:              in.Goal,
		Bio:               in.Bio,
		ProfileImage:      in.ProfileImage,
		IsActive:          true,
		JoinedAt:          s.now(),
	}
	return s.creators.put(creator.ID, creator), nil
}

// insertCreator stores a fully formed creator under its own id. Used for
// seeding fixtures that need stable ids.
func (s *Store) insertCreator(c models.Creator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.creators.get(c.ID); exists {
		return fmt.Errorf("insert creator %q: id already exists", c.ID)
	}
	if s.emailInUseLocked(c.Email, "") {
		return fmt.Errorf("insert creator %q: %w", c.Email, ErrEmailTaken)
	}
	if c.JoinedAt.IsZero() {
		c.JoinedAt = s.now()
	}
	s.creators.put(c.ID, c)
	return nil
}

func (s *Store) emailInUseLocked(email, exceptID string) bool {
	for _, id := range s.creators.order {
		if c := s.creators.items[id]; c.Email == email && c.ID != exceptID {
			return true
		}
	}
	return false
}

func (s *Store) GetCreator(id string) (models.Creator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.creators.load(id)
	if !ok {
		return models.Creator{}, fmt.Errorf("creator %s: %w", id, ErrNotFound)
	}
	return c, nil
}

func (s *Store) GetCreatorByEmail(email string) (models.Creator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := s.creators.filter(func(c *models.Creator) bool { return c.Email == email })
	if len(found) == 0 {
		return models.Creator{}, fmt.Errorf("creator with email %s: %w", email, ErrNotFound)
	}
	return found[0], nil
}

// GetAllCreators returns active creators only.
func (s *Store) GetAllCreators() []models.Creator {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.creators.filter(func(c *models.Creator) bool { return c.IsActive })
}

func (s *Store) GetCreatorsByNiche(niche string) []models.Creator {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.creators.filter(func(c *models.Creator) bool {
		return c.IsActive && c.Niche == niche
	})
}

func (s *Store) UpdateCreator(id string, update models.CreatorUpdate) (models.Creator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, ok := s.creators.load(id)
	if !ok {
		return models.Creator{}, fmt.Errorf("creator %s: %w", id, ErrNotFound)
	}
	if update.Email != nil && s.emailInUseLocked(*update.Email, id) {
		return models.Creator{}, fmt.Errorf("update creator %s: %w", id, ErrEmailTaken)
	}

	update.Apply(&updated)
	return s.creators.put(id, updated), nil
}

// ===== COLLABORATIONS =====

func (s *Store) CreateCollaboration(in models.NewCollaboration) models.Collaboration {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	collab := models.Collaboration{
		ID:          newID(),
		RequesterID: in.RequesterID,
		RecipientID: in.RecipientID,
		Status:      models.CollaborationPending,
		Type:        in.Type,
		Message:     in.Message,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.collaborations.put(collab.ID, collab)
}

// GetCollaborationsByCreator returns collaborations where creatorID is either
// the requester or the recipient.
func (s *Store) GetCollaborationsByCreator(creatorID string) []models.Collaboration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collaborations.filter(func(c *models.Collaboration) bool {
		return c.RequesterID == creatorID || c.RecipientID == creatorID
	})
}

func (s *Store) UpdateCollaborationStatus(id, status string) (models.Collaboration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, ok := s.collaborations.load(id)
	if !ok {
		return models.Collaboration{}, fmt.Errorf("collaboration %s: %w", id, ErrNotFound)
	}

	updated.Status = status
	updated.UpdatedAt = s.now()
	return s.collaborations.put(id, updated), nil
}

// ===== MESSAGES =====

func (s *Store) CreateMessage(in models.NewMessage) (models.Message, error) {
	if in.SenderID == "" || in.RecipientID == "" {
		return models.Message{}, errors.New("create message: sender and recipient are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := models.Message{
		ID:          newID(),
		SenderID:    in.SenderID,
		RecipientID: in.RecipientID,
		Content:     in.Content,
		IsRead:      false,
		CreatedAt:   s.now(),
	}
	return s.messages.put(msg.ID, msg), nil
}

// GetMessagesBetween returns the conversation between two creators in both
// directions, oldest first.
func (s *Store) GetMessagesBetween(creator1ID, creator2ID string) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conversation := s.messages.filter(func(m *models.Message) bool {
		return (m.SenderID == creator1ID && m.RecipientID == creator2ID) ||
			(m.SenderID == creator2ID && m.RecipientID == creator1ID)
	})
	sort.SliceStable(conversation, func(i, j int) bool {
		return conversation[i].CreatedAt.Before(conversation[j].CreatedAt)
	})
	return conversation
}

func (s *Store) MarkMessageRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.messages.get(id)
	if !ok {
		return fmt.Errorf("message %s: %w", id, ErrNotFound)
	}
	msg.IsRead = true
	return nil
}

// ===== MATCHES =====

func (s *Store) CreateMatch(in models.NewMatch) (models.Match, error) {
	if in.Score < 0 || in.Score > 100 {
		return models.Match{}, fmt.Errorf("create match %s -> %s: score %d out of range", in.CreatorID, in.MatchedCreatorID, in.Score)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	match := models.Match{
		ID:               newID(),
		CreatorID:        in.CreatorID,
		MatchedCreatorID: in.MatchedCreatorID,
		Score:            in.Score,
		CreatedAt:        s.now(),
	}
	return s.matches.put(match.ID, match), nil
}

func (s *Store) GetMatchesForCreator(creatorID string) []models.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.matches.filter(func(m *models.Match) bool { return m.CreatorID == creatorID })
}

// GetTopMatchesForCreator joins each match to its target creator, drops the
// ones whose target no longer resolves, and returns at most limit of them,
// best score first. Equal scores keep the order they were generated in.
func (s *Store) GetTopMatchesForCreator(creatorID string, limit int) []models.MatchWithCreator {
	s.mu.RLock()
	defer s.mu.RUnlock()

	joined := make([]models.MatchWithCreator, 0)
	for _, m := range s.matches.filter(func(m *models.Match) bool { return m.CreatorID == creatorID }) {
		target, ok := s.creators.load(m.MatchedCreatorID)
		if !ok {
			continue
		}
		joined = append(joined, models.MatchWithCreator{Match: m, Creator: target})
	}

	sort.SliceStable(joined, func(i, j int) bool {
		return joined[i].Score > joined[j].Score
	})

	if limit < 0 {
		limit = 0
	}
	if len(joined) > limit {
		joined = joined[:limit]
	}
	return joined
}

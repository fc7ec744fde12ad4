// Package store owns the set of conversations, the active-conversation
// pointer, and their durable persistence.
//
// Every mutating operation writes through the injected Persistence port
// synchronously. A failed write surfaces as a *chat.PersistenceError, but
// the in-memory mutation stands: for the running process, memory is the
// source of truth.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/prochat/prochat/internal/chat"
)

// Store is the conversation store. All methods are safe for concurrent
// use.
type Store struct {
	mu            sync.Mutex
	conversations map[string]*chat.Conversation
	currentID     string
	persist       Persistence
	now           func() time.Time
}

// Open loads the persisted snapshot and returns a ready store.
func Open(persist Persistence) (*Store, error) {
	s := &Store{
		conversations: make(map[string]*chat.Conversation),
		persist:       persist,
		now:           time.Now,
	}

	snap, err := persist.Load()
	if err != nil {
		return nil, err
	}
	if snap != nil {
		for _, conv := range snap.Conversations {
			s.conversations[conv.ID] = conv
		}
		if _, ok := s.conversations[snap.CurrentID]; ok {
			s.currentID = snap.CurrentID
		}
	}
	return s, nil
}

// SetClock replaces the store's time source.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Create allocates a new conversation, makes it current, and persists.
// The new conversation is the newest by UpdatedAt.
func (s *Store) Create() (*chat.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := chat.NewConversation(s.now())
	s.conversations[conv.ID] = conv
	s.currentID = conv.ID
	return copyConversation(conv), s.save()
}

// Get returns a copy of the conversation.
func (s *Store) Get(id string) (*chat.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		return nil, &chat.NotFoundError{ID: id}
	}
	return copyConversation(conv), nil
}

// SwitchTo makes id the current conversation and returns its full message
// history. Only the pointer changes; UpdatedAt is untouched.
func (s *Store) SwitchTo(id string) (*chat.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		return nil, &chat.NotFoundError{ID: id}
	}
	s.currentID = id
	return copyConversation(conv), s.save()
}

// Append appends a message, bumps UpdatedAt, derives the title when this
// is the first user message on a default-titled conversation, and
// persists.
func (s *Store) Append(id string, role chat.Role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		return &chat.NotFoundError{ID: id}
	}
	conv.AddMessage(role, content, s.now())
	return s.save()
}

// Rename assigns a user title, disabling auto-derivation forever, and
// persists.
func (s *Store) Rename(id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		return &chat.NotFoundError{ID: id}
	}
	conv.Rename(title, s.now())
	return s.save()
}

// Delete removes the conversation. When it was current, the pointer moves
// to the next-older sibling in listing order, else the list head, else
// none.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[id]; !ok {
		return &chat.NotFoundError{ID: id}
	}

	ordered := s.ordered()
	delete(s.conversations, id)

	if s.currentID == id {
		s.currentID = ""
		for i, conv := range ordered {
			if conv.ID != id {
				continue
			}
			if i+1 < len(ordered) {
				s.currentID = ordered[i+1].ID
			} else if len(ordered) > 1 {
				s.currentID = ordered[0].ID
			}
			break
		}
	}
	return s.save()
}

// Clear empties the conversation's messages and restores the default
// title. The current pointer is unaffected.
func (s *Store) Clear(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		return &chat.NotFoundError{ID: id}
	}
	conv.Reset(s.now())
	return s.save()
}

// List returns copies of all conversations ordered by UpdatedAt
// descending, ties broken by id. This is the only supported listing
// order.
func (s *Store) List() []*chat.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*chat.Conversation, 0, len(s.conversations))
	for _, conv := range s.ordered() {
		out = append(out, copyConversation(conv))
	}
	return out
}

// CurrentID returns the current conversation id, or "" when the store is
// empty.
func (s *Store) CurrentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

// Current returns a copy of the current conversation, or nil when none
// is set.
func (s *Store) Current() *chat.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[s.currentID]
	if !ok {
		return nil
	}
	return copyConversation(conv)
}

// BeginSend atomically marks the conversation pending. At most one send
// per conversation may be in flight.
func (s *Store) BeginSend(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		return &chat.NotFoundError{ID: id}
	}
	if conv.Pending {
		return &chat.ConcurrentSendError{ConversationID: id}
	}
	conv.Pending = true
	return nil
}

// EndSend clears the pending flag. Pending is transient state, so nothing
// is persisted.
func (s *Store) EndSend(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conv, ok := s.conversations[id]; ok {
		conv.Pending = false
	}
}

// DropLastAssistant removes the trailing assistant message, if present,
// and persists. Used by retry; error and success replies are stripped
// alike.
func (s *Store) DropLastAssistant(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		return &chat.NotFoundError{ID: id}
	}
	if !conv.DropLastAssistant() {
		return nil
	}
	return s.save()
}

// ordered returns the live conversations sorted by UpdatedAt descending,
// ties broken by id. Caller must hold the lock.
func (s *Store) ordered() []*chat.Conversation {
	out := make([]*chat.Conversation, 0, len(s.conversations))
	for _, conv := range s.conversations {
		out = append(out, conv)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// save writes the snapshot through the persistence port. Caller must hold
// the lock. Failures come back as *chat.PersistenceError; the in-memory
// state keeps the mutation either way.
func (s *Store) save() error {
	snap := &Snapshot{
		Conversations: s.ordered(),
		CurrentID:     s.currentID,
	}
	if err := s.persist.Save(snap); err != nil {
		return &chat.PersistenceError{Err: err}
	}
	return nil
}

func copyConversation(conv *chat.Conversation) *chat.Conversation {
	out := *conv
	out.Messages = make([]chat.Message, len(conv.Messages))
	copy(out.Messages, conv.Messages)
	return &out
}

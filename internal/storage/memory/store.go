// Package memory はメモリ上にのみ保持するイベントストアを提供する
package memory

import (
	"github.com/sanosuguru/go-event-registration/internal/domain/event"
)

// Store はマップを媒体とするイベントストア
// 永続化能力を持たないため event.Persistent は実装しない
type Store struct {
	events map[int]*event.Event
	seq    int
}

// NewStore は空のメモリストアを作成する
func NewStore() *Store {
	return &Store{
		events: map[int]*event.Event{},
		seq:    1,
	}
}

// NextID は次のIDを採番する
func (s *Store) NextID() int {
	id := s.seq
	s.seq++
	return id
}

// Put はイベントを挿入または置換する
func (s *Store) Put(e *event.Event) {
	s.events[e.ID] = e
}

// Get はIDからイベントを取得する
func (s *Store) Get(id int) (*event.Event, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, event.ErrEventNotFound
	}
	return e, nil
}

// ListAll は全イベントを返す（順序は未規定）
func (s *Store) ListAll() []*event.Event {
	out := make([]*event.Event, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e)
	}
	return out
}

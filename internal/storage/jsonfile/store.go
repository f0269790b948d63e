// Package jsonfile はJSONスナップショットファイルを媒体とするイベントストアを提供する
// ファイルは起動時に一括で読み込み、終了時に一括で書き出す（部分更新はしない）
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sanosuguru/go-event-registration/internal/domain/event"
)

// Store はJSONファイルを媒体とするイベントストア
// event.Persistent を実装する
type Store struct {
	path   string
	events map[int]*event.Event
	seq    int
}

// NewStore は指定パスのスナップショットを媒体とするストアを作成する
func NewStore(path string) *Store {
	return &Store{
		path:   path,
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

// Load はスナップショットの内容でメモリ上の状態を全置換する
// ファイルが存在しない場合はシーケンス1の空ストアとして初期化する
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.seq = 1
		s.events = map[int]*event.Event{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("スナップショットの読み込みに失敗: %w", err)
	}

	var snap event.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("スナップショットの解析に失敗: %w", err)
	}
	if snap.Seq < 1 {
		snap.Seq = 1
	}

	events := make(map[int]*event.Event, len(snap.Events))
	for _, e := range snap.Events {
		events[e.ID] = e
	}
	s.seq = snap.Seq
	s.events = events
	return nil
}

// Save はメモリ上の全状態をスナップショットへ書き出す
func (s *Store) Save() error {
	snap := event.Snapshot{
		Seq:    s.seq,
		Events: make([]*event.Event, 0, len(s.events)),
	}
	for _, e := range s.events {
		snap.Events = append(snap.Events, e)
	}
	// スナップショットの差分を安定させるためID順で出力する
	sort.Slice(snap.Events, func(i, j int) bool { return snap.Events[i].ID < snap.Events[j].ID })

	data, err := json.MarshalIndent(&snap, "", "  ")
	if err != nil {
		return fmt.Errorf("スナップショットの生成に失敗: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("スナップショット保存先の作成に失敗: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("スナップショットの書き込みに失敗: %w", err)
	}
	return nil
}

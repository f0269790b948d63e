package application

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/sanosuguru/go-event-registration/internal/domain/event"
	"github.com/sanosuguru/go-event-registration/internal/domain/participant"
	"github.com/sanosuguru/go-event-registration/internal/pkg/metrics"
)

// RegistrationService はイベント登録のユースケースを提供するシステム層
// 整合性の単位はEventエンティティであり、本サービスはID解決・境界バリデーション・
// 変更後の再保存のみを担う
type RegistrationService struct {
	store   event.Store
	metrics *metrics.Metrics
}

// NewRegistrationService は新しいRegistrationServiceを作成する
// m はnilでもよい（メトリクスを記録しない）
func NewRegistrationService(store event.Store, m *metrics.Metrics) *RegistrationService {
	return &RegistrationService{store: store, metrics: m}
}

// CreateEventInput はイベント作成の入力
type CreateEventInput struct {
	Name        string
	Date        time.Time
	Location    string
	MaxCapacity int
	Category    string
	Price       float64
	Kind        event.Kind

	// Kind == KindWorkshop のときのみ使用
	RequiredMaterial string
	// Kind == KindLecture のときのみ使用
	Speaker string
}

// CreateEvent は入力を検証し、新しいIDで種別に応じたイベントを作成して保存する
// 開催日が今日より前、定員が0以下、料金が負の場合は作成しない
func (s *RegistrationService) CreateEvent(ctx context.Context, input CreateEventInput) (*event.Event, error) {
	if input.MaxCapacity <= 0 {
		return nil, event.ErrInvalidCapacity
	}
	if input.Price < 0 {
		return nil, event.ErrInvalidPrice
	}
	if truncateToDate(input.Date).Before(truncateToDate(time.Now())) {
		return nil, event.ErrPastEventDate
	}

	id := s.store.NextID()
	var e *event.Event
	switch input.Kind {
	case event.KindWorkshop:
		e = event.NewWorkshop(id, input.Name, input.Date, input.Location, input.MaxCapacity, input.Category, input.Price, input.RequiredMaterial)
	case event.KindLecture:
		e = event.NewLecture(id, input.Name, input.Date, input.Location, input.MaxCapacity, input.Category, input.Price, input.Speaker)
	default:
		e = event.New(id, input.Name, input.Date, input.Location, input.MaxCapacity, input.Category, input.Price)
	}
	s.store.Put(e)

	if s.metrics != nil {
		s.metrics.EventsCreatedTotal.WithLabelValues(string(e.Kind)).Inc()
	}
	return e, nil
}

// GetEvent はIDからイベントを取得する
func (s *RegistrationService) GetEvent(ctx context.Context, id int) (*event.Event, error) {
	return s.store.Get(id)
}

// ListEvents は全イベントをID順で返す
func (s *RegistrationService) ListEvents(ctx context.Context) []*event.Event {
	events := s.store.ListAll()
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events
}

// Enroll は参加者をイベントに登録する
func (s *RegistrationService) Enroll(ctx context.Context, eventID int, name, email string) error {
	e, err := s.store.Get(eventID)
	if err != nil {
		s.recordEnrollment("not_found")
		return err
	}
	if err := e.Enroll(participant.New(name, email)); err != nil {
		s.recordEnrollment(enrollmentStatus(err))
		return err
	}
	s.store.Put(e)
	s.recordEnrollment("success")
	return nil
}

// CancelEnrollment は登録を取り消す
func (s *RegistrationService) CancelEnrollment(ctx context.Context, eventID int, email string) error {
	e, err := s.store.Get(eventID)
	if err != nil {
		s.recordCancellation("not_found")
		return err
	}
	if err := e.CancelEnrollment(email); err != nil {
		s.recordCancellation("not_enrolled")
		return err
	}
	s.store.Put(e)
	s.recordCancellation("success")
	return nil
}

// CheckIn は出席を記録する
// 既にチェックイン済みの場合は already=true の成功を返す
func (s *RegistrationService) CheckIn(ctx context.Context, eventID int, email string) (already bool, err error) {
	e, err := s.store.Get(eventID)
	if err != nil {
		s.recordCheckIn("not_found")
		return false, err
	}
	already, err = e.CheckIn(email)
	if err != nil {
		s.recordCheckIn("not_enrolled")
		return false, err
	}
	if already {
		s.recordCheckIn("repeated")
		return true, nil
	}
	s.store.Put(e)
	s.recordCheckIn("success")
	return false, nil
}

// TotalEnrolled は指定イベントの登録者数を返す
func (s *RegistrationService) TotalEnrolled(ctx context.Context, eventID int) (int, error) {
	e, err := s.store.Get(eventID)
	if err != nil {
		return 0, err
	}
	return e.EnrolledCount(), nil
}

// Revenue は指定イベントの売上を返す
func (s *RegistrationService) Revenue(ctx context.Context, eventID int) (float64, error) {
	e, err := s.store.Get(eventID)
	if err != nil {
		return 0, err
	}
	return e.TotalRevenue(), nil
}

// EventsWithAvailability は空き枠のあるイベントをID順で返す
func (s *RegistrationService) EventsWithAvailability(ctx context.Context) []*event.Event {
	events := s.ListEvents(ctx)
	out := make([]*event.Event, 0, len(events))
	for _, e := range events {
		if e.AvailableSlots() > 0 {
			out = append(out, e)
		}
	}
	return out
}

func (s *RegistrationService) recordEnrollment(status string) {
	if s.metrics != nil {
		s.metrics.EnrollmentsTotal.WithLabelValues(status).Inc()
	}
}

func (s *RegistrationService) recordCancellation(status string) {
	if s.metrics != nil {
		s.metrics.CancellationsTotal.WithLabelValues(status).Inc()
	}
}

func (s *RegistrationService) recordCheckIn(status string) {
	if s.metrics != nil {
		s.metrics.CheckInsTotal.WithLabelValues(status).Inc()
	}
}

func enrollmentStatus(err error) string {
	switch {
	case errors.Is(err, event.ErrEventFull):
		return "full"
	case errors.Is(err, event.ErrAlreadyEnrolled):
		return "duplicate"
	default:
		return "error"
	}
}

// truncateToDate は時刻部分を落とし、カレンダー日付をUTCに正規化する
// 入力日付（UTCで解析される）とtime.Now()（ローカル）のLocationが異なっても
// 同じカレンダー日付は同じ時刻に写る
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

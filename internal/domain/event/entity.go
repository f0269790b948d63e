package event

import (
	"fmt"
	"sort"
	"time"

	"github.com/sanosuguru/go-event-registration/internal/domain/participant"
)

// Kind はイベントの種別を表す
type Kind string

const (
	KindEvent    Kind = "event"
	KindWorkshop Kind = "workshop"
	KindLecture  Kind = "lecture"
)

// DateLayout は開催日の表記形式（時刻を持たない暦日）
const DateLayout = "2006-01-02"

// Event はイベントエンティティを表す
// 種別（event / workshop / lecture）はタグで区別し、種別固有の属性は
// 該当する種別のときだけ意味を持つ
type Event struct {
	ID          int
	Name        string
	Date        time.Time
	Location    string
	MaxCapacity int
	Category    string
	Price       float64
	Kind        Kind

	// Kind == KindWorkshop のときのみ有効
	RequiredMaterial string
	// Kind == KindLecture のときのみ有効
	Speaker string

	// enrolledEmails は enrolled から導出される集合で、両者は常に同時に更新する
	enrolled       []participant.Participant
	enrolledEmails map[string]struct{}
	checkedIn      map[string]struct{}
}

func newEvent(id int, name string, date time.Time, location string, maxCapacity int, category string, price float64, kind Kind) *Event {
	return &Event{
		ID:             id,
		Name:           name,
		Date:           date,
		Location:       location,
		MaxCapacity:    maxCapacity,
		Category:       category,
		Price:          price,
		Kind:           kind,
		enrolled:       []participant.Participant{},
		enrolledEmails: map[string]struct{}{},
		checkedIn:      map[string]struct{}{},
	}
}

// New は新しい基本イベントを作成する
func New(id int, name string, date time.Time, location string, maxCapacity int, category string, price float64) *Event {
	return newEvent(id, name, date, location, maxCapacity, category, price, KindEvent)
}

// NewWorkshop は新しいワークショップを作成する
func NewWorkshop(id int, name string, date time.Time, location string, maxCapacity int, category string, price float64, requiredMaterial string) *Event {
	e := newEvent(id, name, date, location, maxCapacity, category, price, KindWorkshop)
	e.RequiredMaterial = requiredMaterial
	return e
}

// NewLecture は新しい講演を作成する
func NewLecture(id int, name string, date time.Time, location string, maxCapacity int, category string, price float64, speaker string) *Event {
	e := newEvent(id, name, date, location, maxCapacity, category, price, KindLecture)
	e.Speaker = speaker
	return e
}

// AvailableSlots は残りの空き枠数を返す
func (e *Event) AvailableSlots() int {
	return e.MaxCapacity - len(e.enrolled)
}

// IsEnrolled は指定メールアドレスが登録済みかを返す（大文字小文字を区別しない）
func (e *Event) IsEnrolled(email string) bool {
	_, ok := e.enrolledEmails[participant.NormalizeEmail(email)]
	return ok
}

// Enroll は参加者を登録する
// 事前条件は満席チェック、重複チェックの順で判定する
func (e *Event) Enroll(p participant.Participant) error {
	if e.AvailableSlots() <= 0 {
		return ErrEventFull
	}
	if _, ok := e.enrolledEmails[p.Email]; ok {
		return ErrAlreadyEnrolled
	}
	e.enrolled = append(e.enrolled, p)
	e.enrolledEmails[p.Email] = struct{}{}
	return nil
}

// CancelEnrollment は登録を取り消し、枠を解放する
// チェックイン済みであってもその記録ごと破棄する
func (e *Event) CancelEnrollment(email string) error {
	email = participant.NormalizeEmail(email)
	if _, ok := e.enrolledEmails[email]; !ok {
		return ErrNotEnrolled
	}
	delete(e.enrolledEmails, email)
	delete(e.checkedIn, email)
	for i, p := range e.enrolled {
		if p.Email == email {
			e.enrolled = append(e.enrolled[:i], e.enrolled[i+1:]...)
			break
		}
	}
	return nil
}

// CheckIn は出席を記録する
// 既にチェックイン済みの場合はエラーではなく already=true の成功として扱う（冪等）
func (e *Event) CheckIn(email string) (already bool, err error) {
	email = participant.NormalizeEmail(email)
	if _, ok := e.enrolledEmails[email]; !ok {
		return false, ErrNotEnrolled
	}
	if _, ok := e.checkedIn[email]; ok {
		return true, nil
	}
	e.checkedIn[email] = struct{}{}
	return false, nil
}

// EnrolledCount は現在の登録者数を返す
func (e *Event) EnrolledCount() int {
	return len(e.enrolled)
}

// CheckedInCount は現在のチェックイン数を返す
func (e *Event) CheckedInCount() int {
	return len(e.checkedIn)
}

// TotalRevenue は現在の登録者数に基づく売上を返す
// 取り消された登録は売上に含まれない
func (e *Event) TotalRevenue() float64 {
	return float64(len(e.enrolled)) * e.Price
}

// Participants は登録者の一覧を登録順のコピーで返す
func (e *Event) Participants() []participant.Participant {
	out := make([]participant.Participant, len(e.enrolled))
	copy(out, e.enrolled)
	return out
}

// CheckedInEmails はチェックイン済みメールアドレスをソート済みで返す
func (e *Event) CheckedInEmails() []string {
	out := make([]string, 0, len(e.checkedIn))
	for email := range e.checkedIn {
		out = append(out, email)
	}
	sort.Strings(out)
	return out
}

// Summary はイベントの概要を1行で返す
func (e *Event) Summary() string {
	s := fmt.Sprintf("[ID %d] %s | %s | %s | 定員: %d | 空き: %d | カテゴリ: %s | 料金: %.2f | 種別: %s",
		e.ID, e.Name, e.Date.Format(DateLayout), e.Location,
		e.MaxCapacity, e.AvailableSlots(), e.Category, e.Price, e.Kind)
	switch e.Kind {
	case KindWorkshop:
		s += fmt.Sprintf(" | 必要教材: %s", e.RequiredMaterial)
	case KindLecture:
		s += fmt.Sprintf(" | 講演者: %s", e.Speaker)
	}
	return s
}

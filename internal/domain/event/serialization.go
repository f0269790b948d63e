package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sanosuguru/go-event-registration/internal/domain/participant"
)

// Snapshot は永続化ドキュメント全体を表す
type Snapshot struct {
	Seq    int      `json:"seq"`
	Events []*Event `json:"events"`
}

type participantRecord struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// eventRecord はイベント1件のワイヤ表現
// required_material / speaker は該当する種別のときのみ出力される
type eventRecord struct {
	Kind             string              `json:"kind"`
	ID               int                 `json:"id"`
	Name             string              `json:"name"`
	Date             string              `json:"date"`
	Location         string              `json:"location"`
	MaxCapacity      int                 `json:"max_capacity"`
	Category         string              `json:"category"`
	Price            float64             `json:"price"`
	Enrolled         []participantRecord `json:"enrolled"`
	CheckedIn        []string            `json:"checked_in"`
	RequiredMaterial *string             `json:"required_material,omitempty"`
	Speaker          *string             `json:"speaker,omitempty"`
}

// MarshalJSON はイベントをワイヤ表現へ変換する
// kind は基本イベントでも必ず出力する
func (e *Event) MarshalJSON() ([]byte, error) {
	rec := eventRecord{
		Kind:        string(e.Kind),
		ID:          e.ID,
		Name:        e.Name,
		Date:        e.Date.Format(DateLayout),
		Location:    e.Location,
		MaxCapacity: e.MaxCapacity,
		Category:    e.Category,
		Price:       e.Price,
		Enrolled:    make([]participantRecord, 0, len(e.enrolled)),
		CheckedIn:   e.CheckedInEmails(),
	}
	for _, p := range e.enrolled {
		rec.Enrolled = append(rec.Enrolled, participantRecord{Name: p.Name, Email: p.Email})
	}
	switch e.Kind {
	case KindWorkshop:
		rec.RequiredMaterial = &e.RequiredMaterial
	case KindLecture:
		rec.Speaker = &e.Speaker
	}
	return json.Marshal(rec)
}

// UnmarshalJSON はワイヤ表現からイベントを復元する
// kind が未指定または未知の場合は基本イベントとして扱う
// 登録メールアドレスの集合は登録者列から導出し、チェックイン集合は配列の内容を
// そのまま復元する
func (e *Event) UnmarshalJSON(data []byte) error {
	var rec eventRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	date, err := time.Parse(DateLayout, rec.Date)
	if err != nil {
		return fmt.Errorf("開催日の形式が不正です: %w", err)
	}

	kind := Kind(rec.Kind)
	switch kind {
	case KindEvent, KindWorkshop, KindLecture:
	default:
		kind = KindEvent
	}

	e.ID = rec.ID
	e.Name = rec.Name
	e.Date = date
	e.Location = rec.Location
	e.MaxCapacity = rec.MaxCapacity
	e.Category = rec.Category
	e.Price = rec.Price
	e.Kind = kind
	e.RequiredMaterial = ""
	e.Speaker = ""
	switch kind {
	case KindWorkshop:
		if rec.RequiredMaterial != nil {
			e.RequiredMaterial = *rec.RequiredMaterial
		}
	case KindLecture:
		if rec.Speaker != nil {
			e.Speaker = *rec.Speaker
		}
	}

	e.enrolled = make([]participant.Participant, 0, len(rec.Enrolled))
	e.enrolledEmails = make(map[string]struct{}, len(rec.Enrolled))
	for _, pr := range rec.Enrolled {
		p := participant.New(pr.Name, pr.Email)
		e.enrolled = append(e.enrolled, p)
		e.enrolledEmails[p.Email] = struct{}{}
	}

	e.checkedIn = make(map[string]struct{}, len(rec.CheckedIn))
	for _, email := range rec.CheckedIn {
		e.checkedIn[email] = struct{}{}
	}
	return nil
}

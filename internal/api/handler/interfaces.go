package handler

import (
	"context"

	"github.com/sanosuguru/go-event-registration/internal/application"
	"github.com/sanosuguru/go-event-registration/internal/domain/event"
)

// RegistrationServiceInterface は登録サービスのインターフェース
type RegistrationServiceInterface interface {
	CreateEvent(ctx context.Context, input application.CreateEventInput) (*event.Event, error)
	GetEvent(ctx context.Context, id int) (*event.Event, error)
	ListEvents(ctx context.Context) []*event.Event
	Enroll(ctx context.Context, eventID int, name, email string) error
	CancelEnrollment(ctx context.Context, eventID int, email string) error
	CheckIn(ctx context.Context, eventID int, email string) (already bool, err error)
	TotalEnrolled(ctx context.Context, eventID int) (int, error)
	Revenue(ctx context.Context, eventID int) (float64, error)
	EventsWithAvailability(ctx context.Context) []*event.Event
}

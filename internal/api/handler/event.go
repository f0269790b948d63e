package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-event-registration/internal/application"
	"github.com/sanosuguru/go-event-registration/internal/domain/event"
)

type EventHandler struct {
	service RegistrationServiceInterface
}

func NewEventHandler(service RegistrationServiceInterface) *EventHandler {
	return &EventHandler{service: service}
}

type CreateEventRequest struct {
	Name             string  `json:"name" validate:"required" example:"DevConf 2026"`
	Date             string  `json:"date" validate:"required" example:"2026-10-01"`
	Location         string  `json:"location" example:"Recife"`
	MaxCapacity      int     `json:"max_capacity" validate:"required,gt=0" example:"100"`
	Category         string  `json:"category" example:"Tech"`
	Price            float64 `json:"price" validate:"gte=0" example:"150.0"`
	Kind             string  `json:"kind" validate:"omitempty,oneof=event workshop lecture" example:"workshop"`
	RequiredMaterial string  `json:"required_material,omitempty" example:"ノートPC"`
	Speaker          string  `json:"speaker,omitempty" example:"山田太郎"`
}

type EventResponse struct {
	ID               int     `json:"id" example:"1"`
	Kind             string  `json:"kind" example:"event"`
	Name             string  `json:"name" example:"DevConf 2026"`
	Date             string  `json:"date" example:"2026-10-01"`
	Location         string  `json:"location" example:"Recife"`
	MaxCapacity      int     `json:"max_capacity" example:"100"`
	Category         string  `json:"category" example:"Tech"`
	Price            float64 `json:"price" example:"150.0"`
	AvailableSlots   int     `json:"available_slots" example:"98"`
	EnrolledCount    int     `json:"enrolled_count" example:"2"`
	RequiredMaterial string  `json:"required_material,omitempty"`
	Speaker          string  `json:"speaker,omitempty"`
	Summary          string  `json:"summary"`
}

type ParticipantResponse struct {
	Name  string `json:"name" example:"Ana"`
	Email string `json:"email" example:"ana@x.com"`
}

// EventDetailResponse は登録者一覧を含むイベント詳細
type EventDetailResponse struct {
	EventResponse
	Enrolled  []ParticipantResponse `json:"enrolled"`
	CheckedIn []string              `json:"checked_in"`
}

func toEventResponse(e *event.Event) EventResponse {
	return EventResponse{
		ID:               e.ID,
		Kind:             string(e.Kind),
		Name:             e.Name,
		Date:             e.Date.Format(event.DateLayout),
		Location:         e.Location,
		MaxCapacity:      e.MaxCapacity,
		Category:         e.Category,
		Price:            e.Price,
		AvailableSlots:   e.AvailableSlots(),
		EnrolledCount:    e.EnrolledCount(),
		RequiredMaterial: e.RequiredMaterial,
		Speaker:          e.Speaker,
		Summary:          e.Summary(),
	}
}

func toEventDetailResponse(e *event.Event) EventDetailResponse {
	participants := e.Participants()
	enrolled := make([]ParticipantResponse, len(participants))
	for i, p := range participants {
		enrolled[i] = ParticipantResponse{Name: p.Name, Email: p.Email}
	}
	return EventDetailResponse{
		EventResponse: toEventResponse(e),
		Enrolled:      enrolled,
		CheckedIn:     e.CheckedInEmails(),
	}
}

func eventIDParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "イベントIDの形式が不正です")
	}
	return id, nil
}

// Create godoc
// @Summary イベントを作成
// @Description 種別（event/workshop/lecture）に応じた新しいイベントを作成します
// @Tags events
// @Accept json
// @Produce json
// @Param request body CreateEventRequest true "イベント情報"
// @Success 201 {object} EventResponse
// @Failure 400 {object} map[string]string
// @Router /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	date, err := time.Parse(event.DateLayout, req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "開催日の形式が不正です（YYYY-MM-DD）")
	}

	kind := event.Kind(req.Kind)
	if req.Kind == "" {
		kind = event.KindEvent
	}

	e, err := h.service.CreateEvent(c.Request().Context(), application.CreateEventInput{
		Name:             req.Name,
		Date:             date,
		Location:         req.Location,
		MaxCapacity:      req.MaxCapacity,
		Category:         req.Category,
		Price:            req.Price,
		Kind:             kind,
		RequiredMaterial: req.RequiredMaterial,
		Speaker:          req.Speaker,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, toEventResponse(e))
}

// GetByID godoc
// @Summary イベントを取得
// @Description 指定IDのイベントを登録者一覧付きで取得します
// @Tags events
// @Produce json
// @Param id path int true "イベントID"
// @Success 200 {object} EventDetailResponse
// @Failure 404 {object} map[string]string
// @Router /events/{id} [get]
func (h *EventHandler) GetByID(c echo.Context) error {
	id, err := eventIDParam(c)
	if err != nil {
		return err
	}
	e, err := h.service.GetEvent(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toEventDetailResponse(e))
}

// List godoc
// @Summary イベント一覧を取得
// @Description 全イベントをID順で取得します
// @Tags events
// @Produce json
// @Success 200 {array} EventResponse
// @Router /events [get]
func (h *EventHandler) List(c echo.Context) error {
	events := h.service.ListEvents(c.Request().Context())
	responses := make([]EventResponse, len(events))
	for i, e := range events {
		responses[i] = toEventResponse(e)
	}
	return c.JSON(http.StatusOK, responses)
}

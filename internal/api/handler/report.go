package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-event-registration/internal/domain/event"
)

type ReportHandler struct {
	service RegistrationServiceInterface
}

func NewReportHandler(service RegistrationServiceInterface) *ReportHandler {
	return &ReportHandler{service: service}
}

// EventReportResponse はイベント単位のレポート
type EventReportResponse struct {
	EventID       int     `json:"event_id" example:"1"`
	TotalEnrolled int     `json:"total_enrolled" example:"42"`
	Revenue       float64 `json:"revenue" example:"4200.0"`
}

// EventReport godoc
// @Summary イベントレポートを取得
// @Description 指定イベントの登録者数と売上を取得します
// @Tags reports
// @Produce json
// @Param id path int true "イベントID"
// @Success 200 {object} EventReportResponse
// @Failure 404 {object} map[string]string
// @Router /events/{id}/report [get]
func (h *ReportHandler) EventReport(c echo.Context) error {
	id, err := eventIDParam(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	total, err := h.service.TotalEnrolled(ctx, id)
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	revenue, err := h.service.Revenue(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, EventReportResponse{
		EventID:       id,
		TotalEnrolled: total,
		Revenue:       revenue,
	})
}

// Availability godoc
// @Summary 空きのあるイベント一覧を取得
// @Description 空き枠が1以上あるイベントをID順で取得します
// @Tags reports
// @Produce json
// @Success 200 {array} EventResponse
// @Router /reports/availability [get]
func (h *ReportHandler) Availability(c echo.Context) error {
	events := h.service.EventsWithAvailability(c.Request().Context())
	responses := make([]EventResponse, len(events))
	for i, e := range events {
		responses[i] = toEventResponse(e)
	}
	return c.JSON(http.StatusOK, responses)
}

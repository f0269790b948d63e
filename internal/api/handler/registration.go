package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-event-registration/internal/domain/event"
	"github.com/sanosuguru/go-event-registration/internal/domain/participant"
)

type RegistrationHandler struct {
	service RegistrationServiceInterface
}

func NewRegistrationHandler(service RegistrationServiceInterface) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

type EnrollRequest struct {
	Name  string `json:"name" validate:"required" example:"Ana"`
	Email string `json:"email" validate:"required,email" example:"ana@x.com"`
}

type CheckInRequest struct {
	Email string `json:"email" validate:"required,email" example:"ana@x.com"`
}

type CheckInResponse struct {
	Email            string `json:"email" example:"ana@x.com"`
	AlreadyCheckedIn bool   `json:"already_checked_in" example:"false"`
}

// Enroll godoc
// @Summary 参加者を登録
// @Description 参加者をイベントに登録します
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path int true "イベントID"
// @Param request body EnrollRequest true "参加者情報"
// @Success 201 {object} ParticipantResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "満席または重複登録"
// @Router /events/{id}/enrollments [post]
func (h *RegistrationHandler) Enroll(c echo.Context) error {
	id, err := eventIDParam(c)
	if err != nil {
		return err
	}
	var req EnrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// レスポンスが保存された状態と一致するよう正規化後の値を使う
	p := participant.New(req.Name, req.Email)
	if err := h.service.Enroll(c.Request().Context(), id, p.Name, p.Email); err != nil {
		switch {
		case errors.Is(err, event.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, event.ErrEventFull), errors.Is(err, event.ErrAlreadyEnrolled):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, ParticipantResponse{Name: p.Name, Email: p.Email})
}

// Cancel godoc
// @Summary 登録を取り消し
// @Description 指定メールアドレスの登録を取り消し、枠を解放します
// @Tags enrollments
// @Param id path int true "イベントID"
// @Param email path string true "メールアドレス"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /events/{id}/enrollments/{email} [delete]
func (h *RegistrationHandler) Cancel(c echo.Context) error {
	id, err := eventIDParam(c)
	if err != nil {
		return err
	}
	email := c.Param("email")

	if err := h.service.CancelEnrollment(c.Request().Context(), id, email); err != nil {
		switch {
		case errors.Is(err, event.ErrEventNotFound), errors.Is(err, event.ErrNotEnrolled):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// CheckIn godoc
// @Summary チェックイン
// @Description 登録済み参加者の出席を記録します（冪等）
// @Tags check-ins
// @Accept json
// @Produce json
// @Param id path int true "イベントID"
// @Param request body CheckInRequest true "チェックイン情報"
// @Success 200 {object} CheckInResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /events/{id}/check-ins [post]
func (h *RegistrationHandler) CheckIn(c echo.Context) error {
	id, err := eventIDParam(c)
	if err != nil {
		return err
	}
	var req CheckInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	email := participant.NormalizeEmail(req.Email)
	already, err := h.service.CheckIn(c.Request().Context(), id, email)
	if err != nil {
		switch {
		case errors.Is(err, event.ErrEventNotFound), errors.Is(err, event.ErrNotEnrolled):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, CheckInResponse{Email: email, AlreadyCheckedIn: already})
}

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-event-registration/internal/domain/event"
)

func TestReportHandler_EventReport(t *testing.T) {
	e := NewTestEcho()

	newReportContext := func(id string) (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/api/v1/events/:id/report")
		c.SetParamNames("id")
		c.SetParamValues(id)
		return c, rec
	}

	t.Run("登録者数と売上を返す", func(t *testing.T) {
		mockService := new(MockRegistrationService)
		mockService.On("TotalEnrolled", mock.Anything, 1).Return(2, nil)
		mockService.On("Revenue", mock.Anything, 1).Return(200.0, nil)
		handler := NewReportHandler(mockService)

		c, rec := newReportContext("1")

		require.NoError(t, handler.EventReport(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp EventReportResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.EventID)
		assert.Equal(t, 2, resp.TotalEnrolled)
		assert.Equal(t, 200.0, resp.Revenue)
	})

	t.Run("存在しないイベントは404", func(t *testing.T) {
		mockService := new(MockRegistrationService)
		mockService.On("TotalEnrolled", mock.Anything, 99).Return(0, event.ErrEventNotFound)
		handler := NewReportHandler(mockService)

		c, _ := newReportContext("99")

		err := handler.EventReport(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, he.Code)
	})
}

func TestReportHandler_Availability(t *testing.T) {
	e := NewTestEcho()

	mockService := new(MockRegistrationService)
	mockService.On("EventsWithAvailability", mock.Anything).Return([]*event.Event{sampleEvent()})
	handler := NewReportHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/availability", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.Availability(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp []EventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Greater(t, resp[0].AvailableSlots, 0)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/mock"
	"github.com/MKhiriev/go-acme-cse/internal/service"
	"github.com/MKhiriev/go-acme-cse/models"
)

const scheduleNotificationBody = `{"m2m:sgn":{"nev":{"rep":{"m2m:cin":{"con":"08:00-17:00"}},"net":3},"sur":"/id-in/sub5512873"}}`

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newTestSchedulerHandler(ctrl *gomock.Controller) (*SchedulerHandler, *mock.MockScheduleService, *mock.MockAppInfoService) {
	schedules := mock.NewMockScheduleService(ctrl)
	appInfo := mock.NewMockAppInfoService(ctrl)

	h := NewSchedulerHandler(&service.SchedulerServices{
		ScheduleService: schedules,
		AppInfoService:  appInfo,
	}, logger.Nop())

	return h, schedules, appInfo
}

func postCallback(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(body))
	req.Header.Set("Content-Type", models.MediaTypeJSON)
	req.Header.Set(models.HeaderRequestID, "notif-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// ─────────────────────────────────────────────
// POST /callback
// ─────────────────────────────────────────────

func TestCallback_AppliesSchedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, schedules, _ := newTestSchedulerHandler(ctrl)

	schedules.EXPECT().HandleNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n models.Notification) error {
			require.NotNil(t, n.Event)
			assert.Equal(t, models.EventCreateDirectChild, n.Event.EventType)
			assert.Equal(t, "/id-in/sub5512873", n.SubscriptionReference)
			assert.Contains(t, string(n.Event.Representation), "08:00-17:00")
			return nil
		})

	rec := postCallback(h.Init(), scheduleNotificationBody)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success"}`, rec.Body.String())
	assert.Equal(t, "2000", rec.Header().Get(models.HeaderRSC))
	assert.Equal(t, "notif-1", rec.Header().Get(models.HeaderRequestID))
}

func TestCallback_VerificationRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, schedules, _ := newTestSchedulerHandler(ctrl)

	schedules.EXPECT().HandleNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n models.Notification) error {
			assert.True(t, n.IsVerification())
			return nil
		})

	rec := postCallback(h.Init(), `{"m2m:sgn":{"vrq":true,"sur":"/id-in/sub5512873","cr":"CNoise"}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2000", rec.Header().Get(models.HeaderRSC))
}

func TestCallback_Failures(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		serviceErr  error
		callService bool
		wantMessage string
	}{
		{
			name:        "malformed json",
			body:        `{"m2m:sgn":`,
			wantMessage: service.ErrInvalidNotification.Error(),
		},
		{
			name:        "invalid window",
			body:        `{"m2m:sgn":{"nev":{"rep":{"m2m:cin":{"con":"25:00-17:00"}},"net":3}}}`,
			serviceErr:  fmt.Errorf("%w: %w", service.ErrInvalidNotification, models.ErrInvalidScheduleTime),
			callService: true,
			wantMessage: models.ErrInvalidScheduleTime.Error(),
		},
		{
			name:        "unexpected failure",
			body:        scheduleNotificationBody,
			serviceErr:  errors.New("jobs unavailable"),
			callService: true,
			wantMessage: "jobs unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			h, schedules, _ := newTestSchedulerHandler(ctrl)
			if tt.callService {
				schedules.EXPECT().HandleNotification(gomock.Any(), gomock.Any()).Return(tt.serviceErr)
			}

			rec := postCallback(h.Init(), tt.body)

			require.Equal(t, http.StatusInternalServerError, rec.Code)
			var got models.CallbackResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, "error", got.Status)
			assert.Contains(t, got.Message, tt.wantMessage)
			assert.Empty(t, rec.Header().Get(models.HeaderRSC))
		})
	}
}

// ─────────────────────────────────────────────
// GET /schedule
// ─────────────────────────────────────────────

func TestSchedule_Active(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, schedules, _ := newTestSchedulerHandler(ctrl)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return now }

	schedules.EXPECT().Current(now).Return(models.ScheduleStatus{
		Window:    "08:00-17:00",
		NextStart: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		NextStop:  time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC),
	}, nil)

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/schedule", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"window":"08:00-17:00","next_start":"2026-03-02T08:00:00Z","next_stop":"2026-03-01T17:00:00Z"}`, rec.Body.String())
}

func TestSchedule_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "no schedule", err: service.ErrNoActiveSchedule, wantStatus: http.StatusNotFound},
		{name: "failure", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			h, schedules, _ := newTestSchedulerHandler(ctrl)
			schedules.EXPECT().Current(gomock.Any()).Return(models.ScheduleStatus{}, tt.err)

			rec := httptest.NewRecorder()
			h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/schedule", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"status":"error"`)
		})
	}
}

func TestSchedulerVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, _, appInfo := newTestSchedulerHandler(ctrl)
	appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("2.0.1")

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/__version__", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2.0.1", rec.Body.String())
}

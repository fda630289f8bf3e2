package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/kbukum/restbind/resilience"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestClassify(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		err  error
		want ErrorCode
	}{
		{"refused", context.Background(), errors.New("connection refused"), ErrCodeConnection},
		{"net timeout", context.Background(), fmt.Errorf("dial: %w", timeoutErr{}), ErrCodeTimeout},
		{"deadline", context.Background(), context.DeadlineExceeded, ErrCodeTimeout},
		{"cancelled err", context.Background(), fmt.Errorf("x: %w", context.Canceled), ErrCodeCancelled},
		{"cancelled ctx", cancelled, errors.New("read failed"), ErrCodeCancelled},
		{"circuit", context.Background(), resilience.ErrCircuitOpen, ErrCodeCircuitOpen},
		{"already typed", context.Background(), NewInvalidRequestError(errors.New("bad")), ErrCodeInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.ctx, tt.err)
			if got.Code != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.Code)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("expected cause to be preserved")
			}
		})
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorCode
	}{
		{401, ErrCodeAuth},
		{403, ErrCodeAuth},
		{404, ErrCodeNotFound},
		{429, ErrCodeRateLimit},
		{422, ErrCodeClient},
		{500, ErrCodeServer},
		{503, ErrCodeServer},
	}
	for _, tt := range tests {
		e := ClassifyStatus(&Response{StatusCode: tt.status})
		if e == nil || e.Code != tt.want || e.StatusCode != tt.status {
			t.Errorf("status %d: expected %s, got %v", tt.status, tt.want, e)
		}
	}
	for _, ok := range []int{200, 204, 302} {
		if e := ClassifyStatus(&Response{StatusCode: ok}); e != nil {
			t.Errorf("status %d should not be an error, got %v", ok, e)
		}
	}
}

func TestErrorHelpers(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewTimeoutError(errors.New("slow")))
	if !IsTimeout(err) || IsConnection(err) {
		t.Error("unexpected classification helpers")
	}
	if _, ok := CodeOf(errors.New("plain")); ok {
		t.Error("plain errors have no transport code")
	}
	e := ClassifyStatus(&Response{StatusCode: 502})
	if e.Error() != "transport: server (HTTP 502): HTTP 502" {
		t.Errorf("unexpected message %q", e.Error())
	}
	if !IsServerError(e) {
		t.Error("expected server error")
	}
}

package services

import (
	"context"
	"errors"
	"testing"
)

func TestParseDurationMinutes(t *testing.T) {
	tests := []struct {
		span    string
		want    int
		wantErr bool
	}{
		{span: "02:30:00", want: 150},
		{span: "02:30", want: 150},
		{span: "02:30:29", want: 150}, // seconds under 30 truncate
		{span: "02:30:30", want: 151}, // seconds 30 and over round up
		{span: "02:30:59", want: 151},
		{span: "00:45:00", want: 45},
		{span: "12:00:00", want: 720},
		{span: " 01:15:00 ", want: 75},
		{span: "", wantErr: true},
		{span: "90", wantErr: true},
		{span: "aa:bb:cc", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseDurationMinutes(tt.span)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDurationMinutes(%q) expected error, got %d", tt.span, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDurationMinutes(%q) error: %v", tt.span, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDurationMinutes(%q) = %d, want %d", tt.span, got, tt.want)
		}
	}
}

func TestIsLongFlight(t *testing.T) {
	if IsLongFlight(360) {
		t.Error("360 minutes should not be long")
	}
	if !IsLongFlight(361) {
		t.Error("361 minutes should be long")
	}
}

func TestCombineDateTime(t *testing.T) {
	got, err := CombineDateTime("2026-09-01", "14:30")
	if err != nil {
		t.Fatalf("CombineDateTime error: %v", err)
	}
	if got.Hour() != 14 || got.Minute() != 30 || got.Day() != 1 {
		t.Errorf("CombineDateTime = %v", got)
	}

	withSeconds, err := CombineDateTime("2026-09-01", "14:30:45")
	if err != nil {
		t.Fatalf("CombineDateTime with seconds error: %v", err)
	}
	if withSeconds.Second() != 45 {
		t.Errorf("seconds = %d, want 45", withSeconds.Second())
	}

	for _, bad := range [][2]string{
		{"", "14:30"},
		{"2026-09-01", ""},
		{"tomorrow", "14:30"},
		{"2026-09-01", "noon"},
	} {
		if _, err := CombineDateTime(bad[0], bad[1]); !errors.Is(err, ErrValidation) {
			t.Errorf("CombineDateTime(%q, %q) expected ErrValidation, got %v", bad[0], bad[1], err)
		}
	}
}

func TestResolveDuration(t *testing.T) {
	db := newTestDB(t)
	seedAirports(t, db)
	seedRoute(t, db, 1, 2, "02:00:00")

	svc := NewRouteService(newRouteRepo(db))

	minutes, err := svc.ResolveDuration(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("ResolveDuration error: %v", err)
	}
	if minutes != 120 {
		t.Errorf("ResolveDuration = %d, want 120", minutes)
	}

	// routes are directional: the reverse pair is unserved
	if _, err := svc.ResolveDuration(context.Background(), 2, 1); !errors.Is(err, ErrRouteNotFound) {
		t.Errorf("reverse route expected ErrRouteNotFound, got %v", err)
	}
}

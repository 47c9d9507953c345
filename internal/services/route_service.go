package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"skyharbor/dispatch/internal/constants"
	"skyharbor/dispatch/internal/db/repositories"
)

// RouteService resolves a route's scheduled duration into minutes. The
// duration column carries "HH:MM:SS" or "HH:MM"; seconds of thirty or more
// round the minute up.
type RouteService struct {
	routes *repositories.RouteRepository
}

func NewRouteService(routes *repositories.RouteRepository) *RouteService {
	return &RouteService{routes: routes}
}

// ResolveDuration returns the route's duration in minutes, or ErrRouteNotFound.
func (s *RouteService) ResolveDuration(ctx context.Context, originID, destID int) (int, error) {
	route, err := s.routes.FindRoute(ctx, originID, destID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrRouteNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("find route: %w", err)
	}

	minutes, err := ParseDurationMinutes(route.Duration)
	if err != nil {
		return 0, fmt.Errorf("route %d->%d: %w", originID, destID, err)
	}
	return minutes, nil
}

// ParseDurationMinutes converts a "HH:MM:SS" or "HH:MM" span to whole minutes,
// rounding seconds >= 30 up.
func ParseDurationMinutes(span string) (int, error) {
	parts := strings.Split(strings.TrimSpace(span), ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid duration %q", span)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", span)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", span)
	}

	sec := 0
	if len(parts) >= 3 {
		sec, err = strconv.Atoi(parts[2])
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", span)
		}
	}

	minutes := h*60 + m
	if sec >= 30 {
		minutes++
	}
	return minutes, nil
}

// IsLongFlight reports whether a duration crosses the long-haul threshold.
func IsLongFlight(durationMin int) bool {
	return durationMin > constants.LongFlightMinutes
}

// CombineDateTime merges a "YYYY-MM-DD" date with an "HH:MM" or "HH:MM:SS"
// time into one timestamp.
func CombineDateTime(dateStr, timeStr string) (time.Time, error) {
	d := strings.TrimSpace(dateStr)
	t := strings.TrimSpace(timeStr)
	if d == "" || t == "" {
		return time.Time{}, fmt.Errorf("%w: missing date or time", ErrValidation)
	}

	// normalize HH:MM to HH:MM:SS
	if len(t) == 5 && strings.Count(t, ":") == 1 {
		t += ":00"
	}
	if len(t) > 8 {
		t = t[:8]
	}

	parsed, err := time.Parse("2006-01-02 15:04:05", d+" "+t)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date/time %q %q", ErrValidation, dateStr, timeStr)
	}
	return parsed, nil
}

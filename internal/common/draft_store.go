package common

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"skyharbor/dispatch/internal/constants"
	"skyharbor/dispatch/internal/models/entities"
)

// DraftStore keeps in-progress flight and booking drafts in the cache layer.
// Drafts are serialized to JSON so the in-memory and Redis backends behave
// identically. A draft is never a source of truth for availability.
type DraftStore struct {
	cache CacheInterface
	ttl   time.Duration
}

func NewDraftStore(cache CacheInterface, ttl time.Duration) *DraftStore {
	return &DraftStore{cache: cache, ttl: ttl}
}

func flightDraftKey(adminID int) string {
	return string(constants.CachePrefixFlightDraft) + strconv.Itoa(adminID)
}

func bookingDraftKey(draftID string) string {
	return string(constants.CachePrefixBookingDraft) + draftID
}

func (s *DraftStore) PutFlightDraft(d *entities.FlightDraft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal flight draft: %w", err)
	}
	s.cache.Set(flightDraftKey(d.AdminID), string(data), s.ttl)
	return nil
}

func (s *DraftStore) GetFlightDraft(adminID int) (*entities.FlightDraft, bool) {
	raw, found := s.cache.Get(flightDraftKey(adminID))
	if !found {
		return nil, false
	}
	str, ok := raw.(string)
	if !ok {
		return nil, false
	}
	var d entities.FlightDraft
	if err := json.Unmarshal([]byte(str), &d); err != nil {
		return nil, false
	}
	return &d, true
}

func (s *DraftStore) DeleteFlightDraft(adminID int) {
	s.cache.Delete(flightDraftKey(adminID))
}

func (s *DraftStore) PutBookingDraft(d *entities.BookingDraft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal booking draft: %w", err)
	}
	s.cache.Set(bookingDraftKey(d.DraftID), string(data), s.ttl)
	return nil
}

func (s *DraftStore) GetBookingDraft(draftID string) (*entities.BookingDraft, bool) {
	raw, found := s.cache.Get(bookingDraftKey(draftID))
	if !found {
		return nil, false
	}
	str, ok := raw.(string)
	if !ok {
		return nil, false
	}
	var d entities.BookingDraft
	if err := json.Unmarshal([]byte(str), &d); err != nil {
		return nil, false
	}
	return &d, true
}

func (s *DraftStore) DeleteBookingDraft(draftID string) {
	s.cache.Delete(bookingDraftKey(draftID))
}

package session

import (
	"testing"
)

// -----------------------------------------------------------------------------
// Session Flag Store
// -----------------------------------------------------------------------------

func TestSetAndGet(t *testing.T) {
	s := NewStore(nil)

	if err := s.Set(FlagRegistered, "true"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	v, ok := s.Get(FlagRegistered)
	if !ok || v != "true" {
		t.Errorf("expected true, got %q (ok=%v)", v, ok)
	}

	if _, ok := s.Get(FlagKeyExpired); ok {
		t.Error("unset flag must report absent")
	}
}

// -----------------------------------------------------------------------------

func TestUnknownFlagRejected(t *testing.T) {
	s := NewStore(nil)

	if err := s.Set("some_other_key", "x"); err == nil {
		t.Error("expected error for unknown flag key")
	}
}

// -----------------------------------------------------------------------------

func TestEmptyValueClearsFlag(t *testing.T) {
	s := NewStore(nil)

	s.Set(FlagKeyExpired, "true")
	s.Set(FlagKeyExpired, "")

	if _, ok := s.Get(FlagKeyExpired); ok {
		t.Error("empty value must clear the flag")
	}
	if len(s.Flags()) != 0 {
		t.Errorf("expected no flags set, got %v", s.Flags())
	}
}

// -----------------------------------------------------------------------------

func TestSubscribersNotified(t *testing.T) {
	s := NewStore(nil)

	type event struct{ key, value string }
	var events []event
	s.Subscribe(func(key, value string) {
		events = append(events, event{key, value})
	})

	s.Set(FlagRegistered, "true")
	s.Set(FlagRegistered, "")

	if len(events) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(events))
	}
	if events[0] != (event{FlagRegistered, "true"}) {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[1] != (event{FlagRegistered, ""}) {
		t.Errorf("unexpected second event: %+v", events[1])
	}
}

// -----------------------------------------------------------------------------

func TestFlagsReturnsCopy(t *testing.T) {
	s := NewStore(nil)
	s.Set(FlagRegistered, "true")

	flags := s.Flags()
	flags[FlagRegistered] = "tampered"

	if v, _ := s.Get(FlagRegistered); v != "true" {
		t.Error("mutation of returned map leaked into store")
	}
}

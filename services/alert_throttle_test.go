package services

import (
	"fmt"
	"testing"
	"time"
)

func TestAlertThrottle_SuppressesWithinTTL(t *testing.T) {
	throttle := NewAlertThrottle(10*time.Minute, 16)
	base := time.Date(2025, time.April, 1, 9, 0, 0, 0, time.UTC)

	if !throttle.allowAt("db-error", base) {
		t.Fatal("first alert must pass")
	}
	if throttle.allowAt("db-error", base.Add(time.Minute)) {
		t.Fatal("repeat within TTL must be suppressed")
	}
	if throttle.allowAt("db-error", base.Add(9*time.Minute)) {
		t.Fatal("repeat just inside TTL must be suppressed")
	}
	if !throttle.allowAt("db-error", base.Add(10*time.Minute)) {
		t.Fatal("alert must pass again once the TTL expires")
	}
}

func TestAlertThrottle_KeysAreIndependent(t *testing.T) {
	throttle := NewAlertThrottle(10*time.Minute, 16)
	base := time.Date(2025, time.April, 1, 9, 0, 0, 0, time.UTC)

	if !throttle.allowAt("db-error", base) {
		t.Fatal("first db-error must pass")
	}
	if !throttle.allowAt("push-error", base) {
		t.Fatal("a different key must not be suppressed")
	}
}

func TestAlertThrottle_EvictsExpiredEntries(t *testing.T) {
	throttle := NewAlertThrottle(time.Minute, 16)
	base := time.Date(2025, time.April, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		throttle.allowAt(fmt.Sprintf("key-%d", i), base)
	}
	if len(throttle.seen) != 10 {
		t.Fatalf("expected 10 tracked keys, got %d", len(throttle.seen))
	}

	// All entries are past the TTL; any access evicts them
	throttle.allowAt("fresh", base.Add(2*time.Minute))
	if len(throttle.seen) != 1 {
		t.Fatalf("expected expired entries to be evicted, still tracking %d", len(throttle.seen))
	}
}

func TestAlertThrottle_BoundedWhenFull(t *testing.T) {
	throttle := NewAlertThrottle(time.Hour, 4)
	base := time.Date(2025, time.April, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		throttle.allowAt(fmt.Sprintf("key-%d", i), base)
	}

	// Map is full with live entries: a new key still alerts but is not tracked
	if !throttle.allowAt("overflow", base.Add(time.Second)) {
		t.Fatal("alert must still pass when the map is full")
	}
	if len(throttle.seen) > 4 {
		t.Fatalf("map grew past its bound: %d entries", len(throttle.seen))
	}
}

package services

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/bbbang105/flowershop-admin-sub001/models"
)

func strPtr(s string) *string { return &s }

func TestRelativeDayLabel(t *testing.T) {
	now := time.Date(2025, time.January, 30, 15, 30, 0, 0, time.UTC)

	cases := []struct {
		name   string
		target time.Time
		want   string
	}{
		{"same day", time.Date(2025, time.January, 30, 0, 0, 0, 0, time.UTC), "today"},
		{"same day late evening", time.Date(2025, time.January, 30, 23, 59, 0, 0, time.UTC), "today"},
		{"next day", time.Date(2025, time.January, 31, 9, 0, 0, 0, time.UTC), "tomorrow"},
		{"across month end", time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), "2 days later"},
		{"a week out", time.Date(2025, time.February, 6, 0, 0, 0, 0, time.UTC), "7 days later"},
		{"stale reminder falls back to date", time.Date(2025, time.January, 28, 0, 0, 0, 0, time.UTC), "2025-01-28"},
	}

	for _, tc := range cases {
		if got := RelativeDayLabel(now, tc.target); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestHourlyWindow(t *testing.T) {
	now := time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC)
	from, to := hourlyWindow(now)

	within := now.Add(-20 * time.Minute)
	if !(within.After(from) && !within.After(to)) {
		t.Fatalf("reminder 20 minutes ago should fall in (%s, %s]", from, to)
	}

	outside := now.Add(-90 * time.Minute)
	if outside.After(from) {
		t.Fatalf("reminder 90 minutes ago should fall outside the window starting %s", from)
	}

	// Exactly on the upper bound is included, exactly on the lower bound is not
	if now.After(to) {
		t.Fatal("now itself must be inside the window")
	}
	if from.After(now.Add(-time.Hour)) {
		t.Fatal("window must open exactly one hour back")
	}
}

func TestBuildReminderBody(t *testing.T) {
	now := time.Date(2025, time.May, 1, 8, 0, 0, 0, time.UTC)

	resv := models.Reservation{
		Date:            time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC),
		Time:            strPtr("14:00"),
		CustomerName:    "김민지",
		EstimatedAmount: 50000,
	}
	got := BuildReminderBody(resv, now)
	want := "tomorrow 14:00 — 김민지 (50,000 KRW)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	// No time, no amount
	bare := models.Reservation{
		Date:         time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		CustomerName: "박준호",
	}
	got = BuildReminderBody(bare, now)
	if got != "today — 박준호" {
		t.Fatalf("got %q", got)
	}
}

func TestBuildReminderPayload_IsJSON(t *testing.T) {
	resv := models.Reservation{
		Date:         time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		CustomerName: "이수진",
	}
	payload := BuildReminderPayload(resv, time.Date(2025, time.May, 1, 8, 0, 0, 0, time.UTC))

	var decoded map[string]string
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if decoded["title"] == "" || decoded["body"] == "" {
		t.Fatalf("payload missing title or body: %s", payload)
	}
}

func TestBuildDailyDigestPayload(t *testing.T) {
	reservations := []models.Reservation{
		{CustomerName: "김민지", Time: strPtr("10:00")},
		{CustomerName: "박준호", Time: strPtr("13:00")},
		{CustomerName: "이수진"},
		{CustomerName: "최영희", Time: strPtr("17:00")},
		{CustomerName: "정다은"},
	}

	payload := BuildDailyDigestPayload(reservations)

	var decoded map[string]string
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		t.Fatalf("digest is not valid JSON: %v", err)
	}
	if !strings.Contains(decoded["title"], "5") {
		t.Fatalf("title should carry the total count: %q", decoded["title"])
	}
	body := decoded["body"]
	for _, inline := range []string{"10:00 김민지", "13:00 박준호", "이수진"} {
		if !strings.Contains(body, inline) {
			t.Fatalf("body missing %q: %q", inline, body)
		}
	}
	if strings.Contains(body, "최영희") || strings.Contains(body, "정다은") {
		t.Fatalf("body should inline at most 3 reservations: %q", body)
	}
	if !strings.Contains(body, "and 2 more") {
		t.Fatalf("body missing overflow count: %q", body)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{50000, "50,000"},
		{1234567, "1,234,567"},
	}
	for _, tc := range cases {
		if got := formatAmount(tc.in); got != tc.want {
			t.Fatalf("formatAmount(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

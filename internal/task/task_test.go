package task

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestGenerateID(t *testing.T) {
	t.Run("it generates IDs matching t-{6 hex} pattern", func(t *testing.T) {
		pattern := regexp.MustCompile(`^t-[0-9a-f]{6}$`)
		existsFn := func(id string) bool { return false }

		id, err := GenerateID(existsFn)
		if err != nil {
			t.Fatalf("GenerateID() returned error: %v", err)
		}
		if !pattern.MatchString(id) {
			t.Errorf("GenerateID() = %q, want match for pattern %q", id, pattern.String())
		}
	})

	t.Run("it retries on collision up to 5 times", func(t *testing.T) {
		attempts := 0
		existsFn := func(id string) bool {
			attempts++
			return attempts < 5
		}

		id, err := GenerateID(existsFn)
		if err != nil {
			t.Fatalf("GenerateID() returned error: %v", err)
		}
		if id == "" {
			t.Error("GenerateID() returned empty ID")
		}
		if attempts != 5 {
			t.Errorf("expected 5 attempts, got %d", attempts)
		}
	})

	t.Run("it errors after 5 collision retries", func(t *testing.T) {
		existsFn := func(id string) bool { return true }

		_, err := GenerateID(existsFn)
		if err == nil {
			t.Fatal("GenerateID() expected error, got nil")
		}

		want := "failed to generate unique ID after 5 attempts - task list may be too large"
		if err.Error() != want {
			t.Errorf("GenerateID() error = %q, want %q", err.Error(), want)
		}
	})
}

func TestValidateDescription(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"it accepts a plain description", "Buy milk", false},
		{"it accepts surrounding whitespace", "  Buy milk  ", false},
		{"it rejects an empty description", "", true},
		{"it rejects a whitespace-only description", " \t ", true},
		{"it accepts embedded newlines", "Buy\nmilk", false},
		{"it accepts long descriptions", strings.Repeat("a", 600), false},
		{"it accepts multi-byte runes", strings.Repeat("é", 300), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDescription(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDescription(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}

	t.Run("it wraps ErrEmptyDescription for blank input", func(t *testing.T) {
		if err := ValidateDescription("   "); !errors.Is(err, ErrEmptyDescription) {
			t.Errorf("error = %v, want ErrEmptyDescription", err)
		}
	})
}

func TestNewTask(t *testing.T) {
	t.Run("it creates a pending task with a trimmed description", func(t *testing.T) {
		before := time.Now().UTC().Truncate(time.Second)
		got := NewTask("t-a1b2c3", "  Buy milk ")
		after := time.Now().UTC().Truncate(time.Second).Add(time.Second)

		if got.ID != "t-a1b2c3" {
			t.Errorf("ID = %q, want %q", got.ID, "t-a1b2c3")
		}
		if got.Description != "Buy milk" {
			t.Errorf("Description = %q, want %q", got.Description, "Buy milk")
		}
		if got.Completed {
			t.Error("Completed = true, want false")
		}
		if got.Created.Before(before) || got.Created.After(after) {
			t.Errorf("Created = %v, want between %v and %v", got.Created, before, after)
		}
	})
}

func TestStateLabel(t *testing.T) {
	t.Run("it labels pending and completed tasks", func(t *testing.T) {
		if got := (Task{}).StateLabel(); got != "Pending" {
			t.Errorf("StateLabel() = %q, want %q", got, "Pending")
		}
		if got := (Task{Completed: true}).StateLabel(); got != "Completed" {
			t.Errorf("StateLabel() = %q, want %q", got, "Completed")
		}
	})
}

func TestIDSet(t *testing.T) {
	t.Run("it matches existing IDs case-insensitively", func(t *testing.T) {
		exists := IDSet([]Task{{ID: "t-abc123"}})
		if !exists("T-ABC123") {
			t.Error("exists(T-ABC123) = false, want true")
		}
		if exists("t-000000") {
			t.Error("exists(t-000000) = true, want false")
		}
	})
}

func TestFormatTimestamp(t *testing.T) {
	t.Run("it formats as second-precision UTC", func(t *testing.T) {
		loc := time.FixedZone("X", 2*60*60)
		got := FormatTimestamp(time.Date(2026, 1, 2, 5, 4, 5, 999, loc))
		if got != "2026-01-02T03:04:05Z" {
			t.Errorf("FormatTimestamp() = %q, want 2026-01-02T03:04:05Z", got)
		}
	})

	t.Run("it formats the zero time as empty", func(t *testing.T) {
		if got := FormatTimestamp(time.Time{}); got != "" {
			t.Errorf("FormatTimestamp(zero) = %q, want empty", got)
		}
	})
}

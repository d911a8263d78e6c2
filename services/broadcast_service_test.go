package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"barquea-server/models"
)

func TestRolesForAudience(t *testing.T) {
	cases := []struct {
		audience string
		want     []string
	}{
		{"all", []string{"user", "host"}},
		{"hosts", []string{"host"}},
		{"guests", []string{"user"}},
	}

	for _, tc := range cases {
		roles, err := RolesForAudience(tc.audience)
		if err != nil {
			t.Fatalf("RolesForAudience(%q) returned error: %v", tc.audience, err)
		}
		if len(roles) != len(tc.want) {
			t.Fatalf("RolesForAudience(%q) = %v, want %v", tc.audience, roles, tc.want)
		}
		for i := range roles {
			if roles[i] != tc.want[i] {
				t.Errorf("RolesForAudience(%q) = %v, want %v", tc.audience, roles, tc.want)
			}
		}
	}
}

func TestRolesForAudienceRejectsUnknown(t *testing.T) {
	for _, audience := range []string{"", "admins", "everyone"} {
		if _, err := RolesForAudience(audience); !errors.Is(err, ErrUnknownAudience) {
			t.Errorf("RolesForAudience(%q) expected ErrUnknownAudience, got %v", audience, err)
		}
	}
}

func TestCleanupSparesDirectMessages(t *testing.T) {
	svc := NewMessageService(newDryRunDB(t))

	// Operators may also send with the system role into a direct chat, so the
	// cleanup must filter on the chat kind, not on the sender role alone.
	var msgs []models.Message
	stmt := svc.staleBroadcastMessages(time.Now().AddDate(0, 0, -30)).Find(&msgs).Statement

	sql := stmt.SQL.String()
	if !strings.Contains(sql, "chat_id IN (SELECT") {
		t.Fatalf("expected a chat-kind subquery scoping the delete, got %q", sql)
	}
	if !strings.Contains(sql, "kind = ") {
		t.Errorf("expected the subquery to filter on chat kind, got %q", sql)
	}

	systemVars := 0
	for _, v := range stmt.Vars {
		if s, ok := v.(string); ok && s == "system" {
			systemVars++
		}
	}
	if systemVars != 2 {
		t.Errorf("expected both the sender role and the chat kind bound to 'system', got vars %v", stmt.Vars)
	}
}

package ledger

import (
	"testing"

	"github.com/aquaworks/AquaDesk/app/models"
)

func TestCapabilityTable(t *testing.T) {
	tests := []struct {
		role   string
		action Action
		want   bool
	}{
		{models.ROLE_ADMIN, ActionUnpost, true},
		{models.ROLE_ADMIN, ActionClosePeriod, true},
		{models.ROLE_ADMIN, ActionManageUsers, true},
		{models.ROLE_ACCOUNTANT, ActionRecord, true},
		{models.ROLE_ACCOUNTANT, ActionPost, true},
		{models.ROLE_ACCOUNTANT, ActionUnpost, false},
		{models.ROLE_ACCOUNTANT, ActionClosePeriod, false},
		{models.ROLE_CLERK, ActionRecord, true},
		{models.ROLE_CLERK, ActionPost, false},
		{models.ROLE_CLERK, ActionUnpost, false},
		{"", ActionRecord, false},
		{"viewer", ActionPost, false},
	}

	for _, tt := range tests {
		actor := Actor{ID: 1, Role: tt.role}
		if got := actor.Can(tt.action); got != tt.want {
			t.Fatalf("Can(%q, %q) = %v, want %v", tt.role, tt.action, got, tt.want)
		}
	}
}

func TestIsAdmin(t *testing.T) {
	if !(Actor{Role: models.ROLE_ADMIN}).IsAdmin() {
		t.Fatalf("expected admin role to be admin")
	}
	if (Actor{Role: models.ROLE_ACCOUNTANT}).IsAdmin() {
		t.Fatalf("expected accountant role to not be admin")
	}
}

package auth

import "testing"

func TestWhitelistKey(t *testing.T) {
	tests := []struct {
		entity      Entity
		principalID string
		want        string
	}{
		{EntityUser, "11111111-2222-3333-4444-555555555555", "whitelist:users:11111111-2222-3333-4444-555555555555"},
		{EntityCompany, "11111111-2222-3333-4444-555555555555", "whitelist:companies:11111111-2222-3333-4444-555555555555"},
	}

	for _, tt := range tests {
		t.Run(string(tt.entity), func(t *testing.T) {
			got := whitelistKey(tt.entity, tt.principalID)
			if got != tt.want {
				t.Errorf("whitelistKey(%q, %q) = %q, want %q", tt.entity, tt.principalID, got, tt.want)
			}
		})
	}
}

func TestWhitelistKeyUnknownEntityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown entity")
		}
	}()
	whitelistKey(Entity("admin"), "id")
}

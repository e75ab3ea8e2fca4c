package scopedb

import (
	"encoding/json"
	"testing"
)

func TestClaimsJSON(t *testing.T) {
	tests := []struct {
		name   string
		claims Claims
		want   map[string]string
	}{
		{
			name:   "defaults role to authenticated",
			claims: Claims{Sub: "user-1", Email: "a@x.com"},
			want:   map[string]string{"sub": "user-1", "role": "authenticated", "email": "a@x.com"},
		},
		{
			name:   "keeps explicit role",
			claims: Claims{Sub: "user-2", Role: "service_role"},
			want:   map[string]string{"sub": "user-2", "role": "service_role"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := ClaimsJSON(tt.claims)
			if err != nil {
				t.Fatalf("ClaimsJSON failed: %v", err)
			}

			var got map[string]string
			if err := json.Unmarshal([]byte(payload), &got); err != nil {
				t.Fatalf("payload is not valid JSON: %v", err)
			}

			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("claim %s = %q, want %q", k, got[k], v)
				}
			}
			if _, ok := tt.want["email"]; !ok {
				if _, present := got["email"]; present {
					t.Error("empty email should be omitted")
				}
			}
		})
	}
}

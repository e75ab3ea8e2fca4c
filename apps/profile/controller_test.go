package profile

import (
	"encoding/json"
	"testing"

	"gorm.io/datatypes"
)

func TestMergeTheme(t *testing.T) {
	var cases = []struct {
		name     string
		existing string
		theme    string
		want     map[string]any
	}{
		{
			name:     "empty preferences",
			existing: "",
			theme:    "dark",
			want:     map[string]any{"theme": "dark"},
		},
		{
			name:     "overwrites previous theme",
			existing: `{"theme":"light"}`,
			theme:    "dark",
			want:     map[string]any{"theme": "dark"},
		},
		{
			name:     "preserves unrelated keys",
			existing: `{"theme":"light","language":"en","sidebar_collapsed":true}`,
			theme:    "dark",
			want:     map[string]any{"theme": "dark", "language": "en", "sidebar_collapsed": true},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			merged, err := MergeTheme(datatypes.JSON(tc.existing), tc.theme)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var got map[string]any
			if err := json.Unmarshal(merged, &got); err != nil {
				t.Fatalf("merged document is not valid JSON: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("key count mismatch: got %v want %v", got, tc.want)
			}
			for k, v := range tc.want {
				if got[k] != v {
					t.Errorf("key %s: got %v want %v", k, got[k], v)
				}
			}
		})
	}

	if _, err := MergeTheme(datatypes.JSON(`{broken`), "dark"); err == nil {
		t.Fatal("expected error for malformed preferences")
	}
}

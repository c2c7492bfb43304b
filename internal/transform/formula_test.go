// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import "testing"

func TestParseHyperlinkFormula(t *testing.T) {
	tests := []struct {
		name         string
		formula      string
		wantURL      string
		wantFriendly string
	}{
		{
			name:         "url and friendly text",
			formula:      `HYPERLINK("https://x/y", "Label")`,
			wantURL:      "https://x/y",
			wantFriendly: "Label",
		},
		{
			name:    "url only",
			formula: `HYPERLINK("https://x/y")`,
			wantURL: "https://x/y",
		},
		{
			name:         "leading equals sign",
			formula:      `=HYPERLINK("https://x/y", "Label")`,
			wantURL:      "https://x/y",
			wantFriendly: "Label",
		},
		{
			name:         "semicolon separator",
			formula:      `HYPERLINK("https://x/y"; "Label")`,
			wantURL:      "https://x/y",
			wantFriendly: "Label",
		},
		{
			name:         "comma inside quoted text is not a separator",
			formula:      `HYPERLINK("https://x/y?a=1,b=2", "Hello, world")`,
			wantURL:      "https://x/y?a=1,b=2",
			wantFriendly: "Hello, world",
		},
		{
			name:         "lowercase function name",
			formula:      `hyperlink("https://x/y", "Label")`,
			wantURL:      "https://x/y",
			wantFriendly: "Label",
		},
		{
			name:    "not a hyperlink call",
			formula: `SUM(A1:A9)`,
		},
		{
			name:    "empty formula",
			formula: "",
		},
		{
			// The comma sits inside an unterminated quote, so the whole
			// argument list collapses into one best-effort argument.
			name:    "unbalanced quotes parsed best effort",
			formula: `HYPERLINK("https://x/y, "Label")`,
			wantURL: `https://x/y, "Label`,
		},
		{
			name:         "unquoted arguments",
			formula:      `HYPERLINK(https://x/y, Label)`,
			wantURL:      "https://x/y",
			wantFriendly: "Label",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, friendly := ParseHyperlinkFormula(tt.formula)
			if url != tt.wantURL {
				t.Errorf("url = %q, want %q", url, tt.wantURL)
			}
			if friendly != tt.wantFriendly {
				t.Errorf("friendly = %q, want %q", friendly, tt.wantFriendly)
			}
		})
	}
}

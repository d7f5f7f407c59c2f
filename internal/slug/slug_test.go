package slug

import (
	"strings"
	"testing"
)

// TestGenerate exercises the name generator with typical display names,
// punctuation, accented characters and boundary conditions.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Normal names ---
		{
			name:  "simple two words",
			input: "Order Shipped",
			want:  "order_shipped",
		},
		{
			name:  "name with year",
			input: "Spring Sale 2026",
			want:  "spring_sale_2026",
		},
		{
			name:  "single word",
			input: "Welcome",
			want:  "welcome",
		},
		{
			name:  "already snake case",
			input: "payment_reminder",
			want:  "payment_reminder",
		},

		// --- Separators and punctuation ---
		{
			name:  "hyphens and dots",
			input: "otp-code.v2",
			want:  "otp_code_v2",
		},
		{
			name:  "slashes",
			input: "Support/Billing",
			want:  "support_billing",
		},
		{
			name:  "punctuation dropped",
			input: "Hello, World! How's it going?",
			want:  "hello_world_hows_it_going",
		},
		{
			name:  "ampersand between spaces",
			input: "Rock & Roll",
			want:  "rock_roll",
		},
		{
			name:  "braces from placeholders",
			input: "Hi {{first_name}}",
			want:  "hi_first_name",
		},

		// --- Unicode ---
		{
			name:  "french accents folded",
			input: "Café Résumé Noël",
			want:  "cafe_resume_noel",
		},
		{
			name:  "german umlauts folded",
			input: "Größe Über",
			want:  "groe_uber",
		},
		{
			name:  "non-latin script dropped",
			input: "Привет promo",
			want:  "promo",
		},

		// --- Edge cases ---
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t  ",
			want:  "",
		},
		{
			name:  "only punctuation",
			input: "!!! ???",
			want:  "",
		},
		{
			name:  "leading and trailing separators",
			input: "  -- launch --  ",
			want:  "launch",
		},
		{
			name:  "repeated underscores collapse",
			input: "a___b",
			want:  "a_b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerateLength verifies long names are cut to MaxLen without a
// trailing underscore.
func TestGenerateLength(t *testing.T) {
	long := strings.Repeat("ab ", 400)
	got := Generate(long)
	if len(got) > MaxLen {
		t.Errorf("len = %d, want <= %d", len(got), MaxLen)
	}
	if strings.HasSuffix(got, "_") {
		t.Errorf("trailing underscore in %q", got[len(got)-5:])
	}
}

// TestGenerateIdempotent checks that generating from an existing name
// returns it unchanged.
func TestGenerateIdempotent(t *testing.T) {
	inputs := []string{"Order Shipped", "Café 2026", "a-b-c"}
	for _, in := range inputs {
		once := Generate(in)
		if twice := Generate(once); twice != once {
			t.Errorf("Generate(Generate(%q)) = %q, want %q", in, twice, once)
		}
	}
}

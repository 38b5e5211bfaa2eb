package ingest

import "testing"

func TestNormalizePlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"passthrough", "Remote-first role with deep work blocks", "Remote-first role with deep work blocks"},
		{"collapses whitespace", "Remote-first\n\n  role\twith   deep work", "Remote-first role with deep work"},
		{"trims edges", "  fast-paced environment  ", "fast-paced environment"},
		{"empty", "", ""},
		{"whitespace only", " \n\t ", ""},
		{"loose angle brackets survive", "salary < 100k and equity > 1%", "salary < 100k and equity > 1%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"strips tags",
			"<p>Remote-first company.</p><p>We protect deep work.</p>",
			"Remote-first company. We protect deep work.",
		},
		{
			"block boundaries become spaces",
			"<ul><li>transparent pay</li><li>collaborative culture</li></ul>",
			"transparent pay collaborative culture",
		},
		{
			"drops script and style bodies",
			"<div>on-site role</div><script>track();</script><style>.x{color:red}</style>",
			"on-site role",
		},
		{
			"inline markup",
			"We value <strong>focus time</strong> and <em>automation</em>.",
			"We value focus time and automation.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLooksLikeHTML(t *testing.T) {
	if looksLikeHTML("no markup here") {
		t.Error("plain text misdetected as HTML")
	}
	if !looksLikeHTML("<p>hello</p>") {
		t.Error("markup not detected")
	}
	if looksLikeHTML("dangling < bracket") {
		t.Error("open bracket without close misdetected")
	}
}

package tags

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		tag         string
		wantContent string
		wantRest    string
	}{
		{
			name:        "content and tail",
			text:        "<summary>\n A short summary. \n</summary> trailing",
			tag:         "summary",
			wantContent: "A short summary.",
			wantRest:    " trailing",
		},
		{
			name:        "prefix before tag is discarded",
			text:        "Sure! Here you go: <ans>yes</ans>",
			tag:         "ans",
			wantContent: "yes",
			wantRest:    "",
		},
		{
			name:        "missing opening tag",
			text:        "no delimiters here",
			tag:         "topic",
			wantContent: "",
			wantRest:    "",
		},
		{
			name:        "missing closing tag absorbs rest",
			text:        "<section>everything after this",
			tag:         "section",
			wantContent: "everything after this",
			wantRest:    "",
		},
		{
			name:        "only first pair is consumed",
			text:        "<topic>Intro</topic><topic>Pointers</topic>",
			tag:         "topic",
			wantContent: "Intro",
			wantRest:    "<topic>Pointers</topic>",
		},
		{
			name:        "different tag not matched",
			text:        "<topic>Intro</topic>",
			tag:         "summary",
			wantContent: "",
			wantRest:    "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			content, rest := Extract(tc.text, tc.tag)
			if content != tc.wantContent || rest != tc.wantRest {
				t.Errorf("Extract(%q, %q) = (%q, %q), want (%q, %q)",
					tc.text, tc.tag, content, rest, tc.wantContent, tc.wantRest)
			}
		})
	}
}

func TestExtractAll(t *testing.T) {
	text := `
<topic>
Intro
</topic>

<topic>
Goroutines
</topic>

<topic>
Channels
</topic>

<summary>
A summary.
</summary>`

	got := ExtractAll(text, "topic")
	want := []string{"Intro", "Goroutines", "Channels"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractAll = %v, want %v", got, want)
	}

	if got := ExtractAll(text, "missing"); got != nil {
		t.Errorf("expected nil for absent tag, got %v", got)
	}

	// Empty fields are skipped.
	if got := ExtractAll("<opt></opt><opt>b</opt>", "opt"); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("expected empty field skipped, got %v", got)
	}
}

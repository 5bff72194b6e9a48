package quality

import (
	"strings"
	"testing"
)

func TestFindFiller(t *testing.T) {
	text := "ومن الجدير بالذكر أن الرؤيا ظنية. وفي هذا السياق نذكر التراث."
	found := FindFiller(text)
	// "الجدير بالذكر" is a substring of "ومن الجدير بالذكر" and both table
	// entries count as hits.
	if len(found) != 3 {
		t.Fatalf("found = %v", found)
	}
	want := []string{"ومن الجدير بالذكر", "وفي هذا السياق", "الجدير بالذكر"}
	for i, w := range want {
		if found[i] != w {
			t.Errorf("found[%d] = %q, want %q", i, found[i], w)
		}
	}
	if got := FindFiller("نص نظيف تمامًا."); len(got) != 0 {
		t.Errorf("clean text flagged: %v", got)
	}
}

func TestRepetitionScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"empty", "", 0},
		{"no repetition", "جملة أولى. جملة ثانية.", 0},
		{"half repeated", "نفس الجملة. نفس الجملة. جملة أخرى. جملة رابعة.", 0.25},
		{"whitespace normalized", "نفس  الجملة. نفس الجملة.", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RepetitionScore(tt.text); got != tt.want {
				t.Errorf("RepetitionScore(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestHasSensory(t *testing.T) {
	if !HasSensory("شعر الرائي بقشعريرة خفيفة.") {
		t.Error("sensory word missed")
	}
	if HasSensory("نص خالٍ من الكلمات الحسية.") {
		t.Error("false positive")
	}
}

func TestCheckSources(t *testing.T) {
	text := "ذكر ابن سيرين في كتابه ص 120 أن المال رزق، ووافقه النابلسي صفحة 88. ويرى فرويد (1900) غير ذلك."
	flags := CheckSources(text)
	if !flags.HasIbnSirinPage || !flags.HasNabulsiPage || !flags.HasPsychRef {
		t.Errorf("flags = %+v", flags)
	}

	flags = CheckSources("ذكر ابن سيرين أن المال رزق.")
	if flags.HasIbnSirinPage {
		t.Error("page flag set without a page number")
	}
}

func TestSourceProblems(t *testing.T) {
	complete := "ابن سيرين ص 10، النابلسي ص 20، ابن شاهين ص 30، ودراسة حديثة (2021)."
	if probs := SourceProblems(complete); len(probs) != 0 {
		t.Errorf("problems = %v", probs)
	}

	probs := SourceProblems("كلام بلا توثيق")
	if len(probs) != 5 {
		t.Errorf("problems = %v", probs)
	}
	for _, p := range probs[:3] {
		if !strings.Contains(p, "غير مذكور") {
			t.Errorf("unexpected problem %q", p)
		}
	}
}

func TestAnalyze(t *testing.T) {
	text := "## الخلاصة السريعة\nالرؤيا ظنية.\n## كيف نفسّر؟\nنوازن بين التراث وعلم النفس.\n## الحالات المؤثرة\nتفاصيل.\n## المصادر\nابن سيرين ص 5.\n"
	r := Analyze(text)
	if !r.HasPeopleFirst || !r.HasMethodology || !r.HasCasesSection || !r.HasSourceSection {
		t.Errorf("section flags = %+v", r)
	}
	if r.FillerCount != 0 {
		t.Errorf("filler count = %d", r.FillerCount)
	}
	if !r.Sources.HasIbnSirinPage {
		t.Error("ibn sirin page reference missed")
	}
	if len(r.SourceProblems) == 0 {
		t.Error("missing sources should be reported")
	}
}

func TestCasesDetectedInProse(t *testing.T) {
	// No cases heading, but the paper/coin money pair in prose counts.
	r := Analyze("رؤية المال الورقي تختلف عن المال المعدني في أغلب التأويلات.")
	if !r.HasCasesSection {
		t.Error("inline cases prose not detected")
	}
	if Analyze("نص بلا حالات.").HasCasesSection {
		t.Error("false positive without heading or money pair")
	}
}

func TestCheckFAQ(t *testing.T) {
	longAnswer := "جملة أولى كاملة. جملة ثانية كاملة. جملة ثالثة كاملة."
	good := make([]FAQItem, 5)
	for i := range good {
		good[i] = FAQItem{Question: "سؤال", Answer: longAnswer}
	}
	if probs := CheckFAQ(good); len(probs) != 0 {
		t.Errorf("problems = %v", probs)
	}

	t.Run("too few items", func(t *testing.T) {
		probs := CheckFAQ(good[:3])
		if len(probs) != 1 || !strings.Contains(probs[0], "أقل من") {
			t.Errorf("problems = %v", probs)
		}
	})

	t.Run("short answer", func(t *testing.T) {
		bad := append([]FAQItem{}, good...)
		bad[0] = FAQItem{Question: "ما تفسير المال؟", Answer: "رزق."}
		probs := CheckFAQ(bad)
		if len(probs) != 1 || !strings.Contains(probs[0], "قصيرة") {
			t.Errorf("problems = %v", probs)
		}
	})
}

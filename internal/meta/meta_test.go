package meta

import (
	"testing"
)

func TestParseMetaFAQ(t *testing.T) {
	t.Run("normalizes both key conventions", func(t *testing.T) {
		raw := `{"title":"تفسير حلم المال","description":"وصف","faq":[
			{"q":"س1","a":"ج1"},
			{"question":"س2","answer":"ج2"},
			{"q":"بلا جواب"}
		]}`
		got := ParseMetaFAQ(raw)
		if got.Title != "تفسير حلم المال" || got.Description != "وصف" {
			t.Errorf("meta = %+v", got)
		}
		if len(got.FAQ) != 2 {
			t.Fatalf("faq = %+v", got.FAQ)
		}
		if got.FAQ[1].Question != "س2" || got.FAQ[1].Answer != "ج2" {
			t.Errorf("faq[1] = %+v", got.FAQ[1])
		}
		if got.Warning != "" {
			t.Errorf("unexpected warning %q", got.Warning)
		}
	})

	t.Run("invalid JSON keeps raw output", func(t *testing.T) {
		got := ParseMetaFAQ("ليس JSON")
		if got.Warning != ParseWarning {
			t.Errorf("warning = %q", got.Warning)
		}
		if got.Raw != "ليس JSON" {
			t.Errorf("raw = %q", got.Raw)
		}
		if len(got.FAQ) != 0 {
			t.Errorf("faq = %+v", got.FAQ)
		}
	})
}

func TestBuildJSONLD(t *testing.T) {
	m := ParseMetaFAQ(`{"title":"عنوان","description":"وصف","faq":[{"q":"س","a":"ج"}]}`)
	doc := BuildJSONLD(m, Person{Name: "كاتب", Credentials: "خبرة"}, Person{Name: "مراجع"}, "2026-08-26")

	if doc["@context"] != "https://schema.org" {
		t.Errorf("@context = %v", doc["@context"])
	}
	graph := doc["@graph"].([]any)
	if len(graph) != 2 {
		t.Fatalf("graph = %v", graph)
	}

	article := graph[0].(map[string]any)
	if article["headline"] != "عنوان" || article["dateModified"] != "2026-08-26" {
		t.Errorf("article = %v", article)
	}
	author := article["author"].(map[string]any)
	if author["name"] != "كاتب" || author["description"] != "خبرة" {
		t.Errorf("author = %v", author)
	}
	if article["reviewedBy"].(map[string]any)["name"] != "مراجع" {
		t.Errorf("reviewedBy = %v", article["reviewedBy"])
	}

	faq := graph[1].(map[string]any)
	if faq["@type"] != "FAQPage" {
		t.Errorf("faq node = %v", faq)
	}
	entities := faq["mainEntity"].([]any)
	q := entities[0].(map[string]any)
	if q["name"] != "س" || q["acceptedAnswer"].(map[string]any)["text"] != "ج" {
		t.Errorf("question = %v", q)
	}
}

func TestBuildJSONLDOmitsEmptyFields(t *testing.T) {
	doc := BuildJSONLD(MetaFAQ{}, Person{}, Person{}, "")
	graph := doc["@graph"].([]any)
	if len(graph) != 1 {
		t.Fatalf("graph = %v", graph)
	}
	article := graph[0].(map[string]any)
	for _, key := range []string{"headline", "description", "dateModified", "author", "reviewedBy"} {
		if _, ok := article[key]; ok {
			t.Errorf("empty field %q serialized", key)
		}
	}
}

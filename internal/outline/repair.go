package outline

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Placeholder bullets seeded under injected headings. Downstream consumers
// match the literal "(Placeholder)" marker to find sections that still need
// real content, so the text is fixed.
const (
	sectionPlaceholder    = "- (Placeholder) أضف نقاطًا موجزة هنا."
	subsectionPlaceholder = "- (Placeholder) نقطة موجزة."
)

// h2LinePattern matches unindented level-2 heading lines. It is the section
// boundary used when splitting a document for subsection injection, and is
// deliberately stricter than the parse pattern: indented headings count as
// titles but not as injection anchors.
var h2LinePattern = regexp.MustCompile(`(?m)^## .+$`)

// Repair makes text structurally satisfy schema.
//
// Missing level-2 sections are appended at the document tail in schema
// order, each seeded with one placeholder bullet. Missing level-3
// subsections are injected directly below their parent's heading line,
// before any existing body, but only when the parent section already exists:
// subsection requirements never create their parent. Existing headings and
// body text are never removed or reordered.
//
// Repair is total over arbitrary input: unparseable content is carried
// through as body text, and an empty document simply gains every required
// section.
func Repair(text string, schema Schema) string {
	existingH2, existingH3 := ParseHeadings(text)
	h2Set := stringSet(existingH2)
	h3Set := stringSet(existingH3)

	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	var tail []string
	for _, title := range schema.Sections {
		if !h2Set[title] {
			tail = append(tail, "\n## "+title+"\n"+sectionPlaceholder+"\n")
		}
	}

	for _, parent := range parentOrder(schema) {
		subs := schema.Subsections[parent]
		if len(subs) == 0 || !h2Set[parent] {
			continue
		}
		var missing []string
		for _, s := range subs {
			if !h3Set[s] {
				missing = append(missing, s)
			}
		}
		if len(missing) == 0 {
			continue
		}
		text = injectSubsections(text, parent, missing)
	}

	if len(tail) > 0 {
		text = strings.TrimRightFunc(text, unicode.IsSpace) + "\n" + strings.Join(tail, "\n") + "\n"
	}
	return text
}

// injectSubsections inserts one placeholder block per missing subsection
// immediately after every heading line whose title equals parent. The
// document is split on level-2 heading lines and reassembled in order, so
// surrounding text is untouched.
func injectSubsections(text, parent string, missing []string) string {
	locs := h2LinePattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}

	var block strings.Builder
	for _, sub := range missing {
		block.WriteString("### " + sub + "\n" + subsectionPlaceholder + "\n")
	}

	var sb strings.Builder
	prev := 0
	for _, loc := range locs {
		sb.WriteString(text[prev:loc[0]])
		line := text[loc[0]:loc[1]]
		sb.WriteString(line)
		prev = loc[1]

		if strings.TrimSpace(strings.TrimPrefix(line, "## ")) == parent {
			// The section body starts after the heading's newline; the
			// injected block goes in front of it.
			if prev < len(text) && text[prev] == '\n' {
				sb.WriteByte('\n')
				prev++
			}
			sb.WriteString(block.String())
		}
	}
	sb.WriteString(text[prev:])
	return sb.String()
}

// parentOrder returns the subsection parents in deterministic order:
// schema.SubsectionOrder first, then any remaining map keys it omits.
func parentOrder(schema Schema) []string {
	seen := make(map[string]bool, len(schema.SubsectionOrder))
	order := make([]string, 0, len(schema.Subsections))
	for _, p := range schema.SubsectionOrder {
		if _, ok := schema.Subsections[p]; ok && !seen[p] {
			seen[p] = true
			order = append(order, p)
		}
	}
	var rest []string
	for p := range schema.Subsections {
		if !seen[p] {
			rest = append(rest, p)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func stringSet(titles []string) map[string]bool {
	set := make(map[string]bool, len(titles))
	for _, t := range titles {
		set[t] = true
	}
	return set
}

package outline

import "strings"

// MethodologyHeading is the canonical title of the methodology section.
// NormalizeMethodologyHeading rewrites the known variant to this form so
// downstream presence checks only need to match one string.
const MethodologyHeading = "كيف نفسّر؟"

// methodologyVariant is the alternate title some models emit for the
// methodology section.
const methodologyVariant = "منهجية التفسير"

// Section titles required in every article outline, in publication order.
const (
	QuickSummaryHeading = "الخلاصة السريعة"
	CasesHeading        = "الحالات المؤثرة"
	DreamerHeading      = "حالة الرائي"
	ComparisonHeading   = "مقارنة التراث والنفسي"
	FAQHeading          = "FAQ"
	SourcesHeading      = "المصادر"
)

// requiredSections is the fixed level-2 heading set, identical for every
// symbol.
var requiredSections = []string{
	QuickSummaryHeading,
	MethodologyHeading,
	CasesHeading,
	DreamerHeading,
	ComparisonHeading,
	FAQHeading,
	SourcesHeading,
}

// dreamerSubsections are always required under the dreamer-status section.
var dreamerSubsections = []string{"عزباء", "متزوجة", "حامل", "مطلقة", "رجل"}

// moneySymbols are the symbols that get the money-specific case breakdown.
// Membership is exact string equality on the trimmed symbol.
var moneySymbols = map[string]struct{}{
	"المال":  {},
	"مال":    {},
	"النقود": {},
	"النقد":  {},
}

// moneyCaseSubsections is the case breakdown for money dreams.
var moneyCaseSubsections = []string{
	"مال ورقي vs معدني",
	"العثور",
	"الضياع",
	"السرقة",
	"الإهداء",
	"العدّ",
	"التبرّع",
	"المبلغ والعملة",
}

// genericCaseSubsections is the fallback case breakdown for every other
// symbol.
var genericCaseSubsections = []string{
	"تنويعات شائعة",
	"سياقات تزيد/تنقص المعنى",
}

// Schema is the required heading structure for an outline: the level-2
// titles every outline must contain, and the level-3 titles required under
// specific level-2 parents. Subsections are only enforced when their parent
// section already exists in the document.
type Schema struct {
	// Sections is the ordered required level-2 title list.
	Sections []string
	// Subsections maps a level-2 title to its ordered required level-3
	// titles.
	Subsections map[string][]string
	// SubsectionOrder fixes the parent iteration order for deterministic
	// repair output.
	SubsectionOrder []string
}

// Requirements returns the heading schema for a topic symbol. The section
// list is fixed; the case-section breakdown depends on whether the trimmed
// symbol is one of the money synonyms. Unrecognized symbols always get the
// generic breakdown, so the function is total.
func Requirements(symbol string) Schema {
	subs := map[string][]string{
		DreamerHeading: dreamerSubsections,
	}
	if _, ok := moneySymbols[strings.TrimSpace(symbol)]; ok {
		subs[CasesHeading] = moneyCaseSubsections
	} else {
		subs[CasesHeading] = genericCaseSubsections
	}
	return Schema{
		Sections:        requiredSections,
		Subsections:     subs,
		SubsectionOrder: []string{DreamerHeading, CasesHeading},
	}
}

package cleanup

import "strings"

// Disclaimer is appended to every exported article. Interpretations are
// opinion, not diagnosis.
const Disclaimer = "تنويه: التفسير اجتهادي وقد يختلف من شخص لآخر. عند القلق المستمر أو ظهور أعراض مؤثرة " +
	"على الصحة النفسية، يُستحسن مراجعة مختص."

// EnsureDisclaimer appends the disclaimer unless the text already carries
// one (detected by its two marker words). Idempotent.
func EnsureDisclaimer(text string) string {
	if strings.Contains(text, "تنويه") && strings.Contains(text, "اجتهادي") {
		return text
	}
	sep := "\n\n"
	if strings.HasSuffix(text, "\n") {
		sep = "\n"
	}
	return text + sep + Disclaimer + "\n"
}

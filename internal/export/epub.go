package export

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EPUBMeta carries the package metadata for an article export.
type EPUBMeta struct {
	Title    string
	Author   string
	Language string // BCP 47 tag, defaults to "ar"
}

// ToEPUB writes the article as a single-document ePub 3.0 archive.
// The spine is marked right-to-left and the document direction is RTL.
func ToEPUB(text string, meta EPUBMeta, w io.Writer) error {
	zw := zip.NewWriter(w)

	// mimetype must be the first entry and stored uncompressed.
	header := &zip.FileHeader{
		Name:   "mimetype",
		Method: zip.Store,
	}
	mw, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create mimetype: %w", err)
	}
	if _, err := mw.Write([]byte("application/epub+zip")); err != nil {
		return err
	}

	parts := []struct {
		name    string
		content string
	}{
		{"META-INF/container.xml", epubContainerXML},
		{"OEBPS/content.opf", buildEPUBPackage(meta)},
		{"OEBPS/nav.xhtml", buildEPUBNav(text, meta)},
		{"OEBPS/styles/style.css", epubStylesheet},
		{"OEBPS/article.xhtml", buildArticleXHTML(text, meta)},
	}
	for _, p := range parts {
		fw, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", p.name, err)
		}
		if _, err := fw.Write([]byte(p.content)); err != nil {
			return fmt.Errorf("failed to write %s: %w", p.name, err)
		}
	}

	return zw.Close()
}

// WriteEPUBFile writes the article as an ePub file at path.
func WriteEPUBFile(text string, meta EPUBMeta, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()
	return ToEPUB(text, meta, f)
}

const epubContainerXML = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

// buildEPUBPackage creates the content.opf package document.
func buildEPUBPackage(meta EPUBMeta) string {
	lang := meta.Language
	if lang == "" {
		lang = "ar"
	}

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="pub-id">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
`)
	sb.WriteString(fmt.Sprintf("    <dc:identifier id=\"pub-id\">urn:uuid:%s</dc:identifier>\n", uuid.New().String()))
	sb.WriteString(fmt.Sprintf("    <dc:title>%s</dc:title>\n", escapeXML(meta.Title)))
	if meta.Author != "" {
		sb.WriteString(fmt.Sprintf("    <dc:creator>%s</dc:creator>\n", escapeXML(meta.Author)))
	}
	sb.WriteString(fmt.Sprintf("    <dc:language>%s</dc:language>\n", lang))
	sb.WriteString(fmt.Sprintf("    <meta property=\"dcterms:modified\">%s</meta>\n",
		time.Now().UTC().Format("2006-01-02T15:04:05Z")))
	sb.WriteString("  </metadata>\n\n")

	sb.WriteString(`  <manifest>
    <item id="nav" href="nav.xhtml" media-type="application/xhtml+xml" properties="nav"/>
    <item id="style" href="styles/style.css" media-type="text/css"/>
    <item id="article" href="article.xhtml" media-type="application/xhtml+xml"/>
  </manifest>

  <spine page-progression-direction="rtl">
    <itemref idref="article"/>
  </spine>
</package>
`)
	return sb.String()
}

// buildEPUBNav creates nav.xhtml from the article's H2 headings.
func buildEPUBNav(text string, meta EPUBMeta) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops" dir="rtl" xml:lang="`)
	lang := meta.Language
	if lang == "" {
		lang = "ar"
	}
	sb.WriteString(lang)
	sb.WriteString(`">
<head>
  <title>`)
	sb.WriteString(escapeXML(meta.Title))
	sb.WriteString(`</title>
</head>
<body>
  <nav epub:type="toc">
    <ol>
`)
	for i, h := range sectionHeadings(text) {
		sb.WriteString(fmt.Sprintf("      <li><a href=\"article.xhtml#s%d\">%s</a></li>\n", i, escapeXML(h)))
	}
	sb.WriteString(`    </ol>
  </nav>
</body>
</html>
`)
	return sb.String()
}

// sectionHeadings extracts the H2 heading texts in document order.
func sectionHeadings(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "## ") && !strings.HasPrefix(trimmed, "### ") {
			out = append(out, strings.TrimSpace(strings.TrimPrefix(trimmed, "## ")))
		}
	}
	return out
}

// buildArticleXHTML converts the markdown article to a single XHTML document.
// H2 headings get id="s0", id="s1", ... so nav.xhtml can link to them.
func buildArticleXHTML(text string, meta EPUBMeta) string {
	var sb strings.Builder
	lang := meta.Language
	if lang == "" {
		lang = "ar"
	}
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" dir="rtl" xml:lang="`)
	sb.WriteString(lang)
	sb.WriteString(`">
<head>
  <title>`)
	sb.WriteString(escapeXML(meta.Title))
	sb.WriteString(`</title>
  <link rel="stylesheet" type="text/css" href="styles/style.css"/>
</head>
<body>
`)

	sectionIdx := 0
	inParagraph := false
	closeParagraph := func() {
		if inParagraph {
			sb.WriteString("</p>\n")
			inParagraph = false
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			closeParagraph()
		case strings.HasPrefix(trimmed, "### "):
			closeParagraph()
			sb.WriteString("<h3>")
			sb.WriteString(escapeXML(strings.TrimPrefix(trimmed, "### ")))
			sb.WriteString("</h3>\n")
		case strings.HasPrefix(trimmed, "## "):
			closeParagraph()
			sb.WriteString(fmt.Sprintf("<h2 id=\"s%d\">", sectionIdx))
			sectionIdx++
			sb.WriteString(escapeXML(strings.TrimPrefix(trimmed, "## ")))
			sb.WriteString("</h2>\n")
		case strings.HasPrefix(trimmed, "# "):
			closeParagraph()
			sb.WriteString("<h1>")
			sb.WriteString(escapeXML(strings.TrimPrefix(trimmed, "# ")))
			sb.WriteString("</h1>\n")
		default:
			if inParagraph {
				sb.WriteString(" ")
			} else {
				sb.WriteString("<p>")
				inParagraph = true
			}
			sb.WriteString(escapeXML(trimmed))
		}
	}
	closeParagraph()

	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}

const epubStylesheet = `body {
  font-family: "Noto Naskh Arabic", "Amiri", serif;
  font-size: 1em;
  line-height: 1.8;
  margin: 1em;
  direction: rtl;
  text-align: right;
}

h1, h2, h3 {
  font-weight: bold;
  margin-top: 1.5em;
  margin-bottom: 0.5em;
}

h1 {
  font-size: 1.8em;
  border-bottom: 1px solid #ccc;
  padding-bottom: 0.3em;
}

h2 {
  font-size: 1.4em;
}

h3 {
  font-size: 1.2em;
}

p {
  margin: 0.5em 0;
}
`

package services

import (
	"html"
	"regexp"
	"strings"
)

// ResponseFormatter turns a model's plain-text reply into safe markup. It is
// applied exactly once per reply, before the reply is stored.
type ResponseFormatter interface {
	Format(text string) string
}

type responseFormatter struct{}

func NewResponseFormatter() ResponseFormatter {
	return &responseFormatter{}
}

// recognizedHeadings is the exact vocabulary of section labels the prompts ask
// the model to use. Anything else ending in ":" is just a paragraph.
var recognizedHeadings = map[string]bool{
	"Summary":             true,
	"Subtopics":           true,
	"Details":             true,
	"Next":                true,
	"Next Steps":          true,
	"Roadmap":             true,
	"ATS":                 true,
	"ATS Assessment":      true,
	"Top Job Suggestions": true,
	"Job Readiness":       true,
}

// numberedItemRe requires digits, a dot, then at least one space before the
// item text. "1.Learn" must not open a numbered list.
var numberedItemRe = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)

type listType string

const (
	listNone    listType = ""
	listOrdered listType = "ol"
	listBullets listType = "ul"
)

// Format implements ResponseFormatter. A single pass over the reply's lines:
// blank lines close an open list, recognized "Label:" lines become headings,
// "<n>. text" lines collect into an ordered list, "- "/"* " lines into an
// unordered list, and everything else becomes a paragraph. The open list type
// is tracked explicitly so the closing tag always matches the opening one.
func (f *responseFormatter) Format(text string) string {
	var out strings.Builder
	openList := listNone

	closeList := func() {
		if openList != listNone {
			out.WriteString("</" + string(openList) + ">\n")
			openList = listNone
		}
	}
	openListAs := func(lt listType) {
		if openList != lt {
			closeList()
			out.WriteString("<" + string(lt) + ">\n")
			openList = lt
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if line == "" {
			closeList()
			continue
		}

		if strings.HasSuffix(line, ":") && recognizedHeadings[strings.TrimSpace(strings.TrimSuffix(line, ":"))] {
			closeList()
			out.WriteString(`<h4 class="reply-heading">` + html.EscapeString(line) + "</h4>\n")
			continue
		}

		if m := numberedItemRe.FindStringSubmatch(line); m != nil {
			openListAs(listOrdered)
			out.WriteString("<li>" + html.EscapeString(strings.TrimSpace(m[2])) + "</li>\n")
			continue
		}

		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
			openListAs(listBullets)
			out.WriteString("<li>" + html.EscapeString(strings.TrimSpace(line[2:])) + "</li>\n")
			continue
		}

		closeList()
		out.WriteString("<p>" + html.EscapeString(line) + "</p>\n")
	}

	closeList()

	return strings.TrimSuffix(out.String(), "\n")
}

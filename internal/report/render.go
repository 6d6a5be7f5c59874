// Package report renders results as an HTML study sheet.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"quizharvest/internal/aggregate"
	"quizharvest/internal/question"
)

const pageStyle = `body{font-family:system-ui,sans-serif;margin:2rem auto;max-width:56rem;line-height:1.4}
h2{border-bottom:1px solid #ccc;padding-bottom:.25rem}
ol.questions>li{margin-bottom:1rem}
.correct{color:#1a7f37}.incorrect{color:#cf222e}.unknown{color:#6e7781}
table{border-collapse:collapse}td{padding:.1rem .6rem}
nav a{margin-right:1rem}`

// RenderHTML renders the study sheet into a string.
func RenderHTML(ctx context.Context, title string, results *aggregate.Results) (string, error) {
	var builder strings.Builder
	if err := StudySheet(title, results).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// StudySheet lists every test with its questions and correct answers.
func StudySheet(title string, results *aggregate.Results) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		entries := results.Entries()
		if _, err := fmt.Fprintf(w, "<!doctype html>\n<html lang=\"es\">\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n<style>%s</style>\n</head>\n<body>\n<h1>%s</h1>\n",
			templ.EscapeString(title), pageStyle, templ.EscapeString(title)); err != nil {
			return err
		}
		if len(entries) == 0 {
			_, err := io.WriteString(w, "<p>No questions.</p>\n</body>\n</html>\n")
			return err
		}
		if _, err := io.WriteString(w, "<nav>"); err != nil {
			return err
		}
		for i, entry := range entries {
			if _, err := fmt.Fprintf(w, "<a href=\"#test-%d\">%s</a>", i+1, templ.EscapeString(entry.Name)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</nav>\n"); err != nil {
			return err
		}
		for i, entry := range entries {
			if err := testSection(i+1, entry).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</body>\n</html>\n")
		return err
	})
}

func testSection(index int, entry aggregate.Entry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<section id=\"test-%d\">\n<h2>%s</h2>\n<p>%d question(s)</p>\n<ol class=\"questions\">\n",
			index, templ.EscapeString(entry.Name), len(entry.Questions)); err != nil {
			return err
		}
		for _, q := range entry.Questions {
			if err := questionItem(q).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ol>\n</section>\n")
		return err
	})
}

func questionItem(q question.Question) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, "<li><p><strong>%s</strong></p>", templ.EscapeString(q.Text))
		switch answer := q.Answer.(type) {
		case question.TextAnswer:
			fmt.Fprintf(&b, "<p>%s %s</p>", mark(answer.Correct), templ.EscapeString(answer.Value))
		case question.ChoiceList:
			b.WriteString("<ul>")
			for _, option := range answer.Options {
				fmt.Fprintf(&b, "<li>%s %s</li>", mark(option.Correct), templ.EscapeString(option.Text))
			}
			b.WriteString("</ul>")
		case question.MatchingList:
			b.WriteString("<table>")
			for _, pair := range answer.Pairs {
				fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>&rarr; %s</td></tr>",
					mark(question.FromBool(pair.Correct)), templ.EscapeString(pair.Left), templ.EscapeString(pair.Right))
			}
			b.WriteString("</table>")
		}
		b.WriteString("</li>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func mark(c question.Correctness) string {
	switch c {
	case question.Correct:
		return `<span class="correct" title="correct">&#10003;</span>`
	case question.Incorrect:
		return `<span class="incorrect" title="incorrect">&#10007;</span>`
	default:
		return `<span class="unknown" title="unknown">?</span>`
	}
}

// Package digest renders the collected articles into a single
// self-contained HTML document suitable for email clients: inline styles
// only, table layout, and anchor-based table-of-contents navigation.
package digest

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"journaldigest/internal/domain"
)

// Renderer assembles the digest document.
type Renderer struct {
	tmpl *template.Template
	now  func() time.Time
}

// NewRenderer parses the digest template once. The clock is injectable for
// tests and defaults to time.Now.
func NewRenderer(now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}
	return &Renderer{
		tmpl: template.Must(template.New("digest").Parse(digestTemplate)),
		now:  now,
	}
}

type articleView struct {
	Index       int
	Anchor      string
	TOCAnchor   string
	Title       string
	Journal     string
	PMID        string
	PubType     domain.PubType
	Color       string
	AuthorLabel string
	AuthorText  string
	Summary     template.HTML
}

type journalView struct {
	Name     string
	Anchor   string
	Articles []articleView
}

type digestView struct {
	GeneratedOn string
	Journals    []journalView
}

// Render groups the articles by journal, sorts the journal groups
// alphabetically, and assigns each article a dense 1-based display index
// in that sorted order. The index drives the anchor pair
// article{N} / toc_article{N} as well as the numbered badge.
func (r *Renderer) Render(articles []domain.Article) (string, error) {
	groups := map[string][]domain.Article{}
	var names []string
	for _, a := range articles {
		if _, ok := groups[a.Journal]; !ok {
			names = append(names, a.Journal)
		}
		groups[a.Journal] = append(groups[a.Journal], a)
	}
	sort.Strings(names)

	view := digestView{GeneratedOn: r.now().Format("January 2, 2006")}

	index := 0
	for _, name := range names {
		jv := journalView{
			Name:   name,
			Anchor: "journal_" + strings.ReplaceAll(name, " ", "_"),
		}
		for _, a := range groups[name] {
			index++
			jv.Articles = append(jv.Articles, newArticleView(index, a))
		}
		view.Journals = append(view.Journals, jv)
	}

	var sb strings.Builder
	if err := r.tmpl.Execute(&sb, view); err != nil {
		return "", fmt.Errorf("execute digest template: %w", err)
	}
	return sb.String(), nil
}

func newArticleView(index int, a domain.Article) articleView {
	v := articleView{
		Index:     index,
		Anchor:    fmt.Sprintf("article%d", index),
		TOCAnchor: fmt.Sprintf("toc_article%d", index),
		Title:     a.Title,
		Journal:   a.Journal,
		PMID:      a.PMID,
		PubType:   a.PubType,
		Color:     a.PubType.Color(),
		// Summary text already carries the styled heading fragments from
		// the summarizer; only line breaks still need conversion.
		Summary: template.HTML(strings.ReplaceAll(a.Summary, "\n", "<br/>")),
	}

	switch {
	case a.FirstAuthor != "" && a.LastAuthor != "" && a.FirstAuthor != a.LastAuthor:
		v.AuthorLabel = "Authors"
		v.AuthorText = a.FirstAuthor + " ... " + a.LastAuthor
	case a.FirstAuthor != "":
		v.AuthorLabel = "Author"
		v.AuthorText = a.FirstAuthor
	}

	return v
}

const digestTemplate = `<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Cleveland Clinic Alumni Journal Update</title>
    <style>
        a[name], a[id] {
            color: inherit;
            text-decoration: none;
            display: block;
            position: relative;
            top: -20px;
            visibility: hidden;
        }
        .return-link {
            color: #0070C0 !important;
            text-decoration: none !important;
            font-size: 12px !important;
        }
    </style>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px; margin: 0;">
    <table cellspacing="0" cellpadding="0" border="0" width="100%" style="max-width: 600px; margin: 0 auto;">
        <tr>
            <td>
                <a name="top" id="top"></a>
                <h1 style="color: #0070C0;">&#129504; Cleveland Clinic Alumni Journal Update</h1>
                <p><i>Generated on {{.GeneratedOn}}</i></p>
            </td>
        </tr>
        <tr>
            <td style="padding-bottom: 20px;">
                <table cellspacing="0" cellpadding="0" border="0" width="100%" style="background: #fff; border: 1px solid #ddd; border-radius: 8px; box-shadow: 0 2px 5px rgba(0,0,0,0.1);">
                    <tr>
                        <td style="padding: 15px;">
                            <h2 style="margin-top: 0; font-size: 18px; color: #333;">In This Update:</h2>
{{- range .Journals}}
                            <h3 style="margin-top: 15px; margin-bottom: 10px; font-size: 16px; color: #2e8b57; border-bottom: 1px solid #2e8b57; padding-bottom: 5px;">{{.Name}}</h3>
                            <table cellspacing="0" cellpadding="0" border="0" width="100%">
{{- range .Articles}}
                                <tr>
                                    <td style="padding: 6px 0;">
                                        <table cellspacing="0" cellpadding="0" border="0" width="100%">
                                            <tr>
                                                <td width="30" style="vertical-align: top;">
                                                    <span style="display: inline-block; width: 24px; height: 24px; line-height: 24px; text-align: center; background-color: {{.Color}}; color: white; border-radius: 50%; margin-right: 8px; font-weight: bold; font-size: 14px;">{{.Index}}</span>
                                                </td>
                                                <td>
                                                    <a name="{{.TOCAnchor}}" id="{{.TOCAnchor}}"></a>
                                                    <a href="#{{.Anchor}}" style="color: #0070C0; text-decoration: none; font-weight: bold;">{{.Title}}</a>
                                                </td>
                                            </tr>
                                        </table>
                                    </td>
                                </tr>
{{- end}}
                            </table>
{{- end}}
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
{{- range .Journals}}
        <tr>
            <td style="padding-bottom: 15px;">
                <a name="{{.Anchor}}" id="{{.Anchor}}"></a>
                <h2 style="margin: 0; color: #2e8b57; font-size: 20px; border-bottom: 2px solid #2e8b57; padding-bottom: 8px;">{{.Name}}</h2>
            </td>
        </tr>
{{- range .Articles}}
        <tr>
            <td style="padding-bottom: 20px;">
                <a name="{{.Anchor}}" id="{{.Anchor}}"></a>
                <table cellspacing="0" cellpadding="0" border="0" width="100%" style="background: #fff; border: 1px solid {{.Color}}; border-radius: 8px; box-shadow: 0 2px 5px rgba(0,0,0,0.1);">
                    <tr>
                        <td style="padding: 12px 15px; background-color: #f0f8ff; border-top-left-radius: 8px; border-top-right-radius: 8px; border-bottom: 1px solid #e0e0e0;">
                            <table cellspacing="0" cellpadding="0" border="0" width="100%">
                                <tr>
                                    <td width="40" style="vertical-align: top;">
                                        <div style="width: 30px; height: 30px; background-color: {{.Color}}; border-radius: 50%; color: white; font-weight: bold; font-size: 16px; text-align: center; line-height: 30px;">{{.Index}}</div>
                                    </td>
                                    <td style="vertical-align: middle;">
                                        <div style="font-weight: bold; font-size: 16px; line-height: 1.3;">{{.Title}}</div>
                                    </td>
                                    <td width="80" style="vertical-align: middle; text-align: right;">
                                        <a href="#{{.TOCAnchor}}" class="return-link" style="color: #0070C0; text-decoration: none; font-size: 12px;">&#8593; Return</a>
                                    </td>
                                </tr>
                            </table>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 15px;">
                            <table cellspacing="0" cellpadding="0" border="0" width="100%">
                                <tr>
                                    <td width="80" style="vertical-align: top; color: #666;"><b>Journal:</b></td>
                                    <td style="vertical-align: top;">{{.Journal}}</td>
                                </tr>
                                <tr>
                                    <td width="80" style="vertical-align: top; padding-top: 5px; color: #666;"><b>Type:</b></td>
                                    <td style="vertical-align: top; padding-top: 5px;">
                                        <span style="display: inline-block; padding: 2px 8px; background-color: {{.Color}}; color: white; border-radius: 4px; font-size: 12px;">{{.PubType}}</span>
                                    </td>
                                </tr>
                                <tr>
                                    <td width="80" style="vertical-align: top; padding-top: 5px; color: #666;"><b>PMID:</b></td>
                                    <td style="vertical-align: top; padding-top: 5px;">
                                        <a href="https://pubmed.ncbi.nlm.nih.gov/{{.PMID}}/" target="_blank" style="color: #0070C0; text-decoration: none;">{{.PMID}}</a>
                                    </td>
                                </tr>
{{- if .AuthorLabel}}
                                <tr>
                                    <td colspan="2" style="padding-top: 5px;">
                                        <p><b>{{.AuthorLabel}}:</b> {{.AuthorText}}</p>
                                    </td>
                                </tr>
{{- end}}
                                <tr>
                                    <td colspan="2" style="padding-top: 10px;">
                                        <div style="line-height: 1.5; color: #333;">{{.Summary}}</div>
                                    </td>
                                </tr>
                            </table>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
{{- end}}
{{- end}}
    </table>
</body>
</html>
`

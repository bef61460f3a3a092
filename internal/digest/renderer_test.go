package digest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"journaldigest/internal/domain"
)

func fixedClock() time.Time {
	return time.Date(2026, time.August, 1, 9, 0, 0, 0, time.UTC)
}

func renderDocument(t *testing.T, articles []domain.Article) (*goquery.Document, string) {
	t.Helper()

	html, err := NewRenderer(fixedClock).Render(articles)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("rendered digest does not parse: %v", err)
	}
	return doc, html
}

func TestRenderSortsJournalsAndNumbersArticles(t *testing.T) {
	t.Parallel()

	// Fetched order deliberately puts Spine Journal before Pain Medicine;
	// the digest must present journals alphabetically with a dense index.
	articles := []domain.Article{
		{Journal: "Spine Journal", Title: "Rod Fracture Rates", PMID: "300", PubType: domain.TypeRetrospectiveCohort},
		{Journal: "Pain Medicine", Title: "Epidural Steroid Outcomes", PMID: "100", PubType: domain.TypeRandomizedTrial},
		{Journal: "Pain Medicine", Title: "Opioid Sparing After Fusion", PMID: "200", PubType: domain.TypeMetaAnalysis},
	}

	doc, _ := renderDocument(t, articles)

	headings := doc.Find("h2").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Text() != "In This Update:"
	})
	var order []string
	headings.Each(func(_ int, s *goquery.Selection) {
		order = append(order, s.Text())
	})
	if len(order) != 2 || order[0] != "Pain Medicine" || order[1] != "Spine Journal" {
		t.Fatalf("unexpected journal order: %v", order)
	}

	// Index 1 belongs to the first article of the alphabetically first
	// journal, not to the first fetched article.
	title := doc.Find(`a[href="#article1"]`).First().Text()
	if title != "Epidural Steroid Outcomes" {
		t.Fatalf("article1 = %q", title)
	}
	title = doc.Find(`a[href="#article3"]`).First().Text()
	if title != "Rod Fracture Rates" {
		t.Fatalf("article3 = %q", title)
	}
}

func TestRenderAnchorsPairUp(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{
		{Journal: "Spine Journal", Title: "A", PMID: "1", PubType: domain.TypeOther},
		{Journal: "Spine Journal", Title: "B", PMID: "2", PubType: domain.TypeOther},
		{Journal: "European Spine Journal", Title: "C", PMID: "3", PubType: domain.TypeOther},
	}

	doc, _ := renderDocument(t, articles)

	for i := 1; i <= len(articles); i++ {
		if n := doc.Find(fmt.Sprintf(`a[href="#article%d"]`, i)).Length(); n != 1 {
			t.Fatalf("expected one TOC link for article%d, got %d", i, n)
		}
		if n := doc.Find(fmt.Sprintf("a#article%d", i)).Length(); n != 1 {
			t.Fatalf("expected one target anchor for article%d, got %d", i, n)
		}
		if n := doc.Find(fmt.Sprintf("a#toc_article%d", i)).Length(); n != 1 {
			t.Fatalf("expected one TOC anchor for article%d, got %d", i, n)
		}
	}

	if n := doc.Find("a#journal_Spine_Journal").Length(); n != 1 {
		t.Fatalf("expected one Spine Journal anchor, got %d", n)
	}
}

func TestRenderArticleDetails(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{{
		Journal:     "Spine Journal",
		Title:       "Cement Augmentation of Pedicle Screws",
		PMID:        "31452104",
		FirstAuthor: "Smith JA",
		LastAuthor:  "Delgado R",
		PubType:     domain.TypeMetaAnalysis,
		Summary:     "First line.\nSecond line.",
	}}

	doc, html := renderDocument(t, articles)

	if got, _ := doc.Find(`a[href="https://pubmed.ncbi.nlm.nih.gov/31452104/"]`).Attr("target"); got != "_blank" {
		t.Fatalf("PMID link missing or wrong target: %q", got)
	}
	if !strings.Contains(doc.Text(), "Smith JA ... Delgado R") {
		t.Fatal("author range line missing")
	}
	if !strings.Contains(html, "background-color: #ffd700") {
		t.Fatal("publication-type color not applied")
	}
	if !strings.Contains(html, "First line.<br/>Second line.") {
		t.Fatal("summary line breaks not converted")
	}
	if !strings.Contains(doc.Text(), "Generated on August 1, 2026") {
		t.Fatal("generation date missing")
	}
}

func TestRenderAuthorLineVariants(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		article domain.Article
		want    string
		absent  string
	}{
		{
			name:    "single author",
			article: domain.Article{Journal: "J", Title: "T", FirstAuthor: "Ngata H", PubType: domain.TypeOther},
			want:    "Author:",
			absent:  "Authors:",
		},
		{
			name:    "same first and last",
			article: domain.Article{Journal: "J", Title: "T", FirstAuthor: "Ngata H", LastAuthor: "Ngata H", PubType: domain.TypeOther},
			want:    "Author:",
			absent:  "...",
		},
		{
			name:    "no authors",
			article: domain.Article{Journal: "J", Title: "T", PubType: domain.TypeOther},
			absent:  "Author",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			doc, _ := renderDocument(t, []domain.Article{tc.article})
			text := doc.Text()
			if tc.want != "" && !strings.Contains(text, tc.want) {
				t.Fatalf("expected %q in rendered text", tc.want)
			}
			if tc.absent != "" && strings.Contains(text, tc.absent) {
				t.Fatalf("did not expect %q in rendered text", tc.absent)
			}
		})
	}
}

func TestRenderEscapesTitles(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{{
		Journal: "Spine Journal",
		Title:   `Fusion <script>alert("x")</script> Rates`,
		PMID:    "1",
		PubType: domain.TypeOther,
	}}

	_, html := renderDocument(t, articles)

	if strings.Contains(html, "<script>") {
		t.Fatal("title markup must be escaped")
	}
}

func TestRenderSummaryHTMLPassesThrough(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{{
		Journal: "Spine Journal",
		Title:   "T",
		PMID:    "1",
		PubType: domain.TypeOther,
		Summary: `<div style="font-weight: bold;">Summary</div> body text`,
	}}

	_, html := renderDocument(t, articles)

	// Summaries arrive pre-styled and render verbatim.
	if !strings.Contains(html, `<div style="font-weight: bold;">Summary</div>`) {
		t.Fatal("styled summary fragment was escaped")
	}
}

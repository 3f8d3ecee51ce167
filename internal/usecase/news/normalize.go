package news

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"stockai-news/internal/domain/entity"
	"stockai-news/internal/infra/feed"
	"stockai-news/internal/signal"
)

// Placeholder values used when a feed omits a field.
const (
	noTitle       = "No Title"
	noDescription = "No description available"
	unknownAuthor = "Unknown"
)

// normalizeItem maps one raw feed item into the canonical Article shape.
//
// The ID is {sourceName}-{indexInFeed}-{fetchEpochMillis}; it is unique
// within a single fetch batch only. Collisions across refreshes are an
// accepted tradeoff because nothing persists between batches.
//
// Both signal extractors run over title + " " + description snippet, not the
// full content body.
func normalizeItem(src entity.Source, item feed.Item, index int, fetchedAt time.Time) entity.Article {
	title := item.Title
	if title == "" {
		title = noTitle
	}

	snippet := htmlToText(item.Description)

	description := snippet
	if description == "" {
		description = item.Content
	}
	if description == "" {
		description = noDescription
	}

	publishedAt := fetchedAt
	if item.Published != nil {
		publishedAt = *item.Published
	}

	author := item.Author
	if author == "" {
		author = unknownAuthor
	}

	imageURL := item.ImageURL
	if imageURL == "" {
		imageURL = firstImageURL(item.Content)
	}

	signalText := item.Title + " " + snippet

	// Always an array on the wire, never null.
	tickers := signal.ExtractTickers(signalText)
	if tickers == nil {
		tickers = []string{}
	}

	return entity.Article{
		ID:          fmt.Sprintf("%s-%d-%d", src.Name, index, fetchedAt.UnixMilli()),
		Title:       title,
		Description: description,
		Content:     item.Content,
		URL:         item.Link,
		PublishedAt: publishedAt,
		Source:      src.Name,
		Category:    src.Category,
		Sentiment:   signal.Classify(signalText),
		Tickers:     tickers,
		ImageURL:    imageURL,
		Author:      author,
	}
}

// htmlToText strips markup from a feed description, returning its trimmed
// text. Plain-text input passes through unchanged.
func htmlToText(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}

// firstImageURL returns the src of the first <img> in an HTML fragment, or
// "" if there is none. Used as a last resort when the feed carries no image
// metadata.
func firstImageURL(content string) string {
	if content == "" || !strings.Contains(content, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img").First().Attr("src")
	return src
}

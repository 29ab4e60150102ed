package report

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/seenimoa/trademetriks/pkg/models"
	"github.com/seenimoa/trademetriks/pkg/utils"
)

// ════════════════════════════════════════════════════════════════════
// RSS 2.0 feed — one item per trading day, newest first
// ════════════════════════════════════════════════════════════════════

type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link,omitempty"`
	Description string  `xml:"description"`
	PubDate     string  `xml:"pubDate"`
	GUID        rssGUID `xml:"guid"`
	Category    string  `xml:"category"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// FeedOptions describes the channel.
type FeedOptions struct {
	Title string
	Link  string // dashboard URL; items link to it
}

// GenerateRSS renders the daily P/L series as an RSS 2.0 feed.
func GenerateRSS(db *models.Dashboard, opts FeedOptions) ([]byte, error) {
	if db == nil {
		return nil, ErrNilDashboard
	}
	if opts.Title == "" {
		opts.Title = DefaultOptions().Title
	}

	ch := rssChannel{
		Title:       opts.Title + " daily P/L",
		Link:        opts.Link,
		Description: fmt.Sprintf("Net profit or loss of closed positions, %d trading days", len(db.Daily)),
		Items:       make([]rssItem, 0, len(db.Daily)),
	}
	if !db.GeneratedAt.IsZero() {
		ch.LastBuildDate = db.GeneratedAt.In(utils.IST).Format(time.RFC1123Z)
	}

	for i := len(db.Daily) - 1; i >= 0; i-- {
		d := db.Daily[i]
		ch.Items = append(ch.Items, rssItem{
			Title: fmt.Sprintf("%s: %s %s", d.Date.Format("02 Jan 2006"),
				outcome(d.Net), utils.FormatINR(d.Net)),
			Link: opts.Link,
			Description: fmt.Sprintf("%s. %d closed positions, traded value %s, cumulative %s.",
				d.Weekday, d.Positions, utils.FormatINR(d.TradeValue), utils.FormatINR(d.Cumulative)),
			PubDate:  d.Date.In(utils.IST).Format(time.RFC1123Z),
			GUID:     rssGUID{Value: "trademetriks:" + d.Date.String()},
			Category: d.Weekday,
		})
	}

	out, err := xml.MarshalIndent(rssDoc{Version: "2.0", Channel: ch}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding rss: %w", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

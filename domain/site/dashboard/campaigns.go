package dashboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Sort keys accepted by FilterCampaigns.
const (
	SortDateDesc     = "date-desc"
	SortDateAsc      = "date-asc"
	SortViewsDesc    = "views-desc"
	SortViewsAsc     = "views-asc"
	SortProgressDesc = "progress-desc"
	SortProgressAsc  = "progress-asc"
)

type CampaignQuery struct {
	Search string
	Status string
	Sort   string
}

// FilterCampaigns applies a case-insensitive title search, an exact status
// match and a sort. An unknown sort key keeps fixture order.
func FilterCampaigns(campaigns []Campaign, q CampaignQuery) []Campaign {
	search := cases.Lower(language.Und).String(strings.TrimSpace(q.Search))

	out := make([]Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if search != "" && !strings.Contains(cases.Lower(language.Und).String(c.Title), search) {
			continue
		}
		if q.Status != "" && c.Status != q.Status {
			continue
		}
		out = append(out, c)
	}

	var less func(a, b Campaign) bool
	switch q.Sort {
	case SortDateDesc, "":
		less = func(a, b Campaign) bool { return a.StartDate.After(b.StartDate) }
	case SortDateAsc:
		less = func(a, b Campaign) bool { return a.StartDate.Before(b.StartDate) }
	case SortViewsDesc:
		less = func(a, b Campaign) bool { return a.CurrentViews > b.CurrentViews }
	case SortViewsAsc:
		less = func(a, b Campaign) bool { return a.CurrentViews < b.CurrentViews }
	case SortProgressDesc:
		less = func(a, b Campaign) bool { return a.Progress() > b.Progress() }
	case SortProgressAsc:
		less = func(a, b Campaign) bool { return a.Progress() < b.Progress() }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// DetectPlatform names the video host behind url.
func DetectPlatform(url string) string {
	switch {
	case strings.Contains(url, "tiktok.com"):
		return "TikTok"
	case strings.Contains(url, "youtube.com"), strings.Contains(url, "youtu.be"):
		return "YouTube"
	case strings.Contains(url, "instagram.com"):
		return "Instagram"
	case strings.Contains(url, "facebook.com"):
		return "Facebook"
	case strings.Contains(url, "twitter.com"), strings.Contains(url, "x.com"):
		return "X"
	default:
		return "Other"
	}
}

// RelativeTime renders how long ago t was, as seen at now.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	minutes := int(d / time.Minute)
	hours := int(d / time.Hour)
	days := int(d / (24 * time.Hour))

	switch {
	case minutes < 1:
		return "just now"
	case minutes < 60:
		return fmt.Sprintf("uploaded %d minute%s ago", minutes, plural(minutes))
	case hours < 24:
		return fmt.Sprintf("uploaded %d hour%s ago", hours, plural(hours))
	case days == 1:
		return "yesterday"
	case days < 30:
		return fmt.Sprintf("%d days ago", days)
	case days < 365:
		return fmt.Sprintf("%d months ago", days/30)
	default:
		return fmt.Sprintf("%d years ago", days/365)
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

var printer = message.NewPrinter(language.English)

// FormatCount groups thousands: 12345 -> "12,345".
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

func FormatMoney(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

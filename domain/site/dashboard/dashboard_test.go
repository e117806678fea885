package dashboard

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(campaigns []Campaign) []string {
	out := make([]string, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, c.Title)
	}
	return out
}

func TestNewFixtureProvider_LoadsEmbeddedFixtures(t *testing.T) {
	p, err := NewFixtureProvider()
	require.NoError(t, err)

	client, err := p.ClientDashboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, client.Campaigns, 5)
	assert.Len(t, client.Videos, 5)
	assert.Equal(t, time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC), client.Campaigns[0].StartDate)

	clipper, err := p.ClipperDashboard(context.Background())
	require.NoError(t, err)
	require.Len(t, clipper.Videos, 2)
	assert.Nil(t, clipper.Videos[1].PostedDate)
	require.NotNil(t, clipper.Videos[0].DaysRemaining)
	assert.Equal(t, 15, *clipper.Videos[0].DaysRemaining)
	assert.InDelta(t, 30.86, clipper.TotalEarnings(), 0.001)
	assert.Equal(t, int64(12345), clipper.TotalViews())
}

func TestFixtureProvider_ReturnsCopies(t *testing.T) {
	p, err := NewFixtureProvider()
	require.NoError(t, err)

	first, _ := p.ClientDashboard(context.Background())
	first.Campaigns[0].Title = "mutated"

	second, _ := p.ClientDashboard(context.Background())
	assert.Equal(t, "Summer Product Launch", second.Campaigns[0].Title)
}

func TestLoadFixtures_RejectsUnknownFields(t *testing.T) {
	_, err := LoadFixtures(strings.NewReader("client:\n  campaigns: []\n  surprise: true\n"))
	assert.Error(t, err)
}

func TestFilterCampaigns(t *testing.T) {
	p, err := NewFixtureProvider()
	require.NoError(t, err)
	d, _ := p.ClientDashboard(context.Background())

	cases := []struct {
		name  string
		query CampaignQuery
		want  []string
	}{
		{
			name:  "default sort is newest first",
			query: CampaignQuery{},
			want:  []string{"Viral Challenge Campaign", "Brand Awareness Campaign", "Holiday Collection", "Product Demo Series", "Summer Product Launch"},
		},
		{
			name:  "search is case-insensitive",
			query: CampaignQuery{Search: "  PRODUCT ", Sort: SortDateAsc},
			want:  []string{"Summer Product Launch", "Product Demo Series"},
		},
		{
			name:  "status filter",
			query: CampaignQuery{Status: "Active", Sort: SortViewsDesc},
			want:  []string{"Brand Awareness Campaign", "Holiday Collection"},
		},
		{
			name:  "progress ascending",
			query: CampaignQuery{Sort: SortProgressAsc},
			want:  []string{"Brand Awareness Campaign", "Holiday Collection", "Product Demo Series", "Viral Challenge Campaign", "Summer Product Launch"},
		},
		{
			name:  "unknown sort keeps fixture order",
			query: CampaignQuery{Sort: "sideways"},
			want:  []string{"Summer Product Launch", "Holiday Collection", "Brand Awareness Campaign", "Product Demo Series", "Viral Challenge Campaign"},
		},
		{
			name:  "no matches",
			query: CampaignQuery{Search: "nothing like this"},
			want:  []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, titles(FilterCampaigns(d.Campaigns, tc.query)))
		})
	}
}

func TestDetectPlatform(t *testing.T) {
	assert.Equal(t, "TikTok", DetectPlatform("https://www.tiktok.com/@a/video/1"))
	assert.Equal(t, "YouTube", DetectPlatform("https://youtu.be/abc"))
	assert.Equal(t, "YouTube", DetectPlatform("https://youtube.com/shorts/def456"))
	assert.Equal(t, "Instagram", DetectPlatform("https://instagram.com/p/xyz"))
	assert.Equal(t, "Facebook", DetectPlatform("https://facebook.com/watch"))
	assert.Equal(t, "X", DetectPlatform("https://x.com/a/status/1"))
	assert.Equal(t, "Other", DetectPlatform("https://vimeo.com/1"))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{time.Minute, "uploaded 1 minute ago"},
		{45 * time.Minute, "uploaded 45 minutes ago"},
		{time.Hour, "uploaded 1 hour ago"},
		{23 * time.Hour, "uploaded 23 hours ago"},
		{24 * time.Hour, "yesterday"},
		{10 * 24 * time.Hour, "10 days ago"},
		{90 * 24 * time.Hour, "3 months ago"},
		{800 * 24 * time.Hour, "2 years ago"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, RelativeTime(now.Add(-tc.ago), now), tc.ago.String())
	}
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "12,345", FormatCount(12345))
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "$30.86", FormatMoney(30.86))
	assert.Equal(t, "$120,000.00", FormatMoney(120000))
}

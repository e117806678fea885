// Package dashboard holds the demo client and clipper dashboards behind a
// provider seam, with fixtures embedded as YAML.
package dashboard

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/dashboard.yaml
var fixtureFS embed.FS

type Campaign struct {
	ID           int       `yaml:"id"`
	Title        string    `yaml:"title"`
	StartDate    time.Time `yaml:"startDate"`
	TargetViews  int64     `yaml:"targetViews"`
	CurrentViews int64     `yaml:"currentViews"`
	Budget       int64     `yaml:"budget"`
	Status       string    `yaml:"status"`
}

// Progress is current over target views; it can exceed 1.
func (c Campaign) Progress() float64 {
	if c.TargetViews <= 0 {
		return 0
	}
	return float64(c.CurrentViews) / float64(c.TargetViews)
}

type ClientVideo struct {
	ID          int       `yaml:"id"`
	Title       string    `yaml:"title"`
	VideoURL    string    `yaml:"videoUrl"`
	PostedDate  time.Time `yaml:"postedDate"`
	Duration    string    `yaml:"duration"`
	Views       int64     `yaml:"views"`
	Status      string    `yaml:"status"`
	ClipperName string    `yaml:"clipperName"`
}

type ClientDashboard struct {
	Campaigns []Campaign    `yaml:"campaigns"`
	Videos    []ClientVideo `yaml:"videos"`
}

type Assignment struct {
	ID           int       `yaml:"id"`
	Title        string    `yaml:"title"`
	AssignedDate time.Time `yaml:"assignedDate"`
	Deadline     time.Time `yaml:"deadline"`
	Status       string    `yaml:"status"`
}

type ClipperVideo struct {
	ID            int        `yaml:"id"`
	Title         string     `yaml:"title"`
	URL           string     `yaml:"url"`
	SubmittedDate time.Time  `yaml:"submittedDate"`
	Status        string     `yaml:"status"`
	Views         int64      `yaml:"views"`
	RPM           float64    `yaml:"rpm"`
	Earnings      float64    `yaml:"earnings"`
	PostedDate    *time.Time `yaml:"postedDate"`
	PayoutEndDate *time.Time `yaml:"payoutEndDate"`
	DaysRemaining *int       `yaml:"daysRemaining"`
}

type ClipperDashboard struct {
	AssignedCampaigns []Assignment   `yaml:"assignedCampaigns"`
	Videos            []ClipperVideo `yaml:"videos"`
}

func (d *ClipperDashboard) TotalEarnings() float64 {
	var total float64
	for _, v := range d.Videos {
		total += v.Earnings
	}
	return total
}

func (d *ClipperDashboard) TotalViews() int64 {
	var total int64
	for _, v := range d.Videos {
		total += v.Views
	}
	return total
}

// DashboardProvider supplies the data behind the demo dashboards.
type DashboardProvider interface {
	ClientDashboard(ctx context.Context) (*ClientDashboard, error)
	ClipperDashboard(ctx context.Context) (*ClipperDashboard, error)
}

type fixtureDocument struct {
	Client  ClientDashboard  `yaml:"client"`
	Clipper ClipperDashboard `yaml:"clipper"`
}

// FixtureProvider serves dashboards decoded once from YAML.
type FixtureProvider struct {
	doc fixtureDocument
}

// NewFixtureProvider loads the fixtures embedded in the binary.
func NewFixtureProvider() (*FixtureProvider, error) {
	raw, err := fixtureFS.ReadFile("fixtures/dashboard.yaml")
	if err != nil {
		return nil, fmt.Errorf("read dashboard fixtures: %w", err)
	}
	return LoadFixtures(bytes.NewReader(raw))
}

func LoadFixtures(r io.Reader) (*FixtureProvider, error) {
	var doc fixtureDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode dashboard fixtures: %w", err)
	}
	return &FixtureProvider{doc: doc}, nil
}

// ClientDashboard returns a copy so callers may sort and filter freely.
func (p *FixtureProvider) ClientDashboard(context.Context) (*ClientDashboard, error) {
	d := ClientDashboard{
		Campaigns: append([]Campaign(nil), p.doc.Client.Campaigns...),
		Videos:    append([]ClientVideo(nil), p.doc.Client.Videos...),
	}
	return &d, nil
}

func (p *FixtureProvider) ClipperDashboard(context.Context) (*ClipperDashboard, error) {
	d := ClipperDashboard{
		AssignedCampaigns: append([]Assignment(nil), p.doc.Clipper.AssignedCampaigns...),
		Videos:            append([]ClipperVideo(nil), p.doc.Clipper.Videos...),
	}
	return &d, nil
}

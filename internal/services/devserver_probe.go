package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"framekit/internal/infrastructure/logging"

	"github.com/gocolly/colly/v2"
)

const (
	probeUserAgent = "framekit-devserver-probe/1.0"
	// mountSelector is the element the UI framework mounts into
	mountSelector = "#app"
)

// ProbeResult describes what the dev server answered
type ProbeResult struct {
	URL           string
	Reachable     bool
	StatusCode    int
	Title         string
	HasMountPoint bool
}

// DevServerProbe checks that the UI dev server is up and serving the app shell
type DevServerProbe struct {
	timeout time.Duration
	logger  logging.Logger
}

// NewDevServerProbe creates a probe. A zero timeout keeps colly's default.
func NewDevServerProbe(timeout time.Duration, logger logging.Logger) *DevServerProbe {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &DevServerProbe{
		timeout: timeout,
		logger:  logger,
	}
}

// Probe fetches the dev server root page once
func (p *DevServerProbe) Probe(ctx context.Context, url string) (*ProbeResult, error) {
	result := &ProbeResult{URL: url}

	// A fresh collector per probe; colly refuses to revisit a URL on the same collector
	c := colly.NewCollector(
		colly.UserAgent(probeUserAgent),
		colly.StdlibContext(ctx),
	)
	if p.timeout > 0 {
		c.SetRequestTimeout(p.timeout)
	}

	var probeErr error

	c.OnResponse(func(r *colly.Response) {
		result.Reachable = true
		result.StatusCode = r.StatusCode
	})

	c.OnHTML("title", func(e *colly.HTMLElement) {
		result.Title = strings.TrimSpace(e.Text)
	})

	c.OnHTML(mountSelector, func(e *colly.HTMLElement) {
		result.HasMountPoint = true
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode > 0 {
			result.Reachable = true
			result.StatusCode = r.StatusCode
		}
		probeErr = fmt.Errorf("dev server probe failed: %w", err)
	})

	if err := c.Visit(url); err != nil && probeErr == nil {
		probeErr = fmt.Errorf("dev server probe failed: %w", err)
	}

	return result, probeErr
}

// Report probes the dev server and logs the outcome. It never fails startup.
func (p *DevServerProbe) Report(ctx context.Context, url string) *ProbeResult {
	start := time.Now()
	result, err := p.Probe(ctx, url)

	switch {
	case err != nil:
		p.logger.Warn("Dev server is not answering; the window will show proxy errors until it starts",
			"url", url,
			"status", result.StatusCode,
			"error", err)
	case !result.HasMountPoint:
		p.logger.Warn("Dev server answered without the UI mount point",
			"url", url,
			"selector", mountSelector,
			"title", result.Title)
	default:
		logging.LogOperation(p.logger, "probe_dev_server", time.Since(start), map[string]interface{}{
			"url":    url,
			"status": result.StatusCode,
			"title":  result.Title,
		})
	}

	return result
}

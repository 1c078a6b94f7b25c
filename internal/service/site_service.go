package service

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"portfolio-be/internal/dto"
)

type ISiteService interface {
	RobotsTxt() string
	SitemapXML(now time.Time) ([]byte, error)
}

type siteService struct {
	siteURL      string
	isProduction bool
}

func NewSiteService(siteURL string, isProduction bool) ISiteService {
	return &siteService{
		siteURL:      strings.TrimRight(siteURL, "/"),
		isProduction: isProduction,
	}
}

type sitemapRoute struct {
	path       string
	changeFreq string
	priority   float64
}

var staticRoutes = []sitemapRoute{
	{"", "weekly", 1.0},
	{"/about", "monthly", 0.8},
	{"/projects", "weekly", 0.9},
	{"/services", "monthly", 0.7},
	{"/contact", "monthly", 0.6},
	{"/certifications", "monthly", 0.5},
	{"/experience", "monthly", 0.6},
	{"/education", "yearly", 0.4},
}

var projectSlugs = []string{
	"devblog",
	"education-platform",
	"shop-clone-ecommerce",
	"single-product-page",
}

var blockedCrawlers = []string{"GPTBot", "ChatGPT-User", "CCBot", "anthropic-ai", "Claude-Web"}

var disallowedPaths = []string{"/api/", "/admin/", "/_next/", "/private/", "/*.json$", "/temp/", "/cache/"}

func (s *siteService) RobotsTxt() string {
	var b strings.Builder

	if !s.isProduction {
		b.WriteString("User-agent: *\nDisallow: /\n\n# Development environment - disallow all crawling\n")
		return b.String()
	}

	b.WriteString("User-agent: *\nAllow: /\n")
	for _, p := range disallowedPaths {
		fmt.Fprintf(&b, "Disallow: %s\n", p)
	}

	b.WriteString("\n# Block AI crawlers\n")
	for _, agent := range blockedCrawlers {
		fmt.Fprintf(&b, "User-agent: %s\nDisallow: /\n\n", agent)
	}

	b.WriteString("# Search engine specific rules\n")
	for _, rule := range []struct {
		agent string
		delay int
	}{{"Googlebot", 1}, {"Bingbot", 1}, {"Slurp", 2}} {
		fmt.Fprintf(&b, "User-agent: %s\nAllow: /\nCrawl-delay: %d\n\n", rule.agent, rule.delay)
	}

	b.WriteString("# Social media crawlers\n")
	for _, agent := range []string{"facebookexternalhit", "Twitterbot", "LinkedInBot"} {
		fmt.Fprintf(&b, "User-agent: %s\nAllow: /\n\n", agent)
	}

	fmt.Fprintf(&b, "# Sitemap location\nSitemap: %s/sitemap.xml\n\n", s.siteURL)
	fmt.Fprintf(&b, "# Host preference\nHost: %s\n", s.siteURL)
	return b.String()
}

func (s *siteService) SitemapXML(now time.Time) ([]byte, error) {
	lastMod := now.UTC().Format(time.RFC3339)

	sitemap := dto.Sitemap{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	add := func(path, freq string, priority float64) {
		sitemap.URLs = append(sitemap.URLs, dto.SitemapURL{
			Loc:        s.siteURL + path,
			LastMod:    lastMod,
			ChangeFreq: freq,
			Priority:   priority,
		})
	}

	for _, r := range staticRoutes {
		add(r.path, r.changeFreq, r.priority)
	}
	for _, slug := range projectSlugs {
		add("/projects/"+slug, "monthly", 0.7)
	}
	add("/blog", "weekly", 0.8)

	out, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

package api

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// sitemapEntries lists the pages worth indexing. The static build is
// embedded, so the process start time stands in for the last modification.
func (s *Server) sitemapEntries() []sitemapURL {
	return []sitemapURL{
		{
			Loc:        s.siteURL + "/",
			LastMod:    s.startedAt.UTC().Format(time.RFC3339),
			ChangeFreq: "daily",
			Priority:   "1.0",
		},
	}
}

func (s *Server) sitemapXML() ([]byte, error) {
	body, err := xml.MarshalIndent(urlSet{Xmlns: sitemapNamespace, URLs: s.sitemapEntries()}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	body, err := s.sitemapXML()
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("error generating sitemap")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(body)
}

func (s *Server) handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\nSitemap: %s/sitemap.xml\n", s.siteURL)
}

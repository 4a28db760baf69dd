package sources

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/biomcp-go/biomcp/internal/substrate"
)

// PMCOAClient wraps the PubMed Central Open Access service: it resolves a
// PMCID to a .tar.gz download link, then extracts the first .nxml/.xml
// article body from the archive (supplemented from original_source's
// src/sources/pmc_oa.rs — the distillation dropped full-text extraction;
// spec §4.4 "full-text section fetches PMC OA or Europe PMC XML and
// extracts plain text").
type PMCOAClient struct {
	baseURL string
	client  *substrate.Client
	pool    chan struct{}
}

const (
	maxTgzBytes         = 64 << 20
	maxArchiveEntryBytes = 8 << 20
)

// NewPMCOAClient constructs a client whose archive extraction is bounded to
// a small worker pool rather than run inline, matching spec §5's
// "blocking-worker pool" concurrency model for CPU/IO-bound extraction work.
func NewPMCOAClient(c *substrate.Client, poolSize int) *PMCOAClient {
	if poolSize <= 0 {
		poolSize = 4
	}
	return &PMCOAClient{
		baseURL: substrate.BaseURL("pmc-oa", "https://www.ncbi.nlm.nih.gov/pmc/utils/oa/oa.fcgi"),
		client:  c,
		pool:    make(chan struct{}, poolSize),
	}
}

var tgzHrefPattern = regexp.MustCompile(`<link[^>]*format="tgz"[^>]*href="([^"]+)"`)

// oaTgzURL resolves pmcid to its tar.gz download href, rewriting ftp:// to
// https:// (original_source rewrites only the NCBI ftp mirror, we rewrite
// any ftp scheme since NCBI's CDN has moved the mirror host before).
func (p *PMCOAClient) oaTgzURL(ctx context.Context, pmcid string) (string, bool, error) {
	pmcid = strings.TrimSpace(pmcid)
	if pmcid == "" {
		return "", false, nil
	}
	if len(pmcid) > 64 {
		return "", false, biomcperr.InvalidArgument("PMCID is too long")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?id="+pmcid, nil)
	if err != nil {
		return "", false, biomcperr.HTTP(err)
	}
	body, _, err := p.client.Do(req, "pmc-oa")
	if err != nil {
		return "", false, err
	}

	m := tgzHrefPattern.FindSubmatch(body)
	if m == nil {
		return "", false, nil
	}
	href := strings.TrimSpace(string(m[1]))
	if href == "" {
		return "", false, nil
	}
	if strings.HasPrefix(href, "ftp://") {
		href = "https://" + strings.TrimPrefix(href, "ftp://")
	}
	return href, true, nil
}

// GetFullTextXML downloads and extracts the first article XML body for
// pmcid, returning ("", false, nil) if PMC OA has no open-access copy.
func (p *PMCOAClient) GetFullTextXML(ctx context.Context, pmcid string) (string, bool, error) {
	tgzURL, ok, err := p.oaTgzURL(ctx, pmcid)
	if err != nil || !ok {
		return "", false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tgzURL, nil)
	if err != nil {
		return "", false, biomcperr.HTTP(err)
	}
	resp, err := p.client.StreamingDo(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	tgzBytes, err := substrate.ReadBodyCapped(io.LimitReader(resp.Body, maxTgzBytes+1), "pmc-oa")
	if err != nil {
		return "", false, err
	}

	p.pool <- struct{}{}
	defer func() { <-p.pool }()

	xml, found, err := extractFirstNXML(tgzBytes)
	if err != nil {
		return "", false, biomcperr.API("pmc-oa", err.Error())
	}
	return xml, found, nil
}

func extractFirstNXML(tgzBytes []byte) (string, bool, error) {
	if len(tgzBytes) > maxTgzBytes {
		return "", false, fmt.Errorf("PMC OA archive exceeded %d bytes", maxTgzBytes)
	}

	gz, err := gzip.NewReader(bytes.NewReader(tgzBytes))
	if err != nil {
		return "", false, err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", false, err
		}
		if hdr.Size > maxArchiveEntryBytes {
			continue
		}
		name := filepath.Base(hdr.Name)
		if !strings.HasSuffix(name, ".nxml") && !strings.HasSuffix(name, ".xml") {
			continue
		}

		out, err := io.ReadAll(io.LimitReader(tr, maxArchiveEntryBytes+1))
		if err != nil {
			return "", false, err
		}
		if int64(len(out)) > maxArchiveEntryBytes || len(out) == 0 {
			continue
		}
		return string(out), true, nil
	}
	return "", false, nil
}

// cacheKey returns the md5 hex digest used to name the on-disk full-text
// extraction cache file (original_source's cache_key/cache_path).
func cacheKey(id string) string {
	sum := md5.Sum([]byte(id))
	return hex.EncodeToString(sum[:])
}

// downloadsDir is the scratch directory full-text extractions are cached
// under, distinct from the HTTP response cache (original_source's
// biomcp_downloads_dir).
func downloadsDir() string {
	return filepath.Join(os.TempDir(), "biomcp")
}

// CachePath returns the on-disk path full-text for id would be cached at.
func CachePath(id string) string {
	return filepath.Join(downloadsDir(), cacheKey(id)+".txt")
}

// SaveFullTextAtomic persists content under CachePath(id) via a
// temp-file-then-rename, returning the existing path without overwriting if
// already present (original_source's save_atomic).
func SaveFullTextAtomic(id, content string) (string, error) {
	path := CachePath(id)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", biomcperr.IO(err)
	}

	tmp, err := os.CreateTemp(dir, "."+cacheKey(id)+".*.tmp")
	if err != nil {
		return "", biomcperr.IO(err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", biomcperr.IO(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", biomcperr.IO(err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return path, nil
		}
		return "", biomcperr.IO(err)
	}
	return path, nil
}

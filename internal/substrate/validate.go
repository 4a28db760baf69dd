package substrate

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
)

// MaxBodyBytes is the streaming body-size cap enforced on every source
// client response (spec §4.1 "Body-size enforcement").
const MaxBodyBytes = 8 << 20 // 8 MiB

// BioThingsMaxWindow is the offset+limit ceiling shared by the BioThings
// family (MyGene, MyVariant, MyChem, MyDisease).
const BioThingsMaxWindow = 10000

var geneSymbolRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// IsValidGeneSymbol reports whether s is a non-empty string matching
// [A-Za-z0-9_-]+, the shape the substrate requires before any client
// normalizes and sends a gene symbol upstream.
func IsValidGeneSymbol(s string) bool {
	return s != "" && geneSymbolRe.MatchString(s)
}

// ValidateBioThingsWindow enforces spec's pagination-window invariant:
// offset < 10000 and offset+limit <= 10000.
func ValidateBioThingsWindow(offset, limit int) error {
	if offset < 0 || limit < 0 {
		return biomcperr.InvalidArgument("--offset and --limit must be non-negative")
	}
	if offset >= BioThingsMaxWindow {
		return biomcperr.InvalidArgument("--offset %d exceeds the %d-result window", offset, BioThingsMaxWindow)
	}
	if offset+limit > BioThingsMaxWindow {
		return biomcperr.InvalidArgument("--offset %d plus --limit %d exceeds the %d-result window", offset, limit, BioThingsMaxWindow)
	}
	return nil
}

// ValidateSearchLimit enforces the 1..=50 bound shared by every search
// operation (spec §8 "limit = 0 or limit > 50 ... yields InvalidArgument").
func ValidateSearchLimit(limit int) error {
	if limit <= 0 || limit > 50 {
		return biomcperr.InvalidArgument("--limit must be between 1 and 50, got %d", limit)
	}
	return nil
}

const luceneSpecial = `+-&|!(){}[]^"~*?:\/`

// EscapeLucene escapes the Lucene special characters
// (+ - && || ! ( ) { } [ ] ^ " ~ * ? : \ /) before a free-text value is
// concatenated into an upstream Lucene query string.
func EscapeLucene(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	i := 0
	for i < len(s) {
		// "&&" and "||" escape as a pair; a lone & or | is not special to
		// Lucene and is passed through unescaped.
		if i+1 < len(s) && (s[i:i+2] == "&&" || s[i:i+2] == "||") {
			b.WriteByte('\\')
			b.WriteByte(s[i])
			b.WriteByte('\\')
			b.WriteByte(s[i+1])
			i += 2
			continue
		}
		c := s[i]
		if c != '&' && c != '|' && strings.IndexByte(luceneSpecial, c) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

// ensureJSONContentType fails fast when an upstream responds with an HTML
// error page mis-labeled (or correctly labeled) as the response to a JSON
// API call. Other content types are tolerated for backward compatibility
// with loose upstreams.
func ensureJSONContentType(api, contentType string, body []byte) error {
	media := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if media == "text/html" || media == "application/xhtml+xml" {
		return biomcperr.API(api, "received an HTML response where JSON was expected")
	}
	return nil
}

// EnsureJSONContentType is the exported form used by source clients.
func EnsureJSONContentType(api, contentType string, body []byte) error {
	return ensureJSONContentType(api, contentType, body)
}

// ReadBodyCapped reads r, aborting with an Api error once the cumulative
// body length exceeds MaxBodyBytes.
func ReadBodyCapped(r io.Reader, api string) ([]byte, error) {
	limited := io.LimitReader(r, MaxBodyBytes+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, biomcperr.HTTP(err)
	}
	if len(body) > MaxBodyBytes {
		return nil, biomcperr.API(api, fmt.Sprintf("response body exceeded the %d byte cap", MaxBodyBytes))
	}
	return body, nil
}

// SanitizeExcerpt strips control characters and truncates to 2 KiB, used to
// build the "HTTP <status>: <excerpt>" message for non-2xx responses.
func SanitizeExcerpt(body []byte) string {
	const maxExcerpt = 2 << 10 // 2 KiB
	clean := make([]rune, 0, len(body))
	for _, r := range string(body) {
		if unicode.IsControl(r) && r != ' ' {
			continue
		}
		clean = append(clean, r)
	}
	s := strings.TrimSpace(string(clean))
	if len(s) > maxExcerpt {
		s = s[:maxExcerpt]
	}
	return s
}

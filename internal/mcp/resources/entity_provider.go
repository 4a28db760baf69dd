package resources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/biomcp-go/biomcp/internal/orchestrators"
)

// EntityResourceProvider exposes aggregated entity records under the
// entity://{kind}/{id} URI scheme, fetching live from the fleet rather
// than serving static content.
type EntityResourceProvider struct {
	logger *logrus.Logger
	fleet  *orchestrators.Fleet
}

func NewEntityResourceProvider(logger *logrus.Logger, fleet *orchestrators.Fleet) *EntityResourceProvider {
	return &EntityResourceProvider{logger: logger, fleet: fleet}
}

var entityKinds = []string{"gene", "variant", "disease", "drug", "article", "trial"}

func (p *EntityResourceProvider) SupportsURI(uri string) bool {
	kind, id := splitEntityURI(uri)
	if id == "" {
		return false
	}
	for _, k := range entityKinds {
		if kind == k {
			return true
		}
	}
	return false
}

func (p *EntityResourceProvider) GetResource(ctx context.Context, uri string) (*ResourceContent, error) {
	kind, id := splitEntityURI(uri)
	if id == "" {
		return nil, fmt.Errorf("malformed entity URI: %s", uri)
	}

	var content interface{}
	var err error

	switch kind {
	case "gene":
		content, err = p.fleet.Gene.Get(ctx, id, nil)
	case "variant":
		content, err = p.fleet.Variant.Get(ctx, id, nil)
	case "disease":
		content, err = p.fleet.Disease.Get(ctx, id, nil)
	case "drug":
		content, err = p.fleet.Drug.Get(ctx, id, nil)
	case "article":
		content, err = p.fleet.Article.Get(ctx, id, nil)
	case "trial":
		content, err = p.fleet.Trial.Get(ctx, id)
	default:
		return nil, fmt.Errorf("unsupported entity kind: %s", kind)
	}
	if err != nil {
		return nil, err
	}

	return &ResourceContent{
		URI:          uri,
		Name:         fmt.Sprintf("%s/%s", kind, id),
		MimeType:     "application/json",
		Content:      content,
		LastModified: time.Now(),
	}, nil
}

// ListResources returns the supported entity-kind URI templates; concrete
// entity instances aren't enumerable, since they're fetched live from
// upstream sources rather than stored.
func (p *EntityResourceProvider) ListResources(ctx context.Context, cursor string) (*ResourceList, error) {
	infos := make([]ResourceInfo, 0, len(entityKinds))
	for _, kind := range entityKinds {
		infos = append(infos, ResourceInfo{
			URI:          fmt.Sprintf("entity://%s/{id}", kind),
			Name:         kind,
			Description:  fmt.Sprintf("Resolve an aggregated %s record by id", kind),
			MimeType:     "application/json",
			LastModified: time.Now(),
			Tags:         []string{kind},
		})
	}
	return &ResourceList{Resources: infos, Total: len(infos)}, nil
}

func (p *EntityResourceProvider) GetResourceInfo(ctx context.Context, uri string) (*ResourceInfo, error) {
	kind, id := splitEntityURI(uri)
	if id == "" {
		return nil, fmt.Errorf("malformed entity URI: %s", uri)
	}
	return &ResourceInfo{
		URI:          uri,
		Name:         fmt.Sprintf("%s/%s", kind, id),
		MimeType:     "application/json",
		LastModified: time.Now(),
		Tags:         []string{kind},
	}, nil
}

func (p *EntityResourceProvider) GetProviderInfo() ProviderInfo {
	return ProviderInfo{
		Name:        "entity",
		Description: "Live gene/variant/disease/drug/article/trial records aggregated from upstream sources",
		Version:     "1.0",
		URIPatterns: []string{"entity://{kind}/{id}"},
	}
}

// splitEntityURI parses "entity://{kind}/{id}" into its kind and id parts.
func splitEntityURI(uri string) (kind, id string) {
	rest := strings.TrimPrefix(uri, "entity://")
	if rest == uri {
		return "", ""
	}
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", ""
	}
	return parts[0], parts[1]
}

package resources

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceManager_RegisterProvider(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	manager := NewResourceManager(logger)
	provider := NewEntityResourceProvider(logger, nil)

	manager.RegisterProvider("entity", provider)

	providers := manager.GetProviderInfo()
	require.Len(t, providers, 1)
	assert.Equal(t, "entity", providers[0].Name)
}

func TestEntityResourceProvider_SupportsURI(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	provider := NewEntityResourceProvider(logger, nil)

	tests := []struct {
		uri  string
		want bool
	}{
		{"entity://gene/BRCA1", true},
		{"entity://variant/NM_000001.3:c.123A>G", true},
		{"entity://trial/NCT00000000", true},
		{"entity://unknown/123", false},
		{"entity://gene/", false},
		{"not-a-uri", false},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, provider.SupportsURI(tt.uri))
		})
	}
}

func TestEntityResourceProvider_ListResources(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	provider := NewEntityResourceProvider(logger, nil)

	list, err := provider.ListResources(context.Background(), "")
	require.NoError(t, err)
	require.NotNil(t, list)
	assert.Equal(t, len(entityKinds), list.Total)
	assert.Equal(t, len(list.Resources), list.Total)

	for _, info := range list.Resources {
		assert.NotEmpty(t, info.URI)
		assert.NotEmpty(t, info.Name)
		assert.Equal(t, "application/json", info.MimeType)
	}
}

func TestEntityResourceProvider_GetResourceInfo(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	provider := NewEntityResourceProvider(logger, nil)

	info, err := provider.GetResourceInfo(context.Background(), "entity://gene/BRCA1")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "entity://gene/BRCA1", info.URI)
	assert.Equal(t, "application/json", info.MimeType)

	info, err = provider.GetResourceInfo(context.Background(), "entity://gene/")
	assert.Error(t, err)
	assert.Nil(t, info)
}

func TestEntityResourceProvider_GetProviderInfo(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	provider := NewEntityResourceProvider(logger, nil)

	info := provider.GetProviderInfo()
	assert.Equal(t, "entity", info.Name)
	assert.NotEmpty(t, info.Description)
	assert.NotEmpty(t, info.URIPatterns)
}

func TestResourceCache_SetGet(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	cache := NewResourceCache(logger)

	content := &ResourceContent{
		URI:          "/test/uri",
		Name:         "Test Resource",
		Description:  "Test Description",
		MimeType:     "application/json",
		Content:      map[string]interface{}{"test": "data"},
		LastModified: time.Now(),
	}

	cache.Set("/test/uri", content, 5*time.Minute)

	retrieved := cache.Get("/test/uri")
	require.NotNil(t, retrieved)
	assert.Equal(t, content.URI, retrieved.URI)
	assert.Equal(t, content.Name, retrieved.Name)
}

func TestResourceCache_Expiration(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	cache := NewResourceCache(logger)

	content := &ResourceContent{
		URI:          "/test/uri",
		Name:         "Test Resource",
		MimeType:     "application/json",
		Content:      map[string]interface{}{"test": "data"},
		LastModified: time.Now(),
	}

	cache.Set("/test/uri", content, 1*time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	retrieved := cache.Get("/test/uri")
	assert.Nil(t, retrieved)
}

func TestResourceCache_LRUEviction(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	cache := &ResourceCache{
		cache:      make(map[string]*CacheEntry),
		maxSize:    2,
		defaultTTL: 5 * time.Minute,
		logger:     logger,
	}

	content1 := &ResourceContent{URI: "/test/1", Name: "Test 1", MimeType: "application/json", Content: map[string]interface{}{}, LastModified: time.Now()}
	content2 := &ResourceContent{URI: "/test/2", Name: "Test 2", MimeType: "application/json", Content: map[string]interface{}{}, LastModified: time.Now()}
	content3 := &ResourceContent{URI: "/test/3", Name: "Test 3", MimeType: "application/json", Content: map[string]interface{}{}, LastModified: time.Now()}

	cache.Set("/test/1", content1, 5*time.Minute)
	cache.Set("/test/2", content2, 5*time.Minute)

	cache.Get("/test/1")

	cache.Set("/test/3", content3, 5*time.Minute)

	assert.NotNil(t, cache.Get("/test/1"))
	assert.Nil(t, cache.Get("/test/2"))
	assert.NotNil(t, cache.Get("/test/3"))
}

func TestResourceCache_Stats(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	cache := NewResourceCache(logger)

	content1 := &ResourceContent{URI: "/test/1", MimeType: "application/json", Content: map[string]interface{}{}, LastModified: time.Now()}
	content2 := &ResourceContent{URI: "/test/2", MimeType: "application/json", Content: map[string]interface{}{}, LastModified: time.Now()}

	cache.Set("/test/1", content1, 5*time.Minute)
	cache.Set("/test/2", content2, 5*time.Minute)

	cache.Get("/test/1")
	cache.Get("/test/1")
	cache.Get("/test/2")

	stats := cache.GetCacheStats()

	assert.Equal(t, 2, stats["total_entries"])
	assert.Equal(t, 1000, stats["max_size"])
	assert.Equal(t, 3, stats["total_accesses"])
	assert.Equal(t, 1.5, stats["average_accesses"])
}

func TestURIParser_ParseURI(t *testing.T) {
	parser := NewURIParser()

	err := parser.AddPattern("variant", `^/variant/(?P<id>[^/]+)$`)
	require.NoError(t, err)

	err = parser.AddPattern("variant_transcripts", `^/variant/(?P<id>[^/]+)/transcripts$`)
	require.NoError(t, err)

	tests := []struct {
		name            string
		uri             string
		expectedPattern string
		expectedParams  map[string]string
		expectError     bool
	}{
		{
			name:            "Basic variant URI",
			uri:             "/variant/123",
			expectedPattern: "variant",
			expectedParams:  map[string]string{"id": "123"},
			expectError:     false,
		},
		{
			name:            "Variant transcripts URI",
			uri:             "/variant/456/transcripts",
			expectedPattern: "variant_transcripts",
			expectedParams:  map[string]string{"id": "456"},
			expectError:     false,
		},
		{
			name:            "URI with special characters",
			uri:             "/variant/NM_000001.3:c.123A>G",
			expectedPattern: "variant",
			expectedParams:  map[string]string{"id": "NM_000001.3:c.123A>G"},
			expectError:     false,
		},
		{
			name:        "No matching pattern",
			uri:         "/unknown/path",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patternName, params, err := parser.ParseURI(tt.uri)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedPattern, patternName)
				assert.Equal(t, tt.expectedParams, params)
			}
		})
	}
}

func TestURIParser_ValidateURI(t *testing.T) {
	parser := NewURIParser()

	tests := []struct {
		name        string
		uri         string
		expectError bool
	}{
		{
			name:        "Valid URI",
			uri:         "/variant/123",
			expectError: false,
		},
		{
			name:        "Empty URI",
			uri:         "",
			expectError: true,
		},
		{
			name:        "URI not starting with /",
			uri:         "variant/123",
			expectError: true,
		},
		{
			name:        "Valid complex URI",
			uri:         "/evidence/NM_000001.3:c.123A>G/population",
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parser.ValidateURI(tt.uri)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestURIParser_ExpandURITemplate(t *testing.T) {
	parser := NewURIParser()

	template := "/variant/{id}/analysis/{type}"
	params := map[string]string{
		"id":   "NM_000001.3:c.123A>G",
		"type": "functional",
	}

	result := parser.ExpandURITemplate(template, params)
	expected := "/variant/NM_000001.3:c.123A>G/analysis/functional"

	assert.Equal(t, expected, result)
}

package dashboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeManifest(t *testing.T) {
	const payload = `
version: 1
name: loyalty-pack
widgets:
  - definition:
      code: partner.loyalty.points_balance
      name: Loyalty Points
      description: Points issued and redeemed across the store.
      category: loyalty
      schema:
        type: object
        properties:
          days:
            type: integer
    provider:
      name: Loyalty Provider
      summary: Reads balances from the loyalty app backend.
      entry: github.com/partner/loyalty.NewPointsProvider
      package: github.com/partner/loyalty
      docs_url: https://partner.example.com/docs/points
      capabilities: ["html","json"]
`
	doc, err := DecodeManifest(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, doc.Widgets, 1)

	widget := doc.Widgets[0]
	assert.Equal(t, "partner.loyalty.points_balance", widget.Definition.Code)
	assert.Equal(t, "Loyalty Points", widget.Definition.Name)
	assert.Equal(t, "loyalty", widget.Definition.Category)
	assert.Equal(t, "Loyalty Provider", widget.Provider.Name)
	assert.Equal(t, "github.com/partner/loyalty.NewPointsProvider", widget.Provider.Entry)
}

func TestRegistryLoadManifestDocument(t *testing.T) {
	doc := &WidgetManifestDocument{
		Version: ManifestVersion,
		Widgets: []ManifestWidget{
			{
				Definition: WidgetDefinition{
					Code: "partner.reviews.rating_summary",
					Name: "Review Ratings",
				},
				Provider: ManifestProvider{
					Name:    "Reviews Provider",
					Summary: "Aggregates product review scores",
					Entry:   "github.com/partner/reviews.NewRatingProvider",
				},
			},
		},
	}
	reg := NewRegistry()

	require.NoError(t, reg.LoadManifestDocument(doc))

	def, ok := reg.Definition("partner.reviews.rating_summary")
	require.True(t, ok)
	assert.Equal(t, "Review Ratings", def.Name)

	meta, ok := reg.ProviderMetadata("partner.reviews.rating_summary")
	require.True(t, ok)
	assert.Equal(t, "Reviews Provider", meta.Name)
	assert.Equal(t, "github.com/partner/reviews.NewRatingProvider", meta.Entry)
}

func TestManifestRejectsDuplicateCodes(t *testing.T) {
	const payload = `
widgets:
  - definition:
      code: partner.loyalty.points_balance
      name: First
  - definition:
      code: partner.loyalty.points_balance
      name: Second
`
	_, err := DecodeManifest(strings.NewReader(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repeats widget code")
}

func TestManifestRejectsUnknownFields(t *testing.T) {
	const payload = `
version: 1
widgets:
  - definition:
      code: partner.loyalty.points_balance
      name: Loyalty Points
    maintainer: typo-should-be-maintainers
`
	_, err := DecodeManifest(strings.NewReader(payload))
	require.Error(t, err)
}

func TestDocsManifestsAreValid(t *testing.T) {
	dir := filepath.Join("..", "..", "docs", "manifests")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	codes := map[string]string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		doc, err := ReadManifest(path)
		require.NoErrorf(t, err, "manifest %s should parse", path)
		for _, widget := range doc.Widgets {
			if prev, exists := codes[widget.Definition.Code]; exists {
				t.Fatalf("widget code %s defined in both %s and %s", widget.Definition.Code, prev, path)
			}
			codes[widget.Definition.Code] = path
		}
	}
}

package output

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GLADI8R/landscape2/internal/core/domain"
)

func testBundle() *Bundle {
	return NewBundle(fstest.MapFS{
		"index.html":        {Data: []byte(`<title>{{ .Foundation }}</title><p>{{ .Items }}</p>`)},
		"assets/app.js":     {Data: []byte("console.log(1)")},
		"assets/app.css":    {Data: []byte("body{}")},
		"assets/img/.keep":  {Data: nil},
		"assets/img/bg.svg": {Data: []byte("<svg/>")},
	})
}

func testLandscape(t *testing.T) *domain.LandscapeData {
	t.Helper()

	accepted := time.Date(2021, 9, 14, 0, 0, 0, 0, time.UTC)
	amount := int64(1000)
	announced := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)

	data, err := domain.NewLandscapeData(
		[]domain.Category{{Name: "Provisioning", Subcategories: []string{"Automation"}}},
		[]domain.Item{
			{
				Name:          "Akri",
				Category:      "Provisioning",
				Subcategory:   "Automation",
				Logo:          "logos/abc.svg",
				Maturity:      "sandbox",
				AcceptedAt:    &accepted,
				CrunchbaseURL: "https://www.crunchbase.com/organization/acme",
				CrunchbaseData: &domain.CrunchbaseData{
					Name:    "Acme",
					Country: "Spain",
					Funding: 1000,
					FundingRounds: []domain.FundingRound{
						{Amount: &amount, AnnouncedOn: &announced, Kind: "seed"},
					},
				},
				Repositories: []domain.Repository{{
					URL:        "https://github.com/project-akri/akri",
					Primary:    true,
					GitHubData: &domain.GitHubData{Stars: 42, ContributorsCount: 7},
				}},
				Extra: map[string]any{"slack_url": "https://slack.example.com"},
			},
			{Name: "Other", Category: "Provisioning", Subcategory: "Automation"},
		},
	)
	require.NoError(t, err)
	return data
}

func TestLayout_Prepare(t *testing.T) {
	layout := NewLayout(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, layout.Prepare())

	for _, dir := range []string{DataDir, DocsDir, ImagesDir, LogosDir} {
		info, err := os.Stat(layout.Path(dir))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	assert.Error(t, NewLayout("").Prepare())
}

func TestLogoStore_Write(t *testing.T) {
	layout := NewLayout(t.TempDir())
	require.NoError(t, layout.Prepare())
	store := NewLogoStore(layout)

	rel, err := store.Write("abc", "svg", []byte("<svg>1</svg>"))
	require.NoError(t, err)
	assert.Equal(t, "logos/abc.svg", rel)

	// Second write of the same digest is a no-op.
	rel, err = store.Write("abc", "svg", []byte("<svg>1</svg>"))
	require.NoError(t, err)
	assert.Equal(t, "logos/abc.svg", rel)

	data, err := os.ReadFile(layout.Path(LogosDir, "abc.svg"))
	require.NoError(t, err)
	assert.Equal(t, "<svg>1</svg>", string(data))

	_, err = store.Write("../x", "svg", nil)
	assert.Error(t, err)
}

func TestLogoStore_ConcurrentWrites(t *testing.T) {
	layout := NewLayout(t.TempDir())
	require.NoError(t, layout.Prepare())
	store := NewLogoStore(layout)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Write("digest", "svg", []byte("<svg/>"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	entries, err := os.ReadDir(layout.Path(LogosDir))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "digest.svg", entries[0].Name())
}

func TestImageStore_WriteImage(t *testing.T) {
	layout := NewLayout(t.TempDir())
	require.NoError(t, layout.Prepare())

	rel, err := NewImageStore(layout).WriteImage("favicon.png", []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "images/favicon.png", rel)

	_, err = NewImageStore(layout).WriteImage("", nil)
	assert.Error(t, err)
}

func TestBundle_List(t *testing.T) {
	paths, err := testBundle().List()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"assets/app.css",
		"assets/app.js",
		"assets/img/.keep",
		"assets/img/bg.svg",
		"index.html",
	}, paths)
}

func TestPublisher_Publish(t *testing.T) {
	layout := NewLayout(t.TempDir())
	publisher := NewPublisher(layout, testBundle())
	require.NoError(t, publisher.Prepare())

	data := testLandscape(t)
	settings := &domain.Settings{Foundation: "CNCF", URL: "https://landscape.cncf.io"}
	guide := &domain.Guide{Categories: []domain.GuideCategory{{
		Category: "Provisioning",
		Content:  "<p>Provisioning tools.</p>",
		Subcategories: []domain.GuideSubcategory{
			{Subcategory: "Automation", Keywords: []string{"automation"}},
		},
	}}}

	t.Run("requires frozen data", func(t *testing.T) {
		err := publisher.Publish(context.Background(), data, settings, guide)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	data.Freeze()
	require.NoError(t, publisher.Publish(context.Background(), data, settings, guide))

	t.Run("index", func(t *testing.T) {
		index, err := os.ReadFile(layout.Path(IndexFile))
		require.NoError(t, err)
		assert.Equal(t, "<title>CNCF</title><p>2</p>", string(index))
	})

	t.Run("assets", func(t *testing.T) {
		_, err := os.Stat(layout.Path("assets", "app.js"))
		assert.NoError(t, err)
		_, err = os.Stat(layout.Path("assets", "img", "bg.svg"))
		assert.NoError(t, err)
		_, err = os.Stat(layout.Path("assets", "img", ".keep"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("base dataset", func(t *testing.T) {
		raw, err := os.ReadFile(layout.Path(DataDir, BaseDatasetFile))
		require.NoError(t, err)

		var base BaseDataset
		require.NoError(t, json.Unmarshal(raw, &base))
		assert.Equal(t, "CNCF", base.Foundation)
		assert.True(t, base.IncludesGuide)
		require.Len(t, base.Items, 2)
		assert.Equal(t, "logos/abc.svg", base.Items[0].Logo)
		assert.Equal(t, "", base.Items[1].Logo)
	})

	t.Run("full dataset", func(t *testing.T) {
		raw, err := os.ReadFile(layout.Path(DataDir, FullDatasetFile))
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"accepted_at":"2021-09-14"`)
		assert.Contains(t, string(raw), `"announced_on":"2020-05-01"`)

		var full FullDataset
		require.NoError(t, json.Unmarshal(raw, &full))
		assert.Len(t, full.Items, 2)
		assert.Contains(t, full.GitHubData, "https://github.com/project-akri/akri")
		assert.Contains(t, full.CrunchbaseData, "https://www.crunchbase.com/organization/acme")
	})

	t.Run("items export", func(t *testing.T) {
		raw, err := os.ReadFile(layout.Path(DocsDir, ItemsCSVFile))
		require.NoError(t, err)

		records, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, itemsCSVHeader, records[0])
		assert.Equal(t, "Akri", records[1][0])
		assert.Equal(t, "Acme", records[1][8])
		assert.Equal(t, "42", records[1][12])
		assert.Equal(t, "2021-09-14", records[1][14])
	})

	t.Run("guide", func(t *testing.T) {
		raw, err := os.ReadFile(layout.Path(DataDir, GuideFile))
		require.NoError(t, err)

		var got domain.Guide
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, *guide, got)
	})

	t.Run("projects exports", func(t *testing.T) {
		md, err := os.ReadFile(layout.Path(DocsDir, ProjectsMarkdownFile))
		require.NoError(t, err)
		assert.Contains(t, string(md), "| Akri | sandbox | 2021-09-14 |  |  |")
		assert.NotContains(t, string(md), "Other")

		raw, err := os.ReadFile(layout.Path(DocsDir, ProjectsCSVFile))
		require.NoError(t, err)
		records, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, projectsCSVHeader, records[0])
		assert.Equal(t, "Akri", records[1][0])
		assert.Equal(t, "https://github.com/project-akri/akri", records[1][5])
	})
}

func TestPublisher_PublishWithoutGuide(t *testing.T) {
	layout := NewLayout(t.TempDir())
	publisher := NewPublisher(layout, testBundle())
	require.NoError(t, publisher.Prepare())
	require.NoError(t, os.WriteFile(layout.Path(DataDir, GuideFile), []byte(`{}`), 0o644))

	data := testLandscape(t)
	data.Freeze()
	require.NoError(t, publisher.Publish(context.Background(), data, &domain.Settings{Foundation: "CNCF"}, nil))

	_, err := os.Stat(layout.Path(DataDir, GuideFile))
	assert.True(t, os.IsNotExist(err), "stale guide is removed")

	raw, err := os.ReadFile(layout.Path(DataDir, BaseDatasetFile))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"includes_guide":false`)
}

func TestDatasetFile_RoundTrip(t *testing.T) {
	layout := NewLayout(t.TempDir())
	publisher := NewPublisher(layout, testBundle())
	require.NoError(t, publisher.Prepare())

	original := testLandscape(t)
	original.Freeze()
	require.NoError(t, publisher.Publish(context.Background(), original, &domain.Settings{Foundation: "CNCF"}, nil))

	data, err := NewDatasetFile(layout.Path(DataDir, FullDatasetFile)).Read(context.Background())
	require.NoError(t, err)
	assert.True(t, data.Frozen())
	require.Len(t, data.Items, 2)

	akri := data.Items[0]
	assert.Equal(t, original.Items[0].ID, akri.ID)
	require.NotNil(t, akri.AcceptedAt)
	assert.True(t, original.Items[0].AcceptedAt.Equal(*akri.AcceptedAt))
	require.NotNil(t, akri.CrunchbaseData)
	assert.Equal(t, "Acme", akri.CrunchbaseData.Name)
	require.Len(t, akri.CrunchbaseData.FundingRounds, 1)
	assert.Equal(t, int64(1000), *akri.CrunchbaseData.FundingRounds[0].Amount)
	require.NotNil(t, akri.Repositories[0].GitHubData)
	assert.Equal(t, 42, akri.Repositories[0].GitHubData.Stars)
	assert.Equal(t, []domain.Category{{Name: "Provisioning", Subcategories: []string{"Automation"}}}, data.Categories)
}

func TestDatasetFile_Errors(t *testing.T) {
	_, err := NewDatasetFile(filepath.Join(t.TempDir(), "missing.json")).Read(context.Background())
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "full.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = NewDatasetFile(path).Read(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

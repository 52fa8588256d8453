package mapping

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layeddie/patidx/internal/config"
	"github.com/layeddie/patidx/internal/keyword"
	"github.com/layeddie/patidx/internal/pattern"
)

func newTestBuilder(mappingCap int) *Builder {
	deriver := keyword.NewDeriver(config.KeywordConfig{
		MaxPerPattern:  6,
		MinTokenLength: 3,
	})
	return NewBuilder(deriver, mappingCap)
}

func TestBuild_OneMappingPerRecord(t *testing.T) {
	files := []FileRecords{
		{
			ShortName: "alpha_patterns",
			File:      "alpha_patterns.md",
			Records: []pattern.Record{
				{Ordinal: 1, Title: "GenServer State Handling", Problem: "state leaks across requests"},
				{Ordinal: 2, Title: "Timeout Handling"},
			},
		},
		{
			ShortName: "beta_patterns",
			File:      "beta_patterns.md",
			Records: []pattern.Record{
				{Ordinal: 1, Title: "Retry Backoff"},
			},
		},
	}

	mappings := newTestBuilder(50).Build(files)
	require.Len(t, mappings, 3)

	assert.Equal(t, "alpha_patterns.md", mappings[0].File)
	assert.Equal(t, "Pattern 1", mappings[0].Section)
	assert.Equal(t, "GenServer State Handling", mappings[0].Title)
	assert.Contains(t, mappings[0].Keywords, "genserver")
	assert.Contains(t, mappings[0].Keywords, ", ")

	assert.Equal(t, "Pattern 2", mappings[1].Section)
	assert.Equal(t, "beta_patterns.md", mappings[2].File)
}

func TestBuild_TruncatesAtCap(t *testing.T) {
	var files []FileRecords
	for f := 0; f < 3; f++ {
		fr := FileRecords{
			ShortName: fmt.Sprintf("file%d_patterns", f),
			File:      fmt.Sprintf("file%d_patterns.md", f),
		}
		for i := 1; i <= 20; i++ {
			fr.Records = append(fr.Records, pattern.Record{
				Ordinal: i,
				Title:   fmt.Sprintf("Topic %d Number %d", f, i),
			})
		}
		files = append(files, fr)
	}

	mappings := newTestBuilder(50).Build(files)
	require.Len(t, mappings, 50)

	// Exactly the first 50 in traversal order: all of file0 and file1,
	// then the first 10 of file2.
	assert.Equal(t, "file0_patterns.md", mappings[0].File)
	assert.Equal(t, "file1_patterns.md", mappings[20].File)
	assert.Equal(t, "file2_patterns.md", mappings[40].File)
	assert.Equal(t, "Pattern 10", mappings[49].Section)
}

func TestBuild_FallbackRecordStillMapped(t *testing.T) {
	files := []FileRecords{{
		ShortName: "odd_patterns",
		File:      "odd_patterns.md",
		Records:   []pattern.Record{{Ordinal: 0, Title: pattern.FallbackTitle}},
	}}

	mappings := newTestBuilder(50).Build(files)
	require.Len(t, mappings, 1)
	assert.Equal(t, "Pattern 0", mappings[0].Section)
	assert.Equal(t, pattern.FallbackTitle, mappings[0].Title)
}

func TestBuild_EmptyCorpus(t *testing.T) {
	assert.Empty(t, newTestBuilder(50).Build(nil))
}

func TestTotalRecords(t *testing.T) {
	files := []FileRecords{
		{Records: []pattern.Record{{Ordinal: 1}, {Ordinal: 2}}},
		{Records: []pattern.Record{{Ordinal: 1}}},
	}
	assert.Equal(t, 3, TotalRecords(files))
	assert.Equal(t, 0, TotalRecords(nil))
}

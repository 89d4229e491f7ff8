package rules

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/nil-compliance/internal/model"
)

func TestTable_LookupKnownState(t *testing.T) {
	tbl := New(Seed())

	fl, ok := tbl.Lookup("FL")
	require.True(t, ok)
	assert.Equal(t, 3, fl.DisclosureDeadlineDays)
	assert.True(t, fl.ProhibitsCategory("sports_betting"))
}

func TestTable_LookupNormalizesCode(t *testing.T) {
	tbl := New(Seed())
	_, ok := tbl.Lookup(" ca ")
	assert.True(t, ok)
}

func TestTable_UnknownFallsBackToDefault(t *testing.T) {
	tbl := New(Seed())

	r, ok := tbl.Lookup("MT")
	assert.False(t, ok)
	assert.Equal(t, "default", r.Code)
	assert.True(t, r.NILPermitted)
	assert.Equal(t, 7, r.DisclosureDeadlineDays)
}

func TestTable_ExplicitDefaultOverride(t *testing.T) {
	tbl := New([]model.StateRule{
		{Code: "default", Name: "Default", NILPermitted: true, DisclosureDeadlineDays: 10},
	})

	r, ok := tbl.Lookup("MT")
	assert.False(t, ok)
	assert.Equal(t, 10, r.DisclosureDeadlineDays)
}

func TestTable_ReplaceIsAtomicUnderReaders(t *testing.T) {
	tbl := New(Seed())

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				r, _ := tbl.Lookup("TX")
				// A reader must always see a complete rule.
				assert.NotEmpty(t, r.Code)
			}
		}()
	}
	for i := 0; i < 100; i++ {
		tbl.Replace(Seed())
	}
	close(stop)
	wg.Wait()
}

func TestLoadFile_NormalizesAndTitles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `rules:
  - code: oh
    nil_permitted: true
    disclosure_deadline_days: 5
    prohibited_categories: [" Alcohol ", "GAMBLING"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "OH", got[0].Code)
	assert.Equal(t, "Oh", got[0].Name)
	assert.Equal(t, []string{"alcohol", "gambling"}, got[0].ProhibitedCategories)
}

func TestLoadFile_RejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name    string
		content string
	}{
		{"empty", "rules: []\n"},
		{"bad code", "rules:\n  - code: TEX\n"},
		{"duplicate", "rules:\n  - code: TX\n  - code: tx\n"},
		{"negative deadline", "rules:\n  - code: TX\n    disclosure_deadline_days: -1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))
			_, err := LoadFile(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

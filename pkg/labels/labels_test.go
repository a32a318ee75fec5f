package labels_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/labelsync/pkg/labels"
)

func TestNormalizeColor(t *testing.T) {
	assert.Equal(t, "ff0000", labels.NormalizeColor("#ff0000"))
	assert.Equal(t, "ff0000", labels.NormalizeColor("ff0000"))
	assert.Equal(t, "FF0000", labels.NormalizeColor(" #FF0000 "))
	assert.True(t, labels.EqualColor("#FF0000", "ff0000"))
	assert.False(t, labels.EqualColor("ff0000", "00ff00"))
}

func TestNormalizeDescription(t *testing.T) {
	tests := []struct {
		name        string
		description *string
		fallback    string
		want        string
	}{
		{"absent takes fallback", nil, "keep", "keep"},
		{"absent without fallback", nil, "", ""},
		{"empty overrides fallback", labels.String(""), "keep", ""},
		{"value is trimmed", labels.String("  bug report "), "", "bug report"},
		{"whitespace only is empty", labels.String("   "), "keep", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, labels.NormalizeDescription(tt.description, tt.fallback))
		})
	}
}

func TestEqualName(t *testing.T) {
	assert.True(t, labels.EqualName("Bug", "bug"))
	assert.True(t, labels.EqualName("FOO", "foo"))
	assert.True(t, labels.EqualName("ÉCOLE", "école"))
	assert.False(t, labels.EqualName("bug", "bugs"))
}

func TestConfiguredLabel(t *testing.T) {
	configured := labels.ConfiguredLabel{
		Name:        "type: bug",
		Color:       "#D73A4A",
		Description: labels.String("Something is broken"),
		Aliases:     []string{"bug", "defect"},
	}

	t.Run("Label strips aliases and normalizes color", func(t *testing.T) {
		assert.Equal(t, labels.Label{
			Name:        "type: bug",
			Color:       "D73A4A",
			Description: labels.String("Something is broken"),
		}, configured.Label())
	})

	t.Run("MatchesName checks name and aliases", func(t *testing.T) {
		assert.True(t, configured.MatchesName("TYPE: BUG"))
		assert.True(t, configured.MatchesName("Defect"))
		assert.False(t, configured.MatchesName("enhancement"))
	})

	t.Run("Equal compares normalized content", func(t *testing.T) {
		same := configured
		same.Color = "d73a4a"
		same.Description = labels.String("Something is broken")
		assert.True(t, configured.Equal(same))

		other := configured
		other.Description = nil
		assert.False(t, configured.Equal(other))

		renamed := configured
		renamed.Aliases = []string{"bug"}
		assert.False(t, configured.Equal(renamed))
	})
}

func TestConfiguredLabelClone(t *testing.T) {
	original := []labels.ConfiguredLabel{{
		Name:        "bug",
		Color:       "d73a4a",
		Description: labels.String("Something is broken"),
		Aliases:     []string{"defect"},
	}}

	copied := labels.CloneAll(original)
	require.Equal(t, original, copied)

	*copied[0].Description = "changed"
	copied[0].Aliases[0] = "changed"
	assert.Equal(t, "Something is broken", *original[0].Description)
	assert.Equal(t, []string{"defect"}, original[0].Aliases)

	assert.Nil(t, labels.CloneAll(nil))
}

func TestRecordHasLabel(t *testing.T) {
	record := labels.Record{Number: 7, Labels: []string{"Bug", "help wanted"}}
	assert.True(t, record.HasLabel("bug"))
	assert.True(t, record.HasLabel("help wanted"))
	assert.False(t, record.HasLabel("wontfix"))
}

func TestEntryType(t *testing.T) {
	for _, typ := range labels.EntryTypes {
		assert.True(t, typ.Valid(), typ)
	}
	assert.False(t, labels.EntryType("renamed").Valid())
	assert.Equal(t, "merge", labels.Merge.String())
}

func TestResolvedSet(t *testing.T) {
	set := labels.ResolvedSet{}
	set.Add(2)
	assert.True(t, set.Has(2))
	assert.False(t, set.Has(0))
}

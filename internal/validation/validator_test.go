package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireColumns(t *testing.T) {
	required := []string{"Title", "Detailed summary", "Objective"}

	assert.NoError(t, RequireColumns("Summerization", []string{"Objective", "Title", "Detailed summary", "Extra"}, required))

	err := RequireColumns("Summerization", []string{"Title"}, required)
	require.Error(t, err)

	var mce *MissingColumnsError
	require.ErrorAs(t, err, &mce)
	assert.Equal(t, []string{"Detailed summary", "Objective"}, mce.Missing)
	assert.Equal(t, "Summerization", mce.Sheet)
	assert.Equal(t, "Missing required columns in Excel: ['Detailed summary', 'Objective']", err.Error())
}

func TestIsMissingColumns(t *testing.T) {
	err := RequireColumns("s", nil, []string{"Objective"})

	assert.True(t, IsMissingColumns(err))
	assert.True(t, IsMissingColumns(fmt.Errorf("loading workbook: %w", err)))
	assert.False(t, IsMissingColumns(fmt.Errorf("other")))
	assert.False(t, IsMissingColumns(nil))
}

package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Choice
		wantErr bool
	}{
		{"first choice", "1", ChoiceListBuckets, false},
		{"exit choice", "7", ChoiceExit, false},
		{"surrounding whitespace", "  4  ", ChoiceListInstances, false},
		{"zero", "0", 0, true},
		{"out of range", "8", 0, true},
		{"negative", "-1", 0, true},
		{"not a number", "abc", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseChoice(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid option")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLabels(t *testing.T) {
	labels := Labels()

	require.Len(t, labels, 7)
	assert.Equal(t, "List S3 buckets", labels[0])
	assert.Equal(t, "Exit", labels[6])
}

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveItems(t *testing.T) {
	snap := mustSnapshot(t, setupSnapshotTest(t))

	tests := []struct {
		arg  string
		want []string
	}{
		{"weapon/sword_001", []string{"Sword"}},
		{"food/Ham", []string{"Ham"}},
		{"sword", []string{"Sword"}},
		{"AXE_001", []string{"Axe"}},
		{"a", []string{"Axe", "Ham"}},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			items, err := resolveItems(snap, tt.arg)
			require.NoError(t, err)
			names := make([]string, 0, len(items))
			for _, it := range items {
				names = append(names, it.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}

	_, err := resolveItems(snap, "nothing-like-this")
	assert.Error(t, err)
}

func TestOtherLocations(t *testing.T) {
	assert.Equal(t, []string{"Carlin", "Venore"}, otherLocations([]string{"Carlin", "Thais", "Venore"}, "Thais"))
}

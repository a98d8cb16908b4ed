package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Selvaprakash-V/SIH2K25/models"
)

// fakeVillageUpserter resolves each row to a pre-assigned village id, the
// way the store resolves (name, district, state) to an ObjectID hex.
type fakeVillageUpserter struct {
	ids     []string
	created []bool
	calls   int
}

func (f *fakeVillageUpserter) UpsertVillageRow(_ context.Context, _ models.Village, _ models.Amenities) (string, bool, error) {
	i := f.calls
	f.calls++
	return f.ids[i], f.created[i], nil
}

func TestIngestVillageRowsInvalidatesGapCache(t *testing.T) {
	csvData := strings.Join([]string{
		"name,district,state,population,water,electricity",
		"Rangpo,Pakyong,Sikkim,5000,1,85",
		"Lingtam,Pakyong,Sikkim,1200,0,40",
	}, "\n")
	rows, err := parseVillageCSV(strings.NewReader(csvData), "", "")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Parsed rows carry no village id; invalidation must use the ids the
	// upsert resolves.
	for _, row := range rows {
		require.Empty(t, row.Amenities.VillageID)
	}

	h := newTestHandler()
	up := &fakeVillageUpserter{
		ids:     []string{"66f0a1b2c3d4e5f601234567", "66f0a1b2c3d4e5f6012345ff"},
		created: []bool{false, true},
	}
	for _, id := range up.ids {
		h.caches.Gaps.SetDefault(id, models.GapReport{VillageID: id})
	}
	h.caches.Gaps.SetDefault("untouched", models.GapReport{VillageID: "untouched"})

	created, updated, err := h.ingestVillageRows(context.Background(), up, rows)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, updated)
	assert.Equal(t, 2, up.calls)

	for _, id := range up.ids {
		_, ok := h.caches.Gaps.Get(id)
		assert.False(t, ok, "cached report for %q should have been dropped", id)
	}
	_, ok := h.caches.Gaps.Get("untouched")
	assert.True(t, ok)
}

func TestParseVillageCSV(t *testing.T) {
	csvData := strings.Join([]string{
		"name,district,state,population,sc_ratio,water,electricity,schools,health_centers,toilets,internet",
		"Rangpo,Pakyong,Sikkim,5000,0.12,1,85.5,5,1,72,55",
		"Lingtam,Pakyong,Sikkim,1200,0.30,0,40,1,0,25,5",
	}, "\n")

	rows, err := parseVillageCSV(strings.NewReader(csvData), "", "")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Rangpo", rows[0].Village.Name)
	assert.Equal(t, 5000, rows[0].Village.Population)
	assert.Equal(t, 0.12, rows[0].Village.SCRatio)
	assert.Equal(t, 85.5, rows[0].Amenities.Electricity)
	assert.Equal(t, 5, rows[0].Amenities.Schools)

	assert.Equal(t, 0, rows[1].Amenities.Water)
	assert.Equal(t, 25.0, rows[1].Amenities.Toilets)
}

func TestParseVillageCSVDefaultScope(t *testing.T) {
	csvData := "name,population\nRangpo,5000\n"

	rows, err := parseVillageCSV(strings.NewReader(csvData), "Sikkim", "Pakyong")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sikkim", rows[0].Village.State)
	assert.Equal(t, "Pakyong", rows[0].Village.District)
}

func TestParseVillageCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing name column", "district,population\nPakyong,5000\n"},
		{"missing population column", "name,district\nRangpo,Pakyong\n"},
		{"bad population value", "name,population\nRangpo,lots\n"},
		{"negative population", "name,population\nRangpo,-5\n"},
		{"empty file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseVillageCSV(strings.NewReader(tt.data), "", "")
			var verr *models.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestParseVillageCSVSkipsBlankRows(t *testing.T) {
	csvData := "name,population\nRangpo,5000\n,\n"

	rows, err := parseVillageCSV(strings.NewReader(csvData), "", "")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

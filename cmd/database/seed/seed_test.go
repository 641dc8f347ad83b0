package seed

import (
	"Foodgram-Backend/domain"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFixtures_Ingredients(t *testing.T) {
	path := writeFixture(t, `[
		{"name": "salt", "measurement_unit": "g"},
		{"name": "milk", "measurement_unit": "ml"}
	]`)

	fixtures, err := LoadFixtures[domain.IngredientFixture](path)
	require.NoError(t, err)
	require.Len(t, fixtures, 2)
	assert.Equal(t, "milk", fixtures[1].Name)
	assert.Equal(t, "ml", fixtures[1].MeasurementUnit)
}

func TestLoadFixtures_RejectsInvalidEntry(t *testing.T) {
	path := writeFixture(t, `[
		{"name": "Breakfast", "slug": "breakfast", "color": "#E26C2D"},
		{"name": "Lunch", "slug": "lunch", "color": "green"}
	]`)

	_, err := LoadFixtures[domain.TagFixture](path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 1")
	assert.Contains(t, err.Error(), "color")
}

func TestLoadFixtures_BadJSON(t *testing.T) {
	path := writeFixture(t, `{"name": "salt"}`)

	_, err := LoadFixtures[domain.IngredientFixture](path)
	assert.Error(t, err)
}

func TestLoadFixtures_MissingFile(t *testing.T) {
	_, err := LoadFixtures[domain.IngredientFixture](filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

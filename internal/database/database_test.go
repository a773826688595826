package database

import (
	"context"
	"testing"

	"github.com/pageza/mise/backend/config"
	"github.com/pageza/mise/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, nil)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	assert.NoError(t, HealthCheck(context.Background(), db))

	recipe := model.Recipe{
		Name:        "Pancakes",
		Ingredients: model.JSONBStringArray{"2 cups flour", "1 1/2 cups milk", "salt to taste"},
	}
	require.NoError(t, db.Create(&recipe).Error)
	assert.Equal(t, model.DefaultServings, recipe.Servings)

	var loaded model.Recipe
	require.NoError(t, db.First(&loaded, "id = ?", recipe.ID).Error)
	assert.Equal(t, recipe.Ingredients, loaded.Ingredients)
	assert.Equal(t, model.JSONBStringArray{}, loaded.Instructions)
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "mysql"}, nil)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestPendingMigrations(t *testing.T) {
	m := NewMigrator(nil, "../../migrations", nil)
	files, err := m.Pending()
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, f := range files {
		assert.NotContains(t, f, "_rollback")
	}
	assert.Equal(t, "000001", migrationVersion(files[0]))
}

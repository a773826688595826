package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONBStringArray(t *testing.T) {
	v, err := JSONBStringArray{"2 cups flour", "1 egg"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["2 cups flour","1 egg"]`, v)

	v, err = JSONBStringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	var a JSONBStringArray
	require.NoError(t, a.Scan([]byte(`["salt"]`)))
	assert.Equal(t, JSONBStringArray{"salt"}, a)

	require.NoError(t, a.Scan(`["a","b"]`))
	assert.Equal(t, JSONBStringArray{"a", "b"}, a)

	require.NoError(t, a.Scan(nil))
	assert.Equal(t, JSONBStringArray{}, a)

	require.NoError(t, a.Scan("null"))
	assert.Equal(t, JSONBStringArray{}, a)

	assert.Error(t, a.Scan(42))
	assert.Error(t, a.Scan("not json"))
}

func TestMealType(t *testing.T) {
	assert.True(t, Dinner.Valid())
	assert.True(t, Snack.Valid())
	assert.False(t, MealType("brunch").Valid())
}

func TestMealPlanEntryBefore(t *testing.T) {
	monday := time.Date(2026, 10, 12, 18, 30, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	dinner := MealPlanEntry{Date: monday, MealType: Dinner}
	breakfast := MealPlanEntry{Date: monday.Add(-10 * time.Hour), MealType: Breakfast}
	nextDay := MealPlanEntry{Date: tuesday, MealType: Breakfast}

	assert.True(t, breakfast.Before(dinner))
	assert.False(t, dinner.Before(breakfast))
	assert.True(t, dinner.Before(nextDay))
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2026, 3, 4, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), DateOnly(in))
}

package categories

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WeiChun0723/Moni/internal/models"
)

func TestStyleStore_DefaultsWhenFileMissing(t *testing.T) {
	store := NewStyleStore(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, store.Load())

	style := store.Style(models.CategoryFood)
	assert.Equal(t, "#f87171", style.Color)
	assert.NotEmpty(t, style.Icon)
}

func TestStyleStore_Overrides(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "categories.yaml")
	content := `categories:
  Food:
    color: "#ff0000"
  transport:
    icon: "🚗"
  Gadgets:
    color: "#123456"
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0600))

	store := NewStyleStore(file)
	require.NoError(t, store.Load())

	// Overridden field changes, the other keeps its default.
	food := store.Style(models.CategoryFood)
	assert.Equal(t, "#ff0000", food.Color)
	assert.NotEmpty(t, food.Icon)

	// Category matching is case-insensitive.
	transport := store.Style(models.CategoryTransport)
	assert.Equal(t, "🚗", transport.Icon)
	assert.Equal(t, "#fbbf24", transport.Color)

	// Unknown category names are ignored, not folded into Other.
	other := store.Style(models.CategoryOther)
	assert.Equal(t, "#94a3b8", other.Color)
}

func TestStyleStore_UnknownCategoryGetsOtherStyle(t *testing.T) {
	store := NewStyleStore("")
	require.NoError(t, store.Load())

	style := store.Style(models.Category("Gadgets"))
	assert.Equal(t, store.Style(models.CategoryOther), style)
}

func TestStyleStore_StyleBeforeLoad(t *testing.T) {
	store := NewStyleStore("")
	style := store.Style(models.CategoryIncome)
	assert.Equal(t, "#10b981", style.Color)
}

func TestStyleStore_SaveRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "categories.yaml")

	store := NewStyleStore(file)
	require.NoError(t, store.Load())
	require.NoError(t, store.Save())

	reloaded := NewStyleStore(file)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, store.Style(models.CategoryFood), reloaded.Style(models.CategoryFood))
}

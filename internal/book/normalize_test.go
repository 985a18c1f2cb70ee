package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() Input {
	return Input{
		Title:      "Atlas",
		Price:      "1200",
		Categories: "Maps, Reference",
		Languages:  "EN, FR",
		Type:       "single",
		Quantity:   "3",
	}
}

func TestNormalize(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		b, err := Normalize(validInput())
		require.NoError(t, err)

		assert.Equal(t, "Atlas", b.Title)
		assert.Equal(t, 1200.0, b.Price)
		assert.Equal(t, []string{"Maps", "Reference"}, b.Categories)
		assert.Equal(t, []string{"EN", "FR"}, b.Languages)
		assert.Equal(t, "single", b.Type)
		assert.Equal(t, 3, b.Quantity)
		assert.False(t, b.IsMonthly)
		assert.Empty(t, b.Image)
	})

	t.Run("list fields trim whitespace and drop empty tokens", func(t *testing.T) {
		in := validInput()
		in.Categories = " Maps ,, Reference , "
		in.Languages = " EN ,  AR,, FR "

		b, err := Normalize(in)
		require.NoError(t, err)
		assert.Equal(t, []string{"Maps", "Reference"}, b.Categories)
		assert.Equal(t, []string{"EN", "AR", "FR"}, b.Languages)
	})

	t.Run("duplicate languages are preserved", func(t *testing.T) {
		in := validInput()
		in.Languages = "EN, EN, FR"

		b, err := Normalize(in)
		require.NoError(t, err)
		assert.Equal(t, []string{"EN", "EN", "FR"}, b.Languages)
	})

	t.Run("invalid language reports every offending token", func(t *testing.T) {
		in := validInput()
		in.Languages = "EN, XX, DE"

		_, err := Normalize(in)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		require.Len(t, ve.Fields, 1)
		assert.Equal(t, "languages", ve.Fields[0].Field)
		assert.Contains(t, ve.Fields[0].Message, "XX")
		assert.Contains(t, ve.Fields[0].Message, "DE")
	})

	t.Run("isMonthly true only on exact match", func(t *testing.T) {
		for raw, want := range map[string]bool{
			"true":  true,
			"TRUE":  false,
			"True":  false,
			"yes":   false,
			"1":     false,
			"":      false,
			"false": false,
		} {
			in := validInput()
			in.IsMonthly = raw
			b, err := Normalize(in)
			require.NoError(t, err)
			assert.Equal(t, want, b.IsMonthly, "isMonthly=%q", raw)
		}
	})

	t.Run("non-numeric price", func(t *testing.T) {
		in := validInput()
		in.Price = "abc"

		_, err := Normalize(in)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		require.Len(t, ve.Fields, 1)
		assert.Equal(t, "price", ve.Fields[0].Field)
	})

	t.Run("missing price", func(t *testing.T) {
		in := validInput()
		in.Price = ""

		_, err := Normalize(in)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "price", ve.Fields[0].Field)
	})

	t.Run("negative price", func(t *testing.T) {
		in := validInput()
		in.Price = "-5"

		_, err := Normalize(in)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "price", ve.Fields[0].Field)
	})

	t.Run("non-numeric quantity", func(t *testing.T) {
		in := validInput()
		in.Quantity = "lots"

		_, err := Normalize(in)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "quantity", ve.Fields[0].Field)
	})

	t.Run("quantity defaults to zero", func(t *testing.T) {
		in := validInput()
		in.Quantity = ""

		b, err := Normalize(in)
		require.NoError(t, err)
		assert.Equal(t, 0, b.Quantity)
	})

	t.Run("unknown type", func(t *testing.T) {
		in := validInput()
		in.Type = "bundle"

		_, err := Normalize(in)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "type", ve.Fields[0].Field)
	})

	t.Run("multiple problems reported together", func(t *testing.T) {
		in := Input{
			Price:     "nope",
			Languages: "ZZ",
			Type:      "bundle",
		}

		_, err := Normalize(in)
		ve, ok := AsValidationError(err)
		require.True(t, ok)

		got := make(map[string]bool)
		for _, f := range ve.Fields {
			got[f.Field] = true
		}
		assert.True(t, got["title"])
		assert.True(t, got["price"])
		assert.True(t, got["categories"])
		assert.True(t, got["type"])
		assert.True(t, got["languages"])
	})

	t.Run("empty categories after trimming", func(t *testing.T) {
		in := validInput()
		in.Categories = " , , "

		_, err := Normalize(in)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "categories", ve.Fields[0].Field)
	})
}

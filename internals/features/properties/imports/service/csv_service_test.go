package service_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internals/features/properties/imports/service"
)

func TestSampleRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, service.WriteSample(&buf))

	rows, err := service.Parse(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, 2, first.Line)
	assert.Empty(t, first.Errors)
	assert.Equal(t, "rent", first.Request.ListingType)
	require.NotNil(t, first.Request.Rent)
	assert.EqualValues(t, 25000, *first.Request.Rent)
	assert.Equal(t, []string{"parking", "lift", "power_backup"}, first.Request.Amenities)
	require.NotNil(t, first.Request.AvailableFrom)
	assert.Equal(t, "2026-01-01", first.Request.AvailableFrom.Format("2006-01-02"))

	assert.Equal(t, "office", rows[1].Request.PropertyType)
	assert.Nil(t, rows[1].Request.Bedrooms)
}

func TestParseCollectsRowErrors(t *testing.T) {
	in := "\ufeffTitle,LISTINGTYPE,price,bedrooms,availableFrom,categoryId,extra\n" +
		"Plot,buy,\"1,50,000\",,,,ignored\n" +
		",,,,,,\n" +
		"Bad,rent,abc,two,31/31/2026,nope,\n"
	rows, err := service.Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "sale", rows[0].Request.ListingType)
	require.NotNil(t, rows[0].Request.Price)
	assert.EqualValues(t, 150000, *rows[0].Request.Price)
	assert.Empty(t, rows[0].Errors)

	bad := rows[1]
	assert.Equal(t, 4, bad.Line, "blank rows still count")
	assert.Contains(t, bad.Errors, "price")
	assert.Contains(t, bad.Errors, "bedrooms")
	assert.Contains(t, bad.Errors, "availableFrom")
	assert.Contains(t, bad.Errors, "categoryId")
}

func TestParseLimits(t *testing.T) {
	_, err := service.Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, service.ErrNoHeader)

	var b strings.Builder
	b.WriteString("title\n")
	for i := 0; i <= service.MaxImportRows; i++ {
		b.WriteString("row\n")
	}
	rows, err := service.Parse(strings.NewReader(b.String()))
	assert.Error(t, err)
	assert.Len(t, rows, service.MaxImportRows)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internals/constants"
	"estatehub_backend/internals/features/properties/properties/dto"
	"estatehub_backend/internals/features/properties/properties/model"
	helper "estatehub_backend/internals/helpers"
	"estatehub_backend/internals/testutil"
)

func TestBHKCondition(t *testing.T) {
	cond, args := bhkCondition([]string{"1", "2bhk", "4+", "5+", "x"})
	assert.Equal(t, "(properties.bedrooms IN ? OR properties.bedrooms >= ?)", cond)
	require.Len(t, args, 2)
	assert.Equal(t, []int{1, 2}, args[0])
	assert.Equal(t, 4, args[1])

	cond, args = bhkCondition(nil)
	assert.Empty(t, cond)
	assert.Nil(t, args)
}

func TestOrderForFallsBackToNewest(t *testing.T) {
	assert.Equal(t, OrderFor(dto.SortNewest), OrderFor("nonsense"))
	assert.NotEqual(t, OrderFor(dto.SortPriceAsc), OrderFor(dto.SortPriceDesc))
}

func TestListOrdersNewestFirstByDefault(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	owner := uuid.New()
	rent := 20000.0
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	old := model.PropertyModel{Title: "Featured older", PropertyType: "apartment", ListingType: "rent", City: "Pune", State: "MH", Address: "a", Rent: &rent, IsFeatured: true, Status: constants.PropertyActive, OwnerID: owner, CreatedAt: base}
	fresh := model.PropertyModel{Title: "Plain newer", PropertyType: "apartment", ListingType: "rent", City: "Pune", State: "MH", Address: "b", Rent: &rent, Status: constants.PropertyActive, OwnerID: owner, CreatedAt: base.Add(time.Hour)}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&fresh).Error)
	page := helper.Paging{Page: 1, PerPage: 20, Limit: 20}

	got, _, err := List(ctx, db, dto.PropertyFilter{}, page)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Plain newer", got[0].Title)

	got, _, err = List(ctx, db, dto.PropertyFilter{Sort: dto.SortFeatured}, page)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Featured older", got[0].Title)
}

func TestListFilters(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	owner := uuid.New()
	price := func(v float64) *float64 { return &v }
	beds := func(v int) *int { return &v }

	rows := []model.PropertyModel{
		{Title: "1BHK Andheri", PropertyType: "apartment", ListingType: "rent", City: "Mumbai", State: "MH", Address: "a", Rent: price(20000), Price: price(20000), Bedrooms: beds(1), Status: constants.PropertyActive, OwnerID: owner},
		{Title: "3BHK Powai", PropertyType: "apartment", ListingType: "rent", City: "Mumbai", State: "MH", Address: "b", Rent: price(60000), Price: price(60000), Bedrooms: beds(3), Status: constants.PropertyActive, OwnerID: owner},
		{Title: "5BHK Villa", PropertyType: "villa", ListingType: "sale", City: "mumbai", State: "MH", Address: "c", SalePrice: price(5e7), Price: price(5e7), Bedrooms: beds(5), Status: constants.PropertyActive, OwnerID: owner},
		{Title: "Hidden flat", PropertyType: "apartment", ListingType: "rent", City: "Mumbai", State: "MH", Address: "d", Rent: price(30000), Price: price(30000), Bedrooms: beds(2), Status: constants.PropertyPending, OwnerID: owner},
		{Title: "Pune office", PropertyType: "office", ListingType: "rent", City: "Pune", State: "MH", Address: "e", Rent: price(90000), Price: price(90000), IsCommercial: true, Status: constants.PropertyActive, OwnerID: owner},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}
	page := helper.Paging{Page: 1, PerPage: 20, Limit: 20}

	got, total, err := List(ctx, db, dto.PropertyFilter{City: "MUMBAI"}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, got, 3)

	_, total, err = List(ctx, db, dto.PropertyFilter{City: "Mumbai", Status: dto.StatusAll}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)

	got, _, err = List(ctx, db, dto.PropertyFilter{BHK: []string{"1", "4+"}}, page)
	require.NoError(t, err)
	titles := []string{}
	for _, p := range got {
		titles = append(titles, p.Title)
	}
	assert.ElementsMatch(t, []string{"1BHK Andheri", "5BHK Villa"}, titles)

	got, _, err = List(ctx, db, dto.PropertyFilter{ListingType: "rent", MinPrice: price(25000), MaxPrice: price(70000)}, page)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "3BHK Powai", got[0].Title)

	commercial := true
	got, _, err = List(ctx, db, dto.PropertyFilter{IsCommercial: &commercial}, page)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Pune office", got[0].Title)

	got, _, err = List(ctx, db, dto.PropertyFilter{Query: "powai"}, page)
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, _, err = List(ctx, db, dto.PropertyFilter{City: "Mumbai", Sort: dto.SortPriceAsc}, page)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "1BHK Andheri", got[0].Title)
	assert.Equal(t, "5BHK Villa", got[2].Title)
}

func TestExpireListings(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(24 * time.Hour)

	old := model.PropertyModel{Title: "old", PropertyType: "house", ListingType: "rent", City: "X", State: "Y", Address: "z", Status: constants.PropertyActive, ExpiresAt: &past, OwnerID: uuid.New()}
	fresh := model.PropertyModel{Title: "fresh", PropertyType: "house", ListingType: "rent", City: "X", State: "Y", Address: "z", Status: constants.PropertyActive, ExpiresAt: &future, OwnerID: uuid.New()}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&fresh).Error)

	n, err := ExpireListings(ctx, db, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, db.First(&old, "id = ?", old.ID).Error)
	require.NoError(t, db.First(&fresh, "id = ?", fresh.ID).Error)
	assert.Equal(t, constants.PropertyExpired, old.Status)
	assert.Equal(t, constants.PropertyActive, fresh.Status)
}

package catalog

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animetrack/internal/account"
	"animetrack/internal/list"
	"animetrack/pkg/database"
)

func testDB(t *testing.T) (*sql.DB, account.Account) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	admin, err := account.Create(db, "Admin", "admin@example.com", "admin123")
	require.NoError(t, err)
	return db, admin
}

func TestCreateAndGet(t *testing.T) {
	db, admin := testDB(t)

	it, err := Create(db, admin.ID, NewItem{Title: "Naruto", Kind: KindAnime, Status: StatusOngoing, UnitCount: 220})
	require.NoError(t, err)

	got, err := GetByID(db, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "Naruto", got.Title)
	assert.Equal(t, KindAnime, got.Kind)
	assert.Equal(t, 220, got.UnitCount)
	require.NotNil(t, got.CreatedBy)
	assert.Equal(t, admin.ID, *got.CreatedBy)
	require.NotNil(t, got.CreatorName)
	assert.Equal(t, "Admin", *got.CreatorName)
	assert.Zero(t, got.AvgRating)
}

func TestGetMissing(t *testing.T) {
	db, _ := testDB(t)

	_, err := GetByID(db, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFilters(t *testing.T) {
	db, admin := testDB(t)

	seed := []NewItem{
		{Title: "Berserk", Kind: KindManga, Status: StatusOngoing},
		{Title: "Death Note", Kind: KindAnime, Status: StatusComplete},
		{Title: "Naruto", Kind: KindAnime, Status: StatusOngoing},
	}
	for _, n := range seed {
		_, err := Create(db, admin.ID, n)
		require.NoError(t, err)
	}

	all, err := List(db, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// title ascending
	assert.Equal(t, "Berserk", all[0].Title)
	assert.Equal(t, "Death Note", all[1].Title)
	assert.Equal(t, "Naruto", all[2].Title)

	anime, err := List(db, Filter{Kind: KindAnime})
	require.NoError(t, err)
	assert.Len(t, anime, 2)

	ongoingManga, err := List(db, Filter{Kind: KindManga, Status: StatusOngoing})
	require.NoError(t, err)
	require.Len(t, ongoingManga, 1)
	assert.Equal(t, "Berserk", ongoingManga[0].Title)
}

func TestListSearchCaseSensitive(t *testing.T) {
	db, admin := testDB(t)

	_, err := Create(db, admin.ID, NewItem{Title: "Naruto", Kind: KindAnime, Status: StatusOngoing})
	require.NoError(t, err)

	hit, err := List(db, Filter{Search: "Naru"})
	require.NoError(t, err)
	assert.Len(t, hit, 1)

	miss, err := List(db, Filter{Search: "naru"})
	require.NoError(t, err)
	assert.Empty(t, miss)
}

func TestUpdatePatch(t *testing.T) {
	db, admin := testDB(t)

	it, err := Create(db, admin.ID, NewItem{Title: "Naruto", Description: "ninjas", Kind: KindAnime, Status: StatusOngoing, UnitCount: 220})
	require.NoError(t, err)

	status := StatusComplete
	updated, err := Update(db, it.ID, Patch{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, StatusComplete, updated.Status)
	assert.Equal(t, "Naruto", updated.Title, "omitted fields must keep their values")
	assert.Equal(t, "ninjas", updated.Description)
	assert.Equal(t, 220, updated.UnitCount)
}

func TestUpdateMissing(t *testing.T) {
	db, _ := testDB(t)

	title := "Ghost"
	_, err := Update(db, 99, Patch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCascadesListEntries(t *testing.T) {
	db, admin := testDB(t)

	user, err := account.Create(db, "Ana", "ana@example.com", "pw123456")
	require.NoError(t, err)
	it, err := Create(db, admin.ID, NewItem{Title: "Naruto", Kind: KindAnime, Status: StatusOngoing})
	require.NoError(t, err)
	_, err = list.Create(db, user.ID, list.NewEntry{ItemID: it.ID, Status: list.StatusPlanned})
	require.NoError(t, err)

	require.NoError(t, Delete(db, it.ID))

	_, err = GetByID(db, it.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	entries, err := list.ForUser(db, user.ID)
	require.NoError(t, err)
	assert.Empty(t, entries, "deleting the item must remove dependent entries")

	assert.ErrorIs(t, Delete(db, it.ID), ErrNotFound)
}

package list

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animetrack/internal/account"
	"animetrack/internal/catalog"
	"animetrack/pkg/database"
)

type fixture struct {
	db     *sql.DB
	ana    account.Account
	bia    account.Account
	itemID int64
}

func setup(t *testing.T) fixture {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	ana, err := account.Create(db, "Ana", "ana@example.com", "pw123456")
	require.NoError(t, err)
	bia, err := account.Create(db, "Bia", "bia@example.com", "pw123456")
	require.NoError(t, err)

	it, err := catalog.Create(db, ana.ID, catalog.NewItem{Title: "Naruto", Kind: catalog.KindAnime, Status: catalog.StatusOngoing, UnitCount: 220})
	require.NoError(t, err)

	return fixture{db: db, ana: ana, bia: bia, itemID: it.ID}
}

func TestCreate(t *testing.T) {
	f := setup(t)

	v, err := Create(f.db, f.ana.ID, NewEntry{ItemID: f.itemID, Status: StatusWatching, Progress: 12})
	require.NoError(t, err)

	assert.Equal(t, f.ana.ID, v.UserID)
	assert.Equal(t, StatusWatching, v.Status)
	assert.Equal(t, 12, v.Progress)
	assert.Nil(t, v.Rating)
	assert.Equal(t, "Naruto", v.Title)
	assert.Equal(t, catalog.KindAnime, v.Kind)
	assert.Equal(t, 220, v.UnitCount)
	assert.Equal(t, catalog.StatusOngoing, v.ItemStatus)
}

func TestCreateDuplicate(t *testing.T) {
	f := setup(t)

	first, err := Create(f.db, f.ana.ID, NewEntry{ItemID: f.itemID, Status: StatusPlanned})
	require.NoError(t, err)

	_, err = Create(f.db, f.ana.ID, NewEntry{ItemID: f.itemID, Status: StatusWatching, Progress: 5})
	assert.ErrorIs(t, err, ErrDuplicate)

	// original entry untouched
	entries, err := ForUser(f.db, f.ana.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, first.ID, entries[0].ID)
	assert.Equal(t, StatusPlanned, entries[0].Status)
	assert.Equal(t, 0, entries[0].Progress)
}

func TestCreateSameItemDifferentUsers(t *testing.T) {
	f := setup(t)

	_, err := Create(f.db, f.ana.ID, NewEntry{ItemID: f.itemID, Status: StatusPlanned})
	require.NoError(t, err)
	_, err = Create(f.db, f.bia.ID, NewEntry{ItemID: f.itemID, Status: StatusPlanned})
	assert.NoError(t, err, "uniqueness is per (user, item) pair")
}

func TestRatingConstraint(t *testing.T) {
	f := setup(t)

	for _, bad := range []int{0, 11, -3} {
		r := bad
		_, err := Create(f.db, f.ana.ID, NewEntry{ItemID: f.itemID, Status: StatusComplete, Rating: &r})
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d must be rejected", bad)
	}

	var n int
	require.NoError(t, f.db.QueryRow(`SELECT COUNT(*) FROM list_entries`).Scan(&n))
	assert.Zero(t, n, "rejected ratings must never persist")

	ten := 10
	v, err := Create(f.db, f.ana.ID, NewEntry{ItemID: f.itemID, Status: StatusComplete, Rating: &ten})
	require.NoError(t, err)
	require.NotNil(t, v.Rating)
	assert.Equal(t, 10, *v.Rating)
}

func TestUpdatePartial(t *testing.T) {
	f := setup(t)

	nine := 9
	v, err := Create(f.db, f.ana.ID, NewEntry{ItemID: f.itemID, Status: StatusWatching, Progress: 12, Rating: &nine, Review: "good"})
	require.NoError(t, err)

	status := StatusComplete
	updated, err := Update(f.db, f.ana.ID, v.ID, Patch{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, StatusComplete, updated.Status)
	assert.Equal(t, 12, updated.Progress, "omitted progress must keep its value")
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 9, *updated.Rating)
	assert.Equal(t, "good", updated.Review)
}

func TestUpdateInvalidRating(t *testing.T) {
	f := setup(t)

	v, err := Create(f.db, f.ana.ID, NewEntry{ItemID: f.itemID, Status: StatusWatching})
	require.NoError(t, err)

	eleven := 11
	_, err = Update(f.db, f.ana.ID, v.ID, Patch{Rating: &eleven})
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestOwnershipScope(t *testing.T) {
	f := setup(t)

	v, err := Create(f.db, f.ana.ID, NewEntry{ItemID: f.itemID, Status: StatusWatching})
	require.NoError(t, err)

	// another account sees someone else's entry as absent, not forbidden
	status := StatusDropped
	_, err = Update(f.db, f.bia.ID, v.ID, Patch{Status: &status})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, Delete(f.db, f.bia.ID, v.ID), ErrNotFound)

	entries, err := ForUser(f.db, f.ana.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, StatusWatching, entries[0].Status)
}

func TestDelete(t *testing.T) {
	f := setup(t)

	v, err := Create(f.db, f.ana.ID, NewEntry{ItemID: f.itemID, Status: StatusWatching})
	require.NoError(t, err)

	require.NoError(t, Delete(f.db, f.ana.ID, v.ID))
	assert.ErrorIs(t, Delete(f.db, f.ana.ID, v.ID), ErrNotFound)
}

func TestForUserOrder(t *testing.T) {
	f := setup(t)

	second, err := catalog.Create(f.db, f.ana.ID, catalog.NewItem{Title: "Berserk", Kind: catalog.KindManga, Status: catalog.StatusOngoing})
	require.NoError(t, err)

	e1, err := Create(f.db, f.ana.ID, NewEntry{ItemID: f.itemID, Status: StatusWatching})
	require.NoError(t, err)
	e2, err := Create(f.db, f.ana.ID, NewEntry{ItemID: second.ID, Status: StatusPlanned})
	require.NoError(t, err)

	entries, err := ForUser(f.db, f.ana.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// newest first
	assert.Equal(t, e2.ID, entries[0].ID)
	assert.Equal(t, e1.ID, entries[1].ID)
}

package list

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"animetrack/pkg/database"
)

const (
	StatusWatching = "watching"
	StatusComplete = "complete"
	StatusPlanned  = "planned"
	StatusPaused   = "paused"
	StatusDropped  = "dropped"
)

type Entry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ItemID    int64     `json:"item_id"`
	Status    string    `json:"status"`
	Progress  int       `json:"progress"`
	Rating    *int      `json:"rating"`
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"created_at"`
}

// EntryView is an entry joined with a summary of its catalog item.
type EntryView struct {
	Entry
	Title      string `json:"title"`
	Kind       string `json:"kind"`
	UnitCount  int    `json:"unit_count"`
	ItemStatus string `json:"item_status"`
}

var (
	ErrNotFound      = errors.New("list entry not found")
	ErrDuplicate     = errors.New("item already in list")
	ErrInvalidRating = errors.New("rating must be between 1 and 10")
)

const viewCols = `l.id, l.user_id, l.item_id, l.status, l.progress, l.rating, l.review, l.created_at,
	i.title, i.kind, i.unit_count, i.status`

// ForUser returns the calling account's entries, newest first.
func ForUser(db *sql.DB, userID int64) ([]EntryView, error) {
	rows, err := db.Query(`SELECT `+viewCols+`
		FROM list_entries l
		JOIN catalog_items i ON l.item_id = i.id
		WHERE l.user_id = ?
		ORDER BY l.created_at DESC, l.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []EntryView{}
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, v)
	}
	return entries, rows.Err()
}

type NewEntry struct {
	ItemID   int64
	Status   string
	Progress int
	Rating   *int
	Review   string
}

// Create inserts an entry for the calling account. The UNIQUE
// (user_id, item_id) constraint is the backstop against concurrent
// duplicate inserts, so constraint failures are mapped here rather than
// pre-checked.
func Create(db *sql.DB, userID int64, n NewEntry) (EntryView, error) {
	res, err := db.Exec(`INSERT INTO list_entries (user_id, item_id, status, progress, rating, review)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, n.ItemID, n.Status, n.Progress, n.Rating, n.Review)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err):
			return EntryView{}, ErrDuplicate
		case database.IsCheckViolation(err):
			return EntryView{}, ErrInvalidRating
		}
		return EntryView{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return EntryView{}, err
	}
	return getView(db, userID, id)
}

// Patch carries partial-update fields; a nil field keeps the stored value.
type Patch struct {
	Status   *string
	Progress *int
	Rating   *int
	Review   *string
}

// Update modifies an entry owned by userID. An entry belonging to another
// account is reported as ErrNotFound, never as a permission error.
func Update(db *sql.DB, userID, id int64, p Patch) (EntryView, error) {
	if _, err := getView(db, userID, id); err != nil {
		return EntryView{}, err
	}

	sets := []string{}
	args := []any{}
	if p.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *p.Status)
	}
	if p.Progress != nil {
		sets = append(sets, "progress = ?")
		args = append(args, *p.Progress)
	}
	if p.Rating != nil {
		sets = append(sets, "rating = ?")
		args = append(args, *p.Rating)
	}
	if p.Review != nil {
		sets = append(sets, "review = ?")
		args = append(args, *p.Review)
	}
	if len(sets) == 0 {
		return getView(db, userID, id)
	}

	args = append(args, id, userID)
	_, err := db.Exec(`UPDATE list_entries SET `+strings.Join(sets, ", ")+` WHERE id = ? AND user_id = ?`, args...)
	if err != nil {
		if database.IsCheckViolation(err) {
			return EntryView{}, ErrInvalidRating
		}
		return EntryView{}, err
	}
	return getView(db, userID, id)
}

func Delete(db *sql.DB, userID, id int64) error {
	res, err := db.Exec(`DELETE FROM list_entries WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func getView(db *sql.DB, userID, id int64) (EntryView, error) {
	row := db.QueryRow(`SELECT `+viewCols+`
		FROM list_entries l
		JOIN catalog_items i ON l.item_id = i.id
		WHERE l.id = ? AND l.user_id = ?`, id, userID)
	v, err := scanView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return EntryView{}, ErrNotFound
	}
	return v, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanView(s scanner) (EntryView, error) {
	var v EntryView
	err := s.Scan(&v.ID, &v.UserID, &v.ItemID, &v.Status, &v.Progress, &v.Rating, &v.Review, &v.CreatedAt,
		&v.Title, &v.Kind, &v.UnitCount, &v.ItemStatus)
	return v, err
}

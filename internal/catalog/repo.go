package catalog

import (
	"database/sql"
	"errors"
	"strings"
)

const (
	KindAnime = "anime"
	KindManga = "manga"

	StatusOngoing  = "ongoing"
	StatusComplete = "complete"
	StatusPlanned  = "planned"
)

type Item struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Kind        string  `json:"kind"`
	Status      string  `json:"status"`
	UnitCount   int     `json:"unit_count"`
	ReleaseDate string  `json:"release_date"`
	AvgRating   float64 `json:"avg_rating"`
	CreatedBy   *int64  `json:"created_by"`
	CreatorName *string `json:"creator_name,omitempty"`
}

var ErrNotFound = errors.New("catalog item not found")

const itemCols = `i.id, i.title, i.description, i.kind, i.status, i.unit_count, i.release_date, i.avg_rating, i.created_by, u.name`

// Filter narrows List results. Empty fields add no constraint.
type Filter struct {
	Kind   string
	Status string
	Search string
}

func List(db *sql.DB, f Filter) ([]Item, error) {
	q := `SELECT ` + itemCols + `
	      FROM catalog_items i
	      LEFT JOIN users u ON i.created_by = u.id
	      WHERE 1=1`
	args := []any{}

	if f.Kind != "" {
		q += " AND i.kind = ?"
		args = append(args, f.Kind)
	}
	if f.Status != "" {
		q += " AND i.status = ?"
		args = append(args, f.Status)
	}
	if f.Search != "" {
		// instr keeps the substring match case-sensitive, unlike LIKE
		q += " AND instr(i.title, ?) > 0"
		args = append(args, f.Search)
	}
	q += " ORDER BY i.title"

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Title, &it.Description, &it.Kind, &it.Status,
			&it.UnitCount, &it.ReleaseDate, &it.AvgRating, &it.CreatedBy, &it.CreatorName); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func GetByID(db *sql.DB, id int64) (Item, error) {
	var it Item
	err := db.QueryRow(`SELECT `+itemCols+`
		FROM catalog_items i
		LEFT JOIN users u ON i.created_by = u.id
		WHERE i.id = ?`, id).
		Scan(&it.ID, &it.Title, &it.Description, &it.Kind, &it.Status,
			&it.UnitCount, &it.ReleaseDate, &it.AvgRating, &it.CreatedBy, &it.CreatorName)
	if errors.Is(err, sql.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	if err != nil {
		return Item{}, err
	}
	return it, nil
}

// NewItem carries the fields accepted when creating a catalog item.
// avg_rating is a derived value and is never writable.
type NewItem struct {
	Title       string
	Description string
	Kind        string
	Status      string
	UnitCount   int
	ReleaseDate string
}

func Create(db *sql.DB, createdBy int64, n NewItem) (Item, error) {
	res, err := db.Exec(`INSERT INTO catalog_items (title, description, kind, status, unit_count, release_date, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.Title, n.Description, n.Kind, n.Status, n.UnitCount, n.ReleaseDate, createdBy)
	if err != nil {
		return Item{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Item{}, err
	}
	return GetByID(db, id)
}

// Patch carries partial-update fields; a nil field keeps the stored value.
type Patch struct {
	Title       *string
	Description *string
	Kind        *string
	Status      *string
	UnitCount   *int
	ReleaseDate *string
}

func Update(db *sql.DB, id int64, p Patch) (Item, error) {
	if _, err := GetByID(db, id); err != nil {
		return Item{}, err
	}

	sets := []string{}
	args := []any{}
	if p.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *p.Title)
	}
	if p.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *p.Description)
	}
	if p.Kind != nil {
		sets = append(sets, "kind = ?")
		args = append(args, *p.Kind)
	}
	if p.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *p.Status)
	}
	if p.UnitCount != nil {
		sets = append(sets, "unit_count = ?")
		args = append(args, *p.UnitCount)
	}
	if p.ReleaseDate != nil {
		sets = append(sets, "release_date = ?")
		args = append(args, *p.ReleaseDate)
	}
	if len(sets) == 0 {
		return GetByID(db, id)
	}

	args = append(args, id)
	if _, err := db.Exec(`UPDATE catalog_items SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...); err != nil {
		return Item{}, err
	}
	return GetByID(db, id)
}

// Delete removes an item; list entries referencing it go with it via the
// foreign key cascade.
func Delete(db *sql.DB, id int64) error {
	res, err := db.Exec(`DELETE FROM catalog_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

package store

import (
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-sticky-notes/models"
)

const notesTable = "notes"

// insertChunkSize keeps a multi-row insert under SQLite's default limit of
// 999 bound parameters.
const insertChunkSize = 90

var noteColumns = []string{
	"id", "title", "content", "x", "y", "width", "height", "visible", "extra",
}

// buildSelectNotesQuery returns all notes in creation order.
func buildSelectNotesQuery() (string, []any, error) {
	return sq.Select(noteColumns...).
		From(notesTable).
		OrderBy("position_idx ASC").
		ToSql()
}

// buildDeleteNotesQuery clears the table before a full replace.
func buildDeleteNotesQuery() (string, []any, error) {
	return sq.Delete(notesTable).ToSql()
}

// buildInsertNotesQueries splits notes into multi-row inserts. position_idx
// continues across chunks so that creation order survives the round trip.
func buildInsertNotesQueries(notes []models.Note) ([]string, [][]any, error) {
	var (
		queries []string
		args    [][]any
	)

	for start := 0; start < len(notes); start += insertChunkSize {
		end := min(start+insertChunkSize, len(notes))

		builder := sq.Insert(notesTable).
			Columns("id", "position_idx", "title", "content", "x", "y", "width", "height", "visible", "extra")

		for i := start; i < end; i++ {
			n := notes[i]
			extra, err := encodeExtra(n.Extra)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: note %s: %v", ErrBuildingSQLQuery, n.ID, err)
			}
			builder = builder.Values(
				n.ID, i, n.Title, n.Content,
				n.Position.X, n.Position.Y, n.Size.Width, n.Size.Height,
				n.Visible, extra,
			)
		}

		query, queryArgs, err := builder.ToSql()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
		}
		queries = append(queries, query)
		args = append(args, queryArgs)
	}

	return queries, args, nil
}

// encodeExtra stores unknown fields as a JSON object, or NULL when there are
// none.
func encodeExtra(extra map[string]json.RawMessage) (any, error) {
	if len(extra) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(extra)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

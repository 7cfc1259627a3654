package repositories

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/resonate/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// musicColumns is the canonical select list for catalog queries.
const musicColumns = `music.music_id, artist_ids, artist_names, name, type, tracks, album_id, genres, preview, album_img, release_date`

// MusicRepository handles catalog persistence: filtered listing, bulk
// insert, and the insert-if-absent path used by search reconciliation.
type MusicRepository struct {
	db *pgxpool.Pool
}

// NewMusicRepository creates a new MusicRepository with the given pool
func NewMusicRepository(db *pgxpool.Pool) *MusicRepository {
	return &MusicRepository{db: db}
}

// BuildListQuery assembles the parameterized catalog listing query for the
// given filter.
//
// Absent filters contribute no clause at all; present filters combine with
// AND. The average-rating flag switches on the reviews join, the aggregate
// column, and the GROUP BY. Ordering is always by release date, in the
// requested direction (DESC by default).
func BuildListQuery(f models.MusicFilter) (string, []any) {
	var b strings.Builder
	var args []any

	b.WriteString("SELECT ")
	b.WriteString(musicColumns)
	if f.AvgRating {
		b.WriteString(", ROUND(AVG(reviews.rating), 1)::float8 AS avg_rating")
	}
	b.WriteString(" FROM music")
	if f.AvgRating {
		b.WriteString(" LEFT JOIN reviews ON music.music_id = reviews.music_id")
	}

	var conds []string
	if f.MusicID != "" {
		args = append(args, f.MusicID)
		conds = append(conds, "music.music_id = $"+strconv.Itoa(len(args)))
	}
	if f.ArtistID != "" {
		args = append(args, f.ArtistID)
		conds = append(conds, "$"+strconv.Itoa(len(args))+" = ANY(artist_ids)")
	}
	if f.Genre != "" {
		args = append(args, capitalizeFirst(f.Genre))
		conds = append(conds, "$"+strconv.Itoa(len(args))+" = ANY(genres)")
	}
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}

	if f.AvgRating {
		b.WriteString(" GROUP BY music.music_id")
	}

	order := "DESC"
	if strings.EqualFold(f.Order, "ASC") {
		order = "ASC"
	}
	b.WriteString(" ORDER BY release_date " + order)

	b.WriteString(" LIMIT " + strconv.Itoa(pageSize))
	if f.Page > 1 {
		args = append(args, (f.Page-1)*pageSize)
		b.WriteString(" OFFSET $" + strconv.Itoa(len(args)))
	}

	return b.String(), args
}

// List retrieves catalog rows matching the filter.
func (r *MusicRepository) List(ctx context.Context, f models.MusicFilter) ([]models.Music, error) {
	query, args := BuildListQuery(f)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query music: %w", err)
	}
	defer rows.Close()

	var items []models.Music
	for rows.Next() {
		item, err := scanMusic(rows, f.AvgRating)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

// Insert bulk-inserts the given records and returns the inserted rows.
// Release dates are normalized before binding.
func (r *MusicRepository) Insert(ctx context.Context, items []models.Music) ([]models.Music, error) {
	return r.insert(ctx, items, false)
}

// InsertMissing inserts only records whose music_id is not already stored
// and returns the rows that were actually written. The conflict clause makes
// concurrent duplicate inserts safe: the loser simply inserts nothing.
func (r *MusicRepository) InsertMissing(ctx context.Context, items []models.Music) ([]models.Music, error) {
	return r.insert(ctx, items, true)
}

func (r *MusicRepository) insert(ctx context.Context, items []models.Music, skipConflicts bool) ([]models.Music, error) {
	if len(items) == 0 {
		return nil, nil
	}

	const numCols = 11

	valueRows := make([]string, 0, len(items))
	args := make([]any, 0, len(items)*numCols)

	for i, item := range items {
		valueRows = append(valueRows, "("+placeholderList(i*numCols+1, numCols)+")")

		var releaseDate any
		if item.ReleaseDate != "" {
			releaseDate = models.NormalizeReleaseDate(item.ReleaseDate)
		}

		args = append(args,
			item.MusicID,
			item.ArtistIDs,
			item.ArtistNames,
			item.Name,
			item.Type,
			item.Tracks,
			item.AlbumID,
			item.Genres,
			item.Preview,
			item.AlbumImg,
			releaseDate,
		)
	}

	query := `INSERT INTO music (music_id, artist_ids, artist_names, name, type, tracks, album_id, genres, preview, album_img, release_date) VALUES ` +
		strings.Join(valueRows, ", ")
	if skipConflicts {
		query += " ON CONFLICT (music_id) DO NOTHING"
	}
	query += " RETURNING " + musicColumns

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to insert music: %w", err)
	}
	defer rows.Close()

	var inserted []models.Music
	for rows.Next() {
		item, err := scanMusic(rows, false)
		if err != nil {
			return nil, err
		}
		inserted = append(inserted, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return inserted, nil
}

// StoredByIDs returns the stored rows whose music_id is in ids.
func (r *MusicRepository) StoredByIDs(ctx context.Context, ids []string) ([]models.Music, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := "SELECT " + musicColumns + " FROM music WHERE music_id = ANY($1)"

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query music by ids: %w", err)
	}
	defer rows.Close()

	var items []models.Music
	for rows.Next() {
		item, err := scanMusic(rows, false)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

// scanMusic scans one catalog row, with or without the avg_rating aggregate.
func scanMusic(rows pgx.Rows, withRating bool) (models.Music, error) {
	var (
		item        models.Music
		releaseDate *time.Time
		avgRating   *float64
	)

	dest := []any{
		&item.MusicID,
		&item.ArtistIDs,
		&item.ArtistNames,
		&item.Name,
		&item.Type,
		&item.Tracks,
		&item.AlbumID,
		&item.Genres,
		&item.Preview,
		&item.AlbumImg,
		&releaseDate,
	}
	if withRating {
		dest = append(dest, &avgRating)
	}

	if err := rows.Scan(dest...); err != nil {
		return models.Music{}, fmt.Errorf("failed to scan music: %w", err)
	}

	if releaseDate != nil {
		item.ReleaseDate = releaseDate.Format("2006-01-02")
	}
	item.AvgRating = avgRating

	return item, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"recette/internal/config"
	"recette/internal/recipe"
	"recette/internal/services"
)

// Record is one persisted recipe row.
type Record struct {
	ID        int64
	VideoURL  string
	Title     string
	Recipe    recipe.Normalized
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary is the listing projection: enough to render an index page.
type Summary struct {
	ID       int64
	Title    string
	VideoURL string
}

// Store manages recipe persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the recipe database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrPersistence, "store", "open", "ensure directories", err)
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, services.Wrap(services.ErrPersistence, "store", "open", "open sqlite db", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, services.Wrap(services.ErrPersistence, "store", "open", fmt.Sprintf("apply pragma %q", pragma), execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, services.Wrap(services.ErrPersistence, "store", "migrate", "apply migrations", err)
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Insert persists a normalized recipe and returns its identifier.
func (s *Store) Insert(ctx context.Context, rec recipe.Normalized) (int64, error) {
	if strings.TrimSpace(rec.VideoURL) == "" {
		return 0, services.Wrap(services.ErrPersistence, "store", "insert", "video url required", nil)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO recipes (
            video_url, title, ingredients, steps, created_at,
            utensils, cook_time, prep_time
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.VideoURL,
		rec.Title,
		rec.IngredientsText,
		rec.StepsText,
		now,
		nullableString(rec.UtensilsText),
		nullableString(rec.CookTime),
		nullableString(rec.PrepTime),
	)
	if err != nil {
		return 0, services.Wrap(services.ErrPersistence, "store", "insert", "insert recipe", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, services.Wrap(services.ErrPersistence, "store", "insert", "last insert id", err)
	}
	return id, nil
}

// GetByID fetches one recipe by identifier. Returns nil when absent.
func (s *Store) GetByID(ctx context.Context, id int64) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM recipes WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, services.Wrap(services.ErrPersistence, "store", "get", "get recipe", err)
	}
	return rec, nil
}

// List returns all recipes as summaries, newest first.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, video_url FROM recipes ORDER BY id DESC`)
	if err != nil {
		return nil, services.Wrap(services.ErrPersistence, "store", "list", "list recipes", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var summary Summary
		if err := rows.Scan(&summary.ID, &summary.Title, &summary.VideoURL); err != nil {
			return nil, services.Wrap(services.ErrPersistence, "store", "list", "scan summary", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, services.Wrap(services.ErrPersistence, "store", "list", "iterate rows", err)
	}
	return summaries, nil
}

// Update overwrites the editable fields of an existing recipe. Reviewer edits
// are authoritative; nothing is re-validated against the original transcript.
func (s *Store) Update(ctx context.Context, id int64, rec recipe.Normalized) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE recipes
         SET title = ?, ingredients = ?, steps = ?, utensils = ?, cook_time = ?, prep_time = ?, updated_at = ?
         WHERE id = ?`,
		rec.Title,
		rec.IngredientsText,
		rec.StepsText,
		nullableString(rec.UtensilsText),
		nullableString(rec.CookTime),
		nullableString(rec.PrepTime),
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return services.Wrap(services.ErrPersistence, "store", "update", "update recipe", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return services.Wrap(services.ErrPersistence, "store", "update", "rows affected", err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrPersistence, "store", "update", fmt.Sprintf("recipe %d not found", id), nil)
	}
	return nil
}

// Delete removes a recipe by identifier and reports whether a row existed.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return false, services.Wrap(services.ErrPersistence, "store", "delete", "delete recipe", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, services.Wrap(services.ErrPersistence, "store", "delete", "rows affected", err)
	}
	return affected > 0, nil
}

// Count returns the number of stored recipes.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM recipes`).Scan(&count); err != nil {
		return 0, services.Wrap(services.ErrPersistence, "store", "count", "count recipes", err)
	}
	return count, nil
}

const recordColumns = "id, video_url, title, ingredients, steps, created_at, utensils, cook_time, prep_time, updated_at"

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*Record, error) {
	var (
		id          int64
		videoURL    string
		title       string
		ingredients string
		steps       string
		createdRaw  string
		utensils    sql.NullString
		cookTime    sql.NullString
		prepTime    sql.NullString
		updatedRaw  sql.NullString
	)
	if err := scanner.Scan(
		&id,
		&videoURL,
		&title,
		&ingredients,
		&steps,
		&createdRaw,
		&utensils,
		&cookTime,
		&prepTime,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	rec := &Record{
		ID:       id,
		VideoURL: videoURL,
		Title:    title,
		Recipe: recipe.Normalized{
			VideoURL:        videoURL,
			Title:           title,
			IngredientsText: ingredients,
			StepsText:       steps,
			UtensilsText:    utensils.String,
			CookTime:        orUnknown(cookTime),
			PrepTime:        orUnknown(prepTime),
		},
	}
	if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		rec.CreatedAt = created
	}
	if updatedRaw.Valid {
		if updated, err := time.Parse(time.RFC3339Nano, updatedRaw.String); err == nil {
			rec.UpdatedAt = updated
		}
	}
	return rec, nil
}

// orUnknown maps NULL or empty timing columns from older rows to the
// sentinel downstream code expects.
func orUnknown(value sql.NullString) string {
	if !value.Valid || strings.TrimSpace(value.String) == "" {
		return recipe.Unknown
	}
	return value.String
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

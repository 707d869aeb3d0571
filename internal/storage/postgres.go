package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/your-org/vibecheck/internal/config"
	"github.com/your-org/vibecheck/internal/models"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(cfg config.DatabaseConfig) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// --- Users ---

func (s *PostgresStore) CreateUser(ctx context.Context, email, alias string, optIn bool) (*models.User, error) {
	u := &models.User{
		ID:                  uuid.New(),
		Email:               email,
		PublicAlias:         alias,
		OptInPublicAnalysis: optIn,
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (id, email, public_alias, opt_in_public_analysis)
		 VALUES ($1, $2, $3, $4) RETURNING created_at, updated_at`,
		u.ID, u.Email, u.PublicAlias, u.OptInPublicAnalysis,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u := &models.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, public_alias, opt_in_public_analysis, created_at, updated_at
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.PublicAlias, &u.OptInPublicAnalysis, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) SetUserOptIn(ctx context.Context, id uuid.UUID, optIn bool) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET opt_in_public_analysis = $1, updated_at = now() WHERE id = $2`,
		optIn, id)
	if err != nil {
		return fmt.Errorf("set user opt-in: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ListOptedInUsers returns all users participating in public analysis, in
// creation order so downstream ranking sees a stable sequence.
func (s *PostgresStore) ListOptedInUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, email, public_alias, opt_in_public_analysis, created_at, updated_at
		 FROM users WHERE opt_in_public_analysis ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list opted-in users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PublicAlias, &u.OptInPublicAnalysis,
			&u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, nil
}

// --- Media ---

func (s *PostgresStore) CreateMedia(ctx context.Context, m *models.Media) error {
	m.ID = uuid.New()
	if m.MediaType == "" {
		m.MediaType = models.MediaTypeImage
	}
	meta, err := json.Marshal(m.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	err = s.pool.QueryRow(ctx,
		`INSERT INTO media (id, user_id, media_type, storage_key, thumbnail_key, size_bytes, mime, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_at`,
		m.ID, m.UserID, m.MediaType, m.StorageKey, m.ThumbnailKey, m.SizeBytes, m.Mime, meta,
	).Scan(&m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create media: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetMedia(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	m := &models.Media{}
	var meta []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, media_type, storage_key, thumbnail_key, size_bytes, mime, metadata, created_at
		 FROM media WHERE id = $1`, id,
	).Scan(&m.ID, &m.UserID, &m.MediaType, &m.StorageKey, &m.ThumbnailKey,
		&m.SizeBytes, &m.Mime, &meta, &m.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get media: %w", err)
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &m.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}
	return m, nil
}

func (s *PostgresStore) ListUserMedia(ctx context.Context, userID uuid.UUID, limit int) ([]models.Media, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, media_type, storage_key, thumbnail_key, size_bytes, mime, metadata, created_at
		 FROM media WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list user media: %w", err)
	}
	defer rows.Close()
	return scanMedia(rows)
}

// --- Metadata merge-patch ---

// MergePatchMetadata applies a metadata patch to one media record. The
// read-merge-write is atomic per record: the row stays locked for the duration
// of the transaction, list sections append and scalar sections replace at the
// key level. Unknown media IDs are a no-op.
func (s *PostgresStore) MergePatchMetadata(ctx context.Context, mediaID uuid.UUID, patch models.MediaMetadata) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin merge-patch: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var raw []byte
	err = tx.QueryRow(ctx,
		`SELECT metadata FROM media WHERE id = $1 FOR UPDATE`, mediaID,
	).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil
		}
		return fmt.Errorf("lock media row: %w", err)
	}

	var current models.MediaMetadata
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &current); err != nil {
			return fmt.Errorf("unmarshal metadata: %w", err)
		}
	}
	current.Merge(patch)

	merged, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE media SET metadata = $1 WHERE id = $2`, merged, mediaID); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}

	return tx.Commit(ctx)
}

// --- Vibe snapshots ---

// LatestVibeSnapshot resolves the user's current snapshot: the newest media
// carrying a vibe_analysis or social section. Returns (nil, nil) when the
// user has no scored media.
func (s *PostgresStore) LatestVibeSnapshot(ctx context.Context, userID uuid.UUID) (*models.VibeSnapshot, error) {
	m := &models.Media{}
	var meta []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, created_at, metadata FROM media
		 WHERE user_id = $1 AND metadata ?| array['vibe_analysis','social']
		 ORDER BY created_at DESC LIMIT 1`, userID,
	).Scan(&m.ID, &m.CreatedAt, &meta)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("latest vibe snapshot: %w", err)
	}
	if err := json.Unmarshal(meta, &m.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshal metadata: %w", err)
	}
	return models.VibeSnapshotOf(m), nil
}

// ListScoredMedia returns the user's scored media in chronological order, for
// trend/history assembly.
func (s *PostgresStore) ListScoredMedia(ctx context.Context, userID uuid.UUID) ([]models.Media, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, media_type, storage_key, thumbnail_key, size_bytes, mime, metadata, created_at
		 FROM media
		 WHERE user_id = $1 AND metadata ?| array['vibe_analysis','social']
		 ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list scored media: %w", err)
	}
	defer rows.Close()
	return scanMedia(rows)
}

// --- Embeddings ---

func (s *PostgresStore) SetMediaEmbedding(ctx context.Context, mediaID uuid.UUID, embedding []float32) error {
	vec := pgvector.NewVector(embedding)
	_, err := s.pool.Exec(ctx,
		`UPDATE media SET embedding = $1 WHERE id = $2`, vec, mediaID)
	if err != nil {
		return fmt.Errorf("set media embedding: %w", err)
	}
	return nil
}

type MediaMatch struct {
	MediaID uuid.UUID `json:"media_id"`
	UserID  uuid.UUID `json:"user_id"`
	Score   float32   `json:"score"`
}

// SimilarMedia finds the closest media items by embedding cosine similarity.
func (s *PostgresStore) SimilarMedia(ctx context.Context, embedding []float32, exclude uuid.UUID, limit int) ([]MediaMatch, error) {
	if limit <= 0 {
		limit = 5
	}
	vec := pgvector.NewVector(embedding)
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, 1 - (embedding <=> $1) AS score
		 FROM media
		 WHERE embedding IS NOT NULL AND id <> $2
		 ORDER BY embedding <=> $1
		 LIMIT $3`, vec, exclude, limit)
	if err != nil {
		return nil, fmt.Errorf("similar media: %w", err)
	}
	defer rows.Close()

	var matches []MediaMatch
	for rows.Next() {
		var m MediaMatch
		if err := rows.Scan(&m.MediaID, &m.UserID, &m.Score); err != nil {
			return nil, fmt.Errorf("scan media match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// --- Public feed & leaderboard ---

type FeedItem struct {
	UserID       uuid.UUID             `json:"user_id"`
	Alias        string                `json:"alias"`
	MediaID      uuid.UUID             `json:"media_id"`
	ThumbnailKey string                `json:"thumbnail_key,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	Social       *models.SocialSummary `json:"perception,omitempty"`
}

// Feed returns recent scored media from opted-in users, newest first.
func (s *PostgresStore) Feed(ctx context.Context, limit, windowDays int) ([]FeedItem, error) {
	if limit <= 0 {
		limit = 20
	}
	cutoff := time.Now().AddDate(0, 0, -windowDays)
	rows, err := s.pool.Query(ctx,
		`SELECT m.user_id, u.public_alias, m.id, m.thumbnail_key, m.created_at, m.metadata->'social'
		 FROM media m
		 JOIN users u ON u.id = m.user_id
		 WHERE u.opt_in_public_analysis AND m.created_at >= $1
		 ORDER BY m.created_at DESC
		 LIMIT $2`, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}
	defer rows.Close()

	var items []FeedItem
	for rows.Next() {
		var it FeedItem
		var alias *string
		var social []byte
		if err := rows.Scan(&it.UserID, &alias, &it.MediaID, &it.ThumbnailKey, &it.CreatedAt, &social); err != nil {
			return nil, fmt.Errorf("scan feed item: %w", err)
		}
		if alias != nil && *alias != "" {
			it.Alias = *alias
		} else {
			it.Alias = "Anonymous"
		}
		if len(social) > 0 {
			var ss models.SocialSummary
			if err := json.Unmarshal(social, &ss); err == nil {
				it.Social = &ss
			}
		}
		items = append(items, it)
	}
	return items, nil
}

type LeaderboardEntry struct {
	UserID       uuid.UUID `json:"user_id"`
	Alias        string    `json:"alias"`
	Percentile   int       `json:"percentile"`
	MediaID      uuid.UUID `json:"media_id"`
	ThumbnailKey string    `json:"thumbnail_key,omitempty"`
}

// Leaderboard ranks opted-in users by the overall percentile cached in their
// latest ranked media.
func (s *PostgresStore) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.pool.Query(ctx,
		`SELECT user_id, alias, percentile, media_id, thumbnail_key FROM (
			SELECT DISTINCT ON (m.user_id)
				m.user_id,
				COALESCE(NULLIF(u.public_alias, ''), 'Anonymous') AS alias,
				(m.metadata->'social_graph'->'percentile'->>'overall')::int AS percentile,
				m.id AS media_id,
				m.thumbnail_key
			FROM media m
			JOIN users u ON u.id = m.user_id
			WHERE u.opt_in_public_analysis AND m.metadata ? 'social_graph'
			ORDER BY m.user_id, m.created_at DESC
		 ) latest
		 ORDER BY percentile DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Alias, &e.Percentile, &e.MediaID, &e.ThumbnailKey); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func scanMedia(rows pgx.Rows) ([]models.Media, error) {
	var items []models.Media
	for rows.Next() {
		var m models.Media
		var meta []byte
		if err := rows.Scan(&m.ID, &m.UserID, &m.MediaType, &m.StorageKey, &m.ThumbnailKey,
			&m.SizeBytes, &m.Mime, &meta, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &m.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal metadata: %w", err)
			}
		}
		items = append(items, m)
	}
	return items, nil
}

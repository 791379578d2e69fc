package sqlite

import (
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/carelingo/backend/internal/storage/models"
	"github.com/carelingo/backend/pkg/logger"
)

type Client struct {
	db *sql.DB
}

func NewClient(dbPath string) (*Client, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL tolerates concurrent appends from parallel chat requests.
	_, err = db.Exec("PRAGMA journal_mode = WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	_, err = db.Exec("PRAGMA busy_timeout = 5000")
	if err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	logger.Info("SQLite client initialized", zap.String("path", dbPath))

	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) Ping() error {
	return c.db.Ping()
}

func (c *Client) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS queries (
		id TEXT PRIMARY KEY,
		session_id TEXT,
		message TEXT NOT NULL,
		language TEXT NOT NULL,
		english_message TEXT,
		response TEXT,
		confidence REAL NOT NULL DEFAULT 0,
		fallback INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_queries_session ON queries(session_id);
	CREATE INDEX IF NOT EXISTS idx_queries_language ON queries(language);
	CREATE INDEX IF NOT EXISTS idx_queries_created ON queries(created_at);
	`

	_, err := c.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("SQLite schema initialized")
	return nil
}

func (c *Client) InsertQueryRecord(record *models.QueryRecord) error {
	query := `
		INSERT INTO queries (id, session_id, message, language, english_message,
			response, confidence, fallback, latency_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	fallback := 0
	if record.Fallback {
		fallback = 1
	}

	_, err := c.db.Exec(
		query,
		record.ID,
		record.SessionID,
		record.Message,
		record.Language,
		record.EnglishMessage,
		record.Response,
		record.Confidence,
		fallback,
		record.LatencyMS,
		record.CreatedAt.Unix(),
	)

	if err != nil {
		return fmt.Errorf("failed to insert query record: %w", err)
	}

	logger.Debug("Query recorded",
		zap.String("query_id", record.ID),
		zap.String("language", record.Language),
		zap.Float64("confidence", record.Confidence),
	)

	return nil
}

// Stats aggregates usage statistics over all logged queries. Reads are
// idempotent: repeated calls without intervening writes return the same
// counts.
func (c *Client) Stats() (*models.StatsReport, error) {
	report := &models.StatsReport{
		LanguageDistribution: make(map[string]int),
		AccuracyDistribution: make(map[string]int),
		RecentQueries:        []models.RecentQuery{},
		GeneratedAt:          time.Now(),
	}

	err := c.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(confidence), 0) FROM queries`,
	).Scan(&report.TotalQueries, &report.AverageAccuracy)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate queries: %w", err)
	}

	rows, err := c.db.Query(`SELECT language, COUNT(*) FROM queries GROUP BY language`)
	if err != nil {
		return nil, fmt.Errorf("failed to get language distribution: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var lang string
		var count int
		if err := rows.Scan(&lang, &count); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		report.LanguageDistribution[lang] = count
	}

	bucketRows, err := c.db.Query(`
		SELECT
			CASE
				WHEN confidence >= 0.8 THEN 'high'
				WHEN confidence >= 0.5 THEN 'medium'
				ELSE 'low'
			END AS bucket,
			COUNT(*)
		FROM queries
		GROUP BY bucket
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get accuracy distribution: %w", err)
	}
	defer bucketRows.Close()

	for bucketRows.Next() {
		var bucket string
		var count int
		if err := bucketRows.Scan(&bucket, &count); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		report.AccuracyDistribution[bucket] = count
	}

	recentRows, err := c.db.Query(`
		SELECT created_at, message, language, confidence
		FROM queries
		ORDER BY created_at DESC
		LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent queries: %w", err)
	}
	defer recentRows.Close()

	for recentRows.Next() {
		var r models.RecentQuery
		var createdAt int64
		if err := recentRows.Scan(&createdAt, &r.Message, &r.Language, &r.Confidence); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		r.Timestamp = time.Unix(createdAt, 0)
		// Truncation is in characters so multibyte text stays valid UTF-8.
		if runes := []rune(r.Message); len(runes) > 100 {
			r.Message = string(runes[:100]) + "..."
		}
		report.RecentQueries = append(report.RecentQueries, r)
	}

	return report, nil
}

func (c *Client) SessionHistory(sessionID string, limit int) ([]models.QueryRecord, error) {
	query := `
		SELECT id, session_id, message, language, response, confidence, fallback, created_at
		FROM queries
		WHERE session_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := c.db.Query(query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get session history: %w", err)
	}
	defer rows.Close()

	var records []models.QueryRecord
	for rows.Next() {
		var r models.QueryRecord
		var createdAt int64
		var fallback int

		err := rows.Scan(&r.ID, &r.SessionID, &r.Message, &r.Language,
			&r.Response, &r.Confidence, &fallback, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		r.Fallback = fallback != 0
		r.CreatedAt = time.Unix(createdAt, 0)
		records = append(records, r)
	}

	return records, nil
}

// SeedSampleData inserts n synthetic query rows spread over the last 30 days.
// Demo and analytics tooling only.
func (c *Client) SeedSampleData(n int) error {
	sampleQuestions := []string{
		"What are the symptoms of flu?",
		"How can I prevent getting sick?",
		"What should I do if I have a fever?",
		"What are COVID-19 symptoms?",
		"How much water should I drink daily?",
		"When should I go to the emergency room?",
		"How can I manage stress?",
		"What constitutes a healthy diet?",
		"How much exercise do I need?",
		"What are signs of depression?",
		"How can I protect my skin from sun damage?",
		"What are common allergy symptoms?",
		"How much sleep do adults need?",
		"What vaccines do adults need?",
		"How can I manage diabetes?",
	}
	languages := []string{"en", "fr", "de", "es", "hi"}

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO queries (id, session_id, message, language, english_message,
			response, confidence, fallback, latency_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		message := sampleQuestions[rand.Intn(len(sampleQuestions))]
		createdAt := time.Now().
			Add(-time.Duration(rand.Intn(30*24)) * time.Hour).
			Unix()

		_, err := stmt.Exec(
			uuid.New().String(),
			uuid.New().String(),
			message,
			languages[rand.Intn(len(languages))],
			message,
			"Sample response for: "+message,
			0.3+rand.Float64()*0.65,
			0,
			500+rand.Intn(2500),
			createdAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert sample row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sample data: %w", err)
	}

	logger.Info("Sample data seeded", zap.Int("rows", n))
	return nil
}

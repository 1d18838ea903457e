package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"diagram-gen/internal/config"
	"diagram-gen/internal/models"
)

// Run is one recorded pipeline execution.
type Run struct {
	bun.BaseModel `bun:"table:runs,alias:r" json:"-"`
	ID            string    `bun:"id,pk" json:"id"`
	SourceKind    string    `bun:"source_kind,notnull" json:"source_kind"` // "pdf", "docx", "text", ...
	SourceName    string    `bun:"source_name" json:"source_name,omitempty"`
	Summary       string    `bun:"summary,notnull" json:"summary"`
	Mermaid       string    `bun:"mermaid,notnull" json:"mermaid_code"`
	TextLength    int       `bun:"text_length,notnull" json:"text_length"`
	SummaryLength int       `bun:"summary_length,notnull" json:"summary_length"`
	MermaidLength int       `bun:"mermaid_length,notnull" json:"mermaid_length"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// History exposes run listing to the HTTP layer.
type History struct {
	db *bun.DB
}

func NewHistory(db *bun.DB) *History {
	return &History{db: db}
}

func (h *History) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	return RecentRuns(ctx, h.db, limit)
}

func NewDB(sqldb *sql.DB, debug bool) *bun.DB {
	db := bun.NewDB(sqldb, pgdialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return db
}

func ConnectDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	if cfg == nil || cfg.DSN == "" {
		return nil, errors.New("database dsn is required")
	}
	opts := []pgdriver.Option{pgdriver.WithDSN(cfg.DSN)}
	if cfg.Password != "" {
		opts = append(opts, pgdriver.WithPassword(cfg.Password))
	}
	return sql.OpenDB(pgdriver.NewConnector(opts...)), nil
}

func InitDB(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*Run)(nil)).IfNotExists().Exec(ctx)
	return err
}

// SaveRun records a completed pipeline run.
func SaveRun(ctx context.Context, db *bun.DB, id, sourceKind, sourceName string, res *models.Result) error {
	run := &Run{
		ID:            id,
		SourceKind:    sourceKind,
		SourceName:    sourceName,
		Summary:       res.Summary,
		Mermaid:       res.Mermaid,
		TextLength:    res.TextLength,
		SummaryLength: res.SummaryLength,
		MermaidLength: res.MermaidLength,
		CreatedAt:     time.Now().UTC(),
	}
	_, err := db.NewInsert().Model(run).Exec(ctx)
	return err
}

// RecentRuns lists the most recent runs, newest first.
func RecentRuns(ctx context.Context, db *bun.DB, limit int) ([]Run, error) {
	var runs []Run
	err := db.NewSelect().
		Model(&runs).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	return runs, err
}

// DropRuns removes the runs table.
func DropRuns(ctx context.Context, db *bun.DB) error {
	_, err := db.NewDropTable().Model((*Run)(nil)).IfExists().Exec(ctx)
	return err
}

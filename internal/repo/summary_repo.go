package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/pdfbrief/pdfbrief/internal/model"
	"github.com/pdfbrief/pdfbrief/internal/pkg/dbutil"
	appErr "github.com/pdfbrief/pdfbrief/internal/pkg/errors"
)

type SummaryRepo struct {
	db *sql.DB
}

func NewSummaryRepo(db *sql.DB) *SummaryRepo {
	return &SummaryRepo{db: db}
}

var summaryFields = []string{"id", "user_id", "filename", "summary", "file_key", "ctime"}

func (r *SummaryRepo) Create(ctx context.Context, rec *model.Summary) error {
	data := map[string]interface{}{
		"id":       rec.ID,
		"user_id":  rec.UserID,
		"filename": rec.Filename,
		"summary":  rec.Summary,
		"file_key": rec.FileKey,
		"ctime":    rec.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("summaries", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// ListByUser returns the user's records, most recent first. Ownership is a
// query predicate, never a post-fetch check.
func (r *SummaryRepo) ListByUser(ctx context.Context, userID string) ([]model.Summary, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "ctime desc",
	}
	sqlStr, args, err := builder.BuildSelect("summaries", where, summaryFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	result := make([]model.Summary, 0)
	for rows.Next() {
		var rec model.Summary
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Filename, &rec.Summary, &rec.FileKey, &rec.Ctime); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

func (r *SummaryRepo) GetByID(ctx context.Context, userID, id string) (*model.Summary, error) {
	where := map[string]interface{}{
		"id":      id,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildSelect("summaries", where, summaryFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var rec model.Summary
	if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Filename, &rec.Summary, &rec.FileKey, &rec.Ctime); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListFileKeys returns every file key referenced by a summary row. Used by
// the orphaned-file cleanup job.
func (r *SummaryRepo) ListFileKeys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT file_key FROM summaries WHERE file_key <> ''`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

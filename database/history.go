// C:\Users\wasab\OneDrive\デスクトップ\TPK\database\history.go
package database

import (
	"fmt"
	"tpk/model"

	"github.com/jmoiron/sqlx"
)

// InitDatabase は変換履歴テーブルを作成します（存在しなければ）。
func InitDatabase(db *sqlx.DB) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS conversion_history (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			uploaded_file TEXT NOT NULL,
			folder_count  INTEGER NOT NULL,
			success_count INTEGER NOT NULL,
			error_count   INTEGER NOT NULL,
			pdf_count     INTEGER NOT NULL,
			duration_ms   INTEGER NOT NULL,
			created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create conversion_history table: %w", err)
	}
	return nil
}

// InsertConversionRecord は変換履歴を1件登録します。
func InsertConversionRecord(db *sqlx.DB, rec model.ConversionRecord) error {
	const q = `
		INSERT INTO conversion_history (
			uploaded_file, folder_count, success_count, error_count, pdf_count, duration_ms
		)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := db.Exec(q,
		rec.UploadedFile, rec.FolderCount, rec.SuccessCount,
		rec.ErrorCount, rec.PdfCount, rec.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("failed to insert conversion record: %w", err)
	}
	return nil
}

// ListConversionHistory は直近の変換履歴を新しい順に取得します。
func ListConversionHistory(db *sqlx.DB, limit int) ([]model.ConversionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []model.ConversionRecord
	const q = `
		SELECT id, uploaded_file, folder_count, success_count, error_count,
		       pdf_count, duration_ms, created_at
		FROM conversion_history
		ORDER BY id DESC
		LIMIT ?`
	if err := db.Select(&records, q, limit); err != nil {
		return nil, fmt.Errorf("failed to query conversion history: %w", err)
	}
	return records, nil
}

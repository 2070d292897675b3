// C:\Users\wasab\OneDrive\デスクトップ\TPK\convert\handler.go
package convert

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"tpk/bundle"
	"tpk/config"
	"tpk/database"
	"tpk/model"
	"tpk/render"
)

var startTime = time.Now()

// ヘルパー関数: エラーをJSONで返す
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// conversionSummary はレスポンスヘッダやSSEで返す変換結果の要約です。
type conversionSummary struct {
	FolderCount  int   `json:"folderCount"`
	SuccessCount int   `json:"successCount"`
	ErrorCount   int   `json:"errorCount"`
	PdfCount     int   `json:"pdfCount"`
	DurationMs   int64 `json:"durationMs"`
}

// readUploadedZip はマルチパートのZIPアップロードを検証して読み込みます。
func readUploadedZip(r *http.Request) (string, []byte, string, int) {
	cfg := config.GetConfig()
	maxBytes := int64(cfg.MaxUploadMB) * 1024 * 1024

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return "", nil, fmt.Sprintf("ファイルサイズが大きすぎます。最大%dMBまでです。", cfg.MaxUploadMB), http.StatusBadRequest
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, "ファイルが指定されていません。", http.StatusBadRequest
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".zip") {
		return "", nil, "ZIPファイルをアップロードしてください。", http.StatusBadRequest
	}
	if header.Size > maxBytes {
		return "", nil, fmt.Sprintf("ファイルサイズが大きすぎます。最大%dMBまでです。", cfg.MaxUploadMB), http.StatusBadRequest
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, "ファイルの読み込みに失敗しました。", http.StatusInternalServerError
	}
	return header.Filename, data, "", 0
}

// runConversion はZIP展開から結果ZIP生成までの一連の変換を実行します。
func runConversion(r *http.Request, fileName string, zipData []byte, renderer *render.Renderer, db *sqlx.DB, progress bundle.Progress) ([]byte, conversionSummary, error) {
	cfg := config.GetConfig()
	started := time.Now()

	extractPath, err := bundle.ExtractZip(zipData)
	if err != nil {
		return nil, conversionSummary{}, err
	}
	defer bundle.Cleanup(extractPath)

	folders, err := bundle.Analyze(extractPath)
	if err != nil {
		return nil, conversionSummary{}, err
	}
	if len(folders) == 0 {
		return nil, conversionSummary{}, fmt.Errorf("変換対象のフォルダが見つかりませんでした")
	}

	processed := bundle.Process(r.Context(), folders, renderer, cfg.FolderWorkers, progress)

	resultZip, err := bundle.CreateResultZip(processed, extractPath)
	if err != nil {
		return nil, conversionSummary{}, fmt.Errorf("結果ZIPの作成に失敗: %w", err)
	}

	summary := conversionSummary{FolderCount: len(processed)}
	for _, f := range processed {
		if f.Success {
			summary.SuccessCount++
		} else {
			summary.ErrorCount++
		}
		summary.PdfCount += f.PdfCount
	}
	summary.DurationMs = time.Since(started).Milliseconds()

	if err := database.InsertConversionRecord(db, model.ConversionRecord{
		UploadedFile: fileName,
		FolderCount:  summary.FolderCount,
		SuccessCount: summary.SuccessCount,
		ErrorCount:   summary.ErrorCount,
		PdfCount:     summary.PdfCount,
		DurationMs:   summary.DurationMs,
	}); err != nil {
		log.Printf("WARN: Failed to record conversion history: %v", err)
	}

	return resultZip, summary, nil
}

// resultZipName は「元のファイル名_変換結果.zip」を組み立てます。
func resultZipName(uploadedName string) string {
	cfg := config.GetConfig()
	base := strings.TrimSuffix(uploadedName, ".zip")
	base = strings.TrimSuffix(base, ".ZIP")
	return base + cfg.OutputSuffix + ".zip"
}

// ConvertBulkHandler はZIP一括変換を実行し、結果ZIPを返します。
func ConvertBulkHandler(db *sqlx.DB, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, "POSTメソッドのみ対応しています。", http.StatusMethodNotAllowed)
			return
		}

		fileName, zipData, errMsg, status := readUploadedZip(r)
		if errMsg != "" {
			writeJSONError(w, errMsg, status)
			return
		}
		log.Printf("Bulk conversion started: %s (%d bytes)", fileName, len(zipData))

		resultZip, summary, err := runConversion(r, fileName, zipData, renderer, db, nil)
		if err != nil {
			log.Printf("Bulk conversion failed: %v", err)
			writeJSONError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		log.Printf("Bulk conversion complete: %d folders, %d pdfs, %dms",
			summary.FolderCount, summary.PdfCount, summary.DurationMs)

		summaryJSON, _ := json.Marshal(summary)
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(resultZipName(fileName))))
		w.Header().Set("X-Conversion-Summary", string(summaryJSON))
		w.Write(resultZip)
	}
}

// ConvertBulkStreamHandler は変換の進捗をSSEで流しながらZIP一括変換を
// 実行します。結果ZIPはBase64でcompleteイベントに載せます。
func ConvertBulkStreamHandler(db *sqlx.DB, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, "POSTメソッドのみ対応しています。", http.StatusMethodNotAllowed)
			return
		}

		fileName, zipData, errMsg, status := readUploadedZip(r)
		if errMsg != "" {
			writeJSONError(w, errMsg, status)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeJSONError(w, "ストリーミングに対応していません。", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		sendEvent := func(payload interface{}) {
			data, err := json.Marshal(payload)
			if err != nil {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}

		sendEvent(map[string]string{"log": fmt.Sprintf("変換を開始します: %s", fileName)})

		resultZip, summary, err := runConversion(r, fileName, zipData, renderer, db,
			func(message string) {
				sendEvent(map[string]string{"log": message})
			})
		if err != nil {
			log.Printf("Streaming conversion failed: %v", err)
			sendEvent(map[string]string{"error": err.Error()})
			return
		}

		sendEvent(map[string]interface{}{
			"complete": true,
			"fileName": resultZipName(fileName),
			"summary":  summary,
			"zip":      resultZip, // []byte はJSONでBase64になる
		})
	}
}

// HealthHandler はレンダラとプロセスの稼働状況を返します。
func HealthHandler(renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)
		stats := renderer.Stats()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":        "ok",
			"uptimeSec":     int64(time.Since(startTime).Seconds()),
			"heapAllocMB":   mem.HeapAlloc / 1024 / 1024,
			"numGoroutine":  runtime.NumGoroutine(),
			"browserActive": stats.Active,
			"requestCount":  stats.RequestCount,
			"maxRequests":   stats.MaxRequests,
		})
	}
}

// HistoryHandler は変換履歴を新しい順に返します。
func HistoryHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := database.ListConversionHistory(db, 50)
		if err != nil {
			log.Printf("Error querying conversion history: %v", err)
			writeJSONError(w, "履歴の取得に失敗しました。", http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []model.ConversionRecord{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(records)
	}
}

// C:\Users\wasab\OneDrive\デスクトップ\TPK\config_handler.go
package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"tpk/config"
)

// GetConfigHandler は現在の設定を返します
func GetConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := config.GetConfig()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cfg)
	}
}

// SaveConfigHandler は設定を保存します
func SaveConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var newCfg config.Config
		if err := json.NewDecoder(r.Body).Decode(&newCfg); err != nil {
			writeJSONError(w, "リクエストが不正です。", http.StatusBadRequest)
			return
		}

		if err := validateConfig(newCfg); err != nil {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := config.SaveConfig(newCfg); err != nil {
			log.Printf("Error saving config: %v", err)
			writeJSONError(w, "設定の保存に失敗しました。", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "設定を保存しました。"})
	}
}

// ヘルパー関数: エラーをJSONで返す
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// 設定値の範囲を検証するヘルパー関数
func validateConfig(cfg config.Config) error {
	if cfg.MaxUploadMB < 0 || cfg.MaxUploadMB > 1024 {
		return errors.New("アップロード上限は0〜1024MBの範囲で指定してください。")
	}
	if cfg.FolderWorkers < 0 || cfg.FolderWorkers > 16 {
		return errors.New("並列処理数は0〜16の範囲で指定してください。")
	}
	if cfg.RenderTimeoutSec < 0 || cfg.RenderTimeoutSec > 600 {
		return errors.New("変換タイムアウトは0〜600秒の範囲で指定してください。")
	}
	return nil
}

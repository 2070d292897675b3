// C:\Users\wasab\OneDrive\デスクトップ\TPK\routes.go
package main

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"tpk/convert"
	"tpk/render"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB, renderer *render.Renderer) {

	mux.HandleFunc("/api/convert/bulk", convert.ConvertBulkHandler(dbConn, renderer))
	mux.HandleFunc("/api/convert/bulk/stream", convert.ConvertBulkStreamHandler(dbConn, renderer))

	mux.HandleFunc("/api/health", convert.HealthHandler(renderer))
	mux.HandleFunc("/api/history", convert.HistoryHandler(dbConn))

	mux.HandleFunc("/api/config/get", GetConfigHandler())
	mux.HandleFunc("/api/config/save", SaveConfigHandler())
}

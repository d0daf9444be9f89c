package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"pdf-parser/internal/config"
	"pdf-parser/internal/handler"
	"pdf-parser/internal/logging"
	"pdf-parser/internal/middleware"
	"pdf-parser/internal/ocr"
	"pdf-parser/internal/raster"
	"pdf-parser/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(os.Stdout, cfg.Log.Level)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	// --- Engines ---
	pdfExtractor := service.NewPDFExtractor(
		service.NewLedongthucEngine(),
		cfg.Extraction.XTolerance,
		cfg.Extraction.YTolerance,
	)
	ocrFallback := service.NewOCRFallback(
		raster.NewFitzRasterizer(),
		ocr.NewTesseractRecognizer(cfg.OCR.Language),
	)

	// --- Services ---
	parseService := service.NewParseService(pdfExtractor, ocrFallback, logger)

	// --- Handlers ---
	parseHandler := handler.NewParseHandler(parseService)
	healthHandler := handler.NewHealthHandler()

	// --- Router ---
	mux := handler.NewRouter(parseHandler, healthHandler)
	wrapped := middleware.Chain(mux,
		middleware.CORS,
		middleware.RequestID(logger),
		middleware.Logging(logger),
		middleware.Recover(logger),
	)

	// --- Server ---
	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           wrapped,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("pdf-parser starting on %s", addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// WebServer holds the HTTP server configuration
type WebServer struct {
	config       *Config
	serverConfig ServerConfig
	logger       *zap.Logger
}

// NewWebServer creates a new web server instance
func NewWebServer(config *Config, serverConfig ServerConfig, logger *zap.Logger) *WebServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebServer{
		config:       config,
		serverConfig: serverConfig,
		logger:       logger,
	}
}

// APICalculateRequest is the body of /api/calculate and the export endpoints.
// Tax and Work are optional; zero values fall back to the server's config.
type APICalculateRequest struct {
	Amount       float64      `json:"amount"`
	Period       string       `json:"period"`       // annual, monthly, weekly, daily, hourly
	Jurisdiction string       `json:"jurisdiction"` // england or scotland
	Work         *WorkPattern `json:"work,omitempty"`
	Tax          *TaxConfig   `json:"tax,omitempty"`
	Filename     string       `json:"filename,omitempty"` // CSV export only
}

// APICalculateResponse wraps a calculation for the UI
type APICalculateResponse struct {
	Success  bool      `json:"success"`
	Error    string    `json:"error,omitempty"`
	TakeHome *TakeHome `json:"take_home,omitempty"`
}

// APIJurisdiction describes one selectable jurisdiction
type APIJurisdiction struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Bands []RateBandConfig `json:"bands"`
}

// ExportResponse represents the response from CSV export
type ExportResponse struct {
	Success  bool   `json:"success"`
	FilePath string `json:"file_path,omitempty"`
	Message  string `json:"message"`
}

// Handler returns the HTTP routes
func (ws *WebServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", ws.handleIndex)
	mux.HandleFunc("/healthz", ws.handleHealth)
	mux.HandleFunc("/api/config", ws.handleGetConfig)
	mux.HandleFunc("/api/jurisdictions", ws.handleJurisdictions)
	mux.HandleFunc("/api/calculate", ws.handleCalculate)
	mux.HandleFunc("/api/export-csv", ws.handleExportCSV)
	mux.HandleFunc("/api/download-pdf", ws.handleDownloadPDF)

	return ws.logRequests(mux)
}

func (ws *WebServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		ws.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

// listen opens the listener and works out the browser URL for it
func (ws *WebServer) listen() (net.Listener, string, error) {
	listener, err := net.Listen("tcp", ws.serverConfig.Addr)
	if err != nil {
		return nil, "", err
	}

	actualAddr := listener.Addr().String()
	url := fmt.Sprintf("http://%s", actualAddr)

	// If listening on all interfaces, use localhost for the URL
	if strings.HasPrefix(actualAddr, ":") || strings.HasPrefix(actualAddr, "0.0.0.0:") || strings.HasPrefix(actualAddr, "[::]:") {
		port := actualAddr[strings.LastIndex(actualAddr, ":")+1:]
		url = fmt.Sprintf("http://localhost:%s", port)
	}
	return listener, url, nil
}

// Start starts the web server, opens a browser and blocks
func (ws *WebServer) Start() error {
	listener, url, err := ws.listen()
	if err != nil {
		return err
	}

	ws.logger.Info("starting web server", zap.String("addr", listener.Addr().String()), zap.String("url", url))

	go openBrowser(url)

	return http.Serve(listener, ws.Handler())
}

// StartForEmbedded starts the server and returns the URL and a cleanup function.
// Unlike Start(), this does NOT open the browser and does NOT block.
func (ws *WebServer) StartForEmbedded() (url string, cleanup func(), err error) {
	listener, url, err := ws.listen()
	if err != nil {
		return "", nil, err
	}

	ws.logger.Info("starting embedded web server", zap.String("addr", listener.Addr().String()))

	server := &http.Server{Handler: ws.Handler()}

	go func() {
		if err := server.Serve(listener); err != http.ErrServerClosed {
			ws.logger.Error("server error", zap.Error(err))
		}
	}()

	cleanup = func() {
		timeout := ws.serverConfig.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			ws.logger.Warn("shutdown", zap.Error(err))
		}
	}

	return url, cleanup, nil
}

// handleIndex serves the main web UI
func (ws *WebServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, webUIHTML)
}

func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleGetConfig returns the current configuration
func (ws *WebServer) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ws.currentConfig())
}

// handleJurisdictions lists jurisdictions with the bands currently in force
func (ws *WebServer) handleJurisdictions(w http.ResponseWriter, r *http.Request) {
	config := ws.currentConfig()
	var out []APIJurisdiction
	for _, j := range AllJurisdictions() {
		item := APIJurisdiction{ID: j.ID(), Name: j.String()}
		for _, band := range config.Tax.Template(j) {
			bc := RateBandConfig{Name: band.Name, Rate: band.Rate}
			if band.Kind == FixedWidth {
				bc.Width = band.Width
			} else {
				bc.Extends = band.Kind.String()
			}
			item.Bands = append(item.Bands, bc)
		}
		out = append(out, item)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// handleCalculate runs a calculation for the posted income
func (ws *WebServer) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	th, _, err := ws.decodeAndCalculate(r)
	if err != nil {
		sendJSONError(w, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(APICalculateResponse{Success: true, TakeHome: &th})
}

// handleExportCSV saves the breakdown as CSV in the export directory and returns the path
func (ws *WebServer) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	th, req, err := ws.decodeAndCalculate(r)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ExportResponse{Success: false, Message: err.Error()})
		return
	}

	absPath, err := SaveBreakdownCSV(ws.exportDir(), req.Filename, th)
	if err != nil {
		ws.logger.Error("csv export failed", zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ExportResponse{Success: false, Message: err.Error()})
		return
	}

	ws.logger.Info("csv exported", zap.String("path", absPath))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ExportResponse{
		Success:  true,
		FilePath: absPath,
		Message:  fmt.Sprintf("CSV saved to %s", absPath),
	})
}

// handleDownloadPDF returns PDF content directly for browser download
func (ws *WebServer) handleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	th, req, err := ws.decodeAndCalculate(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pdfBytes, err := GenerateTaxPDFReport(th, ws.workPattern(req))
	if err != nil {
		ws.logger.Error("pdf generation failed", zap.Error(err))
		http.Error(w, "Failed to generate PDF: "+err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("income-tax-%s-%.0f.pdf", ParseJurisdiction(req.Jurisdiction).ID(), th.Gross)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdfBytes)))
	w.Write(pdfBytes)
}

// decodeAndCalculate validates the request body and runs the calculation
func (ws *WebServer) decodeAndCalculate(r *http.Request) (TakeHome, APICalculateRequest, error) {
	var req APICalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return TakeHome{}, req, errors.Wrap(err, "Invalid request body")
	}
	if err := validateMoney(req.Amount, "amount"); err != nil {
		return TakeHome{}, req, err
	}

	config := ws.currentConfig()
	taxConfig := config.Tax
	if req.Tax != nil {
		override := Config{Tax: *req.Tax}
		if problems := override.Validate(); len(problems) > 0 {
			return TakeHome{}, req, ValidationError{Field: "tax", Message: "Invalid tax settings: " + strings.Join(problems, "; ")}
		}
		taxConfig = *req.Tax
	}
	work := ws.workPattern(req)
	annual := ToAnnual(req.Amount, ParsePayPeriod(req.Period), work)
	if math.IsInf(annual, 0) {
		return TakeHome{}, req, ValidationError{Field: "amount", Message: "Amount seems too large. Please check the value"}
	}

	return CalculateTakeHome(annual, ParseJurisdiction(req.Jurisdiction), taxConfig, work), req, nil
}

func (ws *WebServer) workPattern(req APICalculateRequest) WorkPattern {
	if req.Work != nil {
		return *req.Work
	}
	return ws.currentConfig().Work
}

func (ws *WebServer) currentConfig() *Config {
	if ws.config != nil {
		return ws.config
	}
	defaultConfig, err := LoadDefaultConfig()
	if err != nil {
		ws.logger.Warn("default config unavailable", zap.Error(err))
		return &Config{Tax: DefaultTaxConfig()}
	}
	return defaultConfig
}

func (ws *WebServer) exportDir() string {
	if ws.serverConfig.ExportDir == "" {
		return "exports"
	}
	return ws.serverConfig.ExportDir
}

// sendJSONError sends a JSON error response
func sendJSONError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(APICalculateResponse{
		Success: false,
		Error:   message,
	})
}

// openBrowser opens the specified URL in the default browser
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	cmd.Start()
}

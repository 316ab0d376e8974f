package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/decryp7/credit-card-billsplit/internal/extractor"
	"github.com/decryp7/credit-card-billsplit/internal/ledger"
	"github.com/decryp7/credit-card-billsplit/internal/logger"
	"github.com/decryp7/credit-card-billsplit/internal/models"
	"github.com/decryp7/credit-card-billsplit/internal/parser"
	"github.com/decryp7/credit-card-billsplit/internal/writer"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// StatementResponse is the JSON response from POST /api/statements.
type StatementResponse struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	Cards        []string             `json:"cards,omitempty"`
	Transactions []models.Transaction `json:"transactions"`
	SkippedPages []int                `json:"skippedPages,omitempty"`
	Summary      *models.Summary      `json:"summary,omitempty"`
	Count        int                  `json:"count"`
	DebugLines   []models.DebugLine   `json:"debugLines,omitempty"`
}

// ErrorResponse is returned by every endpoint on failure.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Engine *parser.Engine
	Ledger *ledger.Ledger
}

// NewHandler returns a handler serving the given ledger.
func NewHandler(engine *parser.Engine, l *ledger.Ledger) *Handler {
	return &Handler{Engine: engine, Ledger: l}
}

// RegisterRoutes sets up the API routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/health", h.HandleHealth)
	api.Post("/statements", h.HandleUpload)
	api.Get("/transactions", h.HandleList)
	api.Get("/transactions/:id", h.HandleGet)
	api.Post("/transactions/:id/tags/:tag", h.HandleToggleTag)
	api.Get("/summary", h.HandleSummary)
	api.Get("/export.csv", h.HandleExport)
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
		"engine":  "fiber",
	})
}

// HandleUpload extracts transactions from an uploaded PDF, or from text
// already extracted client-side, and replaces the loaded statement.
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	log := logger.FromContext(c.UserContext())

	src, err := h.pageSource(c)
	if err != nil {
		if errors.Is(err, extractor.ErrUnreadableDocument) {
			return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("Statement could not be read: %v", err))
		}
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	stmt, err := h.Engine.Run(src)
	if err != nil {
		log.Error().Err(err).Msg("statement extraction failed")
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("Extraction failed: %v", err))
	}

	h.Ledger.Replace(stmt.Transactions)

	summary := models.Summarize(stmt.Transactions)
	log.Info().
		Int("transactions", len(stmt.Transactions)).
		Int("cards", len(stmt.Cards)).
		Ints("skippedPages", stmt.SkippedPages).
		Msg("statement loaded")

	resp := StatementResponse{
		Success:      true,
		Cards:        stmt.Cards,
		Transactions: stmt.Transactions,
		SkippedPages: stmt.SkippedPages,
		Summary:      &summary,
		Count:        len(stmt.Transactions),
	}
	if c.Query("debug") == "true" {
		resp.DebugLines = stmt.DebugLines
	}
	return c.JSON(resp)
}

// pageSource picks the pre-extracted text if present, otherwise the file.
func (h *Handler) pageSource(c *fiber.Ctx) (parser.PageSource, error) {
	if text := c.FormValue("extractedText"); strings.TrimSpace(text) != "" {
		return extractor.ParseText(text)
	}

	header, err := c.FormFile("file")
	if err != nil {
		return nil, errors.New("no file uploaded: use form field 'file' or 'extractedText'")
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		return nil, errors.New("only PDF files are supported")
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, f); err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	return extractor.OpenBytes(buf.Bytes())
}

// HandleList returns the loaded transactions in statement order.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	return c.JSON(h.Ledger.Transactions())
}

// HandleGet returns one transaction.
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	txn, err := h.Ledger.Get(c.Params("id"))
	if err != nil {
		return writeError(c, fiber.StatusNotFound, err.Error())
	}
	return c.JSON(txn)
}

// HandleToggleTag toggles PERSONAL or JOINT on a transaction.
func (h *Handler) HandleToggleTag(c *fiber.Ctx) error {
	tag, err := models.ParseTag(c.Params("tag"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	txn, err := h.Ledger.ToggleTag(c.Params("id"), tag)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return writeError(c, fiber.StatusNotFound, err.Error())
		}
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(txn)
}

// HandleSummary returns the grand total and per-tag subtotals.
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	return c.JSON(h.Ledger.Summary())
}

// HandleExport returns the loaded transactions as CSV.
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	stmt := &models.Statement{Transactions: h.Ledger.Transactions()}

	var buf bytes.Buffer
	w := &writer.CSVWriter{}
	if err := w.Write(&buf, stmt); err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="transactions.csv"`)
	return c.Send(buf.Bytes())
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{
		Success: false,
		Error:   msg,
	})
}

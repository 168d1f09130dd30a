package handler

import (
	"io"
	"net/http"

	"github.com/iho/roomledger/internal/adapter/http/dto"
	"github.com/iho/roomledger/internal/usecase"
)

// Receipt photos above this size are rejected before hitting the parser.
const maxReceiptBytes = 10 << 20

// ParseHandler handles transaction parsing HTTP requests.
type ParseHandler struct {
	parser usecase.TransactionParser
}

// NewParseHandler creates a new ParseHandler.
func NewParseHandler(parser usecase.TransactionParser) *ParseHandler {
	return &ParseHandler{parser: parser}
}

// Text parses free text into raw transactions.
func (h *ParseHandler) Text(w http.ResponseWriter, r *http.Request) {
	var req dto.ParseTextRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transactions, err := h.parser.ParseText(r.Context(), req.Text)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to parse text", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ParsedTransactionsResponse{Transactions: transactions})
}

// Receipt parses a receipt photo into raw transactions. The body is
// the raw JPEG.
func (h *ParseHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	image, err := io.ReadAll(io.LimitReader(r.Body, maxReceiptBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read image", err.Error())
		return
	}
	if len(image) == 0 {
		writeError(w, http.StatusBadRequest, "empty image", "request body must contain a JPEG receipt photo")
		return
	}

	transactions, err := h.parser.ParseImage(r.Context(), image)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to parse receipt", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ParsedTransactionsResponse{Transactions: transactions})
}

package tradebook

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"go.opentelemetry.io/otel/attribute"

	"github.com/seenimoa/trademetriks/internal/logger"
	"github.com/seenimoa/trademetriks/internal/trace"
	"github.com/seenimoa/trademetriks/pkg/models"
)

var (
	// ErrNoTradebook is returned when the tradebook file does not exist.
	ErrNoTradebook = errors.New("tradebook not found")
	// ErrMissingColumn is returned when a required header is absent.
	ErrMissingColumn = errors.New("missing required column")
)

// RequiredColumns are the tradebook headers the pipeline reads. Any other
// column, including the leading unnamed index, is ignored.
var RequiredColumns = []string{
	"tradePrice", "productType", "tradedQty", "symbol",
	"orderDateTime", "tradeValue", "side", "orderType",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load opens the tradebook at path and normalizes every row.
func Load(ctx context.Context, path string, opts Options) ([]models.Trade, error) {
	ctx, span := trace.StartSpan(ctx, "tradebook.load", attribute.String("path", path))
	defer span.End()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoTradebook, path)
		}
		return nil, fmt.Errorf("open tradebook: %w", err)
	}
	defer f.Close()

	trades, err := Read(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	span.SetAttributes(attribute.Int("trades", len(trades)))
	logger.Info("tradebook loaded", logger.Fields{"path": path, "trades": len(trades)})
	return trades, nil
}

// Read decodes a tradebook CSV from r. A header-only file yields no trades.
func Read(ctx context.Context, r io.Reader, opts Options) ([]models.Trade, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read tradebook: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	records, err := countRecords(data)
	if err != nil {
		return nil, err
	}
	if records <= 1 {
		return nil, nil
	}

	var rows []*Row
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("decode tradebook: %w", err)
	}

	trades := make([]models.Trade, 0, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := Normalize(*row, opts)
		if err != nil {
			// +2: 1-based, after the header line
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		trades = append(trades, t)
	}
	return trades, nil
}

// countRecords validates the header and reports how many records (header
// included) the file holds, stopping once it knows there is a body.
func countRecords(data []byte) (int, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	header, err := cr.Read()
	if err == io.EOF {
		return 0, fmt.Errorf("%w: %s (empty file)", ErrMissingColumn, strings.Join(RequiredColumns, ", "))
	}
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}

	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return 0, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	if _, err := cr.Read(); err == io.EOF {
		return 1, nil
	}
	return 2, nil
}

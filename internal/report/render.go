package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/trademetriks/internal/logger"
	"github.com/seenimoa/trademetriks/internal/trace"
	"github.com/seenimoa/trademetriks/pkg/models"
)

// BaseName is the file stem every rendered format shares.
const BaseName = "dashboard"

// Render produces one format in memory. PDF is not available here since it
// needs an external engine and a file; use RenderAll.
func Render(db *models.Dashboard, f Format, opts Options) ([]byte, error) {
	switch f {
	case FormatHTML:
		return GenerateHTML(db, opts)
	case FormatJSON:
		return GenerateJSON(db)
	case FormatYAML:
		return GenerateYAML(db)
	case FormatText:
		return GenerateText(db, opts)
	case FormatRSS:
		return GenerateRSS(db, FeedOptions{Title: opts.Title, Link: BaseName + FormatHTML.Extension()})
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// RenderAll writes every requested format to outDir concurrently and
// returns the written paths keyed by format. Renderers only read db.
func RenderAll(ctx context.Context, db *models.Dashboard, opts Options, formats []Format, outDir string) (map[Format]string, error) {
	if db == nil {
		return nil, ErrNilDashboard
	}
	ctx, span := trace.StartSpan(ctx, "report.render_all", attribute.Int("formats", len(formats)))
	defer span.End()
	defer logger.TimeTrack(time.Now(), "report.render_all")

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var (
		mu      sync.Mutex
		written = make(map[Format]string, len(formats))
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, f := range formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path, err := renderFile(ctx, db, f, opts, outDir)
			if err != nil {
				return fmt.Errorf("render %s: %w", f, err)
			}
			mu.Lock()
			written[f] = path
			mu.Unlock()
			logger.Info("report written", logger.Fields{"format": string(f), "path": path})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return written, nil
}

func renderFile(ctx context.Context, db *models.Dashboard, f Format, opts Options, outDir string) (string, error) {
	path := filepath.Join(outDir, BaseName+f.Extension())
	if f == FormatPDF {
		html, err := GenerateHTML(db, opts)
		if err != nil {
			return "", err
		}
		return GeneratePDF(ctx, html, DefaultPDFConfig(path))
	}

	out, err := Render(db, f, opts)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

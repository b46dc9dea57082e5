package fantasyhtml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mlasky/diamondsync/internal/usecase"
)

// ArchiveParser reads archived daily stats pages from disk. Files are
// named <stat date>.html under the archive directory, one per date.
type ArchiveParser struct {
	dir string
}

var _ usecase.DayParser = (*ArchiveParser)(nil)

func NewArchiveParser(dir string) *ArchiveParser {
	return &ArchiveParser{dir: strings.TrimSpace(dir)}
}

func (p *ArchiveParser) ParseDay(ctx context.Context, statDate string) ([]usecase.RawPlayerDayRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	statDate = strings.TrimSpace(statDate)
	if statDate == "" {
		return nil, fmt.Errorf("stat date is required")
	}

	path := filepath.Join(p.dir, statDate+".html")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ParseDayStats(f)
	if err != nil {
		return nil, fmt.Errorf("parse archive %s: %w", path, err)
	}
	return rows, nil
}

// Package service persists issue reports as sequence numbered JSON files
// in a local reports directory
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	perr "partsearch/internal/platform/errors"
	"partsearch/internal/platform/logger"
	"partsearch/internal/services/reports/domain"

	"github.com/google/uuid"
)

// Config tunes where and how report files are written
type Config struct {
	// Dir is the reports directory, created on first write
	Dir string
	// Prefix names the report series inside filenames
	Prefix string
}

// Service writes reports to disk
// the mutex serializes sequence scanning against concurrent writers in process
type Service struct {
	cfg Config
	mu  sync.Mutex
}

var _ domain.WriterPort = (*Service)(nil)

// New constructs the reports service
func New(cfg Config) *Service {
	if cfg.Dir == "" {
		cfg.Dir = "issues"
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "issue"
	}
	return &Service{cfg: cfg}
}

// Write validates, numbers and persists one report
// filenames look like 2026-01-02_15-04-05_issue003.json
func (s *Service) Write(ctx context.Context, rep domain.Report) (domain.Report, string, error) {
	if strings.TrimSpace(rep.Summary) == "" {
		return domain.Report{}, "", perr.WithField(perr.Validationf("summary is required"), "summary")
	}
	if err := ctx.Err(); err != nil {
		return domain.Report{}, "", err
	}

	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return domain.Report{}, "", perr.Wrap(err, perr.ErrorCodeUnknown, "create reports dir")
	}

	next, err := s.nextSeq()
	if err != nil {
		return domain.Report{}, "", err
	}

	name := fmt.Sprintf("%s_%s%03d.json",
		rep.CreatedAt.Format("2006-01-02_15-04-05"), s.cfg.Prefix, next)
	path := filepath.Join(s.cfg.Dir, name)

	bs, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return domain.Report{}, "", perr.Wrap(err, perr.ErrorCodeJSON, "marshal report")
	}
	if err := os.WriteFile(path, bs, 0o600); err != nil {
		return domain.Report{}, "", perr.Wrap(err, perr.ErrorCodeUnknown, "write report")
	}

	logger.Named("reports").Info().
		Str("id", rep.ID).
		Str("path", path).
		Msg("report saved")

	return rep, path, nil
}

// nextSeq scans the reports dir for files of this prefix and returns max+1
func (s *Service) nextSeq() (int, error) {
	entries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeUnknown, "scan reports dir")
	}

	marker := "_" + s.cfg.Prefix
	max := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		i := strings.LastIndex(name, marker)
		if i < 0 {
			continue
		}
		numPart := strings.TrimSuffix(name[i+len(marker):], ".json")
		n, err := strconv.Atoi(numPart)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1, nil
}

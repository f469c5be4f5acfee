// Package backup copies the whole document to a remote folder, keeping the
// most recent copies only.
package backup

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/2beens/gymlog/internal/docstore"
	"github.com/2beens/gymlog/internal/gymstats/document"
	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=backup_test

const (
	DefaultFolderName = "gymlog-backup"
	DefaultKeep       = 30
)

type documentReader interface {
	Get(ctx context.Context) (*document.Document, docstore.Revision, error)
}

type uploader interface {
	EnsureFolder(ctx context.Context, name string) (string, error)
	List(ctx context.Context, folderID string) ([]RemoteFile, error)
	Upload(ctx context.Context, folderID, name string, content []byte) (string, error)
	Delete(ctx context.Context, fileID string) error
}

type RemoteFile struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type Result struct {
	FileID   string
	FileName string
	Revision docstore.Revision
	Pruned   int
}

type Service struct {
	reader         documentReader
	uploader       uploader
	folderName     string
	keep           int
	metricsManager *metrics.Manager

	NowFunc func() time.Time
}

func NewService(
	reader documentReader,
	uploader uploader,
	folderName string,
	keep int,
	metricsManager *metrics.Manager,
) *Service {
	if folderName == "" {
		folderName = DefaultFolderName
	}
	if keep <= 0 {
		keep = DefaultKeep
	}
	return &Service{
		reader:         reader,
		uploader:       uploader,
		folderName:     folderName,
		keep:           keep,
		metricsManager: metricsManager,
		NowFunc:        time.Now,
	}
}

func FileName(rev docstore.Revision, at time.Time) string {
	return fmt.Sprintf("gymlog-%s-rev%d.json", at.UTC().Format("20060102T150405Z"), rev)
}

// Run uploads the current document and removes the oldest copies beyond keep.
func (s *Service) Run(ctx context.Context) (_ Result, err error) {
	ctx, span := tracing.GlobalBackupTracer.Start(ctx, "backup.run")
	defer func() {
		s.countResult(err)
		tracing.EndSpanWithErrCheck(span, err)
	}()

	doc, rev, err := s.reader.Get(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load document: %w", err)
	}
	content, err := document.Encode(doc)
	if err != nil {
		return Result{}, err
	}
	span.SetAttributes(
		attribute.Int64("revision", int64(rev)),
		attribute.Int("size", len(content)),
	)

	folderID, err := s.uploader.EnsureFolder(ctx, s.folderName)
	if err != nil {
		return Result{}, fmt.Errorf("ensure folder %s: %w", s.folderName, err)
	}

	name := FileName(rev, s.NowFunc())
	fileID, err := s.uploader.Upload(ctx, folderID, name, content)
	if err != nil {
		return Result{}, fmt.Errorf("upload %s: %w", name, err)
	}
	log.Debugf("backup uploaded: %s (%s), %d bytes", name, fileID, len(content))

	pruned, err := s.prune(ctx, folderID)
	if err != nil {
		// the new copy is already stored
		log.Errorf("backup prune: %s", err)
	}

	return Result{
		FileID:   fileID,
		FileName: name,
		Revision: rev,
		Pruned:   pruned,
	}, nil
}

func (s *Service) prune(ctx context.Context, folderID string) (int, error) {
	files, err := s.uploader.List(ctx, folderID)
	if err != nil {
		return 0, fmt.Errorf("list backups: %w", err)
	}
	if len(files) <= s.keep {
		return 0, nil
	}

	// newest first
	sort.Slice(files, func(i, j int) bool {
		return files[i].CreatedAt.After(files[j].CreatedAt)
	})

	pruned := 0
	for _, f := range files[s.keep:] {
		if err := s.uploader.Delete(ctx, f.ID); err != nil {
			return pruned, fmt.Errorf("delete %s: %w", f.Name, err)
		}
		log.Debugf("old backup removed: %s (%s)", f.Name, f.ID)
		pruned++
	}
	return pruned, nil
}

func (s *Service) countResult(err error) {
	if s.metricsManager == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "failed"
	}
	s.metricsManager.CounterBackups.WithLabelValues(result).Inc()
}

package knowledge

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Provider hands out the knowledge document.
type Provider interface {
	Knowledge(ctx context.Context) (*Document, error)
}

// FileProvider loads the document from disk on first use and keeps it for
// the life of the process. Failed loads are not cached, so a later request
// retries the candidates. Edits on disk need a restart.
type FileProvider struct {
	candidates []string
	logger     *zap.Logger

	mu  sync.Mutex
	doc *Document
}

func NewFileProvider(candidates []string, logger *zap.Logger) *FileProvider {
	return &FileProvider{
		candidates: candidates,
		logger:     logger,
	}
}

func (p *FileProvider) Knowledge(ctx context.Context) (*Document, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.doc != nil {
		return p.doc, nil
	}

	doc, err := Load(p.candidates)
	if err != nil {
		p.logger.Error("Knowledge load failed", zap.Strings("candidates", p.candidates), zap.Error(err))
		return nil, err
	}

	p.logger.Info("Knowledge loaded",
		zap.String("brand", doc.Brand.Name),
		zap.String("version", doc.Meta.Version),
		zap.Int("systems", len(doc.SystemsWeBuild)),
		zap.Int("faq", len(doc.FAQ)),
	)
	p.doc = doc
	return doc, nil
}

// StaticProvider serves an already loaded document.
type StaticProvider struct {
	Doc *Document
}

func (p StaticProvider) Knowledge(ctx context.Context) (*Document, error) {
	if p.Doc == nil {
		return nil, &UnavailableError{LastErr: errNoCandidate}
	}
	return p.Doc, nil
}

package flowchart

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dotpress/dotpress/internal/logging"
	"github.com/dotpress/dotpress/internal/monitoring"
	"github.com/dotpress/dotpress/internal/naming"
	"github.com/dotpress/dotpress/internal/session"
)

// Generator produces complete, standalone graph-description documents from
// natural-language instructions. Implementations are external services:
// output may differ between identical calls and latency is unbounded.
type Generator interface {
	GenerateInitial(ctx context.Context, instruction string) (string, error)
	GenerateModification(ctx context.Context, current, instruction string) (string, error)
}

// Renderer turns graph text into the final document artifact. Both methods
// are synchronous and single-attempt; the orchestrator surfaces failures
// instead of masking them.
type Renderer interface {
	RenderImage(ctx context.Context, graphText, imagePath string) error
	EmbedImage(ctx context.Context, templatePDF, imagePath, outputPDF string) error
}

// Config holds the fixed paths the pipeline renders with.
type Config struct {
	TemplatePDF string
	OutputDir   string
	TempDir     string
}

// Service coordinates generator calls with session persistence and rendering.
type Service struct {
	store    *session.Store
	gen      Generator
	renderer Renderer
	catalog  *Catalog
	cfg      Config
	logger   *logging.Logger
	metrics  *monitoring.Metrics

	// Serializes the read-generate-write window per (namespace, session id).
	// Different sessions stay fully parallel.
	locks sync.Map
}

// NewService creates the orchestrator. metrics may be nil.
func NewService(
	store *session.Store,
	gen Generator,
	renderer Renderer,
	catalog *Catalog,
	cfg Config,
	logger *logging.Logger,
	metrics *monitoring.Metrics,
) *Service {
	return &Service{
		store:    store,
		gen:      gen,
		renderer: renderer,
		catalog:  catalog,
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
	}
}

// ArtifactName returns the deterministic output document name for a session.
// Re-rendering the same session overwrites rather than accumulates files.
func ArtifactName(sessionID string) string {
	return "flowchart_" + sessionID + ".pdf"
}

// Create starts a new session from a first instruction. On success it returns
// the fresh session id and the output artifact name. A failed generation
// leaves no trace: the session id is discarded, nothing is persisted.
func (s *Service) Create(ctx context.Context, identifier, instruction string) (string, string, error) {
	namespace := naming.Normalize(identifier)
	if err := s.store.EnsureNamespace(namespace); err != nil {
		return "", "", err
	}

	sessionID := uuid.NewString()

	graphText, err := s.gen.GenerateInitial(ctx, instruction)
	if err != nil || strings.TrimSpace(graphText) == "" {
		s.logger.Error("initial graph generation failed",
			zap.String("namespace", namespace),
			zap.Error(err))
		s.recordPipeline("create", "generation_failed")
		return "", "", ErrGenerationFailed
	}

	if err := s.store.Write(namespace, sessionID, graphText); err != nil {
		s.recordPipeline("create", "store_failed")
		return "", "", err
	}

	artifact, err := s.renderStage(ctx, sessionID, graphText)
	if err != nil {
		s.recordPipeline("create", "render_failed")
		return "", "", err
	}

	s.logger.Info("session created",
		zap.String("namespace", namespace),
		zap.String("session_id", sessionID),
		zap.String("artifact", artifact))
	s.recordPipeline("create", "ok")
	return sessionID, artifact, nil
}

// Append applies a new instruction to an existing session. The stored
// document survives a failed generation byte for byte; render failures never
// roll back a persisted edit.
func (s *Service) Append(ctx context.Context, identifier, sessionID, instruction string) (string, error) {
	namespace := naming.Normalize(identifier)

	mu := s.sessionLock(namespace, sessionID)
	mu.Lock()
	defer mu.Unlock()

	if !s.store.Exists(namespace, sessionID) {
		s.recordPipeline("append", "session_not_found")
		return "", fmt.Errorf("%s: %w", sessionID, ErrSessionNotFound)
	}

	current, err := s.store.Read(namespace, sessionID)
	if err != nil {
		s.recordPipeline("append", "store_failed")
		return "", err
	}

	graphText, err := s.gen.GenerateModification(ctx, current, instruction)
	if err != nil || strings.TrimSpace(graphText) == "" {
		s.logger.Error("graph modification failed",
			zap.String("namespace", namespace),
			zap.String("session_id", sessionID),
			zap.Error(err))
		s.recordPipeline("append", "generation_failed")
		return "", ErrGenerationFailed
	}

	if err := s.store.Write(namespace, sessionID, graphText); err != nil {
		s.recordPipeline("append", "store_failed")
		return "", err
	}

	artifact, err := s.renderStage(ctx, sessionID, graphText)
	if err != nil {
		s.recordPipeline("append", "render_failed")
		return "", err
	}

	s.recordPipeline("append", "ok")
	return artifact, nil
}

// LoadTemplate starts a new session from a pre-authored template, bypassing
// the generator. The template id is resolved against the closed catalog only.
func (s *Service) LoadTemplate(ctx context.Context, identifier, templateID string) (string, string, error) {
	graphText, err := s.catalog.Resolve(templateID)
	if err != nil {
		s.recordPipeline("load_template", "template_not_found")
		return "", "", err
	}

	namespace := naming.Normalize(identifier)
	if err := s.store.EnsureNamespace(namespace); err != nil {
		return "", "", err
	}

	sessionID := uuid.NewString()
	if err := s.store.Write(namespace, sessionID, graphText); err != nil {
		s.recordPipeline("load_template", "store_failed")
		return "", "", err
	}

	artifact, err := s.renderStage(ctx, sessionID, graphText)
	if err != nil {
		s.recordPipeline("load_template", "render_failed")
		return "", "", err
	}

	s.logger.Info("template loaded",
		zap.String("namespace", namespace),
		zap.String("template_id", templateID),
		zap.String("session_id", sessionID))
	s.recordPipeline("load_template", "ok")
	return sessionID, artifact, nil
}

// ListTemplates returns the template catalog.
func (s *Service) ListTemplates() []TemplateInfo {
	return s.catalog.List()
}

// renderStage rasterizes the graph text and embeds the image into the fixed
// template document. The temporary image never outlives the call, whatever
// the outcome.
func (s *Service) renderStage(ctx context.Context, sessionID, graphText string) (string, error) {
	imagePath := filepath.Join(s.cfg.TempDir, sessionID+".png")

	renderTimer := monitoring.NewTimer(s.metrics, "render_image")
	err := s.renderer.RenderImage(ctx, graphText, imagePath)
	renderTimer.Stop()
	defer os.Remove(imagePath)
	if err != nil {
		s.logger.Error("image rendering failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return "", ErrRenderFailed
	}

	artifact := ArtifactName(sessionID)
	outputPath := filepath.Join(s.cfg.OutputDir, artifact)
	embedTimer := monitoring.NewTimer(s.metrics, "embed_document")
	err = s.renderer.EmbedImage(ctx, s.cfg.TemplatePDF, imagePath, outputPath)
	embedTimer.Stop()
	if err != nil {
		s.logger.Error("document embedding failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return "", ErrEmbedFailed
	}
	return artifact, nil
}

func (s *Service) sessionLock(namespace, sessionID string) *sync.Mutex {
	key := namespace + "/" + sessionID
	mu, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *Service) recordPipeline(operation, status string) {
	if s.metrics != nil {
		s.metrics.RecordPipeline(operation, status)
	}
}

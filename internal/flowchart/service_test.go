package flowchart

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotpress/dotpress/internal/logging"
	"github.com/dotpress/dotpress/internal/session"
)

// fakeGenerator is a deterministic stand-in for the external generator.
type fakeGenerator struct {
	initial      string
	modified     string
	initialErr   error
	modifiedErr  error
	initialCalls int
	modifyCalls  int
	lastCurrent  string
}

func (f *fakeGenerator) GenerateInitial(_ context.Context, _ string) (string, error) {
	f.initialCalls++
	return f.initial, f.initialErr
}

func (f *fakeGenerator) GenerateModification(_ context.Context, current, _ string) (string, error) {
	f.modifyCalls++
	f.lastCurrent = current
	return f.modified, f.modifiedErr
}

// fakeRenderer writes real files so temp-image cleanup is observable.
type fakeRenderer struct {
	renderErr   error
	embedErr    error
	renderCalls int
	embedCalls  int
	imagePaths  []string
	outputPaths []string
}

func (f *fakeRenderer) RenderImage(_ context.Context, _, imagePath string) error {
	f.renderCalls++
	if f.renderErr != nil {
		return f.renderErr
	}
	f.imagePaths = append(f.imagePaths, imagePath)
	return os.WriteFile(imagePath, []byte("png"), 0o644)
}

func (f *fakeRenderer) EmbedImage(_ context.Context, _, _, outputPDF string) error {
	f.embedCalls++
	if f.embedErr != nil {
		return f.embedErr
	}
	f.outputPaths = append(f.outputPaths, outputPDF)
	return os.WriteFile(outputPDF, []byte("pdf"), 0o644)
}

type fixture struct {
	svc      *Service
	store    *session.Store
	gen      *fakeGenerator
	renderer *fakeRenderer
	tempDir  string
	outDir   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()

	sessionDir := filepath.Join(root, "session_files")
	outDir := filepath.Join(root, "outputs")
	tempDir := filepath.Join(root, "temp_files")
	for _, dir := range []string{sessionDir, outDir, tempDir} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}

	store := session.NewStore(sessionDir)
	gen := &fakeGenerator{initial: "digraph flowchart { A; }", modified: "digraph flowchart { A -> B; }"}
	renderer := &fakeRenderer{}

	catalog := &Catalog{templates: map[string]string{
		"simple_process": "digraph flowchart { Start -> End; }",
	}}

	svc := NewService(store, gen, renderer, catalog, Config{
		TemplatePDF: filepath.Join(root, "Template.pdf"),
		OutputDir:   outDir,
		TempDir:     tempDir,
	}, logging.NewNop(), nil)

	return &fixture{svc: svc, store: store, gen: gen, renderer: renderer, tempDir: tempDir, outDir: outDir}
}

func (f *fixture) tempEntries(t *testing.T) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(f.tempDir)
	require.NoError(t, err)
	return entries
}

func TestCreatePersistsGeneratorOutputExactly(t *testing.T) {
	f := newFixture(t)

	sessionID, artifact, err := f.svc.Create(context.Background(), "a@b.com", "Start with step A")
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)
	assert.Equal(t, "flowchart_"+sessionID+".pdf", artifact)

	// The persisted document is the generator's output, not a transformation.
	stored, err := f.store.Read("a_b_com", sessionID)
	require.NoError(t, err)
	assert.Equal(t, "digraph flowchart { A; }", stored)
}

func TestCreateGenerationFailureLeavesNoTrace(t *testing.T) {
	f := newFixture(t)
	f.gen.initialErr = errors.New("model unavailable")

	_, _, err := f.svc.Create(context.Background(), "a@b.com", "Start with step A")
	assert.ErrorIs(t, err, ErrGenerationFailed)

	// No session document persisted, no render attempted.
	entries, readErr := os.ReadDir(filepath.Join(f.tempDir, "..", "session_files", "a_b_com"))
	if readErr == nil {
		assert.Empty(t, entries)
	}
	assert.Zero(t, f.renderer.renderCalls)
}

func TestCreateEmptyGenerationIsFailure(t *testing.T) {
	f := newFixture(t)
	f.gen.initial = "  \n "

	_, _, err := f.svc.Create(context.Background(), "a@b.com", "Start with step A")
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestAppendUpdatesDocumentAndReusesArtifactName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sessionID, artifact1, err := f.svc.Create(ctx, "a@b.com", "Start with step A")
	require.NoError(t, err)

	artifact2, err := f.svc.Append(ctx, "a@b.com", sessionID, "Add step B after A")
	require.NoError(t, err)

	// Same deterministic name, content updated in place.
	assert.Equal(t, artifact1, artifact2)
	assert.Equal(t, "digraph flowchart { A; }", f.gen.lastCurrent)

	stored, err := f.store.Read("a_b_com", sessionID)
	require.NoError(t, err)
	assert.Equal(t, "digraph flowchart { A -> B; }", stored)
}

func TestAppendUnknownSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Append(context.Background(), "a@b.com", "not-a-real-id", "x")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Zero(t, f.gen.modifyCalls)
}

func TestAppendGenerationFailurePreservesDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sessionID, _, err := f.svc.Create(ctx, "a@b.com", "Start with step A")
	require.NoError(t, err)

	before, err := f.store.Read("a_b_com", sessionID)
	require.NoError(t, err)

	f.gen.modifiedErr = errors.New("model unavailable")
	_, err = f.svc.Append(ctx, "a@b.com", sessionID, "Add step B")
	assert.ErrorIs(t, err, ErrGenerationFailed)

	after, readErr := f.store.Read("a_b_com", sessionID)
	require.NoError(t, readErr)
	assert.Equal(t, before, after)
}

func TestRenderFailureDoesNotRollBackPersistedEdit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sessionID, _, err := f.svc.Create(ctx, "a@b.com", "Start with step A")
	require.NoError(t, err)

	f.renderer.renderErr = errors.New("engine unavailable")
	_, err = f.svc.Append(ctx, "a@b.com", sessionID, "Add step B")
	assert.ErrorIs(t, err, ErrRenderFailed)

	// A subsequent read sees the just-persisted document, not the prior one.
	stored, readErr := f.store.Read("a_b_com", sessionID)
	require.NoError(t, readErr)
	assert.Equal(t, "digraph flowchart { A -> B; }", stored)

	// The session stays re-renderable.
	f.renderer.renderErr = nil
	_, err = f.svc.Append(ctx, "a@b.com", sessionID, "Add step C")
	assert.NoError(t, err)
}

func TestTempImageCleanupOnEveryOutcome(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.svc.Create(ctx, "a@b.com", "Start")
		require.NoError(t, err)
		assert.Empty(t, f.tempEntries(t))
	})

	t.Run("embed failure", func(t *testing.T) {
		f := newFixture(t)
		f.renderer.embedErr = errors.New("template missing")
		_, _, err := f.svc.Create(ctx, "a@b.com", "Start")
		assert.ErrorIs(t, err, ErrEmbedFailed)
		assert.Empty(t, f.tempEntries(t))
	})

	t.Run("render failure", func(t *testing.T) {
		f := newFixture(t)
		f.renderer.renderErr = errors.New("bad graph")
		_, _, err := f.svc.Create(ctx, "a@b.com", "Start")
		assert.ErrorIs(t, err, ErrRenderFailed)
		assert.Empty(t, f.tempEntries(t))
	})
}

func TestLoadTemplate(t *testing.T) {
	f := newFixture(t)

	sessionID, artifact, err := f.svc.LoadTemplate(context.Background(), "a@b.com", "simple_process")
	require.NoError(t, err)
	assert.Equal(t, ArtifactName(sessionID), artifact)

	stored, err := f.store.Read("a_b_com", sessionID)
	require.NoError(t, err)
	assert.Equal(t, "digraph flowchart { Start -> End; }", stored)

	// Generator is bypassed entirely.
	assert.Zero(t, f.gen.initialCalls)
}

func TestLoadTemplateRejectsUnknownIDs(t *testing.T) {
	f := newFixture(t)

	for _, id := range []string{"../../etc/passwd", "unknown", "", "simple_process.dot"} {
		_, _, err := f.svc.LoadTemplate(context.Background(), "a@b.com", id)
		assert.ErrorIs(t, err, ErrTemplateNotFound, "id %q", id)
	}

	// No sessions created for rejected ids.
	entries, err := os.ReadDir(filepath.Join(f.tempDir, "..", "session_files"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSessionsAreIndependent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s1, _, err := f.svc.Create(ctx, "a@b.com", "First chart")
	require.NoError(t, err)

	f.gen.initial = "digraph flowchart { X; }"
	s2, _, err := f.svc.Create(ctx, "a@b.com", "Second chart")
	require.NoError(t, err)
	require.NotEqual(t, s1, s2)

	f.gen.modified = "digraph flowchart { X -> Y; }"
	_, err = f.svc.Append(ctx, "a@b.com", s2, "Add Y")
	require.NoError(t, err)

	doc1, err := f.store.Read("a_b_com", s1)
	require.NoError(t, err)
	doc2, err := f.store.Read("a_b_com", s2)
	require.NoError(t, err)

	assert.Equal(t, "digraph flowchart { A; }", doc1)
	assert.Equal(t, "digraph flowchart { X -> Y; }", doc2)
}

func TestArtifactName(t *testing.T) {
	assert.Equal(t, "flowchart_abc.pdf", ArtifactName("abc"))
}

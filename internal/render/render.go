// Package render implements the render pipeline: graph text to a raster
// image, and the image composited into a PDF template.
package render

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-graphviz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"

	"github.com/dotpress/dotpress/internal/logging"
)

// Placement of the flowchart image on the template page.
const imageStampDesc = "pos:c, scalefactor:0.8 rel, rot:0"

// Pipeline renders graph text to PNG with Graphviz and stamps the result
// onto the first page of a PDF template.
type Pipeline struct {
	logger *logging.Logger
}

// NewPipeline creates a render pipeline.
func NewPipeline(logger *logging.Logger) *Pipeline {
	return &Pipeline{logger: logger}
}

// RenderImage rasterizes graph text to a PNG at imagePath. It fails when the
// text is not valid DOT.
func (p *Pipeline) RenderImage(ctx context.Context, graphText, imagePath string) error {
	g, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize graphviz: %w", err)
	}
	defer g.Close()

	graph, err := graphviz.ParseBytes([]byte(graphText))
	if err != nil {
		return fmt.Errorf("failed to parse graph text: %w", err)
	}
	defer graph.Close()

	if err := g.RenderFilename(ctx, graph, graphviz.PNG, imagePath); err != nil {
		return fmt.Errorf("failed to render image: %w", err)
	}

	p.logger.Debug("image rendered", zap.String("path", imagePath))
	return nil
}

// EmbedImage stamps the image onto the first page of the template document
// and writes the result to outputPDF. The template itself is never modified.
func (p *Pipeline) EmbedImage(ctx context.Context, templatePDF, imagePath, outputPDF string) error {
	if _, err := os.Stat(templatePDF); err != nil {
		return fmt.Errorf("template document unavailable: %w", err)
	}

	wm, err := api.ImageWatermark(imagePath, imageStampDesc, true, false, types.POINTS)
	if err != nil {
		return fmt.Errorf("failed to prepare image stamp: %w", err)
	}

	if err := api.AddWatermarksFile(templatePDF, outputPDF, []string{"1"}, wm, nil); err != nil {
		return fmt.Errorf("failed to embed image in document: %w", err)
	}

	p.logger.Debug("document written", zap.String("path", outputPDF))
	return nil
}

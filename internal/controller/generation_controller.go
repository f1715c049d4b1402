package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strconv"

	"ai-editor-be/internal/dto"
	"ai-editor-be/internal/pkg/logger"
	"ai-editor-be/internal/pkg/serverutils"
	"ai-editor-be/internal/service"
	"ai-editor-be/pkg/embedding"
	"ai-editor-be/pkg/extract"
	"ai-editor-be/pkg/fetch"
	"ai-editor-be/pkg/vectorstore"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type IGenerationController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	GenerateWithContext(ctx *fiber.Ctx) error
}

type generationController struct {
	generationService service.IGenerationService
	embedder          embedding.EmbeddingProvider
	extractor         *extract.Extractor
	fetcher           *fetch.Fetcher
	log               logger.ILogger
}

func NewGenerationController(
	generationService service.IGenerationService,
	embedder embedding.EmbeddingProvider,
	extractor *extract.Extractor,
	fetcher *fetch.Fetcher,
	log logger.ILogger,
) IGenerationController {
	return &generationController{
		generationService: generationService,
		embedder:          embedder,
		extractor:         extractor,
		fetcher:           fetcher,
		log:               log,
	}
}

func (c *generationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/editor/v1")
	h.Use(serverutils.IdentityMiddleware)
	h.Post("generate", c.Generate)
	h.Post("generate-with-context", c.GenerateWithContext)
}

func (c *generationController) Generate(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromCtx(ctx)

	var req dto.GenerateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generationService.Generate(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate text", res))
}

func (c *generationController) GenerateWithContext(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromCtx(ctx)

	req := dto.GenerateWithContextRequest{
		UserText: ctx.FormValue("user_text"),
		Prompt:   ctx.FormValue("prompt"),
	}
	if topK := ctx.FormValue("top_k"); topK != "" {
		if v, err := strconv.Atoi(topK); err == nil {
			req.TopK = v
		}
	}

	var files []*multipart.FileHeader
	if form, err := ctx.MultipartForm(); err == nil && form != nil {
		files = form.File["files"]
		req.Urls = form.Value["urls"]
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	sources := c.collectSources(ctx.Context(), files, req.Urls)

	contextStore, err := vectorstore.BuildEphemeralStore(ctx.Context(), c.embedder, sources)
	if err != nil {
		return fmt.Errorf("build context store: %w", err)
	}

	textType, fragments, err := c.generationService.GenerateStream(ctx.Context(), userId, &req, contextStore)
	if err != nil {
		return err
	}

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")
	ctx.Set("X-Text-Type", textType)

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		for fragment := range fragments {
			payload, err := json.Marshal(fiber.Map{"content": fragment})
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				// Client went away; the context cancellation stops the stream.
				return
			}
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
		w.Flush()
	}))

	return nil
}

// collectSources turns uploads and URLs into raw documents for the
// request-scoped context store. Unsupported or unreadable inputs are
// skipped so the rest of the batch still contributes.
func (c *generationController) collectSources(ctx context.Context, files []*multipart.FileHeader, urls []string) []vectorstore.SourceDocument {
	var sources []vectorstore.SourceDocument

	for _, fh := range files {
		ext := filepath.Ext(fh.Filename)
		if !c.extractor.Supported(ext) {
			c.log.Warn("generation", "skipping unsupported upload", map[string]interface{}{
				"filename": fh.Filename,
			})
			continue
		}

		content, err := readUpload(fh)
		if err != nil {
			c.log.Warn("generation", "failed to read upload", map[string]interface{}{
				"filename": fh.Filename,
				"error":    err.Error(),
			})
			continue
		}

		text, err := c.extractor.Extract(content, ext)
		if err != nil {
			c.log.Warn("generation", "failed to extract upload", map[string]interface{}{
				"filename": fh.Filename,
				"error":    err.Error(),
			})
			continue
		}

		sources = append(sources, vectorstore.SourceDocument{
			Content:  text,
			Metadata: map[string]string{"source": fh.Filename},
		})
	}

	for _, result := range c.fetcher.FetchAll(ctx, urls) {
		sources = append(sources, vectorstore.SourceDocument{
			Content:  result.Text,
			Metadata: map[string]string{"source": result.URL},
		})
	}

	return sources
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

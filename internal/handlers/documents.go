package handlers

import (
	"fmt"

	"verba/internal/documents"

	"github.com/gofiber/fiber/v2"
)

type DocumentHandler struct{}

func NewDocumentHandler() *DocumentHandler {
	return &DocumentHandler{}
}

type documentRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content" validate:"required,min=1"`
}

func (r *documentRequest) name() string {
	if r.Filename == "" {
		return "document"
	}
	return r.Filename
}

func sendAttachment(c *fiber.Ctx, contentType, filename, ext string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	// The filename is user input; quoting keeps spaces and separators from
	// breaking the header. Quotes and backslashes inside it are escaped.
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename+"."+ext))
	return c.Send(data)
}

// Generate is a dry run: it reports what an export would produce without
// rendering anything.
func (h *DocumentHandler) Generate(c *fiber.Ctx) error {
	var req documentRequest
	if !bindBody(c, &req) {
		return nil
	}
	return c.JSON(fiber.Map{
		"message":  "ok",
		"filename": req.name(),
		"bytes":    len(req.Content),
	})
}

func (h *DocumentHandler) Text(c *fiber.Ctx) error {
	var req documentRequest
	if !bindBody(c, &req) {
		return nil
	}
	return sendAttachment(c, documents.ContentTypeText, req.name(), "txt", documents.Text(req.Content))
}

func (h *DocumentHandler) Markdown(c *fiber.Ctx) error {
	var req documentRequest
	if !bindBody(c, &req) {
		return nil
	}
	return sendAttachment(c, documents.ContentTypeMarkdown, req.name(), "md", documents.Markdown(req.Content))
}

func (h *DocumentHandler) PDF(c *fiber.Ctx) error {
	var req documentRequest
	if !bindBody(c, &req) {
		return nil
	}
	data, err := documents.PDF(req.Content)
	if err != nil {
		return err
	}
	return sendAttachment(c, documents.ContentTypePDF, req.name(), "pdf", data)
}

func (h *DocumentHandler) Docx(c *fiber.Ctx) error {
	var req documentRequest
	if !bindBody(c, &req) {
		return nil
	}
	data, err := documents.Docx(req.Content)
	if err != nil {
		return err
	}
	return sendAttachment(c, documents.ContentTypeDocx, req.name(), "docx", data)
}

package media

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// OCR extracts plain text from an image file.
type OCR interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// TesseractOCR runs OCR through the tesseract engine.
type TesseractOCR struct {
	Language string
}

func NewTesseractOCR() *TesseractOCR {
	return &TesseractOCR{Language: "eng"}
}

func (t *TesseractOCR) ExtractText(ctx context.Context, path string) (string, error) {
	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)

	// gosseract has no context support and its clients are not safe for
	// concurrent use, so each request runs its own client in a goroutine
	// and the caller stops waiting when the context expires.
	go func() {
		client := gosseract.NewClient()
		defer client.Close()

		if err := client.SetLanguage(t.Language); err != nil {
			done <- result{err: fmt.Errorf("ocr language: %w", err)}
			return
		}
		if err := client.SetImage(path); err != nil {
			done <- result{err: fmt.Errorf("ocr image: %w", err)}
			return
		}
		text, err := client.Text()
		if err != nil {
			done <- result{err: fmt.Errorf("ocr extract: %w", err)}
			return
		}
		done <- result{text: text}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.text, res.err
	}
}

package media

import (
	"context"
	"fmt"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Transcoder normalizes uploaded audio before transcription.
type Transcoder interface {
	ToMP3(ctx context.Context, inPath, outPath string) error
}

// FFmpegTranscoder shells out to ffmpeg.
type FFmpegTranscoder struct{}

func NewFFmpegTranscoder() *FFmpegTranscoder {
	return &FFmpegTranscoder{}
}

// ToMP3 converts the input file to mp3 at outPath. The handler's goroutine
// suspends until ffmpeg exits; cancelling ctx kills the process.
func (f *FFmpegTranscoder) ToMP3(ctx context.Context, inPath, outPath string) error {
	cmd := ffmpeg.Input(inPath).
		Output(outPath, ffmpeg.KwArgs{"format": "mp3"}).
		OverWriteOutput().
		Silent(true).
		Compile()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("transcode: %w", err)
		}
		return nil
	}
}

package image

import (
	"bytes"
	"context"
	"io"
	"strings"

	"localwear-be/internal/apperror"
	"localwear-be/internal/logger"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// File is an uploaded file as received from the transport.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type Service interface {
	Upload(ctx context.Context, f *File) (string, error)
}

type service struct {
	uploader Uploader
	maxBytes int64
}

func NewService(u Uploader, maxBytes int64) Service {
	return &service{uploader: u, maxBytes: maxBytes}
}

func (s *service) Upload(ctx context.Context, f *File) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UploadImage"),
	)

	if f == nil || f.Content == nil || f.Size == 0 {
		return "", apperror.BadRequest("Please select a file to upload")
	}
	if s.maxBytes > 0 && f.Size > s.maxBytes {
		return "", apperror.BadRequest("File is too large (max %d bytes)", s.maxBytes)
	}

	// The declared content type must be an image and so must the sniffed one.
	if !strings.HasPrefix(strings.ToLower(f.ContentType), "image/") {
		return "", apperror.BadRequest("Please upload a valid image file")
	}

	head := make([]byte, 3072)
	n, err := io.ReadFull(f.Content, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", apperror.Internal("Failed to upload image: "+err.Error(), err)
	}
	head = head[:n]
	if n == 0 {
		return "", apperror.BadRequest("Please select a file to upload")
	}

	detected := mimetype.Detect(head)
	if !strings.HasPrefix(detected.String(), "image/") {
		log.Warn("rejected non-image upload",
			zap.String("declared", f.ContentType),
			zap.String("detected", detected.String()),
		)
		return "", apperror.BadRequest("Please upload a valid image file")
	}

	url, err := s.uploader.Upload(ctx, io.MultiReader(bytes.NewReader(head), f.Content), f.Filename)
	if err != nil {
		return "", apperror.Internal("Failed to upload image: "+err.Error(), err)
	}

	log.Info("image uploaded", zap.String("url", url), zap.String("type", detected.String()))
	return url, nil
}

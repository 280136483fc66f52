package watermark

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

//go:embed logo.png
var logoPNG []byte

// logo placement on the first pdf page, bottom-right corner
const pdfWatermarkDesc = "pos:br, off:-10 10, rot:0, sc:0.1 abs"

var ErrUnsupportedType = errors.New("unsupported file type")

type Service struct {
	logo image.Image
}

func New() (*Service, error) {
	logo, _, err := image.Decode(bytes.NewReader(logoPNG))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	return &Service{logo: logo}, nil
}

// Apply composites the logo onto the payload and returns a new
// payload of the same media type. The input slice is left untouched.
func (s *Service) Apply(payload []byte, fileType string) ([]byte, error) {
	switch {
	case fileType == "application/pdf":
		return s.watermarkPdf(payload)
	case strings.HasPrefix(fileType, "image/"):
		return s.watermarkImage(payload)
	default:
		return nil, ErrUnsupportedType
	}
}

func (s *Service) watermarkPdf(payload []byte) ([]byte, error) {
	wm, err := api.ImageWatermarkForReader(bytes.NewReader(logoPNG), pdfWatermarkDesc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("build pdf watermark: %w", err)
	}

	var out bytes.Buffer
	// first page only
	if err := api.AddWatermarks(bytes.NewReader(payload), &out, []string{"1"}, wm, nil); err != nil {
		return nil, fmt.Errorf("watermark pdf: %w", err)
	}
	return out.Bytes(), nil
}

func (s *Service) watermarkImage(payload []byte) ([]byte, error) {
	background, format, err := image.Decode(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	logo := s.logo
	bounds := background.Bounds()
	logoBounds := logo.Bounds()
	if logoBounds.Dx() > bounds.Dx() || logoBounds.Dy() > bounds.Dy() {
		logo = imaging.Fit(logo, bounds.Dx(), bounds.Dy(), imaging.Lanczos)
		logoBounds = logo.Bounds()
	}

	position := image.Pt(bounds.Dx()-logoBounds.Dx(), bounds.Dy()-logoBounds.Dy())
	composited := imaging.Overlay(background, logo, position, 1.0)

	var encodeFormat imaging.Format
	switch format {
	case "png":
		encodeFormat = imaging.PNG
	case "jpeg":
		encodeFormat = imaging.JPEG
	case "gif":
		encodeFormat = imaging.GIF
	default:
		return nil, ErrUnsupportedType
	}

	var out bytes.Buffer
	if err := imaging.Encode(&out, composited, encodeFormat); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return out.Bytes(), nil
}

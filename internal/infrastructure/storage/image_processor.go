package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/jhoicas/toa-ordenes-api/internal/application/comentarios"
	"github.com/jhoicas/toa-ordenes-api/internal/domain"

	// Decoders para formatos no cubiertos por image/* estándar.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Límites del pipeline de imágenes.
const (
	MaxImageBytes = 10 << 20 // 10 MiB
	maxWidth      = 1920
	maxHeight     = 1080
	jpegQuality   = 85
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

var _ comentarios.ImageStore = (*ImageProcessor)(nil)

// ImageProcessor valida, normaliza y almacena las fotografías de comentarios.
// Toda imagen aceptada termina como JPEG con nombre aleatorio: la extensión y
// el nombre original del cliente nunca llegan al filesystem.
type ImageProcessor struct {
	uploadDir       string
	placeholderPath string
}

// NewImageProcessor construye el procesador y crea el directorio de destino.
func NewImageProcessor(uploadDir, placeholderPath string) (*ImageProcessor, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	return &ImageProcessor{uploadDir: uploadDir, placeholderPath: placeholderPath}, nil
}

// Save aplica el pipeline completo: whitelist de extensión, límite de tamaño,
// decodificación con auto-orientación EXIF, aplanado de transparencia sobre
// blanco, reducción a 1920x1080 manteniendo proporción y recompresión JPEG.
// Devuelve la ruta del archivo escrito.
func (p *ImageProcessor) Save(upload comentarios.ImageUpload) (string, error) {
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: extensión de imagen no permitida: %q", domain.ErrInvalidInput, ext)
	}
	if upload.Size > MaxImageBytes {
		return "", fmt.Errorf("%w: la imagen no puede exceder los %d bytes", domain.ErrInvalidInput, MaxImageBytes)
	}

	// LimitReader como segunda línea: Size viene del multipart y podría mentir.
	img, err := imaging.Decode(io.LimitReader(upload.Reader, MaxImageBytes+1), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: el archivo no es una imagen válida: %v", domain.ErrInvalidInput, err)
	}

	img = flattenToWhite(img)
	bounds := img.Bounds()
	if bounds.Dx() > maxWidth || bounds.Dy() > maxHeight {
		img = imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
	}

	name := uuid.New().String() + ".jpg"
	path := filepath.Join(p.uploadDir, name)
	if err := imaging.Save(img, path, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("guardar imagen: %w", err)
	}
	return path, nil
}

// Delete elimina el archivo; un archivo ya ausente no es error.
func (p *ImageProcessor) Delete(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("eliminar imagen: %w", err)
	}
	return nil
}

// Placeholder devuelve los bytes a servir cuando un comentario no tiene
// imagen: el logo configurado si existe, o un PNG transparente de 1x1 como
// último recurso. Nunca falla.
func (p *ImageProcessor) Placeholder() (data []byte, contentType string) {
	if p.placeholderPath != "" {
		if b, err := os.ReadFile(p.placeholderPath); err == nil {
			return b, contentTypeForExt(filepath.Ext(p.placeholderPath))
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	return buf.Bytes(), "image/png"
}

func contentTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}

// flattenToWhite compone la imagen sobre un fondo blanco opaco. JPEG no tiene
// canal alfa; sin esto los PNG transparentes quedarían con fondo negro.
func flattenToWhite(img image.Image) image.Image {
	bounds := img.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, bounds, img, bounds.Min, draw.Over)
	return flat
}

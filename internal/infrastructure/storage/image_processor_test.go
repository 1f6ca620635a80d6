package storage_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/toa-ordenes-api/internal/application/comentarios"
	"github.com/jhoicas/toa-ordenes-api/internal/domain"
	"github.com/jhoicas/toa-ordenes-api/internal/infrastructure/storage"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newProcessor(t *testing.T) *storage.ImageProcessor {
	t.Helper()
	p, err := storage.NewImageProcessor(t.TempDir(), "")
	require.NoError(t, err)
	return p
}

// pngBytes genera un PNG de ancho x alto con el color dado.
func pngBytes(t *testing.T, ancho, alto int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, ancho, alto))
	for x := 0; x < ancho; x++ {
		for y := 0; y < alto; y++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func uploadPNG(t *testing.T, ancho, alto int, c color.Color) comentarios.ImageUpload {
	t.Helper()
	data := pngBytes(t, ancho, alto, c)
	return comentarios.ImageUpload{
		Filename: "foto.png",
		Size:     int64(len(data)),
		Reader:   bytes.NewReader(data),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Save
// ──────────────────────────────────────────────────────────────────────────────

func TestSave_PNGValido_TerminaComoJPEGConNombreAleatorio(t *testing.T) {
	p := newProcessor(t)

	path, err := p.Save(uploadPNG(t, 100, 50, color.White))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(path, ".jpg"),
		"toda imagen aceptada se almacena como JPEG")
	assert.NotContains(t, filepath.Base(path), "foto",
		"el nombre original del cliente no llega al filesystem")

	_, err = os.Stat(path)
	assert.NoError(t, err, "el archivo debe existir en disco")
}

func TestSave_ExtensionNoPermitida_RetornaErrInvalidInput(t *testing.T) {
	p := newProcessor(t)

	_, err := p.Save(comentarios.ImageUpload{
		Filename: "malicia.exe",
		Size:     10,
		Reader:   strings.NewReader("MZ..."),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSave_ArchivoMuyGrande_RetornaErrInvalidInput(t *testing.T) {
	p := newProcessor(t)

	_, err := p.Save(comentarios.ImageUpload{
		Filename: "enorme.jpg",
		Size:     storage.MaxImageBytes + 1,
		Reader:   strings.NewReader(""),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSave_ContenidoNoEsImagen_RetornaErrInvalidInput(t *testing.T) {
	p := newProcessor(t)

	_, err := p.Save(comentarios.ImageUpload{
		Filename: "falsa.png",
		Size:     20,
		Reader:   strings.NewReader("esto no es un png"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Una imagen mayor a 1920x1080 se reduce manteniendo la proporción.
func TestSave_ImagenGrande_SeReduceA1920x1080(t *testing.T) {
	p := newProcessor(t)

	path, err := p.Save(uploadPNG(t, 4000, 2000, color.White))
	require.NoError(t, err)

	img, err := imaging.Open(path)
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.LessOrEqual(t, bounds.Dx(), 1920)
	assert.LessOrEqual(t, bounds.Dy(), 1080)
	// 4000x2000 (2:1) limitado por el ancho: 1920x960.
	assert.Equal(t, 1920, bounds.Dx())
	assert.Equal(t, 960, bounds.Dy())
}

// Una imagen dentro del límite no se reescala.
func TestSave_ImagenChica_NoSeReescala(t *testing.T) {
	p := newProcessor(t)

	path, err := p.Save(uploadPNG(t, 640, 480, color.White))
	require.NoError(t, err)

	img, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())
}

// Los PNG transparentes se aplanan sobre blanco, no sobre negro.
func TestSave_TransparenciaSeAplanaSobreBlanco(t *testing.T) {
	p := newProcessor(t)

	path, err := p.Save(uploadPNG(t, 10, 10, color.RGBA{0, 0, 0, 0}))
	require.NoError(t, err)

	img, err := imaging.Open(path)
	require.NoError(t, err)

	r, g, b, _ := img.At(5, 5).RGBA()
	// JPEG con pérdida: cerca de blanco, no de negro.
	assert.Greater(t, r>>8, uint32(240))
	assert.Greater(t, g>>8, uint32(240))
	assert.Greater(t, b>>8, uint32(240))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_EsIdempotente(t *testing.T) {
	p := newProcessor(t)

	path, err := p.Save(uploadPNG(t, 10, 10, color.White))
	require.NoError(t, err)

	require.NoError(t, p.Delete(path))
	assert.NoError(t, p.Delete(path), "borrar un archivo ya ausente no es error")
	assert.NoError(t, p.Delete(""), "ruta vacía es no-op")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Placeholder
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceholder_SinLogoConfigurado_GeneraPNG(t *testing.T) {
	p := newProcessor(t)

	data, contentType := p.Placeholder()
	assert.NotEmpty(t, data)
	assert.Equal(t, "image/png", contentType)

	_, err := png.Decode(bytes.NewReader(data))
	assert.NoError(t, err, "el fallback debe ser un PNG decodificable")
}

func TestPlaceholder_ConLogoConfigurado_SirveElLogo(t *testing.T) {
	dir := t.TempDir()
	logoPath := filepath.Join(dir, "logo.png")
	logo := pngBytes(t, 5, 5, color.White)
	require.NoError(t, os.WriteFile(logoPath, logo, 0o644))

	p, err := storage.NewImageProcessor(dir, logoPath)
	require.NoError(t, err)

	data, contentType := p.Placeholder()
	assert.Equal(t, logo, data)
	assert.Equal(t, "image/png", contentType)
}

func TestPlaceholder_LogoInexistente_CaeAlFallback(t *testing.T) {
	p, err := storage.NewImageProcessor(t.TempDir(), "/no/existe/logo.png")
	require.NoError(t, err)

	data, contentType := p.Placeholder()
	assert.NotEmpty(t, data)
	assert.Equal(t, "image/png", contentType)
}

package comentarios

import "io"

// ImageUpload es la fotografía subida con el formulario de comentario.
type ImageUpload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

// ImageStore define el puerto del pipeline de imágenes (DIP).
// Save valida, normaliza, recomprime y almacena; devuelve la ruta escrita.
// Delete es idempotente: un archivo ya ausente no es error.
type ImageStore interface {
	Save(upload ImageUpload) (path string, err error)
	Delete(path string) error
}

// seed genera el script SQL inicial: catálogo de roles, usuario dev y el
// directorio de empresas externas a partir de un CSV exportado (ISO-8859-1,
// separado por ';': nombre;nombre_toa;rut).
//
// Uso: go run ./cmd/seed [ruta/empresas.csv]
// Por defecto busca empresas.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/seed/001_seed_base.sql
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type empresa struct {
	nombre    string
	nombreTOA string
	rut       string
}

// Directorio por defecto si el CSV no trae filas.
var empresasPorDefecto = []empresa{
	{"CREA INGENIERIA", "CREA", "76.111.111-1"},
	{"INSTALACIONES TALCA", "INTA", "76.222.222-2"},
	{"ATLANTICO SPA", "ATLA", "76.333.333-3"},
	{"BEGIMET LTDA", "BEGI", "76.444.444-4"},
	{"XR3 TELECOMUNICACIONES", "XR3", "76.555.555-5"},
	{"PATAGONIA INSTALACIONES", "PATI", "76.666.666-6"},
	{"HYZ SERVICIOS", "HYZ", "76.777.777-7"},
}

func main() {
	csvPath := "empresas.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	empresas := empresasPorDefecto
	if parsed, err := readEmpresasCSV(csvPath); err == nil && len(parsed) > 0 {
		empresas = parsed
	} else if err != nil && len(os.Args) > 1 {
		// Solo es fatal si el CSV fue pedido explícitamente.
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outDir := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "seed")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	outPath := filepath.Join(outDir, "001_seed_base.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Datos base: roles, usuario dev y empresas externas\n")
	out.WriteString("-- Generado con cmd/seed\n\n")

	out.WriteString("-- 1. Roles\n")
	out.WriteString("INSERT INTO roles (uuid, name, created_at, updated_at, active) VALUES\n")
	out.WriteString("  (gen_random_uuid(), 'admin', NOW(), NOW(), TRUE),\n")
	out.WriteString("  (gen_random_uuid(), 'supervisor', NOW(), NOW(), TRUE),\n")
	out.WriteString("  (gen_random_uuid(), 'tecnico', NOW(), NOW(), TRUE)\n")
	out.WriteString("ON CONFLICT (name) DO NOTHING;\n\n")

	// El hash corresponde a una contraseña temporal; cambiarla tras el primer login.
	out.WriteString("-- 2. Usuario dev (password: cambiar en el primer acceso)\n")
	out.WriteString("INSERT INTO users (uuid, username, password_hash, created_at, updated_at, active)\n")
	out.WriteString("VALUES (gen_random_uuid(), 'dev', '$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy', NOW(), NOW(), TRUE)\n")
	out.WriteString("ON CONFLICT (username) DO NOTHING;\n\n")

	out.WriteString("INSERT INTO user_roles (id_user, id_role)\n")
	out.WriteString("SELECT u.id, r.id FROM users u, roles r WHERE u.username = 'dev' AND r.name = 'admin'\n")
	out.WriteString("ON CONFLICT DO NOTHING;\n\n")

	out.WriteString("-- 3. Empresas externas\n")
	for _, e := range empresas {
		fmt.Fprintf(out, "INSERT INTO empresas_externas (uuid, nombre, nombre_toa, rut, created_at, updated_at, active)\n")
		fmt.Fprintf(out, "VALUES (gen_random_uuid(), '%s', '%s', '%s', NOW(), NOW(), TRUE)\n",
			escapeSQL(e.nombre), escapeSQL(e.nombreTOA), escapeSQL(e.rut))
		out.WriteString("ON CONFLICT (rut) DO NOTHING;\n")
	}

	fmt.Printf("Generado %s: %d empresas\n", outPath, len(empresas))
}

// readEmpresasCSV lee el CSV en ISO-8859-1 (los exports vienen con acentos en
// Latin-1, no UTF-8) y devuelve las filas válidas.
func readEmpresasCSV(path string) ([]empresa, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var list []empresa
	sc := bufio.NewScanner(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ";")
		if len(parts) < 3 {
			continue
		}
		e := empresa{
			nombre:    strings.TrimSpace(parts[0]),
			nombreTOA: strings.TrimSpace(parts[1]),
			rut:       strings.TrimSpace(parts[2]),
		}
		if e.nombre == "" || e.nombreTOA == "" || e.rut == "" {
			continue
		}
		list = append(list, e)
	}
	return list, sc.Err()
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

// seed_catalog importa productos desde un CSV (exportación de Excel, UTF-8 o Latin-1)
// al almacén configurado.
//
// Uso: go run ./cmd/seed_catalog -file productos.csv [-branch <uuid>] [-latin1] [-dry-run]
// Columnas: codigo, nombre, categoria, precio1..precio4, costo, stock, stock_minimo.
// Las categorías que no existen se crean; sin -branch se usa la primera sucursal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/usecase"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/store"
	"github.com/jhoicas/PuntoVenta-api/pkg/config"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
)

func main() {
	file := flag.String("file", "productos.csv", "ruta del CSV")
	branchID := flag.String("branch", "", "sucursal destino (por defecto la primera)")
	latin1 := flag.Bool("latin1", false, "forzar lectura Latin-1")
	dryRun := flag.Bool("dry-run", false, "solo validar el archivo")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed_catalog")

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("abrir CSV")
	}
	r, err := decodeCatalog(raw, *latin1)
	if err != nil {
		log.Fatal().Err(err).Msg("decodificar CSV")
	}
	rows, err := parseCatalog(r)
	if err != nil {
		log.Fatal().Err(err).Msg("CSV inválido")
	}
	log.Info().Int("rows", len(rows)).Msg("catálogo leído")
	if *dryRun {
		return
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer st.Close()

	imp := &importer{
		products:   usecase.NewProductUseCase(st.Products, st.Categories),
		categories: usecase.NewCategoryUseCase(st.Categories, st.Products),
		branches:   usecase.NewBranchUseCase(st.Branches, st.Registers),
	}
	created, err := imp.run(ctx, rows, *branchID)
	if err != nil {
		log.Error().Err(err).Int("created", created).Msg("importación interrumpida")
		st.Close()
		os.Exit(1)
	}
	log.Info().Int("created", created).Msg("importación terminada")
}

type importer struct {
	products   *usecase.ProductUseCase
	categories *usecase.CategoryUseCase
	branches   *usecase.BranchUseCase
}

// run crea los productos y devuelve cuántos se guardaron antes de un error.
func (imp *importer) run(ctx context.Context, rows []catalogRow, branchID string) (int, error) {
	if branchID == "" {
		list, err := imp.branches.List(ctx)
		if err != nil {
			return 0, err
		}
		if len(list) == 0 {
			return 0, fmt.Errorf("no hay sucursales; ejecute la API una vez para sembrar los datos iniciales")
		}
		branchID = list[0].ID
	}

	existing, err := imp.categories.List(ctx)
	if err != nil {
		return 0, err
	}
	categoryIDs := make(map[string]string, len(existing))
	for _, c := range existing {
		categoryIDs[strings.ToLower(c.Name)] = c.ID
	}

	created := 0
	for _, row := range rows {
		catID := ""
		if row.Category != "" {
			key := strings.ToLower(row.Category)
			id, ok := categoryIDs[key]
			if !ok {
				cat, err := imp.categories.Create(ctx, dto.CategoryRequest{Name: row.Category})
				if err != nil {
					return created, fmt.Errorf("línea %d: categoría %q: %w", row.Line, row.Category, err)
				}
				id = cat.ID
				categoryIDs[key] = id
			}
			catID = id
		}
		_, err := imp.products.Create(ctx, dto.CreateProductRequest{
			Code:       row.Code,
			Name:       row.Name,
			CategoryID: catID,
			Price1:     row.Prices[0],
			Price2:     row.Prices[1],
			Price3:     row.Prices[2],
			Price4:     row.Prices[3],
			Cost:       row.Cost,
			Stock:      row.Stock,
			MinStock:   row.MinStock,
			BranchID:   branchID,
		})
		if err != nil {
			return created, fmt.Errorf("línea %d: producto %q: %w", row.Line, row.Code, err)
		}
		created++
	}
	return created, nil
}

package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// ImportOptions formato del CSV de datos maestros.
type ImportOptions struct {
	Latin1 bool // el archivo viene en ISO-8859-1 (exportaciones de Excel en español)
	Comma  rune // separador; 0 = ','
}

// ImportReport resultado de una carga.
type ImportReport struct {
	Rows     int
	Created  int
	Skipped  int
	Warnings []string
}

// ImportUseCase carga materiales y ubicaciones desde CSV pasando por las mismas validaciones que la API.
// Las filas duplicadas o inválidas se saltan con aviso; un error de almacenamiento aborta la carga.
type ImportUseCase struct {
	materials *MaterialUseCase
	locations *LocationUseCase
	log       *logger.Logger
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(materials *MaterialUseCase, locations *LocationUseCase, log *logger.Logger) *ImportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ImportUseCase{materials: materials, locations: locations, log: log}
}

// ImportMaterials columnas: material_code, material_description, material_group (opcional), unit_of_measure.
func (uc *ImportUseCase) ImportMaterials(ctx context.Context, r io.Reader, opts ImportOptions) (*ImportReport, error) {
	return uc.importRows(ctx, r, opts, []string{"material_code", "material_description", "unit_of_measure"},
		func(row map[string]string) error {
			_, err := uc.materials.Create(ctx, dto.CreateMaterialRequest{
				MaterialCode:        row["material_code"],
				MaterialDescription: row["material_description"],
				MaterialGroup:       row["material_group"],
				UnitOfMeasure:       row["unit_of_measure"],
			})
			return err
		})
}

// ImportLocations columnas: plant_code, plant_name, storage_location, description (opcional).
func (uc *ImportUseCase) ImportLocations(ctx context.Context, r io.Reader, opts ImportOptions) (*ImportReport, error) {
	return uc.importRows(ctx, r, opts, []string{"plant_code", "plant_name", "storage_location"},
		func(row map[string]string) error {
			_, err := uc.locations.Create(ctx, dto.CreateLocationRequest{
				PlantCode:       row["plant_code"],
				PlantName:       row["plant_name"],
				StorageLocation: row["storage_location"],
				Description:     row["description"],
			})
			return err
		})
}

func (uc *ImportUseCase) importRows(
	ctx context.Context,
	r io.Reader,
	opts ImportOptions,
	required []string,
	create func(row map[string]string) error,
) (*ImportReport, error) {
	if opts.Latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	header, err := cr.Read()
	if err != nil {
		return nil, domain.NewValidationError("csv", "no se pudo leer la cabecera: "+err.Error())
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, domain.NewValidationError("csv", "falta la columna "+name)
		}
	}

	report := &ImportReport{}
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return report, domain.NewValidationError("csv", fmt.Sprintf("línea %d: %v", line, err))
		}
		report.Rows++

		row := make(map[string]string, len(cols))
		for name, i := range cols {
			if i < len(record) {
				row[name] = strings.TrimSpace(record[i])
			}
		}
		switch err := create(row); {
		case err == nil:
			report.Created++
		case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrInvalidInput):
			report.Skipped++
			msg := fmt.Sprintf("línea %d: %v", line, err)
			report.Warnings = append(report.Warnings, msg)
			uc.log.Warn().Int("line", line).Err(err).Msg("fila omitida")
		default:
			return report, fmt.Errorf("línea %d: %w", line, err)
		}
	}

	uc.log.Info().
		Int("rows", report.Rows).
		Int("created", report.Created).
		Int("skipped", report.Skipped).
		Msg("importación de datos maestros")
	return report, nil
}

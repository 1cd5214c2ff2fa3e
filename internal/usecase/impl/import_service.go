package impl

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	domainerrors "addrbook/internal/domain/errors"
	"addrbook/internal/errors"
	"addrbook/internal/usecase"

	"go.uber.org/fx"
)

var importColumns = []string{"street", "city", "state", "country", "latitude", "longitude"}

type importService struct {
	addressUC usecase.AddressUsecase
	logger    *slog.Logger
}

type ImportServiceParams struct {
	fx.In

	AddressUC usecase.AddressUsecase
	Logger    *slog.Logger
}

func NewImportService(params ImportServiceParams) usecase.ImportUsecase {
	return &importService{
		addressUC: params.AddressUC,
		logger:    params.Logger,
	}
}

func (srv *importService) ImportCSV(ctx context.Context, r io.Reader) (*usecase.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("CSV file is empty")
	}
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unreadable CSV header: " + err.Error())
	}

	columns, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	result := &usecase.ImportResult{Skipped: []usecase.ImportedRowError{}}
	for {
		if err := ctx.Err(); err != nil {
			return result, errors.WithStack(err)
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			line := 0
			if errors.As(err, &parseErr) {
				line = parseErr.Line
			}
			srv.skip(ctx, result, line, err.Error())

			continue
		}

		line, _ := reader.FieldPos(0)

		if len(record) != len(header) {
			srv.skip(ctx, result, line, fmt.Sprintf("expected %d fields, got %d", len(header), len(record)))

			continue
		}

		input, err := parseAddressRecord(record, columns)
		if err != nil {
			srv.skip(ctx, result, line, err.Error())

			continue
		}

		if _, err := srv.addressUC.CreateAddress(ctx, input); err != nil {
			var appErr domainerrors.AppError
			if errors.As(err, &appErr) && appErr.HTTPCode() < 500 {
				srv.skip(ctx, result, line, rowReason(appErr))

				continue
			}

			return result, errors.WithMessagef(err, "import stopped at line %d", line)
		}

		result.Imported++
	}

	srv.logger.InfoContext(ctx, "CSV import finished",
		slog.Int("imported", result.Imported),
		slog.Int("skipped", len(result.Skipped)),
	)

	return result, nil
}

func (srv *importService) skip(ctx context.Context, result *usecase.ImportResult, line int, reason string) {
	srv.logger.WarnContext(ctx, "Skipping CSV row", slog.Int("line", line), slog.String("reason", reason))
	result.Skipped = append(result.Skipped, usecase.ImportedRowError{Line: line, Reason: reason})
}

// columnIndex maps each required column to its position in the header, case-insensitively.
func columnIndex(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := positions[name]; dup {
			return nil, domainerrors.ErrValidationFailed.WithDetails("duplicate CSV column: " + name)
		}
		positions[name] = i
	}

	columns := make(map[string]int, len(importColumns))
	var missing []string
	for _, name := range importColumns {
		pos, ok := positions[name]
		if !ok {
			missing = append(missing, name)

			continue
		}
		columns[name] = pos
	}
	if len(missing) > 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("missing CSV columns: " + strings.Join(missing, ", "))
	}

	return columns, nil
}

// parseAddressRecord expects one field per header column.
func parseAddressRecord(record []string, columns map[string]int) (*usecase.AddressInput, error) {
	field := func(name string) string {
		return strings.TrimSpace(record[columns[name]])
	}
	coordinate := func(name string) (float64, error) {
		raw := field(name)
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, errors.Errorf("invalid %s %q", name, raw)
		}

		return value, nil
	}

	input := &usecase.AddressInput{
		Street:  field("street"),
		City:    field("city"),
		State:   field("state"),
		Country: field("country"),
	}
	var err error
	if input.Latitude, err = coordinate("latitude"); err != nil {
		return nil, err
	}
	if input.Longitude, err = coordinate("longitude"); err != nil {
		return nil, err
	}

	return input, nil
}

func rowReason(appErr domainerrors.AppError) string {
	if appErr.Details() != "" {
		return appErr.Details()
	}

	return appErr.Message()
}

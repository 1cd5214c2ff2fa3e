package impl

import (
	"context"
	"strings"
	"testing"

	"addrbook/internal/domain/entity"
	domainerrors "addrbook/internal/domain/errors"
	mockUC "addrbook/internal/mocks/usecase"
	"addrbook/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestImportService(t *testing.T) (usecase.ImportUsecase, *mockUC.MockAddressUsecase) {
	addressUC := mockUC.NewMockAddressUsecase(t)

	return NewImportService(ImportServiceParams{
		AddressUC: addressUC,
		Logger:    newDiscardLogger(),
	}), addressUC
}

func TestImportService_ImportCSV_Success(t *testing.T) {
	importer, addressUC := createTestImportService(t)
	ctx := context.Background()

	csvData := "\ufeffLatitude,longitude,STREET,city,state,country\n" +
		"25.0330,121.5654,\"No. 7, Sec. 5, Xinyi Rd.\",Taipei,Taipei City,Taiwan\n" +
		"0,0,Null Island,Nowhere,None,Atlantic\n"

	addressUC.EXPECT().CreateAddress(ctx, &usecase.AddressInput{
		Street:    "No. 7, Sec. 5, Xinyi Rd.",
		City:      "Taipei",
		State:     "Taipei City",
		Country:   "Taiwan",
		Latitude:  25.0330,
		Longitude: 121.5654,
	}).Return(&entity.Address{ID: 1}, nil).Once()
	addressUC.EXPECT().CreateAddress(ctx, &usecase.AddressInput{
		Street:  "Null Island",
		City:    "Nowhere",
		State:   "None",
		Country: "Atlantic",
	}).Return(&entity.Address{ID: 2}, nil).Once()

	result, err := importer.ImportCSV(ctx, strings.NewReader(csvData))

	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Empty(t, result.Skipped)
}

func TestImportService_ImportCSV_SkipsBadRows(t *testing.T) {
	importer, addressUC := createTestImportService(t)
	ctx := context.Background()

	csvData := "street,city,state,country,latitude,longitude\n" +
		"Good St,Taipei,Taipei City,Taiwan,25.03,121.56\n" +
		"Bad Lat,Taipei,Taipei City,Taiwan,north,121.56\n" +
		"Short Row,Taipei\n" +
		"Extra Field,Taipei,Taipei City,Taiwan,25.03,121.56,trailing\n" +
		"Out Of Range,Taipei,Taipei City,Taiwan,95,121.56\n" +
		"Also Good,Tainan,Tainan City,Taiwan,22.99,120.20\n"

	addressUC.EXPECT().
		CreateAddress(ctx, mock.MatchedBy(func(in *usecase.AddressInput) bool { return in.Latitude == 95 })).
		Return(nil, domainerrors.ErrValidationFailed.WithDetails("latitude must be within [-90, 90]")).
		Once()
	addressUC.EXPECT().
		CreateAddress(ctx, mock.MatchedBy(func(in *usecase.AddressInput) bool { return in.Latitude != 95 })).
		Return(&entity.Address{ID: 1}, nil).
		Twice()

	result, err := importer.ImportCSV(ctx, strings.NewReader(csvData))

	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, []usecase.ImportedRowError{
		{Line: 3, Reason: `invalid latitude "north"`},
		{Line: 4, Reason: "expected 6 fields, got 2"},
		{Line: 5, Reason: "expected 6 fields, got 7"},
		{Line: 6, Reason: "latitude must be within [-90, 90]"},
	}, result.Skipped)
}

func TestImportService_ImportCSV_HeaderErrors(t *testing.T) {
	tests := []struct {
		name    string
		csvData string
		details string
	}{
		{name: "empty file", csvData: "", details: "CSV file is empty"},
		{name: "missing columns", csvData: "street,city,latitude\n", details: "missing CSV columns: state, country, longitude"},
		{name: "duplicate column", csvData: "street,street,city,state,country,latitude,longitude\n", details: "duplicate CSV column: street"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			importer, _ := createTestImportService(t)

			result, err := importer.ImportCSV(context.Background(), strings.NewReader(tt.csvData))

			assert.Nil(t, result)
			var appErr domainerrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
			assert.Equal(t, tt.details, appErr.Details())
		})
	}
}

func TestImportService_ImportCSV_StorageFailureStops(t *testing.T) {
	importer, addressUC := createTestImportService(t)
	ctx := context.Background()

	csvData := "street,city,state,country,latitude,longitude\n" +
		"First,Taipei,Taipei City,Taiwan,25.03,121.56\n" +
		"Second,Taipei,Taipei City,Taiwan,25.04,121.57\n" +
		"Never Reached,Taipei,Taipei City,Taiwan,25.05,121.58\n"

	dbErr := domainerrors.NewDatabaseExecuteError(errors.New("disk I/O error"), "failed to create address")
	addressUC.EXPECT().
		CreateAddress(ctx, mock.MatchedBy(func(in *usecase.AddressInput) bool { return in.Street == "First" })).
		Return(&entity.Address{ID: 1}, nil).
		Once()
	addressUC.EXPECT().
		CreateAddress(ctx, mock.MatchedBy(func(in *usecase.AddressInput) bool { return in.Street == "Second" })).
		Return(nil, dbErr).
		Once()

	result, err := importer.ImportCSV(ctx, strings.NewReader(csvData))

	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "import stopped at line 3")
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Imported)
}

func TestImportService_ImportCSV_CanceledContext(t *testing.T) {
	importer, _ := createTestImportService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	csvData := "street,city,state,country,latitude,longitude\nFirst,Taipei,Taipei City,Taiwan,25.03,121.56\n"

	result, err := importer.ImportCSV(ctx, strings.NewReader(csvData))

	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, result.Imported)
}

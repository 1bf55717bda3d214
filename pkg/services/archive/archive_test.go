package archive

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rc-tools/cost-ledger/pkg/models/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(t *testing.T) *domain.RunResult {
	t.Helper()
	period, err := domain.ParsePeriod("2025-07")
	require.NoError(t, err)

	record := domain.FocusRecord{
		BillingPeriodStart: period.Start,
		BillingPeriodEnd:   period.End,
		ChargePeriodStart:  period.Start,
		ChargePeriodEnd:    period.End,
		ListCost:           decimal.NewFromFloat(8),
		BilledCost:         decimal.NewFromFloat(7.5),
		ResourceID:         "chem-lab:gpu",
		ResourceName:       "chem-lab (GPU)",
		ServiceName:        "HPC Compute - GPU",
		Tags:               domain.Tags{PIEmail: "pi@uni.edu", ProjectID: "chem-001", FundOrg: "ORG-1"},
	}

	return &domain.RunResult{
		Period:  period,
		Details: []domain.RecordDetail{{Record: record, Kind: domain.UsageKindCompute, TotalQuantity: 800, RecordCount: 2}},
		Summary: domain.RunSummary{
			TotalListCost:   decimal.NewFromFloat(8),
			TotalBilledCost: decimal.NewFromFloat(7.5),
			ProcessedCount:  2,
		},
	}
}

func TestService_ArchiveRun(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc, err := NewService(db)
	require.NoError(t, err)

	result := sampleResult(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO billing_runs")).
		WithArgs(
			sqlmock.AnyArg(), "cluster", "HPC Compute",
			result.Period.Start, result.Period.End, sqlmock.AnyArg(),
			8.0, 7.5, 0.0, 2, 0,
			sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO focus_records"))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO focus_records")).
		WithArgs(
			sqlmock.AnyArg(), result.Period.Start, result.Period.End,
			result.Period.Start, result.Period.End,
			8.0, 7.5,
			"chem-lab:gpu", "chem-lab (GPU)", "HPC Compute - GPU", sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	run, err := svc.ArchiveRun(context.Background(), "cluster", "HPC Compute", result)
	require.NoError(t, err)

	assert.Len(t, run.ID, 36)
	assert.Equal(t, "cluster", run.Source)
	assert.Equal(t, "HPC Compute", run.ServiceName)
	assert.Equal(t, result.Period, run.Period)
	assert.WithinDuration(t, time.Now().UTC(), run.GeneratedAt, 5*time.Second)
	assert.Equal(t, result.Summary, run.Summary)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ArchiveRun_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc, err := NewService(db)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO billing_runs")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err = svc.ArchiveRun(context.Background(), "cluster", "HPC Compute", sampleResult(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to archive run")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ArchiveRun_BeginFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc, err := NewService(db)
	require.NoError(t, err)

	mock.ExpectBegin().WillReturnError(errors.New("connection lost"))

	_, err = svc.ArchiveRun(context.Background(), "cluster", "HPC Compute", sampleResult(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to begin transaction")
}

func TestService_GetRun_MapsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc, err := NewService(db)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("FROM billing_runs")).
		WithArgs("nowhere").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = svc.GetRun(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

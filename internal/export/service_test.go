package export

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/bizledger/internal/common"
	"github.com/joseph-ayodele/bizledger/internal/entity"
	"github.com/joseph-ayodele/bizledger/internal/period"
)

type staticSource struct {
	snap entity.Snapshot
	err  error
}

func (s staticSource) Snapshot(context.Context) (entity.Snapshot, error) { return s.snap, s.err }

func testService(src SnapshotSource) *Service {
	svc := NewService(src, common.ReportConfig{CurrencyCode: "KES", Locale: "en-KE", CompanyName: "Charge24 Limited"}, nil)
	svc.now = func() time.Time { return time.Date(2024, time.January, 25, 12, 0, 0, 0, time.UTC) }
	return svc
}

func sample() entity.Snapshot {
	return entity.Snapshot{
		Transactions: []entity.Transaction{
			{Type: entity.Income, Category: "Advertisements", Amount: decimal.NewFromInt(15000), Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
			{Type: entity.Expense, Category: "IT Department", Amount: decimal.NewFromInt(5000), Date: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)},
			{Type: entity.Expense, Category: "IT Department", Amount: decimal.NewFromInt(700), Date: time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func TestBuildUsesPeriod(t *testing.T) {
	svc := testService(staticSource{snap: sample()})

	r, err := svc.Build(context.Background(), Request{Kind: KindProfitLoss})
	require.NoError(t, err)
	assert.Equal(t, "Profit & Loss Statement - Current Month", r.Title)
	assert.Equal(t, []string{"Net Profit (Loss)", "KES 10,000.00"}, r.Document.Body[len(r.Document.Body)-1])

	r, err = svc.Build(context.Background(), Request{Kind: KindExpenses})
	require.NoError(t, err)
	assert.Len(t, r.Document.Body, 2)
}

func TestExportXLSX(t *testing.T) {
	svc := testService(staticSource{snap: sample()})

	file, err := svc.Export(context.Background(), Request{Kind: KindCashFlow, Format: FormatXLSX, Period: period.LastYear})
	require.NoError(t, err)
	assert.Equal(t, "cash_flow_statement_-_last_year.xlsx", file.Name)

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, []string{"Cash Flow Statement - Last Year"}, f.GetSheetList())
}

func TestExportPDF(t *testing.T) {
	svc := testService(staticSource{snap: sample()})

	file, err := svc.Export(context.Background(), Request{Kind: KindAnalytics, Format: "PDF"})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF-")))
}

func TestExportRejectsBadRequests(t *testing.T) {
	svc := testService(staticSource{snap: sample()})
	ctx := context.Background()

	_, err := svc.Export(ctx, Request{Kind: "payroll"})
	assert.True(t, errors.Is(err, common.ErrInvalidInput))

	_, err = svc.Export(ctx, Request{Kind: KindIncome, Format: "docx"})
	assert.True(t, errors.Is(err, common.ErrInvalidInput))

	_, err = svc.Export(ctx, Request{Kind: KindIncome, Period: period.Custom})
	assert.True(t, errors.Is(err, common.ErrInvalidInput))
}

func TestExportPropagatesSourceErrors(t *testing.T) {
	boom := common.StoreError("list", errors.New("offline"))
	svc := testService(staticSource{err: boom})

	_, err := svc.Export(context.Background(), Request{Kind: KindIncome})
	assert.True(t, errors.Is(err, common.ErrStore))
	assert.Contains(t, err.Error(), "load records: ")
}

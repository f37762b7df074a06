package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joseph-ayodele/bizledger/internal/common"
	"github.com/joseph-ayodele/bizledger/internal/entity"
	"github.com/joseph-ayodele/bizledger/internal/ledger"
	"github.com/joseph-ayodele/bizledger/internal/period"
	"github.com/joseph-ayodele/bizledger/internal/report"
)

// Kind names an exportable report.
type Kind string

const (
	KindIncome       Kind = "income"
	KindExpenses     Kind = "expenses"
	KindPettyCash    Kind = "petty-cash"
	KindBudgets      Kind = "budgets"
	KindProfitLoss   Kind = "profit-loss"
	KindCashFlow     Kind = "cash-flow"
	KindBalanceSheet Kind = "balance-sheet"
	KindAnalytics    Kind = "analytics"
)

// Format is the output encoding.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// SnapshotSource yields every record of the current owner.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (entity.Snapshot, error)
}

// Request selects a report, its period and its encoding. Period defaults to
// the current month; Category only applies to analytics.
type Request struct {
	Kind        Kind
	Format      Format
	Period      period.Token
	CustomStart *time.Time
	CustomEnd   *time.Time
	Category    string
}

// File is an encoded report.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Service is a small façade over the record source that produces report files.
type Service struct {
	source     SnapshotSource
	formatter  *report.Formatter
	letterhead report.Letterhead
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(source SnapshotSource, cfg common.ReportConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		source:     source,
		formatter:  report.NewFormatter(cfg.CurrencyCode, cfg.Locale),
		letterhead: report.LetterheadFromConfig(cfg),
		logger:     logger,
		now:        time.Now,
	}
}

// Build assembles the requested report without encoding it.
func (s *Service) Build(ctx context.Context, req Request) (report.Report, error) {
	token := req.Period
	if token == "" {
		token = period.CurrentMonth
	}
	now := s.now()
	iv, err := period.Resolve(token, now, req.CustomStart, req.CustomEnd)
	if err != nil {
		return report.Report{}, common.NewAppError("INVALID_PERIOD", err.Error(), common.ErrInvalidInput)
	}
	label := period.Label(token, iv)

	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return report.Report{}, common.WrapError(err, "load records")
	}

	f := s.formatter
	switch req.Kind {
	case KindIncome:
		return report.Transactions("Income Report", ofType(snap.Transactions, entity.Income), f), nil
	case KindExpenses:
		return report.Transactions("Expenses Report", ofType(snap.Transactions, entity.Expense), f), nil
	case KindPettyCash:
		return report.PettyCash(snap.PettyCashEntries, f), nil
	case KindBudgets:
		return report.BudgetAnalysis(ledger.AnalyzeBudgets(snap.Budgets, snap.Transactions), f), nil
	case KindProfitLoss:
		return report.ProfitLoss(ledger.ProfitLoss(snap.Transactions, iv), label, f), nil
	case KindCashFlow:
		return report.CashFlow(ledger.BuildCashFlow(snap.Transactions, snap.PettyCashEntries, iv), label, f), nil
	case KindBalanceSheet:
		sheet := ledger.AnalyzeBalanceSheet(snap.BalanceSheetItems)
		return report.BalanceSheet(sheet, snap.BalanceSheetItems, entity.Day(now), f), nil
	case KindAnalytics:
		return report.Analytics(ledger.Analytics(snap.Transactions, iv, req.Category), label, f), nil
	default:
		return report.Report{}, common.NewAppError("INVALID_REPORT", fmt.Sprintf("unknown report %q", req.Kind), common.ErrInvalidInput)
	}
}

// Export builds the requested report and encodes it.
func (s *Service) Export(ctx context.Context, req Request) (File, error) {
	start := time.Now()

	r, err := s.Build(ctx, req)
	if err != nil {
		return File{}, err
	}

	generatedAt := s.now()
	format := Format(strings.ToLower(string(req.Format)))
	if format == "" {
		format = FormatXLSX
	}
	var out File
	switch format {
	case FormatPDF:
		data, err := r.PDF(s.letterhead, generatedAt)
		if err != nil {
			return File{}, err
		}
		out = File{Name: r.FileName("pdf"), ContentType: "application/pdf", Data: data}
	case FormatXLSX:
		data, err := r.XLSX(s.letterhead, generatedAt)
		if err != nil {
			return File{}, err
		}
		out = File{Name: r.FileName("xlsx"), ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", Data: data}
	default:
		return File{}, common.NewAppError("INVALID_FORMAT", fmt.Sprintf("unknown format %q", req.Format), common.ErrInvalidInput)
	}

	s.logger.Info("export."+string(format)+".ok",
		"report", req.Kind,
		"rows", len(r.Document.Body),
		"bytes", len(out.Data),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

func ofType(txs []entity.Transaction, typ entity.TransactionType) []entity.Transaction {
	var out []entity.Transaction
	for _, tx := range txs {
		if tx.Type == typ {
			out = append(out, tx)
		}
	}
	return out
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/joseph-ayodele/bizledger/constants"
	"github.com/joseph-ayodele/bizledger/internal/backup"
	"github.com/joseph-ayodele/bizledger/internal/common"
	"github.com/joseph-ayodele/bizledger/internal/entity"
	"github.com/joseph-ayodele/bizledger/internal/export"
	"github.com/joseph-ayodele/bizledger/internal/importer"
	"github.com/joseph-ayodele/bizledger/internal/ledger"
	"github.com/joseph-ayodele/bizledger/internal/period"
	"github.com/joseph-ayodele/bizledger/internal/session"
)

// FileNameHeader carries the suggested download name of a file response.
const FileNameHeader = "x-file-name"

// ReportService serves the dashboard views, imports and exports of the
// caller's records.
type ReportService struct {
	session  *session.Session
	exporter *export.Service
	logger   *slog.Logger
	now      func() time.Time
}

var _ ReportServiceServer = (*ReportService)(nil)

func NewReportService(sess *session.Session, exporter *export.Service, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{session: sess, exporter: exporter, logger: logger, now: time.Now}
}

func (s *ReportService) Dashboard(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	snap, err := s.session.Snapshot(ctx)
	if err != nil {
		return nil, s.fail(ctx, "dashboard", err)
	}
	return toStruct(ledger.Dashboard(snap))
}

func (s *ReportService) Analytics(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	iv, label, snap, err := s.periodSnapshot(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, "analytics", err)
	}
	out, err := toStruct(ledger.Analytics(snap.Transactions, iv, str(req, "category")))
	if err != nil {
		return nil, err
	}
	out.Fields["period"] = structpb.NewStringValue(label)
	return out, nil
}

func (s *ReportService) ProfitLoss(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	iv, label, snap, err := s.periodSnapshot(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, "profit-loss", err)
	}
	out, err := toStruct(ledger.ProfitLoss(snap.Transactions, iv))
	if err != nil {
		return nil, err
	}
	out.Fields["period"] = structpb.NewStringValue(label)
	return out, nil
}

func (s *ReportService) CashFlow(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	iv, label, snap, err := s.periodSnapshot(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, "cash-flow", err)
	}
	out, err := toStruct(ledger.BuildCashFlow(snap.Transactions, snap.PettyCashEntries, iv))
	if err != nil {
		return nil, err
	}
	out.Fields["period"] = structpb.NewStringValue(label)
	return out, nil
}

func (s *ReportService) BalanceSheet(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	snap, err := s.session.Snapshot(ctx)
	if err != nil {
		return nil, s.fail(ctx, "balance-sheet", err)
	}
	return toStruct(struct {
		ledger.BalanceSheet
		Subcategories map[string][]string `json:"subcategories"`
	}{
		BalanceSheet:  ledger.AnalyzeBalanceSheet(snap.BalanceSheetItems),
		Subcategories: map[string][]string{
			"assets":      constants.BalanceSubcategories("assets"),
			"liabilities": constants.BalanceSubcategories("liabilities"),
			"equity":      constants.BalanceSubcategories("equity"),
		},
	})
}

func (s *ReportService) Budgets(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	snap, err := s.session.Snapshot(ctx)
	if err != nil {
		return nil, s.fail(ctx, "budgets", err)
	}
	return toStruct(struct {
		ledger.BudgetReport
		RecentExpenses []entity.Transaction `json:"recentExpenses"`
	}{
		BudgetReport:   ledger.AnalyzeBudgets(snap.Budgets, snap.Transactions),
		RecentExpenses: ledger.RecentBudgetExpenses(snap.Budgets, snap.Transactions, ledger.DashboardTopN),
	})
}

// ImportRecords validates and stores delimited text. Request fields: kind,
// data, delimiter (optional, one character), lenient (bool).
func (s *ReportService) ImportRecords(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	kind, err := importer.ParseKind(str(req, "kind"))
	if err != nil {
		return nil, s.fail(ctx, "import", common.NewAppError("INVALID_KIND", err.Error(), common.ErrInvalidInput))
	}
	var opts importer.ParseOptions
	if d := []rune(str(req, "delimiter")); len(d) == 1 {
		opts.Delimiter = d[0]
	}
	table, err := importer.Parse(str(req, "data"), opts)
	if err != nil {
		return nil, s.fail(ctx, "import", common.NewAppError("INVALID_TABLE", err.Error(), common.ErrInvalidInput))
	}

	var svcOpts []importer.Option
	if req.GetFields()["lenient"].GetBoolValue() {
		svcOpts = append(svcOpts, importer.WithLenientSchemas())
	}
	res, err := importer.NewService(s.session, s.logger, svcOpts...).Import(ctx, kind, table)
	if err != nil {
		if errors.Is(err, importer.ErrNoRows) {
			err = common.NewAppError("NO_ROWS", err.Error(), common.ErrInvalidInput)
		}
		return nil, s.fail(ctx, "import", err)
	}
	return structpb.NewStruct(map[string]any{
		"kind":     string(res.Kind),
		"inserted": res.Inserted,
		"message":  fmt.Sprintf("Successfully imported %d records", res.Inserted),
	})
}

func (s *ReportService) ImportTemplate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	kind, err := importer.ParseKind(str(req, "kind"))
	if err != nil {
		return nil, s.fail(ctx, "template", common.NewAppError("INVALID_KIND", err.Error(), common.ErrInvalidInput))
	}
	return structpb.NewStruct(map[string]any{
		"fileName": importer.TemplateFileName(kind),
		"content":  importer.Template(kind),
	})
}

// ExportReport returns the encoded report; its file name is sent in the
// x-file-name response header.
func (s *ReportService) ExportReport(ctx context.Context, req *structpb.Struct) (*wrapperspb.BytesValue, error) {
	start, end, err := customRange(req)
	if err != nil {
		return nil, s.fail(ctx, "export", err)
	}
	file, err := s.exporter.Export(ctx, export.Request{
		Kind:        export.Kind(str(req, "report")),
		Format:      export.Format(str(req, "format")),
		Period:      period.Token(str(req, "period")),
		CustomStart: start,
		CustomEnd:   end,
		Category:    str(req, "category"),
	})
	if err != nil {
		return nil, s.fail(ctx, "export", err)
	}
	s.sendFileName(ctx, file.Name)
	return wrapperspb.Bytes(file.Data), nil
}

func (s *ReportService) ExportBackup(ctx context.Context, _ *structpb.Struct) (*wrapperspb.BytesValue, error) {
	snap, err := s.session.Snapshot(ctx)
	if err != nil {
		return nil, s.fail(ctx, "backup", err)
	}
	now := s.now()
	data, err := backup.Export(snap, now)
	if err != nil {
		return nil, s.fail(ctx, "backup", err)
	}
	s.sendFileName(ctx, backup.FileName(now))
	return wrapperspb.Bytes(data), nil
}

func (s *ReportService) RestoreBackup(ctx context.Context, req *wrapperspb.BytesValue) (*structpb.Struct, error) {
	snap, sum, err := backup.Parse(req.GetValue())
	if err != nil {
		return nil, s.fail(ctx, "restore", err)
	}
	n, err := s.session.Restore(ctx, snap)
	if err != nil {
		return nil, s.fail(ctx, "restore", err)
	}
	return structpb.NewStruct(map[string]any{
		"restored":   n,
		"exportDate": sum.ExportDate,
		"version":    sum.Version,
	})
}

func (s *ReportService) MigrateLocal(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	n, err := s.session.MigrateLocal(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNoDurableStore) {
			err = common.NewAppError("NO_DURABLE_STORE", err.Error(), common.ErrInvalidInput)
		}
		return nil, s.fail(ctx, "migrate", err)
	}
	return structpb.NewStruct(map[string]any{"migrated": n})
}

func (s *ReportService) periodSnapshot(ctx context.Context, req *structpb.Struct) (period.Interval, string, entity.Snapshot, error) {
	token := period.Token(str(req, "period"))
	if token == "" {
		token = period.CurrentMonth
	}
	start, end, err := customRange(req)
	if err != nil {
		return period.Interval{}, "", entity.Snapshot{}, err
	}
	iv, err := period.Resolve(token, s.now(), start, end)
	if err != nil {
		return period.Interval{}, "", entity.Snapshot{}, common.NewAppError("INVALID_PERIOD", err.Error(), common.ErrInvalidInput)
	}
	snap, err := s.session.Snapshot(ctx)
	if err != nil {
		return period.Interval{}, "", entity.Snapshot{}, err
	}
	return iv, period.Label(token, iv), snap, nil
}

func (s *ReportService) sendFileName(ctx context.Context, name string) {
	if err := grpc.SetHeader(ctx, metadata.Pairs(FileNameHeader, name)); err != nil {
		s.logger.Debug("set file name header", "error", err)
	}
}

func (s *ReportService) fail(ctx context.Context, op string, err error) error {
	s.logger.Warn("request failed", "op", op, "request_id", common.RequestIDFromContext(ctx), "error", err)
	return common.ToStatus(err)
}

func customRange(req *structpb.Struct) (*time.Time, *time.Time, error) {
	parse := func(key string) (*time.Time, error) {
		v := strings.TrimSpace(str(req, key))
		if v == "" {
			return nil, nil
		}
		t, err := entity.ParseDay(v)
		if err != nil {
			return nil, common.InvalidArgumentErrorf("%s must be YYYY-MM-DD, got %q", key, v)
		}
		return &t, nil
	}
	start, err := parse("customStart")
	if err != nil {
		return nil, nil, err
	}
	end, err := parse("customEnd")
	if err != nil {
		return nil, nil, err
	}
	return start, end, nil
}

func str(req *structpb.Struct, key string) string {
	return req.GetFields()[key].GetStringValue()
}

// toStruct converts v through its JSON encoding. Amounts become exact
// decimal strings.
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, common.InternalErrorf("encode response: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, common.InternalErrorf("encode response: %v", err)
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, common.InternalErrorf("encode response: %v", err)
	}
	return out, nil
}

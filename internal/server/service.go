package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "bizledger.v1.ReportService"

// ReportServiceServer is served over gRPC. Requests and responses are
// well-known protobuf types so no generated code is needed.
type ReportServiceServer interface {
	Dashboard(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Analytics(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ProfitLoss(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CashFlow(context.Context, *structpb.Struct) (*structpb.Struct, error)
	BalanceSheet(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Budgets(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ImportRecords(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ImportTemplate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExportReport(context.Context, *structpb.Struct) (*wrapperspb.BytesValue, error)
	ExportBackup(context.Context, *structpb.Struct) (*wrapperspb.BytesValue, error)
	RestoreBackup(context.Context, *wrapperspb.BytesValue) (*structpb.Struct, error)
	MigrateLocal(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes ReportService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ReportServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Dashboard", ReportServiceServer.Dashboard),
		unary("Analytics", ReportServiceServer.Analytics),
		unary("ProfitLoss", ReportServiceServer.ProfitLoss),
		unary("CashFlow", ReportServiceServer.CashFlow),
		unary("BalanceSheet", ReportServiceServer.BalanceSheet),
		unary("Budgets", ReportServiceServer.Budgets),
		unary("ImportRecords", ReportServiceServer.ImportRecords),
		unary("ImportTemplate", ReportServiceServer.ImportTemplate),
		unary("ExportReport", ReportServiceServer.ExportReport),
		unary("ExportBackup", ReportServiceServer.ExportBackup),
		unary("RestoreBackup", ReportServiceServer.RestoreBackup),
		unary("MigrateLocal", ReportServiceServer.MigrateLocal),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bizledger/v1/report.proto",
}

// RegisterReportServiceServer registers srv on s.
func RegisterReportServiceServer(s grpc.ServiceRegistrar, srv ReportServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unary[Req, Resp any](method string, call func(ReportServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ReportServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + method}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ReportServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Client calls ReportService over conn.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, c *Client, method string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Dashboard(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c, "Dashboard", in, opts...)
}

func (c *Client) Analytics(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c, "Analytics", in, opts...)
}

func (c *Client) ProfitLoss(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c, "ProfitLoss", in, opts...)
}

func (c *Client) CashFlow(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c, "CashFlow", in, opts...)
}

func (c *Client) BalanceSheet(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c, "BalanceSheet", in, opts...)
}

func (c *Client) Budgets(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c, "Budgets", in, opts...)
}

func (c *Client) ImportRecords(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c, "ImportRecords", in, opts...)
}

func (c *Client) ImportTemplate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c, "ImportTemplate", in, opts...)
}

func (c *Client) ExportReport(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	return invoke[wrapperspb.BytesValue](ctx, c, "ExportReport", in, opts...)
}

func (c *Client) ExportBackup(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	return invoke[wrapperspb.BytesValue](ctx, c, "ExportBackup", in, opts...)
}

func (c *Client) RestoreBackup(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c, "RestoreBackup", in, opts...)
}

func (c *Client) MigrateLocal(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c, "MigrateLocal", in, opts...)
}

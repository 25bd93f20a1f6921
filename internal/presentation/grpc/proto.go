package grpc

// proto.go defines the gRPC server interface derived from
// smblend/credit/v1/credit.proto. This file serves as a stand-in for
// buf-generated code; messages travel over the JSON codec registered in
// json_codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/smblend/credit-service/internal/application/dto"
)

// Wire messages. Embedding keeps the JSON shape identical to the REST API.

type AnalyzeLoanRequest struct {
	dto.AnalyzeRequest
}

type AnalyzeLoanResponse struct {
	dto.AnalysisResponse
}

type QuickScoreRequest struct {
	dto.AnalyzeRequest
}

type QuickScoreResponse struct {
	dto.QuickScoreResponse
}

type GetAnalysisRequest struct {
	AnalysisID string `json:"analysis_id"`
}

type GetAnalysisResponse struct {
	dto.AnalysisResponse
}

// CreditAnalysisServiceServer is the server API for CreditAnalysisService.
// It mirrors the proto interface from smblend.credit.v1.CreditAnalysisService.
type CreditAnalysisServiceServer interface {
	AnalyzeLoan(context.Context, *AnalyzeLoanRequest) (*AnalyzeLoanResponse, error)
	QuickScore(context.Context, *QuickScoreRequest) (*QuickScoreResponse, error)
	GetAnalysis(context.Context, *GetAnalysisRequest) (*GetAnalysisResponse, error)
	mustEmbedUnimplementedCreditAnalysisServiceServer()
}

// UnimplementedCreditAnalysisServiceServer provides forward-compatible default implementations.
type UnimplementedCreditAnalysisServiceServer struct{}

func (UnimplementedCreditAnalysisServiceServer) AnalyzeLoan(context.Context, *AnalyzeLoanRequest) (*AnalyzeLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AnalyzeLoan not implemented")
}
func (UnimplementedCreditAnalysisServiceServer) QuickScore(context.Context, *QuickScoreRequest) (*QuickScoreResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method QuickScore not implemented")
}
func (UnimplementedCreditAnalysisServiceServer) GetAnalysis(context.Context, *GetAnalysisRequest) (*GetAnalysisResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAnalysis not implemented")
}
func (UnimplementedCreditAnalysisServiceServer) mustEmbedUnimplementedCreditAnalysisServiceServer() {}

// RegisterCreditAnalysisServiceServer registers the server implementation.
func RegisterCreditAnalysisServiceServer(s *grpclib.Server, srv CreditAnalysisServiceServer) {
	s.RegisterService(&_CreditAnalysisService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _CreditAnalysisService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "smblend.credit.v1.CreditAnalysisService",
	HandlerType: (*CreditAnalysisServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AnalyzeLoan", Handler: _CreditAnalysisService_AnalyzeLoan_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "QuickScore", Handler: _CreditAnalysisService_QuickScore_Handler},   //nolint:revive // gRPC handler registration
		{MethodName: "GetAnalysis", Handler: _CreditAnalysisService_GetAnalysis_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditAnalysisService_AnalyzeLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(AnalyzeLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditAnalysisServiceServer).AnalyzeLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/smblend.credit.v1.CreditAnalysisService/AnalyzeLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditAnalysisServiceServer).AnalyzeLoan(ctx, req.(*AnalyzeLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditAnalysisService_QuickScore_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(QuickScoreRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditAnalysisServiceServer).QuickScore(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/smblend.credit.v1.CreditAnalysisService/QuickScore",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditAnalysisServiceServer).QuickScore(ctx, req.(*QuickScoreRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditAnalysisService_GetAnalysis_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetAnalysisRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditAnalysisServiceServer).GetAnalysis(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/smblend.credit.v1.CreditAnalysisService/GetAnalysis",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditAnalysisServiceServer).GetAnalysis(ctx, req.(*GetAnalysisRequest))
	}
	return interceptor(ctx, in, info, handler)
}

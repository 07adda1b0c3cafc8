package regressor

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Bipul-Dubey/health-index/shared/constants"
)

const (
	inferenceServiceName = "healthindex.inference.v1.Inference"
	predictMethod        = "/" + inferenceServiceName + "/Predict"
)

type PredictRequest struct {
	Model    string    `msgpack:"model"`
	Features []float64 `msgpack:"features"`
}

type PredictReply struct {
	Model string  `msgpack:"model"`
	Value float64 `msgpack:"value"`
}

type InferenceServer interface {
	Predict(ctx context.Context, req *PredictRequest) (*PredictReply, error)
}

var inferenceServiceDesc = grpc.ServiceDesc{
	ServiceName: inferenceServiceName,
	HandlerType: (*InferenceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Predict", Handler: predictHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "healthindex/inference/v1/inference",
}

func RegisterInferenceServer(s grpc.ServiceRegistrar, srv InferenceServer) {
	s.RegisterService(&inferenceServiceDesc, srv)
}

func predictHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(PredictRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InferenceServer).Predict(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: predictMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(InferenceServer).Predict(ctx, req.(*PredictRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// InferenceClient calls an inference server.
type InferenceClient struct {
	cc grpc.ClientConnInterface
}

func NewInferenceClient(cc grpc.ClientConnInterface) *InferenceClient {
	return &InferenceClient{cc: cc}
}

func (c *InferenceClient) Predict(ctx context.Context, in *PredictRequest, opts ...grpc.CallOption) (*PredictReply, error) {
	out := new(PredictReply)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := c.cc.Invoke(ctx, predictMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// registryServer serves the local models of a Registry.
type registryServer struct {
	registry *Registry
}

func NewInferenceServer(r *Registry) InferenceServer {
	return &registryServer{registry: r}
}

func (s *registryServer) Predict(ctx context.Context, req *PredictRequest) (*PredictReply, error) {
	e, err := s.registry.Get(req.Model)
	if err != nil {
		return nil, status.Error(codes.NotFound, err.Error())
	}
	// serving remote entries could bounce a call between two servers forever
	if e.Kind == constants.ModelKindRemote {
		return nil, status.Errorf(codes.FailedPrecondition, "model %q is not served locally", e.ID)
	}

	v, err := e.Model.Predict(ctx, req.Features)
	if err != nil {
		if errors.Is(err, ErrFeatureCount) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &PredictReply{Model: e.ID, Value: v}, nil
}

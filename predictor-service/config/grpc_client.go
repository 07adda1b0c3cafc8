package config

import (
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// NewGRPCClient dials an inference server. The connection is lazy, so an
// unreachable server surfaces as an error on the first prediction.
func NewGRPCClient(target string) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to gRPC server %s: %w", target, err)
	}
	return conn, nil
}

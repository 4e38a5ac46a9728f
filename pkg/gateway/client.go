package gateway

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls the gateway service over an existing connection.
type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) ReportFall(ctx context.Context, report map[string]any, opts ...grpc.CallOption) (map[string]any, error) {
	return c.invoke(ctx, ReportFallMethod, report, opts...)
}

func (c *Client) ReportStatus(ctx context.Context, report map[string]any, opts ...grpc.CallOption) (map[string]any, error) {
	return c.invoke(ctx, ReportStatusMethod, report, opts...)
}

func (c *Client) invoke(ctx context.Context, method string, payload map[string]any, opts ...grpc.CallOption) (map[string]any, error) {
	in, err := structpb.NewStruct(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}

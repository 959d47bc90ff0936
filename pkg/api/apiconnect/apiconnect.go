// Package apiconnect wires the api messages to Connect handlers and clients, one
// constructor pair per service. Handlers and clients default to the JSON codec.
package apiconnect

import (
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/stride/pkg/api"
)

func handlerOptions(opts []connect.HandlerOption) connect.HandlerOption {
	return connect.WithHandlerOptions(append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)...)
}

func clientOptions(opts []connect.ClientOption) connect.ClientOption {
	return connect.WithClientOptions(append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)...)
}

func trimBase(baseURL string) string {
	return strings.TrimRight(baseURL, "/")
}

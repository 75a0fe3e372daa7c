// Package proto holds the generated wire contract of tokengate.v1.TokenService,
// shared by the gRPC server and client.
package proto

//go:generate protoc -I ../../api --go_out=../.. --go_opt=module=github.com/dmitrijs2005/tokengate --go-grpc_out=../.. --go-grpc_opt=module=github.com/dmitrijs2005/tokengate tokengate/v1/token_service.proto

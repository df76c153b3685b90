/*
Package protobuf contains wire definitions of messages passed between the client and the computation servers.
*/
//go:generate protoc -I=. --go_out=. --go_opt=paths=source_relative --go-grpc_out=requireUnimplementedServers=false,paths=source_relative:. controller/controller.proto
package protobuf

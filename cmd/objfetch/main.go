// Command objfetch downloads objects from a MinIO or S3 bucket to a local
// directory.
//
// Connection settings come from the environment (see Config). Each object is
// fetched with a managed transfer and falls back to a stream copy if the
// transfer fails.
//
//	OBJFETCH_ENDPOINT=localhost:9000 OBJFETCH_BUCKET=reports \
//	OBJFETCH_ACCESS_KEY=minioadmin OBJFETCH_SECRET_KEY=minioadmin \
//	objfetch fetch 2024/q1.csv 2024/q2.csv --dest ./out
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

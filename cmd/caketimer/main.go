package main

import (
	"context"

	"github.com/jakobkreft/caketimer/internal/cli"
)

func main() {
	ctx := context.Background()
	cli.Main(ctx)
}

// ./main.go
package main

import (
	"context"
	"os"

	"github.com/xkilldash9x/reachctl/cmd"
)

func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}

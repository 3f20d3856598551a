package main

import (
	"fmt"
	"os"

	"github.com/taskhub/taskhub/cmd/cli/auth"
	"github.com/taskhub/taskhub/cmd/cli/root"
	"github.com/taskhub/taskhub/cmd/cli/tasks"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	tasks.InitTasks(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

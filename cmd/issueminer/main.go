// main is the entry point for the issueminer CLI.
package main

import (
	"fmt"
	"os"

	"github.com/issueminer/issueminer/cmd"
	"github.com/issueminer/issueminer/internal/iocache"
)

func main() {
	// The manager is a stable pointer; its stores are filled in by the
	// command setup once the backend configuration is validated.
	cmd.SetStoreManager(iocache.Manager)

	err := cmd.Execute()

	// Close stores before deciding the exit code so buffers reach disk.
	iocache.CloseStores()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// Command checkout-view renders checkout dialog views from engine snapshots.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

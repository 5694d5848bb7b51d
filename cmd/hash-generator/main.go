// Command hash-generator produces a bcrypt hash for an API key, suitable
// for the STRIDE_AUTH_API_KEY_HASH environment variable.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	key := flag.String("key", "", "API key to hash")
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	if *key == "" {
		fmt.Fprintln(os.Stderr, "usage: hash-generator -key <api-key> [-cost <n>]")
		os.Exit(2)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*key), *cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate hash: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(hash))
}

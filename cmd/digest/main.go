// Command digest prompts for a secret and prints its argon2id digest in the
// form stored in the users table, for seeding identities by hand.
package main

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/bailbridge/internal/common"
	"github.com/dmitrijs2005/bailbridge/internal/prompt"
	"github.com/dmitrijs2005/bailbridge/internal/server/password"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "digest:", err)
		os.Exit(1)
	}
}

func run() error {
	r := prompt.NewReader(os.Stdin, os.Stderr)

	secret, err := r.Confirmed("Password: ", "Repeat password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	h, err := password.NewHasher(password.DefaultParams())
	if err != nil {
		return err
	}

	digest, err := h.Hash(string(secret))
	if err != nil {
		return err
	}

	fmt.Println(digest)
	return nil
}
